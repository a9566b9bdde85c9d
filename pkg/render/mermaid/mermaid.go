package mermaid

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/mindmap/pkg/hierarchy"
)

// Flowchart directions.
const (
	DirectionLR = "LR"
	DirectionRL = "RL"
	DirectionTD = "TD"
	DirectionTB = "TB"
	DirectionBT = "BT"
)

// DefaultDirection lays the mind map out left to right.
const DefaultDirection = DirectionLR

// ValidDirections is the set of supported flowchart directions.
var ValidDirections = map[string]bool{
	DirectionLR: true,
	DirectionRL: true,
	DirectionTD: true,
	DirectionTB: true,
	DirectionBT: true,
}

// Style classes, keyed by node kind.
var classDefs = []struct {
	kind hierarchy.Kind
	def  string
}{
	{hierarchy.KindRoot, "fill:white,stroke:#F08BC3,color:#333333,stroke-width:2"},
	{hierarchy.KindCategory, "fill:white,stroke:#6495ED,color:#333333,stroke-width:2"},
	{hierarchy.KindDefault, "fill:white,stroke:#A6ABFF,color:#333333,stroke-width:1.5"},
}

// Options configures Mermaid output.
type Options struct {
	// Direction is one of the ValidDirections; empty means DefaultDirection.
	Direction string
}

// ValidateDirection checks that a direction is supported.
func ValidateDirection(dir string) error {
	if dir != "" && !ValidDirections[strings.ToUpper(dir)] {
		return fmt.Errorf("invalid direction: %q (must be one of: LR, RL, TD, TB, BT)", dir)
	}
	return nil
}

// Render converts a hierarchy to Mermaid flowchart source.
//
// The root is declared first; every other node is declared when its
// placement edge is reached, so each node appears once. Each declaration is
// followed by a class line for the root, category or default style.
// Relation labels are not drawn.
func Render(h hierarchy.Hierarchy, opts Options) string {
	dir := strings.ToUpper(opts.Direction)
	if !ValidDirections[dir] {
		dir = DefaultDirection
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph %s;\n", dir)
	buf.WriteString("    %% Styling\n")
	for _, c := range classDefs {
		fmt.Fprintf(&buf, "    classDef %s %s;\n", c.kind, c.def)
	}
	buf.WriteString("\n")

	declared := make(map[string]bool, len(h.Edges)+1)
	declare := func(label string) {
		if declared[label] {
			return
		}
		declared[label] = true
		id := NodeID(label)
		fmt.Fprintf(&buf, "    %s[\"%s\"];\n", id, escapeLabel(label))
		fmt.Fprintf(&buf, "    class %s %s;\n", id, h.Kind(label))
	}

	if h.Root != "" {
		declare(h.Root)
	}
	for _, e := range h.Edges {
		declare(e.Source)
		declare(e.Target)
		fmt.Fprintf(&buf, "    %s --> %s;\n", NodeID(e.Source), NodeID(e.Target))
	}
	return buf.String()
}

var labelReplacer = strings.NewReplacer(
	`"`, "#quot;",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// escapeLabel keeps labels verbatim except for the double quote, which
// would terminate the quoted label, and line breaks, which would split the
// declaration.
func escapeLabel(label string) string {
	return labelReplacer.Replace(label)
}
