package hierarchy

import (
	"errors"
	"reflect"
	"testing"

	"github.com/matzehuels/mindmap/pkg/graph"
)

func sample() Hierarchy {
	return Hierarchy{
		Root:       "Go",
		Categories: []string{"Concurrency", "Tooling"},
		Edges: []graph.Edge{
			edge("Go", "Concurrency", "features"),
			edge("Go", "Tooling", ""),
			edge("Concurrency", "Channels", ""),
			edge("Channels", "Select", "used with"),
		},
	}
}

func TestHierarchyAccessors(t *testing.T) {
	h := sample()

	if got := h.Nodes(); !reflect.DeepEqual(got, []string{"Go", "Concurrency", "Tooling", "Channels", "Select"}) {
		t.Errorf("Nodes = %q", got)
	}
	if h.NodeCount() != 5 {
		t.Errorf("NodeCount = %d, want 5", h.NodeCount())
	}

	parent, rel, ok := h.Parent("Select")
	if !ok || parent != "Channels" || rel != "used with" {
		t.Errorf("Parent(Select) = %q, %q, %v", parent, rel, ok)
	}
	if _, _, ok := h.Parent("Go"); ok {
		t.Error("root should have no parent")
	}

	if got := h.Children("Go"); len(got) != 2 || got[0].Target != "Concurrency" {
		t.Errorf("Children(Go) = %+v", got)
	}

	kinds := map[string]Kind{"Go": KindRoot, "Tooling": KindCategory, "Select": KindDefault}
	for label, want := range kinds {
		if got := h.Kind(label); got != want {
			t.Errorf("Kind(%s) = %v, want %v", label, got, want)
		}
	}

	depths := map[string]int{"Go": 0, "Tooling": 1, "Channels": 2, "Select": 3, "Missing": -1}
	for label, want := range depths {
		if got := h.Depth(label); got != want {
			t.Errorf("Depth(%s) = %d, want %d", label, got, want)
		}
	}
}

func TestHierarchyEmpty(t *testing.T) {
	var h Hierarchy
	if h.Nodes() != nil || h.NodeCount() != 0 {
		t.Error("zero hierarchy should have no nodes")
	}
	if !errors.Is(h.Validate(), ErrNoRoot) {
		t.Errorf("Validate = %v, want ErrNoRoot", h.Validate())
	}
}

func TestKindString(t *testing.T) {
	if KindRoot.String() != "root" || KindCategory.String() != "category" || KindDefault.String() != "default" {
		t.Error("unexpected Kind strings")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		h    Hierarchy
		want error
	}{
		{"Valid", sample(), nil},
		{
			"RootIsTarget",
			Hierarchy{Root: "R", Edges: []graph.Edge{edge("R", "A", ""), edge("A", "R", "")}},
			ErrRootIsTarget,
		},
		{
			"Detached",
			Hierarchy{Root: "R", Edges: []graph.Edge{edge("X", "A", "")}},
			ErrDetached,
		},
		{
			"Duplicate",
			Hierarchy{Root: "R", Edges: []graph.Edge{edge("R", "A", ""), edge("R", "B", ""), edge("B", "A", "")}},
			ErrDuplicatePlacement,
		},
		{
			"StrayCategory",
			Hierarchy{Root: "R", Categories: []string{"B"}, Edges: []graph.Edge{edge("R", "A", ""), edge("A", "B", "")}},
			ErrStrayCategory,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.h.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}
