package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/hierarchy"
)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	root   string // root hint
	scorer string // category scorer name
	plain  bool   // print the tree instead of starting the browser
}

// viewCommand creates the view command, an interactive tree browser for
// saved graphs.
func (c *CLI) viewCommand() *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:   "view [graph.json]",
		Short: "Browse a saved graph as an interactive tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", "", "root concept (default: the most connected node)")
	cmd.Flags().StringVar(&opts.scorer, "scorer", "", "category scorer: overlap (default), first, exact")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print the tree and exit")

	return cmd
}

func runView(ctx context.Context, input string, opts viewOpts, stdout io.Writer) error {
	scorer, err := hierarchy.ScorerByName(opts.scorer)
	if err != nil {
		return err
	}
	h, err := loadHierarchy(input, opts.root, scorer)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("loaded hierarchy", "root", h.Root, "nodes", h.NodeCount())

	if opts.plain {
		return writeTree(stdout, h)
	}

	p := tea.NewProgram(NewTreeModel(h), tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// writeTree prints h as an indented outline, one node per line.
func writeTree(w io.Writer, h hierarchy.Hierarchy) error {
	for _, r := range NewTreeModel(h).rows {
		line := strings.Repeat("  ", r.depth) + r.label
		if r.relation != "" {
			line += " (" + r.relation + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
