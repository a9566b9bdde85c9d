package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output         string // output file path; stdout when empty
	graphOut       string // optional path for the repaired graph JSON
	format         string // mermaid, dot, svg or json
	direction      string // flowchart direction
	scorer         string // category scorer name
	research       bool   // enrich the text with web search results
	relations      bool   // label DOT/SVG edges with their relation
	refresh        bool   // bypass cached extractions and searches
	noCache        bool   // disable caching entirely
	failureDiagram bool   // render an error map when every backend fails
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [text...]",
		Short: "Generate a mind map from text",
		Long: `Generate a mind map from free-form text.

The text is taken from the arguments, or read from stdin when no arguments
are given or the only argument is "-". Without backend credentials the
command serves an illustrative offline map.`,
		Example: `  mindmap generate "Machine learning is a subset of artificial intelligence"
  cat notes.txt | mindmap generate --research -f svg -o notes.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), text, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.graphOut, "save-graph", "", "also write the extracted graph as JSON to this file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.DefaultFormat, "output format: mermaid, dot, svg, json")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "diagram direction: LR (default), RL, TD, TB, BT")
	cmd.Flags().StringVar(&opts.scorer, "scorer", "", "category scorer: overlap (default), first, exact")
	cmd.Flags().BoolVarP(&opts.research, "research", "r", false, "enrich the text with web search results")
	cmd.Flags().BoolVar(&opts.relations, "relations", false, "label edges with their relation (dot, svg)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.failureDiagram, "failure-diagram", false, "render an error map instead of failing when every backend fails")

	return cmd
}

// readText joins args with spaces, or reads all of r when args is empty or
// a single "-".
func readText(args []string, r io.Reader) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func (c *CLI) runGenerate(ctx context.Context, text string, opts generateOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, runnerOpts{noCache: opts.noCache, refresh: opts.refresh})
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Text:           text,
		ResearchMode:   opts.research,
		Refresh:        opts.refresh,
		Scorer:         opts.scorer,
		Format:         opts.format,
		Direction:      opts.direction,
		Relations:      opts.relations,
		FailureDiagram: opts.failureDiagram,
		Logger:         logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(logger)
	var spinner *Spinner
	if opts.output != "" {
		spinner = newSpinnerWithContext(ctx, "Generating mind map...")
		spinner.Start()
	}
	res, err := runner.Execute(ctx, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("generate: %s", mmerrors.UserMessage(err))
	}
	prog.done("Generated mind map",
		"backend", res.BackendUsed,
		"nodes", res.Stats.NodeCount,
		"categories", res.Stats.CategoryCount,
	)

	if opts.graphOut != "" {
		if err := graph.WriteGraphFile(res.Graph, opts.graphOut); err != nil {
			return err
		}
	}

	if opts.output == "" {
		_, err := stdout.Write(withNewline(res.Artifact))
		return err
	}
	if err := os.WriteFile(opts.output, res.Artifact, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	printSuccess("Generated mind map")
	printFile(opts.output)
	if opts.graphOut != "" {
		printFile(opts.graphOut)
	}
	printMapSummary(res)
	if opts.graphOut != "" {
		printNextStep("Browse it", "mindmap view "+opts.graphOut)
	}
	return nil
}

// withNewline terminates text output for the terminal.
func withNewline(b []byte) []byte {
	if len(b) == 0 || b[len(b)-1] == '\n' {
		return b
	}
	return append(b, '\n')
}
