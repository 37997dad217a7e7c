package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/config"
	"github.com/flowgrid/flowgrid/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path; empty writes to stdout
	style     string // glyph style: ascii, unicode, unicode-math, compact
	direction string // direction override: TD, BT, LR, RL
	kind      string // diagram dialect; empty detects from the source
	noCache   bool   // disable the result cache
	refresh   bool   // bypass the parse cache
}

// renderCommand creates the render command, the main entry point of the CLI.
// It runs the full parse, layout, and draw pipeline on one diagram.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render diagram markup as a character grid",
		Long: `Render parses flowchart markup, computes a layered layout, and draws
the result as a character grid. Reads from the named file, or from stdin
when the name is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runRender(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.style, "style", "s", "", "glyph style: unicode (default), ascii, unicode-math, compact")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "direction override: TD, BT, LR, RL")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "diagram kind (default: detect)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-parse even if the source is cached")
	registerValueCompletions(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	source, err := readSource(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(cmd.Context(), c.pipelineOptions(cfg, source, opts))
	if err != nil {
		return err
	}

	for _, w := range result.Layout.Warnings {
		printWarning("%s", w.Message)
	}

	if opts.output == "" {
		fmt.Println(result.Output)
		return nil
	}
	if err := writeOutput(opts.output, []byte(result.Output+"\n")); err != nil {
		return err
	}
	printSuccess("Rendered %d nodes, %d edges", result.Stats.NodeCount, result.Stats.EdgeCount)
	printFile(opts.output)
	printStats(result.Stats, result.CacheInfo.RenderHit)
	return nil
}

// pipelineOptions merges config file settings with command flags. Flags win.
func (c *CLI) pipelineOptions(cfg config.Config, source string, opts *renderOpts) pipeline.Options {
	po := pipeline.Options{
		Source:    source,
		Kind:      opts.kind,
		Style:     cfg.Style,
		Direction: cfg.Direction,
		Layout:    cfg.Layout,
		Refresh:   opts.refresh,
		Logger:    c.Logger,
	}
	if opts.style != "" {
		po.Style = opts.style
	}
	if opts.direction != "" {
		po.Direction = opts.direction
	}
	return po
}
