package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/pipeline"
)

// parseCommand creates the parse command, which stops the pipeline after the
// first stage and prints the graph as JSON. Useful for debugging markup and
// for feeding other tools.
func (c *CLI) parseCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse diagram markup and print the graph as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runParse(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "direction override: TD, BT, LR, RL")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "diagram kind (default: detect)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	registerValueCompletions(cmd)

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, input string, opts *renderOpts) error {
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

	po := pipeline.Options{
		Source:    source,
		Kind:      opts.kind,
		Direction: opts.direction,
		Logger:    c.Logger,
	}
	_, g, err := runner.Parse(cmd.Context(), po)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return graph.Write(os.Stdout, g)
	}
	data, err := graph.Marshal(g)
	if err != nil {
		return err
	}
	if err := writeOutput(opts.output, append(data, '\n')); err != nil {
		return err
	}
	printSuccess("Parsed %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	printFile(opts.output)
	return nil
}
