package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/pipeline"
)

// layoutCommand creates the layout command, which stops the pipeline after
// coordinate assignment and prints the positioned geometry as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute a layout and print the geometry as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runLayout(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "direction override: TD, BT, LR, RL")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "diagram kind (default: detect)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	registerValueCompletions(cmd)

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, input string, opts *renderOpts) error {
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
		Layout:    cfg.Layout,
		Logger:    c.Logger,
	}
	d, g, err := runner.Parse(cmd.Context(), po)
	if err != nil {
		return err
	}
	res, err := runner.ComputeLayout(cmd.Context(), d, g, po)
	if err != nil {
		return err
	}

	out := struct {
		Direction string `json:"direction"`
		Result    any    `json:"result"`
	}{Direction: res.Direction.String(), Result: res}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	if opts.output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := writeOutput(opts.output, append(data, '\n')); err != nil {
		return err
	}
	printSuccess("Laid out %d nodes on a %dx%d grid", len(res.Nodes), res.Width, res.Height)
	printFile(opts.output)
	return nil
}
