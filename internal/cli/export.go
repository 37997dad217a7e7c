package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/export"
	"github.com/flowgrid/flowgrid/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output    string
	format    string
	direction string
	kind      string
	noCache   bool
}

// exportCommand creates the export command, which converts a diagram to
// Graphviz DOT or renders it to SVG or PNG through Graphviz.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a diagram to DOT, SVG, or PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runExport(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", export.FormatDOT, "output format: dot (default), svg, png")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "direction override: TD, BT, LR, RL")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "diagram kind (default: detect)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	registerValueCompletions(cmd)

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, input string, opts *exportOpts) error {
	if err := export.ValidateFormat(opts.format); err != nil {
		return err
	}

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

	var data []byte
	if opts.format == export.FormatDOT {
		data, err = export.Export(cmd.Context(), g, opts.format)
	} else {
		// Graphviz rendering can take a moment on large graphs.
		sp := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Rendering %s", opts.format))
		sp.Start()
		data, err = export.Export(cmd.Context(), g, opts.format)
		sp.Stop()
	}
	if err != nil {
		return err
	}

	// DOT with no output path prints to stdout; image formats always need a
	// file.
	if opts.output == "" && (input == "" || input == "-") {
		if opts.format != export.FormatDOT {
			return fmt.Errorf("--output is required when reading %s export from stdin", opts.format)
		}
		fmt.Print(string(data))
		return nil
	}

	path := outputPath(opts.output, input, opts.format)
	if err := writeOutput(path, data); err != nil {
		return err
	}
	printSuccess("Exported %s (%d bytes)", opts.format, len(data))
	printFile(path)
	return nil
}
