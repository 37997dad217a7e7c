package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/render"
)

// sampleSource is the small diagram used for style previews.
const sampleSource = `graph TD
  A[Start] --> B{OK?}
  B -->|yes| C[Done]
  B -->|no| D[Retry]
  D --> B
`

// stylesCommand creates the styles command, which lists the glyph styles.
// With --pick it opens an interactive picker with a live preview of each
// style and prints the chosen name.
func (c *CLI) stylesCommand() *cobra.Command {
	var pick bool
	var preview bool

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the available glyph styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pick {
				return c.runStylePicker()
			}
			return c.runStyles(preview)
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "interactively pick a style with a live preview")
	cmd.Flags().BoolVar(&preview, "preview", false, "render a sample diagram in every style")

	return cmd
}

func (c *CLI) runStyles(preview bool) error {
	for _, s := range render.Styles() {
		name := string(s)
		if s == render.DefaultStyle {
			name += " " + StyleDim.Render("(default)")
		}
		printInfo("%s", name)
		if preview {
			out, err := renderSample(s)
			if err != nil {
				return err
			}
			fmt.Println(indent(out, "    "))
			fmt.Println()
		}
	}
	return nil
}

func (c *CLI) runStylePicker() error {
	style, ok, err := pickStyle()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	fmt.Println(string(style))
	return nil
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
