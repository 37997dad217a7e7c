package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flowgrid/flowgrid/pkg/layout"
	"github.com/flowgrid/flowgrid/pkg/parse"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// renderSample runs the sample diagram through the full pipeline in the
// given style.
func renderSample(style render.Style) (string, error) {
	g, err := parse.New().Parse(sampleSource)
	if err != nil {
		return "", err
	}
	res, err := layout.Layout(g, layout.DefaultConfig())
	if err != nil {
		return "", err
	}
	return render.Render(res, render.WithGraph(g), render.WithStyle(style))
}

// styleListModel is the bubbletea model for interactive style selection.
// Each cursor move re-renders the sample diagram in the highlighted style.
type styleListModel struct {
	styles   []render.Style
	previews map[render.Style]string
	cursor   int
	selected *render.Style
}

func newStyleListModel() styleListModel {
	styles := render.Styles()
	previews := make(map[render.Style]string, len(styles))
	for _, s := range styles {
		out, err := renderSample(s)
		if err != nil {
			out = StyleWarning.Render(err.Error())
		}
		previews[s] = out
	}
	return styleListModel{styles: styles, previews: previews}
}

func (m styleListModel) Init() tea.Cmd {
	return nil
}

func (m styleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.styles)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = &m.styles[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m styleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Style"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, s := range m.styles {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		name := string(s)
		if s == render.DefaultStyle {
			name += listDimStyle.Render(" (default)")
		}
		line := cursor + name
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(indent(m.previews[m.styles[m.cursor]], "  "))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.styles))))

	return b.String()
}

// pickStyle runs the interactive style picker. The second return reports
// whether a style was chosen (as opposed to the picker being quit).
func pickStyle() (render.Style, bool, error) {
	final, err := tea.NewProgram(newStyleListModel()).Run()
	if err != nil {
		return "", false, err
	}
	m, ok := final.(styleListModel)
	if !ok || m.selected == nil {
		return "", false, nil
	}
	return *m.selected, true, nil
}
