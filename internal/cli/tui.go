package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	paneStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	paneFocusStyle    = paneStyle.BorderForeground(colorCyan)
)

// =============================================================================
// PickModel - Interactive scheme and layout selection
// =============================================================================

type pane int

const (
	paneSchemes pane = iota
	paneLayouts
)

// PickModel is the bubbletea model for choosing a color scheme and layout.
// The headline fit for the current choice is shown below the lists.
type PickModel struct {
	Config    thumbnail.Config
	Scheme    int
	Layout    int
	Focus     pane
	Confirmed bool

	renderer *thumbnail.Renderer
}

// NewPickModel starts the cursors on cfg's scheme and layout.
func NewPickModel(cfg thumbnail.Config, r *thumbnail.Renderer) PickModel {
	cfg = cfg.Normalize()
	scheme := max(thumbnail.SchemeIndex(cfg.Scheme), 0)
	if r == nil {
		r = thumbnail.NewRenderer()
	}
	return PickModel{
		Config:   cfg,
		Scheme:   scheme,
		Layout:   max(cfg.Layout.Index(), 0),
		renderer: r,
	}
}

// Selected returns the config with the chosen scheme and layout.
func (m PickModel) Selected() thumbnail.Config {
	return m.Config.WithScheme(thumbnail.SchemeAt(m.Scheme)).WithLayout(thumbnail.LayoutAt(m.Layout))
}

func (m PickModel) Init() tea.Cmd {
	return nil
}

func (m PickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		m.Confirmed = true
		return m, tea.Quit
	case "tab", "left", "right", "h", "l":
		m.Focus = 1 - m.Focus
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "r":
		shuffled := m.Config.Shuffle(nil)
		m.Scheme = thumbnail.SchemeIndex(shuffled.Scheme)
		m.Layout = shuffled.Layout.Index()
	}
	return m, nil
}

func (m *PickModel) move(delta int) {
	if m.Focus == paneSchemes {
		m.Scheme = (m.Scheme + delta + len(thumbnail.Schemes)) % len(thumbnail.Schemes)
		return
	}
	m.Layout = (m.Layout + delta + len(thumbnail.Layouts)) % len(thumbnail.Layouts)
}

func (m PickModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pick Scheme and Layout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  tab switch  r random  ⏎ render  q quit"))
	b.WriteString("\n\n")

	schemes := make([]string, len(thumbnail.Schemes))
	for i, s := range thumbnail.Schemes {
		schemes[i] = m.line(i == m.Scheme, swatch(s.Accent)+" "+s.Name)
	}
	layouts := make([]string, len(thumbnail.Layouts))
	for i, l := range thumbnail.Layouts {
		layouts[i] = m.line(i == m.Layout, string(l))
	}

	left, right := paneStyle, paneStyle
	if m.Focus == paneSchemes {
		left = paneFocusStyle
	} else {
		right = paneFocusStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		left.Render(strings.Join(schemes, "\n")),
		" ",
		right.Render(strings.Join(layouts, "\n")),
	))
	b.WriteString("\n\n")

	plan := m.renderer.Plan(m.Selected())
	b.WriteString(StyleHeadline.Render(strings.Join(plan.Headline.Lines, " / ")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d line(s) at %gpx · %s", len(plan.Headline.Lines), plan.Headline.Size, plan.Decoration)))
	b.WriteString("\n")
	return b.String()
}

func (m PickModel) line(current bool, text string) string {
	if current {
		return listSelectedStyle.Render("▸ " + text)
	}
	return listNormalStyle.Render("  " + text)
}

// =============================================================================
// Pick Command
// =============================================================================

func (c *CLI) pickCommand() *cobra.Command {
	var (
		flags configFlags
		out   outputFlags
	)

	cmd := &cobra.Command{
		Use:   "pick [config.json|-]",
		Short: "Choose a color scheme and layout interactively, then render",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			settings, err := c.config()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(settings)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewPickModel(cfg, renderer), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			m, ok := final.(PickModel)
			if !ok || !m.Confirmed {
				newPrinter(cmd).info("Nothing rendered")
				return nil
			}
			return c.renderAndWrite(cmd, m.Selected(), &out)
		},
	}

	flags.register(cmd)
	out.register(cmd)
	return cmd
}
