package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func (c *CLI) schemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List the built-in color schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), schemesTable())
			return nil
		},
	}
}

func schemesTable() string {
	t := newTable("#", "Name", "Background", "", "Accent", "Text")
	for i, s := range thumbnail.Schemes {
		t.Row(
			StyleNumber.Render(strconv.Itoa(i)),
			StyleHighlight.Render(s.Name),
			swatch(s.Background[0]),
			swatch(s.Background[1]),
			swatch(s.Accent),
			swatch(s.Text),
		)
	}
	return t.Render()
}

func (c *CLI) layoutsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the layouts and their placement parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), layoutsTable())
			return nil
		},
	}
}

func layoutsTable() string {
	t := newTable("#", "Layout", "Size", "Width", "Decoration", "Badge", "Emojis")
	for i, l := range thumbnail.Layouts {
		p := thumbnail.PlacementFor(l)
		t.Row(
			StyleNumber.Render(strconv.Itoa(i)),
			StyleHighlight.Render(string(l)),
			fmt.Sprintf("%gpx", p.BaseFontSize),
			fmt.Sprintf("%gpx", p.MaxWidth()),
			string(p.Decoration),
			string(p.Badge),
			string(p.Emojis),
		)
	}
	return t.Render()
}
