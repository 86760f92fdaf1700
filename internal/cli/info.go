package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/picforge/picforge/pkg/layout"
)

// infoCommand creates the info command, which summarizes a previously
// built layout file: its cells, reference counts, and top-level ports.
func (c *CLI) infoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [layout.json]",
		Short: "Summarize a built layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := layout.ReadFile(args[0])
			if err != nil {
				return err
			}
			printLayout(l)
			return nil
		},
	}
	return cmd
}

func printLayout(l *layout.Layout) {
	fmt.Println(StyleTitle.Render(l.Name))
	printDetail("%d cells", len(l.Cells))
	printNewline()

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)

	var rows [][]string
	for _, cell := range l.Cells {
		rows = append(rows, []string{
			cell.Name,
			fmt.Sprintf("%d", len(cell.Polygons)),
			fmt.Sprintf("%d", len(cell.Refs)),
			fmt.Sprintf("%d", len(cell.Ports)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Cell", "Polygons", "Refs", "Ports").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
	fmt.Println(t.Render())

	// The last cell is the top of the hierarchy.
	if len(l.Cells) == 0 {
		return
	}
	top := l.Cells[len(l.Cells)-1]
	if len(top.Ports) == 0 {
		return
	}

	printNewline()
	fmt.Println(StyleHighlight.Render("Ports of " + top.Name))
	for _, p := range top.Ports {
		printKeyValue(p.Name, fmt.Sprintf("(%.3f, %.3f) %.0f° w=%.3f %s",
			p.Center.X, p.Center.Y, p.Orientation, p.Width, p.CrossSection))
	}
}
