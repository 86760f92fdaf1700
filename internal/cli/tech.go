package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/picforge/picforge/pkg/cells"
	"github.com/picforge/picforge/pkg/tech"
)

// techCommand creates the tech command, which inspects the built-in
// generic technology: its layers, cross-sections, and registered
// transitions.
func (c *CLI) techCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tech",
		Short: "Inspect the generic technology",
		RunE: func(cmd *cobra.Command, args []string) error {
			printTechnology(cells.Generic())
			return nil
		},
	}
	return cmd
}

func printTechnology(t *tech.Technology) {
	fmt.Println(StyleTitle.Render(t.Name()))
	printNewline()

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	borderStyle := lipgloss.NewStyle().Foreground(colorDim)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)

	styleFunc := func(row, col int) lipgloss.Style {
		if row == -1 {
			return headerStyle.Padding(0, 1)
		}
		return cellStyle
	}

	var xsRows [][]string
	for _, name := range t.CrossSectionNames() {
		xs, err := t.CrossSection(name)
		if err != nil {
			continue
		}
		xsRows = append(xsRows, []string{
			name,
			fmt.Sprintf("%.3f", xs.Width),
			fmt.Sprintf("%.3f", xs.Gap),
			fmt.Sprintf("%.1f", xs.RadiusMin),
			xs.Layer.String(),
		})
	}

	fmt.Println(StyleHighlight.Render("Cross-sections"))
	xsTable := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Name", "Width", "Gap", "Min radius", "Layer").
		Rows(xsRows...).
		StyleFunc(styleFunc)
	fmt.Println(xsTable.Render())
	printNewline()

	var trRows [][]string
	for _, key := range t.TransitionKeys() {
		kind := "pair"
		if key.IsTaper() {
			kind = "taper"
		}
		trRows = append(trRows, []string{key.String(), kind})
	}

	fmt.Println(StyleHighlight.Render("Transitions"))
	trTable := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Layers", "Kind").
		Rows(trRows...).
		StyleFunc(styleFunc)
	fmt.Println(trTable.Render())
}
