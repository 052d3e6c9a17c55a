package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeflow/pkg/decision"
)

// paletteCommand creates the palette command.
func (c *CLI) paletteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the node types that can be dropped on the canvas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			con := console{cmd.OutOrStdout()}
			con.heading("Palette")
			fmt.Fprintln(con.w, paletteTable(decision.PaletteItems()))
			return nil
		},
	}
}

// paletteTable renders palette items as a table, each row marked with the
// accent color its nodes are drawn in.
func paletteTable(items []decision.PaletteItem) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{swatch(accentOf(it)), it.ID, string(it.NodeType), it.Label, it.Description})
	}

	headerStyle := styleMuted.Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleFaint).
		Headers("", "ID", "Kind", "Label", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 1 {
				return cell.Foreground(colorText)
			}
			return cell
		})
	return t.Render()
}
