package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	avgStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Render formats the collected rows as a table followed by totals and
// averages. An empty collection renders a short notice instead.
func Render(rows []Row) string {
	if len(rows) == 0 {
		return "No account statistics available"
	}

	headers := []string{"# Account", "Credential", "Balance", "Operations"}
	cells := make([][]string, 0, len(rows))
	totalBalance := 0.0
	totalOps := 0
	for _, r := range rows {
		cells = append(cells, []string{
			fmt.Sprintf("%d", r.AccountIndex),
			r.Label,
			fmt.Sprintf("%.4f", r.Balance),
			fmt.Sprintf("%d", r.Operations),
		})
		totalBalance += r.Balance
		totalOps += r.Operations
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Account Statistics (%d accounts)", len(rows))))
	sb.WriteString("\n")

	for i, h := range headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")
	for _, row := range cells {
		for i, cell := range row {
			sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
		}
		sb.WriteString("\n")
	}

	n := float64(len(rows))
	sb.WriteString(totalStyle.Render(fmt.Sprintf("Total balance: %.4f", totalBalance)))
	sb.WriteString("\n")
	sb.WriteString(totalStyle.Render(fmt.Sprintf("Total operations: %d", totalOps)))
	sb.WriteString("\n")
	sb.WriteString(avgStyle.Render(fmt.Sprintf("Average balance: %.4f", totalBalance/n)))
	sb.WriteString("\n")
	sb.WriteString(avgStyle.Render(fmt.Sprintf("Average operations: %.1f", float64(totalOps)/n)))
	return sb.String()
}
