package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const stateColumn = 1

type tableStyles struct {
	header lipgloss.Style
	cell   lipgloss.Style
	alive  lipgloss.Style
	dead   lipgloss.Style
	border lipgloss.Style
	info   lipgloss.Style
	notice lipgloss.Style
}

// newTableStyles binds the palette to w so colour is dropped when w is not a terminal
func newTableStyles(w io.Writer) tableStyles {
	re := lipgloss.NewRenderer(w)
	cell := re.NewStyle().Padding(0, 1)

	return tableStyles{
		header: cell.Foreground(lipgloss.Color("6")).Bold(true),
		cell:   cell,
		alive:  cell.Foreground(lipgloss.Color("2")),
		dead:   cell.Foreground(lipgloss.Color("1")),
		border: re.NewStyle().Foreground(lipgloss.Color("4")),
		info:   re.NewStyle().Foreground(lipgloss.Color("7")),
		notice: re.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func writeTable(w io.Writer, report Report) error {
	styles := newTableStyles(w)

	if _, err := fmt.Fprintln(w, styles.info.Render(fmt.Sprintf("scan completed in %.1fs", report.DurationSeconds))); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, styles.info.Render(fmt.Sprintf("total discovered %d | alive targets %d", report.Total, report.Alive))); err != nil {
		return err
	}

	if len(report.Rows) == 0 {
		_, err := fmt.Fprintln(w, styles.notice.Render(NoResultsMessage))

		return err
	}

	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, r.Fields())
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.header
			case col != stateColumn || row < 0 || row >= len(rows):
				return styles.cell
			case rows[row][col] == StateAlive:
				return styles.alive
			default:
				return styles.dead
			}
		}).
		Headers(Headers...).
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.Render())

	return err
}
