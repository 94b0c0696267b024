package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/CristiGvl/picoMaint/internal/temps"
	"github.com/CristiGvl/picoMaint/internal/tui"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	severityStyles = map[temps.Severity]lipgloss.Style{
		temps.Normal:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		temps.Warm:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		temps.Hot:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		temps.Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// withProgress runs task behind a spinner when the command talks to a
// terminal, and directly otherwise.
func withProgress[T any](cmd *cobra.Command, title string, task tui.Task[T]) (T, error) {
	if isTerminal(cmd.OutOrStdout()) && isTerminal(os.Stderr) {
		return tui.Run(cmd.Context(), title, task)
	}
	return task(cmd.Context())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderTable(w io.Writer, t *table.Table) {
	fmt.Fprintln(w, t.Render())
}
