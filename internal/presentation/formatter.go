// Package presentation renders registry and feedback data for the terminal.
package presentation

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentic-framework/agentic-core/internal/feedback"
	"github.com/agentic-framework/agentic-core/internal/venv"
)

var (
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// StatusGlyph returns the colored one-character indicator for a status.
func StatusGlyph(status venv.Status) string {
	switch status {
	case venv.StatusValid:
		return validStyle.Render("✓")
	case venv.StatusInvalid:
		return invalidStyle.Render("!")
	default:
		return missingStyle.Render("✗")
	}
}

// Formatter handles output formatting.
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter.
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{writer: writer}
}

// FormatEnvironments renders the venv list output. Verbose adds description
// and timestamps; showPackages adds the top of the package snapshot.
func (f *Formatter) FormatEnvironments(entries []venv.ListEntry, verbose, showPackages bool) {
	if len(entries) == 0 {
		fmt.Fprintln(f.writer, "No virtual environments registered")
		return
	}

	fmt.Fprintf(f.writer, "Registered Virtual Environments (%d):\n", len(entries))
	fmt.Fprintln(f.writer, dimStyle.Render("--------------------------------------------------------------------------------"))

	for i, entry := range entries {
		rec := entry.Record
		fmt.Fprintf(f.writer, "%d. %s %s\n", i+1, StatusGlyph(entry.Status), rec.ProjectName)
		fmt.Fprintf(f.writer, "   Path: %s\n", rec.Path)
		fmt.Fprintf(f.writer, "   Python: %s\n", rec.PythonVersion)

		if verbose {
			fmt.Fprintf(f.writer, "   Description: %s\n", rec.Description)
			fmt.Fprintf(f.writer, "   Created: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(f.writer, "   Last Used: %s\n", rec.LastUsed.Format("2006-01-02 15:04:05"))

			if showPackages && len(rec.Packages) > 0 {
				fmt.Fprintln(f.writer, "   Installed Packages:")
				shown := rec.Packages
				if len(shown) > 10 {
					shown = shown[:10]
				}
				for _, pkg := range shown {
					fmt.Fprintf(f.writer, "     - %s (%s)\n", pkg.Name, pkg.Version)
				}
				if extra := len(rec.Packages) - 10; extra > 0 {
					fmt.Fprintf(f.writer, "     ... and %d more\n", extra)
				}
			}
		}
		fmt.Fprintln(f.writer)
	}
}

// FormatCheck renders the outcome of a check operation.
func (f *Formatter) FormatCheck(result venv.CheckResult) {
	if result.Status == venv.StatusNotRegistered {
		fmt.Fprintln(f.writer, "Virtual environment not found in registry")
		return
	}

	rec := result.Record
	fmt.Fprintf(f.writer, "Virtual environment found: %s (%s)\n", rec.Path, rec.ProjectName)
	switch result.Status {
	case venv.StatusValid:
		fmt.Fprintf(f.writer, "Status: %s Valid\n", StatusGlyph(result.Status))
	case venv.StatusInvalid:
		fmt.Fprintf(f.writer, "Status: %s Invalid or corrupted\n", StatusGlyph(result.Status))
	case venv.StatusMissing:
		fmt.Fprintf(f.writer, "Status: %s Directory does not exist\n", StatusGlyph(result.Status))
	}
}

// FormatFeedbackItems renders a feedback listing.
func (f *Formatter) FormatFeedbackItems(items []*feedback.Item) {
	if len(items) == 0 {
		fmt.Fprintln(f.writer, "No feedback items")
		return
	}

	for _, item := range items {
		fmt.Fprintf(f.writer, "%s  [%s/%s] %s (%s)\n",
			shortID(item.ID), item.Type, item.Priority, item.Title, item.Status)
	}
}

// FormatFeedbackItem renders one feedback item in full.
func (f *Formatter) FormatFeedbackItem(item *feedback.Item) {
	fmt.Fprintf(f.writer, "ID:          %s\n", item.ID)
	fmt.Fprintf(f.writer, "Type:        %s\n", item.Type)
	fmt.Fprintf(f.writer, "Priority:    %s\n", item.Priority)
	fmt.Fprintf(f.writer, "Status:      %s\n", item.Status)
	fmt.Fprintf(f.writer, "Title:       %s\n", item.Title)
	fmt.Fprintf(f.writer, "Description: %s\n", item.Description)
	fmt.Fprintf(f.writer, "Created:     %s\n", item.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f.writer, "Updated:     %s\n", item.UpdatedAt.Format("2006-01-02 15:04:05"))
	if len(item.Comments) > 0 {
		fmt.Fprintln(f.writer, "Comments:")
		for _, c := range item.Comments {
			fmt.Fprintf(f.writer, "  [%s] %s: %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.Author, c.Text)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
