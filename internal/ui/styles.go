// Package ui styles the human-facing notices written to the error stream.
// Styling is dropped automatically when the writer is not a color terminal,
// so piped and captured output stays plain.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles renders notices for one writer
type Styles struct {
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	subtle  lipgloss.Style
}

// New returns styles whose color profile is detected from w.
func New(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
		warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		subtle:  r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Success renders a confirmation such as a completed removal
func (s *Styles) Success(text string) string { return s.success.Render(text) }

// Warning renders a soft notice such as a cancelled operation
func (s *Styles) Warning(text string) string { return s.warning.Render(text) }

// Failure renders an error line
func (s *Styles) Failure(text string) string { return s.failure.Render(text) }

// Subtle renders a single line of secondary detail such as a trace header
func (s *Styles) Subtle(text string) string { return s.subtle.Render(text) }
