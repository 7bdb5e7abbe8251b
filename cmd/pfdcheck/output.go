package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
)

// printer writes styled lines to one writer
type printer struct {
	w io.Writer
}

func (p printer) header(msg string) { fmt.Fprintln(p.w, headerStyle.Render(msg)) }
func (p printer) info(msg string)   { fmt.Fprintln(p.w, infoStyle.Render("ℹ️  "+msg)) }
func (p printer) step(msg string)   { fmt.Fprintln(p.w, stepStyle.Render("   "+msg)) }

// result prints one feedback line styled by severity
func (p printer) result(r feedback.Result) {
	line := fmt.Sprintf("[%s] %s: %s", r.Key, r.Target, r.Message)
	switch r.Severity {
	case feedback.Error:
		fmt.Fprintln(p.w, errorStyle.Render("❌ "+line))
	case feedback.Warning:
		fmt.Fprintln(p.w, warnStyle.Render("⚠️  "+line))
	default:
		fmt.Fprintln(p.w, successStyle.Render("✅ "+line))
	}
}

func (p printer) failure(err error) { fmt.Fprintln(p.w, errorStyle.Render("❌ "+err.Error())) }
