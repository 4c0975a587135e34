// Package ui holds the terminal plumbing of the assistant: line input and
// coloured output.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("#e6f7ff")).Bold(true)
	styleInfo   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))
	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("#34c759"))
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff3b30")).Bold(true)
	styleReply  = lipgloss.NewStyle().Foreground(lipgloss.Color("#007aff")).Bold(true)
)

// Palette renders text in the assistant's colours, or verbatim when colour
// is disabled.
type Palette struct {
	Color bool
}

// DetectPalette enables colour for a terminal stdout unless NO_COLOR is set
// or TERM is dumb.
func DetectPalette() Palette {
	if os.Getenv("NO_COLOR") != "" || strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return Palette{}
	}
	return Palette{Color: isatty.IsTerminal(os.Stdout.Fd())}
}

func (p Palette) render(s lipgloss.Style, text string) string {
	if !p.Color {
		return text
	}
	return s.Render(text)
}

func (p Palette) Header(text string) string { return p.render(styleHeader, text) }
func (p Palette) Info(text string) string   { return p.render(styleInfo, text) }
func (p Palette) OK(text string) string     { return p.render(styleOK, text) }
func (p Palette) Error(text string) string  { return p.render(styleError, text) }
func (p Palette) Reply(text string) string  { return p.render(styleReply, text) }
