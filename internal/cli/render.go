package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func title(s string) string { return titleStyle.Render(s) }
func muted(s string) string { return mutedStyle.Render(s) }

// Renderer turns Markdown model output into terminal text.
type Renderer interface {
	Render(markdown string) string
}

// PlainRenderer prints Markdown as is.
type PlainRenderer struct{}

func (PlainRenderer) Render(md string) string {
	return strings.TrimRight(md, "\n")
}

// GlamourRenderer renders Markdown with glamour, falling back to the raw
// text when rendering fails.
type GlamourRenderer struct {
	tr *glamour.TermRenderer
}

// NewGlamourRenderer builds a renderer for style ("auto" picks dark or
// light from the terminal background).
func NewGlamourRenderer(style string, width int) (*GlamourRenderer, error) {
	styleOpt := glamour.WithStandardStyle(style)
	if style == "" || style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	return &GlamourRenderer{tr: tr}, nil
}

func (g *GlamourRenderer) Render(md string) string {
	out, err := g.tr.Render(md)
	if err != nil {
		return PlainRenderer{}.Render(md)
	}
	return strings.TrimRight(out, "\n")
}
