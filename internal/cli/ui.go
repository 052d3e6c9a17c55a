package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/treeflow/pkg/decision"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // teal: headings, live values
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	styleHeading = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleText    = lipgloss.NewStyle().Foreground(colorText)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleFaint   = lipgloss.NewStyle().Foreground(colorFaint)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleLive    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleField   = lipgloss.NewStyle().Foreground(colorMuted).Width(16)
)

const (
	glyphOK   = "✓"
	glyphWarn = "!"
	glyphInfo = "›"
	glyphFile = "→"
	glyphNode = "■"
)

// =============================================================================
// Console
// =============================================================================

// console writes styled status lines for one command. Commands build it
// from cmd.OutOrStdout so tests can silence or capture it.
type console struct {
	w io.Writer
}

func (c console) heading(title string) {
	fmt.Fprintln(c.w, styleHeading.Render(title))
}

func (c console) ok(format string, args ...any) {
	fmt.Fprintln(c.w, styleOK.Render(glyphOK)+" "+fmt.Sprintf(format, args...))
}

func (c console) warn(format string, args ...any) {
	fmt.Fprintln(c.w, styleWarn.Render(glyphWarn)+" "+styleWarn.Render(fmt.Sprintf(format, args...)))
}

func (c console) info(format string, args ...any) {
	fmt.Fprintln(c.w, styleMuted.Render(glyphInfo)+" "+fmt.Sprintf(format, args...))
}

// file prints an indented path line under the previous status line.
func (c console) file(path string) {
	fmt.Fprintln(c.w, "  "+styleFaint.Render(glyphFile)+" "+styleText.Render(path))
}

func (c console) field(key, value string) {
	fmt.Fprintln(c.w, styleField.Render(key)+" "+styleText.Render(value))
}

// =============================================================================
// Node styling
// =============================================================================

// accentOf is the color nodes created from it are drawn in.
func accentOf(it decision.PaletteItem) string {
	if it.NodeType == decision.KindCondition {
		return decision.ConditionAccent
	}
	if m, ok := decision.MetaOf(it.ComponentType); ok {
		return m.Accent
	}
	return "#d9d9d9"
}

// swatch is a one-cell block in a node's accent color.
func swatch(accent string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Render(glyphNode)
}
