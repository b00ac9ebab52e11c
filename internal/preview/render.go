package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jusunglee/gurmukhi/internal/transliteration"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

var styleLabels = map[transliteration.Style]string{
	transliteration.StyleUnicode:   "Unicode",
	transliteration.StyleISO15919:  "ISO 15919",
	transliteration.StylePractical: "Practical",
	transliteration.StyleSearch:    "Search key",
}

// RenderVariants draws one bordered block per style, in display order.
// Styles missing from variants are skipped. width <= 0 leaves blocks unsized.
func RenderVariants(variants map[transliteration.Style]string, width int) string {
	box := boxStyle
	if width > 4 {
		box = box.Width(width - 2)
	}

	var blocks []string
	for _, style := range transliteration.Styles {
		v, ok := variants[style]
		if !ok {
			continue
		}
		body := labelStyle.Render(styleLabels[style]) + "\n" + valueStyle.Render(v)
		blocks = append(blocks, box.Render(body))
	}
	return strings.Join(blocks, "\n")
}
