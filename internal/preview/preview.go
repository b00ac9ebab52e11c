// Package preview is an interactive terminal view that re-converts its input
// while the user types.
package preview

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jusunglee/gurmukhi/internal/legacy"
	"github.com/jusunglee/gurmukhi/internal/transliteration"
)

// DefaultDebounce is how long typing must pause before the view refreshes.
const DefaultDebounce = 150 * time.Millisecond

// convertMsg asks for a refresh of the text as it was at revision rev.
type convertMsg struct {
	rev int
}

type model struct {
	tr       *transliteration.Transliterator
	input    textinput.Model
	encoding legacy.Encoding
	debounce time.Duration
	rev      int
	variants map[transliteration.Style]string
	err      error
	width    int
}

func newModel(tr *transliteration.Transliterator, enc legacy.Encoding, debounce time.Duration) model {
	ti := textinput.New()
	ti.Placeholder = "type Gurmukhi, or AnmolLipi after pressing tab"
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 60

	if enc == "" {
		enc = transliteration.UnicodeInput
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return model{
		tr:       tr,
		input:    ti,
		encoding: enc,
		debounce: debounce,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.encoding = toggleEncoding(m.encoding)
			m.rev++
			m.refresh()
			return m, nil
		}

	case convertMsg:
		if msg.rev == m.rev {
			m.refresh()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.rev++
	rev := m.rev
	tick := tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return convertMsg{rev: rev}
	})
	return m, tea.Batch(cmd, tick)
}

func (m *model) refresh() {
	variants, err := m.tr.Variants(m.input.Value(), m.encoding)
	m.err = err
	if err == nil {
		m.variants = variants
	}
}

func toggleEncoding(enc legacy.Encoding) legacy.Encoding {
	if enc == legacy.AnmolLipi {
		return transliteration.UnicodeInput
	}
	return legacy.AnmolLipi
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Gurmukhi live preview"))
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Input encoding: ") + valueStyle.Render(string(m.encoding)))
	s.WriteString("\n\n")
	s.WriteString("> " + m.input.View())
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render(m.err.Error()))
		s.WriteString("\n\n")
	}
	if m.input.Value() != "" && m.variants != nil {
		s.WriteString(RenderVariants(m.variants, m.width))
		s.WriteString("\n\n")
	}

	s.WriteString(dimStyle.Render("tab: switch encoding   esc: quit"))
	s.WriteString("\n")
	return s.String()
}

// Run starts the preview and blocks until the user quits.
func Run(tr *transliteration.Transliterator, enc legacy.Encoding, debounce time.Duration) error {
	_, err := tea.NewProgram(newModel(tr, enc, debounce)).Run()
	return err
}
