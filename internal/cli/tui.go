package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/bingoforge/pkg/draw"
)

// historyLen is how many past calls the screen keeps visible.
const historyLen = 8

// drawModel is the bubbletea model for the interactive caller screen.
type drawModel struct {
	seq        *draw.Sequence
	sayColumns bool
	count      int
	current    string
	history    []string
	exhausted  bool
}

// newDrawModel creates the caller screen over a draw sequence.
func newDrawModel(seq *draw.Sequence, sayColumns bool) drawModel {
	return drawModel{seq: seq, sayColumns: sayColumns}
}

func (m drawModel) Init() tea.Cmd {
	return nil
}

func (m drawModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter", " ":
			if m.exhausted {
				return m, tea.Quit
			}
			v, ok := m.seq.Next()
			if !ok {
				m.exhausted = true
				return m, nil
			}
			if m.current != "" {
				m.history = append(m.history, fmt.Sprintf("%d) %s", m.count, m.current))
				if len(m.history) > historyLen {
					m.history = m.history[len(m.history)-historyLen:]
				}
			}
			m.count++
			m.current = announce(v, m.sayColumns)
			if m.seq.Remaining() == 0 {
				m.exhausted = true
			}
		}
	}
	return m, nil
}

func (m drawModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Bingo Caller"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("⏎ draw  q quit"))
	b.WriteString("\n\n")

	if m.current == "" {
		b.WriteString(StyleDim.Render("Press enter to draw the first value."))
	} else {
		b.WriteString(fmt.Sprintf("%d) ", m.count))
		b.WriteString(StyleCall.Render(m.current))
	}
	b.WriteString("\n")

	if len(m.history) > 0 {
		b.WriteString("\n")
		for i := len(m.history) - 1; i >= 0; i-- {
			b.WriteString(StyleDim.Render(m.history[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styleCount.Render(fmt.Sprintf("[%d/%d drawn]", m.count, m.seq.Len())))
	if m.exhausted && m.count == m.seq.Len() {
		b.WriteString("\n")
		b.WriteString(StyleSuccess.Render("All the values have been drawn."))
	}
	b.WriteString("\n")

	return b.String()
}
