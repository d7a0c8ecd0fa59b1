package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/textcodec/charset"
	"github.com/wippyai/textcodec/transcoder"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	encStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectEncoding modelState = iota
	stateInputText
	stateShowResult
)

type interactiveModel struct {
	encodings []*charset.Encoding
	selected  int
	offset    int
	input     textinput.Model
	state     modelState

	encoded   []byte
	roundTrip string
	hadErrors bool
}

func newInteractiveModel() *interactiveModel {
	input := textinput.New()
	input.Placeholder = "text to encode"
	input.CharLimit = 256
	input.Width = 60

	encodings := make([]*charset.Encoding, 0)
	for _, e := range charset.All() {
		if e.OutputEncoding() == e {
			encodings = append(encodings, e)
		}
	}

	return &interactiveModel{
		encodings: encodings,
		input:     input,
		state:     stateSelectEncoding,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputText {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectEncoding && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectEncoding && m.selected < len(m.encodings)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectEncoding:
				m.state = stateInputText
				m.input.Focus()
				return m, textinput.Blink
			case stateInputText:
				m.convert()
				m.state = stateShowResult
			case stateShowResult:
				m.state = stateInputText
				m.input.Focus()
				return m, textinput.Blink
			}

		case "esc":
			switch m.state {
			case stateInputText:
				m.input.Blur()
				m.state = stateSelectEncoding
			case stateShowResult:
				m.state = stateSelectEncoding
			}
		}
	}

	if m.state == stateInputText {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) convert() {
	e := m.encodings[m.selected]
	m.encoded, _, m.hadErrors = transcoder.Encode(e, m.input.Value())
	m.roundTrip, _ = transcoder.DecodeWithoutBOMHandling(e, m.encoded)
}

const visibleRows = 12

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("textconv"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectEncoding:
		if m.selected < m.offset {
			m.offset = m.selected
		}
		if m.selected >= m.offset+visibleRows {
			m.offset = m.selected - visibleRows + 1
		}
		end := m.offset + visibleRows
		if end > len(m.encodings) {
			end = len(m.encodings)
		}
		for i := m.offset; i < end; i++ {
			e := m.encodings[i]
			line := fmt.Sprintf("  %-16s", e.Name())
			if e.IsSingleByte() {
				line += detailStyle.Render(" single-byte")
			}
			if i == m.selected {
				line = selectedStyle.Render("> " + e.Name())
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("up/down select encoding, enter confirm, q quit"))

	case stateInputText:
		b.WriteString(encStyle.Render(m.encodings[m.selected].Name()) + "\n\n")
		b.WriteString(m.input.View() + "\n\n")
		b.WriteString(helpStyle.Render("enter convert, esc back"))

	case stateShowResult:
		e := m.encodings[m.selected]
		b.WriteString(encStyle.Render(e.Name()) + "\n\n")
		b.WriteString(fmt.Sprintf("input:   %s\n", m.input.Value()))
		b.WriteString(fmt.Sprintf("encoded: %s\n", resultStyle.Render(fmt.Sprintf("% X", m.encoded))))
		b.WriteString(fmt.Sprintf("decoded: %s\n", m.roundTrip))
		if m.hadErrors {
			b.WriteString(warnStyle.Render("some characters were replaced by numeric character references") + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("enter new text, esc pick encoding, q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel())
	_, err := p.Run()
	return err
}
