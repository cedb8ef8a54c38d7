// Package tui provides the Bubble Tea practice prompt.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordwise/internal/model"
)

// ErrCanceled is returned when the user leaves the prompt without answering.
var ErrCanceled = errors.New("prompt canceled")

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	termStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	meaningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
)

// Model asks for the meaning of a single term.
type Model struct {
	term   string
	stats  model.Statistics
	input  textinput.Model
	width  int
	height int

	submitted bool
	canceled  bool
}

// NewModel constructs a prompt for term. stats feeds the footer.
func NewModel(term string, stats model.Statistics) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "meaning"
	input.CharLimit = 0
	input.Focus()
	return &Model{term: term, stats: stats, input: input}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(0, m.contentWidth()-lipgloss.Width(m.input.Prompt)-1)
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.submitted || m.canceled {
		return ""
	}
	width := m.contentWidth()
	lines := []string{
		titleStyle.Render("Word of the day"),
		"",
		termStyle.Render(Wrap(m.term, width)),
		"",
		"Enter the meaning of the word:",
		m.input.View(),
	}
	content := lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

// Value returns the typed answer.
func (m *Model) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Submitted reports whether the user pressed Enter.
func (m *Model) Submitted() bool {
	return m.submitted
}

// Canceled reports whether the user left the prompt.
func (m *Model) Canceled() bool {
	return m.canceled
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Streak %d", m.stats.Streak),
		fmt.Sprintf("Accuracy %.1f%%", m.stats.Accuracy*100),
		fmt.Sprintf("Answered %d", m.stats.TotalQuestions),
		"Enter submit · Esc cancel",
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

// Prompt is an answer source backed by a Bubble Tea program.
type Prompt struct {
	stats model.Statistics
	opts  []tea.ProgramOption
}

// NewPrompt returns a prompt showing stats in its footer.
func NewPrompt(stats model.Statistics, opts ...tea.ProgramOption) *Prompt {
	return &Prompt{stats: stats, opts: opts}
}

// Answer runs the prompt until the user submits or cancels.
func (p *Prompt) Answer(ctx context.Context, term string) (string, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, p.opts...)
	program := tea.NewProgram(NewModel(term, p.stats), opts...)
	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("failed to run prompt: %w", err)
	}
	m, ok := final.(*Model)
	if !ok || m.Canceled() || !m.Submitted() {
		return "", ErrCanceled
	}
	return m.Value(), nil
}

// RenderResult formats a graded attempt for the terminal.
func RenderResult(result model.PracticeResult, width int) string {
	var b strings.Builder
	if result.Correct {
		b.WriteString(correctStyle.Render("Correct! You've earned a point."))
	} else {
		b.WriteString(incorrectStyle.Render("Incorrect."))
		b.WriteString(" The correct meaning is:\n")
		b.WriteString(meaningStyle.Render(Wrap(result.Expected, width)))
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("Streak %d · Accuracy %.1f%%", result.Stats.Streak, result.Stats.Accuracy*100)))
	return b.String()
}
