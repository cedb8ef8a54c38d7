// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordwise/internal/model"
	"github.com/verte-zerg/wordwise/internal/stats"
)

const (
	tabOverview = iota
	tabHistory
	tabWords
)

const activityDays = 30

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	stats model.Statistics
	words []model.WordEntry
	today civil.Date

	tabs      []string
	activeTab int
	viewports []viewport.Model
	wordTable table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model over a snapshot of the statistics and word list.
func NewModel(s model.Statistics, words []model.WordEntry, today civil.Date) *Model {
	m := &Model{
		stats: s.Clone(),
		words: append([]model.WordEntry(nil), words...),
		today: today,
		tabs:  []string{"Overview", "History", "Words"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.wordTable = buildWordTable(m.words, LastPracticed(m.stats), 80, 10)
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			if m.activeTab == tabWords {
				m.wordTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabWords {
				m.wordTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabWords {
				var cmd tea.Cmd
				m.wordTable, cmd = m.wordTable.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderHelp(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// ActiveTab returns the name of the selected tab.
func (m *Model) ActiveTab() string {
	return m.tabs[m.activeTab]
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(1, lipgloss.Height(activeNavStyle.Render("X")))
	footerHeight = 1
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.wordTable.SetColumns(wordColumns(m.width))
	m.wordTable.SetWidth(m.width)
	m.wordTable.SetHeight(max(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabWords {
		m.wordTable.Focus()
	} else {
		m.wordTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHelp() string {
	return headerStyle.Render(truncateLine("Nav: left/right  Scroll: up/down/pgup/pgdn  Top/Bottom: g/G  Quit: q", m.width))
}

func (m *Model) renderBody() string {
	if m.activeTab == tabWords {
		if len(m.words) == 0 {
			return "No words in the word list."
		}
		return tableMutedStyle.Render(m.wordTable.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.stats, m.today, width))
	m.viewports[tabHistory].SetContent(renderHistory(m.stats, m.today))
}

func renderOverview(s model.Statistics, today civil.Date, width int) string {
	cards := []string{
		metricCard("Answered", fmt.Sprintf("%d", s.TotalQuestions)),
		metricCard("Correct", fmt.Sprintf("%d", s.CorrectAnswers)),
		metricCard("Accuracy", fmt.Sprintf("%.1f%%", s.Accuracy*100)),
		metricCard("Streak", fmt.Sprintf("%d", s.Streak)),
		metricCard("Last learned", stats.FormatDate(s.LastLearned)),
	}
	var grid string
	if width < 80 {
		grid = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		grid = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	spark := fmt.Sprintf("Last %d days: [%s]", activityDays, stats.Sparkline(stats.Activity(s, today, activityDays)))
	return grid + "\n\n" + headerStyle.Render(spark)
}

func renderHistory(s model.Statistics, today civil.Date) string {
	var buf bytes.Buffer
	if err := stats.RenderHistory(&buf, s, today, activityDays); err != nil {
		return fmt.Sprintf("Failed to render history: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

// LastPracticed maps each practiced term to the latest day it was asked.
func LastPracticed(s model.Statistics) map[string]civil.Date {
	out := make(map[string]civil.Date)
	for _, date := range s.LogDates() {
		for _, term := range s.DailyLog[date] {
			out[term] = date
		}
	}
	return out
}

func wordColumns(width int) []table.Column {
	termWidth := 18
	dateWidth := 14
	meaningWidth := max(10, width-termWidth-dateWidth-4)
	return []table.Column{
		{Title: "Term", Width: termWidth},
		{Title: "Meaning", Width: meaningWidth},
		{Title: "Last practiced", Width: dateWidth},
	}
}

func buildWordTable(words []model.WordEntry, last map[string]civil.Date, width, height int) table.Model {
	rows := make([]table.Row, 0, len(words))
	for _, w := range words {
		practiced := "never"
		if d, ok := last[w.Term]; ok {
			practiced = stats.FormatCivil(d)
		}
		rows = append(rows, table.Row{w.Term, w.Meaning, practiced})
	}
	t := table.New(
		table.WithColumns(wordColumns(width)),
		table.WithRows(rows),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(wordTableStyles())
	return t
}

func wordTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// Run shows the stats UI until the user quits.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to run stats UI: %w", err)
	}
	return nil
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
