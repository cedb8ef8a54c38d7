package statsui

import (
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wordwise/internal/model"
)

func sampleStats() model.Statistics {
	s := model.NewStatistics()
	s.TotalQuestions = 3
	s.CorrectAnswers = 2
	s.Accuracy = 2.0 / 3.0
	s.Streak = 2
	last := civil.Date{Year: 2024, Month: 3, Day: 2}
	s.LastLearned = &last
	s.DailyLog[civil.Date{Year: 2024, Month: 3, Day: 1}] = []string{"cat"}
	s.DailyLog[last] = []string{"dog", "cat"}
	return s
}

func sampleWords() []model.WordEntry {
	return []model.WordEntry{
		{Term: "cat", Meaning: "a small feline"},
		{Term: "dog", Meaning: "a loyal canine"},
		{Term: "owl", Meaning: "a night bird"},
	}
}

func sized(t *testing.T, m *Model) *Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(*Model)
}

func TestOverviewShowsCards(t *testing.T) {
	m := sized(t, NewModel(sampleStats(), sampleWords(), civil.Date{Year: 2024, Month: 3, Day: 2}))
	view := m.View()
	for _, want := range []string{"Overview", "Streak", "66.7%", "02-03-2024", "Last 30 days"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in overview:\n%s", want, view)
		}
	}
}

func TestTabNavigation(t *testing.T) {
	m := sized(t, NewModel(sampleStats(), sampleWords(), civil.Date{Year: 2024, Month: 3, Day: 2}))
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.ActiveTab() != "History" {
		t.Fatalf("expected History tab, got %s", m.ActiveTab())
	}
	if view := m.View(); !strings.Contains(view, "01-03-2024") || !strings.Contains(view, "dog, cat") {
		t.Fatalf("expected history rows:\n%s", view)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.ActiveTab() != "Words" {
		t.Fatalf("expected Words tab, got %s", m.ActiveTab())
	}
	if view := m.View(); !strings.Contains(view, "owl") || !strings.Contains(view, "never") {
		t.Fatalf("expected word rows:\n%s", view)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.ActiveTab() != "Overview" {
		t.Fatalf("expected wrap to Overview, got %s", m.ActiveTab())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.ActiveTab() != "Words" {
		t.Fatalf("expected wrap back to Words, got %s", m.ActiveTab())
	}
}

func TestEmptyWordsTab(t *testing.T) {
	m := sized(t, NewModel(model.NewStatistics(), nil, civil.Date{Year: 2024, Month: 3, Day: 2}))
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if view := m.View(); !strings.Contains(view, "No words in the word list.") {
		t.Fatalf("expected empty message:\n%s", view)
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(model.NewStatistics(), nil, civil.Date{Year: 2024, Month: 1, Day: 1})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestViewEmptyBeforeSize(t *testing.T) {
	m := NewModel(model.NewStatistics(), nil, civil.Date{Year: 2024, Month: 1, Day: 1})
	if m.View() != "" {
		t.Fatalf("expected empty view before window size")
	}
}

func TestLastPracticed(t *testing.T) {
	got := LastPracticed(sampleStats())
	if got["cat"] != (civil.Date{Year: 2024, Month: 3, Day: 2}) {
		t.Fatalf("unexpected cat date %v", got["cat"])
	}
	if _, ok := got["owl"]; ok {
		t.Fatalf("owl was never practiced")
	}
}

func TestFitLines(t *testing.T) {
	got := fitLines("ab\ncd\nef", 3, 2)
	if got != "ab \ncd " {
		t.Fatalf("unexpected fit: %q", got)
	}
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncate: %q", got)
	}
}
