package components

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/analytics"
	"github.com/abhisek/quizdeck/internal/questions"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuestion() questions.Question {
	return questions.Question{
		ID:       "q1",
		Question: "Pick b",
		Choices: questions.Choices{
			{Key: "a", Text: "first"},
			{Key: "b", Text: "second"},
			{Key: "c", Text: "third"},
		},
		Answer: "b",
	}
}

func TestMultiChoice_KeyPicksChoice(t *testing.T) {
	mc := NewMultiChoice(testQuestion())

	mc, _ = mc.Update(keyPress('b'))
	if !mc.Submitted || mc.Chosen != "b" {
		t.Fatalf("Submitted=%v Chosen=%q, want b", mc.Submitted, mc.Chosen)
	}
	if !mc.IsCorrect() {
		t.Error("expected correct")
	}

	// Further input is ignored.
	mc, _ = mc.Update(keyPress('a'))
	if mc.Chosen != "b" {
		t.Errorf("Chosen changed to %q after submission", mc.Chosen)
	}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice(testQuestion())

	mc, _ = mc.Update(specialKey(tea.KeyDown))
	mc, _ = mc.Update(specialKey(tea.KeyDown))
	mc, _ = mc.Update(specialKey(tea.KeyDown))
	if mc.Selected != 2 {
		t.Fatalf("Selected = %d, want 2 (clamped)", mc.Selected)
	}
	mc, _ = mc.Update(specialKey(tea.KeyEnter))
	if mc.Chosen != "c" || mc.IsCorrect() {
		t.Errorf("Chosen = %q correct=%v, want c and wrong", mc.Chosen, mc.IsCorrect())
	}
}

func TestMultiChoice_UnknownKeyIgnored(t *testing.T) {
	mc := NewMultiChoice(testQuestion())
	mc, _ = mc.Update(keyPress('z'))
	if mc.Submitted {
		t.Error("unknown key should not submit")
	}
	if !mc.HasKey("a") || mc.HasKey("z") {
		t.Error("HasKey mismatch")
	}
}

func TestMultiChoice_RevealedTakesNoInput(t *testing.T) {
	mc := NewMultiChoice(testQuestion())
	mc.Revealed = true
	mc, _ = mc.Update(keyPress('a'))
	if mc.Submitted {
		t.Error("revealed selector should not take answers")
	}
	if !strings.Contains(mc.View(), "second") {
		t.Error("view should list choices")
	}
}

func TestMenu_NumberHotkey(t *testing.T) {
	var picked string
	item := func(label string) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd {
			picked = label
			return nil
		}}
	}
	m := NewMenu([]MenuItem{item("one"), {Label: "two", Disabled: true}, item("three")})

	m, _ = m.Update(keyPress('3'))
	if picked != "three" || m.Selected != 2 {
		t.Errorf("picked=%q selected=%d", picked, m.Selected)
	}

	picked = ""
	m, _ = m.Update(keyPress('2'))
	if picked != "" {
		t.Error("disabled item should not activate")
	}

	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 0 {
		t.Errorf("up should skip disabled item, got %d", m.Selected)
	}
	m.Update(specialKey(tea.KeyEnter))
	if picked != "one" {
		t.Errorf("enter picked %q", picked)
	}
}

func TestMenu_Wraps(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "off", Disabled: true}, {Label: "a"}, {Label: "b"}})
	if m.Selected != 1 {
		t.Fatalf("first enabled item should be selected, got %d", m.Selected)
	}

	tests := []struct {
		key  tea.KeyPressMsg
		want int
	}{
		{specialKey(tea.KeyUp), 2},
		{specialKey(tea.KeyDown), 1},
		{keyPress('G'), 2},
		{keyPress('j'), 1},
		{keyPress('g'), 1},
	}
	for _, tt := range tests {
		m, _ = m.Update(tt.key)
		if m.Selected != tt.want {
			t.Errorf("after %s selected=%d, want %d", tt.key.String(), m.Selected, tt.want)
		}
	}
}

func TestFilterInput_Matches(t *testing.T) {
	f := NewFilterInput("filter", 40)
	if !f.Matches("anything") {
		t.Error("empty query should match")
	}
	f.Model.SetValue("GoRoutine")
	if !f.Matches("id", "What is a goroutine?") {
		t.Error("expected case-insensitive match")
	}
	if f.Matches("channel") {
		t.Error("unexpected match")
	}
	f.Clear()
	if f.Value() != "" {
		t.Error("Clear did not empty the query")
	}
}

func TestDeckProgress(t *testing.T) {
	tests := []struct {
		p       DeckProgress
		percent int
		filled  int
	}{
		{DeckProgress{Index: 0, Total: 0, Width: 30}, 0, 0},
		{DeckProgress{Index: 2, Total: 4, Correct: 1, Width: 30}, 50, 12},
		{DeckProgress{Index: 1, Total: 3, Width: 30}, 33, 8},
		{DeckProgress{Index: 4, Total: 4, Correct: 9, Width: 30}, 100, 24},
	}
	for _, tt := range tests {
		out := tt.p.View()
		if got := tt.p.Percent(); got != tt.percent {
			t.Errorf("%+v: Percent = %d, want %d", tt.p, got, tt.percent)
		}
		if !strings.Contains(out, fmt.Sprintf("%d%%", tt.percent)) {
			t.Errorf("%+v: missing percent in %q", tt.p, out)
		}
		if got := strings.Count(out, "█"); got != tt.filled {
			t.Errorf("%+v: filled cells = %d, want %d", tt.p, got, tt.filled)
		}
	}
}

func TestBarChart_View(t *testing.T) {
	bars := analytics.BarChart([]analytics.MissCount{{QuestionID: "q1", Count: 3}}, 40, 2)
	out := NewBarChart(bars, 10).View()
	if strings.Count(out, "█") != 6 {
		t.Errorf("bar cells = %d, want 6", strings.Count(out, "█"))
	}
	if !strings.Contains(out, " 3") {
		t.Error("missing count")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 8, "much to…"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
