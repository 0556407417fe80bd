package layout

import (
	"strings"
	"testing"
)

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Quiz", ScoreStatus("Quiz", 2, 3), 80)
	for _, want := range []string{"QuizDeck", "Quiz", "2/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestScoreStatus(t *testing.T) {
	if got := ScoreStatus("", 1, 4); got != "1/4" {
		t.Errorf("ScoreStatus = %q", got)
	}
	if got := ScoreStatus("Study", 0, 0); got != "Study  0/0" {
		t.Errorf("ScoreStatus = %q", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 60)
	if !strings.Contains(out, "Esc") || !strings.Contains(out, "Back") {
		t.Errorf("footer missing hint:\n%s", out)
	}
}

func TestRenderFooter_NarrowDropsDescriptions(t *testing.T) {
	hints := []KeyHint{
		{Key: "a-d", Description: "Answer with the matching key"},
		{Key: "n", Description: "Next question in the deck"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	out := RenderFooter(hints, MinWidth)
	if strings.Contains(out, "Answer with") {
		t.Errorf("narrow footer kept descriptions:\n%s", out)
	}
	for _, k := range []string{"a-d", "n", "Ctrl+C"} {
		if !strings.Contains(out, k) {
			t.Errorf("narrow footer missing key %q:\n%s", k, out)
		}
	}
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Home", "", 80)
	footer := RenderFooter(nil, 80)
	out := RenderFrame(header, "body", footer, 80, 30)
	if got := strings.Count(out, "\n") + 1; got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
}
