package home

import (
	"context"
	"strconv"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/analytics"
	"github.com/abhisek/quizdeck/internal/questions"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screens/list"
	"github.com/abhisek/quizdeck/internal/screens/quiz"
	statsscreen "github.com/abhisek/quizdeck/internal/screens/stats"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const testDeck = `[
  {"id":"q1","question":"One?","choices":{"a":"yes","b":"no"},"answer":"a"},
  {"id":"q2","question":"Two?","choices":{"a":"yes","b":"no"},"answer":"b"}
]`

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testHome(t *testing.T) (*HomeScreen, *session.Engine, *store.Memory) {
	t.Helper()
	qs, err := questions.LoadBytes([]byte(testDeck))
	require.NoError(t, err)
	mem := store.NewMemory()
	repo := mem.ProgressRepo()
	e := session.NewEngine(qs, repo, session.WithSeed(5))
	require.NoError(t, e.StartOrResume(context.Background()))
	return New(Deps{Engine: e, Repo: repo, Aggregator: analytics.NewAggregator(repo)}), e, mem
}

// pressItem activates a menu item by its number hotkey. Messages meant
// for the home screen itself are fed back; anything else is returned.
func pressItem(t *testing.T, h *HomeScreen, item int) tea.Msg {
	t.Helper()
	_, cmd := h.Update(keyPress([]rune(strconv.Itoa(item + 1))[0]))
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case toggleThemeMsg, confirmResetMsg:
			_, cmd = h.Update(msg)
		default:
			return msg
		}
	}
	return nil
}

func TestHome_ModeItemsPushQuiz(t *testing.T) {
	tests := []struct {
		item int
		mode session.Mode
	}{
		{itemQuiz, session.ModeQuiz},
		{itemStudy, session.ModeStudy},
		{itemFlash, session.ModeFlash},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			h, e, _ := testHome(t)
			msg := pressItem(t, h, tt.item)

			push, ok := msg.(router.PushScreenMsg)
			require.True(t, ok, "expected PushScreenMsg, got %T", msg)
			_, ok = push.Screen.(*quiz.QuizScreen)
			assert.True(t, ok)
			assert.Equal(t, tt.mode, e.State().Mode)
		})
	}
}

func TestHome_ListsAndAnalytics(t *testing.T) {
	h, _, _ := testHome(t)

	push := pressItem(t, h, itemFavorites).(router.PushScreenMsg)
	fav, ok := push.Screen.(*list.ListScreen)
	require.True(t, ok)
	assert.Equal(t, "Favorites", fav.Title())

	push = pressItem(t, h, itemMissed).(router.PushScreenMsg)
	missed, ok := push.Screen.(*list.ListScreen)
	require.True(t, ok)
	assert.Equal(t, "Missed", missed.Title())

	push = pressItem(t, h, itemAnalytics).(router.PushScreenMsg)
	_, ok = push.Screen.(*statsscreen.StatsScreen)
	assert.True(t, ok)
}

func TestHome_ThemeToggle(t *testing.T) {
	t.Cleanup(func() { theme.Apply(theme.Dark) })
	h, _, mem := testHome(t)

	pressItem(t, h, itemTheme)
	assert.Equal(t, theme.Light, theme.Current())
	got, err := mem.ProgressRepo().Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.ThemeLight, got)
	assert.Equal(t, theme.Light, h.menu.Items[itemTheme].Detail)
	assert.Equal(t, itemTheme, h.menu.Selected, "selection survives the rebuild")

	pressItem(t, h, itemTheme)
	assert.Equal(t, theme.Dark, theme.Current())
}

func TestHome_ThemeSaveFailure(t *testing.T) {
	t.Cleanup(func() { theme.Apply(theme.Dark) })
	h, _, mem := testHome(t)
	mem.FailWrites = true

	pressItem(t, h, itemTheme)
	assert.Equal(t, theme.Light, theme.Current(), "theme still switches for this run")
	assert.Contains(t, h.View(100, 40), "Theme not saved")
}

func TestHome_ResetConfirm(t *testing.T) {
	h, e, _ := testHome(t)
	ctx := context.Background()
	_, err := e.ToggleFavorite(ctx, "q1")
	require.NoError(t, err)

	pressItem(t, h, itemReset)
	require.True(t, h.confirming)
	assert.True(t, h.CapturesEsc())
	assert.Contains(t, h.View(100, 40), "(y/n)")

	h.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.False(t, h.confirming)
	assert.True(t, e.IsFavorite("q1"), "cancel keeps progress")

	pressItem(t, h, itemReset)
	h.Update(keyPress('y'))
	assert.False(t, h.confirming)
	assert.Empty(t, e.Favorites())
	assert.Equal(t, "0", h.menu.Items[itemFavorites].Detail)
}

func TestHome_ResetWithFailingStorage(t *testing.T) {
	h, e, mem := testHome(t)
	_, err := e.ToggleFavorite(context.Background(), "q1")
	require.NoError(t, err)
	mem.FailWrites = true

	pressItem(t, h, itemReset)
	h.Update(keyPress('y'))

	assert.False(t, h.confirming)
	assert.Empty(t, e.Favorites(), "the reset still applies in memory")
	view := h.View(100, 40)
	assert.Contains(t, view, "All progress erased.")
	assert.NotContains(t, view, "Reset failed")
}

func TestHome_ConfirmSwallowsOtherKeys(t *testing.T) {
	h, _, _ := testHome(t)
	pressItem(t, h, itemReset)

	_, cmd := h.Update(keyPress('q'))
	assert.Nil(t, cmd, "q must not quit while confirming")
	assert.True(t, h.confirming)
}

func TestHome_QuitKeys(t *testing.T) {
	h, _, _ := testHome(t)
	_, cmd := h.Update(keyPress('q'))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestHome_ResumeRefreshesCounts(t *testing.T) {
	h, e, _ := testHome(t)
	assert.Equal(t, "0", h.menu.Items[itemFavorites].Detail)

	_, err := e.ToggleFavorite(context.Background(), "q2")
	require.NoError(t, err)
	h.Update(router.ResumeMsg{})
	assert.Equal(t, "1", h.menu.Items[itemFavorites].Detail)
}

func TestHome_ResumeDetail(t *testing.T) {
	h, e, _ := testHome(t)
	assert.Empty(t, h.menu.Items[itemQuiz].Detail)

	_, err := e.SubmitAnswer(context.Background(), "a")
	require.NoError(t, err)
	require.NoError(t, e.Advance(context.Background(), true))
	h.Update(router.ResumeMsg{})
	assert.Equal(t, "resume 2/2", h.menu.Items[itemQuiz].Detail)
}

func TestHome_StatusAndView(t *testing.T) {
	h, _, _ := testHome(t)
	assert.Equal(t, "Quiz  0/0", h.Status())
	assert.Equal(t, "Home", h.Title())
	assert.NotEmpty(t, h.KeyHints())

	view := h.View(100, 40)
	for _, label := range []string{"Quiz", "Study", "Flashcards", "Favorites", "Missed", "Analytics", "Theme", "Reset progress", "Quit"} {
		assert.Contains(t, view, label)
	}
}
