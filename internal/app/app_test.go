package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/analytics"
	"github.com/abhisek/quizdeck/internal/questions"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screens/home"
	"github.com/abhisek/quizdeck/internal/screens/welcome"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

func testOptions(t *testing.T) (Options, *store.Memory) {
	t.Helper()
	qs, err := questions.LoadBytes([]byte(`[
  {"id":"q1","question":"One?","choices":{"a":"yes","b":"no"},"answer":"a"}
]`))
	require.NoError(t, err)

	mem := store.NewMemory()
	repo := mem.ProgressRepo()
	e := session.NewEngine(qs, repo, session.WithSeed(3))
	require.NoError(t, e.StartOrResume(context.Background()))

	return Options{Engine: e, Repo: repo, Aggregator: analytics.NewAggregator(repo)}, mem
}

// run feeds msg to the model and then every message its commands produce,
// which is enough to drive router navigation synchronously.
func run(m AppModel, msg tea.Msg) AppModel {
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		switch out.(type) {
		case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, router.PopToRootMsg:
		default:
			return m
		}
		next, cmd = m.Update(out)
		m = next.(AppModel)
	}
	return m
}

func TestNewAppModel_Splash(t *testing.T) {
	opts, _ := testOptions(t)

	opts.Splash = true
	m := NewAppModel(context.Background(), opts)
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok)

	opts.Splash = false
	m = NewAppModel(context.Background(), opts)
	_, ok = m.router.Active().(*home.HomeScreen)
	assert.True(t, ok)
}

func TestNewAppModel_AppliesSavedTheme(t *testing.T) {
	t.Cleanup(func() { theme.Apply(theme.Dark) })
	opts, _ := testOptions(t)
	require.NoError(t, opts.Repo.SetTheme(context.Background(), store.ThemeLight))

	NewAppModel(context.Background(), opts)
	assert.Equal(t, theme.Light, theme.Current())
}

func TestSplashKeyGoesHome(t *testing.T) {
	opts, _ := testOptions(t)
	opts.Splash = true
	m := NewAppModel(context.Background(), opts)

	m = run(m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	_, ok := m.router.Active().(*home.HomeScreen)
	assert.True(t, ok)
	assert.Equal(t, 1, m.router.Depth())
}

func TestEscPopsToHome(t *testing.T) {
	opts, _ := testOptions(t)
	m := NewAppModel(context.Background(), opts)

	m = run(m, tea.KeyPressMsg{Code: '1', Text: "1"})
	require.Equal(t, 2, m.router.Depth(), "1 opens the quiz")

	m = run(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())

	m = run(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth(), "esc at the root is a no-op")
}

func TestEscCapturedByFilter(t *testing.T) {
	opts, _ := testOptions(t)
	m := NewAppModel(context.Background(), opts)

	m = run(m, tea.KeyPressMsg{Code: '4', Text: "4"})
	require.Equal(t, 2, m.router.Depth(), "4 opens favorites")

	m = run(m, tea.KeyPressMsg{Code: '/', Text: "/"})
	m = run(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 2, m.router.Depth(), "esc closes the filter first")

	m = run(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())
}

func TestViewShowsHeaderStatusAndHints(t *testing.T) {
	opts, _ := testOptions(t)
	m := NewAppModel(context.Background(), opts)
	m = run(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = run(m, tea.KeyPressMsg{Code: '1', Text: "1"})
	m = run(m, tea.KeyPressMsg{Code: 'a', Text: "a"})

	content := m.render()
	assert.Contains(t, content, "QuizDeck")
	assert.Contains(t, content, "Score 1/1")
	assert.Contains(t, content, "Ctrl+C")
}

func TestViewTooSmall(t *testing.T) {
	opts, _ := testOptions(t)
	m := NewAppModel(context.Background(), opts)
	m = run(m, tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.True(t, strings.Contains(m.render(), "Terminal too small"))
}
