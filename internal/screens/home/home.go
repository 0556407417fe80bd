package home

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/analytics"
	"github.com/abhisek/quizdeck/internal/logging"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/list"
	"github.com/abhisek/quizdeck/internal/screens/quiz"
	statsscreen "github.com/abhisek/quizdeck/internal/screens/stats"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Deps are the services the home screen hands to the screens it opens.
type Deps struct {
	Engine     *session.Engine
	Repo       store.ProgressRepo
	Aggregator *analytics.Aggregator
	Logger     *slog.Logger
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps Deps
	menu components.Menu

	confirming bool
	notice     string
	errMsg     string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)
var _ screen.EscCapturer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	h := &HomeScreen{deps: deps}
	h.buildMenu()
	return h
}

// Menu item positions.
const (
	itemQuiz = iota
	itemStudy
	itemFlash
	itemFavorites
	itemMissed
	itemAnalytics
	itemTheme
	itemReset
	itemQuit
)

func (h *HomeScreen) buildMenu() {
	e := h.deps.Engine
	st := e.State()

	modeItem := func(m session.Mode) components.MenuItem {
		item := components.MenuItem{Label: m.DisplayName(), Action: func() tea.Cmd { return h.start(m) }}
		if st.Mode == m && st.Attempted+st.Index > 0 {
			item.Detail = fmt.Sprintf("resume %d/%d", min(st.Index+1, len(st.Shuffled)), len(st.Shuffled))
		}
		return item
	}

	items := []components.MenuItem{
		modeItem(session.ModeQuiz),
		modeItem(session.ModeStudy),
		modeItem(session.ModeFlash),
		{
			Label:  "Favorites",
			Detail: fmt.Sprintf("%d", len(e.Favorites())),
			Action: func() tea.Cmd { return push(list.New(e, list.Favorites)) },
		},
		{
			Label:  "Missed",
			Detail: fmt.Sprintf("%d", len(e.Missed())),
			Action: func() tea.Cmd { return push(list.New(e, list.Missed)) },
		},
		{
			Label: "Analytics",
			Action: func() tea.Cmd {
				return push(statsscreen.New(h.deps.Aggregator, e.Questions()))
			},
			Disabled: h.deps.Aggregator == nil,
		},
		{
			Label:  "Theme",
			Detail: theme.Current(),
			Action: func() tea.Cmd { return send(toggleThemeMsg{}) },
		},
		{
			Label: "Reset progress",
			Action: func() tea.Cmd { return send(confirmResetMsg{}) },
		},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) {
		h.menu.Selected = selected
	}
}

// Menu actions run inside the menu's own Update, before the home screen
// stores the returned menu, so anything that rebuilds the menu goes
// through a message instead.
type (
	toggleThemeMsg  struct{}
	confirmResetMsg struct{}
)

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func push(s screen.Screen) tea.Cmd {
	return send(router.PushScreenMsg{Screen: s})
}

func (h *HomeScreen) start(m session.Mode) tea.Cmd {
	if err := h.deps.Engine.SetMode(context.Background(), m); err != nil {
		h.errMsg = "Progress not saved: " + err.Error()
	}
	return push(quiz.New(h.deps.Engine))
}

func (h *HomeScreen) toggleTheme() {
	next := store.Theme(theme.Current()).Toggle()
	theme.Apply(string(next))
	if h.deps.Repo != nil {
		if err := h.deps.Repo.SetTheme(context.Background(), next); err != nil {
			h.deps.Logger.Warn("save theme failed", slog.Any("err", err))
			h.errMsg = "Theme not saved: " + err.Error()
		}
	}
	h.buildMenu()
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Status() string {
	st := h.deps.Engine.State()
	return layout.ScoreStatus(st.Mode.DisplayName(), st.Score, st.Attempted)
}

// CapturesEsc keeps Esc for cancelling the reset prompt.
func (h *HomeScreen) CapturesEsc() bool {
	return h.confirming
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirming {
		return []layout.KeyHint{
			{Key: "y", Description: "Erase"},
			{Key: "n/Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-9", Description: "Jump"},
		{Key: "q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumeMsg:
		h.buildMenu()
		return h, nil
	case toggleThemeMsg:
		h.toggleTheme()
		return h, nil
	case confirmResetMsg:
		h.confirming = true
		return h, nil
	case tea.KeyPressMsg:
		if h.confirming {
			return h, h.handleConfirm(msg.String())
		}
		h.notice = ""
		if msg.String() == "q" {
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) handleConfirm(key string) tea.Cmd {
	switch key {
	case "y", "Y":
		h.confirming = false
		if err := h.deps.Engine.ResetAllProgress(context.Background(), true); err != nil {
			h.deps.Logger.Error("reset progress failed", slog.Any("err", err))
			h.errMsg = "Reset failed: " + err.Error()
			return nil
		}
		h.errMsg = ""
		h.notice = "All progress erased."
		h.buildMenu()
	case "n", "N", "esc":
		h.confirming = false
		h.notice = "Reset cancelled."
	}
	return nil
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 80

	cw := components.ContentWidth(width)
	st := h.deps.Engine.State()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(stats{
		score:     st.Score,
		attempted: st.Attempted,
		favorites: len(h.deps.Engine.Favorites()),
		missed:    len(h.deps.Engine.Missed()),
		progress:  h.deps.Engine.Progress(),
		deckSize:  len(h.deps.Engine.Questions().IDs()),
	}, cw, compact))
	sections = append(sections, renderMenuBox(h.menu.View(), cw))

	if h.confirming {
		sections = append(sections, renderConfirm(cw))
	}
	if h.notice != "" {
		sections = append(sections, components.StatusLine(h.notice, cw, false))
	}
	if h.errMsg != "" {
		sections = append(sections, components.StatusLine(h.errMsg, cw, true))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
