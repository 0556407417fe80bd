package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/screen"
)

type fakeScreen struct {
	name    string
	inits   int
	resumed int
	got     []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(ResumeMsg); ok {
		s.resumed++
		return s, nil
	}
	s.got = append(s.got, msg)
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.name }
func (s *fakeScreen) Title() string        { return s.name }

// stack builds a router holding screens named after names, bottom first.
func stack(names ...string) (*Router, []*fakeScreen) {
	screens := make([]*fakeScreen, len(names))
	for i, n := range names {
		screens[i] = &fakeScreen{name: n}
	}
	r := New(screens[0])
	for _, s := range screens[1:] {
		r.Push(s)
	}
	return r, screens
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.Msg
		wantDepth int
		wantTop   string
	}{
		{"push", PushScreenMsg{Screen: &fakeScreen{name: "list"}}, 4, "list"},
		{"pop", PopScreenMsg{}, 2, "quiz"},
		{"replace", ReplaceScreenMsg{Screen: &fakeScreen{name: "stats"}}, 3, "stats"},
		{"pop to root", PopToRootMsg{}, 1, "home"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := stack("home", "quiz", "detail")
			r.Update(tt.msg)
			assert.Equal(t, tt.wantDepth, r.Depth())
			assert.Equal(t, tt.wantTop, r.Active().Title())
			assert.Equal(t, tt.wantTop, r.View(80, 24))
		})
	}
}

func TestPushAndReplaceInit(t *testing.T) {
	r, screens := stack("home")
	assert.Zero(t, screens[0].inits, "New does not init the root")

	pushed := &fakeScreen{name: "quiz"}
	r.Update(PushScreenMsg{Screen: pushed})
	assert.Equal(t, 1, pushed.inits)

	replaced := &fakeScreen{name: "stats"}
	r.Update(ReplaceScreenMsg{Screen: replaced})
	assert.Equal(t, 1, replaced.inits)
	assert.Equal(t, 2, r.Depth())
}

func TestPopDeliversResume(t *testing.T) {
	r, screens := stack("home", "quiz", "list")

	r.Pop()
	assert.Equal(t, 1, screens[1].resumed)
	assert.Zero(t, screens[0].resumed)

	r.PopToRoot()
	assert.Equal(t, 1, screens[0].resumed)
}

func TestRootIsNeverPopped(t *testing.T) {
	r, screens := stack("home")

	assert.Nil(t, r.Pop())
	assert.Nil(t, r.PopToRoot())
	assert.Equal(t, 1, r.Depth())
	assert.Zero(t, screens[0].resumed, "no resume when nothing was popped")
}

func TestOtherMessagesGoToActive(t *testing.T) {
	r, screens := stack("home", "quiz")
	key := tea.KeyPressMsg{Code: 'a', Text: "a"}

	r.Update(key)
	require.Len(t, screens[1].got, 1)
	assert.Equal(t, key, screens[1].got[0])
	assert.Empty(t, screens[0].got)
}

func TestReplaceOnEmptyStackPushes(t *testing.T) {
	r := &Router{}
	assert.Nil(t, r.Active())
	assert.Empty(t, r.View(80, 24))
	assert.Nil(t, r.Update(tea.KeyPressMsg{Code: 'x'}))

	r.Replace(&fakeScreen{name: "home"})
	assert.Equal(t, 1, r.Depth())
}
