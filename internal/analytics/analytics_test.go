package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/store"
)

func entry(id string, correct bool) store.HistoryEntry {
	return store.HistoryEntry{QuestionID: id, Correct: correct}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		entries []store.HistoryEntry
		want    Summary
	}{
		{
			name: "empty log",
			want: Summary{},
		},
		{
			name:    "two of three",
			entries: []store.HistoryEntry{entry("A", true), entry("B", false), entry("C", true)},
			want:    Summary{TotalAttempts: 3, TotalCorrect: 2, AccuracyPercent: 67},
		},
		{
			name:    "one of three rounds down",
			entries: []store.HistoryEntry{entry("A", true), entry("B", false), entry("C", false)},
			want:    Summary{TotalAttempts: 3, TotalCorrect: 1, AccuracyPercent: 33},
		},
		{
			name:    "half rounds up",
			entries: []store.HistoryEntry{entry("A", true), entry("B", false)},
			want:    Summary{TotalAttempts: 2, TotalCorrect: 1, AccuracyPercent: 50},
		},
		{
			name:    "all wrong",
			entries: []store.HistoryEntry{entry("A", false)},
			want:    Summary{TotalAttempts: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.entries)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.TotalAttempts-got.TotalCorrect, got.Incorrect())
		})
	}
}

func TestSummaryString(t *testing.T) {
	s := Summary{TotalAttempts: 3, TotalCorrect: 2, AccuracyPercent: 67}
	assert.Equal(t, "Attempts: 3 · Correct: 2 · Accuracy: 67%", s.String())
}

func TestTopMissed(t *testing.T) {
	log := []store.HistoryEntry{
		entry("q1", false),
		entry("q2", false),
		entry("q3", true),
		entry("q2", false),
		entry("q4", false),
		entry("q1", true),
		entry("q4", false),
		entry("q5", false),
	}

	got := TopMissed(log, 0)
	want := []MissCount{
		{QuestionID: "q2", Count: 2},
		{QuestionID: "q4", Count: 2},
		{QuestionID: "q1", Count: 1},
		{QuestionID: "q5", Count: 1},
	}
	assert.Equal(t, want, got)

	assert.Equal(t, want[:2], TopMissed(log, 2))
	assert.Equal(t, want, TopMissed(log, 99))
}

func TestTopMissed_NoMisses(t *testing.T) {
	assert.Empty(t, TopMissed([]store.HistoryEntry{entry("a", true)}, 5))
	assert.Empty(t, TopMissed(nil, 5))
}

func TestBarChart(t *testing.T) {
	counts := []MissCount{{"a", 30}, {"b", 3}, {"c", 1}}

	bars := BarChart(counts, 40, 2)
	require.Len(t, bars, 3)
	assert.Equal(t, Bar{Label: "a", Count: 30, Width: 40}, bars[0])
	assert.Equal(t, 6, bars[1].Width)
	assert.Equal(t, 2, bars[2].Width)

	bars = BarChart(counts, 40, 0)
	assert.Equal(t, 6, bars[1].Width, "zero scale uses the default")

	bars = BarChart([]MissCount{{"a", 1}}, 0, 2)
	assert.Equal(t, 1, bars[0].Width)
}

type stubHistory struct {
	entries []store.HistoryEntry
	err     error
}

func (s stubHistory) History(context.Context) ([]store.HistoryEntry, error) {
	return s.entries, s.err
}

func TestAggregator(t *testing.T) {
	mem := store.NewMemory()
	repo := mem.ProgressRepo()
	ctx := context.Background()
	for _, e := range []store.HistoryEntry{entry("A", true), entry("B", false), entry("C", true)} {
		require.NoError(t, repo.AppendHistory(ctx, e))
	}

	agg := NewAggregator(repo)

	sum, err := agg.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 67, sum.AccuracyPercent)

	top, err := agg.TopMissed(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []MissCount{{QuestionID: "B", Count: 1}}, top)

	rep, err := agg.Report(ctx, DefaultTopMissed)
	require.NoError(t, err)
	assert.Equal(t, sum, rep.Summary)
	assert.Equal(t, top, rep.TopMissed)
}

func TestAggregator_ReadFailure(t *testing.T) {
	agg := NewAggregator(stubHistory{err: store.ErrUnavailable})

	_, err := agg.Summary(context.Background())
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, err = agg.Report(context.Background(), 3)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}
