// Package analytics derives attempt counts, accuracy and the most-missed
// questions from the answer log. Nothing here writes to storage.
package analytics

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/abhisek/quizdeck/internal/store"
)

// Summary holds the totals over a history log.
type Summary struct {
	TotalAttempts   int `json:"total_attempts"`
	TotalCorrect    int `json:"total_correct"`
	AccuracyPercent int `json:"accuracy_percent"`
}

// Incorrect returns the number of wrong answers.
func (s Summary) Incorrect() int {
	return s.TotalAttempts - s.TotalCorrect
}

// String renders the one-line summary shown above the chart.
func (s Summary) String() string {
	return fmt.Sprintf("Attempts: %d · Correct: %d · Accuracy: %d%%",
		s.TotalAttempts, s.TotalCorrect, s.AccuracyPercent)
}

// MissCount is the number of wrong answers recorded for one question.
type MissCount struct {
	QuestionID string `json:"id"`
	Count      int    `json:"count"`
}

// Summarize counts attempts and correct answers. Accuracy is rounded to the
// nearest whole percent and is 0 for an empty log.
func Summarize(entries []store.HistoryEntry) Summary {
	s := Summary{TotalAttempts: len(entries)}
	for _, e := range entries {
		if e.Correct {
			s.TotalCorrect++
		}
	}
	if s.TotalAttempts > 0 {
		s.AccuracyPercent = int(math.Round(100 * float64(s.TotalCorrect) / float64(s.TotalAttempts)))
	}
	return s
}

// TopMissed groups wrong answers by question and returns the limit largest
// counts in descending order. Equal counts keep the order in which each
// question was first missed. A limit of zero or less returns every
// question that was missed at least once.
func TopMissed(entries []store.HistoryEntry, limit int) []MissCount {
	pos := make(map[string]int)
	var counts []MissCount
	for _, e := range entries {
		if e.Correct {
			continue
		}
		i, ok := pos[e.QuestionID]
		if !ok {
			i = len(counts)
			pos[e.QuestionID] = i
			counts = append(counts, MissCount{QuestionID: e.QuestionID})
		}
		counts[i].Count++
	}

	slices.SortStableFunc(counts, func(a, b MissCount) int {
		return b.Count - a.Count
	})

	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// Aggregator computes analytics from a live history source.
type Aggregator struct {
	history store.HistoryReader
}

// NewAggregator returns an Aggregator reading from h.
func NewAggregator(h store.HistoryReader) *Aggregator {
	return &Aggregator{history: h}
}

// Summary returns the totals over the whole log.
func (a *Aggregator) Summary(ctx context.Context) (Summary, error) {
	entries, err := a.history.History(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("read history: %w", err)
	}
	return Summarize(entries), nil
}

// TopMissed returns the most-missed questions over the whole log.
func (a *Aggregator) TopMissed(ctx context.Context, limit int) ([]MissCount, error) {
	entries, err := a.history.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return TopMissed(entries, limit), nil
}

// Report bundles both views so a screen can render them from one read.
type Report struct {
	Summary   Summary     `json:"summary"`
	TopMissed []MissCount `json:"top_missed"`
}

// Report reads the log once and computes the summary and the top limit
// missed questions.
func (a *Aggregator) Report(ctx context.Context, limit int) (Report, error) {
	entries, err := a.history.History(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("read history: %w", err)
	}
	return Report{
		Summary:   Summarize(entries),
		TopMissed: TopMissed(entries, limit),
	}, nil
}
