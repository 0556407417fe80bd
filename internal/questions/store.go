package questions

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotFound is returned when a question id is not in the store. During
// normal use it means the persisted session references an id the loaded
// dataset does not have.
var ErrNotFound = errors.New("question not found")

//go:embed data/questions.json
var defaultDeck []byte

// Store is an immutable, ordered list of questions loaded once at startup.
type Store struct {
	questions []Question
	raw       []json.RawMessage
	byID      map[string]int
}

// Load parses a JSON array of question records. Records are not validated;
// missing fields decode to their zero values. When ids repeat, lookups
// resolve to the first record.
func Load(r io.Reader) (*Store, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	s := &Store{
		questions: make([]Question, 0, len(raw)),
		raw:       raw,
		byID:      make(map[string]int, len(raw)),
	}
	for i, rec := range raw {
		var q Question
		if err := json.Unmarshal(rec, &q); err != nil {
			return nil, fmt.Errorf("decode question %d: %w", i, err)
		}
		if _, dup := s.byID[q.ID]; !dup {
			s.byID[q.ID] = i
		}
		s.questions = append(s.questions, q)
	}
	return s, nil
}

// LoadBytes is Load over an in-memory document.
func LoadBytes(data []byte) (*Store, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile loads the question array stored at path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the deck compiled into the binary.
func Default() *Store {
	s, err := LoadBytes(defaultDeck)
	if err != nil {
		panic(fmt.Sprintf("questions: embedded deck is invalid: %v", err))
	}
	return s
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.questions)
}

// All returns a copy of the records in load order.
func (s *Store) All() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// IDs returns each distinct id once, in load order. A repeated id is
// listed at its first record, the one ByID resolves to.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.byID))
	for i, q := range s.questions {
		if s.byID[q.ID] == i {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// ByID looks up a question by id.
func (s *Store) ByID(id string) (Question, error) {
	i, ok := s.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.questions[i], nil
}

// Export writes the records as an indented JSON array. Each record keeps
// the fields it was loaded with, so the output has the same shape as the
// source document.
func (s *Store) Export(w io.Writer) error {
	raw := s.raw
	if raw == nil {
		raw = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write questions: %w", err)
	}
	return nil
}
