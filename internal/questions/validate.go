package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidImportFormat is returned when an import document is not a JSON
// array. Nothing is stored when it is returned.
var ErrInvalidImportFormat = errors.New("invalid import format: expected a JSON array of questions")

// deckSchema only checks the top-level shape. Individual records are
// accepted as-is, as they are on load.
var deckSchema = map[string]any{
	"type": "array",
}

// recordSchema describes a well-formed question record. It backs Lint and
// is never used to reject an import.
var recordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":       map[string]any{"type": "string", "minLength": 1},
		"question": map[string]any{"type": "string", "minLength": 1},
		"choices": map[string]any{
			"type":                 "object",
			"minProperties":        2,
			"additionalProperties": map[string]any{"type": "string"},
		},
		"answer":      map[string]any{"type": "string", "minLength": 1},
		"explanation": map[string]any{"type": "string"},
	},
	"required": []any{"id", "question", "choices", "answer"},
}

var compiled sync.Map // name → *jsonschema.Schema

func compile(name string, def map[string]any) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(name); ok {
		return s.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go literals.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", name, err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	compiled.Store(name, s)
	return s, nil
}

// ParseImport checks that data is a JSON array and returns it unchanged.
// It never touches a live Store; callers persist the document and load it
// on the next start.
func ParseImport(data []byte) (json.RawMessage, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImportFormat, err)
	}

	schema, err := compile("deck", deckSchema)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImportFormat, err)
	}
	return json.RawMessage(data), nil
}

// Problem is a lint finding for one record.
type Problem struct {
	Index   int
	ID      string
	Message string
}

func (p Problem) String() string {
	if p.ID == "" {
		return fmt.Sprintf("#%d: %s", p.Index, p.Message)
	}
	return fmt.Sprintf("#%d (%s): %s", p.Index, p.ID, p.Message)
}

// Lint reports records that would render badly or can never be answered
// correctly. The document itself must be an importable array.
func Lint(data []byte) ([]Problem, error) {
	if _, err := ParseImport(data); err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImportFormat, err)
	}

	schema, err := compile("question", recordSchema)
	if err != nil {
		return nil, err
	}

	var problems []Problem
	seen := make(map[string]int)
	for i, rec := range records {
		var doc any
		if err := json.Unmarshal(rec, &doc); err != nil {
			problems = append(problems, Problem{Index: i, Message: err.Error()})
			continue
		}
		if err := schema.Validate(doc); err != nil {
			id, _ := idOf(doc)
			problems = append(problems, Problem{Index: i, ID: id, Message: flatten(err)})
			continue
		}

		var q Question
		if err := json.Unmarshal(rec, &q); err != nil {
			problems = append(problems, Problem{Index: i, Message: err.Error()})
			continue
		}
		if _, ok := q.Choices.Text(q.Answer); !ok {
			problems = append(problems, Problem{
				Index:   i,
				ID:      q.ID,
				Message: fmt.Sprintf("answer %q is not one of the choices %v", q.Answer, q.Choices.Keys()),
			})
		}
		if first, dup := seen[q.ID]; dup {
			problems = append(problems, Problem{
				Index:   i,
				ID:      q.ID,
				Message: fmt.Sprintf("duplicate id, first used by #%d", first),
			})
		} else {
			seen[q.ID] = i
		}
	}
	return problems, nil
}

func idOf(doc any) (string, bool) {
	m, ok := doc.(map[string]any)
	if !ok {
		return "", false
	}
	id, ok := m["id"].(string)
	return id, ok
}

// flatten joins a multi-line validation report into a single line.
func flatten(err error) string {
	var parts []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "; ")
}
