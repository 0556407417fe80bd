package questions

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Question is a single multiple-choice card.
type Question struct {
	ID          string  `json:"id"`
	Question    string  `json:"question"`
	Choices     Choices `json:"choices"`
	Answer      string  `json:"answer"`
	Explanation string  `json:"explanation"`
}

// IsCorrect reports whether key is the answer key. The comparison is an
// exact, case-sensitive match on the key, never on the choice text.
func (q Question) IsCorrect(key string) bool {
	return key == q.Answer
}

// AnswerText returns the text of the correct choice, or "" if the answer
// key does not name one of the choices.
func (q Question) AnswerText() string {
	text, _ := q.Choices.Text(q.Answer)
	return text
}

// Choice is one keyed answer option.
type Choice struct {
	Key  string
	Text string
}

// Choices is an ordered key → text mapping. It decodes from and encodes to
// a JSON object, keeping the object's key order as the display order.
type Choices []Choice

// Text returns the text for key.
func (c Choices) Text(key string) (string, bool) {
	for _, ch := range c {
		if ch.Key == key {
			return ch.Text, true
		}
	}
	return "", false
}

// Keys returns the choice keys in display order.
func (c Choices) Keys() []string {
	keys := make([]string, len(c))
	for i, ch := range c {
		keys[i] = ch.Key
	}
	return keys
}

// UnmarshalJSON decodes a JSON object token by token so key order survives.
// A repeated key keeps its first position and takes the last text, which is
// how a JavaScript object literal behaves.
func (c *Choices) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("choices: %w", err)
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("choices: expected object, got %v", tok)
	}

	var out Choices
	pos := make(map[string]int)
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return fmt.Errorf("choices: %w", err)
		}
		key, _ := kt.(string)

		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("choices[%q]: %w", key, err)
		}

		if i, seen := pos[key]; seen {
			out[i].Text = text
			continue
		}
		pos[key] = len(out)
		out = append(out, Choice{Key: key, Text: text})
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("choices: %w", err)
	}

	*c = out
	return nil
}

// MarshalJSON encodes the choices as a JSON object in display order.
func (c Choices) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ch := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(ch.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(ch.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
