package identity

import (
	"encoding/json"
	"fmt"
	"time"
)

// the API emits naive UTC timestamps without a zone designator
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp is a time accepting both RFC3339 and naive ISO API timestamps
type Timestamp struct {
	time.Time
}

// NewTimestamp creates a timestamp
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var literal string
	if err := json.Unmarshal(data, &literal); err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	if literal == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, literal); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format: %q", literal)
}
