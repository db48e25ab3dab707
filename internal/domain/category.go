package domain

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// CategoryTotal is the summed duration of all suites sharing a derived key
type CategoryTotal struct {
	Key      rune
	Duration float64
}

// NewCategoryTotal creates a CategoryTotal
func NewCategoryTotal(key rune, duration float64) CategoryTotal {
	return CategoryTotal{Key: key, Duration: duration}
}

// String renders the total as "A: 10.000s"
func (c CategoryTotal) String() string {
	return fmt.Sprintf("%c: %.3fs", c.Key, c.Duration)
}

type categoryTotalJSON struct {
	Key      string  `json:"key" yaml:"key"`
	Duration float64 `json:"duration" yaml:"duration"`
}

// MarshalJSON writes the key as a one-character string instead of a code point.
func (c CategoryTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal(categoryTotalJSON{Key: string(c.Key), Duration: c.Duration})
}

// UnmarshalJSON reads the representation written by MarshalJSON.
func (c *CategoryTotal) UnmarshalJSON(data []byte) error {
	var raw categoryTotalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	key, size := utf8.DecodeRuneInString(raw.Key)
	if size == 0 || size != len(raw.Key) {
		return fmt.Errorf("category key must be a single character, got %q", raw.Key)
	}
	c.Key = key
	c.Duration = raw.Duration
	return nil
}

// MarshalYAML mirrors MarshalJSON for the yaml output format.
func (c CategoryTotal) MarshalYAML() (interface{}, error) {
	return categoryTotalJSON{Key: string(c.Key), Duration: c.Duration}, nil
}

// Group is an ordered, non-empty run of category totals assigned to one lane
type Group []CategoryTotal

// Keys concatenates the category keys of the group, e.g. "ABCDEF"
func (g Group) Keys() string {
	keys := make([]rune, len(g))
	for i, c := range g {
		keys[i] = c.Key
	}
	return string(keys)
}

// Duration returns the summed duration of the group
func (g Group) Duration() float64 {
	var total float64
	for _, c := range g {
		total += c.Duration
	}
	return total
}
