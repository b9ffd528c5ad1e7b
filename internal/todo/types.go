package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Store keys used for the persisted snapshot.
const (
	ItemsKey = "todoItems"
	ThemeKey = "theme"
)

// ErrPersistedDataUnreadable reports a stored item list that is missing or
// does not decode to a valid list. Load recovers from it with SeedItems.
var ErrPersistedDataUnreadable = errors.New("persisted data unreadable")

// Item is a single task entry.
type Item struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// EditState describes the edit panel. Target is only meaningful while Open.
type EditState struct {
	Target int64
	Draft  string
	Open   bool
}

// SeedItems returns the fixed sample list used when nothing real is stored.
func SeedItems() []Item {
	return []Item{
		{ID: 1, Text: "Check email and reply to messages", Done: true},
		{ID: 2, Text: "Prepare the project report", Done: false},
		{ID: 3, Text: "Call the client to clarify requirements", Done: false},
		{ID: 4, Text: "Test the new feature", Done: false},
	}
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending value, e.g. "[2].id"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// EncodeItems serializes items in the stored format.
func EncodeItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return data, nil
}

// DecodeItems parses and validates a stored item list. Every failure wraps
// ErrPersistedDataUnreadable.
func DecodeItems(data []byte) ([]Item, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: parse items: %v", ErrPersistedDataUnreadable, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after items", ErrPersistedDataUnreadable)
	}

	if errs := validateWithSchema(raw); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrPersistedDataUnreadable, errors.Join(errs...))
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: decode items: %v", ErrPersistedDataUnreadable, err)
	}
	if err := validateUniqueIDs(items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistedDataUnreadable, err)
	}
	return items, nil
}

// validateUniqueIDs checks the id invariant.
func validateUniqueIDs(items []Item) *ValidationError {
	seen := make(map[int64]int, len(items))
	for i, it := range items {
		if prev, ok := seen[it.ID]; ok {
			return &ValidationError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %d (also at [%d])", it.ID, prev),
			}
		}
		seen[it.ID] = i
	}
	return nil
}

// EncodeTheme serializes the theme flag.
func EncodeTheme(dark bool) string {
	if dark {
		return "true"
	}
	return "false"
}

// DecodeTheme parses a stored theme flag.
func DecodeTheme(s string) (bool, error) {
	var dark bool
	if err := json.Unmarshal([]byte(s), &dark); err != nil {
		return false, fmt.Errorf("parse theme: %w", err)
	}
	return dark, nil
}
