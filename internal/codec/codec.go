// Package codec translates domain records to and from the string values the
// key-value store holds. The store has no native date type, so date-time
// fields travel as ISO-8601 strings and are revived by key name on the way
// out.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrAbsent marks a read that found no stored value. Callers treat it as
// "never written", not as a failure.
var ErrAbsent = errors.New("codec: absent value")

// dateFields is the fixed allow-list of keys revived into time.Time when
// decoding loose values. Scoping revival by key avoids mangling free-text
// fields that happen to look like timestamps.
var dateFields = map[string]struct{}{
	"createdAt":               {},
	"updatedAt":               {},
	"estimatedCompletionTime": {},
	"lastUpdated":             {},
}

// Encode serializes a record or collection for storage.
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding value: %w", err)
	}
	return string(data), nil
}

// Decode deserializes stored text into v. Empty input yields ErrAbsent.
func Decode(text string, v any) error {
	if text == "" {
		return ErrAbsent
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("decoding value: %w", err)
	}
	return nil
}

// Elements splits a stored collection into its raw per-record elements,
// preserving each record's bytes exactly. Empty input yields ErrAbsent; a
// stored value that is not an array yields an error.
func Elements(text string) ([]json.RawMessage, error) {
	if text == "" {
		return nil, ErrAbsent
	}
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}
	return elements, nil
}

// EncodeElements reassembles raw elements into a stored collection.
func EncodeElements(elements []json.RawMessage) (string, error) {
	if elements == nil {
		elements = []json.RawMessage{}
	}
	data, err := json.Marshal(elements)
	if err != nil {
		return "", fmt.Errorf("encoding collection: %w", err)
	}
	return string(data), nil
}

// DecodeLoose deserializes stored text into an untyped value with date
// revival applied. Migration steps use this to reshape records whose typed
// form no longer exists in the codebase.
func DecodeLoose(text string) (any, error) {
	var value any
	if err := Decode(text, &value); err != nil {
		return nil, err
	}
	return ReviveDates(value), nil
}

// ReviveDates walks maps and slices, replacing string values under the
// date-field allow-list with time.Time when they parse as ISO-8601.
func ReviveDates(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, child := range typed {
			if text, ok := child.(string); ok {
				if _, tagged := dateFields[key]; tagged {
					if parsed, ok := parseISOTime(text); ok {
						typed[key] = parsed
						continue
					}
				}
			}
			typed[key] = ReviveDates(child)
		}
		return typed
	case []any:
		for i, child := range typed {
			typed[i] = ReviveDates(child)
		}
		return typed
	}
	return value
}

// IsDateField reports whether the key participates in date revival.
func IsDateField(key string) bool {
	_, ok := dateFields[key]
	return ok
}

func parseISOTime(text string) (time.Time, bool) {
	if parsed, err := time.Parse(time.RFC3339Nano, text); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}
