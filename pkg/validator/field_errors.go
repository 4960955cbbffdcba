package validator

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FieldError holds every message reported for a single field.
type FieldError struct {
	Field    string
	Messages []string
}

// FieldErrors is an ordered field -> messages list. It marshals to a JSON
// object whose keys keep insertion order.
type FieldErrors []FieldError

// Add appends message to field, creating the entry if needed.
func (fe FieldErrors) Add(field, message string) FieldErrors {
	for i := range fe {
		if fe[i].Field == field {
			fe[i].Messages = append(fe[i].Messages, message)
			return fe
		}
	}
	return append(fe, FieldError{Field: field, Messages: []string{message}})
}

// First returns the first message of the first field, or "" when empty.
func (fe FieldErrors) First() string {
	for _, f := range fe {
		if len(f.Messages) > 0 {
			return f.Messages[0]
		}
	}
	return ""
}

// Get returns the messages recorded for field.
func (fe FieldErrors) Get(field string) []string {
	for _, f := range fe {
		if f.Field == field {
			return f.Messages
		}
	}
	return nil
}

func (fe FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fe {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Field)
		if err != nil {
			return nil, err
		}
		msgs := f.Messages
		if msgs == nil {
			msgs = []string{}
		}
		val, err := json.Marshal(msgs)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValidationError is returned when a struct fails its field constraints.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+strings.Join(f.Messages, " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
