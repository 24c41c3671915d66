package formspec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ValidationError reports a single field whose raw input failed its
// type's rule. It aborts the current collection attempt only; the caller
// can fix the input and retry.
type ValidationError struct {
	FieldID string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("'%s': %s", e.FieldID, e.Message)
}

func validationErrorf(id, format string, args ...any) *ValidationError {
	return &ValidationError{FieldID: id, Message: fmt.Sprintf(format, args...)}
}

// Validate converts a raw input into the field's typed value. The raw
// shape depends on the field type: a bool for bool fields, a string for
// everything else (multi-line for text/json). Fixed fields ignore raw
// entirely and yield the declared literal.
func Validate(f Field, raw any) (any, error) {
	switch f.Type {
	case TypeStr, TypeText, TypeChoice:
		s, _ := raw.(string)
		return s, nil

	case TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, validationErrorf(f.ID, "must be a boolean")
		}
		return b, nil

	case TypeInt:
		s, _ := raw.(string)
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, validationErrorf(f.ID, "must be an integer")
		}
		return v, nil

	case TypeFloat:
		s, _ := raw.(string)
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, validationErrorf(f.ID, "must be a number")
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, validationErrorf(f.ID, "NaN and Infinity are not allowed")
		}
		return v, nil

	case TypeJSON:
		s, _ := raw.(string)
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, validationErrorf(f.ID, "invalid JSON: %v", err)
		}
		return v, nil

	case TypeDate:
		s := strings.TrimSpace(stringOf(raw))
		if _, err := time.Parse("2006-01-02", s); err != nil || len(s) != len("2006-01-02") {
			return nil, validationErrorf(f.ID, "must be a date in yyyy-mm-dd format")
		}
		return s, nil

	case TypeTime:
		s := strings.TrimSpace(stringOf(raw))
		if _, err := time.Parse("15:04:05", s); err != nil || len(s) != len("15:04:05") {
			return nil, validationErrorf(f.ID, "must be a time in hh:mm:ss format")
		}
		return s, nil

	case TypeFixed:
		return f.Value, nil
	}

	return nil, validationErrorf(f.ID, "unknown field type '%s'", f.Type)
}

func stringOf(raw any) string {
	s, _ := raw.(string)
	return s
}

// CollectSignal validates every field of the schema against inputs
// (field id to raw value) in schema order and returns the resulting
// signal. Collection is all-or-nothing: the first failing field aborts
// with its ValidationError and no partial signal. A missing input is
// treated as the type's empty raw value.
func CollectSignal(s *Schema, inputs map[string]any) (Signal, error) {
	signal := make(Signal, len(s.Fields))
	for _, f := range s.Fields {
		raw, ok := inputs[f.ID]
		if !ok {
			if f.Type == TypeBool {
				raw = false
			} else {
				raw = ""
			}
		}
		v, err := Validate(f, raw)
		if err != nil {
			return nil, err
		}
		signal[f.ID] = v
	}
	return signal, nil
}
