package airtable

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DecodeError indica que un registro no trae un campo obligatorio o lo trae con otro tipo.
type DecodeError struct {
	RecordID string
	Field    string
	Reason   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("airtable record %s: field %s: %s", e.RecordID, e.Field, e.Reason)
}

// Record es un registro crudo; los campos se leen con los helpers tipados.
type Record struct {
	ID          string                     `json:"id"`
	CreatedTime string                     `json:"createdTime,omitempty"`
	Fields      map[string]json.RawMessage `json:"fields"`
}

// String lee un campo de texto. Numeros se formatean; ausente o null es "".
func (r Record) String(field string) string {
	raw, ok := r.Fields[field]
	if !ok || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// RequiredString falla si el campo esta vacio.
func (r Record) RequiredString(field string) (string, error) {
	s := r.String(field)
	if s == "" {
		return "", &DecodeError{RecordID: r.ID, Field: field, Reason: "required field missing"}
	}
	return s, nil
}

// Float acepta numeros o strings numericos; cualquier otra cosa es 0.
func (r Record) Float(field string) float64 {
	raw, ok := r.Fields[field]
	if !ok || isNull(raw) {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return parsed
		}
	}
	return 0
}

// RequiredFloat falla si el campo no existe o no es numerico.
func (r Record) RequiredFloat(field string) (float64, error) {
	raw, ok := r.Fields[field]
	if !ok || isNull(raw) {
		return 0, &DecodeError{RecordID: r.ID, Field: field, Reason: "required field missing"}
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return parsed, nil
		}
	}
	return 0, &DecodeError{RecordID: r.ID, Field: field, Reason: "not a number"}
}

func (r Record) Int(field string) int {
	return int(r.Float(field))
}

// Bool acepta checkbox o los strings "true"/"True".
func (r Record) Bool(field string) bool {
	raw, ok := r.Fields[field]
	if !ok || isNull(raw) {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	return strings.EqualFold(r.String(field), "true")
}

// Strings lee multi-selects o listas separadas por comas.
func (r Record) Strings(field string) []string {
	raw, ok := r.Fields[field]
	if !ok || isNull(raw) {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	}
	out := []string{}
	for _, item := range strings.Split(r.String(field), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
