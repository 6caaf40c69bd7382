package models

import "strings"

// Record is one CSV row keyed by physical header name.
type Record map[string]string

// Clone returns a copy that can be mutated without touching r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Schema maps a logical field name to the ordered list of physical headers
// that may carry it.
type Schema map[string][]string

// Headers returns the accepted spellings for field. A field the schema does
// not know is treated as a literal header name.
func (s Schema) Headers(field string) []string {
	if headers, ok := s[field]; ok && len(headers) > 0 {
		return headers
	}
	return []string{field}
}

// Resolve returns the value of the first accepted header that is present on
// the record with a non-blank value, or "" when none is.
func (s Schema) Resolve(r Record, field string) string {
	for _, h := range s.Headers(field) {
		if v, ok := r[h]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// HeaderFor returns the header r already uses for field, falling back to the
// first accepted spelling. Writers use it so updates land in the existing
// column instead of adding a synonym.
func (s Schema) HeaderFor(r Record, field string) string {
	headers := s.Headers(field)
	for _, h := range headers {
		if _, ok := r[h]; ok {
			return h
		}
	}
	return headers[0]
}

// Clone returns a deep copy of the schema.
func (s Schema) Clone() Schema {
	out := make(Schema, len(s))
	for k, v := range s {
		out[k] = append([]string(nil), v...)
	}
	return out
}
