package domain

import "unique"

// InternedString wraps a unique.Handle[string]. Source-file paths repeat
// across thousands of targets, so interning keeps the file map and the
// per-file work items cheap to store and compare.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns the given string.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether the handle holds no string at all. Note that the
// interned empty string is not the zero handle.
func (is InternedString) IsZero() bool {
	var zero unique.Handle[string]
	return is.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
