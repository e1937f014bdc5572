package validate

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// String is a JSON string field that records whether it was present in the
// document, explicitly null, or of the wrong type. Decoding never fails on a
// type mismatch so a Chain can report problems in field order.
type String struct {
	Value   string
	present bool
	null    bool
	typed   bool
}

// StringOf returns a present, well-typed String.
func StringOf(v string) String {
	return String{Value: v, present: true, typed: true}
}

// NullString returns a String that was sent as JSON null.
func NullString() String {
	return String{present: true, null: true}
}

func (s *String) UnmarshalJSON(b []byte) error {
	*s = String{present: true}
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		s.null = true
		return nil
	}
	if err := json.Unmarshal(b, &s.Value); err != nil {
		s.Value = ""
		return nil
	}
	s.typed = true
	return nil
}

// Present reports whether the field appeared in the document (null included).
func (s String) Present() bool { return s.present }

// IsNull reports whether the field was sent as JSON null.
func (s String) IsNull() bool { return s.null }

// Valid reports whether the field holds a string value.
func (s String) Valid() bool { return s.present && !s.null && s.typed }

// Bool is the boolean counterpart of String.
type Bool struct {
	Value   bool
	present bool
	null    bool
	typed   bool
}

// BoolOf returns a present, well-typed Bool.
func BoolOf(v bool) Bool {
	return Bool{Value: v, present: true, typed: true}
}

func (f *Bool) UnmarshalJSON(b []byte) error {
	*f = Bool{present: true}
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		f.null = true
		return nil
	}
	if err := json.Unmarshal(b, &f.Value); err != nil {
		f.Value = false
		return nil
	}
	f.typed = true
	return nil
}

// Present reports whether the field appeared in the document (null included).
func (f Bool) Present() bool { return f.present }

// IsNull reports whether the field was sent as JSON null.
func (f Bool) IsNull() bool { return f.null }

// Valid reports whether the field holds a boolean value.
func (f Bool) Valid() bool { return f.present && !f.null && f.typed }
