package rbacsdk

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
)

// OptionalString is a JSON string field that may be absent. Set reports
// whether the field was present. Null and non-string values fail decoding.
type OptionalString struct {
	Value string
	Set   bool
}

// String returns a present OptionalString.
func String(v string) OptionalString {
	return OptionalString{Value: v, Set: true}
}

// Ptr returns nil when the field was absent.
func (o OptionalString) Ptr() *string {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// IsZero lets omitzero drop absent fields when encoding.
func (o OptionalString) IsZero() bool { return !o.Set }

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '"' {
		return typeError(b, reflect.TypeFor[string]())
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value, o.Set = v, true
	return nil
}

// OptionalID is a JSON integer id that may be absent. Floats, strings,
// booleans and null fail decoding.
type OptionalID struct {
	Value int64
	Set   bool
}

func ID(v int64) OptionalID {
	return OptionalID{Value: v, Set: true}
}

func (o OptionalID) IsZero() bool { return !o.Set }

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, o.Value, 10), nil
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return typeError(b, reflect.TypeFor[int64]())
	}
	o.Value, o.Set = v, true
	return nil
}

// typeError is filled in with the field name by encoding/json on the way
// out of Unmarshal.
func typeError(b []byte, want reflect.Type) error {
	return &json.UnmarshalTypeError{Value: jsonKind(b), Type: want}
}

func jsonKind(b []byte) string {
	if len(b) == 0 {
		return "empty"
	}
	switch b[0] {
	case 'n':
		return "null"
	case 't', 'f':
		return "bool"
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "number"
	}
}
