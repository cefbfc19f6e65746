package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	NullKind ValueKind = iota
	StringKind
	NumberKind
	BoolKind
)

func (k ValueKind) String() string {
	switch k {
	case StringKind:
		return "string"
	case NumberKind:
		return "number"
	case BoolKind:
		return "boolean"
	default:
		return "null"
	}
}

// Value is a typed field value: string, number, boolean or null.
// The zero Value is null.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

func Null() Value               { return Value{} }
func String(s string) Value     { return Value{kind: StringKind, str: s} }
func Number(n float64) Value    { return Value{kind: NumberKind, num: n} }
func Bool(b bool) Value         { return Value{kind: BoolKind, b: b} }
func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == NullKind }

func (v Value) Str() (string, bool) {
	return v.str, v.kind == StringKind
}

func (v Value) Num() (float64, bool) {
	return v.num, v.kind == NumberKind
}

func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

// Any returns the value as a plain Go scalar (nil for null).
func (v Value) Any() any {
	switch v.kind {
	case StringKind:
		return v.str
	case NumberKind:
		return v.num
	case BoolKind:
		return v.b
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case StringKind:
		return v.str
	case NumberKind:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case BoolKind:
		return strconv.FormatBool(v.b)
	default:
		return "null"
	}
}

// FromAny converts a decoded JSON/YAML scalar into a Value.
// Composite values are kept as their textual form.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int8:
		return Number(float64(t))
	case int16:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint8:
		return Number(float64(t))
	case uint16:
		return Number(float64(t))
	case uint32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Number(f)
		}
		return String(t.String())
	default:
		return String(fmt.Sprint(t))
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var x any
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	*v = FromAny(x)
	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.Any(), nil
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (v *Value) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var x any
	if err := unmarshal(&x); err != nil {
		return err
	}
	*v = FromAny(x)
	return nil
}
