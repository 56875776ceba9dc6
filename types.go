package toon

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind represents TOON value kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value represents a TOON value.
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind)
	boolVal bool
	numVal  string // decimal lexeme, preserved verbatim across decode/encode
	strVal  string

	// Container values
	arrVal []*Value
	objVal []Field
}

// Field represents a key-value pair in an object. Insertion order is
// significant and preserved.
type Field struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Number creates a numeric value from a decimal lexeme. The lexeme is kept
// as-is, so "1.50" stays "1.50" through a round trip. Validity is checked
// at encode time.
func Number(lexeme string) *Value {
	return &Value{kind: KindNumber, numVal: lexeme}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{kind: KindNumber, numVal: strconv.FormatInt(v, 10)}
}

// Float creates a float value. NaN and infinities produce lexemes that
// Encode rejects with UnsupportedValueError.
func Float(v float64) *Value {
	return &Value{kind: KindNumber, numVal: strconv.FormatFloat(v, 'g', -1, 64)}
}

// String creates a string value.
func String(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// Array creates an array value.
func Array(values ...*Value) *Value {
	return &Value{kind: KindArray, arrVal: values}
}

// Object creates an object value from fields.
func Object(fields ...Field) *Value {
	return &Value{kind: KindObject, objVal: fields}
}

// F creates a Field for use in Object construction.
func F(key string, value *Value) Field {
	return Field{Key: key, Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v == nil {
		return false, fmt.Errorf("toon: nil value")
	}
	if v.kind != KindBool {
		return false, fmt.Errorf("toon: expected bool, got %s", v.kind)
	}
	return v.boolVal, nil
}

// Lexeme returns the raw decimal lexeme of a number.
func (v *Value) Lexeme() (string, error) {
	if v == nil {
		return "", fmt.Errorf("toon: nil value")
	}
	if v.kind != KindNumber {
		return "", fmt.Errorf("toon: expected number, got %s", v.kind)
	}
	return v.numVal, nil
}

// AsInt returns the number as int64. Fails on fractional or exponent
// lexemes that do not fit an int64.
func (v *Value) AsInt() (int64, error) {
	lex, err := v.Lexeme()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(lex, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("toon: number %q is not an int64", lex)
	}
	return n, nil
}

// AsFloat returns the number as float64.
func (v *Value) AsFloat() (float64, error) {
	lex, err := v.Lexeme()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		return 0, fmt.Errorf("toon: number %q is not a float64", lex)
	}
	return f, nil
}

// IsInt reports whether a number lexeme is an integer literal (no decimal
// point, no exponent).
func (v *Value) IsInt() bool {
	if v == nil || v.kind != KindNumber {
		return false
	}
	return !strings.ContainsAny(v.numVal, ".eE")
}

// AsString returns the string value.
func (v *Value) AsString() (string, error) {
	if v == nil {
		return "", fmt.Errorf("toon: nil value")
	}
	if v.kind != KindString {
		return "", fmt.Errorf("toon: expected string, got %s", v.kind)
	}
	return v.strVal, nil
}

// AsArray returns the array elements.
func (v *Value) AsArray() ([]*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("toon: nil value")
	}
	if v.kind != KindArray {
		return nil, fmt.Errorf("toon: expected array, got %s", v.kind)
	}
	return v.arrVal, nil
}

// AsObject returns the object fields.
func (v *Value) AsObject() ([]Field, error) {
	if v == nil {
		return nil, fmt.Errorf("toon: nil value")
	}
	if v.kind != KindObject {
		return nil, fmt.Errorf("toon: expected object, got %s", v.kind)
	}
	return v.objVal, nil
}

// Len returns the length of an array or object.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindArray:
		return len(v.arrVal)
	case KindObject:
		return len(v.objVal)
	default:
		return 0
	}
}

// Get returns a field value by key from an object, or nil.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	for _, f := range v.objVal {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Index returns the i-th element of an array.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil || v.kind != KindArray {
		return nil, fmt.Errorf("toon: not an array")
	}
	if i < 0 || i >= len(v.arrVal) {
		return nil, fmt.Errorf("toon: index %d out of bounds (len=%d)", i, len(v.arrVal))
	}
	return v.arrVal[i], nil
}

// ============================================================
// Mutators
// ============================================================

// Set sets a field value on an object, appending if the key is new.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindObject {
		panic("toon: cannot set on non-object")
	}
	for i := range v.objVal {
		if v.objVal[i].Key == key {
			v.objVal[i].Value = val
			return
		}
	}
	v.objVal = append(v.objVal, Field{Key: key, Value: val})
}

// Append adds a value to an array.
func (v *Value) Append(val *Value) {
	if v.kind != KindArray {
		panic("toon: cannot append to non-array")
	}
	v.arrVal = append(v.arrVal, val)
}

// ============================================================
// Equality
// ============================================================

// Equal reports deep structural equality: same kinds, same order, same
// keys, and identical scalar text for numbers and strings.
func (v *Value) Equal(other *Value) bool {
	if v.IsNull() || other.IsNull() {
		return v.IsNull() && other.IsNull()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.boolVal == other.boolVal
	case KindNumber:
		return v.numVal == other.numVal
	case KindString:
		return v.strVal == other.strVal
	case KindArray:
		if len(v.arrVal) != len(other.arrVal) {
			return false
		}
		for i := range v.arrVal {
			if !v.arrVal[i].Equal(other.arrVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.objVal) != len(other.objVal) {
			return false
		}
		for i := range v.objVal {
			if v.objVal[i].Key != other.objVal[i].Key {
				return false
			}
			if !v.objVal[i].Value.Equal(other.objVal[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
