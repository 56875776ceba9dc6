package toon

import "fmt"

// SyntaxError reports malformed input: bad indentation, an unterminated
// quote, a row with the wrong arity, an unknown escape. Line and Column
// are 1-based.
type SyntaxError struct {
	Msg    string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("toon: %s at line %d, column %d", e.Msg, e.Line, e.Column)
}

// LengthMismatchError reports an array whose declared element count does
// not match the number of elements found. Key is empty for root arrays.
type LengthMismatchError struct {
	Key      string
	Declared int
	Actual   int
	Line     int
}

func (e *LengthMismatchError) Error() string {
	key := e.Key
	if key == "" {
		key = "(root)"
	}
	return fmt.Sprintf("toon: array %s declares %d elements, found %d (line %d)",
		key, e.Declared, e.Actual, e.Line)
}

// DuplicateKeyError reports two sibling fields with the same key, or a
// repeated field name in a tabular header.
type DuplicateKeyError struct {
	Key  string
	Line int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("toon: duplicate key %q at line %d", e.Key, e.Line)
}

// CyclicReferenceError reports a cycle in the value tree at encode time.
type CyclicReferenceError struct{}

func (e *CyclicReferenceError) Error() string {
	return "toon: cyclic reference in value tree"
}

// UnsupportedValueError reports a value the encoder cannot represent,
// such as a NaN or infinite number lexeme.
type UnsupportedValueError struct {
	Reason string
}

func (e *UnsupportedValueError) Error() string {
	return "toon: unsupported value: " + e.Reason
}

// EmptyDocumentError reports a decode input with no content lines. A
// valid document always yields exactly one root value.
type EmptyDocumentError struct{}

func (e *EmptyDocumentError) Error() string {
	return "toon: empty document"
}
