package toon

import "strings"

// EncodeOptions configures the encoder.
type EncodeOptions struct {
	// Indent is the number of spaces per nesting level (default 2).
	Indent int

	// Delimiter separates inline values, tabular fields and row cells
	// (default Comma).
	Delimiter Delimiter
}

// DefaultEncodeOptions returns the defaults: 2-space indent, comma.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Indent: 2, Delimiter: Comma}
}

// Encode converts a value to TOON text with default options.
func Encode(v *Value) (string, error) {
	return EncodeWithOptions(v, DefaultEncodeOptions())
}

// EncodeWithOptions converts a value to TOON text.
//
// Encoding fails only on cyclic input (CyclicReferenceError) and on
// number lexemes outside the decimal grammar, such as NaN or Inf
// (UnsupportedValueError). An empty root object encodes to the empty
// string, which Decode rejects as an empty document; every other
// representable value round-trips.
func EncodeWithOptions(v *Value, opts EncodeOptions) (string, error) {
	if opts.Indent < 1 {
		opts.Indent = 2
	}
	if !opts.Delimiter.valid() {
		opts.Delimiter = Comma
	}
	e := &encoder{
		indent:  strings.Repeat(" ", opts.Indent),
		delim:   opts.Delimiter,
		visited: make(map[*Value]struct{}),
	}

	switch v.Kind() {
	case KindObject:
		if err := e.enter(v); err != nil {
			return "", err
		}
		if err := e.emitFields(v, 0); err != nil {
			return "", err
		}
		e.leave(v)
	case KindArray:
		if err := e.emitArray("", "", v, 0); err != nil {
			return "", err
		}
	default:
		s, err := formatScalar(v, e.delim)
		if err != nil {
			return "", err
		}
		e.sb.WriteString(s)
	}
	return e.sb.String(), nil
}

type encoder struct {
	sb      strings.Builder
	indent  string
	delim   Delimiter
	visited map[*Value]struct{}
}

func (e *encoder) pad(depth int) string {
	return strings.Repeat(e.indent, depth)
}

// enter guards against cycles in the value tree. Every container is
// pushed on the way down and removed by leave on the way back up.
func (e *encoder) enter(v *Value) error {
	if _, ok := e.visited[v]; ok {
		return &CyclicReferenceError{}
	}
	e.visited[v] = struct{}{}
	return nil
}

func (e *encoder) leave(v *Value) {
	delete(e.visited, v)
}

// emitFields writes an object's fields, one per line at depth.
func (e *encoder) emitFields(obj *Value, depth int) error {
	for _, f := range obj.objVal {
		if err := e.emitKeyedValue(e.pad(depth), f.Key, f.Value, depth); err != nil {
			return err
		}
	}
	return nil
}

// emitKeyedValue writes one `key: ...` entry. lead is the literal text
// before the key on the first line (indentation, possibly a "- " item
// marker); children are emitted at depth+1.
func (e *encoder) emitKeyedValue(lead, key string, v *Value, depth int) error {
	switch v.Kind() {
	case KindObject:
		if err := e.enter(v); err != nil {
			return err
		}
		e.sb.WriteString(lead)
		e.sb.WriteString(formatKey(key))
		e.sb.WriteString(":\n")
		if err := e.emitFields(v, depth+1); err != nil {
			return err
		}
		e.leave(v)
		return nil

	case KindArray:
		return e.emitArray(lead, formatKey(key), v, depth)

	default:
		s, err := formatScalar(v, e.delim)
		if err != nil {
			return err
		}
		e.sb.WriteString(lead)
		e.sb.WriteString(formatKey(key))
		e.sb.WriteString(": ")
		e.sb.WriteString(s)
		e.sb.WriteByte('\n')
		return nil
	}
}

// emitArray writes an array header and body, choosing inline, tabular or
// expanded form. keyPart is the already-encoded key, empty for the root
// and for nested list items. Children go at depth+1.
func (e *encoder) emitArray(lead, keyPart string, arr *Value, depth int) error {
	if err := e.enter(arr); err != nil {
		return err
	}
	defer e.leave(arr)

	n := len(arr.arrVal)

	// Inline form: every element is a scalar.
	if allScalars(arr.arrVal) {
		e.sb.WriteString(lead)
		e.sb.WriteString(formatArrayHeader(keyPart, n, e.delim, nil))
		if n > 0 {
			e.sb.WriteByte(' ')
			for i, elem := range arr.arrVal {
				if i > 0 {
					e.sb.WriteByte(byte(e.delim))
				}
				s, err := formatScalar(elem, e.delim)
				if err != nil {
					return err
				}
				e.sb.WriteString(s)
			}
		}
		e.sb.WriteByte('\n')
		return nil
	}

	// Tabular form: uniform objects with scalar-only values. Preferred
	// whenever legal; field order is normalized to the first element's.
	if fields := uniformFields(arr.arrVal); fields != nil {
		e.sb.WriteString(lead)
		e.sb.WriteString(formatArrayHeader(keyPart, n, e.delim, fields))
		e.sb.WriteByte('\n')
		rowPad := e.pad(depth + 1)
		for _, item := range arr.arrVal {
			e.sb.WriteString(rowPad)
			for i, name := range fields {
				if i > 0 {
					e.sb.WriteByte(byte(e.delim))
				}
				s, err := formatScalar(item.Get(name), e.delim)
				if err != nil {
					return err
				}
				e.sb.WriteString(s)
			}
			e.sb.WriteByte('\n')
		}
		return nil
	}

	// Expanded form: one dash item per element.
	e.sb.WriteString(lead)
	e.sb.WriteString(formatArrayHeader(keyPart, n, e.delim, nil))
	e.sb.WriteByte('\n')
	for _, item := range arr.arrVal {
		if err := e.emitListItem(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// emitListItem writes one dash-marked element of an expanded array.
func (e *encoder) emitListItem(item *Value, depth int) error {
	lead := e.pad(depth) + "- "

	switch item.Kind() {
	case KindObject:
		if len(item.objVal) == 0 {
			e.sb.WriteString(e.pad(depth))
			e.sb.WriteString("-\n")
			return nil
		}
		if err := e.enter(item); err != nil {
			return err
		}
		// First field rides on the hyphen line; siblings align beneath it
		// one level deeper than the hyphen.
		first := item.objVal[0]
		if err := e.emitKeyedValue(lead, first.Key, first.Value, depth+1); err != nil {
			return err
		}
		for _, f := range item.objVal[1:] {
			if err := e.emitKeyedValue(e.pad(depth+1), f.Key, f.Value, depth+1); err != nil {
				return err
			}
		}
		e.leave(item)
		return nil

	case KindArray:
		return e.emitArray(lead, "", item, depth)

	default:
		s, err := formatScalar(item, e.delim)
		if err != nil {
			return err
		}
		e.sb.WriteString(lead)
		e.sb.WriteString(s)
		e.sb.WriteByte('\n')
		return nil
	}
}

// allScalars reports whether every element is a scalar.
func allScalars(elems []*Value) bool {
	for _, v := range elems {
		if k := v.Kind(); k == KindArray || k == KindObject {
			return false
		}
	}
	return true
}

// uniformFields returns the tabular field list when every element is an
// object over the same key set with scalar-only values, nil otherwise.
// Field order follows the first element.
func uniformFields(elems []*Value) []string {
	if len(elems) == 0 {
		return nil
	}
	first := elems[0]
	if first.Kind() != KindObject || len(first.objVal) == 0 {
		return nil
	}
	names := make([]string, len(first.objVal))
	set := make(map[string]struct{}, len(first.objVal))
	for i, f := range first.objVal {
		names[i] = f.Key
		set[f.Key] = struct{}{}
	}
	if len(set) != len(names) {
		return nil
	}
	for _, elem := range elems {
		if elem.Kind() != KindObject || len(elem.objVal) != len(names) {
			return nil
		}
		for _, f := range elem.objVal {
			if _, ok := set[f.Key]; !ok {
				return nil
			}
			if k := f.Value.Kind(); k == KindArray || k == KindObject {
				return nil
			}
		}
	}
	return names
}
