package toon

import (
	"fmt"
	"strings"
)

// DecodeOptions configures the decoder.
type DecodeOptions struct {
	// MaxDepth bounds the nesting depth (default 128). Documents nested
	// deeper fail with a SyntaxError instead of growing the stack.
	MaxDepth int
}

const defaultMaxDepth = 128

// Decode parses TOON text into a value with default options.
func Decode(text string) (*Value, error) {
	return DecodeWithOptions(text, DecodeOptions{})
}

// DecodeWithOptions parses TOON text into a value.
//
// Decoding is strict: wrong declared array lengths, duplicate sibling
// keys, inconsistent indentation, unterminated quotes and empty documents
// all fail with distinct error types. There is no repair mode and no
// partial result.
func DecodeWithOptions(text string, opts DecodeOptions) (*Value, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	lines, err := splitLines(text)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, &EmptyDocumentError{}
	}
	p := &parser{lines: lines, maxDepth: maxDepth}
	root, err := p.parseRoot()
	if err != nil {
		return nil, err
	}
	if l := p.peek(); l != nil {
		return nil, &SyntaxError{Msg: "unexpected content after document root", Line: l.num, Column: l.indent + 1}
	}
	return root, nil
}

// line is one non-blank physical line with its indentation resolved.
type line struct {
	num     int // 1-based physical line number
	indent  int // leading space count
	level   int // indent / unit
	content string
}

// splitLines breaks the input into content lines. Trailing whitespace is
// stripped, blank lines are skipped, and the indentation unit is inferred
// from the first indented line; every other indent must be a multiple of
// it. Indentation is spaces only.
func splitLines(text string) ([]line, error) {
	var lines []line
	unit := 0
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, " \t\r")
		if raw == "" {
			continue
		}
		indent := 0
		for indent < len(raw) && raw[indent] == ' ' {
			indent++
		}
		if raw[indent] == '\t' {
			return nil, &SyntaxError{Msg: "tab in indentation", Line: i + 1, Column: indent + 1}
		}
		level := 0
		if indent > 0 {
			if unit == 0 {
				unit = indent
			}
			if indent%unit != 0 {
				return nil, &SyntaxError{
					Msg:    fmt.Sprintf("indentation of %d spaces is not a multiple of %d", indent, unit),
					Line:   i + 1,
					Column: indent + 1,
				}
			}
			level = indent / unit
		}
		lines = append(lines, line{num: i + 1, indent: indent, level: level, content: raw[indent:]})
	}
	return lines, nil
}

type parser struct {
	lines    []line
	pos      int
	maxDepth int
}

func (p *parser) peek() *line {
	if p.pos < len(p.lines) {
		return &p.lines[p.pos]
	}
	return nil
}

func (p *parser) advance() {
	p.pos++
}

// parseRoot dispatches between the three root forms: a keyless array
// header, a single scalar line, or an object.
func (p *parser) parseRoot() (*Value, error) {
	first := p.peek()
	if first.level != 0 {
		return nil, &SyntaxError{Msg: "unexpected indentation", Line: first.num, Column: 1}
	}

	if strings.HasPrefix(first.content, "[") {
		hdr, inline, err := tryParseArrayHeader(first.content, first.num, first.indent)
		if err != nil {
			return nil, err
		}
		if hdr != nil && !hdr.hasKey {
			p.advance()
			return p.parseArrayBody("", hdr, inline, 0, 1)
		}
	}

	if findUnquoted(first.content, ':') == -1 {
		if len(p.lines) == 1 {
			p.advance()
			return parseScalar(first.content, first.num, 1)
		}
		return nil, &SyntaxError{Msg: "expected key: value", Line: first.num, Column: 1}
	}

	return p.parseObject(0, 1)
}

// ============================================================
// Objects
// ============================================================

func (p *parser) parseObject(level, depth int) (*Value, error) {
	obj := Object()
	seen := make(map[string]struct{})
	if err := p.parseObjectFieldsInto(obj, seen, level, depth); err != nil {
		return nil, err
	}
	return obj, nil
}

// parseObjectFieldsInto collects `key: value` entries at exactly level
// into obj until a dedent or end of input. seen carries keys already
// present (the first field of a dash item rides on the hyphen line).
func (p *parser) parseObjectFieldsInto(obj *Value, seen map[string]struct{}, level, depth int) error {
	if depth > p.maxDepth {
		at := 0
		if l := p.peek(); l != nil {
			at = l.num
		}
		return &SyntaxError{Msg: "maximum nesting depth exceeded", Line: at, Column: 1}
	}
	for {
		l := p.peek()
		if l == nil || l.level < level {
			return nil
		}
		if l.level > level {
			return &SyntaxError{Msg: "unexpected indentation", Line: l.num, Column: l.indent + 1}
		}
		p.advance()

		hdr, inline, err := tryParseArrayHeader(l.content, l.num, l.indent)
		if err != nil {
			return err
		}
		if hdr != nil {
			if !hdr.hasKey {
				return &SyntaxError{Msg: "array header without key inside object", Line: l.num, Column: l.indent + 1}
			}
			if err := noteKey(seen, hdr.key, l.num); err != nil {
				return err
			}
			val, err := p.parseArrayBody(hdr.key, hdr, inline, level, depth+1)
			if err != nil {
				return err
			}
			obj.objVal = append(obj.objVal, Field{Key: hdr.key, Value: val})
			continue
		}

		colon := findUnquoted(l.content, ':')
		if colon == -1 {
			return &SyntaxError{Msg: "expected key: value", Line: l.num, Column: l.indent + 1}
		}
		key, err := parseKeyText(strings.TrimSpace(l.content[:colon]), l.num, l.indent+1)
		if err != nil {
			return err
		}
		if err := noteKey(seen, key, l.num); err != nil {
			return err
		}

		valText := strings.TrimSpace(l.content[colon+1:])
		if valText != "" {
			v, err := parseScalar(valText, l.num, l.indent+colon+2)
			if err != nil {
				return err
			}
			obj.objVal = append(obj.objVal, Field{Key: key, Value: v})
			continue
		}

		// Bare `key:` opens a nested object; with no deeper lines it is
		// an empty object, not null.
		next := p.peek()
		if next != nil && next.level > level {
			child, err := p.parseObject(level+1, depth+1)
			if err != nil {
				return err
			}
			obj.objVal = append(obj.objVal, Field{Key: key, Value: child})
		} else {
			obj.objVal = append(obj.objVal, Field{Key: key, Value: Object()})
		}
	}
}

func noteKey(seen map[string]struct{}, key string, ln int) error {
	if _, dup := seen[key]; dup {
		return &DuplicateKeyError{Key: key, Line: ln}
	}
	seen[key] = struct{}{}
	return nil
}

// ============================================================
// Arrays
// ============================================================

// parseArrayBody builds the array declared by hdr. level is the level of
// the header line itself; rows and items sit one level deeper.
func (p *parser) parseArrayBody(key string, hdr *arrayHeader, inline string, level, depth int) (*Value, error) {
	if depth > p.maxDepth {
		return nil, &SyntaxError{Msg: "maximum nesting depth exceeded", Line: hdr.line, Column: 1}
	}

	if inline != "" {
		if hdr.hasFields {
			return nil, &SyntaxError{Msg: "tabular header cannot carry inline values", Line: hdr.line, Column: 1}
		}
		raw, err := splitDelimited(inline, hdr.delim, hdr.line, 1)
		if err != nil {
			return nil, err
		}
		arr := Array()
		for _, r := range raw {
			v, err := parseScalar(r, hdr.line, 1)
			if err != nil {
				return nil, err
			}
			arr.arrVal = append(arr.arrVal, v)
		}
		if len(arr.arrVal) != hdr.count {
			return nil, &LengthMismatchError{Key: key, Declared: hdr.count, Actual: len(arr.arrVal), Line: hdr.line}
		}
		return arr, nil
	}

	if hdr.hasFields {
		return p.parseTabularRows(key, hdr, level, depth)
	}
	return p.parseListItems(key, hdr, level, depth)
}

// parseTabularRows reads the comma-joined rows under a `key[n]{fields}:`
// header and reconstructs one object per row, keys in header order.
func (p *parser) parseTabularRows(key string, hdr *arrayHeader, level, depth int) (*Value, error) {
	fseen := make(map[string]struct{}, len(hdr.fields))
	for _, f := range hdr.fields {
		if err := noteKey(fseen, f, hdr.line); err != nil {
			return nil, err
		}
	}

	arr := Array()
	for {
		l := p.peek()
		if l == nil || l.level < level+1 {
			break
		}
		if l.level > level+1 {
			return nil, &SyntaxError{Msg: "unexpected indentation", Line: l.num, Column: l.indent + 1}
		}
		p.advance()

		cells, err := splitDelimited(l.content, hdr.delim, l.num, l.indent+1)
		if err != nil {
			return nil, err
		}
		if len(cells) != len(hdr.fields) {
			return nil, &SyntaxError{
				Msg:    fmt.Sprintf("row has %d values, header declares %d fields", len(cells), len(hdr.fields)),
				Line:   l.num,
				Column: l.indent + 1,
			}
		}
		row := Object()
		for i, c := range cells {
			v, err := parseScalar(c, l.num, l.indent+1)
			if err != nil {
				return nil, err
			}
			row.objVal = append(row.objVal, Field{Key: hdr.fields[i], Value: v})
		}
		arr.arrVal = append(arr.arrVal, row)
	}

	if len(arr.arrVal) != hdr.count {
		return nil, &LengthMismatchError{Key: key, Declared: hdr.count, Actual: len(arr.arrVal), Line: hdr.line}
	}
	return arr, nil
}

// parseListItems reads dash-marked elements under a `key[n]:` header.
func (p *parser) parseListItems(key string, hdr *arrayHeader, level, depth int) (*Value, error) {
	itemLevel := level + 1
	arr := Array()
	for {
		l := p.peek()
		if l == nil || l.level < itemLevel {
			break
		}
		if l.level > itemLevel {
			return nil, &SyntaxError{Msg: "unexpected indentation", Line: l.num, Column: l.indent + 1}
		}
		if l.content != "-" && !strings.HasPrefix(l.content, "- ") {
			return nil, &SyntaxError{Msg: "expected list item", Line: l.num, Column: l.indent + 1}
		}
		p.advance()

		if l.content == "-" {
			// Bare dash: an empty object element.
			arr.arrVal = append(arr.arrVal, Object())
			continue
		}
		item, err := p.parseListItem(l.content[2:], l, itemLevel, depth)
		if err != nil {
			return nil, err
		}
		arr.arrVal = append(arr.arrVal, item)
	}

	if len(arr.arrVal) != hdr.count {
		return nil, &LengthMismatchError{Key: key, Declared: hdr.count, Actual: len(arr.arrVal), Line: hdr.line}
	}
	return arr, nil
}

// parseListItem interprets the text after "- ". An object item puts its
// first field on the hyphen line; its remaining fields sit one level
// deeper than the hyphen, and children of the first field two deeper.
func (p *parser) parseListItem(itemText string, l *line, itemLevel, depth int) (*Value, error) {
	hdr, inline, err := tryParseArrayHeader(itemText, l.num, l.indent+2)
	if err != nil {
		return nil, err
	}
	if hdr != nil && !hdr.hasKey {
		// Nested array element: `- [m]: ...`
		return p.parseArrayBody("", hdr, inline, itemLevel, depth+1)
	}
	if hdr != nil {
		// Object element whose first field is an array.
		obj := Object()
		seen := make(map[string]struct{})
		if err := noteKey(seen, hdr.key, l.num); err != nil {
			return nil, err
		}
		val, err := p.parseArrayBody(hdr.key, hdr, inline, itemLevel+1, depth+2)
		if err != nil {
			return nil, err
		}
		obj.objVal = append(obj.objVal, Field{Key: hdr.key, Value: val})
		if err := p.parseObjectFieldsInto(obj, seen, itemLevel+1, depth+1); err != nil {
			return nil, err
		}
		return obj, nil
	}

	colon := findUnquoted(itemText, ':')
	if colon == -1 {
		// Scalar element.
		return parseScalar(itemText, l.num, l.indent+3)
	}

	// Object element: first field on the hyphen line.
	key, err := parseKeyText(strings.TrimSpace(itemText[:colon]), l.num, l.indent+3)
	if err != nil {
		return nil, err
	}
	obj := Object()
	seen := map[string]struct{}{key: {}}

	valText := strings.TrimSpace(itemText[colon+1:])
	if valText != "" {
		v, err := parseScalar(valText, l.num, l.indent+colon+5)
		if err != nil {
			return nil, err
		}
		obj.objVal = append(obj.objVal, Field{Key: key, Value: v})
	} else {
		next := p.peek()
		if next != nil && next.level >= itemLevel+2 {
			child, err := p.parseObject(itemLevel+2, depth+2)
			if err != nil {
				return nil, err
			}
			obj.objVal = append(obj.objVal, Field{Key: key, Value: child})
		} else {
			obj.objVal = append(obj.objVal, Field{Key: key, Value: Object()})
		}
	}

	if err := p.parseObjectFieldsInto(obj, seen, itemLevel+1, depth+1); err != nil {
		return nil, err
	}
	return obj, nil
}
