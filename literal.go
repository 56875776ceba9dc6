package toon

import (
	"strconv"
	"strings"
)

// Delimiter separates inline array values, tabular header fields and
// tabular row cells. Comma is the default; tab and pipe are declared in
// the array header as a suffix character inside the brackets.
type Delimiter byte

const (
	Comma Delimiter = ','
	Tab   Delimiter = '\t'
	Pipe  Delimiter = '|'
)

func (d Delimiter) valid() bool {
	return d == Comma || d == Tab || d == Pipe
}

// ============================================================
// Numeric Lexeme Grammar
// ============================================================

// isNumericLexeme checks the strict numeric literal grammar:
// -?DIGITS(.DIGITS)?([eE][+-]?DIGITS)?
func isNumericLexeme(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start = i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start = i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

// hasLeadingZero checks for leading-zero integer lexemes ("007", "-01").
// These are not valid decimal literals and decode as strings.
func hasLeadingZero(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ============================================================
// Bare-Safety Checks
// ============================================================

// isBareKey checks if a key can be written without quotes.
// Pattern: ^[A-Za-z_][A-Za-z0-9_.]*$
func isBareKey(s string) bool {
	if len(s) == 0 {
		return false
	}
	c := s[0]
	if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c = s[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' ||
			c >= '0' && c <= '9' || c == '_' || c == '.' {
			continue
		}
		return false
	}
	return true
}

// needsQuoting checks if a string value must be quoted to survive a round
// trip under the active delimiter.
func needsQuoting(s string, delim Delimiter) bool {
	if len(s) == 0 {
		return true
	}
	if s[0] == ' ' || s[0] == '-' {
		return true
	}
	if s[len(s)-1] == ' ' {
		return true
	}
	switch s {
	case "true", "false", "null":
		return true
	}
	if isNumericLexeme(s) || hasLeadingZero(s) {
		return true
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ':', '"', '\\', '{', '}', '[', ']', byte(delim):
			return true
		}
		if s[i] < 0x20 {
			return true
		}
	}
	return false
}

// ============================================================
// String Quoting
// ============================================================

// quoteScalar returns a quoted string with minimal escapes: only the
// quote, the backslash and control characters are escaped.
func quoteScalar(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 10)
	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				// Control character: use \u00XX
				b.WriteString(`\u00`)
				hex := strconv.FormatInt(int64(r), 16)
				if len(hex) == 1 {
					b.WriteByte('0')
				}
				b.WriteString(strings.ToUpper(hex))
			} else {
				b.WriteRune(r)
			}
		}
	}

	b.WriteByte('"')
	return b.String()
}

// unescapeQuoted reverses quoteScalar for the content between the quotes.
// ln and col locate the opening quote for error reporting.
func unescapeQuoted(s string, ln, col int) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", &SyntaxError{Msg: "dangling escape", Line: ln, Column: col + i}
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			if i+4 >= len(s) {
				return "", &SyntaxError{Msg: "truncated \\u escape", Line: ln, Column: col + i}
			}
			n, err := strconv.ParseUint(s[i+1:i+5], 16, 32)
			if err != nil {
				return "", &SyntaxError{Msg: "invalid \\u escape", Line: ln, Column: col + i}
			}
			b.WriteRune(rune(n))
			i += 4
		default:
			return "", &SyntaxError{Msg: "unknown escape \\" + string(s[i]), Line: ln, Column: col + i}
		}
	}
	return b.String(), nil
}

// ============================================================
// Scalar Encoding
// ============================================================

// formatScalar returns the inline text of a scalar value.
func formatScalar(v *Value, delim Delimiter) (string, error) {
	if v.IsNull() {
		return "null", nil
	}
	switch v.kind {
	case KindBool:
		if v.boolVal {
			return "true", nil
		}
		return "false", nil
	case KindNumber:
		if !isNumericLexeme(v.numVal) {
			return "", &UnsupportedValueError{Reason: "number lexeme " + strconv.Quote(v.numVal)}
		}
		if hasLeadingZero(v.numVal) {
			return "", &UnsupportedValueError{Reason: "leading-zero number lexeme " + strconv.Quote(v.numVal)}
		}
		return v.numVal, nil
	case KindString:
		if needsQuoting(v.strVal, delim) {
			return quoteScalar(v.strVal), nil
		}
		return v.strVal, nil
	default:
		return "", &UnsupportedValueError{Reason: v.kind.String() + " is not a scalar"}
	}
}

// formatKey returns the encoded form of an object key.
func formatKey(key string) string {
	if isBareKey(key) {
		return key
	}
	return quoteScalar(key)
}

// ============================================================
// Scalar Decoding
// ============================================================

// parseScalar converts inline text back into a scalar value. ln and col
// locate the first character of text.
func parseScalar(text string, ln, col int) (*Value, error) {
	if strings.HasPrefix(text, "\"") {
		if len(text) < 2 || !strings.HasSuffix(text, "\"") || endsWithEscapedQuote(text) {
			return nil, &SyntaxError{Msg: "unterminated string", Line: ln, Column: col}
		}
		s, err := unescapeQuoted(text[1:len(text)-1], ln, col)
		if err != nil {
			return nil, err
		}
		return String(s), nil
	}
	switch text {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "null":
		return Null(), nil
	}
	if isNumericLexeme(text) && !hasLeadingZero(text) {
		return Number(text), nil
	}
	return String(text), nil
}

// endsWithEscapedQuote detects `"abc\"` style lexemes whose closing quote
// is actually escaped content.
func endsWithEscapedQuote(text string) bool {
	// Count the backslashes directly before the final quote.
	n := 0
	for i := len(text) - 2; i > 0 && text[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// parseKeyText converts an encoded key (bare or quoted) back to its text.
func parseKeyText(text string, ln, col int) (string, error) {
	if strings.HasPrefix(text, "\"") {
		if len(text) < 2 || !strings.HasSuffix(text, "\"") || endsWithEscapedQuote(text) {
			return "", &SyntaxError{Msg: "unterminated quoted key", Line: ln, Column: col}
		}
		return unescapeQuoted(text[1:len(text)-1], ln, col)
	}
	return text, nil
}
