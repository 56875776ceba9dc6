package toon

import (
	"strconv"
	"strings"
)

// arrayHeader is a parsed `key[n]:`, `key[n<delim>]:` or `key[n]{fields}:`
// line. Root headers carry no key.
type arrayHeader struct {
	key       string
	hasKey    bool
	count     int
	delim     Delimiter
	fields    []string // nil when no {fields} group is present
	hasFields bool
	line      int
}

// ============================================================
// Quote-Aware Scanning
// ============================================================

// findUnquoted returns the index of the first ch outside of a quoted
// region, or -1.
func findUnquoted(s string, ch byte) int {
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '\\' {
				i++
				continue
			}
			if c == '"' {
				inQuote = false
			}
			continue
		}
		if c == '"' {
			inQuote = true
			continue
		}
		if c == ch {
			return i
		}
	}
	return -1
}

// splitDelimited splits text on unquoted delimiter occurrences and trims
// surrounding spaces from each piece. ln and col locate the start of text.
func splitDelimited(text string, delim Delimiter, ln, col int) ([]string, error) {
	var parts []string
	start := 0
	inQuote := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQuote {
			if c == '\\' {
				i++
				continue
			}
			if c == '"' {
				inQuote = false
			}
			continue
		}
		if c == '"' {
			inQuote = true
			continue
		}
		if c == byte(delim) {
			parts = append(parts, strings.TrimSpace(text[start:i]))
			start = i + 1
		}
	}
	if inQuote {
		return nil, &SyntaxError{Msg: "unterminated string", Line: ln, Column: col}
	}
	parts = append(parts, strings.TrimSpace(text[start:]))
	return parts, nil
}

// ============================================================
// Header Parsing
// ============================================================

// tryParseArrayHeader inspects a line for an array header and returns it
// together with any inline content after the colon. A line that is not a
// header returns (nil, "", nil); only clearly-header lines with broken
// field quoting produce an error.
func tryParseArrayHeader(content string, ln, indentCols int) (*arrayHeader, string, error) {
	colon := findUnquoted(content, ':')
	if colon == -1 {
		return nil, "", nil
	}
	head := content[:colon]
	inline := strings.TrimSpace(content[colon+1:])

	open := findUnquoted(head, '[')
	if open == -1 {
		return nil, "", nil
	}
	closing := strings.IndexByte(head[open:], ']')
	if closing == -1 {
		return nil, "", nil
	}
	closing += open

	keyPart := head[:open]
	bracket := head[open+1 : closing]
	rest := head[closing+1:]

	if bracket == "" {
		return nil, "", nil
	}
	delim := Comma
	if last := bracket[len(bracket)-1]; last == byte(Tab) || last == byte(Pipe) {
		delim = Delimiter(last)
		bracket = bracket[:len(bracket)-1]
	}
	count, err := strconv.Atoi(bracket)
	if err != nil || count < 0 || (len(bracket) > 1 && bracket[0] == '0') {
		return nil, "", nil
	}

	hdr := &arrayHeader{count: count, delim: delim, line: ln}

	if rest != "" {
		if !strings.HasPrefix(rest, "{") || !strings.HasSuffix(rest, "}") {
			return nil, "", nil
		}
		hdr.hasFields = true
		inner := rest[1 : len(rest)-1]
		if inner != "" {
			raw, err := splitDelimited(inner, delim, ln, indentCols+open+len(rest))
			if err != nil {
				return nil, "", err
			}
			hdr.fields = make([]string, len(raw))
			for i, r := range raw {
				name, err := parseKeyText(r, ln, indentCols+1)
				if err != nil {
					return nil, "", err
				}
				hdr.fields[i] = name
			}
		}
	}

	if keyPart != "" {
		key, err := parseKeyText(strings.TrimSpace(keyPart), ln, indentCols+1)
		if err != nil {
			return nil, "", err
		}
		hdr.key = key
		hdr.hasKey = true
	}
	return hdr, inline, nil
}

// ============================================================
// Header Formatting
// ============================================================

// formatArrayHeader renders the header text up to and including the colon.
// keyPart is already encoded (or empty for root arrays).
func formatArrayHeader(keyPart string, n int, delim Delimiter, fields []string) string {
	var b strings.Builder
	b.WriteString(keyPart)
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(n))
	if delim != Comma {
		b.WriteByte(byte(delim))
	}
	b.WriteByte(']')
	if fields != nil {
		b.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(byte(delim))
			}
			b.WriteString(formatKey(f))
		}
		b.WriteByte('}')
	}
	b.WriteByte(':')
	return b.String()
}
