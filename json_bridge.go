package toon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/tidwall/jsonc"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between JSON and Value. The decode side walks the token
// stream with json.Number enabled so object order and number lexemes
// survive; the encode side writes JSON by hand for the same reason
// (json.Marshal on a map would reorder keys and reformat numbers).

// FromJSON converts JSON bytes to a Value, preserving object key order
// and number lexemes.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("toon: trailing data after JSON value")
	}
	return v, nil
}

// FromJSONC converts JSONC (JSON with comments and trailing commas) to a
// Value. LLM-produced JSON often arrives in this shape.
func FromJSONC(data []byte) (*Value, error) {
	return FromJSON(jsonc.ToJSON(data))
}

func readJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("toon: JSON parse: %w", err)
	}
	return readJSONToken(dec, tok)
}

func readJSONToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			obj := Object()
			seen := make(map[string]struct{})
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("toon: JSON parse: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("toon: JSON object key is not a string")
				}
				if err := noteKey(seen, key, 0); err != nil {
					return nil, err
				}
				val, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.objVal = append(obj.objVal, Field{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, fmt.Errorf("toon: JSON parse: %w", err)
			}
			return obj, nil
		case '[':
			arr := Array()
			for dec.More() {
				elem, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.arrVal = append(arr.arrVal, elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, fmt.Errorf("toon: JSON parse: %w", err)
			}
			return arr, nil
		}
	}
	return nil, fmt.Errorf("toon: unexpected JSON token %v", tok)
}

// ToJSON converts a Value to compact JSON bytes, preserving object key
// order and number lexemes.
func ToJSON(v *Value) ([]byte, error) {
	w := &jsonWriter{visited: make(map[*Value]struct{})}
	if err := w.write(v); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type jsonWriter struct {
	buf     bytes.Buffer
	visited map[*Value]struct{}
}

func (w *jsonWriter) write(v *Value) error {
	if v.IsNull() {
		w.buf.WriteString("null")
		return nil
	}
	switch v.kind {
	case KindBool:
		if v.boolVal {
			w.buf.WriteString("true")
		} else {
			w.buf.WriteString("false")
		}
	case KindNumber:
		if !isNumericLexeme(v.numVal) || hasLeadingZero(v.numVal) {
			return &UnsupportedValueError{Reason: "number lexeme " + fmt.Sprintf("%q", v.numVal)}
		}
		w.buf.WriteString(v.numVal)
	case KindString:
		return w.writeString(v.strVal)
	case KindArray:
		if _, ok := w.visited[v]; ok {
			return &CyclicReferenceError{}
		}
		w.visited[v] = struct{}{}
		w.buf.WriteByte('[')
		for i, elem := range v.arrVal {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.write(elem); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
		delete(w.visited, v)
	case KindObject:
		if _, ok := w.visited[v]; ok {
			return &CyclicReferenceError{}
		}
		w.visited[v] = struct{}{}
		w.buf.WriteByte('{')
		for i, f := range v.objVal {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.writeString(f.Key); err != nil {
				return err
			}
			w.buf.WriteByte(':')
			if err := w.write(f.Value); err != nil {
				return err
			}
		}
		w.buf.WriteByte('}')
		delete(w.visited, v)
	}
	return nil
}

func (w *jsonWriter) writeString(s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("toon: JSON string: %w", err)
	}
	w.buf.Write(b)
	return nil
}

// ============================================================
// Native Go Values
// ============================================================

// FromGo converts a native Go value to a Value. Map keys are sorted
// since Go maps carry no order. Types outside the switch go through an
// encoding/json round trip, so anything json.Marshal accepts works.
func FromGo(v any) (*Value, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case *Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return Number(fmt.Sprintf("%d", val)), nil
	case uint8:
		return Int(int64(val)), nil
	case uint16:
		return Int(int64(val)), nil
	case uint32:
		return Int(int64(val)), nil
	case uint64:
		return Number(fmt.Sprintf("%d", val)), nil
	case float32:
		return Float(float64(val)), nil
	case float64:
		return Float(val), nil
	case json.Number:
		return Number(val.String()), nil
	case []any:
		arr := Array()
		for i, elem := range val {
			gv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr.arrVal = append(arr.arrVal, gv)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := Object()
		for _, k := range keys {
			gv, err := FromGo(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj.objVal = append(obj.objVal, Field{Key: k, Value: gv})
		}
		return obj, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, &UnsupportedValueError{Reason: fmt.Sprintf("Go type %T", v)}
		}
		return FromJSON(data)
	}
}

// ToGo converts a Value to native Go types: nil, bool, int64/float64,
// string, []any and map[string]any. Object key order is lost (Go maps
// are unordered).
func ToGo(v *Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	switch v.kind {
	case KindBool:
		return v.boolVal, nil
	case KindNumber:
		if v.IsInt() {
			if n, err := v.AsInt(); err == nil {
				return n, nil
			}
		}
		return v.AsFloat()
	case KindString:
		return v.strVal, nil
	case KindArray:
		items := make([]any, 0, len(v.arrVal))
		for _, elem := range v.arrVal {
			gv, err := ToGo(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, gv)
		}
		return items, nil
	case KindObject:
		obj := make(map[string]any, len(v.objVal))
		for _, f := range v.objVal {
			gv, err := ToGo(f.Value)
			if err != nil {
				return nil, err
			}
			obj[f.Key] = gv
		}
		return obj, nil
	default:
		return nil, &UnsupportedValueError{Reason: "unknown kind"}
	}
}
