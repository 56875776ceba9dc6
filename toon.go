package toon

import (
	"fmt"
	"io"
)

// Marshal encodes a value to TOON text with default options.
func Marshal(v *Value) ([]byte, error) {
	s, err := Encode(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Unmarshal decodes TOON text into a value.
func Unmarshal(data []byte) (*Value, error) {
	return Decode(string(data))
}

// Dump encodes a value and writes it to w.
func Dump(w io.Writer, v *Value, opts EncodeOptions) error {
	s, err := EncodeWithOptions(v, opts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("toon: write: %w", err)
	}
	return nil
}

// Load reads all of r and decodes it.
func Load(r io.Reader) (*Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("toon: read: %w", err)
	}
	return Decode(string(data))
}
