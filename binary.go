package toon

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ============================================================
// Packed Form
// ============================================================
//
// Pack wraps the text encoding in zstd with a short magic prefix, for
// caching and transport of large documents. The text inside is the
// canonical (default-option) encoding, so Unpack(Pack(v)) returns a
// value equal to v.

var packedMagic = []byte("TOON\x01")

// Shared instances. Both are safe for concurrent use via EncodeAll and
// DecodeAll.
var (
	packEncoder *zstd.Encoder
	packDecoder *zstd.Decoder
)

func init() {
	var err error
	packEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic(fmt.Sprintf("toon: zstd encoder init: %v", err))
	}
	packDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("toon: zstd decoder init: %v", err))
	}
}

// Pack encodes a value with default options and compresses the result.
func Pack(v *Value) ([]byte, error) {
	text, err := Encode(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(packedMagic), len(packedMagic)+len(text)/2)
	copy(out, packedMagic)
	return packEncoder.EncodeAll([]byte(text), out), nil
}

// Unpack decompresses and decodes a packed document.
func Unpack(data []byte) (*Value, error) {
	if !bytes.HasPrefix(data, packedMagic) {
		return nil, fmt.Errorf("toon: not a packed document")
	}
	text, err := packDecoder.DecodeAll(data[len(packedMagic):], nil)
	if err != nil {
		return nil, fmt.Errorf("toon: unpack: %w", err)
	}
	return Decode(string(text))
}
