package toon

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// ============================================================
// CBOR Bridge
// ============================================================
//
// Deterministic CBOR interop. Encoding uses the RFC 8949 core
// deterministic profile, so equal documents produce byte-identical
// output. CBOR maps are key-sorted, so object order does not survive a
// trip through this bridge; the text codec is the order-preserving path.

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("toon: cbor encoder init: %v", err))
	}
	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("toon: cbor decoder init: %v", err))
	}
}

// ToCBOR converts a Value to deterministic CBOR bytes.
func ToCBOR(v *Value) ([]byte, error) {
	native, err := ToGo(v)
	if err != nil {
		return nil, err
	}
	data, err := cborEnc.Marshal(native)
	if err != nil {
		return nil, fmt.Errorf("toon: CBOR encode: %w", err)
	}
	return data, nil
}

// FromCBOR converts CBOR bytes to a Value. Map keys come back sorted.
// Byte strings become base64 strings, the encoding/json convention.
func FromCBOR(data []byte) (*Value, error) {
	var native any
	if err := cborDec.Unmarshal(data, &native); err != nil {
		return nil, fmt.Errorf("toon: CBOR decode: %w", err)
	}
	return FromGo(native)
}
