// Package toon implements TOON, a token-optimized indentation-sensitive
// notation for structured data.
//
// TOON carries the same value model as JSON (null, bool, number, string,
// array, object) but spends far fewer tokens when the consumer is a
// language model:
//   - Bare strings and keys (quotes only where required)
//   - Arrays of scalars collapse to one line: friends[3]: ana,luis,sam
//   - Arrays of uniform objects collapse to a table:
//
//     hikes[2]{id,name,distanceKm}:
//       1,Blue Lake Trail,7.5
//       2,Ridge Overlook,9.2
//
// Every array header declares its element count, so a decoder can verify
// that nothing was truncated or hallucinated away.
//
// # Data Model
//
// Values are built with constructor functions and inspected with typed
// accessors:
//
//	v := toon.Object(
//		toon.F("name", toon.String("Toon World")),
//		toon.F("param", toon.Int(42)),
//		toon.F("features", toon.Array(toon.String("simple"), toon.String("fast"))),
//	)
//	text, err := toon.Encode(v)
//
// Numbers keep their decimal lexeme verbatim: decoding "1.50" and
// re-encoding produces "1.50", not "1.5".
//
// # Strictness
//
// Decode never repairs input. Wrong declared lengths, duplicate keys,
// inconsistent indentation, unterminated quotes and empty documents all
// fail with distinct error types (see SyntaxError, LengthMismatchError,
// DuplicateKeyError, EmptyDocumentError).
//
// # Interop
//
// Bridges convert to and from JSON (order- and lexeme-preserving), YAML,
// deterministic CBOR, and a zstd-packed binary form. CanonicalHash gives a
// stable BLAKE3 digest of a value's canonical encoding.
package toon
