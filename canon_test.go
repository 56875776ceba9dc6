package toon

import (
	"strings"
	"testing"
)

func TestCanonicalHash(t *testing.T) {
	v := Object(F("name", String("Toon World")), F("param", Int(42)))

	sum, err := CanonicalHash(v)
	if err != nil {
		t.Fatal(err)
	}
	if len(sum) != 64 {
		t.Errorf("hash length = %d, want 64", len(sum))
	}
	if strings.ToLower(sum) != sum {
		t.Error("hash should be lowercase hex")
	}

	again, err := CanonicalHash(Object(F("name", String("Toon World")), F("param", Int(42))))
	if err != nil {
		t.Fatal(err)
	}
	if sum != again {
		t.Error("equal values must hash equal")
	}
}

func TestCanonicalHashDistinguishes(t *testing.T) {
	base := Object(F("a", Int(1)))
	variants := []*Value{
		Object(F("a", Int(2))),
		Object(F("a", Number("1.0"))),
		Object(F("a", String("1"))),
		Object(F("b", Int(1))),
	}
	baseSum, err := CanonicalHash(base)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range variants {
		sum, err := CanonicalHash(v)
		if err != nil {
			t.Fatal(err)
		}
		if sum == baseSum {
			t.Errorf("distinct value collided with base hash")
		}
	}
}

func TestCanonicalHashIgnoresSourceFormatting(t *testing.T) {
	// Two spellings of the same document hash equal once decoded.
	a, err := Decode("users[2]{id,name}:\n  1,Ada\n  2,Bob\n")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Decode("users[2]:\n  - id: 1\n    name: Ada\n  - id: 2\n    name: Bob\n")
	if err != nil {
		t.Fatal(err)
	}
	ha, err := CanonicalHash(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := CanonicalHash(b)
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Error("equivalent documents should hash equal")
	}
}

func TestCanonicalHashCyclic(t *testing.T) {
	obj := Object()
	obj.Set("self", obj)
	if _, err := CanonicalHash(obj); err == nil {
		t.Error("hashing a cyclic value should fail")
	}
}

func TestFingerprint(t *testing.T) {
	v := Object(F("a", Int(1)))
	fp, err := Fingerprint(v)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(fp, "toon-") {
		t.Errorf("fingerprint %q missing prefix", fp)
	}
	if len(fp) != len("toon-")+12 {
		t.Errorf("fingerprint length = %d", len(fp))
	}
	sum, err := CanonicalHash(v)
	if err != nil {
		t.Fatal(err)
	}
	if fp != "toon-"+sum[:12] {
		t.Errorf("fingerprint %q does not match hash %q", fp, sum)
	}
}
