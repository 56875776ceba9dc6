package toon

import (
	"errors"
	"testing"
)

func TestFromYAML(t *testing.T) {
	doc := []byte("b: 1\na: two\nlist:\n  - true\n  - null\nnested:\n  x: 1.50\n")
	v, err := FromYAML(doc)
	if err != nil {
		t.Fatal(err)
	}
	fields, err := v.AsObject()
	if err != nil {
		t.Fatal(err)
	}
	wantKeys := []string{"b", "a", "list", "nested"}
	for i, k := range wantKeys {
		if fields[i].Key != k {
			t.Errorf("field %d = %q, want %q", i, fields[i].Key, k)
		}
	}
	if lex, _ := v.Get("b").Lexeme(); lex != "1" {
		t.Errorf("b lexeme = %q", lex)
	}
	if lex, _ := v.Get("nested").Get("x").Lexeme(); lex != "1.50" {
		t.Errorf("x lexeme = %q, want 1.50", lex)
	}
	list, _ := v.Get("list").AsArray()
	if len(list) != 2 || list[0].Kind() != KindBool || !list[1].IsNull() {
		t.Errorf("list = %v", list)
	}
}

func TestFromYAMLNonDecimalNumbers(t *testing.T) {
	v, err := FromYAML([]byte("hex: 0x1A\noct: 0o17\n"))
	if err != nil {
		t.Fatal(err)
	}
	if lex, _ := v.Get("hex").Lexeme(); lex != "26" {
		t.Errorf("hex lexeme = %q, want 26", lex)
	}
	if lex, _ := v.Get("oct").Lexeme(); lex != "15" {
		t.Errorf("oct lexeme = %q, want 15", lex)
	}
}

func TestFromYAMLAnchors(t *testing.T) {
	v, err := FromYAML([]byte("base: &x 7\nref: *x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Get("ref").Equal(Number("7")) {
		t.Errorf("ref = %v", v.Get("ref"))
	}
}

func TestFromYAMLDuplicateKeys(t *testing.T) {
	_, err := FromYAML([]byte("a: 1\na: 2\n"))
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("FromYAML = %v, want DuplicateKeyError", err)
	}
}

func TestFromYAMLEmpty(t *testing.T) {
	_, err := FromYAML([]byte(""))
	var empty *EmptyDocumentError
	if !errors.As(err, &empty) {
		t.Fatalf("FromYAML = %v, want EmptyDocumentError", err)
	}
}

func TestToYAML(t *testing.T) {
	cases := []struct {
		name string
		in   *Value
		want string
	}{
		{
			"ordered object",
			Object(F("b", Int(1)), F("a", String("two"))),
			"b: 1\na: two\n",
		},
		{
			"sequence",
			Array(Int(1), Int(2)),
			"- 1\n- 2\n",
		},
		{
			"string needs quoting",
			Object(F("v", String("42"))),
			"v: \"42\"\n",
		},
		{
			"null field",
			Object(F("x", Null())),
			"x: null\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToYAML(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tc.want {
				t.Errorf("ToYAML = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestToYAMLCyclic(t *testing.T) {
	obj := Object(F("a", Int(1)))
	obj.Set("self", obj)
	_, err := ToYAML(obj)
	var cyc *CyclicReferenceError
	if !errors.As(err, &cyc) {
		t.Fatalf("ToYAML = %v, want CyclicReferenceError", err)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	v := Object(
		F("name", String("Toon World")),
		F("param", Int(42)),
		F("price", Number("1.50")),
		F("flags", Array(Bool(true), Bool(false))),
		F("meta", Object(F("note", String("hi")), F("gone", Null()))),
	)
	out, err := ToYAML(v)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromYAML(out)
	if err != nil {
		t.Fatalf("FromYAML of\n%s\nfailed: %v", out, err)
	}
	if !back.Equal(v) {
		t.Errorf("YAML round trip changed the value:\n%s", out)
	}
}
