package toon

import (
	"errors"
	"math"
	"testing"
)

func TestEncodeScalarRoots(t *testing.T) {
	cases := []struct {
		name string
		in   *Value
		want string
	}{
		{"int", Int(42), "42"},
		{"float lexeme", Number("1.50"), "1.50"},
		{"negative exponent", Number("-2.5e-10"), "-2.5e-10"},
		{"string", String("hello"), "hello"},
		{"string with space", String("Toon World"), "Toon World"},
		{"null", Null(), "null"},
		{"bool", Bool(true), "true"},
		{"string resembling bool", String("true"), `"true"`},
		{"string resembling number", String("42"), `"42"`},
		{"empty string", String(""), `""`},
		{"leading hyphen", String("-x"), `"-x"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Encode(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("Encode = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEncodeObjects(t *testing.T) {
	cases := []struct {
		name string
		in   *Value
		want string
	}{
		{
			"flat fields",
			Object(
				F("name", String("Toon World")),
				F("param", Int(42)),
				F("features", Array(String("simple"), String("fast"))),
			),
			"name: Toon World\nparam: 42\nfeatures[2]: simple,fast\n",
		},
		{
			"nested object",
			Object(F("server", Object(
				F("host", String("localhost")),
				F("port", Int(8080)),
			))),
			"server:\n  host: localhost\n  port: 8080\n",
		},
		{
			"empty root object",
			Object(),
			"",
		},
		{
			"empty nested object",
			Object(F("meta", Object())),
			"meta:\n",
		},
		{
			"quoted key",
			Object(F("full name", String("Ada"))),
			"\"full name\": Ada\n",
		},
		{
			"key with colon",
			Object(F("a:b", Int(1))),
			"\"a:b\": 1\n",
		},
		{
			"null field",
			Object(F("gone", Null())),
			"gone: null\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Encode(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("Encode =\n%q\nwant\n%q", got, tc.want)
			}
		})
	}
}

func TestEncodeArrays(t *testing.T) {
	cases := []struct {
		name string
		in   *Value
		want string
	}{
		{
			"root inline",
			Array(Int(1), Int(2), Int(3)),
			"[3]: 1,2,3\n",
		},
		{
			"root empty",
			Array(),
			"[0]:\n",
		},
		{
			"empty field array",
			Object(F("tags", Array())),
			"tags[0]:\n",
		},
		{
			"inline with quoting",
			Object(F("tags", Array(String("a,b"), String("c")))),
			"tags[2]: \"a,b\",c\n",
		},
		{
			"inline mixed scalars",
			Object(F("vals", Array(Int(1), Null(), Bool(false), String("x")))),
			"vals[4]: 1,null,false,x\n",
		},
		{
			"tabular",
			Object(F("users", Array(
				Object(F("id", Int(1)), F("name", String("Ada"))),
				Object(F("id", Int(2)), F("name", String("Bob"))),
			))),
			"users[2]{id,name}:\n  1,Ada\n  2,Bob\n",
		},
		{
			"expanded mixed",
			Object(F("items", Array(
				Int(1),
				Object(F("a", Int(1)), F("b", Array(String("x")))),
				Array(Int(2), Int(3)),
			))),
			"items[3]:\n  - 1\n  - a: 1\n    b[1]: x\n  - [2]: 2,3\n",
		},
		{
			"expanded object siblings",
			Object(F("rows", Array(
				Object(F("id", Int(1)), F("note", String("x")), F("extra", Bool(true))),
				Object(F("id", Int(2))),
			))),
			"rows[2]:\n  - id: 1\n    note: x\n    extra: true\n  - id: 2\n",
		},
		{
			"empty object item",
			Array(Object(), String("x")),
			"[2]:\n  -\n  - x\n",
		},
		{
			"nested object inside item",
			Object(F("rows", Array(
				Object(F("meta", Object(F("a", Int(1)))), F("id", Int(7))),
				String("tail"),
			))),
			"rows[2]:\n  - meta:\n      a: 1\n    id: 7\n  - tail\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Encode(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("Encode =\n%q\nwant\n%q", got, tc.want)
			}
		})
	}
}

func TestEncodeTabularRequiresUniformScalars(t *testing.T) {
	// Same keys but one nested value: falls back to expanded form.
	v := Object(F("items", Array(
		Object(F("id", Int(1)), F("tags", Array(String("x")))),
		Object(F("id", Int(2)), F("tags", Array(String("y")))),
	)))
	got, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	want := "items[2]:\n  - id: 1\n    tags[1]: x\n  - id: 2\n    tags[1]: y\n"
	if got != want {
		t.Errorf("Encode =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeTabularFieldOrderFromFirst(t *testing.T) {
	// The second element lists its keys in a different order; rows are
	// emitted in the first element's order.
	v := Object(F("users", Array(
		Object(F("id", Int(1)), F("name", String("Ada"))),
		Object(F("name", String("Bob")), F("id", Int(2))),
	)))
	got, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	want := "users[2]{id,name}:\n  1,Ada\n  2,Bob\n"
	if got != want {
		t.Errorf("Encode =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeOptions(t *testing.T) {
	v := Object(F("server", Object(F("host", String("localhost")))))
	got, err := EncodeWithOptions(v, EncodeOptions{Indent: 4})
	if err != nil {
		t.Fatal(err)
	}
	want := "server:\n    host: localhost\n"
	if got != want {
		t.Errorf("indent 4 =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeDelimiters(t *testing.T) {
	inline := Object(F("tags", Array(String("a,b"), String("c"))))
	tabular := Object(F("users", Array(
		Object(F("id", Int(1)), F("name", String("Ada"))),
		Object(F("id", Int(2)), F("name", String("Bob"))),
	)))

	cases := []struct {
		name  string
		in    *Value
		delim Delimiter
		want  string
	}{
		{"tab inline keeps commas bare", inline, Tab, "tags[2\t]: a,b\tc\n"},
		{"pipe inline keeps commas bare", inline, Pipe, "tags[2|]: a,b|c\n"},
		{"pipe tabular", tabular, Pipe, "users[2|]{id|name}:\n  1|Ada\n  2|Bob\n"},
		{"tab tabular", tabular, Tab, "users[2\t]{id\tname}:\n  1\tAda\n  2\tBob\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EncodeWithOptions(tc.in, EncodeOptions{Delimiter: tc.delim})
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("Encode =\n%q\nwant\n%q", got, tc.want)
			}
		})
	}
}

func TestEncodeCyclicValue(t *testing.T) {
	obj := Object(F("a", Int(1)))
	obj.Set("self", obj)

	_, err := Encode(obj)
	var cyc *CyclicReferenceError
	if !errors.As(err, &cyc) {
		t.Fatalf("Encode = %v, want CyclicReferenceError", err)
	}

	arr := Array(Int(1))
	arr.Append(arr)
	if _, err := Encode(Object(F("list", arr))); !errors.As(err, &cyc) {
		t.Fatalf("cyclic array Encode = %v, want CyclicReferenceError", err)
	}
}

func TestEncodeSharedSubtreeIsNotACycle(t *testing.T) {
	shared := Object(F("x", Int(1)))
	v := Object(F("a", shared), F("b", shared))
	got, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	want := "a:\n  x: 1\nb:\n  x: 1\n"
	if got != want {
		t.Errorf("Encode =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeUnsupportedNumbers(t *testing.T) {
	cases := []struct {
		name string
		in   *Value
	}{
		{"NaN", Float(math.NaN())},
		{"positive infinity", Float(math.Inf(1))},
		{"negative infinity", Float(math.Inf(-1))},
		{"garbage lexeme", Number("abc")},
		{"hex lexeme", Number("0x1F")},
		{"leading zero", Number("007")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(Object(F("x", tc.in)))
			var unsupported *UnsupportedValueError
			if !errors.As(err, &unsupported) {
				t.Fatalf("Encode = %v, want UnsupportedValueError", err)
			}
		})
	}
}

func TestEncodeHikes(t *testing.T) {
	v := Object(F("context", Object(
		F("task", String("Our favorite hikes together")),
		F("hikes", Array(
			Object(
				F("id", Int(1)), F("name", String("Mount Temple")),
				F("distanceKm", Int(11)), F("elevationGainM", Int(1600)),
				F("companion", String("Steve")), F("done", Bool(true)),
			),
			Object(
				F("id", Int(2)), F("name", String("Eiffel Peak")),
				F("distanceKm", Number("10.5")), F("elevationGainM", Int(1500)),
				F("companion", String("Steve")), F("done", Bool(true)),
			),
			Object(
				F("id", Int(3)), F("name", String("Table Mountain")),
				F("distanceKm", Number("9.5")), F("elevationGainM", Int(1550)),
				F("companion", String("Paul")), F("done", Bool(false)),
			),
		)),
	)))

	got, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	want := "context:\n" +
		"  task: Our favorite hikes together\n" +
		"  hikes[3]{id,name,distanceKm,elevationGainM,companion,done}:\n" +
		"    1,Mount Temple,11,1600,Steve,true\n" +
		"    2,Eiffel Peak,10.5,1500,Steve,true\n" +
		"    3,Table Mountain,9.5,1550,Paul,false\n"
	if got != want {
		t.Errorf("Encode =\n%s\nwant\n%s", got, want)
	}
}
