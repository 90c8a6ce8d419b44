package payload_test

import (
	"testing"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, v payload.Value)
	}{
		{
			name:  "null",
			input: `null`,
			check: func(t *testing.T, v payload.Value) {
				if !v.IsNull() {
					t.Errorf("Kind() = %v, want null", v.Kind())
				}
			},
		},
		{
			name:  "number",
			input: `42.5`,
			check: func(t *testing.T, v payload.Value) {
				if v.Kind() != payload.KindNumber || v.Number() != 42.5 {
					t.Errorf("Number() = %v, want 42.5", v.Number())
				}
			},
		},
		{
			name:  "string",
			input: `"hello"`,
			check: func(t *testing.T, v payload.Value) {
				if v.Kind() != payload.KindString || v.String() != "hello" {
					t.Errorf("String() = %q, want %q", v.String(), "hello")
				}
			},
		},
		{
			name:  "nested object",
			input: `{"total_assets": 301339818, "note": null}`,
			check: func(t *testing.T, v payload.Value) {
				if v.Kind() != payload.KindObject {
					t.Fatalf("Kind() = %v, want object", v.Kind())
				}
				assets, ok := v.Field("total_assets")
				if !ok || assets.Number() != 301339818 {
					t.Errorf("Field(total_assets) = %v, %v", assets.Number(), ok)
				}
				note, ok := v.Field("note")
				if !ok || !note.IsNull() {
					t.Errorf("Field(note) = %v, %v, want null, true", note.Kind(), ok)
				}
			},
		},
		{
			name:  "array",
			input: `[1, "two", true]`,
			check: func(t *testing.T, v payload.Value) {
				if v.Kind() != payload.KindArray || v.Len() != 3 {
					t.Fatalf("Len() = %d, want 3", v.Len())
				}
				if v.Items()[2].Bool() != true {
					t.Errorf("Items()[2].Bool() = false, want true")
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, err := payload.Decode([]byte(test.input))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			test.check(t, v)
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := payload.Decode([]byte(`{not json`)); err == nil {
		t.Error("Decode() error = nil, want error")
	}
}

func TestMarshalStableKeys(t *testing.T) {
	v := payload.Object(map[string]payload.Value{
		"zebra":  payload.Number(1),
		"apple":  payload.String("x"),
		"middle": payload.Null(),
	})

	data, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	want := `{"apple":"x","middle":null,"zebra":1}`
	if string(data) != want {
		t.Errorf("MarshalJSON() = %s, want %s", data, want)
	}
}

func TestMarshalIntegerNumbers(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"whole number", 301339818, "301339818"},
		{"zero", 0, "0"},
		{"negative whole", -42, "-42"},
		{"fractional", 4.25, "4.25"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := payload.Number(test.value).MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(data) != test.want {
				t.Errorf("MarshalJSON() = %s, want %s", data, test.want)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value payload.Value
		want  bool
	}{
		{"null", payload.Null(), true},
		{"empty string", payload.String(""), true},
		{"empty array", payload.Array(), true},
		{"empty object", payload.Object(nil), true},
		{"zero number", payload.Number(0), false},
		{"false bool", payload.Bool(false), false},
		{"populated string", payload.String("x"), false},
		{"populated object", payload.Object(map[string]payload.Value{"a": payload.Null()}), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.value.IsEmpty(); got != test.want {
				t.Errorf("IsEmpty() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestWith(t *testing.T) {
	base := payload.Object(map[string]payload.Value{"a": payload.Number(1)})
	updated := base.With("b", payload.Number(2))

	if _, ok := base.Field("b"); ok {
		t.Error("With() mutated the receiver")
	}
	if b, ok := updated.Field("b"); !ok || b.Number() != 2 {
		t.Errorf("Field(b) = %v, %v, want 2, true", b.Number(), ok)
	}

	fromScalar := payload.String("x").With("a", payload.Number(1))
	if fromScalar.Kind() != payload.KindObject || fromScalar.Len() != 1 {
		t.Errorf("With() on scalar = %v with %d fields, want single-field object", fromScalar.Kind(), fromScalar.Len())
	}
}

func TestKeysSorted(t *testing.T) {
	v := payload.Object(map[string]payload.Value{
		"c": payload.Null(),
		"a": payload.Null(),
		"b": payload.Null(),
	})

	keys := v.Keys()
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	if payload.Number(1).Keys() != nil {
		t.Error("Keys() on non-object should be nil")
	}
}

func TestMergeMissing(t *testing.T) {
	obj := func(pairs map[string]payload.Value) payload.Value { return payload.Object(pairs) }

	tests := []struct {
		name  string
		dst   payload.Value
		patch payload.Value
		want  payload.Value
	}{
		{
			name:  "null patch leaves dst",
			dst:   payload.String("keep"),
			patch: payload.Null(),
			want:  payload.String("keep"),
		},
		{
			name:  "patch replaces empty dst",
			dst:   payload.Null(),
			patch: obj(map[string]payload.Value{"a": payload.Number(1)}),
			want:  obj(map[string]payload.Value{"a": payload.Number(1)}),
		},
		{
			name:  "populated scalar survives",
			dst:   payload.Number(5),
			patch: obj(map[string]payload.Value{"a": payload.Number(1)}),
			want:  payload.Number(5),
		},
		{
			name: "fills absent and empty fields only",
			dst: obj(map[string]payload.Value{
				"chairman": payload.String("A. Svensson"),
				"auditor":  payload.String(""),
			}),
			patch: obj(map[string]payload.Value{
				"chairman": payload.String("WRONG"),
				"auditor":  payload.String("KPMG"),
				"meetings": payload.Number(11),
			}),
			want: obj(map[string]payload.Value{
				"chairman": payload.String("A. Svensson"),
				"auditor":  payload.String("KPMG"),
				"meetings": payload.Number(11),
			}),
		},
		{
			name: "nested objects merge recursively",
			dst: obj(map[string]payload.Value{
				"loans": obj(map[string]payload.Value{"total_debt": payload.Number(1000)}),
			}),
			patch: obj(map[string]payload.Value{
				"loans": obj(map[string]payload.Value{
					"total_debt": payload.Number(9999),
					"lender":     payload.String("SEB"),
				}),
			}),
			want: obj(map[string]payload.Value{
				"loans": obj(map[string]payload.Value{
					"total_debt": payload.Number(1000),
					"lender":     payload.String("SEB"),
				}),
			}),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := payload.MergeMissing(test.dst, test.patch)
			assertEqual(t, got, test.want)

			again := payload.MergeMissing(got, test.patch)
			assertEqual(t, again, test.want)
		})
	}
}

func assertEqual(t *testing.T, got, want payload.Value) {
	t.Helper()
	gotJSON, err := got.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	wantJSON, err := want.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("value = %s, want %s", gotJSON, wantJSON)
	}
}
