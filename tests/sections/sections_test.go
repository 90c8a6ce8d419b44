package sections_test

import (
	"slices"
	"testing"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/sections"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

func TestPageRangePages(t *testing.T) {
	tests := []struct {
		name  string
		pages sections.PageRange
		want  []int
	}{
		{"single page", sections.PageRange{First: 3, Last: 3}, []int{3}},
		{"span", sections.PageRange{First: 2, Last: 5}, []int{2, 3, 4, 5}},
		{"inverted range", sections.PageRange{First: 5, Last: 2}, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.pages.Pages(); !slices.Equal(got, test.want) {
				t.Errorf("Pages() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestMapValidate(t *testing.T) {
	tests := []struct {
		name    string
		smap    sections.Map
		wantErr bool
	}{
		{
			name:    "empty map",
			smap:    sections.Map{},
			wantErr: true,
		},
		{
			name: "valid map",
			smap: sections.Map{Sections: []sections.Section{
				{Name: "governance", Pages: sections.PageRange{First: 1, Last: 2}},
				{Name: "balance_sheet", Pages: sections.PageRange{First: 3, Last: 4}},
			}},
		},
		{
			name: "blank name",
			smap: sections.Map{Sections: []sections.Section{
				{Name: "", Pages: sections.PageRange{First: 1, Last: 1}},
			}},
			wantErr: true,
		},
		{
			name: "duplicate name",
			smap: sections.Map{Sections: []sections.Section{
				{Name: "fees", Pages: sections.PageRange{First: 1, Last: 1}},
				{Name: "fees", Pages: sections.PageRange{First: 2, Last: 2}},
			}},
			wantErr: true,
		},
		{
			name: "zero first page",
			smap: sections.Map{Sections: []sections.Section{
				{Name: "loans", Pages: sections.PageRange{First: 0, Last: 2}},
			}},
			wantErr: true,
		},
		{
			name: "inverted page range",
			smap: sections.Map{Sections: []sections.Section{
				{Name: "loans", Pages: sections.PageRange{First: 4, Last: 2}},
			}},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.smap.Validate()
			if (err != nil) != test.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, test.wantErr)
			}
		})
	}
}

func TestMapNames(t *testing.T) {
	smap := sections.Map{Sections: []sections.Section{
		{Name: "governance"},
		{Name: "property"},
	}}

	if got := smap.Names(); !slices.Equal(got, []string{"governance", "property"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestSpecFor(t *testing.T) {
	known := sections.SpecFor("balance_sheet")
	if known.Name != "balance_sheet" {
		t.Errorf("Name = %q, want %q", known.Name, "balance_sheet")
	}
	if len(known.Fields) == 0 {
		t.Error("known section spec has no expected fields")
	}
	if known.Prompt == "" {
		t.Error("known section spec has empty prompt")
	}

	fallback := sections.SpecFor("mystery_section")
	if fallback.Name != "mystery_section" {
		t.Errorf("Name = %q, want %q", fallback.Name, "mystery_section")
	}
	if len(fallback.Fields) != 0 {
		t.Errorf("fallback spec fields = %v, want none", fallback.Fields)
	}
	if fallback.Prompt == "" {
		t.Error("fallback spec has empty prompt")
	}
}

func TestSpecValidate(t *testing.T) {
	spec := sections.SpecFor("governance")

	tests := []struct {
		name  string
		value payload.Value
		want  bool
	}{
		{
			name: "expected field present",
			value: payload.Object(map[string]payload.Value{
				"chairman": payload.String("A. Svensson"),
			}),
			want: true,
		},
		{
			name: "no expected fields",
			value: payload.Object(map[string]payload.Value{
				"unrelated": payload.Number(1),
			}),
			want: false,
		},
		{"scalar", payload.String("chairman: A. Svensson"), false},
		{"array", payload.Array(payload.String("x")), false},
		{"null", payload.Null(), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := spec.Validate(test.value); got != test.want {
				t.Errorf("Validate() = %v, want %v", got, test.want)
			}
		})
	}

	generic := sections.SpecFor("mystery_section")
	if !generic.Validate(payload.Object(map[string]payload.Value{"anything": payload.Number(1)})) {
		t.Error("generic spec should accept any object")
	}
}

func TestMapNormalized(t *testing.T) {
	smap := sections.Map{Sections: []sections.Section{
		{Name: "Balance Sheet", Pages: sections.PageRange{First: 1, Last: 2}},
		{Name: "governance", Pages: sections.PageRange{First: 3, Last: 4}},
	}}

	normalized := smap.Normalized()

	if got := normalized.Names(); !slices.Equal(got, []string{"balance_sheet", "governance"}) {
		t.Errorf("Names() = %v, want canonical names", got)
	}
	if smap.Sections[0].Name != "Balance Sheet" {
		t.Error("Normalized() mutated the receiver")
	}
	if normalized.Sections[0].Pages != smap.Sections[0].Pages {
		t.Error("Normalized() changed page ranges")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		heading string
		want    string
	}{
		{"Balance Sheet", "balance_sheet"},
		{"  CASH-FLOW  ", "cash_flow"},
		{"governance", "governance"},
		{"Förvaltningsberättelse", "förvaltningsberättelse"},
	}

	for _, test := range tests {
		t.Run(test.heading, func(t *testing.T) {
			if got := sections.Normalize(test.heading); got != test.want {
				t.Errorf("Normalize(%q) = %q, want %q", test.heading, got, test.want)
			}
		})
	}
}
