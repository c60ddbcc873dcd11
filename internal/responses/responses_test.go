package responses

import (
	"errors"
	"testing"
	"time"
)

func TestVariantALookup(t *testing.T) {
	table, err := ForVariant(VariantA)
	if err != nil {
		t.Fatalf("ForVariant: %v", err)
	}

	tests := []struct {
		target string
		body   string
		delay  time.Duration
	}{
		{"/1", "[111]\n", 20 * time.Millisecond},
		{"/2", "[222]\n", 0},
		{"/3", "[333]\n", 30 * time.Millisecond},
		{"/4", "[444]\n", 10 * time.Millisecond},
		{"/", "Hello\n", 0},
		{"/unknown", "Hello\n", 0},
		{"/1?x=1", "Hello\n", 0},
		{"/1/", "Hello\n", 0},
		{"/5", "Hello\n", 0},
	}

	for _, tt := range tests {
		got := table.Lookup(tt.target)
		if got.Body != tt.body {
			t.Errorf("Lookup(%q).Body = %q, want %q", tt.target, got.Body, tt.body)
		}
		if got.Delay != tt.delay {
			t.Errorf("Lookup(%q).Delay = %v, want %v", tt.target, got.Delay, tt.delay)
		}
	}
}

func TestVariantsWithoutEntries(t *testing.T) {
	for _, v := range []Variant{VariantB, VariantC} {
		table, err := ForVariant(v)
		if err != nil {
			t.Fatalf("ForVariant(%q): %v", v, err)
		}
		for _, target := range []string{"/", "/1", "/3", "/anything?q=1"} {
			got := table.Lookup(target)
			if got.Body != DefaultBody || got.Delay != 0 {
				t.Errorf("variant %q: Lookup(%q) = %+v, want Hello with no delay", v, target, got)
			}
		}
		if len(table.Entries()) != 0 {
			t.Errorf("variant %q: Entries() = %d entries, want 0", v, len(table.Entries()))
		}
	}
}

func TestWaitForBody(t *testing.T) {
	want := map[Variant]bool{VariantA: true, VariantB: true, VariantC: false}
	for v, wait := range want {
		table, err := ForVariant(v)
		if err != nil {
			t.Fatalf("ForVariant(%q): %v", v, err)
		}
		if table.WaitForBody() != wait {
			t.Errorf("variant %q: WaitForBody() = %v, want %v", v, table.WaitForBody(), wait)
		}
	}
}

func TestContentLengthIsFallbackLength(t *testing.T) {
	for _, v := range Variants {
		table, err := ForVariant(v)
		if err != nil {
			t.Fatalf("ForVariant(%q): %v", v, err)
		}
		if table.ContentLength() != 6 {
			t.Errorf("variant %q: ContentLength() = %d, want 6", v, table.ContentLength())
		}
	}

	table := NewTable([]Entry{{Path: "/long", Body: "a much longer body\n"}}, DefaultBody, true)
	if table.ContentLength() != len(DefaultBody) {
		t.Errorf("ContentLength() = %d, want %d", table.ContentLength(), len(DefaultBody))
	}
}

func TestEntriesSorted(t *testing.T) {
	table, _ := ForVariant(VariantA)
	entries := table.Entries()
	want := []string{"/1", "/2", "/3", "/4"}
	if len(entries) != len(want) {
		t.Fatalf("Entries() = %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Path != want[i] {
			t.Errorf("Entries()[%d].Path = %q, want %q", i, e.Path, want[i])
		}
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"a", VariantA, false},
		{"B", VariantB, false},
		{" c ", VariantC, false},
		{"d", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownVariant) {
				t.Errorf("ParseVariant(%q): err = %v, want ErrUnknownVariant", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVariant(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestForVariantUnknown(t *testing.T) {
	if _, err := ForVariant("z"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("ForVariant(z): err = %v, want ErrUnknownVariant", err)
	}
}
