package htmlhost

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		raw     string
		want    selector
		wantErr bool
	}{
		{raw: "div", want: selector{tag: "div"}},
		{raw: "#modal", want: selector{id: "modal"}},
		{raw: ".a.b", want: selector{classes: []string{"a", "b"}}},
		{raw: "section#main.wide", want: selector{tag: "section", id: "main", classes: []string{"wide"}}},
		{raw: "", wantErr: true},
		{raw: "div p", wantErr: true},
		{raw: "a > b", wantErr: true},
		{raw: "#a#b", wantErr: true},
		{raw: "div.", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseSelector(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrBadSelector) {
					t.Errorf("err = %v, want ErrBadSelector", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSelector: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(selector{})); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	d := New()
	first := d.NewContainer("first")
	second := d.NewContainer("second")
	d.SetAttribute(second, "class", "panel open")

	tests := []struct {
		raw  string
		want any
	}{
		{"#first", first},
		{"div", first},
		{".panel", second},
		{"div.open.panel", second},
		{"body", d.Body()},
	}
	for _, tt := range tests {
		got, err := d.Query(tt.raw)
		if err != nil {
			t.Errorf("Query(%q): %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Query(%q) = %s", tt.raw, d.Describe(got))
		}
	}

	if _, err := d.Query("#missing"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("missing: err = %v, want ErrNoMatch", err)
	}
	if _, err := d.Query("a b"); !errors.Is(err, ErrBadSelector) {
		t.Errorf("bad: err = %v, want ErrBadSelector", err)
	}
}

func TestQuery_CachesParsedSelectors(t *testing.T) {
	d := New()
	d.NewContainer("x")
	for range 3 {
		if _, err := d.Query("#x"); err != nil {
			t.Fatal(err)
		}
	}
	if got := d.selectors.Len(); got != 1 {
		t.Errorf("cache size = %d, want 1", got)
	}
}
