package minitemplate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type author struct {
	Name    string `json:"name"`
	Email   string `json:"-"`
	Profile *profile
}

type profile struct {
	Handle string
}

type labels map[string]string

func TestResolve(t *testing.T) {
	data := map[string]any{
		"user":   map[string]any{"name": "Ada", "tags": []string{"x", "y"}},
		"author": author{Name: "Lin", Email: "hidden@example.com"},
		"ptr":    &author{Profile: &profile{Handle: "@lin"}},
		"labels": labels{"en": "Hello"},
		"this":   "root-this",
		"nil":    nil,
	}

	tests := []struct {
		expr   string
		want   any
		wantOK bool
	}{
		{expr: "user.name", want: "Ada", wantOK: true},
		{expr: "user.tags.1", want: "y", wantOK: true},
		{expr: "user.tags.5"},
		{expr: "author.name", want: "Lin", wantOK: true},
		{expr: "author.Email"},
		{expr: "author.Profile.Handle"},
		{expr: "ptr.Profile.Handle", want: "@lin", wantOK: true},
		{expr: "labels.en", want: "Hello", wantOK: true},
		{expr: "this", want: "root-this", wantOK: true},
		{expr: "nil.deeper.still"},
		{expr: "missing"},
		{expr: ""},
		{expr: "user..name"},
	}

	for _, tt := range tests {
		got, ok := Resolve(data, tt.expr)
		if ok != tt.wantOK {
			t.Fatalf("Resolve(%q) ok: want %v, got %v (value %#v)", tt.expr, tt.wantOK, ok, got)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("Resolve(%q) mismatch (-want +got):\n%s", tt.expr, diff)
		}
	}
}

func TestResolve_ScalarRoot(t *testing.T) {
	for _, root := range []any{nil, 3, "text", []any{1}} {
		if v, ok := Resolve(root, "name"); ok {
			t.Fatalf("Resolve(%#v, name) should be absent, got %#v", root, v)
		}
	}
}

func TestChildContext(t *testing.T) {
	parent := map[string]any{"site": "docs", "name": "parent", "@index": "old"}
	item := map[string]any{"name": "child", "this": "shadowed"}

	got := childContext(parent, item, 3)
	want := map[string]any{
		"site":   "docs",
		"name":   "child",
		"this":   item,
		"@index": 3,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("child context mismatch (-want +got):\n%s", diff)
	}

	scalar := childContext(nil, "x", 0)
	if diff := cmp.Diff(map[string]any{"this": "x", "@index": 0}, scalar); diff != "" {
		t.Fatalf("scalar child context mismatch (-want +got):\n%s", diff)
	}
}

func TestSequence(t *testing.T) {
	if _, ok := sequence([]byte("abc")); ok {
		t.Fatalf("byte slices are scalars")
	}
	if _, ok := sequence(map[string]any{}); ok {
		t.Fatalf("maps are not sequences")
	}
	items, ok := sequence([2]string{"a", "b"})
	if !ok {
		t.Fatalf("arrays are sequences")
	}
	if diff := cmp.Diff([]any{"a", "b"}, items); diff != "" {
		t.Fatalf("array items mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_NonStringKeyedMaps(t *testing.T) {
	data := map[any]any{
		"site":  map[any]any{"title": "Docs"},
		"codes": map[int]string{404: "missing"},
		1:       "one",
	}

	tests := []struct {
		expr string
		want any
	}{
		{expr: "site.title", want: "Docs"},
		{expr: "codes.404", want: "missing"},
		{expr: "1", want: "one"},
	}

	for _, tt := range tests {
		got, ok := Resolve(data, tt.expr)
		if !ok {
			t.Fatalf("Resolve(%q): expected a value", tt.expr)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("Resolve(%q) mismatch (-want +got):\n%s", tt.expr, diff)
		}
	}

	if _, ok := Resolve(data, "codes.500"); ok {
		t.Fatalf("Resolve(codes.500): expected no value")
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want map[string]any
	}{
		{name: "string map", in: map[string]any{"a": 1}, want: map[string]any{"a": 1}},
		{name: "interface keys", in: map[any]any{"a": 1, 2: "b"}, want: map[string]any{"a": 1, "2": "b"}},
		{name: "struct", in: author{Name: "Lin", Email: "x"}, want: map[string]any{"name": "Lin", "Profile": (*profile)(nil)}},
		{name: "scalar", in: 3, want: nil},
		{name: "sequence", in: []any{1}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Fields(tt.in)); diff != "" {
				t.Fatalf("Fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
