package minitemplate

import "testing"

func TestFindTag(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		from   int
		want   tag
		wantOK bool
	}{
		{
			name:   "narrow tag",
			src:    "ab{{ x }}cd",
			want:   tag{open: 2, close: 7, closeLen: 2, text: "x"},
			wantOK: true,
		},
		{
			name:   "wide tag",
			src:    "{{{ x }}}",
			want:   tag{open: 0, close: 6, closeLen: 3, raw: true, text: "x"},
			wantOK: true,
		},
		{
			name:   "search starts at offset",
			src:    "{{a}}{{b}}",
			from:   1,
			want:   tag{open: 5, close: 8, closeLen: 2, text: "b"},
			wantOK: true,
		},
		{
			name: "no opening delimiter",
			src:  "plain } text",
		},
		{
			name: "no closing delimiter",
			src:  "{{ never closed",
		},
		{
			name: "offset past end",
			src:  "{{a}}",
			from: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findTag(tt.src, tt.from)
			if ok != tt.wantOK {
				t.Fatalf("found: want %v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Fatalf("tag mismatch\nwant: %+v\n got: %+v", tt.want, got)
			}
		})
	}
}

func TestParseBlock(t *testing.T) {
	tests := []struct {
		text   string
		want   block
		wantOK bool
	}{
		{text: "#each items", want: block{kind: blockEach, expr: "items"}, wantOK: true},
		{text: "#if  user.active ", want: block{kind: blockIf, expr: "user.active"}, wantOK: true},
		{text: "#each"},
		{text: "#unless x"},
		{text: "each items"},
		{text: "/each"},
	}

	for _, tt := range tests {
		got, ok := parseBlock(tt.text)
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("parseBlock(%q): want (%+v, %v), got (%+v, %v)", tt.text, tt.want, tt.wantOK, got, ok)
		}
	}
}

func TestStructuralTags(t *testing.T) {
	for _, text := range []string{"else", "/each", "/if", "/anything"} {
		if !isStructural(text) {
			t.Fatalf("expected %q to be structural", text)
		}
	}
	for _, text := range []string{"elsewhere", "name", "#each x"} {
		if isStructural(text) {
			t.Fatalf("expected %q not to be structural", text)
		}
	}
	if isClosingBlock("/unless") {
		t.Fatalf("only each and if closers close blocks")
	}
}
