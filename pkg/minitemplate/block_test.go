package minitemplate

import "testing"

func TestExtractBlock(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		kind     blockKind
		wantBody string
		wantEnd  string
	}{
		{
			name:     "simple",
			src:      "{{#each xs}}body{{/each}}tail",
			kind:     blockEach,
			wantBody: "body",
			wantEnd:  "tail",
		},
		{
			name:     "same kind nested",
			src:      "{{#each xs}}a{{#each ys}}b{{/each}}c{{/each}}tail",
			kind:     blockEach,
			wantBody: "a{{#each ys}}b{{/each}}c",
			wantEnd:  "tail",
		},
		{
			name:     "other kind nested",
			src:      "{{#if x}}a{{#each ys}}b{{/each}}c{{/if}}tail",
			kind:     blockIf,
			wantBody: "a{{#each ys}}b{{/each}}c",
			wantEnd:  "tail",
		},
		{
			name:     "unmatched consumes rest",
			src:      "{{#each xs}}a{{b}}",
			kind:     blockEach,
			wantBody: "a{{b}}",
			wantEnd:  "",
		},
		{
			name:     "stray other closer clamps at zero",
			src:      "{{#if x}}a{{/each}}b{{/if}}tail",
			kind:     blockIf,
			wantBody: "a{{/each}}b",
			wantEnd:  "tail",
		},
		{
			name:     "matching closer at depth zero still closes",
			src:      "{{#each xs}}a{{/if}}{{/if}}b{{/each}}tail",
			kind:     blockEach,
			wantBody: "a{{/if}}{{/if}}b",
			wantEnd:  "tail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, ok := findTag(tt.src, 0)
			if !ok {
				t.Fatalf("no opening tag in %q", tt.src)
			}
			body, end := extractBlock(tt.src, open.end(), tt.kind)
			if body != tt.wantBody {
				t.Fatalf("body\nwant: %q\n got: %q", tt.wantBody, body)
			}
			if rest := tt.src[end:]; rest != tt.wantEnd {
				t.Fatalf("resume\nwant: %q\n got: %q", tt.wantEnd, rest)
			}
		})
	}
}

func TestSplitElse(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantTruthy string
		wantFalsy  string
	}{
		{name: "no else", body: "yes", wantTruthy: "yes"},
		{name: "top level else", body: "yes{{ else }}no", wantTruthy: "yes", wantFalsy: "no"},
		{
			name:       "nested else ignored",
			body:       "{{#if a}}x{{else}}y{{/if}}{{else}}z",
			wantTruthy: "{{#if a}}x{{else}}y{{/if}}",
			wantFalsy:  "z",
		},
		{
			name:       "first top level else wins",
			body:       "a{{else}}b{{else}}c",
			wantTruthy: "a",
			wantFalsy:  "b{{else}}c",
		},
		{
			name:       "stray closer does not go negative",
			body:       "a{{/each}}{{else}}b",
			wantTruthy: "a{{/each}}",
			wantFalsy:  "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			truthyPart, falsyPart := splitElse(tt.body)
			if truthyPart != tt.wantTruthy || falsyPart != tt.wantFalsy {
				t.Fatalf("split %q\nwant: (%q, %q)\n got: (%q, %q)", tt.body, tt.wantTruthy, tt.wantFalsy, truthyPart, falsyPart)
			}
		})
	}
}
