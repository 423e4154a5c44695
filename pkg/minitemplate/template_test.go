package minitemplate

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     any
		want     string
	}{
		{
			name:     "plain text passes through",
			template: "no tags here, just { braces }",
			data:     map[string]any{"x": 1},
			want:     "no tags here, just { braces }",
		},
		{
			name:     "simple substitution",
			template: "Hello, {{ name }}!",
			data:     map[string]any{"name": "Ada"},
			want:     "Hello, Ada!",
		},
		{
			name:     "absent value renders empty",
			template: "[{{missing}}]",
			data:     map[string]any{},
			want:     "[]",
		},
		{
			name:     "nil value renders empty",
			template: "[{{v}}]",
			data:     map[string]any{"v": nil},
			want:     "[]",
		},
		{
			name:     "escaped output",
			template: "{{v}}",
			data:     map[string]any{"v": "<a>&\"'`="},
			want:     "&lt;a&gt;&amp;&quot;&#x27;&#x60;&#x3D;",
		},
		{
			name:     "raw output bypasses escaping",
			template: "{{{v}}}",
			data:     map[string]any{"v": "<b>"},
			want:     "<b>",
		},
		{
			name:     "backslash emits literal tag",
			template: `\{{x}}`,
			data:     map[string]any{"x": "ignored"},
			want:     "{{x}}",
		},
		{
			name:     "backslash keeps surrounding text",
			template: `a \{{{ x }}} b {{x}}`,
			data:     map[string]any{"x": "y"},
			want:     "a {{{ x }}} b y",
		},
		{
			name:     "dotted path",
			template: "{{user.profile.name}}",
			data:     map[string]any{"user": map[string]any{"profile": map[string]any{"name": "Grace"}}},
			want:     "Grace",
		},
		{
			name:     "path through nil short-circuits",
			template: "[{{user.profile.name}}]",
			data:     map[string]any{"user": nil},
			want:     "[]",
		},
		{
			name:     "if true",
			template: "{{#if ok}}Y{{else}}N{{/if}}",
			data:     map[string]any{"ok": true},
			want:     "Y",
		},
		{
			name:     "if false",
			template: "{{#if ok}}Y{{else}}N{{/if}}",
			data:     map[string]any{"ok": false},
			want:     "N",
		},
		{
			name:     "if without else",
			template: "a{{#if ok}}Y{{/if}}b",
			data:     map[string]any{},
			want:     "ab",
		},
		{
			name:     "if keeps parent scope",
			template: "{{#if user}}{{user.name}}/{{title}}{{/if}}",
			data:     map[string]any{"user": map[string]any{"name": "Lin"}, "title": "T"},
			want:     "Lin/T",
		},
		{
			name:     "each with index and this",
			template: "{{#each items}}{{@index}}:{{this}};{{/each}}",
			data:     map[string]any{"items": []any{"a", "b"}},
			want:     "0:a;1:b;",
		},
		{
			name:     "each over typed slice",
			template: "{{#each items}}{{this}}{{/each}}",
			data:     map[string]any{"items": []int{3, 2, 1}},
			want:     "321",
		},
		{
			name:     "each over non-sequence renders empty",
			template: "[{{#each items}}x{{/each}}]",
			data:     map[string]any{"items": "abc"},
			want:     "[]",
		},
		{
			name:     "each over missing renders empty",
			template: "[{{#each items}}x{{/each}}]",
			data:     map[string]any{},
			want:     "[]",
		},
		{
			name:     "item properties merge over parent",
			template: "{{#each people}}{{name}}@{{site}} {{/each}}",
			data: map[string]any{
				"site": "home",
				"name": "outer",
				"people": []any{
					map[string]any{"name": "a"},
					map[string]any{"name": "b", "site": "away"},
				},
			},
			want: "a@home b@away ",
		},
		{
			name:     "reserved keys win over item properties",
			template: "{{#each items}}{{this.this}}-{{@index}} {{/each}}",
			data: map[string]any{"items": []any{
				map[string]any{"this": "shadow", "@index": 99},
			}},
			want: "shadow-0 ",
		},
		{
			name:     "orphan closers and else render nothing",
			template: "a{{/each}}b{{else}}c{{/if}}d",
			data:     map[string]any{},
			want:     "abcd",
		},
		{
			name:     "unterminated tag is literal",
			template: "before {{ name after",
			data:     map[string]any{"name": "x"},
			want:     "before {{ name after",
		},
		{
			name:     "unterminated raw tag is literal",
			template: "{{{ name }}",
			data:     map[string]any{"name": "x"},
			want:     "{{{ name }}",
		},
		{
			name:     "unmatched each consumes the rest",
			template: "{{#each xs}}<{{this}}>",
			data:     map[string]any{"xs": []any{1, 2}},
			want:     "<1><2>",
		},
		{
			name:     "unmatched each over non-sequence",
			template: "head{{#each xs}}<{{this}}>",
			data:     map[string]any{"xs": 7},
			want:     "head",
		},
		{
			name:     "numbers and booleans",
			template: "{{i}} {{f}} {{big}} {{b}}",
			data:     map[string]any{"i": 42, "f": 1.5, "big": 1e21, "b": false},
			want:     "42 1.5 1e+21 false",
		},
		{
			name:     "integral float prints without fraction",
			template: "{{n}}",
			data:     map[string]any{"n": float64(600)},
			want:     "600",
		},
		{
			name:     "sequence value joins with commas",
			template: "{{tags}}",
			data:     map[string]any{"tags": []string{"a", "b"}},
			want:     "a,b",
		},
		{
			name:     "empty block expression is not a block",
			template: "{{#each }}x{{/each}}",
			data:     map[string]any{},
			want:     "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.template, tt.data)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_Truthiness(t *testing.T) {
	var nilPtr *struct{}
	tests := []struct {
		value any
		want  string
	}{
		{nil, "N"},
		{false, "N"},
		{true, "Y"},
		{0, "N"},
		{1, "Y"},
		{0.0, "N"},
		{"", "N"},
		{"x", "Y"},
		{nilPtr, "N"},
		{[]any{}, "Y"},
		{map[string]any{}, "Y"},
		{[]string(nil), "N"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T(%v)", tt.value, tt.value), func(t *testing.T) {
			got := Render("{{#if v}}Y{{else}}N{{/if}}", map[string]any{"v": tt.value})
			if got != tt.want {
				t.Fatalf("truthiness of %#v: want %q, got %q", tt.value, tt.want, got)
			}
		})
	}
}

func TestRender_NestedScopes(t *testing.T) {
	data := map[string]any{
		"title": "Palettes",
		"groups": []any{
			map[string]any{
				"name":   "warm",
				"active": true,
				"colors": []any{
					map[string]any{"name": "red"},
					map[string]any{"hex": "#f80"},
				},
			},
			map[string]any{
				"name":   "cold",
				"active": false,
				"colors": []any{map[string]any{"name": "blue"}},
			},
		},
	}
	tpl := "{{#each groups}}[{{name}}:{{#if active}}" +
		"{{#each colors}}{{@index}}={{name}}/{{title}};{{/each}}" +
		"{{else}}off {{@index}}{{/if}}]{{/each}}"

	want := "[warm:0=red/Palettes;1=warm/Palettes;][cold:off 1]"
	if got := Render(tpl, data); got != want {
		t.Fatalf("nested render\nwant: %q\n got: %q", want, got)
	}
}

func TestRender_DoesNotMutateContext(t *testing.T) {
	item := map[string]any{"name": "a"}
	data := map[string]any{"items": []any{item}}

	_ = Render("{{#each items}}{{this}}{{@index}}{{/each}}", data)

	if len(data) != 1 {
		t.Fatalf("parent context mutated: %v", data)
	}
	if diff := cmp.Diff(map[string]any{"name": "a"}, item); diff != "" {
		t.Fatalf("item mutated (-want +got):\n%s", diff)
	}
}

func TestRender_OutputIsStable(t *testing.T) {
	data := map[string]any{"xs": []any{"a", "b"}, "v": "<x>"}
	first := Render("{{#each xs}}{{this}}{{/each}} {{v}} {{{v}}}", data)

	second := Render(first, map[string]any{"a": "nope"})
	if first != second {
		t.Fatalf("rendering output again changed it\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestRender_Structs(t *testing.T) {
	type shade struct {
		Tone  string `json:"tone"`
		Label *string
		skip  string
	}
	type page struct {
		Title  string
		Shades []shade `json:"shades"`
	}
	label := "Base"
	data := page{
		Title: "Amber",
		Shades: []shade{
			{Tone: "400", skip: "x"},
			{Tone: "500", Label: &label},
		},
	}

	got := Render("{{Title}}:{{#each shades}} {{tone}}{{#if Label}}({{Label}}){{/if}}{{skip}}{{/each}}", &data)
	want := "Amber: 400 500(Base)"
	if got != want {
		t.Fatalf("struct render\nwant: %q\n got: %q", want, got)
	}
}

func TestRender_NonStringKeyedMaps(t *testing.T) {
	data := map[any]any{
		"m": []any{
			map[any]any{"name": "ann"},
			map[any]any{"name": "bob"},
		},
		"flag": true,
	}

	got := Render("{{#each m}}x{{name}} {{/each}}{{#if flag}}on{{/if}}", data)
	if want := "xann xbob on"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRender_Concurrent(t *testing.T) {
	tpl := "{{#each xs}}{{this}}{{#if ok}}!{{/if}}{{/each}}"

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			xs := make([]any, n)
			for j := range xs {
				xs[j] = j
			}
			got := Render(tpl, map[string]any{"xs": xs, "ok": n%2 == 0})

			var want strings.Builder
			for j := 0; j < n; j++ {
				fmt.Fprint(&want, j)
				if n%2 == 0 {
					want.WriteString("!")
				}
			}
			if got != want.String() {
				errs <- fmt.Sprintf("n=%d want %q got %q", n, want.String(), got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
