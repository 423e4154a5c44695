package minitemplate

import (
	"fmt"
	"sort"
	"strings"
)

// Issue describes a construct Render tolerates silently but that is almost
// certainly a mistake in the template source.
type Issue struct {
	Offset  int
	Line    int
	Column  int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Message)
}

// Lint reports structural problems in template: unterminated tags, blocks
// without closers, stray or mismatched closers, else outside #if, block tags
// missing an expression and unknown block helpers. Issues are ordered by
// offset. Lint does not change how Render treats the same input.
func Lint(template string) []Issue {
	l := linter{src: template}
	l.run()
	return l.issues
}

type openBlock struct {
	kind blockKind
	at   int
}

type linter struct {
	src    string
	stack  []openBlock
	issues []Issue
}

func (l *linter) run() {
	pos := 0
	for pos < len(l.src) {
		t, ok := findTag(l.src, pos)
		if !ok {
			if rel := strings.Index(l.src[pos:], openDelim); rel >= 0 {
				l.report(pos+rel, "unterminated tag is rendered as text")
			}
			break
		}
		pos = t.end()

		if t.open > 0 && l.src[t.open-1] == '\\' {
			continue
		}
		l.tag(t)
	}

	for i := len(l.stack) - 1; i >= 0; i-- {
		open := l.stack[i]
		l.report(open.at, fmt.Sprintf("#%s is never closed; it consumes the rest of the template", open.kind))
	}
	sort.SliceStable(l.issues, func(i, j int) bool {
		return l.issues[i].Offset < l.issues[j].Offset
	})
}

func (l *linter) tag(t tag) {
	text := t.text
	switch {
	case text == "#each" || text == "#if":
		l.report(t.open, fmt.Sprintf("%s needs an expression", text))
	case strings.HasPrefix(text, "#"):
		b, ok := parseBlock(text)
		if !ok {
			name := strings.Fields(text)[0]
			l.report(t.open, fmt.Sprintf("unsupported block helper %s", name))
			return
		}
		l.stack = append(l.stack, openBlock{kind: b.kind, at: t.open})
	case isClosingBlock(text):
		l.close(t)
	case text == "else":
		if len(l.stack) == 0 || l.stack[len(l.stack)-1].kind != blockIf {
			l.report(t.open, "else outside #if is dropped")
		}
	case strings.HasPrefix(text, "/"):
		l.report(t.open, fmt.Sprintf("unknown closer {{%s}} is dropped", text))
	case text == "":
		l.report(t.open, "empty tag renders nothing")
	}
}

func (l *linter) close(t tag) {
	if len(l.stack) == 0 {
		l.report(t.open, fmt.Sprintf("{{%s}} has no matching opener", t.text))
		return
	}
	top := l.stack[len(l.stack)-1]
	l.stack = l.stack[:len(l.stack)-1]
	if top.kind.closer() != t.text {
		l.report(t.open, fmt.Sprintf("{{%s}} closes #%s opened at %s", t.text, top.kind, l.position(top.at)))
	}
}

func (l *linter) report(offset int, message string) {
	line, col := l.lineCol(offset)
	l.issues = append(l.issues, Issue{Offset: offset, Line: line, Column: col, Message: message})
}

func (l *linter) position(offset int) string {
	line, col := l.lineCol(offset)
	return fmt.Sprintf("%d:%d", line, col)
}

func (l *linter) lineCol(offset int) (int, int) {
	before := l.src[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndex(before, "\n")
	return line, col
}
