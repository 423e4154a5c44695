package minitemplate

import "strings"

const (
	openDelim     = "{{"
	closeDelim    = "}}"
	rawOpenDelim  = "{{{"
	rawCloseDelim = "}}}"
)

// tag is one delimiter occurrence located by findTag. open is the offset of
// the opening delimiter, close the offset of the closing delimiter.
type tag struct {
	open     int
	close    int
	closeLen int
	raw      bool
	text     string
}

// end reports the offset just past the closing delimiter.
func (t tag) end() int {
	return t.close + t.closeLen
}

// findTag returns the next tag at or after from. A tag without a closing
// delimiter is not a tag.
func findTag(src string, from int) (tag, bool) {
	if from >= len(src) {
		return tag{}, false
	}
	rel := strings.Index(src[from:], openDelim)
	if rel < 0 {
		return tag{}, false
	}
	open := from + rel

	raw := strings.HasPrefix(src[open:], rawOpenDelim)
	openLen, closeToken := len(openDelim), closeDelim
	if raw {
		openLen, closeToken = len(rawOpenDelim), rawCloseDelim
	}

	relClose := strings.Index(src[open+openLen:], closeToken)
	if relClose < 0 {
		return tag{}, false
	}
	closeAt := open + openLen + relClose

	return tag{
		open:     open,
		close:    closeAt,
		closeLen: len(closeToken),
		raw:      raw,
		text:     strings.TrimSpace(src[open+openLen : closeAt]),
	}, true
}

type blockKind string

const (
	blockEach blockKind = "each"
	blockIf   blockKind = "if"
)

func (k blockKind) closer() string {
	return "/" + string(k)
}

type block struct {
	kind blockKind
	expr string
}

var blockPrefixes = []struct {
	prefix string
	kind   blockKind
}{
	{"#each ", blockEach},
	{"#if ", blockIf},
}

// parseBlock classifies tag text as an opening block tag.
func parseBlock(text string) (block, bool) {
	for _, p := range blockPrefixes {
		if !strings.HasPrefix(text, p.prefix) {
			continue
		}
		expr := strings.TrimSpace(text[len(p.prefix):])
		if expr == "" {
			return block{}, false
		}
		return block{kind: p.kind, expr: expr}, true
	}
	return block{}, false
}

func isOpeningBlock(text string) bool {
	return strings.HasPrefix(text, "#each ") || strings.HasPrefix(text, "#if ")
}

func isClosingBlock(text string) bool {
	return text == blockEach.closer() || text == blockIf.closer()
}

// isStructural reports tags that mark structure and are never looked up.
func isStructural(text string) bool {
	return text == "else" || strings.HasPrefix(text, "/")
}
