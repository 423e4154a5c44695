package minitemplate

// extractBlock returns the body of a block whose opening tag ends at from and
// the offset where rendering resumes. Nested openers of either kind deepen
// the scan; only a closer of the same kind can end the block, while stray
// closers of the other kind still unwind depth. An unmatched block runs to
// the end of src.
func extractBlock(src string, from int, kind blockKind) (string, int) {
	depth := 1
	closer := kind.closer()

	for pos := from; pos < len(src); {
		t, ok := findTag(src, pos)
		if !ok {
			break
		}

		switch {
		case isOpeningBlock(t.text):
			depth++
		case t.text == closer:
			depth = unwind(depth)
			if depth == 0 {
				return src[from:t.open], t.end()
			}
		case isClosingBlock(t.text):
			depth = unwind(depth)
		}

		pos = t.end()
	}

	return src[from:], len(src)
}

// splitElse splits an #if body on its first top-level else tag. Without one
// the whole body is the truthy branch.
func splitElse(body string) (string, string) {
	depth := 0

	for pos := 0; pos < len(body); {
		t, ok := findTag(body, pos)
		if !ok {
			break
		}

		switch {
		case isOpeningBlock(t.text):
			depth++
		case isClosingBlock(t.text):
			depth = unwind(depth)
		case t.text == "else" && depth == 0:
			return body[:t.open], body[t.end():]
		}

		pos = t.end()
	}

	return body, ""
}

func unwind(depth int) int {
	if depth <= 1 {
		return 0
	}
	return depth - 1
}
