package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-minitemplate/pkg/data"
)

// MustLoadContext reads a JSON or YAML fixture into a template context.
func MustLoadContext(t *testing.T, path string) map[string]any {
	t.Helper()

	ctx, err := data.LoadFile(path)
	if err != nil {
		t.Fatalf("load context: %v", err)
	}
	return ctx
}

// MustReadTemplate reads a template fixture as a string.
func MustReadTemplate(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return raw
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, raw []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// AssertGoldenString compares got with the golden file at path, rewriting
// the file instead when UPDATE_GOLDENS is set.
func AssertGoldenString(t *testing.T, path, got string) {
	t.Helper()

	if WriteMaybeGolden(t, path, []byte(got)) {
		return
	}
	want := MustReadGoldenString(t, path)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
