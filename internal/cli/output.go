package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
)

// emit writes rendered to path, or to w when path is empty.
func emit(w io.Writer, path, rendered string) error {
	if path == "" {
		_, err := io.WriteString(w, rendered)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader([]byte(rendered))); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("wrote output", slog.String("path", path), slog.String("size", humanize.Bytes(uint64(len(rendered)))))
	return nil
}
