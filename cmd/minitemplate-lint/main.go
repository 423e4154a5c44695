package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-minitemplate/pkg/minitemplate"
)

type violation struct {
	file  string
	issue minitemplate.Issue
}

func main() {
	exts := flag.String("ext", ".tpl,.tmpl", "comma separated template extensions scanned in directories")
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nReport malformed blocks and tags that minitemplate renders silently.\n\n"); err != nil {
			panic(err)
		}
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var violations []violation
	for _, path := range paths {
		files, err := collect(path, splitExtensions(*exts))
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, file := range files {
			linted, err := lintFile(file)
			if err != nil {
				fmt.Fprintf(os.Stderr, "lint %s: %v\n", file, err)
				os.Exit(1)
			}
			violations = append(violations, linted...)
		}
	}

	if len(violations) > 0 {
		sort.SliceStable(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				return violations[i].issue.Offset < violations[j].issue.Offset
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s:%s\n", v.file, v.issue)
		}
		os.Exit(1)
	}
}

func lintFile(path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var result []violation
	for _, issue := range minitemplate.Lint(string(raw)) {
		result = append(result, violation{file: path, issue: issue})
	}
	return result, nil
}

// collect expands a directory into the template files below it. Plain file
// arguments are linted whatever their extension.
func collect(path string, exts []string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range exts {
			if strings.EqualFold(filepath.Ext(p), ext) {
				files = append(files, p)
				break
			}
		}
		return nil
	})
	return files, err
}

func splitExtensions(raw string) []string {
	var exts []string
	for _, ext := range strings.Split(raw, ",") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}
