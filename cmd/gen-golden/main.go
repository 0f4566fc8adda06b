package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/mathtok"
)

// Goldens are generated with math delimiters enabled, the CLI default.
func main() {
	root := "testdata"
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if isDocument(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no documents found under %s", root)
	}
	for _, path := range paths {
		res, err := mathtok.ConvertFile(path, mathtok.WithMathDelimiters(true))
		if err != nil {
			fatalf("convert %s: %v", path, err)
		}
		goldenPath := goldenPathFor(path)
		if err := os.WriteFile(goldenPath, []byte(res.Tokens), 0o644); err != nil {
			fatalf("write %s: %v", goldenPath, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s (%d diagnostics)\n", goldenPath, len(res.Diagnostics))
	}
}

func isDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".mml", ".xhtml", ".html", ".htm":
		return true
	default:
		return false
	}
}

func goldenPathFor(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".golden"
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
