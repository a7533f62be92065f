package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// InputExt is the extension of files picked up by Discover.
const InputExt = ".txt"

// Document is one input source: a name used for the output file and a loader
// that reads its content once.
type Document struct {
	Name string
	Load func() (string, error)
}

// StringDocument returns a Document with fixed content.
func StringDocument(name, content string) Document {
	return Document{
		Name: name,
		Load: func() (string, error) { return content, nil },
	}
}

// FileDocument returns a Document that reads path when loaded.
// The document name is the file's base name. CRLF and lone CR line endings
// are normalized to "\n" so they neither count toward the split threshold nor
// end up inside chunks.
func FileDocument(path string) Document {
	return Document{
		Name: filepath.Base(path),
		Load: func() (string, error) {
			data, err := os.ReadFile(path) // #nosec G304 -- path comes from Discover or the user
			if err != nil {
				return "", fmt.Errorf("failed to read %s: %w", path, err)
			}
			return normalizeNewlines(string(data)), nil
		},
	}
}

// newlineReplacer maps Windows and classic Mac line endings to "\n".
var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeNewlines(s string) string {
	return newlineReplacer.Replace(s)
}

// Discover lists every regular file in dir ending in InputExt, in lexical order.
// Symlinks are followed; subdirectories are not descended into.
func Discover(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list input directory: %w", err)
	}

	var docs []Document
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), InputExt) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if !isRegular(p, e) {
			continue
		}
		docs = append(docs, FileDocument(p))
	}
	return docs, nil
}

// isRegular reports whether e is a regular file, following symlinks.
func isRegular(p string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
