package toml

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// TOMLFile wraps a Document with the on-disk line-ending it was loaded
// with, so Save reproduces "\n" or "\r\n" consistently instead of
// letting Go's default LF leak into a CRLF file (spec.md §6, mirroring
// tomlkit's toml_file.py).
type TOMLFile struct {
	Path       string
	Doc        *Document
	LineEnding string // "\n" or "\r\n"
}

// OpenFile reads and parses path, recording its dominant line ending.
func OpenFile(path string) (*TOMLFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(data)
	ending := detectLineEnding(text)
	doc, err := Parse(normalizeToLF(text))
	if err != nil {
		return nil, err
	}
	return &TOMLFile{Path: path, Doc: doc, LineEnding: ending}, nil
}

// detectLineEnding returns "\r\n" when CRLF pairs outnumber bare LFs,
// "\n" when the file has any line break at all, and the platform
// default when the content is a single line with no terminator.
func detectLineEnding(text string) string {
	crlf := strings.Count(text, "\r\n")
	lf := strings.Count(text, "\n") - crlf
	switch {
	case crlf == 0 && lf == 0:
		if os.PathSeparator == '\\' {
			return "\r\n"
		}
		return "\n"
	case crlf > lf:
		return "\r\n"
	default:
		return "\n"
	}
}

func normalizeToLF(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// Save renders f.Doc and atomically replaces f.Path: the new content is
// written to a sibling temp file first, then moved into place with
// os.Rename, so a crash mid-write never leaves a truncated document on
// disk. The temp name's uniqueness comes from a uuid v4 token rather
// than the target's own name, so concurrent saves of the same file from
// two processes never collide on the temp path.
func (f *TOMLFile) Save() error {
	return f.SaveAs(f.Path)
}

// SaveAs renders f.Doc to path using the same atomic-write strategy as
// Save, without changing f.Path.
func (f *TOMLFile) SaveAs(path string) error {
	out := f.Doc.String()
	if f.LineEnding == "\r\n" {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, []byte(out), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
