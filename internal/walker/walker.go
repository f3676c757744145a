package walker

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"contextmap/internal/parsers"
)

// SourceFile is one extraction candidate found under the root.
type SourceFile struct {
	Path    string // absolute path
	RelPath string // slash-separated path relative to the root
	Dialect parsers.Dialect
}

// Entry is one file or directory in the depth-limited repository listing
// used for the context map's layout section.
type Entry struct {
	RelPath string
	IsDir   bool
	Depth   int
}

// ignoredDirs are never descended into, at any depth.
var ignoredDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"target":       true,
}

// Classify maps a file name to the dialect used to parse it. Declaration
// files (.d.ts) and unknown extensions are not candidates.
func Classify(name string) (parsers.Dialect, bool) {
	switch filepath.Ext(name) {
	case ".ts":
		if strings.HasSuffix(name, ".d.ts") {
			return "", false
		}
		return parsers.DialectTS, true
	case ".tsx":
		return parsers.DialectTSX, true
	case ".vue":
		return parsers.DialectVue, true
	}
	return "", false
}

// SkipDir reports whether a directory name is excluded from traversal.
// Hidden tooling directories are skipped at any nested depth, but a hidden
// root (e.g. scanning from inside one) is allowed.
func SkipDir(name string, depth int) bool {
	if ignoredDirs[name] {
		return true
	}
	return depth > 0 && strings.HasPrefix(name, ".")
}

// Walker enumerates source files under a root directory, applying the
// built-in directory exclusions plus any configured ignore globs.
type Walker struct {
	root   string
	ignore []glob.Glob
}

// New compiles the ignore patterns and returns a walker rooted at root.
// Patterns are matched against the slash-separated relative path.
func New(root string, ignorePatterns []string) (*Walker, error) {
	globs := make([]glob.Glob, 0, len(ignorePatterns))
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return &Walker{root: root, ignore: globs}, nil
}

func (w *Walker) ignored(relPath string) bool {
	for _, g := range w.ignore {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

// Collect returns every extraction candidate under the root, sorted by
// relative path.
func (w *Walker) Collect() ([]SourceFile, error) {
	var files []SourceFile

	err := filepath.WalkDir(w.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, depth := w.relative(path)

		if entry.IsDir() {
			if depth > 0 && (SkipDir(entry.Name(), depth) || w.ignored(relPath)) {
				return filepath.SkipDir
			}
			return nil
		}

		dialect, ok := Classify(entry.Name())
		if !ok || w.ignored(relPath) {
			return nil
		}

		files = append(files, SourceFile{Path: path, RelPath: relPath, Dialect: dialect})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// CollectEntries returns the files and directories under the root up to
// maxDepth, with the same exclusion rules as Collect, sorted by relative
// path with directories before files of the same path.
func (w *Walker) CollectEntries(maxDepth int) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(w.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, depth := w.relative(path)
		if depth == 0 {
			return nil
		}

		if entry.IsDir() {
			if SkipDir(entry.Name(), depth) || w.ignored(relPath) {
				return filepath.SkipDir
			}
			if depth > maxDepth {
				return filepath.SkipDir
			}
		} else if depth > maxDepth || w.ignored(relPath) {
			return nil
		}

		entries = append(entries, Entry{RelPath: relPath, IsDir: entry.IsDir(), Depth: depth})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].RelPath != entries[j].RelPath {
			return entries[i].RelPath < entries[j].RelPath
		}
		return entries[i].IsDir && !entries[j].IsDir
	})
	return entries, nil
}

// relative converts an absolute walk path into the slash-separated relative
// form used for matching and reporting, along with its depth below root.
func (w *Walker) relative(path string) (string, int) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return "", 0
	}
	rel = filepath.ToSlash(rel)
	return rel, strings.Count(rel, "/") + 1
}
