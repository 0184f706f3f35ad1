// Package scanner reads generated crate sources from disk.
//
// Generated files are small, so reads are atomic whole-file loads. An
// unreadable file degrades to an empty result and a logged warning; a scan
// never aborts the run.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/solweave/idlvet/internal/logging"
)

// DefaultIgnoreDirs are directories never descended into during traversal.
var DefaultIgnoreDirs = []string{
	"target", "node_modules", ".git", ".svn", ".hg",
	"dist", "build", "tmp", "temp",
	".idea", ".vscode", ".vs",
}

// SourceFile is one loaded source file.
type SourceFile struct {
	Path    string
	Content string
}

// Scanner loads module sources.
type Scanner struct {
	logger logging.Logger
}

// New creates a Scanner.
func New(logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewSilent()
	}
	return &Scanner{logger: logger}
}

// ModuleFiles returns the Rust sources directly inside dir, sorted by name.
// mod.rs is a re-export shim in the generated layout and is skipped. A
// missing directory yields (nil, false); unreadable files are logged and
// omitted.
func (s *Scanner) ModuleFiles(dir string) ([]SourceFile, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read module directory",
				logging.F("path", dir),
				logging.F("error", err))
		}
		return nil, false
	}

	var files []SourceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".rs") || name == "mod.rs" {
			continue
		}
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("Failed to read source file",
				logging.F("path", path),
				logging.F("error", err))
			continue
		}
		files = append(files, SourceFile{Path: path, Content: string(content)})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, true
}

// ReadFile loads a single file, degrading to empty content on failure.
func (s *Scanner) ReadFile(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read file",
				logging.F("path", path),
				logging.F("error", err))
		}
		return "", false
	}
	return string(content), true
}

// ProjectDirs returns the immediate child directories of root that contain
// the given manifest file, sorted by name. Ignored directories are skipped.
func (s *Scanner) ProjectDirs(root, manifest string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	ignored := make(map[string]bool, len(DefaultIgnoreDirs))
	for _, dir := range DefaultIgnoreDirs {
		ignored[dir] = true
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || ignored[entry.Name()] || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		candidate := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(candidate, manifest)); err == nil {
			dirs = append(dirs, candidate)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}
