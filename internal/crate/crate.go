// Package crate models a generated interface crate on disk.
package crate

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/solweave/idlvet/internal/extract"
	"github.com/solweave/idlvet/internal/logging"
	"github.com/solweave/idlvet/internal/scanner"
)

// The module directories the generator may emit under src/. Instructions
// and parsers are mandatory; the rest depend on the IDL shape.
var ModuleNames = []string{"instructions", "accounts", "types", "events", "parsers"}

// Module is the structural model of one generated module directory. It is
// built once per run and read-only afterward.
type Module struct {
	Name    string
	Path    string
	Exists  bool
	Symbols extract.Symbols
}

// TypeNames returns the module's type names sorted for deterministic
// reporting.
func (m *Module) TypeNames() []string {
	names := make([]string, 0, len(m.Symbols.Types))
	for name := range m.Symbols.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasFunction reports whether the module exposes the function recorded
// under key ("Owner::name" for methods, bare name for free functions).
func (m *Module) HasFunction(key string) bool {
	_, ok := m.Symbols.Functions[key]
	return ok
}

// ConstantsWithSuffix returns the module's constants carrying the suffix.
func (m *Module) ConstantsWithSuffix(suffix string) []string {
	var names []string
	for name := range m.Symbols.Constants {
		if strings.HasSuffix(name, suffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Crate is the scanned module set of one project.
type Crate struct {
	Root    string
	Modules map[string]*Module
}

// ModulesInOrder returns the modules in generator emission order.
func (c *Crate) ModulesInOrder() []*Module {
	mods := make([]*Module, 0, len(c.Modules))
	for _, name := range ModuleNames {
		if m, ok := c.Modules[name]; ok {
			mods = append(mods, m)
		}
	}
	return mods
}

// Scan builds the module set for the crate rooted at projectPath. A module
// directory that does not exist is recorded with Exists=false; that is a
// legal state the rule engine conditions on.
func Scan(projectPath string, s *scanner.Scanner, logger logging.Logger) *Crate {
	if logger == nil {
		logger = logging.NewSilent()
	}

	c := &Crate{
		Root:    projectPath,
		Modules: make(map[string]*Module, len(ModuleNames)),
	}

	srcPath := filepath.Join(projectPath, "src")
	for _, name := range ModuleNames {
		dir := filepath.Join(srcPath, name)
		mod := &Module{Name: name, Path: dir, Symbols: extract.NewSymbols()}

		files, exists := s.ModuleFiles(dir)
		mod.Exists = exists
		for _, file := range files {
			mod.Symbols.Merge(extract.Parse(file.Content))
		}

		if exists {
			logger.Debug("Scanned module",
				logging.F("module", name),
				logging.F("types", len(mod.Symbols.Types)),
				logging.F("functions", len(mod.Symbols.Functions)),
				logging.F("constants", len(mod.Symbols.Constants)))
		}

		c.Modules[name] = mod
	}

	return c
}
