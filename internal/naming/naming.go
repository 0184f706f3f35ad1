// Package naming checks identifier casing in generated sources.
//
// The pass is purely textual and independent of the structural model:
// fields, functions, and local bindings must be lower snake_case, types
// must start with an uppercase letter. It exists because a generator bug
// once emitted camelCase field names straight from the IDL.
package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/solweave/idlvet/internal/rules"
	"github.com/solweave/idlvet/internal/scanner"
)

var (
	// The [^:] after the colon keeps path expressions like Foo::Bar from
	// matching as fields.
	fieldRe = regexp.MustCompile(`^\s*(?:pub\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*:\s*[^:\s]`)
	fnRe    = regexp.MustCompile(`\bfn\s+([A-Za-z_][A-Za-z0-9_]*)`)
	typeRe  = regexp.MustCompile(`\b(?:struct|enum)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	letRe   = regexp.MustCompile(`\blet\s+(?:mut\s+)?([A-Za-z_][A-Za-z0-9_]*)`)

	snakeRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	camelRe = regexp.MustCompile(`^[a-z][a-z0-9]*(?:[A-Z][A-Za-z0-9]*)+$`)
)

// reservedIdentifiers are never flagged: language keywords that slip
// through the patterns and self-referential names.
var reservedIdentifiers = map[string]bool{
	"self": true,
	"Self": true,
	"type": true,
	"ref":  true,
}

// Checker validates identifier conventions.
type Checker struct {
	// Strict escalates every warning to an error.
	Strict bool
	// Exempt holds extra identifiers to skip, from configuration.
	Exempt []string
}

// New creates a Checker.
func New(strict bool, exempt []string) *Checker {
	return &Checker{Strict: strict, Exempt: exempt}
}

func (c *Checker) Name() string { return "naming" }

// Check scans the given files and reports convention violations.
func (c *Checker) Check(files []scanner.SourceFile) rules.Result {
	var errors, warnings []string

	for _, file := range files {
		base := filepath.Base(file.Path)
		for _, line := range strings.Split(file.Content, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
				continue
			}

			if m := typeRe.FindStringSubmatch(trimmed); m != nil {
				if !c.exempt(m[1]) && !startsUpper(m[1]) {
					errors = append(errors, fmt.Sprintf(
						"%s: type %s should start with an uppercase letter", base, m[1]))
				}
				continue
			}

			if m := fnRe.FindStringSubmatch(trimmed); m != nil {
				if !c.exempt(m[1]) && !snakeRe.MatchString(m[1]) {
					errors = append(errors, fmt.Sprintf(
						"%s: function %s is not snake_case", base, m[1]))
				}
				continue
			}

			if m := letRe.FindStringSubmatch(trimmed); m != nil {
				if !c.exempt(m[1]) && !snakeRe.MatchString(m[1]) {
					warnings = append(warnings, fmt.Sprintf(
						"%s: local binding %s is not snake_case", base, m[1]))
				}
				continue
			}

			if m := fieldRe.FindStringSubmatch(line); m != nil {
				name := m[1]
				if c.exempt(name) || snakeRe.MatchString(name) {
					continue
				}
				// camelCase fields get their own bucket: they are the
				// known generator defect and are tracked separately from
				// outright invalid names.
				if camelRe.MatchString(name) {
					warnings = append(warnings, fmt.Sprintf(
						"%s: unexpected mixed-case field %s", base, name))
				} else {
					errors = append(errors, fmt.Sprintf(
						"%s: field %s is not snake_case", base, name))
				}
			}
		}
	}

	if c.Strict {
		errors = append(errors, warnings...)
		warnings = nil
	}

	return buildResult(errors, warnings)
}

func (c *Checker) exempt(name string) bool {
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, "r#") {
		return true
	}
	if reservedIdentifiers[name] {
		return true
	}
	for _, exempt := range c.Exempt {
		if name == exempt {
			return true
		}
	}
	return false
}

func startsUpper(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func buildResult(errors, warnings []string) rules.Result {
	passed := len(errors) == 0
	verdict := "passed"
	if !passed {
		verdict = "failed"
	}

	r := rules.Result{
		Check:   "naming",
		Passed:  passed,
		Message: "naming validation " + verdict,
	}
	for _, e := range errors {
		r.Details = append(r.Details, "error: "+e)
	}
	for _, w := range warnings {
		r.Details = append(r.Details, "warning: "+w)
	}
	return r
}
