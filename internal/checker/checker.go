// Package checker orchestrates the validation pipeline: probe the IDL,
// scan the crate, run the rule engines, assemble the report.
package checker

import (
	"fmt"

	"github.com/solweave/idlvet/internal/crate"
	"github.com/solweave/idlvet/internal/idl"
	"github.com/solweave/idlvet/internal/logging"
	"github.com/solweave/idlvet/internal/naming"
	"github.com/solweave/idlvet/internal/report"
	"github.com/solweave/idlvet/internal/rules"
	"github.com/solweave/idlvet/internal/scanner"
)

// Options configures a Checker.
type Options struct {
	// IDLFilename overrides the IDL document name ("idl.json" by default).
	IDLFilename string
	// Naming enables the identifier-convention pass.
	Naming bool
	// StrictNaming escalates naming warnings to errors; implies Naming.
	StrictNaming bool
	// NamingExempt holds extra identifiers the naming pass skips.
	NamingExempt []string
	// Logger receives progress and degradation warnings.
	Logger logging.Logger
}

// Checker runs the pipeline. Each project produces an independent module
// set; nothing is shared across runs.
type Checker struct {
	scanner *scanner.Scanner
	probe   *idl.Probe
	naming  *naming.Checker
	logger  logging.Logger
}

// New creates a Checker.
func New(opts Options) *Checker {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewSilent()
	}

	c := &Checker{
		scanner: scanner.New(logger),
		probe:   idl.NewProbe(opts.IDLFilename, logger),
		logger:  logger,
	}
	if opts.Naming || opts.StrictNaming {
		c.naming = naming.New(opts.StrictNaming, opts.NamingExempt)
	}
	return c
}

// CheckProject validates a single generated crate and returns its report.
func (c *Checker) CheckProject(projectPath string) *report.Report {
	c.logger.Info("Validating project", logging.F("path", projectPath))

	doc := c.probe.Inspect(projectPath)
	c.logger.Debug("Probed IDL",
		logging.F("kind", doc.Kind),
		logging.F("program", doc.ProgramName),
		logging.F("accounts", doc.HasAccounts))

	cr := crate.Scan(projectPath, c.scanner, c.logger)

	validators := []rules.Validator{
		&rules.InstructionsValidator{Module: cr.Modules["instructions"]},
		&rules.AccountsValidator{Module: cr.Modules["accounts"], HasAccounts: doc.HasAccounts},
		&rules.EventsValidator{Module: cr.Modules["events"]},
		&rules.ParsersValidator{
			Module:      cr.Modules["parsers"],
			HasAccounts: doc.HasAccounts,
			ProgramName: doc.ProgramName,
		},
		&rules.CrossModuleValidator{Crate: cr, ProgramName: doc.ProgramName},
	}

	rep := &report.Report{
		Project:     projectPath,
		Program:     doc.ProgramName,
		IDLKind:     string(doc.Kind),
		HasAccounts: doc.HasAccounts,
	}

	for _, v := range validators {
		rep.Results = append(rep.Results, v.Validate())
	}

	if c.naming != nil {
		rep.Results = append(rep.Results, c.naming.Check(c.moduleSources(cr)))
	}

	for _, m := range cr.ModulesInOrder() {
		rep.Modules = append(rep.Modules, report.ModuleStats{
			Name:      m.Name,
			Generated: m.Exists,
			Types:     len(m.Symbols.Types),
			Functions: len(m.Symbols.Functions),
			Constants: len(m.Symbols.Constants),
		})
	}

	return rep
}

// moduleSources re-reads the crate's sources for the textual naming pass,
// which works on raw lines rather than the structural model.
func (c *Checker) moduleSources(cr *crate.Crate) []scanner.SourceFile {
	var files []scanner.SourceFile
	for _, m := range cr.ModulesInOrder() {
		if !m.Exists {
			continue
		}
		moduleFiles, _ := c.scanner.ModuleFiles(m.Path)
		files = append(files, moduleFiles...)
	}
	return files
}

// CheckBatch validates every immediate child of root carrying a Cargo.toml,
// strictly one at a time.
func (c *Checker) CheckBatch(root string) (*report.BatchReport, error) {
	dirs, err := c.scanner.ProjectDirs(root, crate.ManifestFilename)
	if err != nil {
		return nil, fmt.Errorf("enumerating projects under %s: %w", root, err)
	}

	batch := &report.BatchReport{Root: root}
	for _, dir := range dirs {
		manifest, ok := crate.ReadManifest(dir)
		if !ok {
			c.logger.Warn("Manifest unreadable, using directory name",
				logging.F("path", dir))
		}

		rep := c.CheckProject(dir)
		outcome := report.ProjectOutcome{
			Name:   manifest.Name,
			Passed: rep.Passed(),
		}
		for _, res := range rep.Results {
			if !res.Passed {
				outcome.Failures = append(outcome.Failures, res.Check+": "+res.Message)
			}
		}
		batch.Projects = append(batch.Projects, outcome)
	}

	return batch, nil
}
