// Package report aggregates validation results and renders them.
package report

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solweave/idlvet/internal/output"
	"github.com/solweave/idlvet/internal/rules"
)

// ModuleStats summarizes one module for the report footer.
type ModuleStats struct {
	Name      string `yaml:"name"`
	Generated bool   `yaml:"generated"`
	Types     int    `yaml:"types"`
	Functions int    `yaml:"functions"`
	Constants int    `yaml:"constants"`
}

// Report is the structured outcome of one project run.
type Report struct {
	Project     string         `yaml:"project"`
	Program     string         `yaml:"program"`
	IDLKind     string         `yaml:"idl_kind"`
	HasAccounts bool           `yaml:"has_accounts"`
	Results     []rules.Result `yaml:"results"`
	Modules     []ModuleStats  `yaml:"modules"`
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// ProjectOutcome is one child's verdict in a batch run.
type ProjectOutcome struct {
	Name     string   `yaml:"name"`
	Passed   bool     `yaml:"passed"`
	Failures []string `yaml:"failures,omitempty"`
}

// BatchReport aggregates a batch run.
type BatchReport struct {
	Root     string           `yaml:"root"`
	Projects []ProjectOutcome `yaml:"projects"`
}

// PassedCount returns how many projects passed.
func (b *BatchReport) PassedCount() int {
	count := 0
	for _, p := range b.Projects {
		if p.Passed {
			count++
		}
	}
	return count
}

// Passed reports whether every project passed.
func (b *BatchReport) Passed() bool {
	return b.PassedCount() == len(b.Projects)
}

// Renderer renders reports through an explicit printer; it holds no
// process-wide state.
type Renderer struct {
	printer *output.Printer
}

// NewRenderer creates a Renderer.
func NewRenderer(p *output.Printer) *Renderer {
	return &Renderer{printer: p}
}

// RenderText prints the human-readable single-project report.
func (r *Renderer) RenderText(rep *Report) {
	p := r.printer

	p.Header("🔍 idlvet structural consistency report")
	p.Info("project: " + rep.Project)
	p.Info("IDL kind: " + strings.ToUpper(rep.IDLKind))
	p.Info("program: " + rep.Program)
	p.Info("accounts section: " + yesNo(rep.HasAccounts))
	p.Plain("")

	passed := 0
	for _, res := range rep.Results {
		if res.Passed {
			p.Success(res.Check + ": " + res.Message)
			passed++
		} else {
			p.Error(res.Check + ": " + res.Message)
		}
		for _, detail := range res.Details {
			switch {
			case strings.HasPrefix(detail, "error:"):
				p.DetailError(detail)
			case strings.HasPrefix(detail, "warning:"):
				p.DetailWarning(detail)
			default:
				p.Detail(detail)
			}
		}
	}

	p.Plain("")
	if passed == len(rep.Results) {
		p.Success(fmt.Sprintf("🎯 %d/%d checks passed", passed, len(rep.Results)))
	} else {
		p.Error(fmt.Sprintf("🎯 %d/%d checks passed", passed, len(rep.Results)))
	}

	p.Header("📊 module summary")
	for _, m := range rep.Modules {
		if m.Generated {
			p.Info(fmt.Sprintf("%s: %d types, %d functions, %d constants",
				m.Name, m.Types, m.Functions, m.Constants))
		} else {
			p.Info(m.Name + ": not generated")
		}
	}
}

// RenderYAML writes the machine-readable report.
func (r *Renderer) RenderYAML(w io.Writer, rep *Report) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(rep)
}

// RenderBatch prints the batch report: one line per project plus the
// aggregate count.
func (r *Renderer) RenderBatch(rep *BatchReport) {
	p := r.printer

	p.Header("🔄 idlvet batch validation")
	for _, proj := range rep.Projects {
		if proj.Passed {
			p.Success(proj.Name)
		} else {
			p.Error(proj.Name)
			for _, failure := range proj.Failures {
				p.DetailError(failure)
			}
		}
	}

	p.Plain("")
	summary := fmt.Sprintf("📊 %d/%d projects passed", rep.PassedCount(), len(rep.Projects))
	if rep.Passed() {
		p.Success(summary)
	} else {
		p.Error(summary)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
