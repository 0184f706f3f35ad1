// Package rules validates the structural contract of a generated crate.
//
// Each validator checks one module (or one cross-cutting concern) against
// the capability contract its IDL demands and returns an immutable Result.
// Failures never abort the pipeline; the run's verdict is the AND of every
// result's Passed flag.
package rules

import "fmt"

// Result holds one validator's outcome. Details are ordered: errors first,
// then warnings, then informational lines, each carrying its severity
// prefix.
type Result struct {
	Check   string   `yaml:"check"`
	Passed  bool     `yaml:"passed"`
	Message string   `yaml:"message"`
	Details []string `yaml:"details,omitempty"`
}

// Validator is the interface all module validators implement.
type Validator interface {
	Name() string
	Validate() Result
}

// finish assembles a Result from severity buckets. Passed is decided by the
// error bucket alone; warnings and infos are carried along for the report.
func finish(check string, errors, warnings, infos []string) Result {
	passed := len(errors) == 0

	verdict := "passed"
	if !passed {
		verdict = "failed"
	}

	r := Result{
		Check:   check,
		Passed:  passed,
		Message: fmt.Sprintf("%s validation %s", check, verdict),
	}
	for _, e := range errors {
		r.Details = append(r.Details, "error: "+e)
	}
	for _, w := range warnings {
		r.Details = append(r.Details, "warning: "+w)
	}
	for _, i := range infos {
		r.Details = append(r.Details, i)
	}
	return r
}

// pass builds a passing Result with a custom message.
func pass(check, message string) Result {
	return Result{Check: check, Passed: true, Message: message}
}

// fail builds a failing Result with a custom message and a single error
// detail.
func fail(check, message string) Result {
	return Result{
		Check:   check,
		Passed:  false,
		Message: message,
		Details: []string{"error: " + message},
	}
}
