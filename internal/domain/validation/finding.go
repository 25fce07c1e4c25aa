// Package validation implements the conditional rule engine: per-field
// format checks plus the cross-field and cross-section rules that
// decide, for a partially or fully populated offer, which fields are
// required, which values are legal and which combinations clash.
package validation

import (
	"fmt"

	"offerte/internal/core/apperror"
)

// Severity of a finding. Serialization is blocked by error findings
// only; warnings are surfaced but do not block.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one validation result entry. Path is a section/field/index
// chain ("companyComponents[0].priceIntervals") usable for UI error
// placement; Code is one of the apperror taxonomy codes.
type Finding struct {
	Path     string   `json:"path"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
}

// Result is an ordered list of findings: section-declaration order
// first, field-declaration order within a section, so output is
// reproducible for golden-file testing.
type Result struct {
	Findings []Finding `json:"errors"`
}

// HasErrors reports whether any error-severity finding is present.
func (r *Result) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the error-severity findings only.
func (r *Result) Errors() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// IsEmpty reports whether the result carries no findings at all.
func (r *Result) IsEmpty() bool { return len(r.Findings) == 0 }

func (r *Result) add(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

// errAt builds an error finding.
func errAt(code, path, format string, args ...any) Finding {
	return Finding{
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
		Code:     code,
	}
}

// warnAt builds a warning finding.
func warnAt(code, path, format string, args ...any) Finding {
	return Finding{
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityWarning,
		Code:     code,
	}
}

func missing(path, what string) Finding {
	return errAt(apperror.CodeRequiredFieldMissing, path, "%s is required", what)
}
