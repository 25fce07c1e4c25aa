package validation

import (
	"fmt"
	"regexp"
	"strings"

	"offerte/internal/core/apperror"
	"offerte/internal/domain/offer"
)

// Kind classifies a field for format checking.
type Kind int

const (
	// Text is free text bounded only by length.
	Text Kind = iota
	// UpperAlnum allows uppercase letters and digits only.
	UpperAlnum
	// Phone allows digits, "+", "-" and spaces.
	Phone
	// Timestamp is DD/MM/YYYY_HH:MM:SS.
	Timestamp
	// MonthYear is MM/YYYY.
	MonthYear
	// Enum is a code from a closed regulator set.
	Enum
	// Digits is a fixed-width numeric code.
	Digits
)

var (
	upperAlnumRe = regexp.MustCompile(`^[A-Z0-9]+$`)
	phoneRe      = regexp.MustCompile(`^\+?[0-9][0-9 \-]*$`)
)

// FieldSpec declares the format constraints of one field. Specs carry
// no knowledge of other fields; conditionality lives in the rules.
type FieldSpec struct {
	Path     string
	Kind     Kind
	Required bool
	// MaxLen bounds Text/UpperAlnum/Phone fields, 0 for unbounded.
	MaxLen int
	// Width is the exact digit count for Digits fields.
	Width int
	// Set is the legal code set for Enum fields.
	Set *offer.CodeSet
}

// CheckField validates a single value against its spec. Pure function:
// no side effects, no access to other fields. Format, range and enum
// violations are always error severity.
func CheckField(value string, spec FieldSpec) []Finding {
	if value == "" {
		if spec.Required {
			return []Finding{missing(spec.Path, "field")}
		}
		return nil
	}

	var out []Finding

	if spec.MaxLen > 0 && len(value) > spec.MaxLen {
		out = append(out, errAt(apperror.CodeRange, spec.Path,
			"value is %d characters, maximum is %d", len(value), spec.MaxLen))
	}

	switch spec.Kind {
	case Text:
		// length only
	case UpperAlnum:
		if !upperAlnumRe.MatchString(value) {
			out = append(out, errAt(apperror.CodeFormat, spec.Path,
				"value must contain uppercase letters and digits only"))
		}
	case Phone:
		if !phoneRe.MatchString(value) {
			out = append(out, errAt(apperror.CodeFormat, spec.Path,
				"value is not a valid phone number"))
		}
	case Timestamp:
		if _, err := offer.ParseTimestamp(value); err != nil {
			out = append(out, errAt(apperror.CodeFormat, spec.Path,
				"value must match DD/MM/YYYY_HH:MM:SS"))
		}
	case MonthYear:
		if _, err := offer.ParseMonthYear(value); err != nil {
			out = append(out, errAt(apperror.CodeFormat, spec.Path,
				"value must match MM/YYYY"))
		}
	case Enum:
		if !spec.Set.Contains(value) {
			out = append(out, errAt(apperror.CodeUnknownEnumValue, spec.Path,
				"%q is not a valid %s code", value, spec.Set.Name()))
		}
	case Digits:
		if !isDigits(value) || len(value) != spec.Width {
			out = append(out, errAt(apperror.CodeFormat, spec.Path,
				"value must be exactly %d digits", spec.Width))
		}
	}

	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// checkEnumList validates a multi-valued enum field: at least one value
// when required, every value in the set, no duplicates.
func checkEnumList(path string, values []string, set *offer.CodeSet, required bool) []Finding {
	if len(values) == 0 {
		if required {
			return []Finding{missing(path, "at least one code")}
		}
		return nil
	}

	var out []Finding
	seen := make(map[string]bool, len(values))
	for i, v := range values {
		p := fmt.Sprintf("%s[%d]", path, i)
		if !set.Contains(v) {
			out = append(out, errAt(apperror.CodeUnknownEnumValue, p,
				"%q is not a valid %s code", v, set.Name()))
			continue
		}
		if seen[v] {
			out = append(out, errAt(apperror.CodeCrossFieldInconsistency, p,
				"code %q is listed more than once", v))
		}
		seen[v] = true
	}
	return out
}

// contains reports whether a code list includes a code.
func contains(values []string, code string) bool {
	for _, v := range values {
		if v == code {
			return true
		}
	}
	return false
}

// hasText reports whether a free-text field carries non-blank content.
func hasText(s string) bool { return strings.TrimSpace(s) != "" }
