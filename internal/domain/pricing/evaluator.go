// Package pricing evaluates step-wise consumption pricing: an ordered
// list of consumption brackets, each billed at its own unit price. It
// is used both to validate bracket definitions and to preview the
// effective cost of a given total consumption.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one consumption step. A nil To marks the last, open-ended
// bracket that absorbs any consumption above the highest explicit bound.
type Bracket struct {
	From  decimal.Decimal
	To    *decimal.Decimal
	Price decimal.Decimal
}

// Issue is a problem found in a bracket definition.
type Issue struct {
	// Index of the offending bracket, -1 for list-level problems.
	Index   int
	Message string
}

func (i Issue) Error() string {
	if i.Index < 0 {
		return i.Message
	}
	return fmt.Sprintf("bracket %d: %s", i.Index+1, i.Message)
}

// one is the step between an integer bracket bound and the next
// bracket's lower bound (101 follows 100 with no gap).
var one = decimal.NewFromInt(1)

// CheckBrackets validates bracket definitions without a consumption
// value: ordered, non-overlapping and gapless where both bounds are
// populated, open-ended only in last position. A single bracket with no
// bounds (covering the whole domain) is legal. Full domain coverage is
// not required. All issues are reported, not just the first.
func CheckBrackets(brackets []Bracket) []Issue {
	var issues []Issue

	if len(brackets) == 0 {
		return []Issue{{Index: -1, Message: "at least one bracket is required"}}
	}

	for i, b := range brackets {
		if b.From.IsNegative() {
			issues = append(issues, Issue{i, "lower bound must not be negative"})
		}
		if b.To != nil && b.To.Compare(b.From) <= 0 {
			issues = append(issues, Issue{i, fmt.Sprintf("upper bound %s must exceed lower bound %s", b.To, b.From)})
		}
		if b.To == nil && i != len(brackets)-1 {
			issues = append(issues, Issue{i, "only the last bracket may be open-ended"})
		}
		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if prev.To == nil {
			continue // already reported above
		}
		// Gapless: the next lower bound continues exactly where the
		// previous upper bound stopped (or one unit above it, the
		// integer-consumption convention: 0-100, 101-200).
		switch {
		case b.From.Compare(*prev.To) < 0:
			issues = append(issues, Issue{i, fmt.Sprintf("lower bound %s overlaps previous bracket ending at %s", b.From, prev.To)})
		case b.From.Compare(*prev.To) != 0 && b.From.Compare(prev.To.Add(one)) != 0:
			issues = append(issues, Issue{i, fmt.Sprintf("gap between previous bracket ending at %s and lower bound %s", prev.To, b.From)})
		}
	}

	return issues
}

// Cost computes the total billed amount for a consumption: each bracket
// prices the portion of the consumption falling inside it, and the last
// bracket, when open-ended, absorbs the remainder. A consumption beyond
// the covered domain with no open-ended bracket is a coverage error,
// never a silent clamp.
func Cost(brackets []Bracket, consumption decimal.Decimal) (decimal.Decimal, error) {
	if issues := CheckBrackets(brackets); len(issues) > 0 {
		return decimal.Zero, issues[0]
	}
	if consumption.IsNegative() {
		return decimal.Zero, fmt.Errorf("consumption must not be negative")
	}

	total := decimal.Zero
	covered := brackets[0].From
	for _, b := range brackets {
		if consumption.Compare(covered) <= 0 {
			return total, nil
		}
		if b.To == nil {
			// Open-ended: everything left is billed at this price.
			total = total.Add(consumption.Sub(covered).Mul(b.Price))
			return total, nil
		}
		upper := decimal.Min(consumption, *b.To)
		if upper.Compare(covered) > 0 {
			total = total.Add(upper.Sub(covered).Mul(b.Price))
		}
		covered = *b.To
	}

	if consumption.Compare(covered) > 0 {
		return decimal.Zero, fmt.Errorf("consumption %s exceeds covered domain ending at %s", consumption, covered)
	}
	return total, nil
}
