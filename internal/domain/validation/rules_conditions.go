package validation

// Rule tables for contractual conditions, zones, discounts and bundled
// products.

import (
	"fmt"
	"time"

	"offerte/internal/core/apperror"
	"offerte/internal/core/types"
	"offerte/internal/domain/offer"
)

// Early-withdrawal charge conditions became admissible with offers
// starting on or after this date.
var earlyWithdrawalCutoff = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var contractualConditionsRules = []Rule{
	{
		ID:      "contractualConditions.items",
		Section: offer.SectionContractualConditions,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.ContractualConditions
			if s == nil {
				return nil
			}
			var out []Finding
			if len(s.Items) == 0 {
				out = append(out, missing("contractualConditions", "at least one contractual condition"))
			}
			for i, c := range s.Items {
				p := fmt.Sprintf("contractualConditions[%d]", i)
				out = append(out, CheckField(c.Type, FieldSpec{
					Path: p + ".type", Kind: Enum, Required: true, Set: offer.ContractualConditionTypes,
				})...)
				out = append(out, CheckField(c.OtherDescription, FieldSpec{
					Path: p + ".otherDescription", Kind: Text, MaxLen: 255,
				})...)
				if c.Type == offer.CodeOther && !hasText(c.OtherDescription) {
					out = append(out, errAt(apperror.CodeRequiredFieldMissing, p+".otherDescription",
						"a title is required for condition type %q (other)", offer.CodeOther))
				}
				out = append(out, CheckField(c.Description, FieldSpec{
					Path: p + ".description", Kind: Text, Required: true, MaxLen: 3000,
				})...)
				out = append(out, CheckField(c.Limiting, FieldSpec{
					Path: p + ".limiting", Kind: Enum, Required: true, Set: offer.YesNo,
				})...)
			}
			return out
		},
	},
	{
		// Early-withdrawal charges only exist for offers whose validity
		// starts on or after the cutoff. The validity period may belong
		// to a later wizard stage, so it is read through the context.
		ID:      "contractualConditions.earlyWithdrawalGate",
		Section: offer.SectionContractualConditions,
		Needs:   []offer.SectionID{offer.SectionValidityPeriod},
		Apply: func(o *offer.Offer, ctx Context) []Finding {
			s := o.ContractualConditions
			v := validity(o, ctx)
			if s == nil || v == nil {
				return nil
			}
			start, err := offer.ParseTimestamp(v.StartDate)
			if err != nil {
				return nil // start date format is reported by the validity rules
			}
			var out []Finding
			for i, c := range s.Items {
				if c.Type == offer.ConditionEarlyWithdrawal && start.Before(earlyWithdrawalCutoff) {
					out = append(out, errAt(apperror.CodeCrossSection,
						fmt.Sprintf("contractualConditions[%d].type", i),
						"early withdrawal charges require a validity start on or after %s",
						earlyWithdrawalCutoff.Format("02/01/2006")))
				}
			}
			return out
		},
	},
}

var zoneOffersRules = []Rule{
	{
		ID:      "zoneOffers.codes",
		Section: offer.SectionZoneOffers,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.ZoneOffers
			if s == nil {
				return nil
			}
			var out []Finding
			for i, c := range s.Regions {
				out = append(out, CheckField(c, FieldSpec{
					Path: fmt.Sprintf("zoneOffers.regions[%d]", i), Kind: Digits, Required: true, Width: 2,
				})...)
			}
			for i, c := range s.Provinces {
				out = append(out, CheckField(c, FieldSpec{
					Path: fmt.Sprintf("zoneOffers.provinces[%d]", i), Kind: Digits, Required: true, Width: 3,
				})...)
			}
			for i, c := range s.Municipalities {
				out = append(out, CheckField(c, FieldSpec{
					Path: fmt.Sprintf("zoneOffers.municipalities[%d]", i), Kind: Digits, Required: true, Width: 6,
				})...)
			}
			return out
		},
	},
}

var discountsRules = []Rule{
	{
		ID:      "discounts.items",
		Section: offer.SectionDiscounts,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.Discounts
			if s == nil {
				return nil
			}
			var out []Finding
			for i, d := range s.Items {
				out = append(out, checkDiscount(fmt.Sprintf("discounts[%d]", i), d)...)
			}
			return out
		},
	},
}

func checkDiscount(path string, d offer.Discount) []Finding {
	var out []Finding
	out = append(out, CheckField(d.Name, FieldSpec{
		Path: path + ".name", Kind: Text, Required: true, MaxLen: 255,
	})...)
	out = append(out, CheckField(d.Description, FieldSpec{
		Path: path + ".description", Kind: Text, Required: true, MaxLen: 3000,
	})...)
	out = append(out, checkEnumList(path+".componentBands",
		d.ComponentBands, offer.DiscountComponentBandCodes, false)...)

	// Exactly one of the validity code and the validity window. The
	// regulator text only mandates the code when the window is absent;
	// both together is flagged as a warning pending clarification.
	switch {
	case d.ValidityCode == nil && d.ValidityPeriod == nil:
		out = append(out, errAt(apperror.CodeRequiredFieldMissing, path+".validityCode",
			"either a validity code or a validity period is required"))
	case d.ValidityCode != nil && d.ValidityPeriod != nil:
		out = append(out, warnAt(apperror.CodeCrossFieldInconsistency, path+".validityCode",
			"both a validity code and a validity period are populated"))
	}
	if d.ValidityCode != nil {
		out = append(out, CheckField(*d.ValidityCode, FieldSpec{
			Path: path + ".validityCode", Kind: Enum, Required: true, Set: offer.DiscountValidityCodes,
		})...)
	}
	if d.ValidityPeriod != nil {
		out = append(out, CheckField(d.ValidityPeriod.From, FieldSpec{
			Path: path + ".validityPeriod.from", Kind: MonthYear, Required: true,
		})...)
		out = append(out, CheckField(d.ValidityPeriod.To, FieldSpec{
			Path: path + ".validityPeriod.to", Kind: MonthYear,
		})...)
		if d.ValidityPeriod.From != "" && d.ValidityPeriod.To != "" {
			from, err1 := offer.ParseMonthYear(d.ValidityPeriod.From)
			to, err2 := offer.ParseMonthYear(d.ValidityPeriod.To)
			if err1 == nil && err2 == nil && to.Before(from) {
				out = append(out, errAt(apperror.CodeCrossFieldInconsistency,
					path+".validityPeriod.to", "validity end %s precedes start %s",
					d.ValidityPeriod.To, d.ValidityPeriod.From))
			}
		}
	}

	out = append(out, CheckField(d.VATApplicable, FieldSpec{
		Path: path + ".vatApplicable", Kind: Enum, Required: true, Set: offer.YesNo,
	})...)
	out = append(out, CheckField(d.ConditionCode, FieldSpec{
		Path: path + ".conditionCode", Kind: Enum, Required: true, Set: offer.DiscountConditionCodes,
	})...)
	out = append(out, CheckField(d.ConditionDescription, FieldSpec{
		Path: path + ".conditionDescription", Kind: Text, MaxLen: 3000,
	})...)
	if d.ConditionCode == offer.CodeOther && !hasText(d.ConditionDescription) {
		out = append(out, errAt(apperror.CodeRequiredFieldMissing, path+".conditionDescription",
			"a description is required for condition %q (other)", offer.CodeOther))
	}

	if len(d.Prices) == 0 {
		out = append(out, missing(path+".prices", "at least one discount price"))
	}
	for j, pr := range d.Prices {
		out = append(out, checkDiscountPrice(fmt.Sprintf("%s.prices[%d]", path, j), pr)...)
	}
	return out
}

func checkDiscountPrice(path string, pr offer.DiscountPrice) []Finding {
	var out []Finding
	out = append(out, CheckField(pr.Type, FieldSpec{
		Path: path + ".type", Kind: Enum, Required: true, Set: offer.DiscountPriceTypes,
	})...)
	if pr.ValidFrom != nil && *pr.ValidFrom < 0 {
		out = append(out, errAt(apperror.CodeRange, path+".validFromConsumption",
			"consumption must not be negative"))
	}
	if pr.ValidFrom != nil && pr.ValidTo != nil && *pr.ValidFrom >= *pr.ValidTo {
		out = append(out, errAt(apperror.CodeCrossFieldInconsistency, path+".validToConsumption",
			"valid-to consumption %d must exceed valid-from %d", *pr.ValidTo, *pr.ValidFrom))
	}
	out = append(out, CheckField(pr.UnitOfMeasure, FieldSpec{
		Path: path + ".unitOfMeasure", Kind: Enum, Required: true, Set: offer.UnitsOfMeasure,
	})...)
	if err := types.CheckPrice(pr.Price); err != nil {
		out = append(out, errAt(apperror.CodeRange, path+".price", "%v", err))
	}
	return out
}

var additionalProductsRules = []Rule{
	{
		ID:      "additionalProducts.items",
		Section: offer.SectionAdditionalProducts,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.AdditionalProducts
			if s == nil {
				return nil
			}
			var out []Finding
			for i, p := range s.Items {
				pp := fmt.Sprintf("additionalProducts[%d]", i)
				out = append(out, CheckField(p.Name, FieldSpec{
					Path: pp + ".name", Kind: Text, Required: true, MaxLen: 255,
				})...)
				out = append(out, CheckField(p.Details, FieldSpec{
					Path: pp + ".details", Kind: Text, Required: true, MaxLen: 3000,
				})...)
				out = append(out, CheckField(p.MacroArea, FieldSpec{
					Path: pp + ".macroArea", Kind: Enum, Set: offer.ProductMacroAreas,
				})...)
				out = append(out, CheckField(p.MacroAreaDetails, FieldSpec{
					Path: pp + ".macroAreaDetails", Kind: Text, MaxLen: 3000,
				})...)
				if p.MacroArea == offer.CodeOther && !hasText(p.MacroAreaDetails) {
					out = append(out, errAt(apperror.CodeRequiredFieldMissing, pp+".macroAreaDetails",
						"details are required for macro-area %q (other)", offer.CodeOther))
				}
			}
			return out
		},
	},
}
