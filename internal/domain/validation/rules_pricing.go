package validation

// Rule tables for the price-structure sections: regulated components,
// time-band configuration, weekly schedules, dispatching and the
// seller's own price components.

import (
	"fmt"

	"github.com/shopspring/decimal"

	"offerte/internal/core/apperror"
	"offerte/internal/core/types"
	"offerte/internal/domain/offer"
	"offerte/internal/domain/pricing"
	"offerte/internal/domain/timeband"
)

var regulatedComponentsRules = []Rule{
	{
		// Optional section, but each code must belong to the subset the
		// regulator defines for the offer's market.
		ID:      "regulatedComponents.codes",
		Section: offer.SectionRegulatedComponents,
		Needs:   []offer.SectionID{offer.SectionOfferDetails},
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.RegulatedComponents
			if s == nil {
				return nil
			}
			allowed := offer.RegulatedComponentsFor(o.MarketType())
			var out []Finding
			for i, c := range s.Codes {
				p := fmt.Sprintf("regulatedComponents.codes[%d]", i)
				known := offer.RegulatedComponentsElectricity.Contains(c) ||
					offer.RegulatedComponentsGas.Contains(c)
				if !known {
					out = append(out, errAt(apperror.CodeUnknownEnumValue, p,
						"%q is not a valid regulated component code", c))
					continue
				}
				legal := false
				for _, set := range allowed {
					if set.Contains(c) {
						legal = true
						break
					}
				}
				if !legal {
					out = append(out, errAt(apperror.CodeCrossSection, p,
						"regulated component %q does not apply to market %q", c, o.MarketType()))
				}
			}
			return out
		},
	},
}

var priceTypeRules = []Rule{
	{
		// Time-banded pricing exists for metered electricity only:
		// required there, meaningless for gas and for FLAT offers.
		ID:      "priceType.presence",
		Section: offer.SectionPriceType,
		Needs:   []offer.SectionID{offer.SectionOfferDetails},
		Apply: func(o *offer.Offer, _ Context) []Finding {
			needsBands := o.MarketType() == offer.MarketElectricity && o.OfferType() != offer.OfferFlat
			switch {
			case needsBands && o.PriceType == nil:
				return []Finding{errAt(apperror.CodeRequiredFieldMissing, "priceType",
					"a time-band configuration is required for non-FLAT electricity offers")}
			case o.MarketType() == offer.MarketGas && o.PriceType != nil:
				return []Finding{errAt(apperror.CodeCrossSection, "priceType",
					"time-band configurations do not apply to gas offers")}
			}
			return nil
		},
	},
	{
		ID:      "priceType.fields",
		Section: offer.SectionPriceType,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.PriceType
			if s == nil {
				return nil
			}
			return CheckField(s.TimeBandConfiguration, FieldSpec{
				Path: "priceType.timeBandConfiguration", Kind: Enum, Required: true,
				Set: offer.TimeBandConfigurations,
			})
		},
	},
}

var weeklyTimeBandsRules = []Rule{
	{
		// Custom band sets need an explicit weekly calendar; standard
		// configurations carry the regulator's own calendar.
		ID:      "weeklyTimeBands.presence",
		Section: offer.SectionWeeklyTimeBands,
		Needs:   []offer.SectionID{offer.SectionPriceType},
		Apply: func(o *offer.Offer, _ Context) []Finding {
			if o.PriceType != nil && offer.RequiresWeeklyBands(o.PriceType.TimeBandConfiguration) &&
				o.TimeBands == nil {
				return []Finding{errAt(apperror.CodeRequiredFieldMissing, "weeklyTimeBands",
					"weekly schedules are required for time-band configuration %q",
					o.PriceType.TimeBandConfiguration)}
			}
			return nil
		},
	},
	{
		// The reverse direction must not wait for a band configuration:
		// an absent one (gas, FLAT) already means the calendar is illegal.
		ID:      "weeklyTimeBands.applicability",
		Section: offer.SectionWeeklyTimeBands,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			custom := o.PriceType != nil && offer.RequiresWeeklyBands(o.PriceType.TimeBandConfiguration)
			if o.TimeBands != nil && !custom {
				return []Finding{errAt(apperror.CodeCrossSection, "weeklyTimeBands",
					"weekly schedules apply to custom band configurations only")}
			}
			return nil
		},
	},
	{
		// Schedule syntax is checked whenever schedules are present, the
		// band-count cap only once a configuration names the band count.
		ID:      "weeklyTimeBands.schedules",
		Section: offer.SectionWeeklyTimeBands,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.TimeBands
			if s == nil {
				return nil
			}
			bands := 0
			if o.PriceType != nil {
				bands = offer.BandCount(o.PriceType.TimeBandConfiguration)
			}
			var out []Finding
			for _, day := range s.Days() {
				p := "weeklyTimeBands." + day.Name
				if day.Schedule == "" {
					out = append(out, missing(p, "schedule"))
					continue
				}
				segments, err := timeband.Decode(day.Schedule)
				if err != nil {
					out = append(out, errAt(apperror.CodeFormat, p, "invalid schedule: %v", err))
					continue
				}
				if !timeband.Complete(segments) {
					out = append(out, warnAt(apperror.CodeRange, p,
						"schedule ends at quarter-hour %d, not covering the full day",
						segments[len(segments)-1].End))
				}
				if bands > 0 && timeband.MaxBandUsed(segments) > bands {
					out = append(out, errAt(apperror.CodeCrossSection, p,
						"schedule references band %d but configuration %q defines %d bands",
						timeband.MaxBandUsed(segments), o.PriceType.TimeBandConfiguration, bands))
				}
			}
			return out
		},
	},
}

var dispatchingRules = []Rule{
	{
		ID:      "dispatching.presence",
		Section: offer.SectionDispatching,
		Needs:   []offer.SectionID{offer.SectionOfferDetails},
		Apply: func(o *offer.Offer, _ Context) []Finding {
			switch {
			case o.MarketType() == offer.MarketElectricity && o.Dispatching == nil:
				return []Finding{errAt(apperror.CodeRequiredFieldMissing, "dispatching",
					"dispatching components are required for electricity offers")}
			case o.MarketType() == offer.MarketGas && o.Dispatching != nil:
				return []Finding{errAt(apperror.CodeCrossSection, "dispatching",
					"dispatching components do not apply to gas offers")}
			}
			return nil
		},
	},
	{
		ID:      "dispatching.items",
		Section: offer.SectionDispatching,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.Dispatching
			if s == nil {
				return nil
			}
			var out []Finding
			if len(s.Items) == 0 {
				out = append(out, missing("dispatching", "at least one dispatching component"))
			}
			for i, item := range s.Items {
				p := fmt.Sprintf("dispatching[%d]", i)
				out = append(out, CheckField(item.Type, FieldSpec{
					Path: p + ".type", Kind: Enum, Required: true, Set: offer.DispatchingTypes,
				})...)
				if item.Type == offer.CodeOther && item.Value == nil {
					out = append(out, errAt(apperror.CodeRequiredFieldMissing, p+".value",
						"a value is required for dispatching type %q (other)", offer.CodeOther))
				}
				if item.Value != nil {
					if err := types.CheckPrice(*item.Value); err != nil {
						out = append(out, errAt(apperror.CodeRange, p+".value", "%v", err))
					}
				}
				out = append(out, CheckField(item.Name, FieldSpec{
					Path: p + ".name", Kind: Text, Required: true, MaxLen: 25,
				})...)
				out = append(out, CheckField(item.Description, FieldSpec{
					Path: p + ".description", Kind: Text, MaxLen: 255,
				})...)
			}
			return out
		},
	},
}

var companyComponentsRules = []Rule{
	{
		ID:      "companyComponents.items",
		Section: offer.SectionCompanyComponents,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.CompanyComponents
			if s == nil {
				return nil
			}
			var out []Finding
			for i, comp := range s.Items {
				p := fmt.Sprintf("companyComponents[%d]", i)
				out = append(out, CheckField(comp.Name, FieldSpec{
					Path: p + ".name", Kind: Text, Required: true, MaxLen: 255,
				})...)
				out = append(out, CheckField(comp.Description, FieldSpec{
					Path: p + ".description", Kind: Text, Required: true, MaxLen: 3000,
				})...)
				out = append(out, CheckField(comp.Kind, FieldSpec{
					Path: p + ".kind", Kind: Enum, Required: true, Set: offer.ComponentKinds,
				})...)
				out = append(out, CheckField(comp.MacroArea, FieldSpec{
					Path: p + ".macroArea", Kind: Enum, Required: true, Set: offer.MacroAreas,
				})...)
				for j, iv := range comp.Intervals {
					out = append(out, checkPriceInterval(fmt.Sprintf("%s.priceIntervals[%d]", p, j), iv)...)
				}
				out = append(out, checkIntervalBrackets(p, comp.Intervals)...)
			}
			return out
		},
	},
	{
		// Gas components are billed per interval, so a component with
		// no intervals cannot be priced at all.
		ID:      "companyComponents.gasIntervals",
		Section: offer.SectionCompanyComponents,
		Needs:   []offer.SectionID{offer.SectionOfferDetails},
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.CompanyComponents
			if s == nil || o.MarketType() != offer.MarketGas {
				return nil
			}
			var out []Finding
			for i, comp := range s.Items {
				if len(comp.Intervals) == 0 {
					out = append(out, errAt(apperror.CodeCrossSection,
						fmt.Sprintf("companyComponents[%d].priceIntervals", i),
						"gas component %q needs at least one price interval", comp.Name))
				}
			}
			return out
		},
	},
	{
		// For energy-priced electricity components the regulator wants
		// one interval per tariff band, or a single un-banded interval.
		ID:      "companyComponents.bandIntervals",
		Section: offer.SectionCompanyComponents,
		Needs:   []offer.SectionID{offer.SectionOfferDetails, offer.SectionPriceType},
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.CompanyComponents
			if s == nil || o.MarketType() != offer.MarketElectricity || o.PriceType == nil {
				return nil
			}
			bands := offer.BandCount(o.PriceType.TimeBandConfiguration)
			if bands == 0 {
				return nil
			}
			var out []Finding
			for i, comp := range s.Items {
				if !bandCountConstrained(comp) {
					continue
				}
				p := fmt.Sprintf("companyComponents[%d].priceIntervals", i)
				if len(comp.Intervals) == 1 && comp.Intervals[0].Band == nil {
					continue
				}
				if len(comp.Intervals) != bands {
					out = append(out, errAt(apperror.CodeCrossSection, p,
						"component %q has %d price intervals, configuration %q requires one per band (%d) or a single un-banded interval",
						comp.Name, len(comp.Intervals), o.PriceType.TimeBandConfiguration, bands))
				}
			}
			return out
		},
	},
}

// bandCountConstrained reports whether the interval-count rule applies:
// energy-fee macro-areas priced in EUR/kWh. Other combinations carry no
// additional constraint.
func bandCountConstrained(comp offer.CompanyComponent) bool {
	if comp.MacroArea != "02" && comp.MacroArea != "04" {
		return false
	}
	for _, iv := range comp.Intervals {
		if iv.UnitOfMeasure != "03" {
			return false
		}
	}
	return len(comp.Intervals) > 0
}

func checkPriceInterval(path string, iv offer.PriceInterval) []Finding {
	var out []Finding
	if iv.Band != nil {
		out = append(out, CheckField(*iv.Band, FieldSpec{
			Path: path + ".band", Kind: Enum, Required: true, Set: offer.BandCodes,
		})...)
	}
	if iv.ConsumptionFrom != nil && *iv.ConsumptionFrom < 0 {
		out = append(out, errAt(apperror.CodeRange, path+".consumptionFrom",
			"consumption must not be negative"))
	}
	if iv.ConsumptionFrom != nil && iv.ConsumptionTo != nil && *iv.ConsumptionFrom >= *iv.ConsumptionTo {
		out = append(out, errAt(apperror.CodeCrossFieldInconsistency, path+".consumptionTo",
			"consumption-to %d must exceed consumption-from %d", *iv.ConsumptionTo, *iv.ConsumptionFrom))
	}
	if err := types.CheckPrice(iv.Price); err != nil {
		out = append(out, errAt(apperror.CodeRange, path+".price", "%v", err))
	}
	out = append(out, CheckField(iv.UnitOfMeasure, FieldSpec{
		Path: path + ".unitOfMeasure", Kind: Enum, Required: true, Set: offer.UnitsOfMeasure,
	})...)
	out = append(out, CheckField(iv.ValidFrom, FieldSpec{
		Path: path + ".validFrom", Kind: MonthYear,
	})...)
	out = append(out, CheckField(iv.ValidTo, FieldSpec{
		Path: path + ".validTo", Kind: MonthYear,
	})...)
	if iv.ValidFrom != "" && iv.ValidTo != "" {
		from, err1 := offer.ParseMonthYear(iv.ValidFrom)
		to, err2 := offer.ParseMonthYear(iv.ValidTo)
		if err1 == nil && err2 == nil && !to.After(from) {
			out = append(out, errAt(apperror.CodeCrossFieldInconsistency, path+".validTo",
				"validity end %s must follow start %s", iv.ValidTo, iv.ValidFrom))
		}
	}
	return out
}

// checkIntervalBrackets runs the step-wise evaluator in validation mode
// over the intervals that declare consumption bounds.
func checkIntervalBrackets(path string, intervals []offer.PriceInterval) []Finding {
	var brackets []pricing.Bracket
	for _, iv := range intervals {
		if iv.ConsumptionFrom == nil {
			return nil // un-banded or band-keyed intervals: no bracket semantics
		}
		b := pricing.Bracket{From: decimal.NewFromInt(*iv.ConsumptionFrom), Price: iv.Price}
		if iv.ConsumptionTo != nil {
			to := decimal.NewFromInt(*iv.ConsumptionTo)
			b.To = &to
		}
		brackets = append(brackets, b)
	}
	if len(brackets) < 2 {
		return nil
	}
	var out []Finding
	for _, issue := range pricing.CheckBrackets(brackets) {
		p := path + ".priceIntervals"
		if issue.Index >= 0 {
			p = fmt.Sprintf("%s[%d]", p, issue.Index)
		}
		out = append(out, errAt(apperror.CodeCrossFieldInconsistency, p, "%s", issue.Message))
	}
	return out
}
