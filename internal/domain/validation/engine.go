package validation

import (
	"offerte/internal/domain/offer"
)

// Context exposes sections a validation stage does not own yet. The UI
// collaborator collects sections across wizard stages; a few rules need
// to read a later stage's section (early-withdrawal gating reads the
// validity period). Passing the snapshot explicitly keeps rules free of
// hidden coupling and makes partial-vs-full validation testable.
type Context struct {
	// Validity is the ValidityPeriod snapshot, possibly not yet
	// finalized by its own stage. Nil when genuinely unknown.
	Validity *offer.ValidityPeriod
}

// Rule is one named validation rule. Rules are pure: they read the
// aggregate and context, never mutate them, and never panic.
type Rule struct {
	// ID is stable across versions and names what the rule checks.
	ID string

	// Section is the home section; its findings are attributed to it
	// and ValidateSection runs only the home section's rules.
	Section offer.SectionID

	// Needs lists discriminant sections the rule reads besides its
	// home section. While any of them is absent the rule is not yet
	// decidable and partial validation skips it.
	Needs []offer.SectionID

	Apply func(o *offer.Offer, ctx Context) []Finding
}

// validity resolves the validity period from the aggregate first, then
// from the cross-stage context.
func validity(o *offer.Offer, ctx Context) *offer.ValidityPeriod {
	if o.Validity != nil {
		return o.Validity
	}
	return ctx.Validity
}

// available reports whether a section can be read, either from the
// aggregate or through the context.
func available(o *offer.Offer, ctx Context, id offer.SectionID) bool {
	if id == offer.SectionValidityPeriod && ctx.Validity != nil {
		return true
	}
	return o.Has(id)
}

func decidable(o *offer.Offer, ctx Context, r Rule) bool {
	for _, need := range r.Needs {
		if !available(o, ctx, need) {
			return false
		}
	}
	return true
}

// ValidateSection runs partial validation for one section during data
// entry: the section's own field rules plus every already-resolvable
// cross rule. Rules whose discriminant sections are not present yet are
// skipped, not failed. Always returns a result, never panics.
func ValidateSection(o *offer.Offer, section offer.SectionID, ctx Context) Result {
	var res Result
	if o == nil {
		res.add(missing(string(section), "offer"))
		return res
	}
	for _, r := range rulesFor(section) {
		if !decidable(o, ctx, r) {
			continue
		}
		res.add(r.Apply(o, ctx)...)
	}
	return res
}

// ValidateComplete runs full cross-section validation before
// serialization. Every rule is evaluated against the complete
// aggregate; a rule that still cannot be decided points at a missing
// mandatory section, which is itself reported, so the result is
// definite: zero error findings means the offer is serializable.
func ValidateComplete(o *offer.Offer) Result {
	var res Result
	if o == nil {
		res.add(missing("offer", "offer"))
		return res
	}
	ctx := Context{Validity: o.Validity}
	for _, section := range offer.SectionOrder {
		for _, r := range rulesFor(section) {
			if !decidable(o, ctx, r) {
				continue
			}
			res.add(r.Apply(o, ctx)...)
		}
	}
	return res
}

// rulesFor returns a section's rules in declaration order.
func rulesFor(section offer.SectionID) []Rule {
	return sectionRules[section]
}

// sectionRules indexes the rule tables declared in the rules files.
var sectionRules = map[offer.SectionID][]Rule{
	offer.SectionIdentification:        identificationRules,
	offer.SectionOfferDetails:          offerDetailsRules,
	offer.SectionActivationMethods:     activationMethodsRules,
	offer.SectionContacts:              contactsRules,
	offer.SectionEnergyPriceReference:  priceReferenceRules,
	offer.SectionValidityPeriod:        validityPeriodRules,
	offer.SectionOfferCharacteristics:  characteristicsRules,
	offer.SectionDualOffer:             dualOfferRules,
	offer.SectionPaymentMethods:        paymentMethodsRules,
	offer.SectionRegulatedComponents:   regulatedComponentsRules,
	offer.SectionPriceType:             priceTypeRules,
	offer.SectionWeeklyTimeBands:       weeklyTimeBandsRules,
	offer.SectionDispatching:           dispatchingRules,
	offer.SectionCompanyComponents:     companyComponentsRules,
	offer.SectionContractualConditions: contractualConditionsRules,
	offer.SectionZoneOffers:            zoneOffersRules,
	offer.SectionDiscounts:             discountsRules,
	offer.SectionAdditionalProducts:    additionalProductsRules,
}
