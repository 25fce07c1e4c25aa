package offer

// SectionID identifies one of the regulator's offer sections. The
// declared order below is the regulator's section sequence: validation
// findings are reported and XML elements are emitted in this order.
type SectionID string

const (
	SectionIdentification        SectionID = "identification"
	SectionOfferDetails          SectionID = "offerDetails"
	SectionActivationMethods     SectionID = "activationMethods"
	SectionContacts              SectionID = "contacts"
	SectionEnergyPriceReference  SectionID = "energyPriceReference"
	SectionValidityPeriod        SectionID = "validityPeriod"
	SectionOfferCharacteristics  SectionID = "offerCharacteristics"
	SectionDualOffer             SectionID = "dualOffer"
	SectionPaymentMethods        SectionID = "paymentMethods"
	SectionRegulatedComponents   SectionID = "regulatedComponents"
	SectionPriceType             SectionID = "priceType"
	SectionWeeklyTimeBands       SectionID = "weeklyTimeBands"
	SectionDispatching           SectionID = "dispatching"
	SectionCompanyComponents     SectionID = "companyComponents"
	SectionContractualConditions SectionID = "contractualConditions"
	SectionZoneOffers            SectionID = "zoneOffers"
	SectionDiscounts             SectionID = "discounts"
	SectionAdditionalProducts    SectionID = "additionalProducts"
)

// SectionOrder is the fixed regulator sequence.
var SectionOrder = []SectionID{
	SectionIdentification,
	SectionOfferDetails,
	SectionActivationMethods,
	SectionContacts,
	SectionEnergyPriceReference,
	SectionValidityPeriod,
	SectionOfferCharacteristics,
	SectionDualOffer,
	SectionPaymentMethods,
	SectionRegulatedComponents,
	SectionPriceType,
	SectionWeeklyTimeBands,
	SectionDispatching,
	SectionCompanyComponents,
	SectionContractualConditions,
	SectionZoneOffers,
	SectionDiscounts,
	SectionAdditionalProducts,
}

// IsValidSection reports whether id names a known section.
func IsValidSection(id SectionID) bool {
	for _, s := range SectionOrder {
		if s == id {
			return true
		}
	}
	return false
}

// Has reports whether a section has been filled in on the aggregate.
func (o *Offer) Has(id SectionID) bool {
	switch id {
	case SectionIdentification:
		return o.Identification != nil
	case SectionOfferDetails:
		return o.Details != nil
	case SectionActivationMethods:
		return o.ActivationMethods != nil
	case SectionContacts:
		return o.Contacts != nil
	case SectionEnergyPriceReference:
		return o.PriceReference != nil
	case SectionValidityPeriod:
		return o.Validity != nil
	case SectionOfferCharacteristics:
		return o.Characteristics != nil
	case SectionDualOffer:
		return o.Dual != nil
	case SectionPaymentMethods:
		return o.PaymentMethods != nil
	case SectionRegulatedComponents:
		return o.RegulatedComponents != nil
	case SectionPriceType:
		return o.PriceType != nil
	case SectionWeeklyTimeBands:
		return o.TimeBands != nil
	case SectionDispatching:
		return o.Dispatching != nil
	case SectionCompanyComponents:
		return o.CompanyComponents != nil
	case SectionContractualConditions:
		return o.ContractualConditions != nil
	case SectionZoneOffers:
		return o.ZoneOffers != nil
	case SectionDiscounts:
		return o.Discounts != nil
	case SectionAdditionalProducts:
		return o.AdditionalProducts != nil
	default:
		return false
	}
}
