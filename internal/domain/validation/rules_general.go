package validation

// Rule tables for the identification, detail, contact and payment
// sections. Tables are declared in the regulator's field order so
// findings come out deterministically.

import (
	"fmt"

	"offerte/internal/core/apperror"
	"offerte/internal/domain/offer"
)

var identificationRules = []Rule{
	{
		ID:      "identification.present",
		Section: offer.SectionIdentification,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			if o.Identification == nil {
				return []Finding{missing("identification", "identification section")}
			}
			return nil
		},
	},
	{
		ID:      "identification.fields",
		Section: offer.SectionIdentification,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.Identification
			if s == nil {
				return nil
			}
			var out []Finding
			out = append(out, CheckField(s.VATNumber, FieldSpec{
				Path: "identification.vatNumber", Kind: UpperAlnum, Required: true, MaxLen: 16,
			})...)
			out = append(out, CheckField(s.OfferCode, FieldSpec{
				Path: "identification.offerCode", Kind: UpperAlnum, Required: true, MaxLen: 32,
			})...)
			return out
		},
	},
}

var offerDetailsRules = []Rule{
	{
		ID:      "offerDetails.present",
		Section: offer.SectionOfferDetails,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			if o.Details == nil {
				return []Finding{missing("offerDetails", "offer details section")}
			}
			return nil
		},
	},
	{
		ID:      "offerDetails.fields",
		Section: offer.SectionOfferDetails,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.Details
			if s == nil {
				return nil
			}
			var out []Finding
			out = append(out, CheckField(s.MarketType, FieldSpec{
				Path: "offerDetails.marketType", Kind: Enum, Required: true, Set: offer.MarketTypes,
			})...)
			out = append(out, CheckField(s.ClientType, FieldSpec{
				Path: "offerDetails.clientType", Kind: Enum, Required: true, Set: offer.ClientTypes,
			})...)
			out = append(out, CheckField(s.OfferType, FieldSpec{
				Path: "offerDetails.offerType", Kind: Enum, Required: true, Set: offer.OfferTypes,
			})...)
			out = append(out, checkEnumList("offerDetails.contractActivationTypes",
				s.ContractActivationTypes, offer.ContractActivationTypes, true)...)
			out = append(out, CheckField(s.Name, FieldSpec{
				Path: "offerDetails.name", Kind: Text, Required: true, MaxLen: 255,
			})...)
			out = append(out, CheckField(s.Description, FieldSpec{
				Path: "offerDetails.description", Kind: Text, Required: true, MaxLen: 3000,
			})...)
			if s.Duration != -1 && (s.Duration < 1 || s.Duration > 99) {
				out = append(out, errAt(apperror.CodeRange, "offerDetails.duration",
					"duration must be -1 (indeterminate) or between 1 and 99 months"))
			}
			out = append(out, CheckField(s.Guarantees, FieldSpec{
				Path: "offerDetails.guarantees", Kind: Text, Required: true, MaxLen: 3000,
			})...)
			return out
		},
	},
	{
		// The single-offer flag only has meaning for single-commodity
		// offers; a dual offer is joint by construction.
		ID:      "offerDetails.singleOffer",
		Section: offer.SectionOfferDetails,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.Details
			if s == nil {
				return nil
			}
			if s.MarketType != offer.MarketDual && s.SingleOffer == nil {
				return []Finding{missing("offerDetails.singleOffer", "single-offer flag")}
			}
			if s.SingleOffer != nil {
				return CheckField(*s.SingleOffer, FieldSpec{
					Path: "offerDetails.singleOffer", Kind: Enum, Required: true, Set: offer.YesNo,
				})
			}
			return nil
		},
	},
}

var activationMethodsRules = []Rule{
	{
		ID:      "activationMethods.present",
		Section: offer.SectionActivationMethods,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			if o.ActivationMethods == nil {
				return []Finding{missing("activationMethods", "activation methods section")}
			}
			return nil
		},
	},
	{
		ID:      "activationMethods.fields",
		Section: offer.SectionActivationMethods,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.ActivationMethods
			if s == nil {
				return nil
			}
			var out []Finding
			out = append(out, checkEnumList("activationMethods.methods",
				s.Methods, offer.ActivationMethodCodes, true)...)
			out = append(out, CheckField(s.OtherDescription, FieldSpec{
				Path: "activationMethods.otherDescription", Kind: Text, MaxLen: 3000,
			})...)
			if contains(s.Methods, offer.CodeOther) && !hasText(s.OtherDescription) {
				out = append(out, errAt(apperror.CodeRequiredFieldMissing,
					"activationMethods.otherDescription",
					"description is required when activation method %q (other) is selected", offer.CodeOther))
			}
			return out
		},
	},
}

var contactsRules = []Rule{
	{
		ID:      "contacts.present",
		Section: offer.SectionContacts,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			if o.Contacts == nil {
				return []Finding{missing("contacts", "contacts section")}
			}
			return nil
		},
	},
	{
		ID:      "contacts.fields",
		Section: offer.SectionContacts,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.Contacts
			if s == nil {
				return nil
			}
			var out []Finding
			out = append(out, CheckField(s.Phone, FieldSpec{
				Path: "contacts.phone", Kind: Phone, Required: true, MaxLen: 15,
			})...)
			out = append(out, CheckField(s.VendorURL, FieldSpec{
				Path: "contacts.vendorUrl", Kind: Text, MaxLen: 100,
			})...)
			out = append(out, CheckField(s.OfferURL, FieldSpec{
				Path: "contacts.offerUrl", Kind: Text, MaxLen: 100,
			})...)
			return out
		},
	},
}

var priceReferenceRules = []Rule{
	{
		// Mandatory only for variable-price offers.
		ID:      "energyPriceReference.presence",
		Section: offer.SectionEnergyPriceReference,
		Needs:   []offer.SectionID{offer.SectionOfferDetails},
		Apply: func(o *offer.Offer, _ Context) []Finding {
			if o.OfferType() == offer.OfferVariable && o.PriceReference == nil {
				return []Finding{errAt(apperror.CodeRequiredFieldMissing, "energyPriceReference",
					"an energy price index is required for variable-price offers")}
			}
			return nil
		},
	},
	{
		ID:      "energyPriceReference.fields",
		Section: offer.SectionEnergyPriceReference,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.PriceReference
			if s == nil {
				return nil
			}
			var out []Finding
			out = append(out, CheckField(s.Index, FieldSpec{
				Path: "energyPriceReference.index", Kind: Enum, Required: true, Set: offer.EnergyPriceIndexes,
			})...)
			out = append(out, CheckField(s.AlternativeDescription, FieldSpec{
				Path: "energyPriceReference.alternativeDescription", Kind: Text, MaxLen: 3000,
			})...)
			if s.Index == offer.CodeOther && !hasText(s.AlternativeDescription) {
				out = append(out, errAt(apperror.CodeRequiredFieldMissing,
					"energyPriceReference.alternativeDescription",
					"a description is required when the price index is %q (other)", offer.CodeOther))
			}
			return out
		},
	},
}

var validityPeriodRules = []Rule{
	{
		ID:      "validityPeriod.present",
		Section: offer.SectionValidityPeriod,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			if o.Validity == nil {
				return []Finding{missing("validityPeriod", "validity period section")}
			}
			return nil
		},
	},
	{
		ID:      "validityPeriod.fields",
		Section: offer.SectionValidityPeriod,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.Validity
			if s == nil {
				return nil
			}
			var out []Finding
			out = append(out, CheckField(s.StartDate, FieldSpec{
				Path: "validityPeriod.startDate", Kind: Timestamp, Required: true,
			})...)
			out = append(out, CheckField(s.EndDate, FieldSpec{
				Path: "validityPeriod.endDate", Kind: Timestamp, Required: true,
			})...)
			if len(out) > 0 {
				return out
			}
			start, err1 := offer.ParseTimestamp(s.StartDate)
			end, err2 := offer.ParseTimestamp(s.EndDate)
			if err1 == nil && err2 == nil && !end.After(start) {
				out = append(out, errAt(apperror.CodeCrossFieldInconsistency,
					"validityPeriod.endDate", "end date must be after start date"))
			}
			return out
		},
	},
}

var characteristicsRules = []Rule{
	{
		// The consumption window bounds a FLAT offer's fixed price.
		ID:      "offerCharacteristics.presence",
		Section: offer.SectionOfferCharacteristics,
		Needs:   []offer.SectionID{offer.SectionOfferDetails},
		Apply: func(o *offer.Offer, _ Context) []Finding {
			if o.OfferType() != offer.OfferFlat {
				return nil
			}
			s := o.Characteristics
			if s == nil {
				return []Finding{errAt(apperror.CodeRequiredFieldMissing, "offerCharacteristics",
					"consumption limits are required for FLAT offers")}
			}
			var out []Finding
			if s.ConsumptionMin == nil {
				out = append(out, missing("offerCharacteristics.consumptionMin", "minimum consumption"))
			}
			if s.ConsumptionMax == nil {
				out = append(out, missing("offerCharacteristics.consumptionMax", "maximum consumption"))
			}
			return out
		},
	},
	{
		ID:      "offerCharacteristics.ranges",
		Section: offer.SectionOfferCharacteristics,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.Characteristics
			if s == nil {
				return nil
			}
			var out []Finding
			if s.ConsumptionMin != nil && *s.ConsumptionMin < 0 {
				out = append(out, errAt(apperror.CodeRange,
					"offerCharacteristics.consumptionMin", "minimum consumption must not be negative"))
			}
			if s.ConsumptionMax != nil && *s.ConsumptionMax < 0 {
				out = append(out, errAt(apperror.CodeRange,
					"offerCharacteristics.consumptionMax", "maximum consumption must not be negative"))
			}
			if s.ConsumptionMin != nil && s.ConsumptionMax != nil && *s.ConsumptionMin > *s.ConsumptionMax {
				out = append(out, errAt(apperror.CodeCrossFieldInconsistency,
					"offerCharacteristics.consumptionMax",
					"maximum consumption %d is below minimum %d", *s.ConsumptionMax, *s.ConsumptionMin))
			}
			if s.PowerMin != nil && s.PowerMin.IsNegative() {
				out = append(out, errAt(apperror.CodeRange,
					"offerCharacteristics.powerMin", "minimum power must not be negative"))
			}
			if s.PowerMax != nil && s.PowerMax.IsNegative() {
				out = append(out, errAt(apperror.CodeRange,
					"offerCharacteristics.powerMax", "maximum power must not be negative"))
			}
			if s.PowerMin != nil && s.PowerMax != nil && s.PowerMin.GreaterThan(*s.PowerMax) {
				out = append(out, errAt(apperror.CodeCrossFieldInconsistency,
					"offerCharacteristics.powerMax", "maximum power is below minimum power"))
			}
			return out
		},
	},
}

var dualOfferRules = []Rule{
	{
		// A dual-fuel offer must name its joint single-commodity
		// offers; conversely the section has no meaning elsewhere.
		ID:      "dualOffer.presence",
		Section: offer.SectionDualOffer,
		Needs:   []offer.SectionID{offer.SectionOfferDetails},
		Apply: func(o *offer.Offer, _ Context) []Finding {
			switch {
			case o.MarketType() == offer.MarketDual && o.Dual == nil:
				return []Finding{errAt(apperror.CodeRequiredFieldMissing, "dualOffer",
					"joint offer codes are required for dual-fuel offers")}
			case o.MarketType() != offer.MarketDual && o.Dual != nil:
				return []Finding{errAt(apperror.CodeCrossSection, "dualOffer",
					"joint offer codes apply to dual-fuel offers only")}
			}
			return nil
		},
	},
	{
		ID:      "dualOffer.fields",
		Section: offer.SectionDualOffer,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.Dual
			if s == nil {
				return nil
			}
			var out []Finding
			if len(s.ElectricityOfferCodes) == 0 {
				out = append(out, missing("dualOffer.electricityOfferCodes", "at least one electricity offer code"))
			}
			for i, c := range s.ElectricityOfferCodes {
				out = append(out, CheckField(c, FieldSpec{
					Path: fmt.Sprintf("dualOffer.electricityOfferCodes[%d]", i), Kind: UpperAlnum, Required: true, MaxLen: 32,
				})...)
			}
			if len(s.GasOfferCodes) == 0 {
				out = append(out, missing("dualOffer.gasOfferCodes", "at least one gas offer code"))
			}
			for i, c := range s.GasOfferCodes {
				out = append(out, CheckField(c, FieldSpec{
					Path: fmt.Sprintf("dualOffer.gasOfferCodes[%d]", i), Kind: UpperAlnum, Required: true, MaxLen: 32,
				})...)
			}
			return out
		},
	},
}

var paymentMethodsRules = []Rule{
	{
		ID:      "paymentMethods.present",
		Section: offer.SectionPaymentMethods,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			if o.PaymentMethods == nil {
				return []Finding{missing("paymentMethods", "payment methods section")}
			}
			return nil
		},
	},
	{
		ID:      "paymentMethods.fields",
		Section: offer.SectionPaymentMethods,
		Apply: func(o *offer.Offer, _ Context) []Finding {
			s := o.PaymentMethods
			if s == nil {
				return nil
			}
			var out []Finding
			out = append(out, checkEnumList("paymentMethods.methods",
				s.Methods, offer.PaymentMethodCodes, true)...)
			out = append(out, CheckField(s.OtherDescription, FieldSpec{
				Path: "paymentMethods.otherDescription", Kind: Text, MaxLen: 3000,
			})...)
			if contains(s.Methods, offer.CodeOther) && !hasText(s.OtherDescription) {
				out = append(out, errAt(apperror.CodeRequiredFieldMissing,
					"paymentMethods.otherDescription",
					"description is required when payment method %q (other) is selected", offer.CodeOther))
			}
			return out
		},
	},
}
