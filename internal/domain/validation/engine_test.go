package validation

import (
	"strings"
	"testing"

	"offerte/internal/core/apperror"
	"offerte/internal/core/types"
	"offerte/internal/domain/offer"
)

func strPtr(s string) *string { return &s }

func i64Ptr(v int64) *int64 { return &v }

func pricePtr(s string) *types.Price {
	p := types.MustPrice(s)
	return &p
}

// electricityOffer is a complete fixed-price electricity offer that
// passes every rule.
func electricityOffer() *offer.Offer {
	return &offer.Offer{
		Identification: &offer.Identification{
			VATNumber: "12345678901",
			OfferCode: "LUCE2024FIX",
		},
		Details: &offer.OfferDetails{
			MarketType:              offer.MarketElectricity,
			SingleOffer:             strPtr(offer.Yes),
			ClientType:              "01",
			OfferType:               offer.OfferFixed,
			ContractActivationTypes: []string{"01"},
			Name:                    "Luce Casa Fissa",
			Description:             "Fixed-price electricity for domestic clients.",
			Duration:                12,
			Guarantees:              "No security deposit is required.",
		},
		ActivationMethods: &offer.ActivationMethods{Methods: []string{"02"}},
		Contacts:          &offer.Contacts{Phone: "800123456"},
		Validity: &offer.ValidityPeriod{
			StartDate: "01/03/2024_00:00:00",
			EndDate:   "30/06/2024_23:59:59",
		},
		PaymentMethods: &offer.PaymentMethods{Methods: []string{"01"}},
		PriceType:      &offer.PriceType{TimeBandConfiguration: "03"},
		Dispatching: &offer.Dispatching{Items: []offer.DispatchingItem{
			{Type: "01", Name: "Dispatching"},
		}},
	}
}

// gasOffer is a complete fixed-price gas offer that passes every rule.
func gasOffer() *offer.Offer {
	return &offer.Offer{
		Identification: &offer.Identification{
			VATNumber: "12345678901",
			OfferCode: "GAS2024FIX",
		},
		Details: &offer.OfferDetails{
			MarketType:              offer.MarketGas,
			SingleOffer:             strPtr(offer.Yes),
			ClientType:              "01",
			OfferType:               offer.OfferFixed,
			ContractActivationTypes: []string{"01"},
			Name:                    "Gas Casa Fissa",
			Description:             "Fixed-price gas for domestic clients.",
			Duration:                12,
			Guarantees:              "No security deposit is required.",
		},
		ActivationMethods: &offer.ActivationMethods{Methods: []string{"02"}},
		Contacts:          &offer.Contacts{Phone: "800123456"},
		Validity: &offer.ValidityPeriod{
			StartDate: "01/03/2024_00:00:00",
			EndDate:   "30/06/2024_23:59:59",
		},
		PaymentMethods: &offer.PaymentMethods{Methods: []string{"01"}},
		CompanyComponents: &offer.CompanyComponents{Items: []offer.CompanyComponent{
			{
				Name:        "Quota vendita",
				Description: "Sales fee applied to metered consumption.",
				Kind:        "01",
				MacroArea:   "01",
				Intervals: []offer.PriceInterval{
					{Price: types.MustPrice("0.05"), UnitOfMeasure: "04"},
				},
			},
		}},
	}
}

func findingsAt(res Result, path string) []Finding {
	var out []Finding
	for _, f := range res.Findings {
		if f.Path == path {
			out = append(out, f)
		}
	}
	return out
}

func hasCode(findings []Finding, code string) bool {
	for _, f := range findings {
		if f.Code == code {
			return true
		}
	}
	return false
}

func TestValidateCompleteElectricityOfferPasses(t *testing.T) {
	res := ValidateComplete(electricityOffer())
	if !res.IsEmpty() {
		t.Errorf("expected no findings, got %v", res.Findings)
	}
}

func TestValidateCompleteGasOfferPasses(t *testing.T) {
	res := ValidateComplete(gasOffer())
	if !res.IsEmpty() {
		t.Errorf("expected no findings, got %v", res.Findings)
	}
}

func TestValidateCompleteEmptyOfferReportsRequiredSections(t *testing.T) {
	res := ValidateComplete(&offer.Offer{})
	if !res.HasErrors() {
		t.Fatal("expected errors for an empty offer")
	}
	for _, path := range []string{
		"identification", "offerDetails", "activationMethods",
		"contacts", "validityPeriod", "paymentMethods",
	} {
		if len(findingsAt(res, path)) == 0 {
			t.Errorf("expected a finding for missing section %s", path)
		}
	}
}

func TestGasComponentWithoutIntervals(t *testing.T) {
	o := gasOffer()
	o.CompanyComponents.Items[0].Intervals = nil

	res := ValidateComplete(o)
	found := findingsAt(res, "companyComponents[0].priceIntervals")
	if len(found) != 1 {
		t.Fatalf("expected exactly one finding at companyComponents[0].priceIntervals, got %v", res.Findings)
	}
	if found[0].Code != apperror.CodeCrossSection {
		t.Errorf("expected %s, got %s", apperror.CodeCrossSection, found[0].Code)
	}
	if found[0].Severity != SeverityError {
		t.Errorf("expected error severity, got %s", found[0].Severity)
	}
}

func TestElectricityComponentWithoutIntervalsIsAccepted(t *testing.T) {
	o := electricityOffer()
	o.CompanyComponents = &offer.CompanyComponents{Items: []offer.CompanyComponent{
		{
			Name:        "Quota fissa",
			Description: "Fixed commercialization fee.",
			Kind:        "01",
			MacroArea:   "01",
		},
	}}

	res := ValidateComplete(o)
	if found := findingsAt(res, "companyComponents[0].priceIntervals"); len(found) != 0 {
		t.Errorf("expected no interval findings for electricity, got %v", found)
	}
}

func TestEarlyWithdrawalGate(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		wantError bool
	}{
		{"start before 2024", "15/12/2023_00:00:00", true},
		{"start after cutoff", "02/01/2024_00:00:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := electricityOffer()
			o.Validity.StartDate = tt.startDate
			o.ContractualConditions = &offer.ContractualConditions{Items: []offer.ContractualCondition{
				{
					Type:        offer.ConditionEarlyWithdrawal,
					Description: "A charge applies on withdrawal before the natural end.",
					Limiting:    offer.No,
				},
			}}

			res := ValidateComplete(o)
			found := findingsAt(res, "contractualConditions[0].type")
			if tt.wantError {
				if !hasCode(found, apperror.CodeCrossSection) {
					t.Errorf("expected a cross-section finding, got %v", res.Findings)
				}
			} else if len(found) != 0 {
				t.Errorf("expected no findings, got %v", found)
			}
		})
	}
}

func TestEarlyWithdrawalPartialValidation(t *testing.T) {
	o := &offer.Offer{
		ContractualConditions: &offer.ContractualConditions{Items: []offer.ContractualCondition{
			{
				Type:        offer.ConditionEarlyWithdrawal,
				Description: "A charge applies on withdrawal before the natural end.",
				Limiting:    offer.No,
			},
		}},
	}

	// Without the validity period the gate is undecidable and skipped.
	res := ValidateSection(o, offer.SectionContractualConditions, Context{})
	if !res.IsEmpty() {
		t.Errorf("expected the gate to be skipped, got %v", res.Findings)
	}

	// The wizard's context supplies the validity period collected in a
	// later stage, making the gate decidable.
	ctx := Context{Validity: &offer.ValidityPeriod{
		StartDate: "15/12/2023_00:00:00",
		EndDate:   "30/06/2024_23:59:59",
	}}
	res = ValidateSection(o, offer.SectionContractualConditions, ctx)
	found := findingsAt(res, "contractualConditions[0].type")
	if !hasCode(found, apperror.CodeCrossSection) {
		t.Errorf("expected a cross-section finding, got %v", res.Findings)
	}
}

func TestPartialValidationSkipsUndecidableRules(t *testing.T) {
	// Without offer details the variable-price requirement cannot be
	// decided, so an absent price reference is not reported yet.
	res := ValidateSection(&offer.Offer{}, offer.SectionEnergyPriceReference, Context{})
	if !res.IsEmpty() {
		t.Errorf("expected no findings, got %v", res.Findings)
	}

	o := &offer.Offer{Details: &offer.OfferDetails{
		MarketType: offer.MarketElectricity,
		OfferType:  offer.OfferVariable,
	}}
	res = ValidateSection(o, offer.SectionEnergyPriceReference, Context{})
	if !hasCode(findingsAt(res, "energyPriceReference"), apperror.CodeRequiredFieldMissing) {
		t.Errorf("expected a missing price reference finding, got %v", res.Findings)
	}
}

func TestBandIntervalCount(t *testing.T) {
	component := func(bands ...string) offer.CompanyComponent {
		c := offer.CompanyComponent{
			Name:        "Quota energia",
			Description: "Energy fee per band.",
			Kind:        "01",
			MacroArea:   "02",
		}
		for _, b := range bands {
			band := b
			c.Intervals = append(c.Intervals, offer.PriceInterval{
				Band: &band, Price: types.MustPrice("0.1"), UnitOfMeasure: "03",
			})
		}
		return c
	}

	tests := []struct {
		name      string
		comp      offer.CompanyComponent
		wantError bool
	}{
		{"one interval per band", component("01", "02", "03"), false},
		{"too few intervals", component("01", "02"), true},
		{
			"single un-banded interval",
			offer.CompanyComponent{
				Name:        "Quota energia",
				Description: "Energy fee, single price.",
				Kind:        "01",
				MacroArea:   "02",
				Intervals: []offer.PriceInterval{
					{Price: types.MustPrice("0.1"), UnitOfMeasure: "03"},
				},
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := electricityOffer() // configuration "03" defines three bands
			o.CompanyComponents = &offer.CompanyComponents{Items: []offer.CompanyComponent{tt.comp}}

			res := ValidateComplete(o)
			found := findingsAt(res, "companyComponents[0].priceIntervals")
			if tt.wantError && !hasCode(found, apperror.CodeCrossSection) {
				t.Errorf("expected a band-count finding, got %v", res.Findings)
			}
			if !tt.wantError && len(found) != 0 {
				t.Errorf("expected no findings, got %v", found)
			}
		})
	}
}

func TestDualOfferConsistency(t *testing.T) {
	o := electricityOffer()
	o.Dual = &offer.DualOffer{
		ElectricityOfferCodes: []string{"LUCE2024FIX"},
		GasOfferCodes:         []string{"GAS2024FIX"},
	}
	res := ValidateComplete(o)
	if !hasCode(findingsAt(res, "dualOffer"), apperror.CodeCrossSection) {
		t.Errorf("expected a cross-section finding for dual section on a single market, got %v", res.Findings)
	}

	o = electricityOffer()
	o.Details.MarketType = offer.MarketDual
	o.Details.SingleOffer = nil
	res = ValidateComplete(o)
	if !hasCode(findingsAt(res, "dualOffer"), apperror.CodeRequiredFieldMissing) {
		t.Errorf("expected a missing dual section finding, got %v", res.Findings)
	}
}

func TestDiscountValidityExclusive(t *testing.T) {
	discount := func() offer.Discount {
		return offer.Discount{
			Name:          "Sconto benvenuto",
			Description:   "Welcome discount for new clients.",
			VATApplicable: offer.Yes,
			ConditionCode: offer.ConditionNone,
			Prices: []offer.DiscountPrice{
				{Type: "01", UnitOfMeasure: "05", Price: types.MustPrice("10")},
			},
		}
	}

	// Neither the code nor the window: error.
	o := electricityOffer()
	o.Discounts = &offer.Discounts{Items: []offer.Discount{discount()}}
	res := ValidateComplete(o)
	found := findingsAt(res, "discounts[0].validityCode")
	if !hasCode(found, apperror.CodeRequiredFieldMissing) {
		t.Errorf("expected a missing validity finding, got %v", res.Findings)
	}

	// Both populated: tolerated with a warning, not an error.
	d := discount()
	d.ValidityCode = strPtr("01")
	d.ValidityPeriod = &offer.DiscountValidity{From: "03/2024", To: "06/2024"}
	o = electricityOffer()
	o.Discounts = &offer.Discounts{Items: []offer.Discount{d}}
	res = ValidateComplete(o)
	if res.HasErrors() {
		t.Errorf("expected no errors, got %v", res.Errors())
	}
	found = findingsAt(res, "discounts[0].validityCode")
	if len(found) != 1 || found[0].Severity != SeverityWarning {
		t.Errorf("expected one warning, got %v", found)
	}
}

func TestWeeklyTimeBandsRules(t *testing.T) {
	withConfig := func(cfg string) *offer.Offer {
		o := electricityOffer()
		o.PriceType.TimeBandConfiguration = cfg
		return o
	}

	fullWeek := func(schedule string) *offer.WeeklyTimeBands {
		return &offer.WeeklyTimeBands{
			Monday: schedule, Tuesday: schedule, Wednesday: schedule,
			Thursday: schedule, Friday: schedule, Saturday: schedule,
			Sunday: schedule, Holidays: schedule,
		}
	}

	// Custom two-band configuration without schedules.
	res := ValidateComplete(withConfig("02"))
	if !hasCode(findingsAt(res, "weeklyTimeBands"), apperror.CodeRequiredFieldMissing) {
		t.Errorf("expected missing schedules, got %v", res.Findings)
	}

	// Standard configuration must not carry schedules.
	o := withConfig("03")
	o.TimeBands = fullWeek("96-1")
	res = ValidateComplete(o)
	if !hasCode(findingsAt(res, "weeklyTimeBands"), apperror.CodeCrossSection) {
		t.Errorf("expected schedules to be rejected for a standard configuration, got %v", res.Findings)
	}

	// Valid custom configuration.
	o = withConfig("02")
	o.TimeBands = fullWeek("28-2,76-1,96-2")
	res = ValidateComplete(o)
	if !res.IsEmpty() {
		t.Errorf("expected no findings, got %v", res.Findings)
	}

	// Band number beyond the configuration's band count.
	o = withConfig("02")
	o.TimeBands = fullWeek("28-3,76-1,96-2")
	res = ValidateComplete(o)
	if !hasCode(findingsAt(res, "weeklyTimeBands.monday"), apperror.CodeCrossSection) {
		t.Errorf("expected a band-count finding, got %v", res.Findings)
	}

	// Incomplete day is a warning, not an error.
	o = withConfig("02")
	o.TimeBands = fullWeek("28-2,95-1")
	res = ValidateComplete(o)
	if res.HasErrors() {
		t.Errorf("expected warnings only, got errors %v", res.Errors())
	}
	found := findingsAt(res, "weeklyTimeBands.monday")
	if len(found) != 1 || found[0].Severity != SeverityWarning {
		t.Errorf("expected one coverage warning, got %v", found)
	}

	// A gas offer never carries a band configuration; schedules on it
	// are rejected outright and their syntax is still checked.
	g := gasOffer()
	g.TimeBands = fullWeek("not-a-schedule")
	res = ValidateComplete(g)
	if !hasCode(findingsAt(res, "weeklyTimeBands"), apperror.CodeCrossSection) {
		t.Errorf("expected schedules to be rejected for a gas offer, got %v", res.Findings)
	}
	if !hasCode(findingsAt(res, "weeklyTimeBands.monday"), apperror.CodeFormat) {
		t.Errorf("expected a schedule syntax finding, got %v", res.Findings)
	}
}

func TestValidityPeriodOrder(t *testing.T) {
	o := electricityOffer()
	o.Validity.StartDate = "30/06/2024_00:00:00"
	o.Validity.EndDate = "01/03/2024_00:00:00"

	res := ValidateComplete(o)
	if !hasCode(findingsAt(res, "validityPeriod.endDate"), apperror.CodeCrossFieldInconsistency) {
		t.Errorf("expected an end-before-start finding, got %v", res.Findings)
	}
}

func TestRegulatedComponentsMarketSubsets(t *testing.T) {
	o := gasOffer()
	o.RegulatedComponents = &offer.RegulatedComponents{Codes: []string{"01"}}
	res := ValidateComplete(o)
	if !hasCode(findingsAt(res, "regulatedComponents.codes[0]"), apperror.CodeCrossSection) {
		t.Errorf("expected electricity code to be rejected on a gas offer, got %v", res.Findings)
	}

	o = gasOffer()
	o.RegulatedComponents = &offer.RegulatedComponents{Codes: []string{"77"}}
	res = ValidateComplete(o)
	if !hasCode(findingsAt(res, "regulatedComponents.codes[0]"), apperror.CodeUnknownEnumValue) {
		t.Errorf("expected unknown code finding, got %v", res.Findings)
	}

	o = gasOffer()
	o.RegulatedComponents = &offer.RegulatedComponents{Codes: []string{"09", "10"}}
	res = ValidateComplete(o)
	if !res.IsEmpty() {
		t.Errorf("expected gas codes to pass, got %v", res.Findings)
	}
}

func TestConditionalDescriptionForOtherCode(t *testing.T) {
	o := electricityOffer()
	o.ActivationMethods.Methods = []string{"02", offer.CodeOther}
	res := ValidateComplete(o)
	if !hasCode(findingsAt(res, "activationMethods.otherDescription"), apperror.CodeRequiredFieldMissing) {
		t.Errorf("expected missing description, got %v", res.Findings)
	}

	o.ActivationMethods.OtherDescription = "Activation at partner kiosks."
	res = ValidateComplete(o)
	if !res.IsEmpty() {
		t.Errorf("expected no findings, got %v", res.Findings)
	}
}

func TestOfferDetailsFieldLimits(t *testing.T) {
	o := electricityOffer()
	o.Details.Name = strings.Repeat("a", 256)
	o.Details.Duration = 120

	res := ValidateComplete(o)
	if !hasCode(findingsAt(res, "offerDetails.name"), apperror.CodeRange) {
		t.Errorf("expected a name length finding, got %v", res.Findings)
	}
	if !hasCode(findingsAt(res, "offerDetails.duration"), apperror.CodeRange) {
		t.Errorf("expected a duration range finding, got %v", res.Findings)
	}
}

func TestIntervalBracketChecks(t *testing.T) {
	o := gasOffer()
	o.CompanyComponents.Items[0].Intervals = []offer.PriceInterval{
		{ConsumptionFrom: i64Ptr(0), ConsumptionTo: i64Ptr(100), Price: types.MustPrice("0.05"), UnitOfMeasure: "04"},
		{ConsumptionFrom: i64Ptr(150), ConsumptionTo: i64Ptr(200), Price: types.MustPrice("0.04"), UnitOfMeasure: "04"},
	}

	res := ValidateComplete(o)
	found := findingsAt(res, "companyComponents[0].priceIntervals[1]")
	if !hasCode(found, apperror.CodeCrossFieldInconsistency) {
		t.Errorf("expected a gap finding, got %v", res.Findings)
	}

	o.CompanyComponents.Items[0].Intervals[1].ConsumptionFrom = i64Ptr(101)
	res = ValidateComplete(o)
	if !res.IsEmpty() {
		t.Errorf("expected gapless intervals to pass, got %v", res.Findings)
	}
}
