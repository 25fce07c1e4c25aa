package offer

import "sort"

// CodeSet is a closed set of regulator codes for one enumerated field.
// Sets are built once at package init and never mutated, so they are
// safe to share across concurrent validations.
type CodeSet struct {
	name   string
	labels map[string]string
}

func newCodeSet(name string, labels map[string]string) *CodeSet {
	return &CodeSet{name: name, labels: labels}
}

// Name returns the set name used in validation messages.
func (s *CodeSet) Name() string { return s.name }

// Contains reports whether code belongs to the set.
func (s *CodeSet) Contains(code string) bool {
	_, ok := s.labels[code]
	return ok
}

// Label returns the human-readable label for a code, or "" if unknown.
func (s *CodeSet) Label(code string) string { return s.labels[code] }

// Codes returns all codes in ascending order.
func (s *CodeSet) Codes() []string {
	out := make([]string, 0, len(s.labels))
	for c := range s.labels {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Market type (TIPO_MERCATO).
const (
	MarketElectricity = "01"
	MarketGas         = "02"
	MarketDual        = "03"
)

// Offer type (TIPO_OFFERTA).
const (
	OfferFixed    = "01"
	OfferVariable = "02"
	OfferFlat     = "03"
)

// SI/NO regulator booleans.
const (
	Yes = "SI"
	No  = "NO"
)

// CodeOther marks the free-text variant in sets that allow one.
const CodeOther = "99"

// Contractual condition requiring the temporal gate (early withdrawal charges).
const ConditionEarlyWithdrawal = "05"

// Discount condition code for "not conditioned".
const ConditionNone = "00"

var (
	MarketTypes = newCodeSet("marketType", map[string]string{
		MarketElectricity: "Electricity",
		MarketGas:         "Gas",
		MarketDual:        "Dual fuel",
	})

	ClientTypes = newCodeSet("clientType", map[string]string{
		"01": "Domestic",
		"02": "Other uses",
		"03": "Residential condominium (gas)",
	})

	OfferTypes = newCodeSet("offerType", map[string]string{
		OfferFixed:    "Fixed",
		OfferVariable: "Variable",
		OfferFlat:     "FLAT",
	})

	YesNo = newCodeSet("yesNo", map[string]string{
		Yes: "Yes",
		No:  "No",
	})

	ContractActivationTypes = newCodeSet("contractActivationType", map[string]string{
		"01": "Supplier change",
		"02": "First activation",
		"03": "Reactivation after deactivation",
		"04": "Contract transfer",
		"99": "Always",
	})

	ActivationMethodCodes = newCodeSet("activationMethod", map[string]string{
		"01": "Web-only activation",
		"02": "Any channel",
		"03": "Point of sale",
		"04": "Teleselling",
		"05": "Agency",
		"99": "Other",
	})

	PaymentMethodCodes = newCodeSet("paymentMethod", map[string]string{
		"01": "Bank direct debit",
		"02": "Postal direct debit",
		"03": "Credit card direct debit",
		"04": "Pre-filled payment slip",
		"99": "Other",
	})

	EnergyPriceIndexes = newCodeSet("energyPriceIndex", map[string]string{
		// Quarterly
		"01": "PUN (quarterly)",
		"02": "TTF (quarterly)",
		"03": "PSV (quarterly)",
		"04": "Psbil (quarterly)",
		"05": "PE (quarterly)",
		"06": "Cmem (quarterly)",
		"07": "Pfor (quarterly)",
		// Bimonthly
		"08": "PUN (bimonthly)",
		"09": "TTF (bimonthly)",
		"10": "PSV (bimonthly)",
		"11": "Psbil (bimonthly)",
		// Monthly
		"12": "PUN (monthly)",
		"13": "TTF (monthly)",
		"14": "PSV (monthly)",
		"15": "Psbil (monthly)",
		// Free text
		"99": "Other",
	})

	// Regulated components are market-dependent subsets of one table.
	RegulatedComponentsElectricity = newCodeSet("regulatedComponent", map[string]string{
		"01": "PCV",
		"02": "PPE",
	})

	RegulatedComponentsGas = newCodeSet("regulatedComponent", map[string]string{
		"03": "CCR",
		"04": "CPR",
		"05": "GRAD",
		"06": "QTint",
		"07": "QTpsv",
		"09": "QVD fixed",
		"10": "QVD variable",
	})

	TimeBandConfigurations = newCodeSet("timeBandConfiguration", map[string]string{
		"01": "Monorate",
		"02": "F1, F2",
		"03": "F1, F2, F3 (standard)",
		"04": "F1, F2, F3, F4",
		"05": "F1, F2, F3, F4, F5",
		"06": "F1, F2, F3, F4, F5, F6",
		"07": "Peak/OffPeak (standard)",
		"91": "Two-rate F1 / F2+F3",
		"92": "Two-rate F1+F2 / F3",
		"93": "Two-rate F1+F3 / F2",
	})

	DispatchingTypes = newCodeSet("dispatchingType", map[string]string{
		"01": "Dispatching (AEEG 111/06)",
		"02": "PD - aggregate imbalance",
		"03": "MSD - ancillary services",
		"04": "Non-arbitrage fee",
		"05": "Interruptibility service",
		"06": "Capacity market",
		"07": "Essential units reintegration",
		"09": "DispBT nondomestic",
		"10": "Terna operation fee",
		"11": "Virtual interconnection",
		"12": "Demand response",
		"13": "DispBT",
		"99": "Other",
	})

	MacroAreas = newCodeSet("macroArea", map[string]string{
		"01": "Fixed commercialization fee",
		"02": "Energy commercialization fee",
		"04": "Energy price",
		"05": "Transport and meter management",
		"06": "System charges",
	})

	UnitsOfMeasure = newCodeSet("unitOfMeasure", map[string]string{
		"01": "EUR/Year",
		"02": "EUR/kW",
		"03": "EUR/kWh",
		"04": "EUR/Smc",
		"05": "EUR",
	})

	BandCodes = newCodeSet("band", map[string]string{
		"01": "Monorate/F1",
		"02": "F2",
		"03": "F3",
		"04": "F4",
		"05": "F5",
		"06": "F6",
		"07": "Peak",
		"08": "OffPeak",
		"91": "F2+F3",
		"92": "F1+F2",
		"93": "F1+F3",
	})

	ComponentKinds = newCodeSet("componentKind", map[string]string{
		"01": "Standard (always billed)",
		"02": "Optional",
	})

	ContractualConditionTypes = newCodeSet("contractualConditionType", map[string]string{
		"01": "Activation",
		"02": "Deactivation",
		"03": "Withdrawal",
		"04": "Multi-year offer",
		"05": "Early withdrawal charges",
		"99": "Other",
	})

	DiscountValidityCodes = newCodeSet("discountValidity", map[string]string{
		"01": "At subscription",
		"02": "Within 12 months",
		"03": "Beyond 12 months",
	})

	DiscountConditionCodes = newCodeSet("discountCondition", map[string]string{
		"00": "Not conditioned",
		"01": "Electronic activation",
		"02": "Electronic management",
		"03": "Electronic activation and management",
		"99": "Other",
	})

	DiscountPriceTypes = newCodeSet("discountPriceType", map[string]string{
		"01": "Fixed discount",
		"02": "Power discount",
		"03": "Sales price discount",
		"04": "Regulated price discount",
	})

	DiscountComponentBandCodes = newCodeSet("componentBand", map[string]string{
		"01": "PCV",
		"02": "PPE",
		"03": "CCR",
		"04": "CPR",
		"05": "GRAD",
		"06": "QTint",
		"07": "QTpsv",
		"09": "QVD fixed",
		"10": "QVD variable",
		"11": "F1",
		"12": "F2",
		"13": "F3",
		"14": "F4",
		"15": "F5",
		"16": "F6",
		"17": "Peak",
		"18": "OffPeak",
	})

	ProductMacroAreas = newCodeSet("productMacroArea", map[string]string{
		"01": "Boiler",
		"02": "Mobility",
		"03": "Solar photovoltaic",
		"04": "Air conditioning",
		"05": "Insurance policy",
		"99": "Other",
	})
)

// RegulatedComponentsFor returns the regulated-component subset legal
// for a market. Dual offers may carry codes from both subsets.
func RegulatedComponentsFor(market string) []*CodeSet {
	switch market {
	case MarketElectricity:
		return []*CodeSet{RegulatedComponentsElectricity}
	case MarketGas:
		return []*CodeSet{RegulatedComponentsGas}
	case MarketDual:
		return []*CodeSet{RegulatedComponentsElectricity, RegulatedComponentsGas}
	default:
		return nil
	}
}

// BandCount returns how many tariff bands a time-band configuration
// defines. Unknown configurations return 0.
func BandCount(configuration string) int {
	switch configuration {
	case "01":
		return 1
	case "02", "07", "91", "92", "93":
		return 2
	case "03":
		return 3
	case "04":
		return 4
	case "05":
		return 5
	case "06":
		return 6
	default:
		return 0
	}
}

// RequiresWeeklyBands reports whether a time-band configuration needs an
// explicit weekly schedule (the custom 2/4/5/6-band sets). Standard
// configurations derive their calendar from the regulator's own tables.
func RequiresWeeklyBands(configuration string) bool {
	switch configuration {
	case "02", "04", "05", "06":
		return true
	default:
		return false
	}
}
