// Package offer holds the in-memory representation of a market offer as
// it is collected section by section, plus the regulator code tables.
// The aggregate is plain data: every business rule lives in the
// validation package, every wire concern in the serializer.
package offer

import (
	"time"

	"offerte/internal/core/types"
)

// Wire date layouts.
const (
	TimestampLayout = "02/01/2006_15:04:05" // DD/MM/YYYY_HH:MM:SS
	MonthYearLayout = "01/2006"             // MM/YYYY
)

// ParseTimestamp parses a DD/MM/YYYY_HH:MM:SS value.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

// ParseMonthYear parses a MM/YYYY value.
func ParseMonthYear(s string) (time.Time, error) {
	return time.Parse(MonthYearLayout, s)
}

// Offer is the root aggregate. Sections are nil until the data-entry
// collaborator fills them, so partial validation can tell "not yet
// provided" apart from "provided empty". The aggregate is never shared
// mutably: each validation/serialization call owns its snapshot.
type Offer struct {
	Identification        *Identification        `json:"identification,omitempty"`
	Details               *OfferDetails          `json:"offerDetails,omitempty"`
	ActivationMethods     *ActivationMethods     `json:"activationMethods,omitempty"`
	Contacts              *Contacts              `json:"contacts,omitempty"`
	PriceReference        *EnergyPriceReference  `json:"energyPriceReference,omitempty"`
	Validity              *ValidityPeriod        `json:"validityPeriod,omitempty"`
	Characteristics       *OfferCharacteristics  `json:"offerCharacteristics,omitempty"`
	Dual                  *DualOffer             `json:"dualOffer,omitempty"`
	PaymentMethods        *PaymentMethods        `json:"paymentMethods,omitempty"`
	RegulatedComponents   *RegulatedComponents   `json:"regulatedComponents,omitempty"`
	PriceType             *PriceType             `json:"priceType,omitempty"`
	TimeBands             *WeeklyTimeBands       `json:"weeklyTimeBands,omitempty"`
	Dispatching           *Dispatching           `json:"dispatching,omitempty"`
	CompanyComponents     *CompanyComponents     `json:"companyComponents,omitempty"`
	ContractualConditions *ContractualConditions `json:"contractualConditions,omitempty"`
	ZoneOffers            *ZoneOffers            `json:"zoneOffers,omitempty"`
	Discounts             *Discounts             `json:"discounts,omitempty"`
	AdditionalProducts    *AdditionalProducts    `json:"additionalProducts,omitempty"`
}

// MarketType returns the market code or "" while OfferDetails is absent.
func (o *Offer) MarketType() string {
	if o.Details == nil {
		return ""
	}
	return o.Details.MarketType
}

// OfferType returns the offer type code or "" while OfferDetails is absent.
func (o *Offer) OfferType() string {
	if o.Details == nil {
		return ""
	}
	return o.Details.OfferType
}

// Identification (Identificativi).
type Identification struct {
	// VATNumber is the accredited seller's tax id (PIVA), also the
	// output filename prefix.
	VATNumber string `json:"vatNumber"`
	OfferCode string `json:"offerCode"`
}

// OfferDetails (DettaglioOfferta).
type OfferDetails struct {
	MarketType string `json:"marketType"`
	// SingleOffer tells whether the offer can be subscribed on its own.
	// Mandatory unless the market is dual.
	SingleOffer             *string  `json:"singleOffer,omitempty"`
	ClientType              string   `json:"clientType"`
	OfferType               string   `json:"offerType"`
	ContractActivationTypes []string `json:"contractActivationTypes"`
	Name                    string   `json:"name"`
	Description             string   `json:"description"`
	// Duration in months: -1 for indeterminate, otherwise 1..99.
	Duration   int    `json:"duration"`
	Guarantees string `json:"guarantees"`
}

// ActivationMethods (ModalitaAttivazione).
type ActivationMethods struct {
	Methods []string `json:"methods"`
	// OtherDescription is mandatory iff Methods contains "99".
	OtherDescription string `json:"otherDescription,omitempty"`
}

// Contacts (Contatti).
type Contacts struct {
	Phone     string `json:"phone"`
	VendorURL string `json:"vendorUrl,omitempty"`
	OfferURL  string `json:"offerUrl,omitempty"`
}

// EnergyPriceReference (RiferimentiPrezzoEnergia).
// Mandatory iff the offer type is variable.
type EnergyPriceReference struct {
	Index string `json:"index"`
	// AlternativeDescription is mandatory iff Index is "99".
	AlternativeDescription string `json:"alternativeDescription,omitempty"`
}

// ValidityPeriod (ValiditaOfferta). Timestamps in DD/MM/YYYY_HH:MM:SS.
type ValidityPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// OfferCharacteristics (CaratteristicheOfferta).
// The consumption pair is mandatory iff the offer type is FLAT.
type OfferCharacteristics struct {
	ConsumptionMin *int64       `json:"consumptionMin,omitempty"`
	ConsumptionMax *int64       `json:"consumptionMax,omitempty"`
	PowerMin       *types.Price `json:"powerMin,omitempty"`
	PowerMax       *types.Price `json:"powerMax,omitempty"`
}

// DualOffer (OffertaDUAL). Mandatory iff the market is dual.
type DualOffer struct {
	ElectricityOfferCodes []string `json:"electricityOfferCodes"`
	GasOfferCodes         []string `json:"gasOfferCodes"`
}

// PaymentMethods (MetodoPagamento).
type PaymentMethods struct {
	Methods []string `json:"methods"`
	// OtherDescription is mandatory iff Methods contains "99".
	OtherDescription string `json:"otherDescription,omitempty"`
}

// RegulatedComponents (ComponentiRegolate). Optional; the legal code
// subset depends on the market type.
type RegulatedComponents struct {
	Codes []string `json:"codes"`
}

// PriceType (TipoPrezzo). Mandatory iff market is electricity and the
// offer type is not FLAT.
type PriceType struct {
	TimeBandConfiguration string `json:"timeBandConfiguration"`
}

// WeeklyTimeBands (FasceOrarie). One compact schedule string per day.
// Mandatory iff the time-band configuration is a custom band set.
type WeeklyTimeBands struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
	Holidays  string `json:"holidays"`
}

// Days returns the eight schedules with their path-relative field names,
// in declaration order.
func (w *WeeklyTimeBands) Days() []struct{ Name, Schedule string } {
	return []struct{ Name, Schedule string }{
		{"monday", w.Monday},
		{"tuesday", w.Tuesday},
		{"wednesday", w.Wednesday},
		{"thursday", w.Thursday},
		{"friday", w.Friday},
		{"saturday", w.Saturday},
		{"sunday", w.Sunday},
		{"holidays", w.Holidays},
	}
}

// Dispatching (Dispacciamento). Mandatory iff market is electricity.
type Dispatching struct {
	Items []DispatchingItem `json:"items"`
}

// DispatchingItem is one ancillary cost component.
type DispatchingItem struct {
	Type string `json:"type"`
	// Value is mandatory iff Type is "99".
	Value       *types.Price `json:"value,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
}

// CompanyComponents (ComponenteImpresa).
type CompanyComponents struct {
	Items []CompanyComponent `json:"items"`
}

// CompanyComponent is a seller-defined price component.
type CompanyComponent struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Kind        string          `json:"kind"`
	MacroArea   string          `json:"macroArea"`
	Intervals   []PriceInterval `json:"priceIntervals"`
}

// PriceInterval is one consumption bracket price of a component.
type PriceInterval struct {
	Band            *string     `json:"band,omitempty"`
	ConsumptionFrom *int64      `json:"consumptionFrom,omitempty"`
	ConsumptionTo   *int64      `json:"consumptionTo,omitempty"`
	Price           types.Price `json:"price"`
	UnitOfMeasure   string      `json:"unitOfMeasure"`
	ValidFrom       string      `json:"validFrom,omitempty"` // MM/YYYY
	ValidTo         string      `json:"validTo,omitempty"`   // MM/YYYY
}

// ContractualConditions (CondizioniContrattuali).
type ContractualConditions struct {
	Items []ContractualCondition `json:"items"`
}

// ContractualCondition is one contractual clause.
type ContractualCondition struct {
	Type string `json:"type"`
	// OtherDescription is mandatory iff Type is "99".
	OtherDescription string `json:"otherDescription,omitempty"`
	Description      string `json:"description"`
	Limiting         string `json:"limiting"` // SI/NO
}

// ZoneOffers (ZoneOfferta). Optional geographic restriction.
type ZoneOffers struct {
	Regions        []string `json:"regions,omitempty"`        // 2-digit codes
	Provinces      []string `json:"provinces,omitempty"`      // 3-digit codes
	Municipalities []string `json:"municipalities,omitempty"` // 6-digit codes
}

// Discounts (Sconto).
type Discounts struct {
	Items []Discount `json:"items"`
}

// Discount is one discount block. Exactly one of ValidityCode and
// ValidityPeriod must be populated (both is tolerated with a warning).
type Discount struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	ComponentBands []string          `json:"componentBands,omitempty"`
	ValidityCode   *string           `json:"validityCode,omitempty"`
	ValidityPeriod *DiscountValidity `json:"validityPeriod,omitempty"`
	VATApplicable  string            `json:"vatApplicable"` // SI/NO
	ConditionCode  string            `json:"conditionCode"`
	// ConditionDescription is mandatory iff ConditionCode is "99".
	ConditionDescription string          `json:"conditionDescription,omitempty"`
	Prices               []DiscountPrice `json:"prices"`
}

// DiscountValidity is a calendar validity window in MM/YYYY.
type DiscountValidity struct {
	From string `json:"from"`
	To   string `json:"to,omitempty"`
}

// DiscountPrice is one priced entry of a discount.
type DiscountPrice struct {
	Type          string      `json:"type"`
	ValidFrom     *int64      `json:"validFromConsumption,omitempty"`
	ValidTo       *int64      `json:"validToConsumption,omitempty"`
	UnitOfMeasure string      `json:"unitOfMeasure"`
	Price         types.Price `json:"price"`
}

// AdditionalProducts (ProdottiServiziAggiuntivi).
type AdditionalProducts struct {
	Items []AdditionalProduct `json:"items"`
}

// AdditionalProduct is one bundled product or service.
type AdditionalProduct struct {
	Name      string `json:"name"`
	Details   string `json:"details"`
	MacroArea string `json:"macroArea,omitempty"`
	// MacroAreaDetails is mandatory iff MacroArea is "99".
	MacroAreaDetails string `json:"macroAreaDetails,omitempty"`
}
