package xmlgen

import (
	"strings"
	"testing"

	"offerte/internal/core/apperror"
	"offerte/internal/core/types"
	"offerte/internal/domain/offer"
)

func strPtr(s string) *string { return &s }

// validOffer is a complete fixed-price electricity offer accepted by
// every validation rule.
func validOffer() *offer.Offer {
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
		CompanyComponents: &offer.CompanyComponents{Items: []offer.CompanyComponent{
			{
				Name:        "Quota fissa",
				Description: "Fixed commercialization fee.",
				Kind:        "01",
				MacroArea:   "01",
				Intervals: []offer.PriceInterval{
					{Price: types.MustPrice("0.05"), UnitOfMeasure: "01"},
				},
			},
		}},
	}
}

func TestSerializeValidOffer(t *testing.T) {
	doc, err := Serialize(validOffer(), ActionInsert, "LUCECASA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Filename != "12345678901_INSERIMENTO_LUCECASA.XML" {
		t.Errorf("unexpected filename %s", doc.Filename)
	}

	xml := string(doc.XML)
	if !strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("expected an XML declaration")
	}
	for _, fragment := range []string{
		"<Offerta>",
		"<PIVA_UTENTE>12345678901</PIVA_UTENTE>",
		"<COD_OFFERTA>LUCE2024FIX</COD_OFFERTA>",
		"<TIPO_MERCATO>01</TIPO_MERCATO>",
		"<OFFERTA_SINGOLA>SI</OFFERTA_SINGOLA>",
		"<DURATA>12</DURATA>",
		"<DATA_INIZIO>01/03/2024_00:00:00</DATA_INIZIO>",
		"<TIPOLOGIA_FASCE>03</TIPOLOGIA_FASCE>",
		"<TIPO_DISPACCIAMENTO>01</TIPO_DISPACCIAMENTO>",
		"<PREZZO>0.050000</PREZZO>",
	} {
		if !strings.Contains(xml, fragment) {
			t.Errorf("expected output to contain %s", fragment)
		}
	}

	// Sections come out in the regulator's fixed sequence.
	order := []string{
		"<Identificativi>",
		"<DettaglioOfferta>",
		"<DettaglioOfferta.ModalitaAttivazione>",
		"<DettaglioOfferta.Contatti>",
		"<ValiditaOfferta>",
		"<MetodoPagamento>",
		"<TipoPrezzo>",
		"<Dispacciamento>",
		"<ComponenteImpresa>",
	}
	prev := -1
	for _, el := range order {
		idx := strings.Index(xml, el)
		if idx < 0 {
			t.Fatalf("expected element %s in output", el)
		}
		if idx < prev {
			t.Errorf("element %s appears out of order", el)
		}
		prev = idx
	}

	// Optional sections that were never filled must not appear.
	for _, el := range []string{"<OffertaDUAL>", "<FasceOrarie>", "<Sconto>", "<ZoneOfferta>"} {
		if strings.Contains(xml, el) {
			t.Errorf("unexpected element %s in output", el)
		}
	}
}

func TestSerializeRefusesInvalidOffer(t *testing.T) {
	o := validOffer()
	o.Validity = nil

	_, err := Serialize(o, ActionInsert, "LUCECASA")
	if err == nil {
		t.Fatal("expected an error for an offer with pending findings")
	}
	if !apperror.IsNotReady(err) {
		t.Errorf("expected a NOT_READY error, got %v", err)
	}
	appErr, _ := apperror.AsAppError(err)
	if appErr.Details["findings"] == nil {
		t.Error("expected the findings to be attached to the error")
	}
}

func TestSerializeRefusesStrayWeeklySchedules(t *testing.T) {
	o := validOffer()
	o.TimeBands = &offer.WeeklyTimeBands{
		Monday: "not-a-schedule", Tuesday: "not-a-schedule", Wednesday: "not-a-schedule",
		Thursday: "not-a-schedule", Friday: "not-a-schedule", Saturday: "not-a-schedule",
		Sunday: "not-a-schedule", Holidays: "not-a-schedule",
	}

	_, err := Serialize(o, ActionInsert, "LUCECASA")
	if err == nil {
		t.Fatal("expected schedules on a standard band configuration to block serialization")
	}
	if !apperror.IsNotReady(err) {
		t.Errorf("expected a NOT_READY error, got %v", err)
	}
}

func TestSerializeUpdateAction(t *testing.T) {
	doc, err := Serialize(validOffer(), ActionUpdate, "LUCECASA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Filename != "12345678901_AGGIORNAMENTO_LUCECASA.XML" {
		t.Errorf("unexpected filename %s", doc.Filename)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name        string
		vat         string
		action      Action
		description string
		want        string
		wantErr     bool
	}{
		{"valid insert", "12345678901", ActionInsert, "OffertaLuce1", "12345678901_INSERIMENTO_OffertaLuce1.XML", false},
		{"valid update", "12345678901", ActionUpdate, "X", "12345678901_AGGIORNAMENTO_X.XML", false},
		{"max length description", "12345678901", ActionInsert, strings.Repeat("A", 25), "12345678901_INSERIMENTO_" + strings.Repeat("A", 25) + ".XML", false},
		{"space rejected", "12345678901", ActionInsert, "OFFERTA LUCE", "", true},
		{"underscore rejected", "12345678901", ActionInsert, "OFFERTA_LUCE", "", true},
		{"accent rejected", "12345678901", ActionInsert, "PERPETUITÀ", "", true},
		{"hyphen rejected", "12345678901", ActionInsert, "OFFERTA-LUCE", "", true},
		{"too long", "12345678901", ActionInsert, strings.Repeat("A", 26), "", true},
		{"empty description", "12345678901", ActionInsert, "", "", true},
		{"unknown action", "12345678901", Action("UPSERT"), "OFFERTA", "", true},
		{"missing vat", "", ActionInsert, "OFFERTA", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filename(tt.vat, tt.action, tt.description)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
