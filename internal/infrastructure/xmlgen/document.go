// Package xmlgen maps a validated offer aggregate to the regulator's
// "Trasmissione Offerte" XML document and output filename. Element
// names, code values and literal formats follow the regulator's v4.5
// specification verbatim; section order is fixed by struct field order.
package xmlgen

import (
	"encoding/xml"
	"strconv"

	"offerte/internal/core/types"
	"offerte/internal/domain/offer"
)

type xmlOffer struct {
	XMLName         xml.Name                `xml:"Offerta"`
	Identificativi  xmlIdentificativi       `xml:"Identificativi"`
	Dettaglio       xmlDettaglioOfferta     `xml:"DettaglioOfferta"`
	Attivazione     xmlModalitaAttivazione  `xml:"DettaglioOfferta.ModalitaAttivazione"`
	Contatti        xmlContatti             `xml:"DettaglioOfferta.Contatti"`
	RiferimentiIdx  *xmlRiferimentiPrezzo   `xml:"RiferimentiPrezzoEnergia,omitempty"`
	Validita        xmlValiditaOfferta      `xml:"ValiditaOfferta"`
	Caratteristiche *xmlCaratteristiche     `xml:"CaratteristicheOfferta,omitempty"`
	Dual            *xmlOffertaDual         `xml:"OffertaDUAL,omitempty"`
	Pagamenti       []xmlMetodoPagamento    `xml:"MetodoPagamento"`
	Regolate        *xmlComponentiRegolate  `xml:"ComponentiRegolate,omitempty"`
	TipoPrezzo      *xmlTipoPrezzo          `xml:"TipoPrezzo,omitempty"`
	Fasce           *xmlFasceOrarie         `xml:"FasceOrarie,omitempty"`
	Dispacciamento  []xmlDispacciamento     `xml:"Dispacciamento"`
	Componenti      []xmlComponenteImpresa  `xml:"ComponenteImpresa"`
	Condizioni      []xmlCondizione         `xml:"CondizioniContrattuali"`
	Zone            *xmlZoneOfferta         `xml:"ZoneOfferta,omitempty"`
	Sconti          []xmlSconto             `xml:"Sconto"`
	Prodotti        []xmlProdottoAggiuntivo `xml:"ProdottiServiziAggiuntivi"`
}

type xmlIdentificativi struct {
	PIVAUtente string `xml:"PIVA_UTENTE"`
	CodOfferta string `xml:"COD_OFFERTA"`
}

type xmlDettaglioOfferta struct {
	TipoMercato       string   `xml:"TIPO_MERCATO"`
	OffertaSingola    string   `xml:"OFFERTA_SINGOLA,omitempty"`
	TipoCliente       string   `xml:"TIPO_CLIENTE"`
	TipoOfferta       string   `xml:"TIPO_OFFERTA"`
	TipologiaAttContr []string `xml:"TIPOLOGIA_ATT_CONTR"`
	NomeOfferta       string   `xml:"NOME_OFFERTA"`
	Descrizione       string   `xml:"DESCRIZIONE"`
	Durata            int      `xml:"DURATA"`
	Garanzie          string   `xml:"GARANZIE"`
}

type xmlModalitaAttivazione struct {
	Modalita    []string `xml:"MODALITA"`
	Descrizione string   `xml:"DESCRIZIONE,omitempty"`
}

type xmlContatti struct {
	Telefono         string `xml:"TELEFONO"`
	URLSitoVenditore string `xml:"URL_SITO_VENDITORE,omitempty"`
	URLOfferta       string `xml:"URL_OFFERTA,omitempty"`
}

type xmlRiferimentiPrezzo struct {
	IdxPrezzoEnergia string `xml:"IDX_PREZZO_ENERGIA"`
	Altro            string `xml:"ALTRO,omitempty"`
}

type xmlValiditaOfferta struct {
	DataInizio string `xml:"DATA_INIZIO"`
	DataFine   string `xml:"DATA_FINE"`
}

type xmlCaratteristiche struct {
	ConsumoMin string `xml:"CONSUMO_MIN,omitempty"`
	ConsumoMax string `xml:"CONSUMO_MAX,omitempty"`
	PotenzaMin string `xml:"POTENZA_MIN,omitempty"`
	PotenzaMax string `xml:"POTENZA_MAX,omitempty"`
}

type xmlOffertaDual struct {
	OfferteCongiunteEE  []string `xml:"OFFERTE_CONGIUNTE_EE"`
	OfferteCongiunteGas []string `xml:"OFFERTE_CONGIUNTE_GAS"`
}

type xmlMetodoPagamento struct {
	ModalitaPagamento string `xml:"MODALITA_PAGAMENTO"`
	Descrizione       string `xml:"DESCRIZIONE,omitempty"`
}

type xmlComponentiRegolate struct {
	Codice []string `xml:"CODICE"`
}

type xmlTipoPrezzo struct {
	TipologiaFasce string `xml:"TIPOLOGIA_FASCE"`
}

type xmlFasceOrarie struct {
	FLunedi    string `xml:"F_LUNEDI"`
	FMartedi   string `xml:"F_MARTEDI"`
	FMercoledi string `xml:"F_MERCOLEDI"`
	FGiovedi   string `xml:"F_GIOVEDI"`
	FVenerdi   string `xml:"F_VENERDI"`
	FSabato    string `xml:"F_SABATO"`
	FDomenica  string `xml:"F_DOMENICA"`
	FFestivita string `xml:"F_FESTIVITA"`
}

type xmlDispacciamento struct {
	TipoDispacciamento string `xml:"TIPO_DISPACCIAMENTO"`
	ValoreDisp         string `xml:"VALORE_DISP,omitempty"`
	Nome               string `xml:"NOME"`
	Descrizione        string `xml:"DESCRIZIONE,omitempty"`
}

type xmlComponenteImpresa struct {
	Nome        string                `xml:"NOME"`
	Descrizione string                `xml:"DESCRIZIONE"`
	Tipologia   string                `xml:"TIPOLOGIA"`
	MacroArea   string                `xml:"MACROAREA"`
	Intervalli  []xmlIntervalloPrezzi `xml:"IntervalloPrezzi"`
}

type xmlIntervalloPrezzi struct {
	FasciaComponente string              `xml:"FASCIA_COMPONENTE,omitempty"`
	ConsumoDa        string              `xml:"CONSUMO_DA,omitempty"`
	ConsumoA         string              `xml:"CONSUMO_A,omitempty"`
	Prezzo           string              `xml:"PREZZO"`
	UnitaMisura      string              `xml:"UNITA_MISURA"`
	Periodo          *xmlPeriodoValidita `xml:"PeriodoValidita,omitempty"`
}

type xmlPeriodoValidita struct {
	ValidoDa   string `xml:"VALIDO_DA,omitempty"`
	ValidoFino string `xml:"VALIDO_FINO,omitempty"`
}

type xmlCondizione struct {
	TipologiaCondizione string `xml:"TIPOLOGIA_CONDIZIONE"`
	Altro               string `xml:"ALTRO,omitempty"`
	Descrizione         string `xml:"DESCRIZIONE"`
	Limitante           string `xml:"LIMITANTE"`
}

type xmlZoneOfferta struct {
	Regione   []string `xml:"REGIONE"`
	Provincia []string `xml:"PROVINCIA"`
	Comune    []string `xml:"COMUNE"`
}

type xmlSconto struct {
	Nome                   string              `xml:"NOME"`
	Descrizione            string              `xml:"DESCRIZIONE"`
	CodiceComponenteFascia []string            `xml:"CODICE_COMPONENTE_FASCIA"`
	Validita               string              `xml:"VALIDITA,omitempty"`
	Periodo                *xmlPeriodoValidita `xml:"PeriodoValidita,omitempty"`
	IVASconto              string              `xml:"IVA_SCONTO"`
	Condizione             xmlCondizioneSconto `xml:"Condizione"`
	Prezzi                 []xmlPrezzoSconto   `xml:"PREZZISconto"`
}

type xmlCondizioneSconto struct {
	CondizioneApplicazione string `xml:"CONDIZIONE_APPLICAZIONE"`
	DescrizioneCondizione  string `xml:"DESCRIZIONE_CONDIZIONE,omitempty"`
}

type xmlPrezzoSconto struct {
	Tipologia   string `xml:"TIPOLOGIA"`
	ValidoDa    string `xml:"VALIDO_DA,omitempty"`
	ValidoFino  string `xml:"VALIDO_FINO,omitempty"`
	UnitaMisura string `xml:"UNITA_MISURA"`
	Prezzo      string `xml:"PREZZO"`
}

type xmlProdottoAggiuntivo struct {
	Nome              string `xml:"NOME"`
	Dettaglio         string `xml:"DETTAGLIO"`
	MacroArea         string `xml:"MACROAREA,omitempty"`
	DettagliMacroArea string `xml:"DETTAGLI_MACROAREA,omitempty"`
}

// buildDocument reorders the aggregate into the regulator sequence and
// applies the literal formatting rules per field type.
func buildDocument(o *offer.Offer) xmlOffer {
	doc := xmlOffer{
		Identificativi: xmlIdentificativi{
			PIVAUtente: o.Identification.VATNumber,
			CodOfferta: o.Identification.OfferCode,
		},
		Dettaglio: xmlDettaglioOfferta{
			TipoMercato:       o.Details.MarketType,
			TipoCliente:       o.Details.ClientType,
			TipoOfferta:       o.Details.OfferType,
			TipologiaAttContr: o.Details.ContractActivationTypes,
			NomeOfferta:       o.Details.Name,
			Descrizione:       o.Details.Description,
			Durata:            o.Details.Duration,
			Garanzie:          o.Details.Guarantees,
		},
		Attivazione: xmlModalitaAttivazione{
			Modalita:    o.ActivationMethods.Methods,
			Descrizione: o.ActivationMethods.OtherDescription,
		},
		Contatti: xmlContatti{
			Telefono:         o.Contacts.Phone,
			URLSitoVenditore: o.Contacts.VendorURL,
			URLOfferta:       o.Contacts.OfferURL,
		},
		Validita: xmlValiditaOfferta{
			DataInizio: o.Validity.StartDate,
			DataFine:   o.Validity.EndDate,
		},
	}

	if o.Details.SingleOffer != nil {
		doc.Dettaglio.OffertaSingola = *o.Details.SingleOffer
	}

	if s := o.PriceReference; s != nil {
		doc.RiferimentiIdx = &xmlRiferimentiPrezzo{
			IdxPrezzoEnergia: s.Index,
			Altro:            s.AlternativeDescription,
		}
	}

	if s := o.Characteristics; s != nil {
		doc.Caratteristiche = &xmlCaratteristiche{
			ConsumoMin: formatInt(s.ConsumptionMin),
			ConsumoMax: formatInt(s.ConsumptionMax),
			PotenzaMin: formatPricePtr(s.PowerMin),
			PotenzaMax: formatPricePtr(s.PowerMax),
		}
	}

	if s := o.Dual; s != nil {
		doc.Dual = &xmlOffertaDual{
			OfferteCongiunteEE:  s.ElectricityOfferCodes,
			OfferteCongiunteGas: s.GasOfferCodes,
		}
	}

	if s := o.PaymentMethods; s != nil {
		for _, m := range s.Methods {
			p := xmlMetodoPagamento{ModalitaPagamento: m}
			if m == offer.CodeOther {
				p.Descrizione = s.OtherDescription
			}
			doc.Pagamenti = append(doc.Pagamenti, p)
		}
	}

	if s := o.RegulatedComponents; s != nil && len(s.Codes) > 0 {
		doc.Regolate = &xmlComponentiRegolate{Codice: s.Codes}
	}

	if s := o.PriceType; s != nil {
		doc.TipoPrezzo = &xmlTipoPrezzo{TipologiaFasce: s.TimeBandConfiguration}
	}

	if s := o.TimeBands; s != nil {
		doc.Fasce = &xmlFasceOrarie{
			FLunedi:    s.Monday,
			FMartedi:   s.Tuesday,
			FMercoledi: s.Wednesday,
			FGiovedi:   s.Thursday,
			FVenerdi:   s.Friday,
			FSabato:    s.Saturday,
			FDomenica:  s.Sunday,
			FFestivita: s.Holidays,
		}
	}

	if s := o.Dispatching; s != nil {
		for _, item := range s.Items {
			doc.Dispacciamento = append(doc.Dispacciamento, xmlDispacciamento{
				TipoDispacciamento: item.Type,
				ValoreDisp:         formatPricePtr(item.Value),
				Nome:               item.Name,
				Descrizione:        item.Description,
			})
		}
	}

	if s := o.CompanyComponents; s != nil {
		for _, comp := range s.Items {
			c := xmlComponenteImpresa{
				Nome:        comp.Name,
				Descrizione: comp.Description,
				Tipologia:   comp.Kind,
				MacroArea:   comp.MacroArea,
			}
			for _, iv := range comp.Intervals {
				x := xmlIntervalloPrezzi{
					ConsumoDa:   formatInt(iv.ConsumptionFrom),
					ConsumoA:    formatInt(iv.ConsumptionTo),
					Prezzo:      types.FormatPrice(iv.Price),
					UnitaMisura: iv.UnitOfMeasure,
				}
				if iv.Band != nil {
					x.FasciaComponente = *iv.Band
				}
				if iv.ValidFrom != "" || iv.ValidTo != "" {
					x.Periodo = &xmlPeriodoValidita{ValidoDa: iv.ValidFrom, ValidoFino: iv.ValidTo}
				}
				c.Intervalli = append(c.Intervalli, x)
			}
			doc.Componenti = append(doc.Componenti, c)
		}
	}

	if s := o.ContractualConditions; s != nil {
		for _, cond := range s.Items {
			doc.Condizioni = append(doc.Condizioni, xmlCondizione{
				TipologiaCondizione: cond.Type,
				Altro:               cond.OtherDescription,
				Descrizione:         cond.Description,
				Limitante:           cond.Limiting,
			})
		}
	}

	if s := o.ZoneOffers; s != nil {
		doc.Zone = &xmlZoneOfferta{
			Regione:   s.Regions,
			Provincia: s.Provinces,
			Comune:    s.Municipalities,
		}
	}

	if s := o.Discounts; s != nil {
		for _, d := range s.Items {
			x := xmlSconto{
				Nome:                   d.Name,
				Descrizione:            d.Description,
				CodiceComponenteFascia: d.ComponentBands,
				IVASconto:              d.VATApplicable,
				Condizione: xmlCondizioneSconto{
					CondizioneApplicazione: d.ConditionCode,
					DescrizioneCondizione:  d.ConditionDescription,
				},
			}
			if d.ValidityCode != nil {
				x.Validita = *d.ValidityCode
			}
			if d.ValidityPeriod != nil {
				x.Periodo = &xmlPeriodoValidita{
					ValidoDa:   d.ValidityPeriod.From,
					ValidoFino: d.ValidityPeriod.To,
				}
			}
			for _, pr := range d.Prices {
				x.Prezzi = append(x.Prezzi, xmlPrezzoSconto{
					Tipologia:   pr.Type,
					ValidoDa:    formatInt(pr.ValidFrom),
					ValidoFino:  formatInt(pr.ValidTo),
					UnitaMisura: pr.UnitOfMeasure,
					Prezzo:      types.FormatPrice(pr.Price),
				})
			}
			doc.Sconti = append(doc.Sconti, x)
		}
	}

	if s := o.AdditionalProducts; s != nil {
		for _, p := range s.Items {
			doc.Prodotti = append(doc.Prodotti, xmlProdottoAggiuntivo{
				Nome:              p.Name,
				Dettaglio:         p.Details,
				MacroArea:         p.MacroArea,
				DettagliMacroArea: p.MacroAreaDetails,
			})
		}
	}

	return doc
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatPricePtr(p *types.Price) string {
	if p == nil {
		return ""
	}
	return types.FormatPrice(*p)
}
