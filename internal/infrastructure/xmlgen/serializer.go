package xmlgen

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"offerte/internal/core/apperror"
	"offerte/internal/domain/offer"
	"offerte/internal/domain/validation"
)

// Document is a rendered transmission file.
type Document struct {
	Filename string `json:"filename"`
	XML      []byte `json:"xml"`
}

// Serialize renders the offer into the regulator transmission format.
// The offer must pass complete validation with zero error findings
// first; otherwise a NotReady error carrying the findings is returned.
// Warnings do not block serialization.
func Serialize(o *offer.Offer, action Action, description string) (*Document, error) {
	res := validation.ValidateComplete(o)
	if res.HasErrors() {
		return nil, apperror.NewNotReady("offer has unresolved validation errors").
			WithDetail("findings", res.Errors())
	}

	name, err := Filename(o.Identification.VATNumber, action, description)
	if err != nil {
		return nil, err
	}

	body, err := xml.MarshalIndent(buildDocument(o), "", "  ")
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("marshal offer document: %w", err))
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')

	return &Document{Filename: name, XML: buf.Bytes()}, nil
}
