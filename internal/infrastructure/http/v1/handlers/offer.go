package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"offerte/internal/core/apperror"
	"offerte/internal/domain/offer"
	"offerte/internal/domain/validation"
	"offerte/internal/infrastructure/http/v1/dto"
	"offerte/internal/infrastructure/xmlgen"
	"offerte/pkg/logger"
)

// OfferHandler exposes validation and serialization of offers.
type OfferHandler struct {
	*BaseHandler
}

// NewOfferHandler creates an offer handler.
func NewOfferHandler(base *BaseHandler) *OfferHandler {
	return &OfferHandler{BaseHandler: base}
}

// RegisterRoutes wires the offer endpoints.
func (h *OfferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/validate-section", h.ValidateSection)
	rg.POST("/validate", h.ValidateComplete)
	rg.POST("/serialize", h.Serialize)
	rg.GET("/sections", h.ListSections)
}

// ValidateSection checks one section of an in-progress offer. Rules
// that need data from sections not yet provided are skipped, so the
// wizard only sees findings it can act on.
func (h *OfferHandler) ValidateSection(c *gin.Context) {
	var req dto.ValidateSectionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	section := offer.SectionID(req.Section)
	if !offer.IsValidSection(section) {
		h.Error(c, apperror.NewInvalidInput(fmt.Sprintf("unknown section %q", req.Section)).
			WithDetail("sections", offer.SectionOrder))
		return
	}

	var vctx validation.Context
	if req.Context != nil {
		vctx.Validity = req.Context.ValidityPeriod
	}

	res := validation.ValidateSection(&req.Offer, section, vctx)
	h.OK(c, dto.NewValidationResponse(res))
}

// ValidateComplete checks the whole offer against every rule.
func (h *OfferHandler) ValidateComplete(c *gin.Context) {
	var req dto.ValidateCompleteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res := validation.ValidateComplete(&req.Offer)
	h.OK(c, dto.NewValidationResponse(res))
}

// Serialize renders a fully valid offer into the transmission file.
// An offer with pending error findings is refused with the findings
// attached, so the client never has to re-run validation to learn why.
func (h *OfferHandler) Serialize(c *gin.Context) {
	var req dto.SerializeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := xmlgen.Serialize(&req.Offer, xmlgen.Action(req.Action), req.Description)
	if err != nil {
		h.Error(c, err)
		return
	}

	logger.Info(c.Request.Context(), "offer serialized",
		"filename", doc.Filename,
		"bytes", len(doc.XML),
	)
	h.OK(c, dto.SerializeResponse{Filename: doc.Filename, XML: string(doc.XML)})
}

// ListSections returns the section identifiers in regulator order.
func (h *OfferHandler) ListSections(c *gin.Context) {
	h.OK(c, gin.H{"sections": offer.SectionOrder})
}
