// Package dto defines request and response shapes for the HTTP API.
package dto

import (
	"time"

	"github.com/google/uuid"

	"offerte/internal/domain/offer"
	"offerte/internal/domain/validation"
)

// IDResponse is a standard response containing entity ID.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a standard success response.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ValidationContext carries cross-section inputs for partial checks.
// The wizard sends the validity period it already collected so rules
// gated on it stay decidable while that section is being edited.
type ValidationContext struct {
	ValidityPeriod *offer.ValidityPeriod `json:"validityPeriod,omitempty"`
}

// ValidateSectionRequest checks one section of an in-progress offer.
type ValidateSectionRequest struct {
	Section string             `json:"section" binding:"required"`
	Offer   offer.Offer        `json:"offer"`
	Context *ValidationContext `json:"context,omitempty"`
}

// ValidateCompleteRequest checks the whole offer.
type ValidateCompleteRequest struct {
	Offer offer.Offer `json:"offer"`
}

// ValidationResponse carries the findings of a validation run.
type ValidationResponse struct {
	Valid    bool                 `json:"valid"`
	Findings []validation.Finding `json:"errors"`
}

// NewValidationResponse converts an engine result.
func NewValidationResponse(res validation.Result) ValidationResponse {
	findings := res.Findings
	if findings == nil {
		findings = []validation.Finding{}
	}
	return ValidationResponse{Valid: !res.HasErrors(), Findings: findings}
}

// SerializeRequest renders an offer into the transmission format.
type SerializeRequest struct {
	Offer       offer.Offer `json:"offer"`
	Action      string      `json:"action" binding:"required"`
	Description string      `json:"description" binding:"required"`
}

// SerializeResponse carries the rendered file.
type SerializeResponse struct {
	Filename string `json:"filename"`
	XML      string `json:"xml"`
}

// CreateDraftRequest stores a new wizard draft.
type CreateDraftRequest struct {
	Name  string      `json:"name" binding:"required"`
	Offer offer.Offer `json:"offer"`
}

// UpdateDraftRequest replaces a stored draft snapshot.
type UpdateDraftRequest struct {
	Name    string      `json:"name" binding:"required"`
	Version int         `json:"version" binding:"required"`
	Offer   offer.Offer `json:"offer"`
}

// DraftResponse is a stored draft with its aggregate.
type DraftResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Offer     *offer.Offer `json:"offer"`
	Version   int          `json:"version"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
