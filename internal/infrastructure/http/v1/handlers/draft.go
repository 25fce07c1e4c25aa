package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"offerte/internal/core/apperror"
	"offerte/internal/infrastructure/http/v1/dto"
	"offerte/internal/infrastructure/storage/postgres"
)

// DraftHandler exposes CRUD over stored wizard drafts.
type DraftHandler struct {
	*BaseHandler
	repo *postgres.DraftRepo
}

// NewDraftHandler creates a draft handler.
func NewDraftHandler(base *BaseHandler, repo *postgres.DraftRepo) *DraftHandler {
	return &DraftHandler{BaseHandler: base, repo: repo}
}

// RegisterRoutes wires the draft endpoints.
func (h *DraftHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create stores a new draft.
func (h *DraftHandler) Create(c *gin.Context) {
	var req dto.CreateDraftRequest
	if !h.BindJSON(c, &req) {
		return
	}

	draft, err := h.repo.Create(c.Request.Context(), req.Name, &req.Offer)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, draft.ID.String())
}

// Get returns a draft with its aggregate.
func (h *DraftHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	draft, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DraftResponse{
		ID:        draft.ID,
		Name:      draft.Name,
		Offer:     draft.Offer,
		Version:   draft.Version,
		CreatedAt: draft.CreatedAt,
		UpdatedAt: draft.UpdatedAt,
	})
}

// Update replaces a draft snapshot with optimistic locking.
func (h *DraftHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateDraftRequest
	if !h.BindJSON(c, &req) {
		return
	}

	draft, err := h.repo.Update(c.Request.Context(), id, req.Version, req.Name, &req.Offer)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DraftResponse{
		ID:        draft.ID,
		Name:      draft.Name,
		Offer:     draft.Offer,
		Version:   draft.Version,
		CreatedAt: draft.CreatedAt,
		UpdatedAt: draft.UpdatedAt,
	})
}

// List returns draft summaries, newest first.
func (h *DraftHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	drafts, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}
	if drafts == nil {
		drafts = []postgres.DraftSummary{}
	}
	h.OK(c, gin.H{"drafts": drafts})
}

// Delete removes a draft.
func (h *DraftHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "draft deleted")
}

func (h *DraftHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewInvalidInput("invalid draft id").WithDetail("id", c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}
