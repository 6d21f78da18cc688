package query

import (
	"context"

	"github.com/tair/parts-replenishment/internal/catalog/domain"
)

// GetPartHandler handles get part query
type GetPartHandler struct {
	repo domain.Repository
}

// NewGetPartHandler creates a new get part handler
func NewGetPartHandler(repo domain.Repository) *GetPartHandler {
	return &GetPartHandler{repo: repo}
}

// Handle returns the part with its vendor
func (h *GetPartHandler) Handle(ctx context.Context, partID uint) (*domain.Part, error) {
	return h.repo.FindPart(ctx, partID)
}

// ListVendorsHandler handles list vendors query
type ListVendorsHandler struct {
	repo domain.Repository
}

// NewListVendorsHandler creates a new list vendors handler
func NewListVendorsHandler(repo domain.Repository) *ListVendorsHandler {
	return &ListVendorsHandler{repo: repo}
}

// Handle returns every vendor ordered by name
func (h *ListVendorsHandler) Handle(ctx context.Context) ([]domain.Vendor, error) {
	return h.repo.ListVendors(ctx)
}
