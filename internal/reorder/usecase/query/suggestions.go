package query

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	catalog "github.com/tair/parts-replenishment/internal/catalog/domain"
	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/pkg/money"
)

// Suggestion is one part worth reordering now
type Suggestion struct {
	PartID          uint            `json:"part_id"`
	PartNumber      string          `json:"part_number"`
	PartName        string          `json:"part_name"`
	VendorID        *uint           `json:"vendor_id,omitempty"`
	VendorName      string          `json:"vendor_name,omitempty"`
	CurrentQuantity int             `json:"current_quantity"`
	ReorderPoint    int             `json:"reorder_point"`
	ReorderQuantity int             `json:"reorder_quantity"`
	Shortfall       int             `json:"shortfall"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	EstimatedCost   decimal.Decimal `json:"estimated_cost"`
	LeadTimeDays    int             `json:"lead_time_days"`
}

// VendorSuggestions groups suggestions that can go on one order.
// Parts without a vendor are grouped under VendorID 0.
type VendorSuggestions struct {
	VendorID           uint            `json:"vendor_id"`
	VendorName         string          `json:"vendor_name"`
	Items              []Suggestion    `json:"items"`
	TotalEstimatedCost decimal.Decimal `json:"total_estimated_cost"`
}

// SuggestionSummary totals the suggestions
type SuggestionSummary struct {
	TotalItems         int             `json:"total_items"`
	TotalEstimatedCost decimal.Decimal `json:"total_estimated_cost"`
	VendorCount        int             `json:"vendor_count"`
}

// Suggestions is the reorder suggestions report
type Suggestions struct {
	Suggestions []Suggestion        `json:"suggestions"`
	ByVendor    []VendorSuggestions `json:"by_vendor"`
	Summary     SuggestionSummary   `json:"summary"`
}

// SuggestionsHandler builds the report from current low stock
type SuggestionsHandler struct {
	stock domain.StockReader
}

func NewSuggestionsHandler(stock domain.StockReader) *SuggestionsHandler {
	return &SuggestionsHandler{stock: stock}
}

// Handle sorts suggestions by shortfall, largest first
func (h *SuggestionsHandler) Handle(ctx context.Context) (*Suggestions, error) {
	low, err := h.stock.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	report := &Suggestions{
		Suggestions: make([]Suggestion, 0, len(low)),
		ByVendor:    []VendorSuggestions{},
	}
	for _, inv := range low {
		s := Suggestion{
			PartID:          inv.PartID,
			CurrentQuantity: inv.QuantityOnHand,
			ReorderPoint:    inv.ReorderPoint,
			ReorderQuantity: inv.ReorderQuantity,
			Shortfall:       inv.ReorderPoint - inv.QuantityOnHand,
			LeadTimeDays:    catalog.DefaultLeadTimeDays,
		}
		if part := inv.Part; part != nil {
			s.PartNumber = part.PartNumber
			s.PartName = part.Name
			s.UnitPrice = part.UnitPrice
			s.VendorID = part.VendorID
			if part.Vendor != nil {
				s.VendorName = part.Vendor.Name
				s.LeadTimeDays = part.Vendor.EffectiveLeadTime()
			}
		}
		s.EstimatedCost = money.LineTotal(s.ReorderQuantity, s.UnitPrice)
		report.Suggestions = append(report.Suggestions, s)
	}
	sort.SliceStable(report.Suggestions, func(i, j int) bool {
		return report.Suggestions[i].Shortfall > report.Suggestions[j].Shortfall
	})

	groups := make(map[uint]int)
	total := decimal.Zero
	for _, s := range report.Suggestions {
		total = total.Add(s.EstimatedCost)

		var vendorID uint
		if s.VendorID != nil {
			vendorID = *s.VendorID
		}
		idx, ok := groups[vendorID]
		if !ok {
			idx = len(report.ByVendor)
			groups[vendorID] = idx
			report.ByVendor = append(report.ByVendor, VendorSuggestions{VendorID: vendorID, VendorName: s.VendorName})
		}
		group := &report.ByVendor[idx]
		group.Items = append(group.Items, s)
		group.TotalEstimatedCost = group.TotalEstimatedCost.Add(s.EstimatedCost)
	}
	sort.SliceStable(report.ByVendor, func(i, j int) bool {
		return len(report.ByVendor[i].Items) > len(report.ByVendor[j].Items)
	})

	vendorCount := 0
	for _, group := range report.ByVendor {
		if group.VendorID != 0 {
			vendorCount++
		}
	}
	report.Summary = SuggestionSummary{
		TotalItems:         len(report.Suggestions),
		TotalEstimatedCost: money.Round(total),
		VendorCount:        vendorCount,
	}
	return report, nil
}
