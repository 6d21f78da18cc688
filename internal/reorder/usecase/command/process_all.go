package command

import (
	"context"

	orderdomain "github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/pkg/logger"
	"github.com/tair/parts-replenishment/pkg/tracing"
)

// AlertOutcome reports what happened to one alert in a batch
type AlertOutcome struct {
	AlertID    uint               `json:"alert_id"`
	PartNumber string             `json:"part_number"`
	Success    bool               `json:"success"`
	Order      *orderdomain.Order `json:"order,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// ProcessAllResult aggregates a batch run
type ProcessAllResult struct {
	Processed int            `json:"processed"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Results   []AlertOutcome `json:"results"`
}

// ProcessAllHandler processes every pending alert, one transaction each
type ProcessAllHandler struct {
	alerts  domain.AlertRepository
	process *ProcessAlertHandler
}

// NewProcessAllHandler creates a new process all handler
func NewProcessAllHandler(alerts domain.AlertRepository, process *ProcessAlertHandler) *ProcessAllHandler {
	return &ProcessAllHandler{alerts: alerts, process: process}
}

// Handle never stops on a failed alert; the failure goes into the report
func (h *ProcessAllHandler) Handle(ctx context.Context) (result *ProcessAllResult, err error) {
	ctx, span := tracer.Start(ctx, "reorder.ProcessAll")
	defer func() { tracing.Finish(span, err) }()

	pending, err := h.alerts.FindPending(ctx)
	if err != nil {
		return nil, err
	}

	result = &ProcessAllResult{Results: make([]AlertOutcome, 0, len(pending))}
	for _, alert := range pending {
		outcome := AlertOutcome{AlertID: alert.ID, PartNumber: alert.PartNumber}
		processed, err := h.process.Handle(ctx, alert.ID)
		if err != nil {
			outcome.Error = err.Error()
			result.Failed++
		} else {
			outcome.Success = true
			outcome.Order = processed.Order
			result.Succeeded++
		}
		result.Results = append(result.Results, outcome)
	}
	result.Processed = len(pending)

	logger.Info(ctx).
		Int("processed", result.Processed).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("Pending reorder alerts processed")
	return result, nil
}
