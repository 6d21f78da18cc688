package command

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
	"github.com/tair/parts-replenishment/pkg/logger"
	"github.com/tair/parts-replenishment/pkg/metrics"
	"github.com/tair/parts-replenishment/pkg/tracing"
)

var tracer = otel.Tracer("inventory-ledger")

// entry is what an operation wants written: the signed change and its log metadata
type entry struct {
	changeType  domain.ChangeType
	delta       int
	reason      string
	performedBy string
	orderID     *uint
}

// ledger applies one quantity change and its log row in a single transaction
type ledger struct {
	repo domain.InventoryRepository
	tx   *database.Transactor
	now  func() time.Time
}

func newLedger(repo domain.InventoryRepository, tx *database.Transactor) ledger {
	return ledger{
		repo: repo,
		tx:   tx,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// apply locks the part's inventory, asks change for the entry to write and commits
// the new quantity with its log. change may also stamp dates on inv.
func (l ledger) apply(ctx context.Context, op string, partID uint, change func(inv *domain.Inventory, now time.Time) (entry, error)) (result *domain.Mutation, err error) {
	ctx, span := tracer.Start(ctx, "ledger."+op,
		trace.WithAttributes(attribute.Int("inventory.part_id", int(partID))),
	)
	defer func() { tracing.Finish(span, err) }()

	err = l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		inv, err := l.repo.FindByPartIDForUpdate(ctx, partID)
		if err != nil {
			return err
		}

		now := l.now()
		e, err := change(inv, now)
		if err != nil {
			return err
		}

		previous := inv.QuantityOnHand
		next := previous + e.delta
		if next < 0 {
			return apperror.Validation("insufficient inventory for part %d: on hand %d, change %d", partID, previous, e.delta)
		}
		inv.QuantityOnHand = next
		if err := l.repo.Update(ctx, inv); err != nil {
			return err
		}

		log := &domain.Log{
			PartID:         partID,
			ChangeType:     e.changeType,
			QuantityChange: e.delta,
			PreviousQty:    previous,
			NewQty:         next,
			OrderID:        e.orderID,
			Reason:         e.reason,
			PerformedBy:    e.performedBy,
			CreatedAt:      now,
		}
		if err := l.repo.AppendLog(ctx, log); err != nil {
			return err
		}

		result = &domain.Mutation{Inventory: inv, Log: log}
		return nil
	})
	if err != nil {
		if apperror.IsValidation(err) {
			metrics.LedgerRejectionsTotal.WithLabelValues(op).Inc()
		}
		return nil, err
	}

	metrics.LedgerMutationsTotal.WithLabelValues(string(result.Log.ChangeType)).Inc()
	span.SetAttributes(
		attribute.Int("inventory.previous_qty", result.Log.PreviousQty),
		attribute.Int("inventory.new_qty", result.Log.NewQty),
	)
	logger.Info(ctx).
		Str("operation", op).
		Uint("part_id", partID).
		Int("previous_qty", result.Log.PreviousQty).
		Int("new_qty", result.Log.NewQty).
		Str("reason", result.Log.Reason).
		Msg("Inventory updated")
	return result, nil
}

// Ledger bundles the inventory mutation handlers
type Ledger struct {
	Adjust         *AdjustHandler
	Receive        *ReceiveHandler
	Ship           *ShipHandler
	Count          *CountHandler
	UpdateSettings *UpdateSettingsHandler
}

// NewLedger creates every mutation handler over one repository
func NewLedger(repo domain.InventoryRepository, tx *database.Transactor) *Ledger {
	return &Ledger{
		Adjust:         NewAdjustHandler(repo, tx),
		Receive:        NewReceiveHandler(repo, tx),
		Ship:           NewShipHandler(repo, tx),
		Count:          NewCountHandler(repo, tx),
		UpdateSettings: NewUpdateSettingsHandler(repo, tx),
	}
}
