package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kinetic/internal/domain/purchase"
	"kinetic/internal/domain/record"
)

// RecordPurchaseInput carries input for recording a program purchase.
type RecordPurchaseInput struct {
	UserID  string
	Program string
	Amount  int
}

// RecordPurchaseDeps holds dependencies for RecordPurchase.
type RecordPurchaseDeps struct {
	Records RecordStore
}

// ErrPurchaseNotFound rejects a settle of an unknown purchase.
var ErrPurchaseNotFound = errors.New("purchase not found")

// ExecuteRecordPurchase records a pending purchase for a user.
// PRE: UserID references a live user; amount is positive
// POST: One pending purchase appended; every other slice untouched
func ExecuteRecordPurchase(ctx context.Context, input RecordPurchaseInput, deps RecordPurchaseDeps) (purchase.Purchase, error) {
	var p purchase.Purchase

	err := deps.Records.Update(ctx, func(agg *record.Aggregate) error {
		if agg.FindUserByID(input.UserID) == nil {
			return ErrUserNotFound
		}

		p = purchase.Purchase{
			ID:      uuid.New().String(),
			UserID:  input.UserID,
			Program: input.Program,
			Amount:  input.Amount,
			Date:    time.Now(),
			Status:  purchase.StatusPending,
		}
		if err := p.Validate(); err != nil {
			return err
		}
		agg.Purchases = append(agg.Purchases, p)
		return nil
	})
	if err != nil {
		return purchase.Purchase{}, err
	}

	slog.Info("purchase_event", "event", "recorded", "user", input.UserID, "program", input.Program, "amount", input.Amount)
	return p, nil
}

// ExecuteSettlePurchase completes or cancels a pending purchase.
// PRE: Purchase is pending
// POST: Status transitioned; other slices untouched
func ExecuteSettlePurchase(ctx context.Context, purchaseID string, complete bool, deps RecordPurchaseDeps) error {
	err := deps.Records.Update(ctx, func(agg *record.Aggregate) error {
		for i := range agg.Purchases {
			if agg.Purchases[i].ID != purchaseID {
				continue
			}
			if complete {
				return agg.Purchases[i].Complete()
			}
			return agg.Purchases[i].Cancel()
		}
		return ErrPurchaseNotFound
	})
	if err != nil {
		return err
	}

	slog.Info("purchase_event", "event", "settled", "purchase", purchaseID, "completed", complete)
	return nil
}
