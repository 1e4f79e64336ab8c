package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// CommissionRepository keeps the audit trail of commission rate updates.
type CommissionRepository interface {
	RecordChange(ctx context.Context, rate float64, changedBy int64) (*model.CommissionChange, error)
	Latest(ctx context.Context) (*model.CommissionChange, error)
	History(ctx context.Context, limit int) ([]model.CommissionChange, error)
}
