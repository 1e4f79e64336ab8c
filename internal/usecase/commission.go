package usecase

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/polkiloo/marketplace/internal/config"
	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

// DefaultCommissionRate applies when no valid rate is configured.
const DefaultCommissionRate = 0.05

// RateProvider exposes the commission rate captured per order.
type RateProvider interface {
	Rate() float64
}

// NormalizeRate interprets a configured commission value. Values above 1 are
// treated as percentages and divided by 100. Reports false when the result
// is not a fraction in [0, 1].
func NormalizeRate(raw float64) (float64, bool) {
	if math.IsNaN(raw) {
		return 0, false
	}
	normalized := raw
	if normalized > 1 {
		normalized = normalized / 100
	}
	if normalized < 0 || normalized > 1 {
		return 0, false
	}
	return normalized, true
}

// CommissionUseCase owns the process-wide commission rate and its audit trail.
// Reads are cheap; updates go through the history repository so every change
// is attributable.
type CommissionUseCase struct {
	mu      sync.RWMutex
	rate    float64
	history repository.CommissionRepository
}

// NewCommissionUseCase seeds the rate from configuration, falling back to the
// default when the configured value does not normalize.
func NewCommissionUseCase(cfg *config.Config, history repository.CommissionRepository) *CommissionUseCase {
	rate, ok := NormalizeRate(cfg.CommissionRate)
	if !ok {
		rate = DefaultCommissionRate
	}
	return &CommissionUseCase{rate: rate, history: history}
}

// Rate returns the current commission rate as a fraction in [0, 1].
func (u *CommissionUseCase) Rate() float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.rate
}

// Hydrate replaces the configured rate with the most recent audited change,
// when one exists. Called once at startup.
func (u *CommissionUseCase) Hydrate(ctx context.Context) error {
	latest, err := u.history.Latest(ctx)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if rate, ok := NormalizeRate(latest.Rate); ok {
		u.mu.Lock()
		u.rate = rate
		u.mu.Unlock()
	}
	return nil
}

// Update normalizes and applies a new rate, recording the change. Running
// orders keep the rate captured when they were placed.
func (u *CommissionUseCase) Update(ctx context.Context, raw float64, changedBy int64) (float64, error) {
	rate, ok := NormalizeRate(raw)
	if !ok {
		return 0, domainErrors.ErrInvalidRate
	}

	if _, err := u.history.RecordChange(ctx, rate, changedBy); err != nil {
		return 0, err
	}

	u.mu.Lock()
	u.rate = rate
	u.mu.Unlock()
	return rate, nil
}

// History returns the most recent rate changes, newest first.
func (u *CommissionUseCase) History(ctx context.Context, limit int) ([]model.CommissionChange, error) {
	return u.history.History(ctx, limit)
}
