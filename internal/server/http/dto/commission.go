package dto

import (
	"time"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// UpdateCommissionRequest carries a new commission rate. Values above 1 are
// interpreted as percentages.
type UpdateCommissionRequest struct {
	Rate float64 `json:"rate"`
}

// CommissionChangeResponse is one entry of the rate audit trail.
type CommissionChangeResponse struct {
	Rate      float64   `json:"rate"`
	ChangedBy int64     `json:"changedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommissionResponse reports the active rate and recent changes.
type CommissionResponse struct {
	Rate    float64                    `json:"rate"`
	History []CommissionChangeResponse `json:"history"`
}

// NewCommissionResponse maps the rate and audit trail to the API shape.
func NewCommissionResponse(rate float64, history []model.CommissionChange) CommissionResponse {
	changes := make([]CommissionChangeResponse, 0, len(history))
	for _, change := range history {
		changes = append(changes, CommissionChangeResponse{
			Rate:      change.Rate,
			ChangedBy: change.ChangedBy,
			CreatedAt: change.CreatedAt,
		})
	}
	return CommissionResponse{Rate: rate, History: changes}
}
