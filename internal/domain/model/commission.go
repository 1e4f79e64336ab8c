package model

import "time"

// CommissionChange is an audit record of a marketplace commission rate update.
type CommissionChange struct {
	ID        int64
	Rate      float64
	ChangedBy int64
	CreatedAt time.Time
}
