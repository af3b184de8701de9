package domain

import "time"

// RateLimitCounter is the fixed-window message counter of one tenant.
type RateLimitCounter struct {
	TenantKey     string    `gorm:"primaryKey;type:text" json:"tenant_key"`
	Count         int       `gorm:"not null;default:0" json:"count"`
	WindowResetAt time.Time `gorm:"type:timestamp with time zone;not null" json:"window_reset_at"`
	Limit         int       `gorm:"column:limit_per_window;not null;default:10" json:"limit"`
	UpdatedAt     time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (RateLimitCounter) TableName() string {
	return "rate_limit_counters"
}

type RateLimitDecision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter int
	ResetAt    time.Time
}
