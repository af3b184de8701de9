package domain

import (
	"time"

	"gorm.io/gorm"
)

type InstallationStatus string

const (
	InstallationStatusPendingOAuth InstallationStatus = "pending_oauth"
	InstallationStatusAuthorized   InstallationStatus = "authorized"
	InstallationStatusConfigured   InstallationStatus = "configured"
)

// PlaceholderToken is stored until the OAuth exchange completes.
const PlaceholderToken = "pending_oauth"

// Installation is the CRM-side registration of a tenant.
type Installation struct {
	ID           string             `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CompanyID    string             `gorm:"type:text;not null;uniqueIndex:idx_installations_tenant" json:"company_id"`
	LocationID   string             `gorm:"type:text;not null;default:'';uniqueIndex:idx_installations_tenant" json:"location_id"`
	AccessToken  string             `gorm:"type:text;not null" json:"access_token"`
	RefreshToken string             `gorm:"type:text;not null" json:"refresh_token"`
	ExpiresAt    time.Time          `gorm:"type:timestamp with time zone" json:"expires_at"`
	Status       InstallationStatus `gorm:"type:text;not null;default:'pending_oauth'" json:"status"`
	RateLimit    int                `gorm:"not null;default:0" json:"rate_limit"`
	InstalledAt  time.Time          `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"installed_at"`
	UpdatedAt    time.Time          `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (Installation) TableName() string {
	return "installations"
}

func (i *Installation) TenantKey() string {
	return TenantKey(i.CompanyID, i.LocationID)
}

// HasOAuthTokens reports whether the placeholder tokens were replaced.
func (i *Installation) HasOAuthTokens() bool {
	return i.AccessToken != "" && i.AccessToken != PlaceholderToken
}

// TokenExpired reports whether the access token needs a refresh at now.
func (i *Installation) TokenExpired(now time.Time) bool {
	if i.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(i.ExpiresAt.Add(-time.Minute))
}
