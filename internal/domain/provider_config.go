package domain

import "time"

// ProviderID is the identifier the CRM knows this relay's provider by.
const ProviderID = "waapify-sms"

const (
	TestStatusSuccess = "success"
	TestStatusFailed  = "failed"
)

// ProviderConfig holds one tenant's messaging gateway credentials.
type ProviderConfig struct {
	ID             string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	InstallationID string     `gorm:"type:uuid;not null;index" json:"installation_id"`
	CompanyID      string     `gorm:"type:text;not null;uniqueIndex:idx_provider_configs_tenant" json:"company_id"`
	LocationID     string     `gorm:"type:text;not null;default:'';uniqueIndex:idx_provider_configs_tenant" json:"location_id"`
	AccessToken    string     `gorm:"type:text;not null" json:"access_token"`
	InstanceID     string     `gorm:"type:text;not null;index" json:"instance_id"`
	SenderNumber   string     `gorm:"type:text" json:"sender_number"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	LastTestedAt   *time.Time `gorm:"type:timestamp with time zone" json:"last_tested_at,omitempty"`
	TestStatus     string     `gorm:"type:text" json:"test_status"`
	CreatedAt      time.Time  `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ProviderConfig) TableName() string {
	return "provider_configs"
}

func (p *ProviderConfig) TenantKey() string {
	return TenantKey(p.CompanyID, p.LocationID)
}
