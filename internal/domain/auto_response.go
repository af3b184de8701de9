package domain

import (
	"strings"
	"time"
)

const (
	DefaultAIModel       = "gpt-3.5-turbo"
	DefaultAIMaxTokens   = 300
	DefaultAITemperature = 0.7
	DefaultAIContext     = "You are a helpful business assistant."
	DefaultAIPersona     = "professional and friendly"
)

// AutoResponseConfig drives keyword-triggered replies for one tenant.
type AutoResponseConfig struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	InstallationID string    `gorm:"type:uuid;index" json:"installation_id"`
	CompanyID      string    `gorm:"type:text;not null;uniqueIndex:idx_auto_response_configs_tenant" json:"company_id"`
	LocationID     string    `gorm:"type:text;not null;default:'';uniqueIndex:idx_auto_response_configs_tenant" json:"location_id"`
	Enabled        bool      `gorm:"not null;default:false" json:"enabled"`
	Keywords       string    `gorm:"type:text;not null;default:''" json:"keywords"`
	Context        string    `gorm:"type:text" json:"context"`
	Persona        string    `gorm:"type:text" json:"persona"`
	APIKey         string    `gorm:"column:api_key;type:text" json:"-"`
	Model          string    `gorm:"type:text" json:"model"`
	MaxTokens      int       `gorm:"not null" json:"max_tokens"`
	Temperature    float64   `gorm:"not null" json:"temperature"`
	CreatedAt      time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (AutoResponseConfig) TableName() string {
	return "auto_response_configs"
}

// NewAutoResponseConfig returns the disabled defaults for a tenant.
func NewAutoResponseConfig(companyID, locationID string) *AutoResponseConfig {
	return &AutoResponseConfig{
		CompanyID:   companyID,
		LocationID:  locationID,
		Context:     DefaultAIContext,
		Persona:     DefaultAIPersona,
		Model:       DefaultAIModel,
		MaxTokens:   DefaultAIMaxTokens,
		Temperature: DefaultAITemperature,
	}
}

// KeywordList splits the stored comma-separated keywords, dropping blanks.
func (c *AutoResponseConfig) KeywordList() []string {
	keywords := []string{}
	for _, k := range strings.Split(c.Keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func (c *AutoResponseConfig) SetKeywords(keywords []string) {
	cleaned := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	c.Keywords = strings.Join(cleaned, ",")
}
