package dto

import (
	"github.com/kingrain94/waapify-relay/internal/domain"
)

func FromMessageRecord(record *domain.MessageRecord) *MessageResponse {
	return &MessageResponse{
		ID:                record.ID,
		CompanyID:         record.CompanyID,
		LocationID:        record.LocationID,
		CRMMessageID:      record.CRMMessageID,
		ProviderMessageID: record.ProviderMessageID,
		Recipient:         record.Recipient,
		Body:              record.Body,
		Kind:              string(record.Kind),
		Status:            string(record.Status),
		Error:             record.Error,
		MediaURL:          record.MediaURL,
		Filename:          record.Filename,
		SentAt:            record.SentAt,
		DeliveredAt:       record.DeliveredAt,
		CreatedAt:         record.CreatedAt,
	}
}

func FromMessageRecords(records []domain.MessageRecord) []MessageResponse {
	responses := make([]MessageResponse, len(records))
	for i := range records {
		responses[i] = *FromMessageRecord(&records[i])
	}
	return responses
}

func FromMessageStats(stats *domain.MessageStats) *MessageStatsResponse {
	return &MessageStatsResponse{
		Total:    stats.Total,
		ByKind:   stats.ByKind,
		ByStatus: stats.ByStatus,
	}
}

func FromAutoResponseConfig(config *domain.AutoResponseConfig) *AutoResponseResponse {
	return &AutoResponseResponse{
		Enabled:     config.Enabled,
		Keywords:    config.KeywordList(),
		Context:     config.Context,
		Persona:     config.Persona,
		Model:       config.Model,
		MaxTokens:   config.MaxTokens,
		Temperature: config.Temperature,
		HasAPIKey:   config.APIKey != "",
		UpdatedAt:   config.UpdatedAt,
	}
}

// ApplyTo copies the fields present in the request onto config.
func (r *UpdateAutoResponseRequest) ApplyTo(config *domain.AutoResponseConfig) {
	if r.Enabled != nil {
		config.Enabled = *r.Enabled
	}
	if r.Keywords != nil {
		config.SetKeywords(r.Keywords)
	}
	if r.Context != nil {
		config.Context = *r.Context
	}
	if r.Persona != nil {
		config.Persona = *r.Persona
	}
	if r.APIKey != nil {
		config.APIKey = *r.APIKey
	}
	if r.Model != nil {
		config.Model = *r.Model
	}
	if r.MaxTokens != nil {
		config.MaxTokens = *r.MaxTokens
	}
	if r.Temperature != nil {
		config.Temperature = *r.Temperature
	}
}
