package api

import (
	"context"
	"encoding/csv"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/pkg/utils"
)

const (
	defaultMessageLimit = 50
	exportMessageLimit  = 5000
)

type MessageLog interface {
	Query(ctx context.Context, filter domain.MessageFilter) ([]domain.MessageRecord, error)
	FindByEitherID(ctx context.Context, companyID, locationID, id string) (*domain.MessageRecord, error)
	Stats(ctx context.Context, companyID, locationID string) (*domain.MessageStats, error)
}

type MessageHandler struct {
	*BaseHandler
	log MessageLog
}

func NewMessageHandler(log MessageLog) *MessageHandler {
	return &MessageHandler{log: log}
}

// ListMessages List the tenant's message records
// @Summary List messages
// @Description Most recent first. A text query is served by the search index.
// @Tags    messages
// @Produce json
// @Param   limit query int false "Maximum records (default 50, max 500)"
// @Param   q query string false "Text search over body and recipient"
// @Param   status query string false "pending, sent, delivered or failed"
// @Param   kind query string false "text, media or ai_response"
// @Param   start_time query string false "Filter by start time (RFC3339 or YYYY-MM-DD)" example:"2025-07-17T00:00:00Z"
// @Param   end_time query string false "Filter by end time (RFC3339 or YYYY-MM-DD)" example:"2025-07-17T23:59:59Z"
// @Success 200 {array} dto.MessageResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /messages [get]
func (h *MessageHandler) ListMessages(c *gin.Context) {
	filter, err := h.filterFromQuery(c, defaultMessageLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	records, err := h.log.Query(h.RequestCtx(c), *filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromMessageRecords(records))
}

// GetMessage Get one message record
// @Summary Get message
// @Description Looks the record up by CRM message id or gateway message id
// @Tags    messages
// @Produce json
// @Param   id path string true "CRM or gateway message ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /messages/{id} [get]
func (h *MessageHandler) GetMessage(c *gin.Context) {
	companyID, locationID, err := h.Tenant(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	record, err := h.log.FindByEitherID(h.RequestCtx(c), companyID, locationID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMessageRecord(record))
}

// GetStats Get message statistics
// @Summary Message statistics
// @Description Counts of the tenant's message records by kind and status
// @Tags    messages
// @Produce json
// @Success 200 {object} dto.MessageStatsResponse
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /messages/stats [get]
func (h *MessageHandler) GetStats(c *gin.Context) {
	companyID, locationID, err := h.Tenant(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	stats, err := h.log.Stats(h.RequestCtx(c), companyID, locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromMessageStats(stats))
}

// ExportMessages Export message records as JSON or CSV
// @Summary Export messages
// @Description Same filters as the list endpoint
// @Tags    messages
// @Produce json,text/csv
// @Param   format query string false "Export format (json or csv)" default(json)
// @Param   status query string false "pending, sent, delivered or failed"
// @Param   start_time query string false "Filter by start time (RFC3339 or YYYY-MM-DD)"
// @Param   end_time query string false "Filter by end time (RFC3339 or YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /messages/export [get]
func (h *MessageHandler) ExportMessages(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "csv" {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "Invalid format. Must be 'json' or 'csv'"})
		return
	}

	filter, err := h.filterFromQuery(c, exportMessageLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	records, err := h.log.Query(h.RequestCtx(c), *filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		return
	}

	if format == "json" {
		c.Header("Content-Disposition", "attachment; filename=messages.json")
		c.JSON(http.StatusOK, dto.FromMessageRecords(records))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=messages.csv")
	c.Header("Content-Type", "text/csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	header := []string{"ID", "CRMMessageID", "ProviderMessageID", "Recipient", "Kind", "Status", "Error", "Body", "CreatedAt"}
	if err := writer.Write(header); err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "Failed to write CSV header"})
		return
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.CRMMessageID,
			deref(r.ProviderMessageID),
			r.Recipient,
			string(r.Kind),
			string(r.Status),
			deref(r.Error),
			r.Body,
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return
		}
	}
}

func (h *MessageHandler) filterFromQuery(c *gin.Context, defaultLimit int) (*domain.MessageFilter, error) {
	companyID, locationID, err := h.Tenant(c)
	if err != nil {
		return nil, err
	}

	var query dto.ListMessagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return nil, err
	}

	filter := &domain.MessageFilter{
		CompanyID:  companyID,
		LocationID: locationID,
		Query:      query.Query,
		Status:     query.Status,
		Kind:       query.Kind,
		Limit:      query.Limit,
	}
	if filter.Limit == 0 {
		filter.Limit = defaultLimit
	}
	if query.StartTime != "" {
		if filter.StartTime, err = utils.ParseUserTime(query.StartTime, false); err != nil {
			return nil, err
		}
	}
	if query.EndTime != "" {
		if filter.EndTime, err = utils.ParseUserTime(query.EndTime, true); err != nil {
			return nil, err
		}
	}
	return filter, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
