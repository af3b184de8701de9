package opensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/kingrain94/waapify-relay/internal/config"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/repository"
)

const defaultSearchSize = 50

type searchRepository struct {
	client *opensearch.Client
	config *config.OpenSearchConfig
}

func NewRepository(client *opensearch.Client, config *config.OpenSearchConfig) repository.SearchRepository {
	return &searchRepository{
		client: client,
		config: config,
	}
}

func (r *searchRepository) Index(ctx context.Context, record *domain.MessageRecord) error {
	indexTime := indexTimeOf(record)
	if err := r.CreateIndex(ctx, record.TenantKey(), indexTime); err != nil {
		return fmt.Errorf("failed to ensure index exists: %w", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal message record: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index:      r.config.GetIndexName(record.TenantKey(), indexTime),
		DocumentID: record.ID,
		Body:       strings.NewReader(string(data)),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

func (r *searchRepository) BulkIndex(ctx context.Context, records []domain.MessageRecord) error {
	if len(records) == 0 {
		return nil
	}

	groups := make(map[string][]domain.MessageRecord)
	for _, record := range records {
		indexName := r.config.GetIndexName(record.TenantKey(), indexTimeOf(&record))
		groups[indexName] = append(groups[indexName], record)
	}

	for indexName, group := range groups {
		if err := r.bulkIndexGroup(ctx, indexName, group); err != nil {
			return fmt.Errorf("failed to bulk index group for index %s: %w", indexName, err)
		}
	}

	return nil
}

func (r *searchRepository) bulkIndexGroup(ctx context.Context, indexName string, records []domain.MessageRecord) error {
	if err := r.CreateIndex(ctx, records[0].TenantKey(), indexTimeOf(&records[0])); err != nil {
		return fmt.Errorf("failed to ensure index exists: %w", err)
	}

	var body strings.Builder
	for _, record := range records {
		action, err := json.Marshal(map[string]any{
			"index": map[string]any{"_index": indexName, "_id": record.ID},
		})
		if err != nil {
			return fmt.Errorf("failed to marshal action: %w", err)
		}
		body.Write(action)
		body.WriteString("\n")

		doc, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		body.Write(doc)
		body.WriteString("\n")
	}

	req := opensearchapi.BulkRequest{Body: strings.NewReader(body.String())}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to execute bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk request failed: %s", res.String())
	}

	return nil
}

func (r *searchRepository) Search(ctx context.Context, filter *domain.MessageFilter) ([]domain.MessageRecord, error) {
	queryJSON, err := json.Marshal(buildSearchQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	tenantKey := domain.TenantKey(filter.CompanyID, filter.LocationID)
	req := opensearchapi.SearchRequest{
		Index: []string{r.config.GetIndexPattern(tenantKey)},
		Body:  strings.NewReader(string(queryJSON)),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return []domain.MessageRecord{}, nil
		}
		return nil, fmt.Errorf("search request failed: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source domain.MessageRecord `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	records := make([]domain.MessageRecord, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		records = append(records, hit.Source)
	}

	return records, nil
}

// buildSearchQuery constructs the OpenSearch query for a message filter.
func buildSearchQuery(filter *domain.MessageFilter) map[string]any {
	must := []map[string]any{
		termQuery("company_id", filter.CompanyID),
		termQuery("location_id", filter.LocationID),
	}
	if filter.Status != "" {
		must = append(must, termQuery("status", filter.Status))
	}
	if filter.Kind != "" {
		must = append(must, termQuery("kind", filter.Kind))
	}
	if filter.Query != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":  filter.Query,
				"fields": []string{"body", "recipient"},
			},
		})
	}
	if !filter.StartTime.IsZero() || !filter.EndTime.IsZero() {
		createdAt := map[string]any{}
		if !filter.StartTime.IsZero() {
			createdAt["gte"] = filter.StartTime
		}
		if !filter.EndTime.IsZero() {
			createdAt["lte"] = filter.EndTime
		}
		must = append(must, map[string]any{"range": map[string]any{"created_at": createdAt}})
	}

	size := filter.Limit
	if size <= 0 {
		size = defaultSearchSize
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{"must": must},
		},
		"size": size,
		"sort": []map[string]any{
			{"created_at": map[string]any{"order": "desc"}},
		},
	}
}

func termQuery(field, value string) map[string]any {
	return map[string]any{"term": map[string]any{field: value}}
}

func indexTimeOf(record *domain.MessageRecord) time.Time {
	if record.CreatedAt.IsZero() {
		return time.Now()
	}
	return record.CreatedAt
}

func indexMapping() string {
	return `{
		"mappings": {
			"properties": {
				"id": { "type": "keyword" },
				"installation_id": { "type": "keyword" },
				"company_id": { "type": "keyword" },
				"location_id": { "type": "keyword" },
				"crm_message_id": { "type": "keyword" },
				"provider_message_id": { "type": "keyword" },
				"recipient": { "type": "keyword" },
				"body": { "type": "text" },
				"kind": { "type": "keyword" },
				"status": { "type": "keyword" },
				"error": { "type": "text" },
				"media_url": { "type": "keyword", "index": false },
				"filename": { "type": "keyword", "index": false },
				"sent_at": { "type": "date" },
				"delivered_at": { "type": "date" },
				"created_at": { "type": "date" },
				"updated_at": { "type": "date" }
			}
		},
		"settings": {
			"index": {
				"number_of_shards": 1,
				"number_of_replicas": 1,
				"refresh_interval": "1s"
			}
		}
	}`
}

func (r *searchRepository) CreateIndex(ctx context.Context, tenantKey string, t time.Time) error {
	indexName := r.config.GetIndexName(tenantKey, t)

	exists := opensearchapi.IndicesExistsRequest{Index: []string{indexName}}
	res, err := exists.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	create := opensearchapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(indexMapping()),
	}
	res, err = create.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	// Another writer may have created it in between.
	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("error creating index: %s", res.String())
	}

	return nil
}
