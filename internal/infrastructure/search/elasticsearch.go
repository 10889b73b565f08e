package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"wmhn-clinic-api/config"
	"wmhn-clinic-api/internal/domain/entity"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

// DoctorIndex is the full-text index behind public doctor search.
type DoctorIndex interface {
	EnsureIndex(ctx context.Context) error
	Index(ctx context.Context, doctor entity.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string) ([]entity.Doctor, error)
}

type elasticsearchDoctorIndex struct {
	client *elasticsearch.Client
	index  string
}

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":             {"type": "keyword"},
      "slug":           {"type": "keyword"},
      "name":           {"type": "text"},
      "title":          {"type": "text"},
      "post_nominals":  {"type": "text"},
      "role":           {"type": "text"},
      "interests":      {"type": "text"},
      "snippet":        {"type": "text"},
      "bio":            {"type": "text", "index": false},
      "qualifications": {"type": "text", "index": false},
      "display_order":  {"type": "integer"},
      "is_active":      {"type": "boolean"},
      "created_at":     {"type": "date"},
      "updated_at":     {"type": "date"}
    }
  }
}`

func NewElasticsearchDoctorIndex(cfg config.ElasticsearchConfig) (DoctorIndex, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.URLs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	// Check connectivity
	res, err := es.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("Elasticsearch ping error: %s", res.Status())
	}

	return &elasticsearchDoctorIndex{client: es, index: cfg.Index}, nil
}

func (e *elasticsearchDoctorIndex) EnsureIndex(ctx context.Context) error {
	res, err := e.client.Indices.Exists([]string{e.index}, e.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("Elasticsearch error: %s", res.Status())
	}

	res, err = e.client.Indices.Create(
		e.index,
		e.client.Indices.Create.WithContext(ctx),
		e.client.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping))),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("Elasticsearch error: %s", res.String())
	}
	return nil
}

func (e *elasticsearchDoctorIndex) Index(ctx context.Context, doctor entity.Doctor) error {
	doc, err := json.Marshal(doctor)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: doctor.ID.String(),
		Body:       bytes.NewReader(doc),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("Elasticsearch error: %s", res.String())
	}
	return nil
}

func (e *elasticsearchDoctorIndex) Delete(ctx context.Context, id uuid.UUID) error {
	req := esapi.DeleteRequest{
		Index:      e.index,
		DocumentID: id.String(),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("Elasticsearch error: %s", res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source entity.Doctor `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search matches the query against the searchable text fields of active
// doctors only, best match first.
func (e *elasticsearchDoctorIndex) Search(ctx context.Context, query string) ([]entity.Doctor, error) {
	body := map[string]interface{}{
		"size": 50,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":     query,
						"fields":    []string{"name^3", "interests^2", "title", "role", "snippet"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"is_active": true},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("Elasticsearch error: %s", res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	doctors := make([]entity.Doctor, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		if hit.Source.IsActive {
			doctors = append(doctors, hit.Source)
		}
	}
	return doctors, nil
}
