// Package storage содержит реализации хранилищ: профили заведений в Elasticsearch/OpenSearch
// или Badger, пожелания и заказы в PostgreSQL.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/goccy/go-json"

	"github.com/akozadaev/go_lunch_recommender/internal/models"
)

// ErrNotFound возвращается, когда запись не найдена
var ErrNotFound = errors.New("not found")

// ElasticsearchStorage хранит профили заведений в Elasticsearch/OpenSearch.
// Чтение и массовая запись идут прямыми HTTP запросами для совместимости с OpenSearch.
type ElasticsearchStorage struct {
	client     *elasticsearch.Client // Официальный клиент Elasticsearch
	index      string                // Имя индекса профилей
	httpClient *http.Client          // HTTP клиент для прямых запросов
	baseURL    string                // Базовый URL Elasticsearch/OpenSearch
}

// NewElasticsearchStorageWithURL создает новый экземпляр ElasticsearchStorage с указанным URL.
func NewElasticsearchStorageWithURL(client *elasticsearch.Client, index string, baseURL string) *ElasticsearchStorage {
	return &ElasticsearchStorage{
		client:     client,
		index:      index,
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// NewElasticsearchStorage создает новый экземпляр ElasticsearchStorage с URL http://localhost:9200.
func NewElasticsearchStorage(client *elasticsearch.Client, index string) *ElasticsearchStorage {
	return NewElasticsearchStorageWithURL(client, index, "http://localhost:9200")
}

// CreateIndex создает индекс с заданным маппингом.
// Если индекс уже существует, функция возвращает nil без ошибки.
func (es *ElasticsearchStorage) CreateIndex(ctx context.Context, mappingJSON string) error {
	res, err := es.client.Indices.Exists([]string{es.index}, es.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = es.client.Indices.Create(
		es.index,
		es.client.Indices.Create.WithBody(strings.NewReader(mappingJSON)),
		es.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error creating index: %s", string(body))
	}

	return nil
}

// PutProfile индексирует профиль под ключом models.ProfileKey(profile.Name).
// Существующий профиль с тем же ключом перезаписывается.
func (es *ElasticsearchStorage) PutProfile(ctx context.Context, profile *models.RestaurantProfile) error {
	body, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      es.index,
		DocumentID: models.ProfileKey(profile.Name),
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, es.client)
	if err != nil {
		return fmt.Errorf("failed to index profile: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error indexing profile: %s", string(body))
	}

	return nil
}

// BulkIndexProfiles индексирует несколько профилей за один запрос через Bulk API.
func (es *ElasticsearchStorage) BulkIndexProfiles(ctx context.Context, profiles []*models.RestaurantProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, profile := range profiles {
		meta := map[string]any{
			"index": map[string]any{
				"_index": es.index,
				"_id":    models.ProfileKey(profile.Name),
			},
		}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode meta: %w", err)
		}
		if err := enc.Encode(profile); err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
	}

	// Прямой HTTP запрос в обход проверки типа сервера
	endpoint := fmt.Sprintf("%s/_bulk?refresh=true", es.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	res, err := es.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error bulk indexing: status %d, body: %s", res.StatusCode, string(body))
	}

	var result struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if result.Errors {
		return fmt.Errorf("error bulk indexing: some documents were rejected")
	}

	return nil
}

// GetProfile получает профиль по ключу. Если профиля нет, возвращает nil, nil.
func (es *ElasticsearchStorage) GetProfile(ctx context.Context, key string) (*models.RestaurantProfile, error) {
	// Прямой HTTP запрос в обход проверки типа сервера
	endpoint := fmt.Sprintf("%s/%s/_doc/%s", es.baseURL, es.index, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	res, err := es.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("error getting profile: status %d, body: %s", res.StatusCode, string(body))
	}

	var result struct {
		Found  bool                     `json:"found"`
		Source models.RestaurantProfile `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.Found {
		return nil, nil
	}

	return &result.Source, nil
}
