package storage

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/goccy/go-json"

	"github.com/akozadaev/go_lunch_recommender/internal/models"
)

// fakeSearchEngine имитирует минимальное подмножество API Elasticsearch
type fakeSearchEngine struct {
	mu      sync.Mutex
	indices map[string]string
	docs    map[string][]byte
	bulk    []string
}

func newFakeSearchEngine() *fakeSearchEngine {
	return &fakeSearchEngine{indices: map[string]string{}, docs: map[string][]byte{}}
}

func (f *fakeSearchEngine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.Method == http.MethodPost && parts[0] == "_bulk":
		scanner := bufio.NewScanner(r.Body)
		for scanner.Scan() {
			f.bulk = append(f.bulk, scanner.Text())
		}
		io.WriteString(w, `{"took":1,"errors":false,"items":[]}`)

	case r.Method == http.MethodHead && len(parts) == 1:
		if _, ok := f.indices[parts[0]]; ok {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)

	case r.Method == http.MethodPut && len(parts) == 1:
		body, _ := io.ReadAll(r.Body)
		f.indices[parts[0]] = string(body)
		io.WriteString(w, `{"acknowledged":true}`)

	case (r.Method == http.MethodPut || r.Method == http.MethodPost) && len(parts) == 3 && parts[1] == "_doc":
		body, _ := io.ReadAll(r.Body)
		f.docs[parts[2]] = body
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"result":"created"}`)

	case r.Method == http.MethodGet && len(parts) == 3 && parts[1] == "_doc":
		doc, ok := f.docs[parts[2]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"found":false}`)
			return
		}
		io.WriteString(w, `{"found":true,"_source":`+string(doc)+`}`)

	default:
		http.Error(w, "unsupported", http.StatusBadRequest)
	}
}

func newTestElasticsearch(t *testing.T) (*ElasticsearchStorage, *fakeSearchEngine) {
	t.Helper()
	engine := newFakeSearchEngine()
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:         []string{srv.URL},
		DisableMetaHeader: true,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return NewElasticsearchStorageWithURL(client, "restaurant_profiles", srv.URL), engine
}

func TestCreateIndexIdempotent(t *testing.T) {
	es, engine := newTestElasticsearch(t)
	ctx := context.Background()

	mapping := `{"mappings":{"properties":{"name":{"type":"text"}}}}`
	if err := es.CreateIndex(ctx, mapping); err != nil {
		t.Fatalf("CreateIndex() error = %v", err)
	}
	if engine.indices["restaurant_profiles"] != mapping {
		t.Errorf("index mapping = %q", engine.indices["restaurant_profiles"])
	}

	engine.indices["restaurant_profiles"] = "existing"
	if err := es.CreateIndex(ctx, mapping); err != nil {
		t.Fatalf("second CreateIndex() error = %v", err)
	}
	if engine.indices["restaurant_profiles"] != "existing" {
		t.Error("CreateIndex() recreated an existing index")
	}
}

func TestElasticsearchProfileRoundTrip(t *testing.T) {
	es, _ := newTestElasticsearch(t)
	ctx := context.Background()

	profile := &models.RestaurantProfile{
		Name:          "Café Zürich",
		Cuisine:       "swiss",
		PopularDishes: []models.Dish{{Name: "Rösti", Mentions: 9, Portion: "large"}},
		AvgRating:     4.3,
	}
	if err := es.PutProfile(ctx, profile); err != nil {
		t.Fatalf("PutProfile() error = %v", err)
	}

	got, err := es.GetProfile(ctx, models.ProfileKey("Café Zürich"))
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got == nil || got.Name != "Café Zürich" || got.PopularDishes[0].Name != "Rösti" {
		t.Errorf("GetProfile() = %+v", got)
	}
}

func TestElasticsearchGetProfileMiss(t *testing.T) {
	es, _ := newTestElasticsearch(t)

	got, err := es.GetProfile(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetProfile() = %+v, want nil", got)
	}
}

func TestBulkIndexProfiles(t *testing.T) {
	es, engine := newTestElasticsearch(t)

	profiles := []*models.RestaurantProfile{
		{Name: "Pizza Luce", Cuisine: "pizza"},
		{Name: "Thai Garden", Cuisine: "thai"},
	}
	if err := es.BulkIndexProfiles(context.Background(), profiles); err != nil {
		t.Fatalf("BulkIndexProfiles() error = %v", err)
	}

	if len(engine.bulk) != 4 {
		t.Fatalf("bulk lines = %d, want 4", len(engine.bulk))
	}

	var meta struct {
		Index struct {
			Index string `json:"_index"`
			ID    string `json:"_id"`
		} `json:"index"`
	}
	if err := json.Unmarshal([]byte(engine.bulk[2]), &meta); err != nil {
		t.Fatalf("failed to decode meta line: %v", err)
	}
	if meta.Index.Index != "restaurant_profiles" || meta.Index.ID != "thai_garden" {
		t.Errorf("meta = %+v", meta)
	}
}

func TestBulkIndexProfilesEmpty(t *testing.T) {
	es, engine := newTestElasticsearch(t)
	if err := es.BulkIndexProfiles(context.Background(), nil); err != nil {
		t.Fatalf("BulkIndexProfiles(nil) error = %v", err)
	}
	if len(engine.bulk) != 0 {
		t.Errorf("unexpected bulk request: %v", engine.bulk)
	}
}
