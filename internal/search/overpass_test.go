package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akozadaev/go_lunch_recommender/internal/models"
)

var origin = models.GeoPoint{Lat: 45.1589, Lon: -93.3954}

func TestCuisineTag(t *testing.T) {
	tests := map[string]string{
		"mediterranean": "greek",
		"bbq":           "barbecue",
		"pizza":         "pizza",
		"thai":          "thai",
		"sushi":         "sushi",
	}
	for in, want := range tests {
		if got := CuisineTag(in); got != want {
			t.Errorf("CuisineTag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery("bbq", origin, 16093)

	for _, fragment := range []string{
		"[out:json];",
		`node["amenity"="restaurant"]["cuisine"="barbecue"](around:16093,45.1589,-93.3954);`,
		`way["amenity"="restaurant"]["cuisine"="barbecue"](around:16093,45.1589,-93.3954);`,
		"out center;",
	} {
		if !strings.Contains(q, fragment) {
			t.Errorf("query missing %q:\n%s", fragment, q)
		}
	}
}

func TestBuildQueryBroadened(t *testing.T) {
	q := BuildQuery("", origin, 5000)
	if strings.Contains(q, "cuisine") {
		t.Errorf("broadened query has cuisine filter:\n%s", q)
	}
	if !strings.Contains(q, `node["amenity"="restaurant"](around:5000,45.1589,-93.3954);`) {
		t.Errorf("unexpected broadened query:\n%s", q)
	}
}

func TestSearchDecodesElements(t *testing.T) {
	var gotBody, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
  "version": 0.6,
  "elements": [
    {"type": "node", "id": 1, "lat": 45.16, "lon": -93.39, "tags": {"name": "Thai Garden", "cuisine": "thai"}},
    {"type": "way", "id": 2, "center": {"lat": 45.17, "lon": -93.38}, "tags": {"name": "Way Thai"}}
  ]
}`)
	}))
	defer srv.Close()

	c := NewOverpassClient(srv.URL, srv.Client())
	places, err := c.Search(context.Background(), "thai", origin, 1000)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotContentType != "text/plain" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if !strings.Contains(gotBody, `["cuisine"="thai"]`) {
		t.Errorf("request body missing cuisine filter: %s", gotBody)
	}

	if len(places) != 2 {
		t.Fatalf("got %d places, want 2", len(places))
	}
	if places[0].Lat == nil || *places[0].Lat != 45.16 || places[0].Tags["name"] != "Thai Garden" {
		t.Errorf("first place = %+v", places[0])
	}
	if places[1].Lat != nil || places[1].Center == nil || *places[1].Center.Lon != -93.38 {
		t.Errorf("second place = %+v", places[1])
	}
}

func TestSearchEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"elements": []}`)
	}))
	defer srv.Close()

	places, err := NewOverpassClient(srv.URL, srv.Client()).Search(context.Background(), "", origin, 1000)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(places) != 0 {
		t.Errorf("got %d places, want 0", len(places))
	}
}

func TestSearchNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewOverpassClient(srv.URL, srv.Client()).Search(context.Background(), "thai", origin, 1000)
	if err == nil {
		t.Fatal("Search() expected error for 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %v, want status in message", err)
	}
}

func TestSearchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := NewOverpassClient(url, nil).Search(context.Background(), "thai", origin, 1000); err == nil {
		t.Fatal("Search() expected error for closed server")
	}
}
