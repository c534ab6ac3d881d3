package seeder

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akozadaev/go_lunch_recommender/internal/models"
	"github.com/akozadaev/go_lunch_recommender/internal/ranking"
	"github.com/akozadaev/go_lunch_recommender/internal/textgen"
)

func ptr(v float64) *float64 { return &v }

func place(name string, lat, lon float64) models.RawPlace {
	return models.RawPlace{Type: "node", Lat: ptr(lat), Lon: ptr(lon), Tags: map[string]string{"name": name}}
}

type fakeSearch struct {
	results map[string][]models.RawPlace
	fail    map[string]bool
	calls   []string
}

func (f *fakeSearch) Search(ctx context.Context, cuisine string, origin models.GeoPoint, radius int) ([]models.RawPlace, error) {
	f.calls = append(f.calls, cuisine)
	if f.fail[cuisine] {
		return nil, errors.New("overpass unavailable")
	}
	return f.results[cuisine], nil
}

type fakeGenerator struct {
	response string
	failFor  string
	prompts  []string
	opts     []textgen.GenerateOptions
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, opts textgen.GenerateOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.failFor != "" && strings.Contains(prompt, `named "`+f.failFor+`"`) {
		return "", errors.New("quota exceeded")
	}
	return f.response, nil
}

type memoryWriter struct {
	mu       sync.Mutex
	profiles map[string]*models.RestaurantProfile
}

func (m *memoryWriter) PutProfile(ctx context.Context, p *models.RestaurantProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profiles == nil {
		m.profiles = map[string]*models.RestaurantProfile{}
	}
	m.profiles[models.ProfileKey(p.Name)] = p
	return nil
}

const generated = `Here is the data:
{
  "popular_dishes": [{"name": "Pad Thai", "mentions": 40, "portion": "large", "tags": ["spicy"]}],
  "customer_quotes": [{"dish": "Pad Thai", "quote": "Best in area", "sentiment": "positive"}],
  "portion_reputation": "generous",
  "price_range": "$",
  "dietary_options": ["vegetarian"],
  "avg_rating": 4.7
}`

func TestRunCountsAndSkips(t *testing.T) {
	search := &fakeSearch{
		results: map[string][]models.RawPlace{
			"thai": {
				place("Thai Garden", 45.16, -93.39),
				{Type: "node", Tags: map[string]string{"name": "No Coordinates"}},
				place("Bangkok Bistro", 45.17, -93.38),
			},
			"pizza": {place("Pizza Luce", 45.15, -93.40)},
		},
		fail: map[string]bool{"bbq": true},
	}
	gen := &fakeGenerator{response: generated, failFor: "Bangkok Bistro"}
	writer := &memoryWriter{}

	s := New(search, gen, writer, Options{Origin: models.GeoPoint{Lat: 45.1589, Lon: -93.3954}})
	stats, err := s.Run(context.Background(), []string{"thai", "bbq", "sushi", "pizza"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Stats{Processed: 3, Succeeded: 2, Failed: 1}
	if stats != want {
		t.Errorf("Run() stats = %+v, want %+v", stats, want)
	}
	if len(search.calls) != 4 {
		t.Errorf("search calls = %v", search.calls)
	}
	if _, ok := writer.profiles["thai_garden"]; !ok {
		t.Error("thai_garden profile not saved")
	}
	if _, ok := writer.profiles["bangkok_bistro"]; ok {
		t.Error("failed restaurant should not be saved")
	}

	for _, o := range gen.opts {
		if o.Temperature != 0.7 || o.MaxTokens != 1500 {
			t.Errorf("generate options = %+v", o)
		}
	}
}

func TestRunRespectsPerCuisineLimit(t *testing.T) {
	places := make([]models.RawPlace, 0, 20)
	for i := 0; i < 20; i++ {
		places = append(places, place("Place "+string(rune('A'+i)), 45.1, -93.3))
	}
	search := &fakeSearch{results: map[string][]models.RawPlace{"pizza": places}}
	gen := &fakeGenerator{response: generated}

	stats, err := New(search, gen, &memoryWriter{}, Options{}).Run(context.Background(), []string{"pizza"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Processed != DefaultPerCuisine {
		t.Errorf("Processed = %d, want %d", stats.Processed, DefaultPerCuisine)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	search := &fakeSearch{results: map[string][]models.RawPlace{"thai": {place("Thai Garden", 45.16, -93.39)}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(search, &fakeGenerator{response: generated}, &memoryWriter{}, Options{}).Run(ctx, []string{"thai"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestSeedRestaurantFillsIdentity(t *testing.T) {
	writer := &memoryWriter{}
	s := New(&fakeSearch{}, &fakeGenerator{response: generated}, writer, Options{Area: "Osseo, Minnesota"})
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	loc := models.GeoPoint{Lat: 45.16, Lon: -93.39}
	if err := s.SeedRestaurant(context.Background(), "Thai Garden", "thai", loc); err != nil {
		t.Fatalf("SeedRestaurant() error = %v", err)
	}

	p := writer.profiles["thai_garden"]
	if p == nil {
		t.Fatal("profile not saved")
	}
	if p.Name != "Thai Garden" || p.Cuisine != "thai" || p.Source != "ai_generated" {
		t.Errorf("profile identity = %+v", p)
	}
	if p.Location == nil || *p.Location != loc {
		t.Errorf("Location = %v", p.Location)
	}
	if !p.LastUpdated.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("LastUpdated = %v", p.LastUpdated)
	}
	if p.AvgRating != 4.7 || p.PopularDishes[0].Name != "Pad Thai" {
		t.Errorf("generated fields = %+v", p)
	}
}

func TestSeedRestaurantUnparseable(t *testing.T) {
	s := New(&fakeSearch{}, &fakeGenerator{response: "Sorry, I can't help with that."}, &memoryWriter{}, Options{})

	err := s.SeedRestaurant(context.Background(), "Thai Garden", "thai", models.GeoPoint{})
	var perr *ranking.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("SeedRestaurant() error = %v, want *ranking.ParseError", err)
	}
}

func TestParseProfileDefaults(t *testing.T) {
	p, err := ParseProfile(`{"popular_dishes": [{"name": "Burrito", "mentions": 3}]}`)
	if err != nil {
		t.Fatalf("ParseProfile() error = %v", err)
	}
	if p.PortionReputation != "standard" || p.PriceRange != "$$" || p.AvgRating != 4.0 {
		t.Errorf("defaults not applied: %+v", p)
	}
	if p.CustomerQuotes == nil || p.DietaryOptions == nil {
		t.Error("nil slices should be replaced with empty ones")
	}
}

func TestBuildProfilePrompt(t *testing.T) {
	prompt := BuildProfilePrompt("Pizza Luce", "pizza", "Champlin, Minnesota")
	for _, fragment := range []string{
		`a pizza restaurant named "Pizza Luce" located near Champlin, Minnesota.`,
		`"avg_rating": number`,
		"Be realistic and specific to pizza cuisine.",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}
