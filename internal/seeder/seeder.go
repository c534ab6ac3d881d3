// Package seeder заполняет кэш профилей заведений: находит рестораны по кухням
// и генерирует для каждого профиль меню и отзывов.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/akozadaev/go_lunch_recommender/internal/logging"
	"github.com/akozadaev/go_lunch_recommender/internal/metrics"
	"github.com/akozadaev/go_lunch_recommender/internal/models"
	"github.com/akozadaev/go_lunch_recommender/internal/ranking"
	"github.com/akozadaev/go_lunch_recommender/internal/textgen"
)

const (
	// DefaultPerCuisine - сколько заведений каждой кухни берётся в работу
	DefaultPerCuisine = 15
	// DefaultDelay - пауза между обращениями к модели
	DefaultDelay = 2 * time.Second
	// DefaultArea - название района для промпта генерации профиля
	DefaultArea = "Champlin, Minnesota"

	profileTemperature = 0.7
	profileMaxTokens   = 1500

	defaultPortion = "standard"
	defaultPrice   = "$$"
	defaultRating  = 4.0
	profileSource  = "ai_generated"
)

// DefaultCuisines - кухни, по которым заполняется кэш
var DefaultCuisines = []string{
	"pizza", "chinese", "mexican", "italian", "american",
	"sandwich", "indian", "thai", "mediterranean", "japanese", "bbq",
}

// ProfileWriter сохраняет профиль заведения
type ProfileWriter interface {
	PutProfile(ctx context.Context, profile *models.RestaurantProfile) error
}

// Options задаёт параметры заполнения
type Options struct {
	Origin       models.GeoPoint
	RadiusMeters int
	PerCuisine   int           // Сколько заведений брать на кухню
	Delay        time.Duration // Минимальный интервал между обращениями к модели
	Area         string        // Название местности для промпта
}

// Stats - итоги прогона
type Stats struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Seeder последовательно обходит кухни и сохраняет сгенерированные профили
type Seeder struct {
	search    ranking.SearchProvider
	generator ranking.TextGenerator
	writer    ProfileWriter
	limiter   *rate.Limiter
	opts      Options
	now       func() time.Time
}

// New создаёт Seeder. Нулевые поля opts заменяются значениями по умолчанию.
func New(search ranking.SearchProvider, generator ranking.TextGenerator, writer ProfileWriter, opts Options) *Seeder {
	if opts.PerCuisine <= 0 {
		opts.PerCuisine = DefaultPerCuisine
	}
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = ranking.DefaultRadiusMeters
	}
	if opts.Area == "" {
		opts.Area = DefaultArea
	}

	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}

	return &Seeder{
		search:    search,
		generator: generator,
		writer:    writer,
		limiter:   rate.NewLimiter(limit, 1),
		opts:      opts,
		now:       time.Now,
	}
}

// Run обрабатывает перечисленные кухни. Ошибка поиска по одной кухне пропускает её,
// ошибка по одному заведению учитывается в Failed. Возвращает ошибку только при отмене ctx.
func (s *Seeder) Run(ctx context.Context, cuisines []string) (Stats, error) {
	var stats Stats

	for _, cuisine := range cuisines {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		targets, err := s.findRestaurants(ctx, cuisine)
		if err != nil {
			logging.Warn().Err(err).Str("cuisine", cuisine).Msg("Restaurant search failed, skipping cuisine")
			continue
		}
		if len(targets) == 0 {
			logging.Info().Str("cuisine", cuisine).Msg("No restaurants found, skipping cuisine")
			continue
		}

		logging.Info().Str("cuisine", cuisine).Int("restaurants", len(targets)).Msg("Processing cuisine")

		for _, r := range targets {
			if err := s.limiter.Wait(ctx); err != nil {
				return stats, err
			}

			stats.Processed++
			if err := s.SeedRestaurant(ctx, r.Name, cuisine, r.Location); err != nil {
				stats.Failed++
				metrics.SeededProfiles.WithLabelValues("failure").Inc()
				logging.Warn().Err(err).Str("restaurant", r.Name).Msg("Failed to seed profile")
				continue
			}
			stats.Succeeded++
			metrics.SeededProfiles.WithLabelValues("success").Inc()
			logging.Info().Str("restaurant", r.Name).Str("cuisine", cuisine).Msg("Profile saved")
		}
	}

	return stats, nil
}

// findRestaurants возвращает до PerCuisine заведений с названием и координатами
func (s *Seeder) findRestaurants(ctx context.Context, cuisine string) ([]models.Restaurant, error) {
	places, err := s.search.Search(ctx, cuisine, s.opts.Origin, s.opts.RadiusMeters)
	if err != nil {
		return nil, err
	}

	restaurants := make([]models.Restaurant, 0, s.opts.PerCuisine)
	for _, p := range places {
		r, ok := ranking.Normalize(p, s.opts.Origin, cuisine)
		if !ok {
			continue
		}
		restaurants = append(restaurants, r)
		if len(restaurants) == s.opts.PerCuisine {
			break
		}
	}
	return restaurants, nil
}

// generatedProfile - поля профиля, которые заполняет модель
type generatedProfile struct {
	PopularDishes     []models.Dish          `json:"popular_dishes"`
	CustomerQuotes    []models.CustomerQuote `json:"customer_quotes"`
	PortionReputation string                 `json:"portion_reputation"`
	PriceRange        string                 `json:"price_range"`
	DietaryOptions    []string               `json:"dietary_options"`
	AvgRating         float64                `json:"avg_rating"`
}

// SeedRestaurant генерирует и сохраняет профиль одного заведения
func (s *Seeder) SeedRestaurant(ctx context.Context, name, cuisine string, location models.GeoPoint) error {
	text, err := s.generator.Generate(ctx, BuildProfilePrompt(name, cuisine, s.opts.Area), textgen.GenerateOptions{
		Temperature: profileTemperature,
		MaxTokens:   profileMaxTokens,
	})
	if err != nil {
		return fmt.Errorf("failed to generate profile: %w", err)
	}

	profile, err := ParseProfile(text)
	if err != nil {
		return err
	}

	profile.Name = name
	profile.Cuisine = cuisine
	profile.Location = &location
	profile.LastUpdated = s.now().UTC()
	profile.Source = profileSource

	if err := s.writer.PutProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// ParseProfile извлекает профиль из ответа модели и подставляет значения по умолчанию
// для пропущенных полей. Имя, кухню и координаты заполняет вызывающий.
func ParseProfile(text string) (*models.RestaurantProfile, error) {
	raw, ok := textgen.ExtractJSONObject(text)
	if !ok {
		return nil, &ranking.ParseError{Err: errors.New("no JSON object in response")}
	}

	var g generatedProfile
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return nil, &ranking.ParseError{Err: err}
	}

	profile := &models.RestaurantProfile{
		PopularDishes:     g.PopularDishes,
		CustomerQuotes:    g.CustomerQuotes,
		PortionReputation: g.PortionReputation,
		PriceRange:        g.PriceRange,
		DietaryOptions:    g.DietaryOptions,
		AvgRating:         g.AvgRating,
	}
	if profile.PopularDishes == nil {
		profile.PopularDishes = []models.Dish{}
	}
	if profile.CustomerQuotes == nil {
		profile.CustomerQuotes = []models.CustomerQuote{}
	}
	if profile.DietaryOptions == nil {
		profile.DietaryOptions = []string{}
	}
	if profile.PortionReputation == "" {
		profile.PortionReputation = defaultPortion
	}
	if profile.PriceRange == "" {
		profile.PriceRange = defaultPrice
	}
	if profile.AvgRating == 0 {
		profile.AvgRating = defaultRating
	}
	return profile, nil
}

// BuildProfilePrompt строит промпт генерации профиля заведения
func BuildProfilePrompt(name, cuisine, area string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a restaurant data analyst. I need you to provide realistic, typical menu information for a %s restaurant named %q located near %s.\n\n", cuisine, name, area)
	fmt.Fprintf(&b, "Based on typical %s restaurants and common menu patterns, provide:\n\n", cuisine)
	b.WriteString(`1. **Popular Dishes** (5-7 items):
   - Dish name
   - Estimated customer mentions (realistic number based on popularity)
   - Portion size (small/medium/large/shareable)
   - Tags (e.g., "spicy", "vegetarian", "gluten-free-option", "customizable")

2. **Customer Insights** (3-5 realistic quotes):
   - What dish customers typically rave about
   - Common compliments (e.g., "huge portions", "authentic flavor", "best in area")
   - Any warnings (e.g., "very spicy", "slow service on weekends")

3. **Restaurant Characteristics**:
   - Portion reputation: generous/standard/light
   - Price range: $/$$/$$$
   - Dietary options available: vegetarian, vegan, gluten-free
   - Estimated average rating: 3.5-5.0

Format your response as JSON:
{
  "popular_dishes": [
    {"name": "string", "mentions": number, "portion": "string", "tags": ["string"]}
  ],
  "customer_quotes": [
    {"dish": "string", "quote": "string", "sentiment": "positive/neutral/negative"}
  ],
  "portion_reputation": "generous/standard/light",
  "price_range": "$/$$/$$$",
  "dietary_options": ["string"],
  "avg_rating": number
}

`)
	fmt.Fprintf(&b, "Be realistic and specific to %s cuisine. Use actual dish names that would appear on a real menu.", cuisine)

	return b.String()
}
