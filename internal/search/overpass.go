// Package search содержит клиент поиска заведений через OpenStreetMap Overpass API.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/akozadaev/go_lunch_recommender/internal/logging"
	"github.com/akozadaev/go_lunch_recommender/internal/models"
	"github.com/akozadaev/go_lunch_recommender/internal/resilience"
)

// DefaultOverpassURL - публичный инстанс Overpass API, ключ не требуется
const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

// cuisineTags сопоставляет типы еды из формы с тегами cuisine в OSM
var cuisineTags = map[string]string{
	"mediterranean": "greek",
	"bbq":           "barbecue",
}

// CuisineTag возвращает тег OSM для типа еды; неизвестные типы передаются как есть
func CuisineTag(foodType string) string {
	if tag, ok := cuisineTags[foodType]; ok {
		return tag
	}
	return foodType
}

// OverpassClient ищет рестораны вокруг точки
type OverpassClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]models.RawPlace]
}

// NewOverpassClient создаёт клиент. Пустой baseURL заменяется на DefaultOverpassURL.
func NewOverpassClient(baseURL string, httpClient *http.Client) *OverpassClient {
	if baseURL == "" {
		baseURL = DefaultOverpassURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &OverpassClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		cb:         resilience.NewBreaker[[]models.RawPlace](resilience.DefaultBreakerConfig("overpass")),
	}
}

// BuildQuery строит запрос Overpass QL: узлы и контуры с amenity=restaurant в радиусе от точки.
// Пустой foodType - поиск без фильтра по кухне. "out center" добавляет центроиды контуров.
func BuildQuery(foodType string, origin models.GeoPoint, radiusMeters int) string {
	filter := `["amenity"="restaurant"]`
	if foodType != "" {
		filter += fmt.Sprintf(`["cuisine"=%q]`, CuisineTag(foodType))
	}
	around := fmt.Sprintf("(around:%d,%s,%s)", radiusMeters, formatCoord(origin.Lat), formatCoord(origin.Lon))

	var b strings.Builder
	b.WriteString("[out:json];\n(\n")
	fmt.Fprintf(&b, "  node%s%s;\n", filter, around)
	fmt.Fprintf(&b, "  way%s%s;\n", filter, around)
	b.WriteString(");\nout center;\n")
	return b.String()
}

func formatCoord(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}

// Search выполняет поиск. Ответ с кодом не 2xx или недоступность сервиса возвращаются ошибкой.
func (c *OverpassClient) Search(ctx context.Context, foodType string, origin models.GeoPoint, radiusMeters int) ([]models.RawPlace, error) {
	query := BuildQuery(foodType, origin, radiusMeters)

	return c.cb.Execute(func() ([]models.RawPlace, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(query))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "text/plain")

		start := time.Now()
		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to query overpass: %w", err)
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
			return nil, fmt.Errorf("error querying overpass: status %d, body: %s", res.StatusCode, string(body))
		}

		var result struct {
			Elements []models.RawPlace `json:"elements"`
		}
		if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("failed to decode overpass response: %w", err)
		}

		logging.Debug().
			Str("food_type", foodType).
			Int("radius", radiusMeters).
			Int("elements", len(result.Elements)).
			Dur("elapsed", time.Since(start)).
			Msg("Overpass search completed")

		return result.Elements, nil
	})
}
