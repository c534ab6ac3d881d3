package ranking

import (
	"math"
	"strconv"
	"strings"

	"github.com/akozadaev/go_lunch_recommender/internal/geo"
	"github.com/akozadaev/go_lunch_recommender/internal/models"
)

const (
	// DefaultRating подставляется, если источник не сообщает рейтинг
	DefaultRating = 4.0
	// AddressNotAvailable подставляется, если у записи нет ни одного компонента адреса
	AddressNotAvailable = "Address not available"
)

// attributes даёт единый доступ к атрибутам записи независимо от её формы:
// сначала словарь тегов OSM, затем плоские свойства.
type attributes struct {
	tags  map[string]string
	props map[string]any
}

func (a attributes) get(key string) string {
	if v, ok := a.tags[key]; ok && v != "" {
		return v
	}
	v, ok := a.props[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "yes"
		}
		return "no"
	default:
		return ""
	}
}

// first возвращает первое непустое значение из перечисленных ключей
func (a attributes) first(keys ...string) string {
	for _, k := range keys {
		if v := a.get(k); v != "" {
			return v
		}
	}
	return ""
}

// resolveCoordinates возвращает координаты записи: сначала прямые поля, затем центроид
func resolveCoordinates(p models.RawPlace) (models.GeoPoint, bool) {
	if p.Lat != nil && p.Lon != nil {
		return models.GeoPoint{Lat: *p.Lat, Lon: *p.Lon}, true
	}
	if p.Center != nil && p.Center.Lat != nil && p.Center.Lon != nil {
		return models.GeoPoint{Lat: *p.Center.Lat, Lon: *p.Center.Lon}, true
	}
	return models.GeoPoint{}, false
}

// Normalize преобразует сырую запись провайдера в Restaurant.
// Записи без названия или без координат отбрасываются (второй результат false).
// foodType используется как кухня, если у записи нет собственного тега cuisine.
func Normalize(p models.RawPlace, origin models.GeoPoint, foodType string) (models.Restaurant, bool) {
	attrs := attributes{tags: p.Tags, props: p.Properties}

	name := strings.TrimSpace(attrs.get("name"))
	if name == "" {
		return models.Restaurant{}, false
	}

	loc, ok := resolveCoordinates(p)
	if !ok {
		return models.Restaurant{}, false
	}

	rawCuisine := attrs.get("cuisine")
	cuisine := rawCuisine
	if cuisine == "" {
		cuisine = foodType
	}

	distance := geo.Distance(origin.Lat, origin.Lon, loc.Lat, loc.Lon)

	return models.Restaurant{
		Name:          name,
		Address:       formatAddress(attrs),
		Rating:        parseRating(attrs.get("stars")),
		PriceLevel:    priceLevel(attrs.get("payment"), rawCuisine),
		Distance:      geo.FormatMiles(distance),
		DistanceMiles: distance,
		Cuisine:       cuisine,
		Phone:         attrs.first("phone", "contact:phone"),
		Website:       attrs.first("website", "contact:website"),
		Location:      loc,
	}, true
}

// NormalizeAll нормализует все записи, сохраняя порядок и отбрасывая невалидные
func NormalizeAll(places []models.RawPlace, origin models.GeoPoint, foodType string) []models.Restaurant {
	restaurants := make([]models.Restaurant, 0, len(places))
	for _, p := range places {
		if r, ok := Normalize(p, origin, foodType); ok {
			restaurants = append(restaurants, r)
		}
	}
	return restaurants
}

// formatAddress собирает адрес из компонентов: дом+улица (или только улица), город, штат, индекс
func formatAddress(attrs attributes) string {
	parts := make([]string, 0, 4)

	street := attrs.get("addr:street")
	house := attrs.get("addr:housenumber")
	switch {
	case house != "" && street != "":
		parts = append(parts, house+" "+street)
	case street != "":
		parts = append(parts, street)
	}

	for _, key := range []string{"addr:city", "addr:state", "addr:postcode"} {
		if v := attrs.get(key); v != "" {
			parts = append(parts, v)
		}
	}

	if len(parts) == 0 {
		return AddressNotAvailable
	}
	return strings.Join(parts, ", ")
}

// priceLevel оценивает ценовой уровень по подсказке об оплате и тегу кухни
func priceLevel(payment, cuisine string) string {
	switch {
	case strings.Contains(payment, "expensive"):
		return "$$$"
	case cuisine == "fine_dining" || cuisine == "fine-dining" || cuisine == "french":
		return "$$$"
	case cuisine == "fast_food" || cuisine == "fast-food" || cuisine == "burger":
		return "$"
	default:
		return "$$"
	}
}

// parseRating разбирает рейтинг; при отсутствии или некорректном значении возвращает DefaultRating
func parseRating(raw string) float64 {
	if raw == "" {
		return DefaultRating
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultRating
	}
	return math.Min(math.Max(v, 0), 5)
}
