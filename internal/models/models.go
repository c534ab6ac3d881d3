// Package models содержит доменные типы сервиса выбора обеда.
package models

import "time"

// Preference представляет пожелание одного участника команды.
// После сохранения запись не изменяется, только удаляется.
type Preference struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	FoodType         string    `json:"foodType"`
	MealSize         string    `json:"mealSize"` // Уровень голода: very-hungry, normal, light
	FlavorPreference string    `json:"flavorPreference"`
	Mood             string    `json:"mood"`
	SpecificCraving  string    `json:"specificCraving,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// PreferenceRequest представляет запрос на добавление пожелания
type PreferenceRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	FoodType         string `json:"foodType" validate:"required,max=50"`
	MealSize         string `json:"mealSize" validate:"required,max=50"`
	FlavorPreference string `json:"flavorPreference" validate:"required,max=50"`
	Mood             string `json:"mood" validate:"required,max=50"`
	SpecificCraving  string `json:"specificCraving,omitempty" validate:"max=500"`
}

// PreferenceSummary содержит доминирующие значения по всем пожеланиям команды
type PreferenceSummary struct {
	DominantCuisine string `json:"dominantCuisine"`
	DominantHunger  string `json:"dominantHunger"`
	DominantFlavor  string `json:"dominantFlavor"`
	DominantMood    string `json:"dominantMood"`
	CuisineVotes    int    `json:"cuisineVotes"` // Сколько голосов у доминирующей кухни
	Total           int    `json:"total"`
}

// GeoPoint представляет географические координаты
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RawPlace представляет запись о заведении в том виде, в каком её вернул поисковый провайдер.
// Координаты задаются либо напрямую (Lat/Lon), либо центроидом (Center).
// Атрибуты задаются либо словарём тегов OSM (Tags), либо плоскими свойствами (Properties).
type RawPlace struct {
	Type       string            `json:"type,omitempty"`
	ID         int64             `json:"id,omitempty"`
	Lat        *float64          `json:"lat,omitempty"`
	Lon        *float64          `json:"lon,omitempty"`
	Center     *RawCenter        `json:"center,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
	Properties map[string]any    `json:"properties,omitempty"`
}

// RawCenter представляет центроид объекта (way/relation в OSM)
type RawCenter struct {
	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`
}

// Restaurant представляет нормализованное заведение, готовое к ранжированию
type Restaurant struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Rating        float64  `json:"rating"`
	PriceLevel    string   `json:"priceLevel"`
	Distance      string   `json:"distance"`
	DistanceMiles float64  `json:"distanceMiles"`
	Cuisine       string   `json:"cuisine"`
	Phone         string   `json:"phone,omitempty"`
	Website       string   `json:"website,omitempty"`
	Location      GeoPoint `json:"location"`
}

// RankedRestaurant представляет заведение в итоговой выдаче
type RankedRestaurant struct {
	Restaurant
	MatchScore  *float64     `json:"matchScore,omitempty"`
	Explanation *Explanation `json:"aiExplanation,omitempty"`
}

// Dish представляет популярное блюдо из профиля заведения
type Dish struct {
	Name     string   `json:"name"`
	Mentions int      `json:"mentions"`
	Portion  string   `json:"portion"`
	Tags     []string `json:"tags,omitempty"`
}

// CustomerQuote представляет отзыв посетителя о блюде
type CustomerQuote struct {
	Dish      string `json:"dish"`
	Quote     string `json:"quote"`
	Sentiment string `json:"sentiment"`
}

// RestaurantProfile представляет закэшированный профиль заведения (меню и отзывы).
// Заполняется отдельной командой indexer, для ранжирования доступен только на чтение.
type RestaurantProfile struct {
	Name              string          `json:"name"`
	Cuisine           string          `json:"cuisine"`
	Location          *GeoPoint       `json:"location,omitempty"`
	PopularDishes     []Dish          `json:"popular_dishes"`
	CustomerQuotes    []CustomerQuote `json:"customer_quotes"`
	PortionReputation string          `json:"portion_reputation"`
	PriceRange        string          `json:"price_range"`
	DietaryOptions    []string        `json:"dietary_options"`
	AvgRating         float64         `json:"avg_rating"`
	LastUpdated       time.Time       `json:"last_updated"`
	Source            string          `json:"source,omitempty"`
}

// PersonMatch представляет рекомендацию для конкретного участника
type PersonMatch struct {
	Name  string `json:"name"`
	Match string `json:"match"`
}

// Explanation представляет объяснение, почему заведение подходит команде
type Explanation struct {
	TeamConsensus    string        `json:"teamConsensus"`
	PerPersonMatches []PersonMatch `json:"perPersonMatches"`
	Conflicts        []string      `json:"conflicts"`
	DietaryInsights  string        `json:"dietaryInsights"`
}

// LunchOrder представляет итоговый выбор команды
type LunchOrder struct {
	ID                string       `json:"id"`
	RestaurantName    string       `json:"restaurantName"`
	RestaurantAddress string       `json:"restaurantAddress"`
	Timestamp         time.Time    `json:"timestamp"`
	Preferences       []Preference `json:"preferences"`
}

// OrderRequest представляет запрос на фиксацию выбранного заведения
type OrderRequest struct {
	RestaurantName    string `json:"restaurantName" validate:"required,max=200"`
	RestaurantAddress string `json:"restaurantAddress" validate:"max=300"`
}

// RecommendRequest представляет запрос на подбор заведений.
// Пустые поля заменяются значениями из конфигурации и текущим списком пожеланий.
type RecommendRequest struct {
	Lat         *float64     `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng         *float64     `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
	Radius      int          `json:"radius,omitempty" validate:"omitempty,min=1,max=50000"` // Радиус поиска в метрах
	Explain     *bool        `json:"explain,omitempty"`
	Preferences []Preference `json:"preferences,omitempty"`
}

// RecommendResponse представляет ответ с подобранными заведениями
type RecommendResponse struct {
	Restaurants []RankedRestaurant `json:"restaurants"`
	Summary     PreferenceSummary  `json:"summary"`
	Total       int                `json:"total"`
}
