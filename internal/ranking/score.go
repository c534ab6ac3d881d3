package ranking

import "github.com/akozadaev/go_lunch_recommender/internal/models"

// Веса сигналов совместимости
const (
	hungerWeight      = 3.0
	flavorWeight      = 5.0
	moodWeight        = 4.0
	ratingBonus       = 2.0
	ratingBonusAt     = 4.2
	neutralMatchScore = 50.0
)

type cuisineSet map[string]struct{}

func setOf(cuisines ...string) cuisineSet {
	s := make(cuisineSet, len(cuisines))
	for _, c := range cuisines {
		s[c] = struct{}{}
	}
	return s
}

func (s cuisineSet) has(c string) bool {
	_, ok := s[c]
	return ok
}

var (
	hungerCuisines = map[string]cuisineSet{
		"very-hungry": setOf("american", "bbq", "pizza", "italian"),
		"light":       setOf("japanese", "mediterranean", "sandwich", "asian"),
	}

	flavorCuisines = map[string]cuisineSet{
		"spicy":        setOf("thai", "indian", "mexican", "chinese"),
		"fresh":        setOf("mediterranean", "japanese", "sandwich"),
		"savory":       setOf("bbq", "american", "italian"),
		"sweet-savory": setOf("chinese", "asian", "thai"),
	}

	moodCuisines = map[string]cuisineSet{
		"comfort":     setOf("pizza", "italian", "american"),
		"healthy":     setOf("mediterranean", "japanese", "sandwich"),
		"indulgent":   setOf("bbq", "american", "italian"),
		"adventurous": setOf("thai", "indian", "japanese", "asian"),
	}
)

// Score вычисляет совместимость заведения с доминирующими пожеланиями команды (0-100).
// Веса голода, вкуса и настроения всегда входят в максимум, бонус за рейтинг - только если заработан.
func Score(r models.Restaurant, s models.PreferenceSummary) float64 {
	var score, total float64

	check := func(buckets map[string]cuisineSet, dominant string, weight float64) {
		if set, ok := buckets[dominant]; ok && set.has(r.Cuisine) {
			score += weight
		}
		total += weight
	}

	check(hungerCuisines, s.DominantHunger, hungerWeight)
	check(flavorCuisines, s.DominantFlavor, flavorWeight)
	check(moodCuisines, s.DominantMood, moodWeight)

	if r.Rating >= ratingBonusAt {
		score += ratingBonus
		total += ratingBonus
	}

	if total == 0 {
		return neutralMatchScore
	}
	return score / total * 100
}
