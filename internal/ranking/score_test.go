package ranking

import (
	"math"
	"testing"

	"github.com/akozadaev/go_lunch_recommender/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		cuisine string
		rating  float64
		summary models.PreferenceSummary
		want    float64
	}{
		{
			name:    "chinese with rating bonus",
			cuisine: "chinese",
			rating:  4.5,
			summary: models.PreferenceSummary{DominantHunger: "very-hungry", DominantFlavor: "spicy", DominantMood: "adventurous"},
			// Голод не совпал, вкус совпал, настроение нет (chinese не adventurous), бонус заработан
			want: 100.0 * 7 / 14,
		},
		{
			name:    "american perfect match without bonus",
			cuisine: "american",
			rating:  4.0,
			summary: models.PreferenceSummary{DominantHunger: "very-hungry", DominantFlavor: "savory", DominantMood: "comfort"},
			want:    100,
		},
		{
			name:    "thai spicy adventurous",
			cuisine: "thai",
			rating:  4.5,
			summary: models.PreferenceSummary{DominantHunger: "very-hungry", DominantFlavor: "spicy", DominantMood: "adventurous"},
			want:    100.0 * 11 / 14,
		},
		{
			name:    "no match no bonus",
			cuisine: "mexican",
			rating:  3.9,
			summary: models.PreferenceSummary{DominantHunger: "light", DominantFlavor: "fresh", DominantMood: "comfort"},
			want:    0,
		},
		{
			name:    "unknown signals still count toward max",
			cuisine: "japanese",
			rating:  4.2,
			summary: models.PreferenceSummary{DominantHunger: "normal", DominantFlavor: "umami", DominantMood: "celebration"},
			want:    100.0 * 2 / 14,
		},
		{
			name:    "light healthy fresh",
			cuisine: "mediterranean",
			rating:  4.1,
			summary: models.PreferenceSummary{DominantHunger: "light", DominantFlavor: "fresh", DominantMood: "healthy"},
			want:    100,
		},
		{
			name:    "sweet-savory indulgent",
			cuisine: "asian",
			rating:  4.0,
			summary: models.PreferenceSummary{DominantHunger: "light", DominantFlavor: "sweet-savory", DominantMood: "indulgent"},
			want:    100.0 * 8 / 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := models.Restaurant{Cuisine: tt.cuisine, Rating: tt.rating}
			got := Score(r, tt.summary)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("Score() = %v out of range", got)
			}
		})
	}
}

// 100 * (0+5+4+2) / (3+5+4+2)
func TestScoreElevenOverFourteen(t *testing.T) {
	summary := models.PreferenceSummary{DominantHunger: "very-hungry", DominantFlavor: "spicy", DominantMood: "adventurous"}

	// indian: острое и приключенческое, но не сытное
	r := models.Restaurant{Cuisine: "indian", Rating: 4.5}
	got := Score(r, summary)
	if math.Abs(got-78.57142857142857) > 1e-9 {
		t.Errorf("Score() = %v, want ~78.57", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	r := models.Restaurant{Cuisine: "pizza", Rating: 4.4}
	s := models.PreferenceSummary{DominantHunger: "very-hungry", DominantFlavor: "savory", DominantMood: "comfort"}

	first := Score(r, s)
	for i := 0; i < 100; i++ {
		if got := Score(r, s); got != first {
			t.Fatalf("Score() not deterministic: %v vs %v", got, first)
		}
	}
}
