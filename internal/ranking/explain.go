package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/akozadaev/go_lunch_recommender/internal/logging"
	"github.com/akozadaev/go_lunch_recommender/internal/metrics"
	"github.com/akozadaev/go_lunch_recommender/internal/models"
	"github.com/akozadaev/go_lunch_recommender/internal/resilience"
	"github.com/akozadaev/go_lunch_recommender/internal/textgen"
)

const (
	insufficientDataMessage = "Not enough data available for personalized recommendations."
	generationErrorMessage  = "Error generating personalized recommendations."
	genericMatchMessage     = "See menu items above for recommendations"

	explanationTemperature = 0.7
	explanationMaxTokens   = 1200
)

// ProfileCache отдаёт закэшированный профиль заведения по нормализованному названию.
// Промах кэша - (nil, nil).
type ProfileCache interface {
	GetProfile(ctx context.Context, key string) (*models.RestaurantProfile, error)
}

// TextGenerator генерирует текст по промпту
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts textgen.GenerateOptions) (string, error)
}

// InsufficientDataExplanation возвращает фиксированное объяснение для заведения без профиля
func InsufficientDataExplanation() models.Explanation {
	return models.Explanation{
		TeamConsensus:    insufficientDataMessage,
		PerPersonMatches: []models.PersonMatch{},
		Conflicts:        []string{},
		DietaryInsights:  "",
	}
}

func generationErrorExplanation() models.Explanation {
	return models.Explanation{
		TeamConsensus:    generationErrorMessage,
		PerPersonMatches: []models.PersonMatch{},
		Conflicts:        []string{},
		DietaryInsights:  "",
	}
}

// Explainer строит объяснения на основе профиля заведения и пожеланий каждого участника.
// Объяснение всегда возвращается, ошибки внешних сервисов превращаются в запасные варианты.
type Explainer struct {
	profiles  ProfileCache
	generator TextGenerator
	timeout   time.Duration
}

// NewExplainer создаёт Explainer. generator может быть nil - тогда объяснение
// собирается из профиля без обращения к модели. timeout ограничивает один вызов модели.
func NewExplainer(profiles ProfileCache, generator TextGenerator, timeout time.Duration) *Explainer {
	return &Explainer{
		profiles:  profiles,
		generator: generator,
		timeout:   timeout,
	}
}

// Explain возвращает объяснение для заведения. Никогда не возвращает ошибку.
func (e *Explainer) Explain(ctx context.Context, r models.Restaurant, prefs []models.Preference) models.Explanation {
	explanation, outcome := e.explain(ctx, r, prefs)
	metrics.Explanations.WithLabelValues(outcome).Inc()
	return explanation
}

func (e *Explainer) explain(ctx context.Context, r models.Restaurant, prefs []models.Preference) (models.Explanation, string) {
	profile := e.lookupProfile(ctx, r.Name)
	if profile == nil {
		return InsufficientDataExplanation(), metrics.ExplanationNoData
	}

	if e.generator == nil {
		return SynthesizeExplanation(r, profile, prefs), metrics.ExplanationSynthesized
	}

	genCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	text, err := e.generator.Generate(genCtx, BuildExplanationPrompt(r, profile, prefs), textgen.GenerateOptions{
		Temperature: explanationTemperature,
		MaxTokens:   explanationMaxTokens,
	})
	if resilience.IsUnavailable(err) {
		logging.Debug().Err(err).Str("restaurant", r.Name).Msg("Generator unavailable, synthesizing explanation")
		return SynthesizeExplanation(r, profile, prefs), metrics.ExplanationSynthesized
	}
	if err != nil && !errors.Is(err, textgen.ErrEmptyResponse) {
		logging.Warn().Err(err).Str("restaurant", r.Name).Msg("Explanation generation failed")
		return generationErrorExplanation(), metrics.ExplanationFailed
	}

	explanation, err := ParseExplanation(text)
	if err != nil {
		logging.Debug().Err(err).Str("restaurant", r.Name).Msg("Falling back to synthesized explanation")
		return SynthesizeExplanation(r, profile, prefs), metrics.ExplanationSynthesized
	}

	return explanation, metrics.ExplanationGenerated
}

func (e *Explainer) lookupProfile(ctx context.Context, name string) *models.RestaurantProfile {
	if e.profiles == nil {
		return nil
	}

	profile, err := e.profiles.GetProfile(ctx, models.ProfileKey(name))
	switch {
	case err != nil:
		// Ошибка кэша не отличается от промаха для пользователя
		logging.Warn().Err(err).Str("restaurant", name).Msg("Profile cache lookup failed")
		metrics.ProfileLookups.WithLabelValues("error").Inc()
		return nil
	case profile == nil:
		metrics.ProfileLookups.WithLabelValues("miss").Inc()
		return nil
	default:
		metrics.ProfileLookups.WithLabelValues("hit").Inc()
		return profile
	}
}

// ParseExplanation извлекает объяснение из ответа модели.
// Возвращает *ParseError, если JSON-объекта нет, он некорректен или не содержит teamConsensus.
func ParseExplanation(text string) (models.Explanation, error) {
	raw, ok := textgen.ExtractJSONObject(text)
	if !ok {
		return models.Explanation{}, &ParseError{}
	}

	var explanation models.Explanation
	if err := json.Unmarshal([]byte(raw), &explanation); err != nil {
		return models.Explanation{}, &ParseError{Err: err}
	}
	if strings.TrimSpace(explanation.TeamConsensus) == "" {
		return models.Explanation{}, &ParseError{Err: errors.New("missing teamConsensus")}
	}

	if explanation.PerPersonMatches == nil {
		explanation.PerPersonMatches = []models.PersonMatch{}
	}
	if explanation.Conflicts == nil {
		explanation.Conflicts = []string{}
	}
	return explanation, nil
}

// SynthesizeExplanation собирает объяснение из самых упоминаемых блюд профиля.
// Использует только блюда, присутствующие в профиле.
func SynthesizeExplanation(r models.Restaurant, profile *models.RestaurantProfile, prefs []models.Preference) models.Explanation {
	dishes := topDishes(profile.PopularDishes, 3)

	consensus := fmt.Sprintf("%s offers %s cuisine.", r.Name, r.Cuisine)
	insights := ""
	match := genericMatchMessage
	if len(dishes) > 0 {
		consensus = fmt.Sprintf("%s offers %s cuisine with popular items including %s.",
			r.Name, r.Cuisine, strings.Join(firstN(dishes, 2), " and "))
		insights = "Popular dishes include: " + strings.Join(dishes, ", ")
		match = "Popular picks: " + strings.Join(firstN(dishes, 2), ", ")
	}

	matches := make([]models.PersonMatch, 0, len(prefs))
	for _, p := range prefs {
		matches = append(matches, models.PersonMatch{Name: p.Name, Match: match})
	}

	return models.Explanation{
		TeamConsensus:    consensus,
		PerPersonMatches: matches,
		Conflicts:        []string{},
		DietaryInsights:  insights,
	}
}

// topDishes возвращает названия n самых упоминаемых блюд; при равенстве сохраняется порядок профиля
func topDishes(dishes []models.Dish, n int) []string {
	sorted := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		if strings.TrimSpace(d.Name) != "" {
			sorted = append(sorted, d)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Mentions > sorted[j].Mentions
	})

	names := make([]string, 0, n)
	for _, d := range sorted {
		if len(names) == n {
			break
		}
		names = append(names, d.Name)
	}
	return names
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}

// BuildExplanationPrompt формирует промпт с меню, отзывами и пожеланиями каждого участника
func BuildExplanationPrompt(r models.Restaurant, profile *models.RestaurantProfile, prefs []models.Preference) string {
	var menu strings.Builder
	for _, d := range profile.PopularDishes {
		tags := ""
		if len(d.Tags) > 0 {
			tags = ", " + strings.Join(d.Tags, ", ")
		}
		fmt.Fprintf(&menu, "- %s (%s portion%s, mentioned by %d customers)\n", d.Name, d.Portion, tags, d.Mentions)
	}

	var quotes strings.Builder
	for _, q := range profile.CustomerQuotes {
		fmt.Fprintf(&quotes, "- %q (about %s)\n", q.Quote, q.Dish)
	}

	var team strings.Builder
	for i, p := range prefs {
		fmt.Fprintf(&team, "\n%d. %s\n", i+1, p.Name)
		fmt.Fprintf(&team, "   - Preferred Cuisine: %s\n", p.FoodType)
		fmt.Fprintf(&team, "   - Hunger Level: %s\n", p.MealSize)
		fmt.Fprintf(&team, "   - Flavor Preference: %s\n", p.FlavorPreference)
		fmt.Fprintf(&team, "   - Mood/Occasion: %s\n", p.Mood)
		if p.SpecificCraving != "" {
			fmt.Fprintf(&team, "   - Specific Craving: %s\n", p.SpecificCraving)
		}
	}

	return fmt.Sprintf(`You are a restaurant recommendation analyst helping a team decide where to eat lunch.

Restaurant: %s
Cuisine: %s
Address: %s
Distance: %s
Average Rating: %.1f
Price Range: %s
Portion Reputation: %s
Dietary Options: %s

ACTUAL MENU ITEMS (from customer reviews):
%s
REAL CUSTOMER FEEDBACK:
%s
Team Members and Their Preferences:
%s
Based on the ACTUAL MENU ITEMS above, provide:
1. Team consensus: 2-3 sentences explaining why this restaurant works for the team
2. Per-person matches: For EACH team member, recommend SPECIFIC dishes from the menu that match their preferences
3. Conflicts: Identify if anyone's preferences aren't well-met and suggest alternatives
4. Dietary insights: Suggest specific dishes for different hunger levels/flavors

IMPORTANT: Only recommend dishes that are listed in the menu above. Be specific with dish names.

Format as JSON:
{
  "teamConsensus": "string",
  "perPersonMatches": [
    {"name": "string", "match": "string (mention specific dishes)"}
  ],
  "conflicts": ["string"],
  "dietaryInsights": "string (mention specific dishes)"
}`,
		r.Name,
		r.Cuisine,
		r.Address,
		r.Distance,
		profile.AvgRating,
		profile.PriceRange,
		profile.PortionReputation,
		strings.Join(profile.DietaryOptions, ", "),
		menu.String(),
		quotes.String(),
		team.String(),
	)
}
