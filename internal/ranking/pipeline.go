// Package ranking реализует подбор заведений для команды: нормализацию данных провайдера,
// агрегацию пожеланий, оценку совместимости, сортировку и генерацию объяснений.
package ranking

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/akozadaev/go_lunch_recommender/internal/logging"
	"github.com/akozadaev/go_lunch_recommender/internal/metrics"
	"github.com/akozadaev/go_lunch_recommender/internal/models"
)

const (
	// DefaultLimit - сколько заведений остаётся в выдаче
	DefaultLimit = 10
	// DefaultRadiusMeters - радиус поиска, если он не задан (10 миль)
	DefaultRadiusMeters = 16093
)

// SearchProvider ищет заведения вокруг точки. Пустая cuisine означает поиск без фильтра по кухне.
type SearchProvider interface {
	Search(ctx context.Context, cuisine string, origin models.GeoPoint, radiusMeters int) ([]models.RawPlace, error)
}

// Options задаёт параметры конвейера
type Options struct {
	Limit         int // Размер выдачи, по умолчанию DefaultLimit
	Concurrency   int // Параллельных генераций объяснений, по умолчанию Limit
	DefaultRadius int // Радиус в метрах для запросов без радиуса
}

// Request описывает один запрос на подбор
type Request struct {
	Preferences  []models.Preference
	Origin       models.GeoPoint
	RadiusMeters int
	Explain      bool
}

// Result содержит упорядоченную выдачу и сводку пожеланий, по которой она построена
type Result struct {
	Restaurants []models.RankedRestaurant
	Summary     models.PreferenceSummary
}

// Pipeline выполняет поиск, нормализацию, оценку, сортировку, усечение и объяснение.
// Не хранит состояния между запросами.
type Pipeline struct {
	search    SearchProvider
	explainer *Explainer
	opts      Options
}

// NewPipeline создаёт конвейер. explainer может быть nil - тогда объяснения не строятся.
func NewPipeline(search SearchProvider, explainer *Explainer, opts Options) *Pipeline {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = opts.Limit
	}
	if opts.DefaultRadius <= 0 {
		opts.DefaultRadius = DefaultRadiusMeters
	}
	return &Pipeline{
		search:    search,
		explainer: explainer,
		opts:      opts,
	}
}

// Rank подбирает заведения для команды.
// Возвращает *ValidationError для пустого списка пожеланий (до любых внешних вызовов)
// и *TransportError, если поисковый сервис недоступен. Сбои генерации объяснений не фатальны.
func (p *Pipeline) Rank(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.RankingDuration.Observe(time.Since(start).Seconds())
	}()

	// Снимок пожеланий на момент начала запроса
	prefs := append([]models.Preference(nil), req.Preferences...)

	summary, err := Aggregate(prefs)
	if err != nil {
		metrics.RankingRequests.WithLabelValues("validation_error").Inc()
		return nil, err
	}

	radius := req.RadiusMeters
	if radius <= 0 {
		radius = p.opts.DefaultRadius
	}

	places, err := p.searchWithFallback(ctx, summary.DominantCuisine, req.Origin, radius)
	if err != nil {
		metrics.RankingRequests.WithLabelValues("search_error").Inc()
		return nil, err
	}

	restaurants := NormalizeAll(places, req.Origin, summary.DominantCuisine)
	metrics.NormalizedPlaces.WithLabelValues("accepted").Add(float64(len(restaurants)))
	metrics.NormalizedPlaces.WithLabelValues("rejected").Add(float64(len(places) - len(restaurants)))

	ranked := make([]models.RankedRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		score := Score(r, summary)
		ranked = append(ranked, models.RankedRestaurant{Restaurant: r, MatchScore: &score})
	}

	SortRanked(ranked)
	if len(ranked) > p.opts.Limit {
		ranked = ranked[:p.opts.Limit]
	}

	if req.Explain && p.explainer != nil {
		p.attachExplanations(ctx, ranked, prefs)
	}

	logging.Info().
		Str("cuisine", summary.DominantCuisine).
		Int("preferences", len(prefs)).
		Int("candidates", len(places)).
		Int("results", len(ranked)).
		Dur("elapsed", time.Since(start)).
		Msg("Ranking completed")

	metrics.RankingRequests.WithLabelValues("ok").Inc()
	return &Result{Restaurants: ranked, Summary: summary}, nil
}

// searchWithFallback ищет по доминирующей кухне и один раз расширяет поиск, если ничего не найдено.
// Ошибка основного запроса не повторяется.
func (p *Pipeline) searchWithFallback(ctx context.Context, cuisine string, origin models.GeoPoint, radius int) ([]models.RawPlace, error) {
	places, err := p.search.Search(ctx, cuisine, origin, radius)
	if err != nil {
		metrics.SearchRequests.WithLabelValues("primary", "error").Inc()
		return nil, &TransportError{Op: "search restaurants", Err: err}
	}
	metrics.SearchRequests.WithLabelValues("primary", "ok").Inc()

	if len(places) > 0 {
		return places, nil
	}

	logging.Info().Str("cuisine", cuisine).Msg("No restaurants for cuisine, broadening search")

	places, err = p.search.Search(ctx, "", origin, radius)
	if err != nil {
		metrics.SearchRequests.WithLabelValues("broadened", "error").Inc()
		return nil, &TransportError{Op: "broadened restaurant search", Err: err}
	}
	metrics.SearchRequests.WithLabelValues("broadened", "ok").Inc()
	return places, nil
}

// attachExplanations параллельно строит объяснения и дожидается всех.
// Каждая задача пишет только в свой элемент, ошибки не прерывают группу.
func (p *Pipeline) attachExplanations(ctx context.Context, ranked []models.RankedRestaurant, prefs []models.Preference) {
	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)

	for i := range ranked {
		g.Go(func() error {
			explanation := p.explainer.Explain(ctx, ranked[i].Restaurant, prefs)
			ranked[i].Explanation = &explanation
			return nil
		})
	}

	_ = g.Wait()
}

// SortRanked упорядочивает выдачу: сначала заведения с оценкой (по убыванию оценки,
// затем по возрастанию расстояния), затем без оценки (по возрастанию расстояния).
// Нулевая оценка считается полноценной оценкой.
func SortRanked(ranked []models.RankedRestaurant) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		switch {
		case a.MatchScore != nil && b.MatchScore != nil:
			if *a.MatchScore != *b.MatchScore {
				return *a.MatchScore > *b.MatchScore
			}
			return a.DistanceMiles < b.DistanceMiles
		case a.MatchScore != nil:
			return true
		case b.MatchScore != nil:
			return false
		default:
			return a.DistanceMiles < b.DistanceMiles
		}
	})
}
