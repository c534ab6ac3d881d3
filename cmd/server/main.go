// @title           Lunch Recommender API
// @version         1.0
// @description     REST API сервиса выбора обеда для команды. Собирает пожелания участников, подбирает ближайшие заведения по доминирующей кухне, оценивает совместимость и объясняет выбор по данным кэша профилей.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  akozadaev@inbox.ru
// @contact.url    https://github.com/akozadaev/go_lunch_recommender

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @schemes   http https
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/joho/godotenv"

	_ "github.com/akozadaev/go_lunch_recommender/docs" // swagger docs
	"github.com/akozadaev/go_lunch_recommender/internal/config"
	"github.com/akozadaev/go_lunch_recommender/internal/handlers"
	"github.com/akozadaev/go_lunch_recommender/internal/logging"
	"github.com/akozadaev/go_lunch_recommender/internal/models"
	"github.com/akozadaev/go_lunch_recommender/internal/ranking"
	"github.com/akozadaev/go_lunch_recommender/internal/search"
	"github.com/akozadaev/go_lunch_recommender/internal/storage"
	"github.com/akozadaev/go_lunch_recommender/internal/textgen"
)

func main() {
	// .env необязателен, переменные окружения имеют приоритет
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Error loading config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	profiles, closeProfiles := openProfileCache(ctx, cfg)
	defer closeProfiles()

	// Инициализация PostgreSQL клиента
	pgStorage, err := storage.NewPostgresStorage(cfg.PostgresDSN())
	if err != nil {
		logging.Fatal().Err(err).Msg("Error creating PostgreSQL client")
	}
	defer pgStorage.Close()
	logging.Info().Msg("Connected to PostgreSQL")

	if schema := cfg.ReadMigration("postgres_schema.sql"); schema != nil {
		if err := pgStorage.Migrate(ctx, string(schema)); err != nil {
			logging.Fatal().Err(err).Msg("Error applying PostgreSQL schema")
		}
		logging.Info().Msg("PostgreSQL schema applied")
	} else {
		logging.Warn().Msg("Could not read PostgreSQL schema from any location")
	}

	// Генерация объяснений необязательна: без ключа объяснения собираются из профиля
	var generator ranking.TextGenerator
	gemini, err := textgen.NewGeminiClient(ctx, cfg.GoogleAIAPIKey, cfg.GenAIModel, cfg.GenAIMinInterval)
	if err != nil {
		logging.Warn().Err(err).Msg("Gemini client disabled, explanations will be synthesized from profiles")
	} else {
		generator = gemini
		logging.Info().Str("model", cfg.GenAIModel).Msg("Gemini client initialized")
	}

	overpass := search.NewOverpassClient(cfg.OverpassURL, &http.Client{Timeout: 30 * time.Second})
	explainer := ranking.NewExplainer(profiles, generator, cfg.ExplanationTimeout)
	pipeline := ranking.NewPipeline(overpass, explainer, ranking.Options{
		Limit:         cfg.ResultLimit,
		Concurrency:   cfg.ExplanationConcurrency,
		DefaultRadius: cfg.SearchRadius,
	})

	// Инициализация handlers
	h := handlers.NewHandlers(pgStorage, pipeline, profiles, handlers.SearchDefaults{
		Origin:       models.GeoPoint{Lat: cfg.SearchLat, Lon: cfg.SearchLng},
		RadiusMeters: cfg.SearchRadius,
	})
	router := handlers.NewRouter(h, handlers.RouterOptions{
		CORSOrigins:        cfg.CORSOrigins,
		RecommendRateLimit: cfg.RecommendRateLimit,
	})

	// Настройка сервера. Подбор с объяснениями может идти дольше таймаута генерации.
	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ExplanationTimeout + 45*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logging.Info().Str("port", cfg.AppPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	logging.Info().Msg("Server exited")
}

// openProfileCache открывает кэш профилей выбранного бэкенда
func openProfileCache(ctx context.Context, cfg *config.Config) (ranking.ProfileCache, func()) {
	if cfg.ProfileBackend == "badger" {
		store, err := storage.OpenBadgerProfileStore(cfg.BadgerPath)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.BadgerPath).Msg("Error opening Badger profile store")
		}
		logging.Info().Str("path", cfg.BadgerPath).Msg("Badger profile store opened")
		return store, func() { store.Close() }
	}

	// Клиент go-elasticsearch проверяет тип сервера, поэтому чтение идёт прямыми HTTP запросами
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:         []string{cfg.ElasticsearchURL},
		DisableMetaHeader: true,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Error creating Elasticsearch client")
	}
	logging.Info().Msg("Elasticsearch/OpenSearch client initialized")

	esStorage := storage.NewElasticsearchStorageWithURL(esClient, cfg.ProfileIndex, cfg.ElasticsearchURL)

	if mapping := cfg.ReadMigration("elasticsearch_mapping.json"); mapping != nil {
		if err := esStorage.CreateIndex(ctx, string(mapping)); err != nil {
			logging.Warn().Err(err).Msg("Could not create profile index")
		} else {
			logging.Info().Str("index", cfg.ProfileIndex).Msg("Profile index created/verified")
		}
	} else {
		logging.Warn().Msg("Could not read mapping file from any location")
	}

	return esStorage, func() {}
}
