package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/akozadaev/go_lunch_recommender/internal/config"
	"github.com/akozadaev/go_lunch_recommender/internal/logging"
	"github.com/akozadaev/go_lunch_recommender/internal/models"
	"github.com/akozadaev/go_lunch_recommender/internal/search"
	"github.com/akozadaev/go_lunch_recommender/internal/seeder"
	"github.com/akozadaev/go_lunch_recommender/internal/storage"
	"github.com/akozadaev/go_lunch_recommender/internal/textgen"
)

func main() {
	cuisinesFlag := flag.String("cuisines", strings.Join(seeder.DefaultCuisines, ","), "comma-separated list of cuisines to seed")
	area := flag.String("area", seeder.DefaultArea, "area name used in generation prompts")
	importPath := flag.String("import", "", "JSON file with profiles to index instead of generating them")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Error loading config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	writer, closeWriter := openProfileWriter(ctx, cfg)
	defer closeWriter()

	if *importPath != "" {
		if err := importProfiles(ctx, writer, *importPath); err != nil {
			logging.Error().Err(err).Str("file", *importPath).Msg("Error importing profiles")
			closeWriter()
			os.Exit(1)
		}
		return
	}

	generator, err := textgen.NewGeminiClient(ctx, cfg.GoogleAIAPIKey, cfg.GenAIModel, cfg.GenAIMinInterval)
	if err != nil {
		logging.Fatal().Err(err).Msg("Error creating Gemini client")
	}

	overpass := search.NewOverpassClient(cfg.OverpassURL, &http.Client{Timeout: 60 * time.Second})

	s := seeder.New(overpass, generator, writer, seeder.Options{
		Origin:       models.GeoPoint{Lat: cfg.SearchLat, Lon: cfg.SearchLng},
		RadiusMeters: cfg.SearchRadius,
		PerCuisine:   cfg.SeedPerCuisine,
		Delay:        cfg.SeedDelay,
		Area:         *area,
	})

	cuisines := parseList(*cuisinesFlag)
	logging.Info().
		Strs("cuisines", cuisines).
		Float64("lat", cfg.SearchLat).
		Float64("lng", cfg.SearchLng).
		Int("radius", cfg.SearchRadius).
		Msg("Seeding restaurant profiles")

	stats, err := s.Run(ctx, cuisines)
	if err != nil {
		logging.Error().Err(err).Msg("Seeding interrupted")
	}

	logging.Info().
		Int("processed", stats.Processed).
		Int("succeeded", stats.Succeeded).
		Int("failed", stats.Failed).
		Msg("Seeding completed")

	if err != nil {
		closeWriter()
		os.Exit(1)
	}
}

// openProfileWriter открывает хранилище профилей выбранного бэкенда
func openProfileWriter(ctx context.Context, cfg *config.Config) (seeder.ProfileWriter, func()) {
	if cfg.ProfileBackend == "badger" {
		store, err := storage.OpenBadgerProfileStore(cfg.BadgerPath)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.BadgerPath).Msg("Error opening Badger profile store")
		}
		return store, func() { store.Close() }
	}

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:         []string{cfg.ElasticsearchURL},
		DisableMetaHeader: true,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Error creating Elasticsearch client")
	}

	esStorage := storage.NewElasticsearchStorageWithURL(esClient, cfg.ProfileIndex, cfg.ElasticsearchURL)
	if mapping := cfg.ReadMigration("elasticsearch_mapping.json"); mapping != nil {
		if err := esStorage.CreateIndex(ctx, string(mapping)); err != nil {
			logging.Fatal().Err(err).Msg("Error creating profile index")
		}
	} else {
		logging.Warn().Msg("Could not read mapping file from any location, relying on dynamic mapping")
	}

	return esStorage, func() {}
}

// bulkWriter - хранилище с массовой записью профилей
type bulkWriter interface {
	BulkIndexProfiles(ctx context.Context, profiles []*models.RestaurantProfile) error
}

// importProfiles загружает профили из JSON файла и сохраняет их
func importProfiles(ctx context.Context, writer seeder.ProfileWriter, filename string) error {
	profiles, err := loadProfilesFromFile(filename)
	if err != nil {
		return err
	}

	logging.Info().Int("profiles", len(profiles)).Msg("Indexing profiles from file")

	if bw, ok := writer.(bulkWriter); ok {
		if err := bw.BulkIndexProfiles(ctx, profiles); err != nil {
			return err
		}
	} else {
		for _, p := range profiles {
			if err := writer.PutProfile(ctx, p); err != nil {
				return err
			}
		}
	}

	logging.Info().Msg("Indexing completed successfully!")
	return nil
}

// loadProfilesFromFile читает массив профилей из JSON файла. Записи без названия пропускаются.
func loadProfilesFromFile(filename string) ([]*models.RestaurantProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var profiles []*models.RestaurantProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	now := time.Now().UTC()
	valid := profiles[:0]
	for _, p := range profiles {
		if p == nil || strings.TrimSpace(p.Name) == "" {
			continue
		}
		if p.LastUpdated.IsZero() {
			p.LastUpdated = now
		}
		if p.Source == "" {
			p.Source = "imported"
		}
		valid = append(valid, p)
	}
	return valid, nil
}

func parseList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(strings.ToLower(item)); item != "" {
			items = append(items, item)
		}
	}
	return items
}
