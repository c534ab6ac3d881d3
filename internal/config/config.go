// Package config предоставляет загрузку конфигурации приложения.
// Значения применяются слоями: значения по умолчанию, YAML-файл (CONFIG_PATH), переменные окружения.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar - переменная окружения с путём к YAML-файлу конфигурации
const ConfigPathEnvVar = "CONFIG_PATH"

// Config содержит все параметры конфигурации приложения.
// Ключи совпадают с именами переменных окружения в нижнем регистре.
type Config struct {
	ElasticsearchURL string `koanf:"elasticsearch_url"` // URL для подключения к Elasticsearch/OpenSearch
	ProfileIndex     string `koanf:"profile_index"`     // Индекс с профилями заведений
	ProfileBackend   string `koanf:"profile_backend"`   // elasticsearch или badger
	BadgerPath       string `koanf:"badger_path"`       // Каталог Badger для встроенного кэша профилей

	PostgresHost     string `koanf:"postgres_host"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresUser     string `koanf:"postgres_user"`
	PostgresPassword string `koanf:"postgres_password"`
	PostgresDB       string `koanf:"postgres_db"`

	AppPort     string   `koanf:"app_port"`
	CORSOrigins []string `koanf:"cors_origins"`
	// Лимит запросов на подбор заведений в минуту с одного IP
	RecommendRateLimit int `koanf:"recommend_rate_limit"`

	OverpassURL string `koanf:"overpass_url"`

	GoogleAIAPIKey string `koanf:"google_ai_api_key"`
	GenAIModel     string `koanf:"genai_model"`
	// Минимальный интервал между запросами к модели
	GenAIMinInterval time.Duration `koanf:"genai_min_interval"`

	// Точка поиска по умолчанию (Champlin, MN)
	SearchLat    float64 `koanf:"search_lat"`
	SearchLng    float64 `koanf:"search_lng"`
	SearchRadius int     `koanf:"search_radius"` // В метрах

	ResultLimit            int           `koanf:"result_limit"`
	ExplanationTimeout     time.Duration `koanf:"explanation_timeout"`
	ExplanationConcurrency int           `koanf:"explanation_concurrency"`

	SeedDelay      time.Duration `koanf:"seed_delay"`
	SeedPerCuisine int           `koanf:"seed_per_cuisine"`

	// Каталог с маппингом индекса и схемой PostgreSQL; пустой - поиск по стандартным путям
	MigrationsDir string `koanf:"migrations_dir"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

func defaultConfig() *Config {
	return &Config{
		ElasticsearchURL: "http://localhost:9200",
		ProfileIndex:     "restaurant_profiles",
		ProfileBackend:   "elasticsearch",
		BadgerPath:       "data/profiles",

		PostgresHost:     "localhost",
		PostgresPort:     "5432",
		PostgresUser:     "lunch_user",
		PostgresPassword: "lunch_pass",
		PostgresDB:       "lunch_db",

		AppPort:            "8080",
		CORSOrigins:        []string{"*"},
		RecommendRateLimit: 30,

		OverpassURL: "https://overpass-api.de/api/interpreter",

		GenAIModel:       "gemini-2.0-flash",
		GenAIMinInterval: 200 * time.Millisecond,

		SearchLat:    45.1589,
		SearchLng:    -93.3954,
		SearchRadius: 16093,

		ResultLimit:            10,
		ExplanationTimeout:     20 * time.Second,
		ExplanationConcurrency: 5,

		SeedDelay:      2 * time.Second,
		SeedPerCuisine: 15,

		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем YAML-файл (если задан CONFIG_PATH),
// затем переменные окружения (ELASTICSEARCH_URL -> elasticsearch_url).
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	known := k.All()
	envProvider := env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := splitListFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// listConfigPaths - ключи со списками, которые в окружении задаются через запятую
var listConfigPaths = []string{
	"cors_origins",
}

// splitListFields разбивает строковые значения списковых ключей по запятым.
// Значения из YAML уже являются списками и не трогаются.
func splitListFields(k *koanf.Koanf) error {
	for _, path := range listConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := make([]string, 0)
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// PostgresDSN возвращает строку подключения к PostgreSQL
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresDB,
	)
}

// ReadMigration читает файл миграции: сначала из MigrationsDir, затем из стандартных мест
// относительно рабочего каталога и исполняемого файла. Возвращает nil, если файл не найден.
func (c *Config) ReadMigration(name string) []byte {
	var paths []string
	if c.MigrationsDir != "" {
		paths = append(paths, filepath.Join(c.MigrationsDir, name))
	}
	paths = append(paths,
		filepath.Join("migrations", name),
		filepath.Join("..", "migrations", name),
		filepath.Join(filepath.Dir(os.Args[0]), "..", "migrations", name),
	)

	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
			return data
		}
	}
	return nil
}

func (c *Config) validate() error {
	switch c.ProfileBackend {
	case "elasticsearch", "badger":
	default:
		return fmt.Errorf("invalid profile_backend %q: want elasticsearch or badger", c.ProfileBackend)
	}
	if c.SearchRadius <= 0 {
		return fmt.Errorf("search_radius must be positive, got %d", c.SearchRadius)
	}
	if c.ResultLimit <= 0 {
		return fmt.Errorf("result_limit must be positive, got %d", c.ResultLimit)
	}
	if c.ExplanationConcurrency <= 0 {
		c.ExplanationConcurrency = 1
	}
	return nil
}
