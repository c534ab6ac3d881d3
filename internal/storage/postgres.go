package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/akozadaev/go_lunch_recommender/internal/models"
)

// PostgresStorage хранит пожелания команды и зафиксированные заказы в PostgreSQL.
type PostgresStorage struct {
	db *sql.DB // Подключение к базе данных PostgreSQL
}

// NewPostgresStorage создает новый экземпляр PostgresStorage и устанавливает подключение к БД.
// DSN должен быть в формате: "host=... port=... user=... password=... dbname=... sslmode=..."
func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStorage{db: db}, nil
}

// Close закрывает подключение к базе данных PostgreSQL.
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

// Migrate применяет схему. Схема должна быть идемпотентной (CREATE ... IF NOT EXISTS).
func (ps *PostgresStorage) Migrate(ctx context.Context, schema string) error {
	if _, err := ps.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// CreatePreference сохраняет пожелание и возвращает его с присвоенными ID и временем.
func (ps *PostgresStorage) CreatePreference(ctx context.Context, req *models.PreferenceRequest) (*models.Preference, error) {
	p := &models.Preference{
		ID:               uuid.NewString(),
		Name:             req.Name,
		FoodType:         req.FoodType,
		MealSize:         req.MealSize,
		FlavorPreference: req.FlavorPreference,
		Mood:             req.Mood,
		SpecificCraving:  req.SpecificCraving,
		Timestamp:        time.Now().UTC(),
	}

	query := `INSERT INTO preferences (id, name, food_type, meal_size, flavor_preference, mood, specific_craving, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := ps.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.FoodType,
		p.MealSize,
		p.FlavorPreference,
		p.Mood,
		p.SpecificCraving,
		p.Timestamp,
	); err != nil {
		return nil, fmt.Errorf("failed to insert preference: %w", err)
	}

	return p, nil
}

// ListPreferences возвращает все пожелания, новые первыми.
func (ps *PostgresStorage) ListPreferences(ctx context.Context) ([]models.Preference, error) {
	query := `SELECT id, name, food_type, meal_size, flavor_preference, mood, specific_craving, created_at
		FROM preferences ORDER BY created_at DESC`

	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	prefs := []models.Preference{}
	for rows.Next() {
		var p models.Preference
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.FoodType,
			&p.MealSize,
			&p.FlavorPreference,
			&p.Mood,
			&p.SpecificCraving,
			&p.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs = append(prefs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return prefs, nil
}

// DeletePreference удаляет пожелание по ID. Возвращает ErrNotFound, если записи нет
// или ID не является UUID.
func (ps *PostgresStorage) DeletePreference(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	res, err := ps.db.ExecContext(ctx, `DELETE FROM preferences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllPreferences удаляет все пожелания и возвращает их число.
func (ps *PostgresStorage) DeleteAllPreferences(ctx context.Context) (int64, error) {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM preferences`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete preferences: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

// CreateOrder фиксирует выбранное заведение вместе со снимком пожеланий.
func (ps *PostgresStorage) CreateOrder(ctx context.Context, req *models.OrderRequest, prefs []models.Preference) (*models.LunchOrder, error) {
	if prefs == nil {
		prefs = []models.Preference{}
	}

	order := &models.LunchOrder{
		ID:                uuid.NewString(),
		RestaurantName:    req.RestaurantName,
		RestaurantAddress: req.RestaurantAddress,
		Timestamp:         time.Now().UTC(),
		Preferences:       prefs,
	}

	snapshot, err := json.Marshal(order.Preferences)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferences: %w", err)
	}

	query := `INSERT INTO lunch_orders (id, restaurant_name, restaurant_address, preferences, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := ps.db.ExecContext(ctx, query,
		order.ID,
		order.RestaurantName,
		order.RestaurantAddress,
		string(snapshot),
		order.Timestamp,
	); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return order, nil
}

// ListOrders возвращает зафиксированные заказы, новые первыми.
func (ps *PostgresStorage) ListOrders(ctx context.Context) ([]models.LunchOrder, error) {
	query := `SELECT id, restaurant_name, restaurant_address, preferences, created_at
		FROM lunch_orders ORDER BY created_at DESC`

	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.LunchOrder{}
	for rows.Next() {
		var o models.LunchOrder
		var snapshot []byte
		if err := rows.Scan(
			&o.ID,
			&o.RestaurantName,
			&o.RestaurantAddress,
			&snapshot,
			&o.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if err := json.Unmarshal(snapshot, &o.Preferences); err != nil {
			return nil, fmt.Errorf("failed to decode order preferences: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return orders, nil
}
