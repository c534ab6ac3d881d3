package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/akozadaev/go_lunch_recommender/internal/models"
)

const profileKeyPrefix = "profile:"

// BadgerProfileStore хранит профили заведений во встроенной базе Badger.
// Используется, когда Elasticsearch/OpenSearch недоступен.
type BadgerProfileStore struct {
	db *badger.DB
}

// OpenBadgerProfileStore открывает базу в каталоге path
func OpenBadgerProfileStore(path string) (*BadgerProfileStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return NewBadgerProfileStore(db), nil
}

// NewBadgerProfileStore создает хранилище поверх уже открытой базы
func NewBadgerProfileStore(db *badger.DB) *BadgerProfileStore {
	return &BadgerProfileStore{db: db}
}

// Close закрывает базу
func (s *BadgerProfileStore) Close() error {
	return s.db.Close()
}

// PutProfile сохраняет профиль под ключом models.ProfileKey(profile.Name)
func (s *BadgerProfileStore) PutProfile(ctx context.Context, profile *models.RestaurantProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(profileKeyPrefix + models.ProfileKey(profile.Name))
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("failed to set profile: %w", err)
		}
		return nil
	})
}

// GetProfile получает профиль по ключу. Если профиля нет, возвращает nil, nil.
func (s *BadgerProfileStore) GetProfile(ctx context.Context, key string) (*models.RestaurantProfile, error) {
	var profile models.RestaurantProfile
	found := true

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(profileKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return &profile, nil
}

// CountProfiles возвращает число сохранённых профилей
func (s *BadgerProfileStore) CountProfiles(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(profileKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}
