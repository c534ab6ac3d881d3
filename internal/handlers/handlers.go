// Package handlers содержит HTTP обработчики REST API сервиса выбора обеда.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/akozadaev/go_lunch_recommender/internal/logging"
	"github.com/akozadaev/go_lunch_recommender/internal/models"
	"github.com/akozadaev/go_lunch_recommender/internal/ranking"
	"github.com/akozadaev/go_lunch_recommender/internal/storage"
)

// PreferenceStore хранит пожелания команды и зафиксированные заказы
type PreferenceStore interface {
	CreatePreference(ctx context.Context, req *models.PreferenceRequest) (*models.Preference, error)
	ListPreferences(ctx context.Context) ([]models.Preference, error)
	DeletePreference(ctx context.Context, id string) error
	DeleteAllPreferences(ctx context.Context) (int64, error)
	CreateOrder(ctx context.Context, req *models.OrderRequest, prefs []models.Preference) (*models.LunchOrder, error)
	ListOrders(ctx context.Context) ([]models.LunchOrder, error)
}

// Ranker подбирает заведения по пожеланиям
type Ranker interface {
	Rank(ctx context.Context, req ranking.Request) (*ranking.Result, error)
}

// SearchDefaults - точка и радиус поиска для запросов, в которых они не заданы
type SearchDefaults struct {
	Origin       models.GeoPoint
	RadiusMeters int
}

// Handlers содержит зависимости для обработки HTTP запросов.
// Пожелания и заказы хранятся в PostgreSQL, профили заведений в кэше профилей.
type Handlers struct {
	store    PreferenceStore       // Хранилище пожеланий и заказов
	ranker   Ranker                // Конвейер подбора заведений
	profiles ranking.ProfileCache  // Кэш профилей, может быть nil
	defaults SearchDefaults
	validate *validator.Validate
}

// NewHandlers создает новый экземпляр Handlers.
func NewHandlers(store PreferenceStore, ranker Ranker, profiles ranking.ProfileCache, defaults SearchDefaults) *Handlers {
	return &Handlers{
		store:    store,
		ranker:   ranker,
		profiles: profiles,
		defaults: defaults,
		validate: validator.New(),
	}
}

// CreatePreference обрабатывает POST запрос на добавление пожелания участника.
// Эндпоинт: POST /preferences
//
// @Summary      Добавить пожелание
// @Description  Сохраняет пожелание участника команды: тип еды, уровень голода, вкус, настроение
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        request  body      models.PreferenceRequest  true  "Пожелание"
// @Success      201      {object}  models.Preference
// @Failure      400      {object}  map[string]string  "Неверный запрос"
// @Failure      500      {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /preferences [post]
func (h *Handlers) CreatePreference(w http.ResponseWriter, r *http.Request) {
	var req models.PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Invalid preference: "+err.Error(), http.StatusBadRequest)
		return
	}

	pref, err := h.store.CreatePreference(r.Context(), &req)
	if err != nil {
		logging.Error().Err(err).Msg("Error creating preference")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, pref)
}

// ListPreferences обрабатывает GET запрос на получение всех пожеланий, новые первыми.
// Эндпоинт: GET /preferences
//
// @Summary      Список пожеланий
// @Description  Возвращает все пожелания команды, отсортированные по времени (новые первыми)
// @Tags         preferences
// @Produce      json
// @Success      200  {array}   models.Preference
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /preferences [get]
func (h *Handlers) ListPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.store.ListPreferences(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Error listing preferences")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

// DeletePreference обрабатывает DELETE запрос на удаление одного пожелания.
// Эндпоинт: DELETE /preferences/{id}
//
// @Summary      Удалить пожелание
// @Tags         preferences
// @Param        id   path  string  true  "Идентификатор пожелания"
// @Success      204
// @Failure      404  {object}  map[string]string  "Пожелание не найдено"
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /preferences/{id} [delete]
func (h *Handlers) DeletePreference(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "Preference ID is required", http.StatusBadRequest)
		return
	}

	if err := h.store.DeletePreference(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Preference not found", http.StatusNotFound)
			return
		}
		logging.Error().Err(err).Str("id", id).Msg("Error deleting preference")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetPreferences обрабатывает DELETE запрос на удаление всех пожеланий.
// Эндпоинт: DELETE /preferences
//
// @Summary      Сбросить пожелания
// @Description  Удаляет все пожелания команды и возвращает их количество
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /preferences [delete]
func (h *Handlers) ResetPreferences(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.DeleteAllPreferences(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Error resetting preferences")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// PreferenceSummary обрабатывает GET запрос на получение сводки пожеланий.
// Эндпоинт: GET /preferences/summary
//
// @Summary      Сводка пожеланий
// @Description  Возвращает самую популярную кухню (с числом голосов) и доминирующие голод, вкус и настроение
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  models.PreferenceSummary
// @Failure      404  {object}  map[string]string  "Пожеланий нет"
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /preferences/summary [get]
func (h *Handlers) PreferenceSummary(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.store.ListPreferences(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Error listing preferences")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	summary, err := ranking.Aggregate(prefs)
	if err != nil {
		http.Error(w, "No preferences submitted", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// RecommendRestaurants обрабатывает POST запрос на подбор заведений для команды.
// Пустое тело допустимо: используются точка поиска по умолчанию и текущие пожелания.
// Эндпоинт: POST /restaurants/recommend
//
// @Summary      Подобрать заведения
// @Description  Ищет заведения по доминирующей кухне команды, оценивает совместимость с пожеланиями, сортирует и добавляет объяснения по данным кэша профилей.
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        request  body      models.RecommendRequest  false  "Параметры подбора"
// @Success      200      {object}  models.RecommendResponse
// @Failure      400      {object}  map[string]string  "Неверный запрос или нет пожеланий"
// @Failure      502      {object}  map[string]string  "Сервис поиска заведений недоступен"
// @Failure      500      {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /restaurants/recommend [post]
func (h *Handlers) RecommendRestaurants(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	prefs := req.Preferences
	if len(prefs) == 0 {
		var err error
		prefs, err = h.store.ListPreferences(r.Context())
		if err != nil {
			logging.Error().Err(err).Msg("Error listing preferences")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	origin := h.defaults.Origin
	if req.Lat != nil && req.Lng != nil {
		origin = models.GeoPoint{Lat: *req.Lat, Lon: *req.Lng}
	}
	radius := req.Radius
	if radius <= 0 {
		radius = h.defaults.RadiusMeters
	}
	explain := req.Explain == nil || *req.Explain

	result, err := h.ranker.Rank(r.Context(), ranking.Request{
		Preferences:  prefs,
		Origin:       origin,
		RadiusMeters: radius,
		Explain:      explain,
	})
	if err != nil {
		var verr *ranking.ValidationError
		var terr *ranking.TransportError
		switch {
		case errors.As(err, &verr):
			http.Error(w, verr.Error(), http.StatusBadRequest)
		case errors.As(err, &terr):
			logging.Error().Err(err).Msg("Restaurant search failed")
			http.Error(w, "Restaurant search unavailable", http.StatusBadGateway)
		default:
			logging.Error().Err(err).Msg("Error recommending restaurants")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, models.RecommendResponse{
		Restaurants: result.Restaurants,
		Summary:     result.Summary,
		Total:       len(result.Restaurants),
	})
}

// CreateOrder обрабатывает POST запрос на фиксацию выбранного заведения.
// К заказу прикладывается снимок текущих пожеланий.
// Эндпоинт: POST /orders
//
// @Summary      Зафиксировать выбор
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request  body      models.OrderRequest  true  "Выбранное заведение"
// @Success      201      {object}  models.LunchOrder
// @Failure      400      {object}  map[string]string  "Неверный запрос"
// @Failure      500      {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Invalid order: "+err.Error(), http.StatusBadRequest)
		return
	}

	prefs, err := h.store.ListPreferences(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Error listing preferences")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	order, err := h.store.CreateOrder(r.Context(), &req, prefs)
	if err != nil {
		logging.Error().Err(err).Msg("Error creating order")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logging.Info().Str("restaurant", order.RestaurantName).Int("preferences", len(prefs)).Msg("Lunch order recorded")
	writeJSON(w, http.StatusCreated, order)
}

// ListOrders обрабатывает GET запрос на получение зафиксированных заказов.
// Эндпоинт: GET /orders
//
// @Summary      Список заказов
// @Tags         orders
// @Produce      json
// @Success      200  {array}   models.LunchOrder
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /orders [get]
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Error listing orders")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetProfile обрабатывает GET запрос на получение профиля заведения по названию.
// Эндпоинт: GET /profiles/{name}
//
// @Summary      Профиль заведения
// @Description  Возвращает закэшированный профиль (популярные блюда, отзывы) по названию заведения
// @Tags         profiles
// @Produce      json
// @Param        name  path      string  true  "Название заведения"
// @Success      200   {object}  models.RestaurantProfile
// @Failure      404   {object}  map[string]string  "Профиль не найден"
// @Failure      500   {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /profiles/{name} [get]
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		http.Error(w, "Restaurant name is required", http.StatusBadRequest)
		return
	}

	if h.profiles == nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), models.ProfileKey(name))
	if err != nil {
		logging.Error().Err(err).Str("name", name).Msg("Error getting profile")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HealthCheck обрабатывает GET запрос на проверку работоспособности сервиса.
// Эндпоинт: GET /health
//
// @Summary      Проверка работоспособности сервиса
// @Description  Возвращает статус сервиса. Используется для мониторинга и проверки доступности.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("Error encoding response")
	}
}
