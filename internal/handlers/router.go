package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterOptions задаёт параметры HTTP слоя
type RouterOptions struct {
	CORSOrigins        []string
	RecommendRateLimit int    // Запросов на подбор в минуту с одного IP, 0 - без ограничения
	SwaggerURL         string // URL doc.json для Swagger UI
}

// NewRouter регистрирует маршруты API, метрики и Swagger UI.
// CORS применяется ко всему роутеру, включая preflight-запросы OPTIONS.
func NewRouter(h *Handlers, opts RouterOptions) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	router.HandleFunc("/preferences", h.CreatePreference).Methods(http.MethodPost)
	router.HandleFunc("/preferences", h.ListPreferences).Methods(http.MethodGet)
	router.HandleFunc("/preferences", h.ResetPreferences).Methods(http.MethodDelete)
	router.HandleFunc("/preferences/summary", h.PreferenceSummary).Methods(http.MethodGet)
	router.HandleFunc("/preferences/{id}", h.DeletePreference).Methods(http.MethodDelete)

	var recommend http.Handler = http.HandlerFunc(h.RecommendRestaurants)
	if opts.RecommendRateLimit > 0 {
		recommend = httprate.LimitByIP(opts.RecommendRateLimit, time.Minute)(recommend)
	}
	router.Handle("/restaurants/recommend", recommend).Methods(http.MethodPost)

	router.HandleFunc("/orders", h.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)

	router.HandleFunc("/profiles/{name}", h.GetProfile).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	swaggerURL := opts.SwaggerURL
	if swaggerURL == "" {
		swaggerURL = "/swagger/doc.json"
	}
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL(swaggerURL),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})(router)
}
