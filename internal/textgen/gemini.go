// Package textgen содержит клиент генерации текста (Google Gemini) и разбор его ответов.
package textgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/akozadaev/go_lunch_recommender/internal/resilience"
)

// ErrEmptyResponse возвращается, если модель не вернула текста
var ErrEmptyResponse = errors.New("empty generation response")

// GenerateOptions задаёт параметры генерации
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int32
}

// GeminiClient вызывает модель Gemini через официальный SDK.
// Запросы ограничиваются по частоте и проходят через circuit breaker.
type GeminiClient struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[string]
}

// NewGeminiClient создаёт клиент Gemini. minInterval - минимальный интервал между запросами (0 - без ограничения).
func NewGeminiClient(ctx context.Context, apiKey, model string, minInterval time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("google AI API key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}

	return &GeminiClient{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(limit, 1),
		cb:      resilience.NewBreaker[string](BreakerConfig()),
	}, nil
}

// BreakerConfig возвращает настройки circuit breaker для Gemini.
// Пустой ответ модели - штатный результат и не размыкает цепь.
func BreakerConfig() resilience.BreakerConfig {
	cfg := resilience.DefaultBreakerConfig("gemini")
	cfg.ExpectedErrors = []error{ErrEmptyResponse}
	return cfg
}

// Generate отправляет промпт модели и возвращает текст ответа
func (g *GeminiClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	return g.cb.Execute(func() (string, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(opts.Temperature),
			MaxOutputTokens: opts.MaxTokens,
		})
		if err != nil {
			return "", fmt.Errorf("failed to generate content: %w", err)
		}

		text := resp.Text()
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	})
}
