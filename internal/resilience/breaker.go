// Package resilience содержит общую настройку circuit breaker для внешних сервисов.
package resilience

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/akozadaev/go_lunch_recommender/internal/logging"
	"github.com/akozadaev/go_lunch_recommender/internal/metrics"
)

// BreakerConfig задаёт параметры circuit breaker
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32        // Запросов в состоянии half-open
	Interval     time.Duration // Период сброса счётчиков в состоянии closed
	Timeout      time.Duration // Время до перехода open -> half-open
	MinRequests  uint32        // Минимум запросов для оценки доли ошибок
	FailureRatio float64       // Доля ошибок, при которой цепь размыкается
	// Ошибки, которые являются штатным ответом сервиса и не считаются сбоем
	ExpectedErrors []error
}

// DefaultBreakerConfig возвращает настройки по умолчанию для указанного сервиса:
// размыкание при 60% ошибок из минимум 5 запросов, восстановление через минуту.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  2,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// NewBreaker создаёт circuit breaker, публикующий своё состояние в метриках
func NewBreaker[T any](cfg BreakerConfig) *gobreaker.CircuitBreaker[T] {
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err, cfg.ExpectedErrors)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
}

// countsAsFailure сообщает, говорит ли ошибка о неисправности сервиса.
// Отмена и истечение контекста вызывающего на сервис не указывают.
func countsAsFailure(err error, expected []error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	for _, e := range expected {
		if errors.Is(err, e) {
			return false
		}
	}
	return true
}

// IsUnavailable сообщает, что вызов отклонён самим circuit breaker без обращения к сервису
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
