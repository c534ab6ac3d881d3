package ranking

import "fmt"

// ValidationError означает, что запрос отклонён до обращения к внешним сервисам
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// ErrNoPreferences возвращается, если команда ещё не оставила ни одного пожелания
var ErrNoPreferences = &ValidationError{Reason: "no preferences submitted"}

// TransportError означает, что внешний сервис недоступен или ответил ошибкой.
// Для поиска заведений она фатальна для всего запроса.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError означает, что ответ модели не удалось разобрать как JSON
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return "no JSON object in generation response"
	}
	return fmt.Sprintf("malformed generation response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
