package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// Категории ошибок удалённого сервиса. Все ошибки клиента оборачивают
// одну из них, чтобы вызывающий код мог различать их через errors.Is.
var (
	// ErrValidation сервис отклонил данные запроса
	ErrValidation = errors.New("неверные данные запроса")
	// ErrForbidden действие запрещено для текущего пользователя
	ErrForbidden = errors.New("действие запрещено")
	// ErrNotFound ресурс не найден или удалён
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict состояние изменилось на сервере, локальное представление устарело
	ErrConflict = errors.New("состояние обмена изменилось")
	// ErrNetwork сервис недоступен, операция не применена
	ErrNetwork = errors.New("сервис недоступен")
)

// APIError ошибка удалённого сервиса с текстом, пришедшим от сервера
type APIError struct {
	StatusCode int
	Message    string
	Kind       error
}

// Error возвращает текст ошибки
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Kind, e.StatusCode)
	}
	return e.Kind.Error()
}

// Unwrap возвращает категорию ошибки для errors.Is
func (e *APIError) Unwrap() error {
	return e.Kind
}

// classify сопоставляет HTTP-статус категории ошибки.
// Ответы 5xx считаем недоступностью сервиса: операция не применена,
// автоматических повторов не делаем.
func classify(status int) error {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return ErrValidation
	case fiber.StatusUnauthorized, fiber.StatusForbidden:
		return ErrForbidden
	case fiber.StatusNotFound:
		return ErrNotFound
	case fiber.StatusConflict:
		return ErrConflict
	default:
		return ErrNetwork
	}
}
