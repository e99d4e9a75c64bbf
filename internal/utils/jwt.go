package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session разбирает токен сессии на стороне клиента.
// Подпись не проверяется: секрет хранится только у удалённого сервиса,
// клиенту нужны лишь claims user_id и exp.
type Session struct {
	token  string
	userID uuid.UUID
	expiry time.Time
}

// NewSession разбирает JWT и извлекает идентификатор пользователя
func NewSession(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("ошибка разбора токена: %w", err)
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("в токене отсутствует user_id")
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("неверный формат user_id в токене: %w", err)
	}

	s := &Session{token: token, userID: userID}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.expiry = exp.Time
	}
	return s, nil
}

// UserID возвращает идентификатор текущего пользователя
func (s *Session) UserID() uuid.UUID {
	return s.userID
}

// Token возвращает исходный токен
func (s *Session) Token() string {
	return s.token
}

// Expired сообщает, истёк ли срок действия токена.
// Токен без exp считается бессрочным.
func (s *Session) Expired() bool {
	return !s.expiry.IsZero() && time.Now().After(s.expiry)
}
