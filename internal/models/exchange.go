package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExchangeStatus представляет статус заявки на обмен
type ExchangeStatus string

const (
	StatusPending   ExchangeStatus = "PENDING"   // Ожидает ответа владельца объявления
	StatusAccepted  ExchangeStatus = "ACCEPTED"  // Принята владельцем
	StatusRefused   ExchangeStatus = "REFUSED"   // Отклонена владельцем
	StatusCompleted ExchangeStatus = "COMPLETED" // Обмен состоялся
	StatusCancelled ExchangeStatus = "CANCELLED" // Отменена инициатором
)

// Terminal сообщает, является ли статус конечным.
// Из конечного статуса переходы невозможны.
func (s ExchangeStatus) Terminal() bool {
	return s == StatusRefused || s == StatusCompleted || s == StatusCancelled
}

// ExchangeAction представляет действие пользователя над обменом
type ExchangeAction string

const (
	ActionCreate   ExchangeAction = "create"
	ActionAccept   ExchangeAction = "accept"
	ActionRefuse   ExchangeAction = "refuse"
	ActionComplete ExchangeAction = "complete"
	ActionCancel   ExchangeAction = "cancel"
)

// UserRef минимальная информация о пользователе для API
type UserRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name,omitempty"`
	PhotoURL string    `json:"photo_url,omitempty"`
}

// ExchangeRequest представляет заявку на обмен между инициатором
// и владельцем объявления. Заявка относится ровно к одному объявлению:
// либо к вещи, либо к услуге.
type ExchangeRequest struct {
	ID             uuid.UUID      `json:"id"`
	Status         ExchangeStatus `json:"status"`
	Initiator      UserRef        `json:"initiator"`
	Recipient      UserRef        `json:"recipient"`
	ItemListingID  *uuid.UUID     `json:"item_listing_id,omitempty"`
	SkillListingID *uuid.UUID     `json:"skill_listing_id,omitempty"`
	ItemTitle      string         `json:"item_title,omitempty"`
	SkillTitle     string         `json:"skill_title,omitempty"`
	OfferInReturn  string         `json:"offer_in_return"`
	ProposedDate   DateOnly       `json:"proposed_date"`
	InitialMessage string         `json:"initial_message,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ListingTitle возвращает название объявления, к которому относится заявка
func (e *ExchangeRequest) ListingTitle() string {
	if e.ItemListingID != nil {
		return e.ItemTitle
	}
	return e.SkillTitle
}

// ExchangeCreatePayload данные для создания заявки на обмен
type ExchangeCreatePayload struct {
	ItemListingID  *uuid.UUID `json:"item_listing_id,omitempty"`
	SkillListingID *uuid.UUID `json:"skill_listing_id,omitempty"`
	OfferInReturn  string     `json:"offer_in_return"`
	ProposedDate   DateOnly   `json:"proposed_date"`
	InitialMessage string     `json:"initial_message,omitempty"`
}

// DateOnly календарная дата без времени, в JSON передаётся как "2006-01-02"
type DateOnly struct {
	time.Time
}

// NewDateOnly создаёт дату без компоненты времени
func NewDateOnly(t time.Time) DateOnly {
	y, m, d := t.Date()
	return DateOnly{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDateOnly разбирает дату в формате "2006-01-02"
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("неверный формат даты %q: %w", s, err)
	}
	return DateOnly{t}, nil
}

// MarshalJSON сериализует дату в формат "2006-01-02"
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

// UnmarshalJSON разбирает дату из формата "2006-01-02"
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDateOnly(raw)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}
