package models

import (
	"time"

	"github.com/google/uuid"
)

// Review представляет отзыв о завершённом обмене
type Review struct {
	ID         uuid.UUID `json:"id"`
	ExchangeID uuid.UUID `json:"exchange_id"`
	Author     UserRef   `json:"author"`
	Target     UserRef   `json:"target"`
	Rating     int       `json:"rating"` // От 1 до 5
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewCreatePayload данные для создания отзыва
type ReviewCreatePayload struct {
	ExchangeID uuid.UUID `json:"exchange_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
}
