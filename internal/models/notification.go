package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationType тип уведомления
type NotificationType string

const (
	NotificationNewRequest      NotificationType = "NEW_REQUEST"      // Новая заявка на обмен
	NotificationRequestAccepted NotificationType = "REQUEST_ACCEPTED" // Ваша заявка принята
	NotificationRequestRefused  NotificationType = "REQUEST_REFUSED"  // Ваша заявка отклонена
	NotificationNewMessage      NotificationType = "NEW_MESSAGE"      // Новое сообщение
	NotificationReviewReceived  NotificationType = "REVIEW_RECEIVED"  // Новый отзыв
)

// Notification представляет уведомление пользователя. Уведомления
// создаёт удалённый сервис как побочный эффект действий других
// пользователей; клиент их только читает и помечает прочитанными.
type Notification struct {
	ID             uuid.UUID        `json:"id"`
	Type           NotificationType `json:"type"`
	Message        string           `json:"message"`
	Read           bool             `json:"read"`
	CreatedAt      time.Time        `json:"created_at"`
	ExchangeID     *uuid.UUID       `json:"exchange_id,omitempty"`
	ItemListingID  *uuid.UUID       `json:"item_listing_id,omitempty"`
	SkillListingID *uuid.UUID       `json:"skill_listing_id,omitempty"`
}

// NavigationTarget возвращает путь страницы, на которую ведёт
// уведомление. Приоритет ссылок: обмен, затем вещь, затем услуга.
// Пустая строка — уведомлению некуда вести.
func (n *Notification) NavigationTarget() string {
	switch {
	case n.ExchangeID != nil:
		return fmt.Sprintf("/exchanges/%s", n.ExchangeID)
	case n.ItemListingID != nil:
		return fmt.Sprintf("/items/%s", n.ItemListingID)
	case n.SkillListingID != nil:
		return fmt.Sprintf("/skills/%s", n.SkillListingID)
	}
	return ""
}
