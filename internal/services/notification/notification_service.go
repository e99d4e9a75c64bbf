package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/obmenapp/obmen-client/internal/models"
)

// NotificationService работа со списком уведомлений пользователя.
// Пометки "прочитано" уходят на сервис, счётчик уменьшается
// оптимистично и корректируется следующим опросом.
type NotificationService struct {
	authority Authority
	counter   *Counter
}

// NewNotificationService создаёт новый экземпляр NotificationService
func NewNotificationService(authority Authority, counter *Counter) *NotificationService {
	return &NotificationService{authority: authority, counter: counter}
}

// Counter возвращает счётчик непрочитанных уведомлений
func (s *NotificationService) Counter() *Counter {
	return s.counter
}

// List загружает уведомления пользователя
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	notifications, err := s.authority.Notifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки уведомлений: %w", err)
	}
	return notifications, nil
}

// MarkRead помечает уведомление прочитанным и оптимистично уменьшает
// счётчик на единицу. Если запрос не прошёл, счётчик не трогаем.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.authority.MarkNotificationRead(ctx, id); err != nil {
		return fmt.Errorf("ошибка пометки уведомления прочитанным: %w", err)
	}
	s.counter.Decrement()
	return nil
}

// MarkAllRead помечает все уведомления прочитанными. observedUnread —
// число непрочитанных в загруженном списке; счётчик уменьшается ровно
// на него, не опускаясь ниже нуля, а следующий опрос подтвердит итог.
func (s *NotificationService) MarkAllRead(ctx context.Context, observedUnread int) error {
	if err := s.authority.MarkAllNotificationsRead(ctx); err != nil {
		return fmt.Errorf("ошибка пометки уведомлений прочитанными: %w", err)
	}
	s.counter.DecrementBy(observedUnread)
	return nil
}

// CountUnread подсчитывает непрочитанные уведомления в списке
func CountUnread(notifications []models.Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
