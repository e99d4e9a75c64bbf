package notification

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/obmenapp/obmen-client/internal/models"
)

// Authority контракт удалённого сервиса уведомлений
type Authority interface {
	Notifications(ctx context.Context) ([]models.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// Counter кэш числа непрочитанных уведомлений для бейджа в интерфейсе.
// Между двумя опросами значение может только уменьшаться — увеличить
// его может лишь удалённый сервис через Refresh. Счётчик создаётся на
// время сессии и передаётся потребителям явно, без глобального состояния.
type Counter struct {
	authority Authority

	mu    sync.Mutex
	value int
}

// NewCounter создаёт счётчик непрочитанных уведомлений
func NewCounter(authority Authority) *Counter {
	return &Counter{authority: authority}
}

// Value возвращает текущее закэшированное значение
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Refresh запрашивает актуальное значение у удалённого сервиса и
// безусловно замещает локальное. Интервал опроса много больше времени
// запроса, поэтому достаточно семантики "последняя завершённая запись
// побеждает". Неудачный запрос оставляет старое значение: счётчик не
// критичен, ошибка только логируется.
func (c *Counter) Refresh(ctx context.Context) {
	count, err := c.authority.UnreadCount(ctx)
	if err != nil {
		log.Printf("Ошибка обновления счётчика уведомлений: %v", err)
		return
	}

	c.mu.Lock()
	c.value = count
	c.mu.Unlock()
}

// Decrement оптимистично уменьшает счётчик на единицу
func (c *Counter) Decrement() {
	c.DecrementBy(1)
}

// DecrementBy оптимистично уменьшает счётчик, не опускаясь ниже нуля.
// Используется сразу после пометки уведомлений прочитанными, пока
// следующий опрос не подтвердит значение.
func (c *Counter) DecrementBy(n int) {
	if n <= 0 {
		return
	}

	c.mu.Lock()
	c.value -= n
	if c.value < 0 {
		c.value = 0
	}
	c.mu.Unlock()
}

// Reset принудительно сбрасывает счётчик в ноль
func (c *Counter) Reset() {
	c.mu.Lock()
	c.value = 0
	c.mu.Unlock()
}
