package exchange

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/obmenapp/obmen-client/internal/api"
	"github.com/obmenapp/obmen-client/internal/models"
)

// Authority контракт удалённого сервиса, владеющего состоянием обменов.
// Транспорт значения не имеет: в проде это REST-клиент, в тестах — фейк.
type Authority interface {
	CreateExchange(ctx context.Context, payload *models.ExchangeCreatePayload) (*models.ExchangeRequest, error)
	ReceivedExchanges(ctx context.Context) ([]models.ExchangeRequest, error)
	SentExchanges(ctx context.Context) ([]models.ExchangeRequest, error)
	GetExchange(ctx context.Context, id uuid.UUID) (*models.ExchangeRequest, error)
	TransitionExchange(ctx context.Context, id uuid.UUID, action models.ExchangeAction) (*models.ExchangeRequest, error)
}

// ErrBusy по этому обмену уже выполняется запрос
var ErrBusy = errors.New("по этому обмену уже выполняется запрос, дождитесь его завершения")

// ExchangeService координирует действия пользователя над обменами:
// локальный гейт перед любым сетевым запросом, перезагрузка списков
// после успешного перехода, пересинхронизация после удалённого отказа.
// Списки — кэш, который полностью перестраивается из ответов сервиса;
// локально записи никогда не правятся.
type ExchangeService struct {
	authority Authority
	userID    uuid.UUID

	mu       sync.Mutex
	received []models.ExchangeRequest
	sent     []models.ExchangeRequest
	inFlight map[uuid.UUID]bool
}

// NewExchangeService создаёт новый экземпляр ExchangeService
func NewExchangeService(authority Authority, userID uuid.UUID) *ExchangeService {
	return &ExchangeService{
		authority: authority,
		userID:    userID,
		inFlight:  make(map[uuid.UUID]bool),
	}
}

// UserID возвращает идентификатор текущего пользователя
func (s *ExchangeService) UserID() uuid.UUID {
	return s.userID
}

// Lists возвращает закэшированные списки полученных и отправленных заявок
func (s *ExchangeService) Lists() (received, sent []models.ExchangeRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.received, s.sent
}

// Reload перезагружает оба списка из удалённого сервиса
func (s *ExchangeService) Reload(ctx context.Context) (received, sent []models.ExchangeRequest, err error) {
	received, err = s.authority.ReceivedExchanges(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки полученных заявок: %w", err)
	}

	sent, err = s.authority.SentExchanges(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки отправленных заявок: %w", err)
	}

	s.mu.Lock()
	s.received = received
	s.sent = sent
	s.mu.Unlock()

	return received, sent, nil
}

// Get возвращает заявку по идентификатору
func (s *ExchangeService) Get(ctx context.Context, id uuid.UUID) (*models.ExchangeRequest, error) {
	return s.authority.GetExchange(ctx, id)
}

// Create создаёт новую заявку на обмен по объявлению listing
func (s *ExchangeService) Create(ctx context.Context, payload *models.ExchangeCreatePayload, listing *models.Listing) (*models.ExchangeRequest, error) {
	if err := ValidateCreate(payload, listing, s.userID); err != nil {
		return nil, err
	}

	created, err := s.authority.CreateExchange(ctx, payload)
	if err != nil {
		return nil, err
	}

	if _, _, err := s.Reload(ctx); err != nil {
		log.Printf("Ошибка перезагрузки списков после создания заявки: %v", err)
	}
	return created, nil
}

// TransitionResult результат успешного перехода
type TransitionResult struct {
	Exchange *models.ExchangeRequest
	Message  string // Подтверждение для пользователя
}

// Accept принимает заявку. Доступно только владельцу объявления.
func (s *ExchangeService) Accept(ctx context.Context, ex *models.ExchangeRequest) (*TransitionResult, error) {
	return s.transition(ctx, ex, models.ActionAccept)
}

// Refuse отклоняет заявку. Доступно только владельцу объявления.
func (s *ExchangeService) Refuse(ctx context.Context, ex *models.ExchangeRequest) (*TransitionResult, error) {
	return s.transition(ctx, ex, models.ActionRefuse)
}

// Complete помечает обмен состоявшимся. Доступно обеим сторонам,
// после чего открывается возможность оставить отзыв.
func (s *ExchangeService) Complete(ctx context.Context, ex *models.ExchangeRequest) (*TransitionResult, error) {
	return s.transition(ctx, ex, models.ActionComplete)
}

// Cancel отменяет заявку. Доступно только инициатору.
func (s *ExchangeService) Cancel(ctx context.Context, ex *models.ExchangeRequest) (*TransitionResult, error) {
	return s.transition(ctx, ex, models.ActionCancel)
}

// transition выполняет переход: сначала локальный гейт, затем запрос к
// сервису, затем перезагрузка обоих списков. Локально отклонённый
// переход никогда не уходит в сеть. Пока по обмену висит запрос,
// второй запрос по нему же отклоняется с ErrBusy.
func (s *ExchangeService) transition(ctx context.Context, ex *models.ExchangeRequest, action models.ExchangeAction) (*TransitionResult, error) {
	if _, err := NextStatus(ex, action, s.userID); err != nil {
		return nil, err
	}

	if !s.acquire(ex.ID) {
		return nil, ErrBusy
	}
	updated, err := s.authority.TransitionExchange(ctx, ex.ID, action)
	s.release(ex.ID)

	if err != nil {
		// Удалённый отказ — истина на стороне сервиса: другой участник
		// мог успеть изменить обмен. Пересинхронизируем локальное
		// представление и отдаём ошибку без автоматического повтора.
		if errors.Is(err, api.ErrConflict) || errors.Is(err, api.ErrForbidden) {
			if _, _, reloadErr := s.Reload(ctx); reloadErr != nil {
				log.Printf("Ошибка пересинхронизации после отказа сервиса: %v", reloadErr)
			}
		}
		return nil, err
	}

	if _, _, err := s.Reload(ctx); err != nil {
		log.Printf("Ошибка перезагрузки списков после перехода: %v", err)
	}

	return &TransitionResult{
		Exchange: updated,
		Message:  confirmationMessage(action),
	}, nil
}

// acquire помечает обмен как имеющий запрос в полёте
func (s *ExchangeService) acquire(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[id] {
		return false
	}
	s.inFlight[id] = true
	return true
}

// release снимает пометку запроса в полёте
func (s *ExchangeService) release(id uuid.UUID) {
	s.mu.Lock()
	delete(s.inFlight, id)
	s.mu.Unlock()
}

// confirmationMessage возвращает подтверждение для пользователя
func confirmationMessage(action models.ExchangeAction) string {
	switch action {
	case models.ActionAccept:
		return "Заявка принята!"
	case models.ActionRefuse:
		return "Заявка отклонена"
	case models.ActionComplete:
		return "Обмен завершён! Теперь вы можете оставить отзыв."
	case models.ActionCancel:
		return "Заявка отменена"
	}
	return ""
}
