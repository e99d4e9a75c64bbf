package exchange

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/obmenapp/obmen-client/internal/api"
	"github.com/obmenapp/obmen-client/internal/models"
)

// Ограничения полей заявки, продублированные с сервера
const (
	maxOfferLen   = 500
	maxMessageLen = 1000
)

// DenyReason причина отказа локального гейта
type DenyReason string

const (
	DenyNotParticipant  DenyReason = "NotParticipant"  // Пользователь не участвует в обмене
	DenyNotOwner        DenyReason = "NotOwner"        // Действие доступно другой стороне
	DenyInvalidState    DenyReason = "InvalidState"    // Действие недоступно из текущего статуса
	DenyAlreadyTerminal DenyReason = "AlreadyTerminal" // Обмен уже в конечном статусе
)

// DenyError отказ гейта: действие сейчас недопустимо.
// Такая заявка не должна уходить в сеть.
type DenyError struct {
	Action models.ExchangeAction
	Reason DenyReason
}

// Error возвращает текст ошибки
func (e *DenyError) Error() string {
	return fmt.Sprintf("действие %q недопустимо: %s", e.Action, e.Reason)
}

// NextStatus возвращает статус, в который перейдёт обмен после действия
// actingUserID, либо причину отказа. Гейт не выполняет мутацию — её
// делает удалённый сервис. Один и тот же предикат используется и для
// выбора отображаемых действий, и для проверки перед отправкой запроса.
//
// Разрешённые переходы:
//
//	PENDING  -> accept  (владелец объявления) -> ACCEPTED
//	PENDING  -> refuse  (владелец объявления) -> REFUSED
//	ACCEPTED -> complete (любая сторона)      -> COMPLETED
//	PENDING/ACCEPTED -> cancel (инициатор)    -> CANCELLED
func NextStatus(ex *models.ExchangeRequest, action models.ExchangeAction, actingUserID uuid.UUID) (models.ExchangeStatus, error) {
	isInitiator := ex.Initiator.ID == actingUserID
	isRecipient := ex.Recipient.ID == actingUserID

	if !isInitiator && !isRecipient {
		return "", &DenyError{Action: action, Reason: DenyNotParticipant}
	}

	switch action {
	case models.ActionAccept:
		if !isRecipient {
			return "", &DenyError{Action: action, Reason: DenyNotOwner}
		}
		if err := requirePending(ex, action); err != nil {
			return "", err
		}
		return models.StatusAccepted, nil

	case models.ActionRefuse:
		if !isRecipient {
			return "", &DenyError{Action: action, Reason: DenyNotOwner}
		}
		if err := requirePending(ex, action); err != nil {
			return "", err
		}
		return models.StatusRefused, nil

	case models.ActionComplete:
		// Завершить обмен может любая из сторон
		if ex.Status != models.StatusAccepted {
			return "", stateError(ex, action)
		}
		return models.StatusCompleted, nil

	case models.ActionCancel:
		if !isInitiator {
			return "", &DenyError{Action: action, Reason: DenyNotOwner}
		}
		if ex.Status.Terminal() {
			return "", &DenyError{Action: action, Reason: DenyAlreadyTerminal}
		}
		return models.StatusCancelled, nil
	}

	return "", &DenyError{Action: action, Reason: DenyInvalidState}
}

// requirePending проверяет, что обмен ещё ожидает ответа
func requirePending(ex *models.ExchangeRequest, action models.ExchangeAction) error {
	if ex.Status == models.StatusPending {
		return nil
	}
	return stateError(ex, action)
}

// stateError различает "уже конечный статус" и "не тот статус"
func stateError(ex *models.ExchangeRequest, action models.ExchangeAction) error {
	if ex.Status.Terminal() {
		return &DenyError{Action: action, Reason: DenyAlreadyTerminal}
	}
	return &DenyError{Action: action, Reason: DenyInvalidState}
}

// AllowedActions возвращает действия, доступные пользователю над
// обменом в его текущем статусе. Результат используется для отрисовки
// кнопок, но решение всегда перепроверяется в NextStatus перед отправкой.
func AllowedActions(ex *models.ExchangeRequest, actingUserID uuid.UUID) []models.ExchangeAction {
	all := []models.ExchangeAction{
		models.ActionAccept,
		models.ActionRefuse,
		models.ActionComplete,
		models.ActionCancel,
	}

	actions := make([]models.ExchangeAction, 0, len(all))
	for _, action := range all {
		if _, err := NextStatus(ex, action, actingUserID); err == nil {
			actions = append(actions, action)
		}
	}
	return actions
}

// ReviewEligible сообщает, можно ли оставить отзыв об обмене.
// Отзыв доступен только после завершения обмена.
func ReviewEligible(ex *models.ExchangeRequest) bool {
	return ex.Status == models.StatusCompleted
}

// ValidateCreate проверяет заявку перед отправкой на сервер.
// Проверка даты — только страховка интерфейса: часы клиента могут
// расходиться с сервером, окончательную проверку делает сервис.
func ValidateCreate(p *models.ExchangeCreatePayload, listing *models.Listing, actingUserID uuid.UUID) error {
	if listing == nil {
		return fmt.Errorf("%w: объявление не найдено", api.ErrValidation)
	}
	if !listing.Active {
		return fmt.Errorf("%w: объявление больше не активно", api.ErrValidation)
	}
	if listing.OwnerID == actingUserID {
		return fmt.Errorf("%w: нельзя предложить обмен самому себе", api.ErrValidation)
	}

	hasItem := p.ItemListingID != nil
	hasSkill := p.SkillListingID != nil
	if hasItem == hasSkill {
		return fmt.Errorf("%w: заявка должна относиться либо к вещи, либо к услуге", api.ErrValidation)
	}

	if p.OfferInReturn == "" {
		return fmt.Errorf("%w: укажите, что предлагаете в ответ", api.ErrValidation)
	}
	if utf8.RuneCountInString(p.OfferInReturn) > maxOfferLen {
		return fmt.Errorf("%w: предложение в ответ длиннее %d символов", api.ErrValidation, maxOfferLen)
	}
	if utf8.RuneCountInString(p.InitialMessage) > maxMessageLen {
		return fmt.Errorf("%w: сообщение длиннее %d символов", api.ErrValidation, maxMessageLen)
	}

	tomorrow := models.NewDateOnly(time.Now().AddDate(0, 0, 1))
	if p.ProposedDate.Before(tomorrow.Time) {
		return fmt.Errorf("%w: дата обмена должна быть не раньше завтрашнего дня", api.ErrValidation)
	}

	return nil
}
