package listing

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/obmenapp/obmen-client/internal/api"
	"github.com/obmenapp/obmen-client/internal/models"
)

const maxTitleLen = 100

// validCategories допустимые категории вещей
var validCategories = map[string]bool{
	"diy": true, "electronics": true, "books": true,
	"sport": true, "kitchen": true, "garden": true,
	"clothing": true, "toys": true, "other": true,
}

// Authority контракт удалённого сервиса объявлений
type Authority interface {
	Items(ctx context.Context) ([]models.Listing, error)
	Skills(ctx context.Context) ([]models.Listing, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	GetSkill(ctx context.Context, id uuid.UUID) (*models.Listing, error)
}

// ListingService чтение объявлений и проверка черновиков перед отправкой
type ListingService struct {
	authority Authority
}

// NewListingService создаёт новый экземпляр ListingService
func NewListingService(authority Authority) *ListingService {
	return &ListingService{authority: authority}
}

// Items возвращает список объявлений-вещей
func (s *ListingService) Items(ctx context.Context) ([]models.Listing, error) {
	items, err := s.authority.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки объявлений: %w", err)
	}
	return items, nil
}

// Skills возвращает список объявлений-услуг
func (s *ListingService) Skills(ctx context.Context) ([]models.Listing, error) {
	skills, err := s.authority.Skills(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки объявлений: %w", err)
	}
	return skills, nil
}

// Get возвращает объявление нужного вида по идентификатору
func (s *ListingService) Get(ctx context.Context, kind models.ListingKind, id uuid.UUID) (*models.Listing, error) {
	switch kind {
	case models.KindItem:
		return s.authority.GetItem(ctx, id)
	case models.KindSkill:
		return s.authority.GetSkill(ctx, id)
	}
	return nil, fmt.Errorf("%w: неизвестный вид объявления %q", api.ErrValidation, kind)
}

// ValidateDraft проверяет черновик объявления перед отправкой.
// Сервис перепроверит всё ещё раз, здесь только быстрая обратная связь.
func ValidateDraft(d *models.ListingDraft) error {
	if d.Title == "" {
		return fmt.Errorf("%w: название обязательно", api.ErrValidation)
	}
	if utf8.RuneCountInString(d.Title) > maxTitleLen {
		return fmt.Errorf("%w: название длиннее %d символов", api.ErrValidation, maxTitleLen)
	}

	switch d.Kind {
	case models.KindItem:
		if !validCategories[d.Category] {
			return fmt.Errorf("%w: выберите категорию из списка", api.ErrValidation)
		}
	case models.KindSkill:
		// Расписание доступности свободным текстом, не проверяем
	default:
		return fmt.Errorf("%w: неизвестный вид объявления %q", api.ErrValidation, d.Kind)
	}

	return nil
}
