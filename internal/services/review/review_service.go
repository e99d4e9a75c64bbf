package review

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/obmenapp/obmen-client/internal/api"
	"github.com/obmenapp/obmen-client/internal/models"
	"github.com/obmenapp/obmen-client/internal/services/exchange"
)

const maxCommentLen = 1000

// Authority контракт удалённого сервиса отзывов
type Authority interface {
	CreateReview(ctx context.Context, payload *models.ReviewCreatePayload) (*models.Review, error)
	UserReviews(ctx context.Context, userID uuid.UUID) ([]models.Review, error)
}

// ReviewService создание и чтение отзывов
type ReviewService struct {
	authority Authority
}

// NewReviewService создаёт новый экземпляр ReviewService
func NewReviewService(authority Authority) *ReviewService {
	return &ReviewService{authority: authority}
}

// Create оставляет отзыв об обмене ex. Отзыв — разовая операция,
// доступная только после перехода обмена в COMPLETED; сам переход
// отзывом не затрагивается.
func (s *ReviewService) Create(ctx context.Context, ex *models.ExchangeRequest, payload *models.ReviewCreatePayload) (*models.Review, error) {
	if !exchange.ReviewEligible(ex) {
		return nil, fmt.Errorf("%w: отзыв доступен только после завершения обмена", api.ErrValidation)
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		return nil, fmt.Errorf("%w: оценка должна быть от 1 до 5", api.ErrValidation)
	}
	if utf8.RuneCountInString(payload.Comment) > maxCommentLen {
		return nil, fmt.Errorf("%w: комментарий длиннее %d символов", api.ErrValidation, maxCommentLen)
	}

	payload.ExchangeID = ex.ID
	return s.authority.CreateReview(ctx, payload)
}

// ForUser возвращает отзывы о пользователе
func (s *ReviewService) ForUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	reviews, err := s.authority.UserReviews(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки отзывов: %w", err)
	}
	return reviews, nil
}
