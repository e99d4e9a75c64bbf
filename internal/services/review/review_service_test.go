package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obmenapp/obmen-client/internal/api"
	"github.com/obmenapp/obmen-client/internal/models"
)

type fakeAuthority struct {
	createCalls int
	created     *models.ReviewCreatePayload
}

func (f *fakeAuthority) CreateReview(_ context.Context, payload *models.ReviewCreatePayload) (*models.Review, error) {
	f.createCalls++
	f.created = payload
	return &models.Review{
		ID:         uuid.New(),
		ExchangeID: payload.ExchangeID,
		Rating:     payload.Rating,
		Comment:    payload.Comment,
	}, nil
}

func (f *fakeAuthority) UserReviews(_ context.Context, _ uuid.UUID) ([]models.Review, error) {
	return nil, nil
}

func completedExchange() *models.ExchangeRequest {
	return &models.ExchangeRequest{
		ID:     uuid.MustParse("55555555-5555-5555-5555-555555555555"),
		Status: models.StatusCompleted,
	}
}

func TestCreateReviewRequiresCompletedExchange(t *testing.T) {
	fake := &fakeAuthority{}
	svc := NewReviewService(fake)

	for _, status := range []models.ExchangeStatus{
		models.StatusPending, models.StatusAccepted,
		models.StatusRefused, models.StatusCancelled,
	} {
		ex := completedExchange()
		ex.Status = status

		_, err := svc.Create(context.Background(), ex, &models.ReviewCreatePayload{Rating: 5})
		assert.ErrorIs(t, err, api.ErrValidation, string(status))
	}

	// До завершения обмена в сервис отзывов ничего не уходит
	assert.Equal(t, 0, fake.createCalls)
}

func TestCreateReviewOnCompletedExchange(t *testing.T) {
	fake := &fakeAuthority{}
	svc := NewReviewService(fake)

	ex := completedExchange()
	created, err := svc.Create(context.Background(), ex, &models.ReviewCreatePayload{Rating: 4, Comment: "Отличный обмен"})
	require.NoError(t, err)

	assert.Equal(t, ex.ID, created.ExchangeID)
	assert.Equal(t, 4, created.Rating)
	// Идентификатор обмена проставляется из самой заявки
	assert.Equal(t, ex.ID, fake.created.ExchangeID)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	fake := &fakeAuthority{}
	svc := NewReviewService(fake)

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.Create(context.Background(), completedExchange(), &models.ReviewCreatePayload{Rating: rating})
		assert.ErrorIs(t, err, api.ErrValidation)
	}
	assert.Equal(t, 0, fake.createCalls)

	for _, rating := range []int{1, 5} {
		_, err := svc.Create(context.Background(), completedExchange(), &models.ReviewCreatePayload{Rating: rating})
		assert.NoError(t, err)
	}
}
