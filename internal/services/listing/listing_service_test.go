package listing

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obmenapp/obmen-client/internal/api"
	"github.com/obmenapp/obmen-client/internal/models"
)

type fakeAuthority struct {
	itemCalls  int
	skillCalls int
}

func (f *fakeAuthority) Items(_ context.Context) ([]models.Listing, error)  { return nil, nil }
func (f *fakeAuthority) Skills(_ context.Context) ([]models.Listing, error) { return nil, nil }

func (f *fakeAuthority) GetItem(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	f.itemCalls++
	return &models.Listing{ID: id, Kind: models.KindItem}, nil
}

func (f *fakeAuthority) GetSkill(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	f.skillCalls++
	return &models.Listing{ID: id, Kind: models.KindSkill}, nil
}

func TestGetDispatchesByKind(t *testing.T) {
	fake := &fakeAuthority{}
	svc := NewListingService(fake)
	id := uuid.New()

	item, err := svc.Get(context.Background(), models.KindItem, id)
	require.NoError(t, err)
	assert.Equal(t, models.KindItem, item.Kind)

	skill, err := svc.Get(context.Background(), models.KindSkill, id)
	require.NoError(t, err)
	assert.Equal(t, models.KindSkill, skill.Kind)

	assert.Equal(t, 1, fake.itemCalls)
	assert.Equal(t, 1, fake.skillCalls)

	_, err = svc.Get(context.Background(), models.ListingKind("garage"), id)
	assert.ErrorIs(t, err, api.ErrValidation)
}

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name    string
		draft   models.ListingDraft
		wantErr bool
	}{
		{
			name:  "валидная вещь",
			draft: models.ListingDraft{Kind: models.KindItem, Title: "Дрель", Category: "diy"},
		},
		{
			name:  "валидная услуга без категории",
			draft: models.ListingDraft{Kind: models.KindSkill, Title: "Уроки гитары"},
		},
		{
			name:    "пустое название",
			draft:   models.ListingDraft{Kind: models.KindItem, Category: "diy"},
			wantErr: true,
		},
		{
			name:    "слишком длинное название",
			draft:   models.ListingDraft{Kind: models.KindItem, Title: strings.Repeat("о", 101), Category: "diy"},
			wantErr: true,
		},
		{
			name:  "название ровно в лимит",
			draft: models.ListingDraft{Kind: models.KindItem, Title: strings.Repeat("о", 100), Category: "diy"},
		},
		{
			name:    "вещь без категории",
			draft:   models.ListingDraft{Kind: models.KindItem, Title: "Дрель"},
			wantErr: true,
		},
		{
			name:    "вещь с выдуманной категорией",
			draft:   models.ListingDraft{Kind: models.KindItem, Title: "Дрель", Category: "tools"},
			wantErr: true,
		},
		{
			name:    "неизвестный вид",
			draft:   models.ListingDraft{Kind: "garage", Title: "Дрель"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDraft(&tt.draft)
			if tt.wantErr {
				assert.ErrorIs(t, err, api.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
