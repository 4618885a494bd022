package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
	"github.com/yourusername/shopify-tag-bot/internal/infrastructure/storage"
)

// fakeParser oldindan tayyorlangan qatorlarni qaytaradi
type fakeParser struct {
	rows []entity.MappingRow
	err  error
}

func (p *fakeParser) ParseMappings(ctx context.Context, filePath string) ([]entity.MappingRow, error) {
	return p.rows, p.err
}

func (p *fakeParser) ParseMappingsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.MappingRow, error) {
	return p.rows, p.err
}

func newMappingUseCase(parser *fakeParser) MappingUseCase {
	return NewMappingUseCase(
		storage.NewMemoryMappingRepository(),
		storage.NewMemoryAdminRepository(),
		parser,
		nil,
	)
}

func TestSetAndList(t *testing.T) {
	ctx := context.Background()
	uc := newMappingUseCase(&fakeParser{})

	require.NoError(t, uc.Set(ctx, 1, "Shirt", "sale;new"))
	require.NoError(t, uc.Set(ctx, 1, "Hat", "winter"))

	mappings, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 2)

	// product_type bo'yicha tartiblangan
	assert.Equal(t, "Hat", mappings[0].ProductType)
	assert.Equal(t, "Shirt", mappings[1].ProductType)
	assert.Equal(t, []string{"sale", "new"}, mappings[1].TagList())
}

func TestSetReplacesExisting(t *testing.T) {
	ctx := context.Background()
	uc := newMappingUseCase(&fakeParser{})

	require.NoError(t, uc.Set(ctx, 1, "Shirt", "old"))
	require.NoError(t, uc.Set(ctx, 1, "Shirt", "sale;new"))

	mappings, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "sale;new", mappings[0].Tags)
}

func TestSetValidation(t *testing.T) {
	ctx := context.Background()
	uc := newMappingUseCase(&fakeParser{})

	assert.ErrorIs(t, uc.Set(ctx, 1, "", "sale"), ErrValidation)
	assert.ErrorIs(t, uc.Set(ctx, 1, "Shirt", ""), ErrValidation)
	assert.ErrorIs(t, uc.Set(ctx, 1, "   ", "  "), ErrValidation)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	uc := newMappingUseCase(&fakeParser{})

	require.NoError(t, uc.Set(ctx, 1, "Shirt", "sale"))

	removed, err := uc.Remove(ctx, 1, "Shirt")
	require.NoError(t, err)
	assert.True(t, removed)

	// Ikkinchi marta topilmaydi
	removed, err = uc.Remove(ctx, 1, "Shirt")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestImportSkipsBlankRows(t *testing.T) {
	ctx := context.Background()
	parser := &fakeParser{rows: []entity.MappingRow{
		{ProductType: "Shirt", Tags: "sale;new"},
		{ProductType: "  ", Tags: "winter"},
		{ProductType: "Hat", Tags: ""},
		{ProductType: "Shoes", Tags: "summer"},
	}}
	uc := newMappingUseCase(parser)

	count, err := uc.ImportFromBytes(ctx, 1, []byte("data"), "mappings.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	mappings, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, mappings, 2)
}

func TestImportBrokenFile(t *testing.T) {
	ctx := context.Background()
	uc := newMappingUseCase(&fakeParser{err: errors.New("missing tags column")})

	_, err := uc.ImportFromBytes(ctx, 1, []byte("data"), "broken.xlsx")
	assert.ErrorIs(t, err, ErrSourceData)
}

func TestSuggestTagsDisabledWithoutAI(t *testing.T) {
	ctx := context.Background()
	uc := newMappingUseCase(&fakeParser{})

	_, err := uc.SuggestTags(ctx, "Shirt")
	assert.Error(t, err)
}
