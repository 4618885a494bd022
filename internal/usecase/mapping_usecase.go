package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
	"github.com/yourusername/shopify-tag-bot/internal/domain/repository"
)

// MappingUseCase tur-teg mappinglar bilan bog'liq business logic
type MappingUseCase interface {
	// Set mapping qo'shish yoki yangilash
	Set(ctx context.Context, userID int64, productType, tags string) error

	// Remove mappingni o'chirish; topilmagan bo'lsa false qaytaradi
	Remove(ctx context.Context, userID int64, productType string) (bool, error)

	// List barcha mappinglarni olish
	List(ctx context.Context) ([]entity.TypeTagMapping, error)

	// ImportFromFile spreadsheet fayldan mappinglarni yuklash
	ImportFromFile(ctx context.Context, userID int64, filePath string) (int, error)

	// ImportFromBytes yuklangan fayl baytlaridan mappinglarni yuklash
	ImportFromBytes(ctx context.Context, userID int64, data []byte, filename string) (int, error)

	// SuggestTags mahsulot turi uchun AI teg takliflari
	SuggestTags(ctx context.Context, productType string) ([]string, error)
}

type mappingUseCase struct {
	mappingRepo repository.MappingRepository
	adminRepo   repository.AdminRepository
	parser      repository.MappingParser
	aiRepo      repository.AIRepository // nil bo'lishi mumkin
}

// NewMappingUseCase yangi MappingUseCase yaratish
func NewMappingUseCase(
	mappingRepo repository.MappingRepository,
	adminRepo repository.AdminRepository,
	parser repository.MappingParser,
	aiRepo repository.AIRepository,
) MappingUseCase {
	return &mappingUseCase{
		mappingRepo: mappingRepo,
		adminRepo:   adminRepo,
		parser:      parser,
		aiRepo:      aiRepo,
	}
}

// Set mapping qo'shish yoki yangilash
func (u *mappingUseCase) Set(ctx context.Context, userID int64, productType, tags string) error {
	productType = strings.TrimSpace(productType)
	tags = strings.TrimSpace(tags)
	if productType == "" || tags == "" {
		return ErrValidation
	}

	if err := u.mappingRepo.Upsert(ctx, productType, tags); err != nil {
		return fmt.Errorf("mappingni saqlab bo'lmadi: %w", err)
	}

	u.logAction(ctx, userID, "set_mapping", fmt.Sprintf("%s -> %s", productType, tags))
	return nil
}

// Remove mappingni o'chirish; topilmagan bo'lsa false qaytaradi
func (u *mappingUseCase) Remove(ctx context.Context, userID int64, productType string) (bool, error) {
	productType = strings.TrimSpace(productType)
	if productType == "" {
		return false, ErrValidation
	}

	removed, err := u.mappingRepo.Remove(ctx, productType)
	if err != nil {
		return false, fmt.Errorf("mappingni o'chirib bo'lmadi: %w", err)
	}

	if removed {
		u.logAction(ctx, userID, "remove_mapping", productType)
	}
	return removed, nil
}

// List barcha mappinglarni olish
func (u *mappingUseCase) List(ctx context.Context) ([]entity.TypeTagMapping, error) {
	return u.mappingRepo.List(ctx)
}

// ImportFromFile spreadsheet fayldan mappinglarni yuklash
func (u *mappingUseCase) ImportFromFile(ctx context.Context, userID int64, filePath string) (int, error) {
	rows, err := u.parser.ParseMappings(ctx, filePath)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSourceData, err)
	}
	return u.importRows(ctx, userID, rows, filePath)
}

// ImportFromBytes yuklangan fayl baytlaridan mappinglarni yuklash
func (u *mappingUseCase) ImportFromBytes(ctx context.Context, userID int64, data []byte, filename string) (int, error) {
	rows, err := u.parser.ParseMappingsFromBytes(ctx, data, filename)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSourceData, err)
	}
	return u.importRows(ctx, userID, rows, filename)
}

// importRows qatorlarni bazaga yuklash
func (u *mappingUseCase) importRows(ctx context.Context, userID int64, rows []entity.MappingRow, source string) (int, error) {
	count, err := u.mappingRepo.BulkImport(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("mappinglarni import qilib bo'lmadi: %w", err)
	}

	u.logAction(ctx, userID, "import", fmt.Sprintf("Imported %d mappings from %s", count, source))
	return count, nil
}

// SuggestTags mahsulot turi uchun AI teg takliflari
func (u *mappingUseCase) SuggestTags(ctx context.Context, productType string) ([]string, error) {
	if u.aiRepo == nil {
		return nil, fmt.Errorf("AI taklif funksiyasi o'chirilgan (GEMINI_API_KEY yo'q)")
	}

	productType = strings.TrimSpace(productType)
	if productType == "" {
		return nil, ErrValidation
	}

	existing, err := u.mappingRepo.LoadMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("mappinglarni yuklab bo'lmadi: %w", err)
	}

	return u.aiRepo.SuggestTags(ctx, productType, existing)
}

// logAction admin harakatini loglash (xatolik jim o'tkaziladi)
func (u *mappingUseCase) logAction(ctx context.Context, userID int64, action, details string) {
	_ = u.adminRepo.LogAction(ctx, entity.AdminAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
}
