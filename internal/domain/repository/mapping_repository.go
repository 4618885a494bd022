package repository

import (
	"context"

	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
)

// MappingRepository tur-teg mappinglar bilan ishlash uchun interface
type MappingRepository interface {
	// Upsert mapping qo'shish yoki yangilash (updated_at yangilanadi)
	Upsert(ctx context.Context, productType, tags string) error

	// Remove mappingni o'chirish; o'chirilgan bo'lsa true qaytaradi
	Remove(ctx context.Context, productType string) (bool, error)

	// List barcha mappinglarni product_type bo'yicha tartiblab olish
	List(ctx context.Context) ([]entity.TypeTagMapping, error)

	// LoadMappings mappinglarni parse qilingan holda olish (tur -> teglar)
	LoadMappings(ctx context.Context) (map[string][]string, error)

	// BulkImport qatorlarni ommaviy yuklash; bo'sh maydonli qatorlar skip qilinadi
	BulkImport(ctx context.Context, rows []entity.MappingRow) (int, error)

	// Count mappinglar sonini olish
	Count(ctx context.Context) (int, error)
}
