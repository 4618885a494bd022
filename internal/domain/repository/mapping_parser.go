package repository

import (
	"context"

	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
)

// MappingParser spreadsheet fayllarni parse qilish uchun interface
type MappingParser interface {
	// ParseMappings fayldan mapping qatorlarini o'qish (.xlsx yoki .csv)
	ParseMappings(ctx context.Context, filePath string) ([]entity.MappingRow, error)

	// ParseMappingsFromBytes byte array dan parse qilish
	ParseMappingsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.MappingRow, error)
}
