package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
	"github.com/yourusername/shopify-tag-bot/internal/domain/repository"
)

type memoryMappingRepository struct {
	mu       sync.RWMutex
	mappings map[string]entity.TypeTagMapping // key: product_type
	nextID   int64
}

// NewMemoryMappingRepository in-memory mapping repository yaratish
func NewMemoryMappingRepository() repository.MappingRepository {
	return &memoryMappingRepository{
		mappings: make(map[string]entity.TypeTagMapping),
		nextID:   1,
	}
}

// Upsert mapping qo'shish yoki yangilash
func (m *memoryMappingRepository) Upsert(ctx context.Context, productType, tags string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.upsertLocked(productType, tags)
	return nil
}

func (m *memoryMappingRepository) upsertLocked(productType, tags string) {
	now := time.Now()
	if existing, exists := m.mappings[productType]; exists {
		existing.Tags = tags
		existing.UpdatedAt = now
		m.mappings[productType] = existing
		return
	}

	m.mappings[productType] = entity.TypeTagMapping{
		ID:          m.nextID,
		ProductType: productType,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.nextID++
}

// Remove mappingni o'chirish
func (m *memoryMappingRepository) Remove(ctx context.Context, productType string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.mappings[productType]; !exists {
		return false, nil
	}
	delete(m.mappings, productType)
	return true, nil
}

// List barcha mappinglarni product_type bo'yicha tartiblab olish
func (m *memoryMappingRepository) List(ctx context.Context) ([]entity.TypeTagMapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mappings := make([]entity.TypeTagMapping, 0, len(m.mappings))
	for _, mapping := range m.mappings {
		mappings = append(mappings, mapping)
	}
	sort.Slice(mappings, func(i, j int) bool {
		return mappings[i].ProductType < mappings[j].ProductType
	})
	return mappings, nil
}

// LoadMappings mappinglarni parse qilingan holda olish
func (m *memoryMappingRepository) LoadMappings(ctx context.Context) (map[string][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string][]string, len(m.mappings))
	for productType, mapping := range m.mappings {
		result[productType] = mapping.TagList()
	}
	return result, nil
}

// BulkImport qatorlarni ommaviy yuklash
func (m *memoryMappingRepository) BulkImport(ctx context.Context, rows []entity.MappingRow) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, row := range rows {
		productType := strings.TrimSpace(row.ProductType)
		tags := strings.TrimSpace(row.Tags)
		if productType == "" || tags == "" {
			continue
		}
		m.upsertLocked(productType, tags)
		count++
	}
	return count, nil
}

// Count mappinglar sonini olish
func (m *memoryMappingRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.mappings), nil
}
