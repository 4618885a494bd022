package entity

import (
	"strings"
	"time"
)

// TagSeparator ichki saqlash va ko'rsatish uchun ajratgich
const TagSeparator = ";"

// TypeTagMapping mahsulot turi uchun teglar mapping entity
type TypeTagMapping struct {
	ID          int64
	ProductType string
	Tags        string // ";" bilan ajratilgan teglar
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TagList saqlangan tag stringini ajratib, har bir bo'lakni trim qilish
func (m TypeTagMapping) TagList() []string {
	parts := strings.Split(m.Tags, TagSeparator)
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tags = append(tags, strings.TrimSpace(part))
	}
	return tags
}

// MappingRow spreadsheet'dan o'qilgan xom qator
type MappingRow struct {
	ProductType string
	Tags        string
}
