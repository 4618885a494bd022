package repository

import "context"

// AIRepository AI bilan ishlash uchun interface
type AIRepository interface {
	// SuggestTags mahsulot turi uchun teg takliflarini yaratish
	SuggestTags(ctx context.Context, productType string, existing map[string][]string) ([]string, error)

	// Close client ni yopish
	Close() error
}
