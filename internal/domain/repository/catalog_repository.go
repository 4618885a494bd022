package repository

import (
	"context"

	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
)

// CatalogSession ochilgan katalog sessiyasi; ishlatib bo'lgach Close chaqirilishi SHART
type CatalogSession interface {
	// FetchPage mahsulotlar sahifasini olish; pageInfo bo'sh bo'lsa birinchi sahifa
	FetchPage(ctx context.Context, pageInfo string, limit int) (*entity.ProductPage, error)

	// UpdateTags mahsulot teglarini yangilash (Shopify wire formatda)
	UpdateTags(ctx context.Context, productID int64, tags string) error

	// Close sessiyani yopish
	Close() error
}

// CatalogRepository remote katalog bilan ishlash uchun interface
type CatalogRepository interface {
	// OpenSession katalog sessiyasini ochish va credentiallarni tekshirish
	OpenSession(ctx context.Context) (CatalogSession, error)
}
