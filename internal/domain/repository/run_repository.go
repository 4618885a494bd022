package repository

import (
	"context"

	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
)

// RunRepository sync run tarixini saqlash uchun interface
type RunRepository interface {
	// LogRun run natijasini saqlash
	LogRun(ctx context.Context, report entity.SyncReport) error

	// RecentRuns so'nggi runlarni olish (eng yangisi birinchi)
	RecentRuns(ctx context.Context, limit int) ([]entity.SyncReport, error)
}
