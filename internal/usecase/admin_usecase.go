package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
	"github.com/yourusername/shopify-tag-bot/internal/domain/repository"
)

const (
	AdminPassword = "@#12" // Admin paroli
)

// AdminUseCase admin bilan bog'liq business logic
type AdminUseCase interface {
	// Login admin login qilish
	Login(ctx context.Context, userID int64, password string) (bool, error)

	// Logout admin logout qilish
	Logout(ctx context.Context, userID int64) error

	// IsAdmin admin ekanligini tekshirish
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

type adminUseCase struct {
	adminRepo repository.AdminRepository
}

// NewAdminUseCase yangi AdminUseCase yaratish
func NewAdminUseCase(adminRepo repository.AdminRepository) AdminUseCase {
	return &adminUseCase{
		adminRepo: adminRepo,
	}
}

// Login admin login qilish
func (u *adminUseCase) Login(ctx context.Context, userID int64, password string) (bool, error) {
	// Parolni tekshirish
	if password != AdminPassword {
		return false, nil
	}

	// Admin sessiyasini yaratish
	session := entity.AdminSession{
		UserID:       userID,
		IsAdmin:      true,
		LoginTime:    time.Now(),
		LastActivity: time.Now(),
	}

	if err := u.adminRepo.CreateSession(ctx, session); err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	// Login harakatini loglash
	action := entity.AdminAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    "login",
		Details:   "Admin successfully logged in",
		Timestamp: time.Now(),
	}
	_ = u.adminRepo.LogAction(ctx, action)

	return true, nil
}

// Logout admin logout qilish
func (u *adminUseCase) Logout(ctx context.Context, userID int64) error {
	return u.adminRepo.DeleteSession(ctx, userID)
}

// IsAdmin admin ekanligini tekshirish
func (u *adminUseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return u.adminRepo.IsAdmin(ctx, userID)
}
