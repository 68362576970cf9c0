package repositories

import (
	"context"

	"finser-backend/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AdminUserRepository defines admin flag repository interface.
// Read-only: admin rows are provisioned out of band (seeder / DBA).
type AdminUserRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.AdminUser, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// FormRepository defines form repository interface
type FormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	// GetByToken returns the single form carrying token. Zero or multiple
	// matches are both reported as gorm.ErrRecordNotFound to the caller.
	GetByToken(ctx context.Context, token string) (*models.Form, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Form, error)
	List(ctx context.Context, offset, limit int) ([]*models.Form, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	ExistsByToken(ctx context.Context, token string) (bool, error)
}
