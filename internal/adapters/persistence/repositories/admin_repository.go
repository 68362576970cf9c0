package repositories

import (
	"context"

	"finser-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// adminUserRepository implements AdminUserRepository interface
type adminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

// GetByUserID gets the admin row for a user, if one exists
func (r *adminUserRepository) GetByUserID(ctx context.Context, userID uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
