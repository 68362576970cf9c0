package repositories

import (
	"context"

	"finser-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// formRepository implements FormRepository interface
type formRepository struct {
	db *gorm.DB
}

// NewFormRepository creates a new form repository
func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db}
}

// Create inserts a new form. The unique index on token is the final
// arbiter of token uniqueness.
func (r *formRepository) Create(ctx context.Context, form *models.Form) error {
	return r.db.WithContext(ctx).Create(form).Error
}

// GetByID gets a form by ID
func (r *formRepository) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	var form models.Form
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// GetByToken returns the single form carrying token. Zero and multiple
// matches both come back as gorm.ErrRecordNotFound so callers cannot tell
// an absent token from an ambiguous one.
func (r *formRepository) GetByToken(ctx context.Context, token string) (*models.Form, error) {
	var forms []models.Form
	if err := r.db.WithContext(ctx).Where("token = ?", token).Limit(2).Find(&forms).Error; err != nil {
		return nil, err
	}
	if len(forms) != 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return &forms[0], nil
}

// ListByUser lists a user's forms, newest first
func (r *formRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Form, error) {
	var forms []*models.Form
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&forms).Error
	if err != nil {
		return nil, err
	}
	return forms, nil
}

// List lists all forms with pagination, newest first
func (r *formRepository) List(ctx context.Context, offset, limit int) ([]*models.Form, int64, error) {
	var forms []*models.Form
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Form{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&forms).Error
	if err != nil {
		return nil, 0, err
	}

	return forms, total, nil
}

// UpdateStatus sets the status of a form by ID
func (r *formRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Form{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsByToken checks if a token is already in use
func (r *formRepository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Form{}).Where("token = ?", token).Count(&count).Error
	return count > 0, err
}
