package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"finser-backend/internal/adapters/persistence/models"
	"finser-backend/internal/adapters/persistence/repositories"
	"finser-backend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TokenLength is the length of an issued submission token
const TokenLength = 12

// tokenIssueAttempts bounds pre-insert collision retries; the unique index
// on forms.token is the authoritative backstop.
const tokenIssueAttempts = 5

// FormService handles form submission and review business logic
type FormService struct {
	formRepo repositories.FormRepository
	userRepo repositories.UserRepository
}

// NewFormService creates a new form service
func NewFormService(formRepo repositories.FormRepository, userRepo repositories.UserRepository) *FormService {
	return &FormService{
		formRepo: formRepo,
		userRepo: userRepo,
	}
}

// SubmitInput represents a form submission
type SubmitInput struct {
	FormType string            `json:"form_type"`
	FormData datatypes.JSONMap `json:"form_data"`
}

// Submit validates the form kind, issues a unique token and stores the
// submission. Field values are accepted as-is; empty and partial field
// sets are allowed.
func (s *FormService) Submit(ctx context.Context, userID uint, input *SubmitInput) (*models.Form, error) {
	if _, ok := domain.FormTypeByID(input.FormType); !ok {
		return nil, domain.ErrUnknownFormType
	}

	formData := input.FormData
	if formData == nil {
		formData = datatypes.JSONMap{}
	}

	token, err := s.issueToken(ctx)
	if err != nil {
		return nil, err
	}

	form := &models.Form{
		UserID:   userID,
		FormType: input.FormType,
		FormData: formData,
		Token:    token,
		Status:   models.FormStatusPending,
	}

	if err := s.formRepo.Create(ctx, form); err != nil {
		return nil, err
	}

	log.Printf("✅ Form submitted: type=%s token=%s user=%d", form.FormType, form.Token, userID)
	return form, nil
}

// ListByUser returns a user's submissions, newest first
func (s *FormService) ListByUser(ctx context.Context, userID uint) ([]*models.Form, error) {
	return s.formRepo.ListByUser(ctx, userID)
}

// GetOwned returns a form only if it belongs to userID
func (s *FormService) GetOwned(ctx context.Context, userID, formID uint) (*models.Form, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFormNotFound
		}
		return nil, err
	}
	if form.UserID != userID {
		return nil, domain.ErrFormNotFound
	}
	return form, nil
}

// LookupByToken finds the single form carrying token and resolves the
// owner's email. Zero or ambiguous matches surface as ErrFormNotFound;
// the email lookup is non-fatal and only logged on failure.
func (s *FormService) LookupByToken(ctx context.Context, token string) (*models.FormResponse, error) {
	form, err := s.formRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFormNotFound
		}
		return nil, err
	}

	resp := form.ToResponse()

	owner, err := s.userRepo.GetByID(ctx, form.UserID)
	if err != nil {
		log.Printf("⚠️ Owner lookup failed for form %d (user %d): %v", form.ID, form.UserID, err)
	} else {
		resp.OwnerEmail = owner.Email
	}

	return resp, nil
}

// SetReviewStatus sets a form's status through admin review. Only the
// review statuses pending and reviewed may be set this way. Idempotent:
// re-applying the current status issues another update and succeeds.
func (s *FormService) SetReviewStatus(ctx context.Context, formID uint, status string) error {
	if !models.ValidAdminStatus(status) {
		return domain.ErrInvalidFormStatus
	}
	if err := s.formRepo.UpdateStatus(ctx, formID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFormNotFound
		}
		return err
	}

	log.Printf("✅ Form %d status set to %s", formID, status)
	return nil
}

// MarkApproved persists a verification pass through the same update path
// admin review uses.
func (s *FormService) MarkApproved(ctx context.Context, formID uint) error {
	if err := s.formRepo.UpdateStatus(ctx, formID, models.FormStatusApproved); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFormNotFound
		}
		return err
	}

	log.Printf("✅ Form %d approved", formID)
	return nil
}

// List returns all submissions with pagination, newest first
func (s *FormService) List(ctx context.Context, offset, limit int) ([]*models.Form, int64, error) {
	return s.formRepo.List(ctx, offset, limit)
}

// issueToken generates a submission token and verifies it is unused,
// retrying a bounded number of times on collision.
func (s *FormService) issueToken(ctx context.Context) (string, error) {
	for i := 0; i < tokenIssueAttempts; i++ {
		token := newToken()

		exists, err := s.formRepo.ExistsByToken(ctx, token)
		if err != nil {
			return "", err
		}
		if !exists {
			return token, nil
		}
	}
	return "", domain.ErrTokenExhausted
}

// newToken derives a short upper-hex token from a v4 UUID
func newToken() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:TokenLength])
}
