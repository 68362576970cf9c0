package services

import (
	"context"
	"sort"
	"time"

	"finser-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory fakes over the repository interfaces.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
	// getErr forces GetByID to fail, simulating a non-fatal lookup failure
	getErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

type fakeAdminRepo struct {
	admins map[uint]*models.AdminUser
	err    error
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[uint]*models.AdminUser)}
}

func (r *fakeAdminRepo) GetByUserID(_ context.Context, userID uint) (*models.AdminUser, error) {
	if r.err != nil {
		return nil, r.err
	}
	admin, ok := r.admins[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return admin, nil
}

type fakeRefreshTokenRepo struct {
	tokens  map[string]*models.RefreshToken
	nextID  uint
	revoked int
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken), nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return token, nil
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	now := time.Now()
	for _, t := range r.tokens {
		if t.ID == id {
			t.RevokedAt = &now
			r.revoked++
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	if t, ok := r.tokens[tokenHash]; ok && t.RevokedAt == nil {
		now := time.Now()
		t.RevokedAt = &now
		r.revoked++
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			r.revoked++
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var deleted int64
	for hash, t := range r.tokens {
		if t.IsExpired() {
			delete(r.tokens, hash)
			deleted++
		}
	}
	return deleted, nil
}

type fakeFormRepo struct {
	forms  map[uint]*models.Form
	nextID uint
	// tokenAlwaysTaken makes every ExistsByToken check report a collision
	tokenAlwaysTaken bool
	statusUpdates    int
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{forms: make(map[uint]*models.Form), nextID: 1}
}

func (r *fakeFormRepo) Create(_ context.Context, form *models.Form) error {
	form.ID = r.nextID
	r.nextID++
	if form.CreatedAt.IsZero() {
		form.CreatedAt = time.Now()
	}
	r.forms[form.ID] = form
	return nil
}

func (r *fakeFormRepo) GetByID(_ context.Context, id uint) (*models.Form, error) {
	form, ok := r.forms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return form, nil
}

func (r *fakeFormRepo) GetByToken(_ context.Context, token string) (*models.Form, error) {
	var matches []*models.Form
	for _, f := range r.forms {
		if f.Token == token {
			matches = append(matches, f)
		}
	}
	if len(matches) != 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return matches[0], nil
}

func (r *fakeFormRepo) ListByUser(_ context.Context, userID uint) ([]*models.Form, error) {
	var forms []*models.Form
	for _, f := range r.forms {
		if f.UserID == userID {
			forms = append(forms, f)
		}
	}
	sort.Slice(forms, func(i, j int) bool {
		return forms[i].CreatedAt.After(forms[j].CreatedAt)
	})
	return forms, nil
}

func (r *fakeFormRepo) List(_ context.Context, offset, limit int) ([]*models.Form, int64, error) {
	var forms []*models.Form
	for _, f := range r.forms {
		forms = append(forms, f)
	}
	sort.Slice(forms, func(i, j int) bool {
		return forms[i].CreatedAt.After(forms[j].CreatedAt)
	})
	total := int64(len(forms))
	if offset >= len(forms) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(forms) {
		end = len(forms)
	}
	return forms[offset:end], total, nil
}

func (r *fakeFormRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	form, ok := r.forms[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	form.Status = status
	form.UpdatedAt = time.Now()
	r.statusUpdates++
	return nil
}

func (r *fakeFormRepo) ExistsByToken(_ context.Context, token string) (bool, error) {
	if r.tokenAlwaysTaken {
		return true, nil
	}
	for _, f := range r.forms {
		if f.Token == token {
			return true, nil
		}
	}
	return false, nil
}
