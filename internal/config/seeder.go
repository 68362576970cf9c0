package config

import (
	"log"

	"finser-backend/internal/adapters/persistence/models"
	"finser-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default super-admin account.
// Development/testing only; production admins are provisioned directly.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.AdminUser{}).Where("is_super_admin = ?", true).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    "admin@finser.local",
		Password: hashedPassword,
		IsActive: true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	if err := s.db.Create(&models.AdminUser{
		UserID:       admin.ID,
		IsSuperAdmin: true,
	}).Error; err != nil {
		return err
	}

	log.Printf("🌱 Seeded admin user: %s (ID: %d)", admin.Email, admin.ID)
	return nil
}

// SeedData runs all seeders against db
func SeedData(db *gorm.DB) error {
	return NewSeeder(db).Run()
}
