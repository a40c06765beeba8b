// internal/repository/password_reset.go
package repository

// go generate: mockery --name PasswordResetRepository --output mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plmining/licensing-backend/internal/models"
)

type PasswordResetRepository interface {
	// Replace deletes every token for the email and stores the new one.
	Replace(ctx context.Context, token *models.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	// Complete sets the user's password hash and consumes the token atomically.
	Complete(ctx context.Context, tokenID uuid.UUID, email, passwordHash string) error
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Replace(ctx context.Context, token *models.PasswordResetToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", token.Email).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *passwordResetRepository) FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *passwordResetRepository) Complete(ctx context.Context, tokenID uuid.UUID, email, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("email = ?", email).
			Updates(map[string]interface{}{"password": passwordHash, "updated_at": time.Now()})
		if err := affectedOrNotFound(res); err != nil {
			return err
		}
		return affectedOrNotFound(tx.Delete(&models.PasswordResetToken{}, "id = ?", tokenID))
	})
}
