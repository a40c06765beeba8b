// internal/repository/license.go
package repository

// go generate: mockery --name LicenseRepository --output mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/utils"
)

type LicenseFilter struct {
	DistrictID *uuid.UUID
	Status     licensing.LicenseStatus
}

type LicenseRepository interface {
	Create(ctx context.Context, license *models.License) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.License, error)
	FindByRefID(ctx context.Context, refID string) (*models.License, error)
	List(ctx context.Context, filter LicenseFilter) ([]models.License, error)
	ListPage(ctx context.Context, filter LicenseFilter, page utils.PageRequest) ([]models.License, int64, error)
	Update(ctx context.Context, license *models.License) error
	// UpdateStatus only succeeds while the stored status still equals from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to licensing.LicenseStatus) error
	UpdateSignature(ctx context.Context, id uuid.UUID, signed bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]models.License, error)
}

type licenseRepository struct {
	db *gorm.DB
}

func NewLicenseRepository(db *gorm.DB) LicenseRepository {
	return &licenseRepository{db: db}
}

func (r *licenseRepository) Create(ctx context.Context, license *models.License) error {
	return r.db.WithContext(ctx).Omit("Location", "Region").Create(license).Error
}

func (r *licenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.License, error) {
	var license models.License
	err := r.db.WithContext(ctx).
		Preload("Location").
		Preload("Region").
		First(&license, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &license, nil
}

func (r *licenseRepository) FindByRefID(ctx context.Context, refID string) (*models.License, error) {
	var license models.License
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("license_ref_id = ?", refID).
		First(&license).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &license, nil
}

var licenseSortColumns = map[string]string{
	"created_at":     "created_at",
	"expire_date":    "expire_date",
	"company_name":   "company_name",
	"license_ref_id": "license_ref_id",
	"status":         "status",
}

func (r *licenseRepository) filtered(ctx context.Context, filter LicenseFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.License{})
	if filter.DistrictID != nil {
		query = query.Where("district_id = ?", *filter.DistrictID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

func (r *licenseRepository) List(ctx context.Context, filter LicenseFilter) ([]models.License, error) {
	var licenses []models.License
	err := r.filtered(ctx, filter).Preload("Location").Order("created_at DESC").Find(&licenses).Error
	return licenses, err
}

func (r *licenseRepository) ListPage(ctx context.Context, filter LicenseFilter, page utils.PageRequest) ([]models.License, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var licenses []models.License
	if err := page.Apply(r.filtered(ctx, filter).Preload("Location"), licenseSortColumns).Find(&licenses).Error; err != nil {
		return nil, 0, err
	}
	return licenses, total, nil
}

// Update writes the application fields. Reference id, status, signature and
// expiry only change through their dedicated operations.
func (r *licenseRepository) Update(ctx context.Context, license *models.License) error {
	license.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Omit("Location", "Region", "CreatedAt", "LicenseRefID", "Status", "Signature", "ExpireDate").
		Save(license).Error
}

func (r *licenseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to licensing.LicenseStatus) error {
	res := r.db.WithContext(ctx).Model(&models.License{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *licenseRepository) UpdateSignature(ctx context.Context, id uuid.UUID, signed bool) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Model(&models.License{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"signature": signed, "updated_at": time.Now()}))
}

func (r *licenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Delete(&models.License{}, "id = ?", id))
}

func (r *licenseRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]models.License, error) {
	var licenses []models.License
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("expire_date >= ? AND expire_date <= ?", from, to).
		Order("expire_date ASC").
		Find(&licenses).Error
	return licenses, err
}
