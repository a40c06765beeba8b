// internal/repository/region.go
package repository

// go generate: mockery --name RegionRepository --output mocks

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plmining/licensing-backend/internal/models"
)

type RegionRepository interface {
	ListRegions(ctx context.Context) ([]models.Region, error)
	ListDistricts(ctx context.Context) ([]models.District, error)
	FindRegion(ctx context.Context, id uuid.UUID) (*models.Region, error)
}

type regionRepository struct {
	db *gorm.DB
}

func NewRegionRepository(db *gorm.DB) RegionRepository {
	return &regionRepository{db: db}
}

func (r *regionRepository) ListRegions(ctx context.Context) ([]models.Region, error) {
	var regions []models.Region
	err := r.db.WithContext(ctx).
		Preload("Districts", func(db *gorm.DB) *gorm.DB { return db.Order("districts.name ASC") }).
		Order("name ASC").
		Find(&regions).Error
	return regions, err
}

func (r *regionRepository) ListDistricts(ctx context.Context) ([]models.District, error) {
	var districts []models.District
	err := r.db.WithContext(ctx).
		Preload("Region").
		Joins("JOIN regions ON regions.id = districts.region_id").
		Order("regions.name ASC, districts.name ASC").
		Find(&districts).Error
	return districts, err
}

func (r *regionRepository) FindRegion(ctx context.Context, id uuid.UUID) (*models.Region, error) {
	var region models.Region
	if err := r.db.WithContext(ctx).First(&region, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &region, nil
}
