// internal/services/region_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plmining/licensing-backend/internal/cache"
	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/repository"
)

const allKey = "all"

// RegionService serves the static region/district tree from an expiring cache.
type RegionService struct {
	repo      repository.RegionRepository
	regions   *cache.TTLCache[string, []models.Region]
	districts *cache.TTLCache[string, []models.District]
}

func NewRegionService(repo repository.RegionRepository, maxEntries int, ttl time.Duration) *RegionService {
	return &RegionService{
		repo:      repo,
		regions:   cache.NewTTLCache[string, []models.Region]("regions", maxEntries, ttl),
		districts: cache.NewTTLCache[string, []models.District]("districts", maxEntries, ttl),
	}
}

func (s *RegionService) Regions(ctx context.Context) ([]models.Region, error) {
	if regions, ok := s.regions.Get(allKey); ok {
		return regions, nil
	}

	regions, err := s.repo.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load regions: %w", err)
	}
	s.regions.Set(allKey, regions)
	return regions, nil
}

func (s *RegionService) districtList(ctx context.Context) ([]models.District, error) {
	if districts, ok := s.districts.Get(allKey); ok {
		return districts, nil
	}

	districts, err := s.repo.ListDistricts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load districts: %w", err)
	}
	s.districts.Set(allKey, districts)
	return districts, nil
}

// DistrictRows returns the flattened join ordered by region then district.
func (s *RegionService) DistrictRows(ctx context.Context) ([]models.DistrictRow, error) {
	districts, err := s.districtList(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.DistrictRow, 0, len(districts))
	for _, d := range districts {
		row := models.DistrictRow{
			RegionID:     d.RegionID,
			DistrictID:   d.ID,
			DistrictName: d.Name,
		}
		if d.Region != nil {
			row.RegionName = d.Region.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *RegionService) DistrictRefs(ctx context.Context) ([]licensing.District, error) {
	districts, err := s.districtList(ctx)
	if err != nil {
		return nil, err
	}

	refs := make([]licensing.District, 0, len(districts))
	for _, d := range districts {
		refs = append(refs, d.Ref())
	}
	return refs, nil
}

// ValidateSelection rejects an unknown district or one outside the region
// with a field error on "district".
func (s *RegionService) ValidateSelection(ctx context.Context, regionID, districtID uuid.UUID) error {
	refs, err := s.DistrictRefs(ctx)
	if err != nil {
		return err
	}

	known := false
	for _, d := range refs {
		if d.ID == districtID {
			known = true
			break
		}
	}
	if !known {
		return fieldError("district", "Unknown district")
	}

	if fe := licensing.ValidateSelection(refs, regionID, districtID); fe != nil {
		return fe
	}
	return nil
}
