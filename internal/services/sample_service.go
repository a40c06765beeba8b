// internal/services/sample_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/policy"
	"github.com/plmining/licensing-backend/internal/repository"
	"github.com/plmining/licensing-backend/internal/utils"
)

type SampleService struct {
	samples repository.SampleRepository
	now     func() time.Time
}

type SampleRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Nationality string  `json:"nationality" validate:"required,max=255"`
	PassportNo  string  `json:"passport_no" validate:"required,max=255"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Unit        string  `json:"unit" validate:"required,oneof=milligram gram kilogram ton"`
	MineralType string  `json:"mineral_type" validate:"required,max=255"`
}

type NextRefID struct {
	RefID  string `json:"refId"`
	Serial int64  `json:"serial"`
}

func NewSampleService(samples repository.SampleRepository) *SampleService {
	return &SampleService{samples: samples, now: time.Now}
}

func applySampleRequest(sample *models.SampleAnalysis, req *SampleRequest) error {
	kg, err := licensing.ToKilograms(req.Amount, req.Unit)
	if err != nil {
		return err
	}

	sample.Name = strings.TrimSpace(req.Name)
	sample.Nationality = strings.TrimSpace(req.Nationality)
	sample.PassportNo = strings.TrimSpace(req.PassportNo)
	sample.Amount = req.Amount
	sample.Unit = req.Unit
	sample.KiloGram = kg
	sample.MineralType = strings.TrimSpace(req.MineralType)
	return nil
}

// CreateSample stores the sample under the next MOEMW/DG/NN/YY reference of
// the current year.
func (s *SampleService) CreateSample(ctx context.Context, actor policy.Role, req *SampleRequest) (*models.SampleAnalysis, error) {
	if !policy.Can(actor, policy.ActionSampleCreate) {
		return nil, ErrForbidden
	}

	sample := &models.SampleAnalysis{}
	if err := applySampleRequest(sample, req); err != nil {
		return nil, err
	}

	now := s.now()
	build := func(serial int64) string {
		return licensing.FormatSampleRefID(int(serial), now)
	}
	if err := s.samples.CreateWithSerial(ctx, sample, now, build); err != nil {
		return nil, fmt.Errorf("failed to create sample analysis: %w", err)
	}
	return sample, nil
}

// PeekRefID previews the reference the next sample would get. Concurrent
// submissions may still take it first.
func (s *SampleService) PeekRefID(ctx context.Context) (*NextRefID, error) {
	now := s.now()
	serial, err := s.samples.PeekNextSerial(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute next reference: %w", err)
	}
	return &NextRefID{RefID: licensing.FormatSampleRefID(int(serial), now), Serial: serial}, nil
}

func (s *SampleService) UpdateSample(ctx context.Context, actor policy.Role, id uuid.UUID, req *SampleRequest) (*models.SampleAnalysis, error) {
	if !policy.Can(actor, policy.ActionSampleUpdate) {
		return nil, ErrForbidden
	}

	sample, err := s.GetSample(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySampleRequest(sample, req); err != nil {
		return nil, err
	}
	if err := s.samples.Update(ctx, sample); err != nil {
		return nil, fmt.Errorf("failed to update sample analysis: %w", err)
	}
	return sample, nil
}

func (s *SampleService) GetSample(ctx context.Context, id uuid.UUID) (*models.SampleAnalysis, error) {
	return s.wrapFind(s.samples.FindByID(ctx, id))
}

func (s *SampleService) GetSampleByRef(ctx context.Context, refID string) (*models.SampleAnalysis, error) {
	return s.wrapFind(s.samples.FindByRefID(ctx, strings.TrimSpace(refID)))
}

func (s *SampleService) wrapFind(sample *models.SampleAnalysis, err error) (*models.SampleAnalysis, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSampleNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return sample, nil
}

func (s *SampleService) ListSamples(ctx context.Context) ([]models.SampleAnalysis, error) {
	samples, err := s.samples.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sample analyses: %w", err)
	}
	return samples, nil
}

func (s *SampleService) ListSamplesPage(ctx context.Context, page utils.PageRequest) ([]models.SampleAnalysis, int64, error) {
	samples, total, err := s.samples.ListPage(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sample analyses: %w", err)
	}
	return samples, total, nil
}

func (s *SampleService) SetSignature(ctx context.Context, actor policy.Role, id uuid.UUID, signed bool) error {
	if !policy.Can(actor, policy.ActionSampleSign) {
		return ErrForbidden
	}
	if err := s.samples.UpdateSignature(ctx, id, signed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSampleNotFound
		}
		return fmt.Errorf("failed to update sample signature: %w", err)
	}
	return nil
}

func (s *SampleService) DeleteSample(ctx context.Context, actor policy.Role, id uuid.UUID) error {
	if !policy.Can(actor, policy.ActionSampleDelete) {
		return ErrForbidden
	}
	if err := s.samples.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSampleNotFound
		}
		return fmt.Errorf("failed to delete sample analysis: %w", err)
	}
	return nil
}
