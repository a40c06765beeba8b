// internal/services/license_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/config"
	"github.com/plmining/licensing-backend/internal/database"
	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/policy"
	"github.com/plmining/licensing-backend/internal/repository"
	"github.com/plmining/licensing-backend/internal/utils"
)

const refIDAttempts = 3

type LicenseService struct {
	licenses repository.LicenseRepository
	regions  *RegionService
	cfg      config.SchedulerConfig
	now      func() time.Time
}

type LicenseRequest struct {
	// Company
	CompanyName     string    `json:"company_name" validate:"required,max=255"`
	BusinessType    string    `json:"business_type" validate:"required,max=255"`
	CompanyAddress  string    `json:"company_address" validate:"required"`
	Region          uuid.UUID `json:"region" validate:"required"`
	District        uuid.UUID `json:"district" validate:"required"`
	CountryOfOrigin string    `json:"country_of_origin" validate:"required,max=255"`

	// Applicant
	FullName     string `json:"full_name" validate:"required,max=255"`
	MobileNumber string `json:"mobile_number" validate:"required,max=255"`
	EmailAddress string `json:"email_address" validate:"required,email"`
	IDCardNumber string `json:"id_card_number" validate:"required,max=255"`

	// Documents
	PassportPhotos              string `json:"passport_photos" validate:"omitempty,url"`
	CompanyProfile              string `json:"company_profile" validate:"omitempty,url"`
	ReceiptOfPayment            string `json:"receipt_of_payment" validate:"omitempty,url"`
	EnvironmentalAssessmentPlan string `json:"environmental_assessment_plan" validate:"omitempty,url"`
	ExperienceProfile           string `json:"experience_profile" validate:"omitempty,url"`
	RiskManagementPlan          string `json:"risk_management_plan" validate:"omitempty,url"`
	BankStatement               string `json:"bank_statement" validate:"omitempty,url"`

	// License
	LicenseType     string   `json:"license_type" validate:"required,license_type"`
	LicenseCategory string   `json:"license_category" validate:"required"`
	LicenseFee      string   `json:"license_fee,omitempty"`
	LicenseArea     []string `json:"license_area" validate:"required,min=1,dive,required"`
}

type UpdateLicenseStatusRequest struct {
	Status string `json:"status" validate:"required,license_status"`
}

type SignatureRequest struct {
	Signature *bool `json:"signature" validate:"required"`
}

// ExpiringLicense is one entry of the expiry notification list.
type ExpiringLicense struct {
	ID              uuid.UUID               `json:"id"`
	LicenseRefID    string                  `json:"license_ref_id"`
	CompanyName     string                  `json:"company_name"`
	LicenseType     string                  `json:"license_type"`
	LicenseCategory string                  `json:"license_category"`
	Status          licensing.LicenseStatus `json:"status"`
	District        string                  `json:"district,omitempty"`
	ExpireDate      time.Time               `json:"expire_date"`
	DaysLeft        int                     `json:"days_left"`
	Urgency         licensing.Urgency       `json:"urgency"`
}

func NewLicenseService(licenses repository.LicenseRepository, regions *RegionService, cfg config.SchedulerConfig) *LicenseService {
	return &LicenseService{
		licenses: licenses,
		regions:  regions,
		cfg:      cfg,
		now:      time.Now,
	}
}

// checkRequest resolves the server-side fee and the normalized areas, and
// verifies the region/district pairing.
func (s *LicenseService) checkRequest(ctx context.Context, req *LicenseRequest) (decimal.Decimal, []string, error) {
	fee, ok := licensing.FeeAmount(req.LicenseType, req.LicenseCategory)
	if !ok {
		return decimal.Zero, nil, fieldError("license_category", "Category is not offered for this license type")
	}
	if req.LicenseFee != "" {
		if expected, _ := licensing.Fee(req.LicenseType, req.LicenseCategory); strings.TrimSpace(req.LicenseFee) != expected {
			logrus.WithFields(logrus.Fields{
				"license_type":     req.LicenseType,
				"license_category": req.LicenseCategory,
				"submitted_fee":    req.LicenseFee,
				"fee":              expected,
			}).Warn("Submitted license fee differs from fee table, using fee table")
		}
	}

	areas, err := licensing.NormalizeAreas(req.LicenseArea)
	if err != nil {
		return decimal.Zero, nil, err
	}

	if err := s.regions.ValidateSelection(ctx, req.Region, req.District); err != nil {
		return decimal.Zero, nil, err
	}
	return fee, areas, nil
}

func applyLicenseRequest(license *models.License, req *LicenseRequest, fee decimal.Decimal, areas []string) {
	license.CompanyName = strings.TrimSpace(req.CompanyName)
	license.BusinessType = strings.TrimSpace(req.BusinessType)
	license.CompanyAddress = strings.TrimSpace(req.CompanyAddress)
	license.RegionID = req.Region
	license.DistrictID = req.District
	license.CountryOfOrigin = strings.TrimSpace(req.CountryOfOrigin)

	license.FullName = strings.TrimSpace(req.FullName)
	license.MobileNumber = strings.TrimSpace(req.MobileNumber)
	license.EmailAddress = strings.TrimSpace(req.EmailAddress)
	license.IDCardNumber = strings.TrimSpace(req.IDCardNumber)

	license.PassportPhotos = req.PassportPhotos
	license.CompanyProfile = req.CompanyProfile
	license.ReceiptOfPayment = req.ReceiptOfPayment
	license.EnvironmentalAssessmentPlan = req.EnvironmentalAssessmentPlan
	license.ExperienceProfile = req.ExperienceProfile
	license.RiskManagementPlan = req.RiskManagementPlan
	license.BankStatement = req.BankStatement

	license.LicenseType = req.LicenseType
	license.LicenseCategory = req.LicenseCategory
	license.CalculatedFee = fee
	license.LicenseArea = pq.StringArray(areas)
}

// CreateLicense registers a PENDING license valid for one year. The reference
// id is random, so a collision with an existing id is retried.
func (s *LicenseService) CreateLicense(ctx context.Context, req *LicenseRequest) (*models.License, error) {
	fee, areas, err := s.checkRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	license := &models.License{Status: licensing.StatusPending}
	applyLicenseRequest(license, req, fee, areas)
	license.CreatedAt = now
	license.UpdatedAt = now
	license.ExpireDate = licensing.DefaultExpiry(now)

	for attempt := 1; ; attempt++ {
		ref, err := licensing.NewLicenseRefID(now)
		if err != nil {
			return nil, fmt.Errorf("failed to generate license reference: %w", err)
		}
		license.LicenseRefID = ref

		err = s.licenses.Create(ctx, license)
		if err == nil {
			break
		}
		if !database.IsUniqueViolation(err) || attempt == refIDAttempts {
			return nil, fmt.Errorf("failed to create license: %w", err)
		}
		logrus.WithField("license_ref_id", ref).Warn("License reference collision, regenerating")
		license.ID = uuid.Nil
	}

	license.RefreshValidity(now)
	return license, nil
}

func (s *LicenseService) UpdateLicense(ctx context.Context, id uuid.UUID, req *LicenseRequest) (*models.License, error) {
	license, err := s.GetLicense(ctx, id)
	if err != nil {
		return nil, err
	}

	fee, areas, err := s.checkRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	applyLicenseRequest(license, req, fee, areas)
	license.Location = nil
	license.Region = nil

	if err := s.licenses.Update(ctx, license); err != nil {
		return nil, fmt.Errorf("failed to update license: %w", err)
	}
	license.RefreshValidity(s.now())
	return license, nil
}

func (s *LicenseService) GetLicense(ctx context.Context, id uuid.UUID) (*models.License, error) {
	license, err := s.licenses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return license, nil
}

func (s *LicenseService) ListLicenses(ctx context.Context, filter repository.LicenseFilter) ([]models.License, error) {
	licenses, err := s.licenses.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	return licenses, nil
}

func (s *LicenseService) ListLicensesPage(ctx context.Context, filter repository.LicenseFilter, page utils.PageRequest) ([]models.License, int64, error) {
	licenses, total, err := s.licenses.ListPage(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list licenses: %w", err)
	}
	return licenses, total, nil
}

// VerifyLicense is the public lookup; it only ever exposes the public projection.
func (s *LicenseService) VerifyLicense(ctx context.Context, refID string) (*models.PublicLicense, error) {
	license, err := s.licenses.FindByRefID(ctx, strings.TrimSpace(refID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	license.RefreshValidity(s.now())
	return license.Public(), nil
}

func (s *LicenseService) ChangeStatus(ctx context.Context, actor policy.Role, id uuid.UUID, to licensing.LicenseStatus) (*models.License, error) {
	if !policy.Can(actor, policy.ActionLicenseChangeStatus) {
		return nil, ErrForbidden
	}

	license, err := s.GetLicense(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := licensing.Transition(license.Status, to); err != nil {
		return nil, err
	}

	if err := s.licenses.UpdateStatus(ctx, id, license.Status, to); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConcurrentChange
		}
		return nil, fmt.Errorf("failed to update license status: %w", err)
	}

	license.Status = to
	return license, nil
}

func (s *LicenseService) SetSignature(ctx context.Context, actor policy.Role, id uuid.UUID, signed bool) error {
	if !policy.Can(actor, policy.ActionLicenseSign) {
		return ErrForbidden
	}
	if err := s.licenses.UpdateSignature(ctx, id, signed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLicenseNotFound
		}
		return fmt.Errorf("failed to update license signature: %w", err)
	}
	return nil
}

func (s *LicenseService) DeleteLicense(ctx context.Context, actor policy.Role, id uuid.UUID) error {
	if !policy.Can(actor, policy.ActionLicenseDelete) {
		return ErrForbidden
	}
	if err := s.licenses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLicenseNotFound
		}
		return fmt.Errorf("failed to delete license: %w", err)
	}
	return nil
}

// ExpiringLicenses lists licenses that expire within the configured window
// or expired within the lookback, most urgent first.
func (s *LicenseService) ExpiringLicenses(ctx context.Context) ([]ExpiringLicense, error) {
	now := s.now()
	ahead := s.cfg.ExpiryWindowDays
	lookback := s.cfg.ExpiredLookbackDays

	licenses, err := s.licenses.ListExpiringBetween(ctx, now.AddDate(0, 0, -(lookback+1)), now.AddDate(0, 0, ahead))
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring licenses: %w", err)
	}

	out := make([]ExpiringLicense, 0, len(licenses))
	for _, l := range licenses {
		days := licensing.DaysLeft(l.ExpireDate, now)
		if !licensing.InNotificationWindow(days, lookback, ahead) {
			continue
		}
		entry := ExpiringLicense{
			ID:              l.ID,
			LicenseRefID:    l.LicenseRefID,
			CompanyName:     l.CompanyName,
			LicenseType:     l.LicenseType,
			LicenseCategory: l.LicenseCategory,
			Status:          l.Status,
			ExpireDate:      l.ExpireDate,
			DaysLeft:        days,
			Urgency:         licensing.UrgencyFor(days),
		}
		if l.Location != nil {
			entry.District = l.Location.Name
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysLeft < out[j].DaysLeft })
	return out, nil
}
