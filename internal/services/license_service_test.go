package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/plmining/licensing-backend/internal/config"
	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/policy"
	"github.com/plmining/licensing-backend/internal/repository"
	"github.com/plmining/licensing-backend/internal/repository/mocks"
)

var (
	bariRegion   = uuid.MustParse("0b6c6f4e-1f7a-4a59-9a38-3c1f4b6a0001")
	nugaalRegion = uuid.MustParse("0b6c6f4e-1f7a-4a59-9a38-3c1f4b6a0002")
	bosasoDist   = uuid.MustParse("7d1e2f3a-5b6c-4d7e-8f90-a1b2c3d40001")
	garoweDist   = uuid.MustParse("7d1e2f3a-5b6c-4d7e-8f90-a1b2c3d40002")
)

func regionFixture() *mocks.RegionRepository {
	regions := &mocks.RegionRepository{}
	regions.On("ListDistricts", mock.Anything).Return([]models.District{
		{ID: bosasoDist, Name: "Bosaso", RegionID: bariRegion},
		{ID: garoweDist, Name: "Garowe", RegionID: nugaalRegion},
	}, nil)
	return regions
}

func newTestLicenseService(now time.Time) (*LicenseService, *mocks.LicenseRepository) {
	licenses := &mocks.LicenseRepository{}
	regions := NewRegionService(regionFixture(), 8, time.Minute)
	svc := NewLicenseService(licenses, regions, config.SchedulerConfig{ExpiryWindowDays: 30, ExpiredLookbackDays: 7})
	svc.now = func() time.Time { return now }
	return svc, licenses
}

func validLicenseRequest() *LicenseRequest {
	return &LicenseRequest{
		CompanyName:     "Puntland Gold Co",
		BusinessType:    "Mining",
		CompanyAddress:  "Bosaso Port Road",
		Region:          bariRegion,
		District:        bosasoDist,
		CountryOfOrigin: "Somalia",
		FullName:        "Abdi Ali",
		MobileNumber:    "+252 90 1234567",
		EmailAddress:    "abdi@pgc.so",
		IDCardNumber:    "PL-0099",
		LicenseType:     licensing.LicenseTypeNew,
		LicenseCategory: licensing.CategoryArtisanalGold,
		LicenseFee:      "9999",
		LicenseArea:     []string{"Bari", "Bari"},
	}
}

func TestCreateLicenseUsesFeeTable(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	svc, licenses := newTestLicenseService(now)
	licenses.On("Create", mock.Anything, mock.AnythingOfType("*models.License")).Return(nil).Once()

	license, err := svc.CreateLicense(context.Background(), validLicenseRequest())
	require.NoError(t, err)

	assert.Equal(t, "2500", license.CalculatedFee.String())
	assert.Equal(t, licensing.StatusPending, license.Status)
	assert.Equal(t, now.AddDate(1, 0, 0), license.ExpireDate)
	assert.Equal(t, []string{"Bari"}, []string(license.LicenseArea))
	assert.Equal(t, licensing.ValidityActive, license.Validity)
	assert.Regexp(t, `^WTMB-\d{4}-\d{10}$`, license.LicenseRefID)
	licenses.AssertExpectations(t)

	raw, err := json.Marshal(license)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"calculated_fee":"2500"`)
}

func TestCreateLicenseRetriesRefCollision(t *testing.T) {
	svc, licenses := newTestLicenseService(time.Now())
	collision := &pgconn.PgError{Code: "23505"}

	var refs []string
	licenses.On("Create", mock.Anything, mock.AnythingOfType("*models.License")).
		Run(func(args mock.Arguments) { refs = append(refs, args.Get(1).(*models.License).LicenseRefID) }).
		Return(collision).Once()
	licenses.On("Create", mock.Anything, mock.AnythingOfType("*models.License")).
		Run(func(args mock.Arguments) { refs = append(refs, args.Get(1).(*models.License).LicenseRefID) }).
		Return(nil).Once()

	license, err := svc.CreateLicense(context.Background(), validLicenseRequest())
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, refs[1], license.LicenseRefID)
}

func TestCreateLicenseGivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, licenses := newTestLicenseService(time.Now())
	licenses.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	_, err := svc.CreateLicense(context.Background(), validLicenseRequest())
	require.Error(t, err)
	licenses.AssertNumberOfCalls(t, "Create", refIDAttempts)
}

func TestCreateLicenseValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LicenseRequest)
		field  string
	}{
		{"category not offered", func(r *LicenseRequest) { r.LicenseCategory = "Oil Drilling" }, "license_category"},
		{"unknown area", func(r *LicenseRequest) { r.LicenseArea = []string{"Atlantis"} }, "license_area"},
		{"district outside region", func(r *LicenseRequest) { r.District = garoweDist }, "district"},
		{"unknown district", func(r *LicenseRequest) { r.District = uuid.New() }, "district"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, licenses := newTestLicenseService(time.Now())
			req := validLicenseRequest()
			tt.mutate(req)

			_, err := svc.CreateLicense(context.Background(), req)
			var fe *licensing.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			licenses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateLicenseKeepsLifecycleFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, licenses := newTestLicenseService(now)

	id := uuid.New()
	expired := now.AddDate(0, -3, 0)
	stored := &models.License{
		LicenseRefID: "WTMB-2403-0000000001",
		Status:       licensing.StatusRevoked,
		ExpireDate:   expired,
	}
	stored.ID = id
	licenses.On("FindByID", mock.Anything, id).Return(stored, nil).Once()
	licenses.On("Update", mock.Anything, mock.AnythingOfType("*models.License")).Return(nil).Once()

	// A client-supplied expiry is not part of the update payload.
	var req LicenseRequest
	body := validLicenseRequestJSON(t, map[string]interface{}{"expire_date": now.AddDate(10, 0, 0)})
	require.NoError(t, json.Unmarshal(body, &req))

	license, err := svc.UpdateLicense(context.Background(), id, &req)
	require.NoError(t, err)
	assert.Equal(t, expired, license.ExpireDate)
	assert.Equal(t, licensing.StatusRevoked, license.Status)
	assert.Equal(t, "WTMB-2403-0000000001", license.LicenseRefID)
	assert.Equal(t, licensing.ValidityExpired, license.Validity)
	licenses.AssertExpectations(t)
}

func validLicenseRequestJSON(t *testing.T, extra map[string]interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(validLicenseRequest())
	require.NoError(t, err)
	fields := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	for k, v := range extra {
		fields[k] = v
	}
	out, err := json.Marshal(fields)
	require.NoError(t, err)
	return out
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("officer is forbidden", func(t *testing.T) {
		svc, licenses := newTestLicenseService(time.Now())
		_, err := svc.ChangeStatus(ctx, policy.RoleOfficer, id, licensing.StatusApproved)
		assert.ErrorIs(t, err, ErrForbidden)
		licenses.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("pending to approved", func(t *testing.T) {
		svc, licenses := newTestLicenseService(time.Now())
		licenses.On("FindByID", ctx, id).Return(&models.License{Status: licensing.StatusPending}, nil)
		licenses.On("UpdateStatus", ctx, id, licensing.StatusPending, licensing.StatusApproved).Return(nil)

		license, err := svc.ChangeStatus(ctx, policy.RoleDirector, id, licensing.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, licensing.StatusApproved, license.Status)
	})

	t.Run("revoked is terminal", func(t *testing.T) {
		svc, licenses := newTestLicenseService(time.Now())
		licenses.On("FindByID", ctx, id).Return(&models.License{Status: licensing.StatusRevoked}, nil)

		_, err := svc.ChangeStatus(ctx, policy.RoleMinister, id, licensing.StatusApproved)
		assert.ErrorIs(t, err, licensing.ErrInvalidTransition)
		var te *licensing.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, licensing.StatusRevoked, te.From)
		licenses.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent change", func(t *testing.T) {
		svc, licenses := newTestLicenseService(time.Now())
		licenses.On("FindByID", ctx, id).Return(&models.License{Status: licensing.StatusPending}, nil)
		licenses.On("UpdateStatus", ctx, id, licensing.StatusPending, licensing.StatusRevoked).Return(repository.ErrConflict)

		_, err := svc.ChangeStatus(ctx, policy.RoleGeneralDirector, id, licensing.StatusRevoked)
		assert.ErrorIs(t, err, ErrConcurrentChange)
	})

	t.Run("missing license", func(t *testing.T) {
		svc, licenses := newTestLicenseService(time.Now())
		licenses.On("FindByID", ctx, id).Return(nil, repository.ErrNotFound)

		_, err := svc.ChangeStatus(ctx, policy.RoleDirector, id, licensing.StatusApproved)
		assert.ErrorIs(t, err, ErrLicenseNotFound)
	})
}

func TestSetSignatureOnlyMinister(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	svc, licenses := newTestLicenseService(time.Now())
	licenses.On("UpdateSignature", ctx, id, true).Return(nil)

	assert.ErrorIs(t, svc.SetSignature(ctx, policy.RoleDirector, id, true), ErrForbidden)
	assert.NoError(t, svc.SetSignature(ctx, policy.RoleMinister, id, true))
	licenses.AssertNumberOfCalls(t, "UpdateSignature", 1)
}

func TestDeleteLicense(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	svc, licenses := newTestLicenseService(time.Now())
	licenses.On("Delete", ctx, id).Return(repository.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteLicense(ctx, policy.RoleOfficer, id), ErrForbidden)
	assert.ErrorIs(t, svc.DeleteLicense(ctx, policy.RoleMinister, id), ErrLicenseNotFound)
}

func TestVerifyLicenseReturnsPublicProjection(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc, licenses := newTestLicenseService(now)
	stored := &models.License{
		LicenseRefID: "WTMB-2401-0000000001",
		CompanyName:  "Old Co",
		EmailAddress: "private@old.so",
		Status:       licensing.StatusApproved,
		ExpireDate:   now.AddDate(0, 0, -1),
		Location:     &models.District{ID: bosasoDist, Name: "Bosaso"},
	}
	licenses.On("FindByRefID", mock.Anything, "WTMB-2401-0000000001").Return(stored, nil)
	licenses.On("FindByRefID", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

	public, err := svc.VerifyLicense(context.Background(), "  WTMB-2401-0000000001 ")
	require.NoError(t, err)
	assert.Equal(t, licensing.ValidityExpired, public.Validity)
	assert.Equal(t, "Bosaso", public.Location.Name)

	_, err = svc.VerifyLicense(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrLicenseNotFound)
}

func TestExpiringLicenses(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, licenses := newTestLicenseService(now)

	stored := []models.License{
		{LicenseRefID: "far", ExpireDate: now.AddDate(0, 0, 25)},
		{LicenseRefID: "soon", ExpireDate: now.AddDate(0, 0, 3), Location: &models.District{Name: "Bosaso"}},
		{LicenseRefID: "lapsed", ExpireDate: now.AddDate(0, 0, -5)},
		{LicenseRefID: "too-old", ExpireDate: now.AddDate(0, 0, -8)},
	}
	licenses.On("ListExpiringBetween", mock.Anything, now.AddDate(0, 0, -8), now.AddDate(0, 0, 30)).Return(stored, nil)

	out, err := svc.ExpiringLicenses(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "lapsed", out[0].LicenseRefID)
	assert.Equal(t, licensing.UrgencyExpired, out[0].Urgency)
	assert.Equal(t, "soon", out[1].LicenseRefID)
	assert.Equal(t, licensing.UrgencyCritical, out[1].Urgency)
	assert.Equal(t, "Bosaso", out[1].District)
	assert.Equal(t, "far", out[2].LicenseRefID)
	assert.Equal(t, licensing.UrgencyNotice, out[2].Urgency)
}

func TestListLicensesWrapsErrors(t *testing.T) {
	svc, licenses := newTestLicenseService(time.Now())
	licenses.On("List", mock.Anything, repository.LicenseFilter{}).Return(nil, errors.New("boom"))

	_, err := svc.ListLicenses(context.Background(), repository.LicenseFilter{})
	assert.ErrorContains(t, err, "boom")
}
