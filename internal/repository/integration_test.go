//go:build integration

package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plmining/licensing-backend/internal/database"
	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/policy"
)

// setupTestDB starts PostgreSQL in a container and applies the embedded
// migrations. Run with TEST_INTEGRATION=1 go test -tags integration ./...
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION is not set")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		tcpostgres.WithDatabase("licensing_test"),
		tcpostgres.WithUsername("licensing"),
		tcpostgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to stop postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dsn))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newSample(name string) *models.SampleAnalysis {
	return &models.SampleAnalysis{
		Name:        name,
		Nationality: "Somali",
		PassportNo:  "P1234567",
		Amount:      250,
		Unit:        "gram",
		KiloGram:    0.25,
		MineralType: "Gold",
	}
}

func TestCreateWithSerialConcurrentInsertsGetDistinctRefs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSampleRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	build := func(serial int64) string { return licensing.FormatSampleRefID(int(serial), now) }

	next, err := repo.PeekNextSerial(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	samples := []*models.SampleAnalysis{newSample("Hodan"), newSample("Abdi")}
	errs := make([]error, len(samples))
	var wg sync.WaitGroup
	for i, sample := range samples {
		wg.Add(1)
		go func(i int, sample *models.SampleAnalysis) {
			defer wg.Done()
			errs[i] = repo.CreateWithSerial(ctx, sample, now, build)
		}(i, sample)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.NotEqual(t, samples[0].RefID, samples[1].RefID)
	assert.ElementsMatch(t, []string{"MOEMW/DG/01/25", "MOEMW/DG/02/25"}, []string{samples[0].RefID, samples[1].RefID})

	next, err = repo.PeekNextSerial(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), next)

	stored, err := repo.FindByRefID(ctx, samples[1].RefID)
	require.NoError(t, err)
	assert.Equal(t, samples[1].ID, stored.ID)
}

func TestPeekNextSerialSeedsFromExistingRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSampleRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	legacy := newSample("Legacy")
	legacy.RefID = "MOEMW/DG/01/26"
	legacy.CreatedAt = now.Add(-24 * time.Hour)
	require.NoError(t, db.Create(legacy).Error)

	next, err := repo.PeekNextSerial(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)

	sample := newSample("Fadumo")
	require.NoError(t, repo.CreateWithSerial(ctx, sample, now, func(serial int64) string {
		return licensing.FormatSampleRefID(int(serial), now)
	}))
	assert.Equal(t, "MOEMW/DG/02/26", sample.RefID)
}

func TestDeleteUnlessLastKeepsFinalUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	admin := &models.User{Name: "Admin", Email: "admin@mining.gov", Role: policy.RoleSuperAdmin}
	require.NoError(t, repo.Create(ctx, admin))

	assert.ErrorIs(t, repo.DeleteUnlessLast(ctx, admin.ID), ErrLastRecord)

	officer := &models.User{Name: "Officer", Email: "officer@mining.gov", Role: policy.RoleOfficer}
	require.NoError(t, repo.Create(ctx, officer))
	require.NoError(t, repo.DeleteUnlessLast(ctx, officer.ID))

	_, err := repo.FindByID(ctx, officer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteUnlessLast(ctx, admin.ID), ErrLastRecord)
}
