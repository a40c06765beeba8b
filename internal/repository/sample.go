// internal/repository/sample.go
package repository

// go generate: mockery --name SampleRepository --output mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/utils"
)

// RefBuilder turns a reserved serial into the stored reference id.
type RefBuilder func(serial int64) string

type SampleRepository interface {
	// CreateWithSerial reserves the next serial for the year of now and
	// inserts the sample in the same transaction.
	CreateWithSerial(ctx context.Context, sample *models.SampleAnalysis, now time.Time, build RefBuilder) error
	// PeekNextSerial reports the serial the next insert would receive
	// without reserving it.
	PeekNextSerial(ctx context.Context, now time.Time) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.SampleAnalysis, error)
	FindByRefID(ctx context.Context, refID string) (*models.SampleAnalysis, error)
	List(ctx context.Context) ([]models.SampleAnalysis, error)
	ListPage(ctx context.Context, page utils.PageRequest) ([]models.SampleAnalysis, int64, error)
	Update(ctx context.Context, sample *models.SampleAnalysis) error
	UpdateSignature(ctx context.Context, id uuid.UUID, signed bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sampleRepository struct {
	db *gorm.DB
}

func NewSampleRepository(db *gorm.DB) SampleRepository {
	return &sampleRepository{db: db}
}

// The first reservation of a period seeds the counter from the rows that
// already exist, so ids stay continuous with data inserted before the
// counter table was introduced.
const reserveSerialSQL = `
INSERT INTO reference_counters (scope, period, value, updated_at)
SELECT ?, ?, COUNT(*) + 1, NOW() FROM sample_analysis WHERE created_at >= ? AND created_at < ?
ON CONFLICT (scope, period) DO UPDATE
SET value = reference_counters.value + 1, updated_at = NOW()
RETURNING value`

func (r *sampleRepository) CreateWithSerial(ctx context.Context, sample *models.SampleAnalysis, now time.Time, build RefBuilder) error {
	start, end := licensing.YearBounds(now)
	period := licensing.SamplePeriod(now)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var serial int64
		if err := tx.Raw(reserveSerialSQL, models.ReferenceScopeSample, period, start, end).Scan(&serial).Error; err != nil {
			return fmt.Errorf("failed to reserve sample serial: %w", err)
		}
		if serial <= 0 {
			return fmt.Errorf("failed to reserve sample serial: got %d", serial)
		}

		sample.RefID = build(serial)
		if sample.CreatedAt.IsZero() {
			sample.CreatedAt = now
		}
		return tx.Create(sample).Error
	})
}

func (r *sampleRepository) PeekNextSerial(ctx context.Context, now time.Time) (int64, error) {
	db := r.db.WithContext(ctx)

	var counter models.ReferenceCounter
	err := db.Where("scope = ? AND period = ?", models.ReferenceScopeSample, licensing.SamplePeriod(now)).
		First(&counter).Error
	if err == nil {
		return counter.Value + 1, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	start, end := licensing.YearBounds(now)
	var count int64
	if err := db.Model(&models.SampleAnalysis{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count + 1, nil
}

func (r *sampleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.SampleAnalysis, error) {
	var sample models.SampleAnalysis
	if err := r.db.WithContext(ctx).First(&sample, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sample, nil
}

func (r *sampleRepository) FindByRefID(ctx context.Context, refID string) (*models.SampleAnalysis, error) {
	var sample models.SampleAnalysis
	if err := r.db.WithContext(ctx).Where("ref_id = ?", refID).First(&sample).Error; err != nil {
		return nil, notFound(err)
	}
	return &sample, nil
}

func (r *sampleRepository) List(ctx context.Context) ([]models.SampleAnalysis, error) {
	var samples []models.SampleAnalysis
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&samples).Error
	return samples, err
}

var sampleSortColumns = map[string]string{
	"created_at":   "created_at",
	"ref_id":       "ref_id",
	"name":         "name",
	"kilo_gram":    "kilo_gram",
	"mineral_type": "mineral_type",
}

func (r *sampleRepository) ListPage(ctx context.Context, page utils.PageRequest) ([]models.SampleAnalysis, int64, error) {
	db := r.db.WithContext(ctx).Model(&models.SampleAnalysis{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var samples []models.SampleAnalysis
	if err := page.Apply(r.db.WithContext(ctx), sampleSortColumns).Find(&samples).Error; err != nil {
		return nil, 0, err
	}
	return samples, total, nil
}

func (r *sampleRepository) Update(ctx context.Context, sample *models.SampleAnalysis) error {
	sample.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Omit("CreatedAt", "RefID").Save(sample).Error
}

func (r *sampleRepository) UpdateSignature(ctx context.Context, id uuid.UUID, signed bool) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Model(&models.SampleAnalysis{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"signature": signed, "updated_at": time.Now()}))
}

func (r *sampleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Delete(&models.SampleAnalysis{}, "id = ?", id))
}
