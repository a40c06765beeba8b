// internal/database/seed.go
package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plmining/licensing-backend/internal/config"
	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/policy"
)

// RegionSeed is one region and its districts in display order.
type RegionSeed struct {
	Name      string
	Districts []string
}

var DefaultRegions = []RegionSeed{
	{Name: "Bari", Districts: []string{"Boosaaso", "Ufeyn", "Carmo", "Iskushuban", "Xaafuun", "Qandala", "Balidhidin"}},
	{Name: "Nugaal", Districts: []string{"Garoowe", "Burtinle", "Eyl", "Dangorayo", "Godobjiraan"}},
	{Name: "Raas Casayr", Districts: []string{"Caluula", "Baargaal", "Bareeda", "Murcanyo", "Gumbax", "Dhudhub", "Shaxda"}},
	{Name: "Karkaar", Districts: []string{"Qardho", "B/Bayla", "Waaciye", "Rako", "Xumbays"}},
	{Name: "Sanaag", Districts: []string{"Ceerigaabo", "Badhan", "Laasqorey", "Xingalool", "Fiqi-fuliye", "Yube"}},
	{Name: "Haylaan", Districts: []string{"Dhahar", "Buraan", "Ceelaayo"}},
	{Name: "Mudug", Districts: []string{"Gaalkacyo", "Galdogob", "Buursaalax", "Xarfo", "Towfiiq", "Jariiban", "Saaxo"}},
	{Name: "Sool", Districts: []string{"Laascaanood", "Taleex", "Boocame", "Xudun", "Kalabeyr", "Dharkeengeeyo"}},
	{Name: "Cayn", Districts: []string{"Buuhoodle", "Widhwidh", "Horufadhi", "Ceegaag"}},
}

// SeedInitialData inserts the region/district reference data and a super
// admin when no user exists yet. Running it twice is a no-op.
func SeedInitialData(db *gorm.DB, seed config.SeedConfig) error {
	logrus.Info("Seeding initial data...")

	err := WithTransaction(db, func(tx *gorm.DB) error {
		for _, rs := range DefaultRegions {
			region := models.Region{Name: rs.Name}
			if err := tx.Where(models.Region{Name: rs.Name}).FirstOrCreate(&region).Error; err != nil {
				return fmt.Errorf("failed to seed region %s: %w", rs.Name, err)
			}

			for _, name := range rs.Districts {
				district := models.District{Name: name, RegionID: region.ID}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&district).Error; err != nil {
					return fmt.Errorf("failed to seed district %s/%s: %w", rs.Name, name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if userCount == 0 {
		admin := &models.User{
			Name:  seed.AdminName,
			Email: seed.AdminEmail,
			Role:  policy.RoleSuperAdmin,
		}
		if err := admin.SetPassword(seed.AdminPassword); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}
		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		logrus.WithField("email", admin.Email).Info("Default super admin created")
	}

	logrus.Info("Initial data seeding completed")
	return nil
}
