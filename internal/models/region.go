// internal/models/region.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plmining/licensing-backend/internal/licensing"
)

type Region struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string     `json:"name" gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time  `json:"created_at"`
	Districts []District `json:"districts,omitempty" gorm:"foreignKey:RegionID"`
}

func (r *Region) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type District struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	RegionID  uuid.UUID `json:"region_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at"`
	Region    *Region   `json:"region,omitempty" gorm:"foreignKey:RegionID"`
}

func (d *District) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (d District) Ref() licensing.District {
	return licensing.District{ID: d.ID, Name: d.Name, RegionID: d.RegionID}
}

// DistrictRow is the flattened region/district join served to selects.
type DistrictRow struct {
	RegionID     uuid.UUID `json:"regionId"`
	RegionName   string    `json:"regionName"`
	DistrictID   uuid.UUID `json:"districtId"`
	DistrictName string    `json:"districtName"`
}
