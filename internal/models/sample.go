// internal/models/sample.go
package models

import "time"

type SampleAnalysis struct {
	BaseModel
	RefID       string  `json:"ref_id" gorm:"column:ref_id;size:255;not null;index"`
	Name        string  `json:"name" gorm:"size:255;not null"`
	Nationality string  `json:"nationality" gorm:"size:255;not null"`
	PassportNo  string  `json:"passport_no" gorm:"size:255;not null"`
	Amount      float64 `json:"amount" gorm:"type:numeric(10,2);not null"`
	Unit        string  `json:"unit" gorm:"size:50;not null"`
	KiloGram    float64 `json:"kilo_gram" gorm:"type:numeric(10,2);not null"`
	MineralType string  `json:"mineral_type" gorm:"size:255;not null"`
	Signature   bool    `json:"signature" gorm:"default:false"`
}

func (SampleAnalysis) TableName() string {
	return "sample_analysis"
}

// ReferenceCounter holds the last serial handed out per scope and period.
type ReferenceCounter struct {
	Scope     string    `gorm:"primaryKey;size:50"`
	Period    string    `gorm:"primaryKey;size:10"`
	Value     int64     `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

const ReferenceScopeSample = "sample"
