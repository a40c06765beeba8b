// internal/models/license.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plmining/licensing-backend/internal/licensing"
)

type License struct {
	BaseModel
	LicenseRefID string `json:"license_ref_id" gorm:"column:license_ref_id;uniqueIndex;size:255;not null"`

	// Company
	CompanyName     string    `json:"company_name" gorm:"size:255;not null"`
	BusinessType    string    `json:"business_type" gorm:"size:255;not null"`
	CompanyAddress  string    `json:"company_address"`
	RegionID        uuid.UUID `json:"region_id" gorm:"type:uuid;not null;index"`
	DistrictID      uuid.UUID `json:"district_id" gorm:"type:uuid;not null;index"`
	CountryOfOrigin string    `json:"country_of_origin" gorm:"size:255"`

	Status licensing.LicenseStatus `json:"status" gorm:"type:license_status;not null;default:'PENDING'"`

	// Applicant
	FullName     string `json:"full_name" gorm:"size:255"`
	MobileNumber string `json:"mobile_number" gorm:"size:255"`
	EmailAddress string `json:"email_address"`
	IDCardNumber string `json:"id_card_number" gorm:"column:id_card_number;size:255"`

	// Documents (hosted URLs)
	PassportPhotos              string `json:"passport_photos"`
	CompanyProfile              string `json:"company_profile"`
	ReceiptOfPayment            string `json:"receipt_of_payment"`
	EnvironmentalAssessmentPlan string `json:"environmental_assessment_plan"`
	ExperienceProfile           string `json:"experience_profile"`
	RiskManagementPlan          string `json:"risk_management_plan"`
	BankStatement               string `json:"bank_statement"`

	// License
	LicenseType     string         `json:"license_type" gorm:"size:255"`
	LicenseCategory string         `json:"license_category" gorm:"size:255"`
	CalculatedFee   decimal.Decimal `json:"calculated_fee" gorm:"type:numeric(10,2)"`
	LicenseArea     pq.StringArray `json:"license_area" gorm:"type:text[]"`

	Signature  bool      `json:"signature" gorm:"default:false"`
	ExpireDate time.Time `json:"expire_date" gorm:"not null"`

	Validity licensing.Validity `json:"validity" gorm:"-"`

	// Relationships
	Location *District `json:"location,omitempty" gorm:"foreignKey:DistrictID"`
	Region   *Region   `json:"region,omitempty" gorm:"foreignKey:RegionID"`
}

func (l *License) BeforeCreate(tx *gorm.DB) error {
	if err := l.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if l.Status == "" {
		l.Status = licensing.StatusPending
	}
	if l.ExpireDate.IsZero() {
		created := l.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		l.ExpireDate = licensing.DefaultExpiry(created)
	}
	return nil
}

func (l *License) AfterFind(tx *gorm.DB) error {
	l.RefreshValidity(time.Now())
	return nil
}

func (l *License) RefreshValidity(now time.Time) {
	l.Validity = licensing.ValidityAt(l.ExpireDate, now)
}

// PublicLicense is what the unauthenticated verification endpoint returns:
// no document URLs and no applicant contact data.
type PublicLicense struct {
	ID              uuid.UUID               `json:"id"`
	LicenseRefID    string                  `json:"license_ref_id"`
	CompanyName     string                  `json:"company_name"`
	BusinessType    string                  `json:"business_type"`
	LicenseType     string                  `json:"license_type"`
	LicenseCategory string                  `json:"license_category"`
	LicenseArea     []string                `json:"license_area"`
	Status          licensing.LicenseStatus `json:"status"`
	Validity        licensing.Validity      `json:"validity"`
	CreatedAt       time.Time               `json:"created_at"`
	ExpireDate      time.Time               `json:"expire_date"`
	Location        *PublicLocation         `json:"location,omitempty"`
}

type PublicLocation struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (l *License) Public() *PublicLicense {
	p := &PublicLicense{
		ID:              l.ID,
		LicenseRefID:    l.LicenseRefID,
		CompanyName:     l.CompanyName,
		BusinessType:    l.BusinessType,
		LicenseType:     l.LicenseType,
		LicenseCategory: l.LicenseCategory,
		LicenseArea:     []string(l.LicenseArea),
		Status:          l.Status,
		Validity:        l.Validity,
		CreatedAt:       l.CreatedAt,
		ExpireDate:      l.ExpireDate,
	}
	if l.Location != nil {
		p.Location = &PublicLocation{ID: l.Location.ID, Name: l.Location.Name}
	}
	return p
}
