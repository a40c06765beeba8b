// internal/licensing/cascade.go
package licensing

import (
	"github.com/google/uuid"
)

// District is the slice of a district record the cascade needs.
type District struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	RegionID uuid.UUID `json:"region_id"`
}

// FieldError is a validation failure attached to a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

const msgDistrictNotInRegion = "district does not belong to the selected region"

// FilterDistricts returns the districts of regionID, keeping input order.
func FilterDistricts(districts []District, regionID uuid.UUID) []District {
	out := make([]District, 0)
	for _, d := range districts {
		if d.RegionID == regionID {
			out = append(out, d)
		}
	}
	return out
}

// ValidateSelection is the submit-time check: when both ids are set the
// district must be one of the region's districts.
func ValidateSelection(districts []District, regionID, districtID uuid.UUID) *FieldError {
	if regionID == uuid.Nil || districtID == uuid.Nil {
		return nil
	}
	if !containsDistrict(FilterDistricts(districts, regionID), districtID) {
		return &FieldError{Field: "district", Message: msgDistrictNotInRegion}
	}
	return nil
}

// Cascade tracks a region/district pair across the edits of one form
// session. The initial region is remembered so a persisted pair loaded into
// an edit form is never wiped before the user touches it.
type Cascade struct {
	districts     []District
	initialRegion uuid.UUID
	region        uuid.UUID
	district      uuid.UUID
	filtered      []District
	districtErr   *FieldError
}

func NewCascade(districts []District, initialRegion, initialDistrict uuid.UUID) *Cascade {
	return &Cascade{
		districts:     districts,
		initialRegion: initialRegion,
		region:        initialRegion,
		district:      initialDistrict,
		filtered:      FilterDistricts(districts, initialRegion),
	}
}

func (c *Cascade) Region() uuid.UUID { return c.region }
func (c *Cascade) District() uuid.UUID { return c.district }
func (c *Cascade) Options() []District { return c.filtered }
func (c *Cascade) DistrictError() *FieldError { return c.districtErr }

// SelectRegion recomputes the district options. The district is cleared,
// along with its error, only when it no longer fits and the region differs
// from the one the session started with.
func (c *Cascade) SelectRegion(regionID uuid.UUID) {
	c.region = regionID
	c.filtered = FilterDistricts(c.districts, regionID)

	if c.district != uuid.Nil && !containsDistrict(c.filtered, c.district) && regionID != c.initialRegion {
		c.district = uuid.Nil
		c.districtErr = nil
	}
}

func (c *Cascade) SelectDistrict(districtID uuid.UUID) {
	c.district = districtID
	c.districtErr = nil
}

// Validate runs the submit check and records the error on the district field.
func (c *Cascade) Validate() *FieldError {
	c.districtErr = ValidateSelection(c.districts, c.region, c.district)
	return c.districtErr
}

func containsDistrict(districts []District, id uuid.UUID) bool {
	for _, d := range districts {
		if d.ID == id {
			return true
		}
	}
	return false
}
