package licensing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cascadeFixture struct {
	bari, nugaal      uuid.UUID
	boosaaso, qandala District
	garoowe           District
	all               []District
}

func newCascadeFixture() cascadeFixture {
	f := cascadeFixture{bari: uuid.New(), nugaal: uuid.New()}
	f.boosaaso = District{ID: uuid.New(), Name: "Boosaaso", RegionID: f.bari}
	f.qandala = District{ID: uuid.New(), Name: "Qandala", RegionID: f.bari}
	f.garoowe = District{ID: uuid.New(), Name: "Garoowe", RegionID: f.nugaal}
	f.all = []District{f.boosaaso, f.garoowe, f.qandala}
	return f
}

func TestFilterDistrictsOnlyReturnsRegion(t *testing.T) {
	f := newCascadeFixture()

	got := FilterDistricts(f.all, f.bari)
	assert.Equal(t, []District{f.boosaaso, f.qandala}, got)
	for _, d := range got {
		assert.Equal(t, f.bari, d.RegionID)
	}

	assert.Empty(t, FilterDistricts(f.all, uuid.New()))
	assert.Len(t, f.all, 3, "input must not be modified")
}

func TestCascadeInitialLoadKeepsDistrict(t *testing.T) {
	f := newCascadeFixture()

	c := NewCascade(f.all, f.bari, f.boosaaso.ID)
	assert.Equal(t, f.boosaaso.ID, c.District())
	assert.Equal(t, []District{f.boosaaso, f.qandala}, c.Options())
	assert.Nil(t, c.Validate())

	// re-selecting the initial region during first render is a no-op
	c.SelectRegion(f.bari)
	assert.Equal(t, f.boosaaso.ID, c.District())
}

func TestCascadeRegionChangeClearsDistrict(t *testing.T) {
	f := newCascadeFixture()

	c := NewCascade(f.all, f.bari, f.boosaaso.ID)
	c.SelectRegion(f.nugaal)

	assert.Equal(t, uuid.Nil, c.District())
	assert.Nil(t, c.DistrictError())
	assert.Equal(t, []District{f.garoowe}, c.Options())
}

func TestCascadeRegionChangeClearsDistrictError(t *testing.T) {
	f := newCascadeFixture()

	c := NewCascade(f.all, f.bari, f.garoowe.ID)
	require.NotNil(t, c.Validate())

	c.SelectRegion(f.nugaal)
	// garoowe belongs to nugaal so it is kept
	assert.Equal(t, f.garoowe.ID, c.District())

	c.SelectRegion(f.bari)
	// back on the initial region: nothing is cleared
	assert.Equal(t, f.garoowe.ID, c.District())
	require.NotNil(t, c.Validate())

	other := uuid.New()
	c.SelectRegion(other)
	assert.Equal(t, uuid.Nil, c.District())
	assert.Nil(t, c.DistrictError())
}

func TestCascadeSubmitRejectsForeignDistrict(t *testing.T) {
	f := newCascadeFixture()

	c := NewCascade(f.all, uuid.Nil, uuid.Nil)
	c.SelectRegion(f.bari)
	c.SelectDistrict(f.garoowe.ID)

	err := c.Validate()
	require.NotNil(t, err)
	assert.Equal(t, "district", err.Field)
	assert.Equal(t, err, c.DistrictError())

	c.SelectDistrict(f.qandala.ID)
	assert.Nil(t, c.DistrictError())
	assert.Nil(t, c.Validate())
}

func TestValidateSelectionIgnoresIncompletePairs(t *testing.T) {
	f := newCascadeFixture()

	assert.Nil(t, ValidateSelection(f.all, uuid.Nil, f.garoowe.ID))
	assert.Nil(t, ValidateSelection(f.all, f.bari, uuid.Nil))
	assert.NotNil(t, ValidateSelection(f.all, f.bari, f.garoowe.ID))
}
