package licensing

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	licenseRefPattern = regexp.MustCompile(`^WTMB-\d{4}-\d{10}$`)
	sampleRefPattern  = regexp.MustCompile(`^MOEMW/DG/\d{2}/\d{2}$`)
)

func TestNewLicenseRefIDFormat(t *testing.T) {
	now := time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		ref, err := NewLicenseRefID(now)
		require.NoError(t, err)
		assert.Regexp(t, licenseRefPattern, ref)
		assert.Equal(t, "WTMB-2503-", ref[:10])
	}
}

func TestNewLicenseRefIDSuffixBounds(t *testing.T) {
	now := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	orig := RandReader
	t.Cleanup(func() { RandReader = orig })

	RandReader = bytes.NewReader(make([]byte, 64))
	ref, err := NewLicenseRefID(now)
	require.NoError(t, err)
	assert.Equal(t, "WTMB-2412-1000000000", ref)
}

func TestNewLicenseRefIDPropagatesEntropyFailure(t *testing.T) {
	orig := RandReader
	t.Cleanup(func() { RandReader = orig })

	RandReader = bytes.NewReader(nil)
	_, err := NewLicenseRefID(time.Now())
	assert.Error(t, err)
}

func TestFormatSampleRefID(t *testing.T) {
	now := time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "MOEMW/DG/01/25", FormatSampleRefID(1, now))
	assert.Equal(t, "MOEMW/DG/42/25", FormatSampleRefID(42, now))
	assert.Regexp(t, sampleRefPattern, FormatSampleRefID(7, now))
	assert.Equal(t, "MOEMW/DG/123/25", FormatSampleRefID(123, now))
}

func TestYearBounds(t *testing.T) {
	start, end := YearBounds(time.Date(2025, time.July, 4, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, "2025", SamplePeriod(start))
}
