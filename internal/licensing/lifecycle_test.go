package licensing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransitions(t *testing.T) {
	tests := []struct {
		from, to LicenseStatus
		allowed  bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRevoked, true},
		{StatusApproved, StatusRevoked, true},
		{StatusApproved, StatusPending, false},
		{StatusRevoked, StatusPending, false},
		{StatusRevoked, StatusApproved, false},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusApproved, false},
		{StatusRevoked, StatusRevoked, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
			err := Transition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidTransition))
			}
		})
	}
}

func TestParseLicenseStatus(t *testing.T) {
	s, err := ParseLicenseStatus("APPROVED")
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, s)

	_, err = ParseLicenseStatus("approved")
	assert.Error(t, err)
}

func TestValidityIndependentOfStatus(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, ValidityActive, ValidityAt(now, now))
	assert.Equal(t, ValidityActive, ValidityAt(now.Add(time.Second), now))
	assert.Equal(t, ValidityExpired, ValidityAt(now.Add(-time.Second), now))

	// status is not an input: an approved license past its date is expired
	assert.Equal(t, ValidityExpired, ValidityAt(now.AddDate(0, -1, 0), now))
}

func TestDefaultExpiry(t *testing.T) {
	created := time.Date(2024, time.February, 29, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC), DefaultExpiry(created))
}

func TestDaysLeftAndUrgency(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		expire  time.Time
		days    int
		urgency Urgency
	}{
		{now.Add(2 * time.Hour), 1, UrgencyCritical},
		{now.Add(-2 * time.Hour), 0, UrgencyCritical},
		{now.AddDate(0, 0, -3), -3, UrgencyExpired},
		{now.AddDate(0, 0, 7), 7, UrgencyCritical},
		{now.AddDate(0, 0, 10), 10, UrgencyWarning},
		{now.AddDate(0, 0, 14), 14, UrgencyWarning},
		{now.AddDate(0, 0, 20), 20, UrgencyNotice},
	}

	for _, tt := range tests {
		days := DaysLeft(tt.expire, now)
		assert.Equal(t, tt.days, days)
		assert.Equal(t, tt.urgency, UrgencyFor(days))
	}
}

func TestInNotificationWindow(t *testing.T) {
	assert.True(t, InNotificationWindow(-7, 7, 30))
	assert.True(t, InNotificationWindow(30, 7, 30))
	assert.False(t, InNotificationWindow(-8, 7, 30))
	assert.False(t, InNotificationWindow(31, 7, 30))
}

func TestExpiryBucket(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, BucketExpired, ExpiryBucket(now.AddDate(0, 0, -2), now))
	assert.Equal(t, BucketNext30Days, ExpiryBucket(now.AddDate(0, 0, 30), now))
	assert.Equal(t, BucketNext90Days, ExpiryBucket(now.AddDate(0, 0, 31), now))
	assert.Equal(t, BucketNext6Months, ExpiryBucket(now.AddDate(0, 0, 180), now))
	assert.Equal(t, BucketBeyond6Months, ExpiryBucket(now.AddDate(0, 0, 181), now))
	assert.Len(t, ExpiryBuckets(), 5)
}
