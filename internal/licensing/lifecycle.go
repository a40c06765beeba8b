// internal/licensing/lifecycle.go
package licensing

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"time"
)

type LicenseStatus string

const (
	StatusPending  LicenseStatus = "PENDING"
	StatusApproved LicenseStatus = "APPROVED"
	StatusRevoked  LicenseStatus = "REVOKED"
)

var ErrInvalidTransition = errors.New("invalid license status transition")

var transitions = map[LicenseStatus][]LicenseStatus{
	StatusPending:  {StatusApproved, StatusRevoked},
	StatusApproved: {StatusRevoked},
	StatusRevoked:  nil,
}

func ParseLicenseStatus(s string) (LicenseStatus, error) {
	status := LicenseStatus(s)
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("unknown license status %q", s)
	}
	return status, nil
}

func (s LicenseStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s LicenseStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid license status %q", string(s))
	}
	return string(s), nil
}

func (s *LicenseStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = LicenseStatus(v)
	case []byte:
		*s = LicenseStatus(v)
	case nil:
		*s = ""
	default:
		return fmt.Errorf("cannot scan %T into LicenseStatus", value)
	}
	return nil
}

// CanTransition reports whether from -> to is a reachable edge.
// Staying in the same state is not a transition.
func CanTransition(from, to LicenseStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionError reports a rejected status change. It matches
// ErrInvalidTransition under errors.Is.
type TransitionError struct {
	From LicenseStatus
	To   LicenseStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func Transition(from, to LicenseStatus) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// Validity is derived from expire_date only and never stored.
type Validity string

const (
	ValidityActive  Validity = "active"
	ValidityExpired Validity = "expired"
)

func ValidityAt(expireDate, now time.Time) Validity {
	if !expireDate.Before(now) {
		return ValidityActive
	}
	return ValidityExpired
}

// DefaultExpiry is one calendar year after creation.
func DefaultExpiry(createdAt time.Time) time.Time {
	return createdAt.AddDate(1, 0, 0)
}

// DaysLeft rounds the remaining time up to whole days, so anything expiring
// later today counts as 1 and anything expired less than a day ago as 0.
func DaysLeft(expireDate, now time.Time) int {
	return int(math.Ceil(expireDate.Sub(now).Hours() / 24))
}

type Urgency string

const (
	UrgencyExpired  Urgency = "EXPIRED"
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyWarning  Urgency = "WARNING"
	UrgencyNotice   Urgency = "NOTICE"
)

func UrgencyFor(daysLeft int) Urgency {
	switch {
	case daysLeft < 0:
		return UrgencyExpired
	case daysLeft <= 7:
		return UrgencyCritical
	case daysLeft <= 14:
		return UrgencyWarning
	default:
		return UrgencyNotice
	}
}

// InNotificationWindow keeps licenses expiring within ahead days or expired
// at most lookback days ago.
func InNotificationWindow(daysLeft, lookback, ahead int) bool {
	return daysLeft >= -lookback && daysLeft <= ahead
}

const (
	BucketExpired       = "Expired"
	BucketNext30Days    = "Next 30 Days"
	BucketNext90Days    = "Next 90 Days"
	BucketNext6Months   = "Next 6 Months"
	BucketBeyond6Months = "Beyond 6 Months"
)

func ExpiryBuckets() []string {
	return []string{BucketExpired, BucketNext30Days, BucketNext90Days, BucketNext6Months, BucketBeyond6Months}
}

func ExpiryBucket(expireDate, now time.Time) string {
	days := DaysLeft(expireDate, now)
	switch {
	case days < 0:
		return BucketExpired
	case days <= 30:
		return BucketNext30Days
	case days <= 90:
		return BucketNext90Days
	case days <= 180:
		return BucketNext6Months
	default:
		return BucketBeyond6Months
	}
}
