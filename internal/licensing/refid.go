// internal/licensing/refid.go
package licensing

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"
)

const (
	licenseRefPrefix = "WTMB"
	sampleRefPrefix  = "MOEMW/DG"

	licenseSuffixMin = 1_000_000_000
	licenseSuffixMax = 9_999_999_999
)

// RandReader is the entropy source for license suffixes; tests swap it.
var RandReader io.Reader = rand.Reader

// NewLicenseRefID builds WTMB-{YY}{MM}-{n} with n uniform over ten-digit numbers.
func NewLicenseRefID(now time.Time) (string, error) {
	span := big.NewInt(licenseSuffixMax - licenseSuffixMin + 1)
	n, err := rand.Int(RandReader, span)
	if err != nil {
		return "", fmt.Errorf("failed to draw license suffix: %w", err)
	}
	suffix := n.Int64() + licenseSuffixMin
	return fmt.Sprintf("%s-%s-%d", licenseRefPrefix, now.Format("0601"), suffix), nil
}

// FormatSampleRefID builds MOEMW/DG/{serial}/{YY}. Serials below 10 are
// zero-padded; larger serials keep all their digits.
func FormatSampleRefID(serial int, now time.Time) string {
	return fmt.Sprintf("%s/%02d/%s", sampleRefPrefix, serial, now.Format("06"))
}

// SamplePeriod is the counter period a sample created at now belongs to.
func SamplePeriod(now time.Time) string {
	return now.Format("2006")
}

// YearBounds returns [start of year, start of next year) in now's location.
func YearBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(1, 0, 0)
}
