// internal/licensing/area.go
package licensing

import "fmt"

// AllAreas is the catch-all license area; it cannot be combined with others.
const AllAreas = "All Puntland Areas"

var licenseAreas = []string{
	"Bari",
	"Nugaal",
	"Raas Casayr",
	"Karkaar",
	"Sanaag",
	"Haylaan",
	"Mudug",
	"Sool",
	"Cayn",
	AllAreas,
}

func LicenseAreas() []string {
	out := make([]string, len(licenseAreas))
	copy(out, licenseAreas)
	return out
}

// NormalizeAreas drops duplicates, rejects unknown values and collapses any
// selection containing AllAreas to just AllAreas.
func NormalizeAreas(areas []string) ([]string, error) {
	if len(areas) == 0 {
		return nil, &FieldError{Field: "license_area", Message: "at least one license area is required"}
	}

	seen := make(map[string]bool, len(areas))
	out := make([]string, 0, len(areas))
	for _, a := range areas {
		if !contains(licenseAreas, a) {
			return nil, &FieldError{Field: "license_area", Message: fmt.Sprintf("unknown license area %q", a)}
		}
		if a == AllAreas {
			return []string{AllAreas}, nil
		}
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out, nil
}
