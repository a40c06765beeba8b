// internal/licensing/units.go
package licensing

import "fmt"

const (
	UnitMilligram = "milligram"
	UnitGram      = "gram"
	UnitKilogram  = "kilogram"
	UnitTon       = "ton"
)

var kilogramsPerUnit = map[string]float64{
	UnitMilligram: 1e-6,
	UnitGram:      1e-3,
	UnitKilogram:  1,
	UnitTon:       1000,
}

func Units() []string {
	return []string{UnitMilligram, UnitGram, UnitKilogram, UnitTon}
}

// ToKilograms normalizes a sample weight so reports compare like with like.
func ToKilograms(amount float64, unit string) (float64, error) {
	factor, ok := kilogramsPerUnit[unit]
	if !ok {
		return 0, &FieldError{Field: "unit", Message: fmt.Sprintf("unknown unit %q", unit)}
	}
	return amount * factor, nil
}
