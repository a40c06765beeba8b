// internal/licensing/fee.go
package licensing

import (
	"github.com/shopspring/decimal"
)

const (
	LicenseTypeNew     = "New License"
	LicenseTypeRenewal = "Renewal"
)

const (
	CategoryLargeScale      = "Large Scale Mining"
	CategorySmallScale      = "Small Scale Mining"
	CategoryArtisanalGold   = "Artisanal Gold Mining"
	CategoryEquipmentRental = "Mining Equipment Rental"
	CategoryStoneCrusher    = "Stone Crusher"
)

var feeTable = map[string]map[string]string{
	LicenseTypeNew: {
		CategoryLargeScale:      "5000",
		CategorySmallScale:      "2000",
		CategoryArtisanalGold:   "2500",
		CategoryEquipmentRental: "1500",
		CategoryStoneCrusher:    "700",
	},
	LicenseTypeRenewal: {
		CategoryLargeScale:      "2000",
		CategorySmallScale:      "500",
		CategoryArtisanalGold:   "1000",
		CategoryEquipmentRental: "500",
		CategoryStoneCrusher:    "400",
	},
}

var categoryOrder = []string{
	CategoryLargeScale,
	CategorySmallScale,
	CategoryArtisanalGold,
	CategoryEquipmentRental,
	CategoryStoneCrusher,
}

// Fee looks up the fixed fee for a type/category pair. The boolean is false
// when the pair is not in the table, which callers treat as "not yet
// computable" rather than an error.
func Fee(licenseType, category string) (string, bool) {
	categories, ok := feeTable[licenseType]
	if !ok {
		return "", false
	}
	fee, ok := categories[category]
	return fee, ok
}

// FeeAmount is Fee parsed for storage in a numeric column.
func FeeAmount(licenseType, category string) (decimal.Decimal, bool) {
	fee, ok := Fee(licenseType, category)
	if !ok {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(fee)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

func LicenseTypes() []string {
	return []string{LicenseTypeNew, LicenseTypeRenewal}
}

func IsLicenseType(licenseType string) bool {
	_, ok := feeTable[licenseType]
	return ok
}

// Categories returns the categories valid for licenseType in display order.
func Categories(licenseType string) []string {
	categories, ok := feeTable[licenseType]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(categories))
	for _, c := range categoryOrder {
		if _, ok := categories[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// FeeSelection is the wizard state for the fee step.
type FeeSelection struct {
	LicenseType string `json:"license_type"`
	Category    string `json:"license_category"`
	Fee         string `json:"calculated_fee"`
}

// Reconcile applies the recalculation rule after the type or category
// changes: an invalid category is cleared together with the fee, a known
// pair overwrites the fee, anything else leaves the fee empty.
func Reconcile(sel FeeSelection) FeeSelection {
	if sel.Category != "" && !contains(Categories(sel.LicenseType), sel.Category) {
		sel.Category = ""
	}
	fee, ok := Fee(sel.LicenseType, sel.Category)
	if !ok {
		sel.Fee = ""
		return sel
	}
	sel.Fee = fee
	return sel
}

// CatalogEntry describes one license type with its categories and fees.
type CatalogEntry struct {
	LicenseType string            `json:"license_type"`
	Categories  []CatalogCategory `json:"categories"`
}

type CatalogCategory struct {
	Name string `json:"name"`
	Fee  string `json:"fee"`
}

func Catalog() []CatalogEntry {
	var out []CatalogEntry
	for _, t := range LicenseTypes() {
		entry := CatalogEntry{LicenseType: t}
		for _, c := range Categories(t) {
			fee, _ := Fee(t, c)
			entry.Categories = append(entry.Categories, CatalogCategory{Name: c, Fee: fee})
		}
		out = append(out, entry)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
