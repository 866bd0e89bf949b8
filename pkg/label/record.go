package label

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Record is one sellable item: a flat map of field name to raw value.
// Records are read-only input; the engine never mutates them.
type Record map[string]string

// Canonical record field names supplied by the ingestion collaborator.
const (
	KeyProductName  = "ProductName"
	KeyDescription  = "Description"
	KeyProductBrand = "ProductBrand"
	KeyVendor       = "Vendor"
	KeyProductType  = "ProductType"
	KeyStrain       = "ProductStrain"
	KeyLineage      = "Lineage"
	KeyRatio        = "Ratio"
	KeyJointRatio   = "JointRatio"
	KeyPrice        = "Price"
	KeyBarcode      = "Barcode"
	KeyDOHCompliant = "DOHCompliant"
)

// weightCandidates is the ordered list of fields tried when resolving
// a record's weight/unit string. The first non-empty candidate wins.
var weightCandidates = []string{
	"DescAndWeight",
	"WeightWithUnits",
	"Weight",
	"NetWeight",
}

// Get returns the trimmed value of a field, or "" when absent.
func (r Record) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// First returns the first non-empty value among the given fields.
func (r Record) First(keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v != "" {
			return v
		}
	}
	return ""
}

// DisplayName returns the name used for payload-code generation and
// logging.
func (r Record) DisplayName() string {
	return r.First(KeyProductName, KeyDescription)
}

// IdentityKey returns the stable identity used for de-duplication:
// the barcode when present, otherwise product name plus vendor. A
// record with no identity signal at all returns "" so callers never
// collapse distinct anonymous records onto a shared key.
func (r Record) IdentityKey() string {
	if bc := r.Get(KeyBarcode); bc != "" {
		return bc
	}
	name, vendor := r.DisplayName(), r.Get(KeyVendor)
	if name == "" && vendor == "" {
		return ""
	}
	return name + "|" + vendor
}

// Weight resolves the record's weight string from the ordered
// candidate fields. Malformed values are substituted with "".
func (r Record) Weight() string {
	w := r.First(weightCandidates...)
	if w == "" || !validWeight(w) {
		return ""
	}
	return w
}

// classicTypes is the fixed allow-list of product types whose lineage
// field shows true lineage instead of brand.
var classicTypes = map[string]bool{
	"flower":              true,
	"pre-roll":            true,
	"infused pre-roll":    true,
	"concentrate":         true,
	"solvent concentrate": true,
	"vape cartridge":      true,
}

// preRollTypes are the product types whose ratio field carries a joint
// ratio string instead of a cannabinoid percentage.
var preRollTypes = map[string]bool{
	"pre-roll":         true,
	"infused pre-roll": true,
}

// IsClassic reports whether the record's product type is on the
// classic allow-list.
func (r Record) IsClassic() bool {
	return classicTypes[strings.ToLower(r.Get(KeyProductType))]
}

// IsPreRoll reports whether the record is a pre-roll or infused
// pre-roll.
func (r Record) IsPreRoll() bool {
	return preRollTypes[strings.ToLower(r.Get(KeyProductType))]
}

// zeroLike reports whether a raw value should be treated as absent:
// empty strings and the usual zero spellings upstream sheets produce.
func zeroLike(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "0.0", "0g", "-", "n/a", "nan", "none":
		return true
	}
	return false
}

var (
	weightPattern     = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?\s*(g|mg|oz|gram|grams|ounce|ounces)?$`)
	jointRatioPattern = regexp.MustCompile(`(?i)^([0-9]+(?:\.[0-9]+)?)\s*g?(?:\s*x\s*([0-9]+)(?:\s*pack)?)?$`)
)

func validWeight(s string) bool {
	return weightPattern.MatchString(strings.ToLower(strings.TrimSpace(s)))
}

// formatJointRatio normalizes a raw joint-ratio value to the label
// form "- {amount}g" for single packs or "- {amount}g x {count} Pack"
// for multi-packs. Unparseable values return "" so the caller can fall
// back to the persisted store.
func formatJointRatio(raw string) string {
	m := jointRatioPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return ""
	}
	amount := strings.TrimSuffix(m[1], ".0")
	if m[2] == "" {
		return fmt.Sprintf("- %sg", amount)
	}
	count, err := strconv.Atoi(m[2])
	if err != nil || count <= 1 {
		return fmt.Sprintf("- %sg", amount)
	}
	return fmt.Sprintf("- %sg x %d Pack", amount, count)
}
