package label

import (
	"regexp"
	"strings"
)

// sizeRule is one field/orientation-specific sizing exception. Rules
// are evaluated top-down before the generic table lookup; the first
// rule that applies and returns ok short-circuits.
type sizeRule struct {
	Name    string
	Applies func(o Orientation, ft FieldType) bool
	Size    func(value string) (float64, bool)
}

// oversizedBrands is the deny-list of brand names known to overflow
// the double layout at the generic sizes.
var oversizedBrands = map[string]bool{
	"CONSTELLATION CANNABIS":   true,
	"NORTHWEST WONDERLAND":     true,
	"EMERALD EVOLUTION FARMS":  true,
	"HIGH ALTITUDE BOTANICALS": true,
}

// cannabinoidPattern matches a bare cannabinoid abbreviation standing
// alone. "CBD Blend" and friends must not match.
var cannabinoidPattern = regexp.MustCompile(`(?i)^\s*(THC|CBD|CBN|CBC|CBG)\s*$`)

// sizeRules are the ad hoc sizing exceptions, in evaluation order.
var sizeRules = []sizeRule{
	{
		// Mini labels size the price purely by digit count.
		Name: "mini price digit count",
		Applies: func(o Orientation, ft FieldType) bool {
			return o == OrientationMini && ft == FieldPrice
		},
		Size: func(value string) (float64, bool) {
			if digitCount(value) <= 2 {
				return 20, true
			}
			return 15, true
		},
	},
	{
		// Vertical descriptions with one very long word wrap badly, so
		// they get a dedicated ladder keyed on the longest word.
		Name: "vertical description long word",
		Applies: func(o Orientation, ft FieldType) bool {
			return o == OrientationVertical && ft == FieldDescription
		},
		Size: func(value string) (float64, bool) {
			longest := longestWordLen(value)
			if longest <= 9 {
				return 0, false
			}
			switch {
			case longest <= 12:
				return 24, true
			case longest <= 15:
				return 20, true
			case longest <= 18:
				return 16, true
			}
			return 12, true
		},
	},
	{
		Name: "double brand",
		Applies: func(o Orientation, ft FieldType) bool {
			return o == OrientationDouble && ft == FieldBrand
		},
		Size: func(value string) (float64, bool) {
			if oversizedBrands[strings.ToUpper(strings.TrimSpace(value))] {
				return 5.5, true
			}
			if countWordsAtLeast(value, 7) >= 2 {
				return 8, true
			}
			return 0, false
		},
	},
	{
		Name: "double description long words",
		Applies: func(o Orientation, ft FieldType) bool {
			return o == OrientationDouble && ft == FieldDescription
		},
		Size: func(value string) (float64, bool) {
			if countWordsAtLeast(value, 9) >= 2 {
				return 18, true
			}
			return 0, false
		},
	},
}

// isCannabinoidAlone reports whether value is a bare cannabinoid
// abbreviation.
func isCannabinoidAlone(value string) bool {
	return cannabinoidPattern.MatchString(value)
}

// resolveSize computes the final point size for one field value:
// strain-type and bare-cannabinoid values pin to the near-invisible
// size; otherwise the ordered exception rules run before the generic
// complexity lookup; per-field floors apply; the caller's scale factor
// multiplies last.
func resolveSize(o Orientation, ft FieldType, value string, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}

	// Strain text and bare cannabinoid abbreviations are encoded in the
	// payload-code image already; keep the text at the minimal size no
	// matter how long it is.
	if ft == FieldStrain || isCannabinoidAlone(value) {
		return nearInvisibleSize(o) * scale
	}

	// Exception rules return exact sizes below the generic floors, so
	// floors only apply to the table-lookup path.
	for _, rule := range sizeRules {
		if !rule.Applies(o, ft) {
			continue
		}
		if s, ok := rule.Size(value); ok {
			return s * scale
		}
	}

	var size float64
	if value == "" {
		size = emptyValueSize(o, ft)
	} else {
		steps := stepsFor(o, ft)
		if len(steps) == 0 {
			size = fallbackSize
		} else {
			size = tableLookup(steps, Complexity(value))
		}
	}
	return applyFloor(ft, size) * scale
}

// applyFloor enforces the final per-field minimum sizes.
func applyFloor(ft FieldType, size float64) float64 {
	switch ft {
	case FieldPrice:
		if size < 12 {
			return 12
		}
	case FieldStrain:
		return size
	default:
		if size < 8 {
			return 8
		}
	}
	return size
}
