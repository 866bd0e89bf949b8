package label

import "strings"

// CellContext is the field→value mapping for one output cell. Values
// of dynamically sized fields are wrapped in marker tokens so the
// formatter can find, size, and restyle them after substitution.
type CellContext struct {
	Values map[FieldType]string
	// Classic records show true lineage left-aligned; non-classic show
	// brand centered. The formatter needs the distinction per cell.
	Classic bool
	// ProductType feeds the compliance-icon resolver.
	ProductType string
	// Empty marks the all-empty padding context of unused grid cells.
	Empty bool
}

// EmptyContext returns the context used for unused cells in a partial
// chunk: every field present and empty, so no raw placeholder survives
// and no record data is duplicated.
func EmptyContext() CellContext {
	values := make(map[FieldType]string, len(requiredFields))
	for _, ft := range dynamicFields {
		values[ft] = WrapMarker(ft, "")
	}
	values[FieldDOH] = ""
	values[FieldQR] = ""
	return CellContext{Values: values, Empty: true}
}

// BuildContext maps one record to its cell context for the given
// orientation, applying the classic/non-classic and product-type
// business rules. It is idempotent: any marker tokens already present
// in the source values are unwrapped before rewrapping, so re-running
// on the same record produces identical output.
func BuildContext(rec Record, o Orientation, store Store) CellContext {
	if store == nil {
		store = NopStore{}
	}
	classic := rec.IsClassic()

	raw := map[FieldType]string{
		FieldDescription: rec.DisplayName(),
		FieldWeight:      rec.Weight(),
		FieldBrand:       rec.Get(KeyProductBrand),
		FieldPrice:       formatPrice(rec.Get(KeyPrice)),
		FieldRatio:       rec.Get(KeyRatio),
	}

	if classic {
		lineage, ok := store.Lineage(rec.Get(KeyStrain))
		if !ok || lineage == "" {
			lineage = rec.Get(KeyLineage)
		}
		raw[FieldLineage] = strings.ToUpper(lineage)
		raw[FieldVendor] = rec.Get(KeyVendor)
		raw[FieldStrain] = ""
	} else {
		raw[FieldLineage] = strings.ToUpper(rec.Get(KeyProductBrand))
		raw[FieldStrain] = rec.Get(KeyStrain)
		raw[FieldVendor] = ""
	}

	// Pre-rolls replace the cannabinoid ratio with the joint ratio.
	if rec.IsPreRoll() {
		raw[FieldRatio] = resolveJointRatio(rec, store)
	}

	values := make(map[FieldType]string, len(raw)+2)
	for ft, v := range raw {
		values[ft] = WrapMarker(ft, UnwrapMarkers(v))
	}
	values[FieldDOH] = rec.Get(KeyDOHCompliant)
	values[FieldQR] = rec.DisplayName()

	return CellContext{Values: values, Classic: classic, ProductType: rec.Get(KeyProductType)}
}

// resolveJointRatio formats the record's joint ratio, falling back to
// the persisted store when the record's own value is blank or
// zero-like.
func resolveJointRatio(rec Record, store Store) string {
	own := rec.Get(KeyJointRatio)
	if !zeroLike(own) {
		if jr := formatJointRatio(own); jr != "" {
			return jr
		}
	}
	if stored, ok := store.JointRatio(rec.DisplayName()); ok {
		if jr := formatJointRatio(stored); jr != "" {
			return jr
		}
	}
	return ""
}

// formatPrice normalizes a price value to a leading currency symbol.
// Malformed values pass through untouched; the sizing model only needs
// the digits.
func formatPrice(price string) string {
	if price == "" {
		return ""
	}
	if strings.HasPrefix(price, "$") {
		return price
	}
	return "$" + price
}
