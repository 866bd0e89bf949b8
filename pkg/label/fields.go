package label

import "strings"

// FieldType identifies one slot of a label cell. The type selects the
// font sizing table, the marker token pair, and the placeholder suffix
// used in templates ({{LabelN.Description}} and so on).
type FieldType string

const (
	FieldDescription FieldType = "description"
	FieldBrand       FieldType = "brand"
	FieldPrice       FieldType = "price"
	FieldLineage     FieldType = "lineage"
	FieldRatio       FieldType = "ratio"
	FieldStrain      FieldType = "strain"
	FieldWeight      FieldType = "weight"
	FieldVendor      FieldType = "vendor"
	FieldDOH         FieldType = "doh"
	FieldQR          FieldType = "qr"
	FieldDefault     FieldType = "default"
)

// dynamicFields are the text fields whose rendered values carry marker
// tokens so the formatter can find and size them after substitution.
var dynamicFields = []FieldType{
	FieldDescription,
	FieldBrand,
	FieldPrice,
	FieldLineage,
	FieldRatio,
	FieldStrain,
	FieldWeight,
	FieldVendor,
}

// placeholderSuffix maps a FieldType to the suffix used in
// {{LabelN.suffix}} template placeholders.
var placeholderSuffix = map[FieldType]string{
	FieldDescription: "Description",
	FieldBrand:       "Brand",
	FieldPrice:       "Price",
	FieldLineage:     "Lineage",
	FieldRatio:       "Ratio",
	FieldStrain:      "Strain",
	FieldWeight:      "Weight",
	FieldVendor:      "Vendor",
	FieldDOH:         "DOH",
	FieldQR:          "Payload",
}

// fieldForSuffix is the reverse of placeholderSuffix.
var fieldForSuffix = func() map[string]FieldType {
	m := make(map[string]FieldType, len(placeholderSuffix))
	for ft, s := range placeholderSuffix {
		m[s] = ft
	}
	return m
}()

// LineBreakSentinel stands in for a real line break inside a field
// value until the formatter rewrites the paragraph. Values travel
// through plain text substitution, so a literal newline would be lost.
const LineBreakSentinel = "|BR|"

// StartMarker returns the opening sentinel token for a field.
func StartMarker(ft FieldType) string {
	return strings.ToUpper(string(ft)) + "_START"
}

// EndMarker returns the closing sentinel token for a field.
func EndMarker(ft FieldType) string {
	return strings.ToUpper(string(ft)) + "_END"
}

// WrapMarker wraps a raw value in the field's sentinel pair. Empty
// values are wrapped too: the formatter still assigns them a size so
// empty cells reserve consistent space.
func WrapMarker(ft FieldType, value string) string {
	return StartMarker(ft) + value + EndMarker(ft)
}

// UnwrapMarkers strips every known marker token from s, leaving the
// raw values. Used to keep context building idempotent.
func UnwrapMarkers(s string) string {
	for _, ft := range dynamicFields {
		s = strings.ReplaceAll(s, StartMarker(ft), "")
		s = strings.ReplaceAll(s, EndMarker(ft), "")
	}
	return s
}

// markerSpan is one marker-wrapped field value located inside a
// paragraph's combined text.
type markerSpan struct {
	Field FieldType
	Value string
	Start int // offset of the start marker in the source text
	End   int // offset just past the end marker
}

// parseMarkerSpans scans text once, left to right, and returns every
// marker-wrapped span in source order. Same-type markers never nest;
// every START is expected to have exactly one matching END before the
// next START of that type. A START without its END is left alone and
// treated as plain text.
func parseMarkerSpans(text string) []markerSpan {
	var spans []markerSpan
	pos := 0
	for pos < len(text) {
		// Find the earliest start marker from the current position.
		best := -1
		var bestField FieldType
		for _, ft := range dynamicFields {
			idx := strings.Index(text[pos:], StartMarker(ft))
			if idx < 0 {
				continue
			}
			if best < 0 || pos+idx < best {
				best = pos + idx
				bestField = ft
			}
		}
		if best < 0 {
			break
		}
		start := StartMarker(bestField)
		end := EndMarker(bestField)
		valueStart := best + len(start)
		endIdx := strings.Index(text[valueStart:], end)
		if endIdx < 0 {
			// Unterminated marker; skip past it rather than corrupting
			// the remainder of the paragraph.
			pos = valueStart
			continue
		}
		spans = append(spans, markerSpan{
			Field: bestField,
			Value: text[valueStart : valueStart+endIdx],
			Start: best,
			End:   valueStart + endIdx + len(end),
		})
		pos = valueStart + endIdx + len(end)
	}
	return spans
}

// stripResidualMarkers removes any leftover whole marker tokens from
// text. Only exact tokens are removed, so legitimate content that
// happens to resemble a marker ("CBD Blend", a brand literally named
// "END") is preserved.
func stripResidualMarkers(text string) string {
	return UnwrapMarkers(text)
}
