package label

import (
	"reflect"
	"testing"
)

func TestParseMarkerSpans(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []markerSpan
	}{
		{
			name:  "no markers",
			input: "plain text",
			want:  nil,
		},
		{
			name:  "single span",
			input: "BRAND_STARTAcme FarmsBRAND_END",
			want: []markerSpan{
				{Field: FieldBrand, Value: "Acme Farms", Start: 0, End: 30},
			},
		},
		{
			name:  "empty value span",
			input: "PRICE_STARTPRICE_END",
			want: []markerSpan{
				{Field: FieldPrice, Value: "", Start: 0, End: 20},
			},
		},
		{
			name:  "multiple spans in one text",
			input: "DESCRIPTION_STARTBlue DreamDESCRIPTION_END WEIGHT_START3.5gWEIGHT_END",
			want: []markerSpan{
				{Field: FieldDescription, Value: "Blue Dream", Start: 0, End: 42},
				{Field: FieldWeight, Value: "3.5g", Start: 43, End: 69},
			},
		},
		{
			name:  "unterminated start is skipped",
			input: "BRAND_STARTAcme PRICE_START$30PRICE_END",
			want: []markerSpan{
				{Field: FieldPrice, Value: "$30", Start: 16, End: 39},
			},
		},
		{
			name:  "value containing break sentinel",
			input: "DESCRIPTION_STARTBlue Dream|BR|1g Pre-RollDESCRIPTION_END",
			want: []markerSpan{
				{Field: FieldDescription, Value: "Blue Dream|BR|1g Pre-Roll", Start: 0, End: 57},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseMarkerSpans(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseMarkerSpans(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWrapUnwrapMarkers(t *testing.T) {
	wrapped := WrapMarker(FieldBrand, "Acme Farms")
	if wrapped != "BRAND_STARTAcme FarmsBRAND_END" {
		t.Errorf("WrapMarker = %q", wrapped)
	}
	if got := UnwrapMarkers(wrapped); got != "Acme Farms" {
		t.Errorf("UnwrapMarkers = %q, want %q", got, "Acme Farms")
	}
	// Double wrapping must be undone by a single unwrap.
	double := WrapMarker(FieldBrand, wrapped)
	if got := UnwrapMarkers(double); got != "Acme Farms" {
		t.Errorf("UnwrapMarkers(double) = %q, want %q", got, "Acme Farms")
	}
}

func TestStripResidualMarkersPreservesLookalikes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"BRAND_START", ""},
		{"leading BRAND_END trailing", "leading  trailing"},
		{"CBD Blend", "CBD Blend"},
		{"THE END", "THE END"},
		{"START of something", "START of something"},
	}
	for _, tt := range tests {
		if got := stripResidualMarkers(tt.input); got != tt.want {
			t.Errorf("stripResidualMarkers(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
