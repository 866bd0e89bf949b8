package label

import "testing"

func TestResolveSizeMiniPrice(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"$12", 20},   // two digits
		{"$5", 20},    // one digit
		{"$125", 15},  // three digits
		{"$1250", 15}, // digit count, not complexity
	}
	for _, tt := range tests {
		if got := resolveSize(OrientationMini, FieldPrice, tt.value, 1); got != tt.want {
			t.Errorf("resolveSize(mini, price, %q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestResolveSizeVerticalDescriptionLongWord(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"short words use table", "Blue Dream", 26},
		{"12 char word", "Thunderstorm", 24},
		{"15 char word", "Thunderstorming", 20},
		{"18 char word", "Thunderstormingest", 16},
		{"longer word", "Thunderstormingestest", 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveSize(OrientationVertical, FieldDescription, tt.value, 1); got != tt.want {
				t.Errorf("resolveSize = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveSizeDoubleBrand(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"deny-listed brand", "Constellation Cannabis", 5.5},
		{"two long words", "Wonderful Gardens", 8},
		{"short brand uses table", "Acme", 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveSize(OrientationDouble, FieldBrand, tt.value, 1); got != tt.want {
				t.Errorf("resolveSize(double, brand, %q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestResolveSizeDoubleDescription(t *testing.T) {
	if got := resolveSize(OrientationDouble, FieldDescription, "Wonderful Evergreen Gummies", 1); got != 18 {
		t.Errorf("two long words = %v, want 18", got)
	}
	if got := resolveSize(OrientationDouble, FieldDescription, "Gummy Pack", 1); got != 22 {
		t.Errorf("short description uses table, got %v, want 22", got)
	}
}

func TestResolveSizeStrainAlwaysNearInvisible(t *testing.T) {
	long := "An Extremely Long Strain Name That Would Otherwise Shrink Everything"
	for _, o := range Orientations() {
		if got := resolveSize(o, FieldStrain, long, 1); got != 1 {
			t.Errorf("resolveSize(%s, strain) = %v, want 1", o, got)
		}
	}
}

func TestResolveSizeBareCannabinoid(t *testing.T) {
	tests := []struct {
		value string
		near  bool
	}{
		{"THC", true},
		{"cbd", true},
		{" CBG ", true},
		{"CBD Blend", false},
		{"THC-A", false},
	}
	for _, tt := range tests {
		got := resolveSize(OrientationHorizontal, FieldRatio, tt.value, 1)
		if tt.near && got != 1 {
			t.Errorf("resolveSize(ratio, %q) = %v, want near-invisible 1", tt.value, got)
		}
		if !tt.near && got == 1 {
			t.Errorf("resolveSize(ratio, %q) = 1, want a readable size", tt.value)
		}
	}
}

func TestResolveSizeFloors(t *testing.T) {
	// A price long enough to hit the table's smallest step still never
	// drops below 12.
	if got := resolveSize(OrientationHorizontal, FieldPrice, "$123456789.99", 1); got < 12 {
		t.Errorf("price size %v below floor 12", got)
	}
	// Non-price text fields floor at 8.
	long := "An Exceptionally Verbose Product Description That Goes On And On For Quite A While Indeed"
	if got := resolveSize(OrientationHorizontal, FieldDescription, long, 1); got < 8 {
		t.Errorf("description size %v below floor 8", got)
	}
}

func TestResolveSizeEmptyValue(t *testing.T) {
	// Empty values reserve the field's largest size.
	if got := resolveSize(OrientationHorizontal, FieldDescription, "", 1); got != 18 {
		t.Errorf("empty description = %v, want 18", got)
	}
}

func TestResolveSizeScale(t *testing.T) {
	base := resolveSize(OrientationHorizontal, FieldDescription, "Blue Dream", 1)
	if got := resolveSize(OrientationHorizontal, FieldDescription, "Blue Dream", 1.5); got != base*1.5 {
		t.Errorf("scaled size = %v, want %v", got, base*1.5)
	}
	// Non-positive scale is treated as 1.
	if got := resolveSize(OrientationHorizontal, FieldDescription, "Blue Dream", 0); got != base {
		t.Errorf("zero scale = %v, want %v", got, base)
	}
}

func TestIsCannabinoidAlone(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"THC", true},
		{"CBN", true},
		{"thc", true},
		{"CBD Blend", false},
		{"", false},
		{"10:1 CBD", false},
	}
	for _, tt := range tests {
		if got := isCannabinoidAlone(tt.value); got != tt.want {
			t.Errorf("isCannabinoidAlone(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
