package widgets

import "testing"

func TestConvert(t *testing.T) {
	tests := []struct {
		cm   float64
		unit Unit
		want float64
	}{
		{52, UnitCm, 52},
		{52, UnitInch, 20.5},
		{56, UnitInch, 22},
		{60, UnitInch, 23.6},
		{64, UnitInch, 25.2},
		{0, UnitInch, 0},
	}

	for _, tt := range tests {
		if got := Convert(tt.cm, tt.unit); got != tt.want {
			t.Errorf("Convert(%v, %v) = %v; want %v", tt.cm, tt.unit, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(52, UnitCm); got != "52 cm" {
		t.Errorf("FormatValue cm = %q; want %q", got, "52 cm")
	}
	if got := FormatValue(52, UnitInch); got != "20.5 in" {
		t.Errorf("FormatValue in = %q; want %q", got, "20.5 in")
	}
}

func TestTable_SwitchesUnits(t *testing.T) {
	sg := DefaultSizeGuide()

	cm := sg.Table(UnitCm)
	if len(cm) != 3 {
		t.Fatalf("table rows = %d; want 3", len(cm))
	}
	if cm[0][0] != "Chest" || cm[0][1] != "52 cm" {
		t.Errorf("cm row = %v; want Chest 52 cm ...", cm[0])
	}

	inch := sg.Table(UnitInch)
	if inch[0][1] != "20.5 in" {
		t.Errorf("inch cell = %q; want %q", inch[0][1], "20.5 in")
	}
	if len(inch[0]) != len(sg.Sizes)+1 {
		t.Errorf("row width = %d; want label plus %d sizes", len(inch[0]), len(sg.Sizes))
	}
}
