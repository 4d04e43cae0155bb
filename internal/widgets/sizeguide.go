package widgets

import (
	"fmt"
	"math"
)

// Unit is the size-guide display unit.
type Unit int

const (
	UnitCm Unit = iota
	UnitInch
)

const cmPerInch = 2.54

// Measurement is one size-guide row: a label plus a value per size column.
type Measurement struct {
	Label string
	Cm    []float64
}

// SizeGuide is the measurement table of the size-guide modal.
type SizeGuide struct {
	Sizes []string
	Rows  []Measurement
}

// DefaultSizeGuide is the sweater measurement table.
func DefaultSizeGuide() SizeGuide {
	return SizeGuide{
		Sizes: []string{"S", "M", "L"},
		Rows: []Measurement{
			{Label: "Chest", Cm: []float64{52, 56, 60}},
			{Label: "Length", Cm: []float64{64, 67, 70}},
			{Label: "Sleeve", Cm: []float64{58, 60, 62}},
		},
	}
}

// Convert maps a centimeter value into the requested unit. Inches are
// rounded to one decimal, as the modal displays them.
func Convert(cm float64, unit Unit) float64 {
	if unit == UnitCm {
		return cm
	}
	return math.Round(cm/cmPerInch*10) / 10
}

// FormatValue renders a value with its unit suffix.
func FormatValue(cm float64, unit Unit) string {
	if unit == UnitCm {
		return fmt.Sprintf("%g cm", cm)
	}
	return fmt.Sprintf("%g in", Convert(cm, UnitInch))
}

// Table renders the full measurement grid in the requested unit, one row of
// formatted cells per measurement.
func (sg SizeGuide) Table(unit Unit) [][]string {
	rows := make([][]string, 0, len(sg.Rows))
	for _, m := range sg.Rows {
		cells := make([]string, 0, len(m.Cm)+1)
		cells = append(cells, m.Label)
		for _, cm := range m.Cm {
			cells = append(cells, FormatValue(cm, unit))
		}
		rows = append(rows, cells)
	}
	return rows
}
