// Package harvest computes rainwater-harvesting yields for the savings calculator.
//
// No unit conversion happens here: with area in square feet and rainfall in
// inches the result is read as gallons, which is how the calculator labels it.
package harvest

import (
	"fmt"
	"math"
)

type RunoffCoefficient float64

const (
	PitchedRoof RunoffCoefficient = 0.8
	FlatRoof    RunoffCoefficient = 0.6
	UnpavedArea RunoffCoefficient = 0.4

	DefaultCoefficient = PitchedRoof

	// SavingsPerUnit is the monetary value of one unit of harvested water.
	SavingsPerUnit = 0.01
)

// Coefficients lists the selectable surfaces in display order.
var Coefficients = []Surface{
	{Name: "Pitched Roof", Coefficient: PitchedRoof},
	{Name: "Flat Roof", Coefficient: FlatRoof},
	{Name: "Unpaved Area", Coefficient: UnpavedArea},
}

type Surface struct {
	Name        string            `json:"name"`
	Coefficient RunoffCoefficient `json:"coefficient"`
}

type Calculation struct {
	Area              float64           `json:"area"`
	Rainfall          float64           `json:"rainfall"`
	RunoffCoefficient RunoffCoefficient `json:"runoffCoefficient"`
	HarvestableWater  float64           `json:"harvestableWater"`
	AnnualSavings     float64           `json:"annualSavings"`
}

func (c RunoffCoefficient) Valid() bool {
	for _, s := range Coefficients {
		if s.Coefficient == c {
			return true
		}
	}
	return false
}

// Coerce maps raw input onto the calculator's domain: negative, NaN or
// infinite quantities become 0 and an unknown coefficient becomes the default.
func Coerce(area, rainfall, coefficient float64) (float64, float64, RunoffCoefficient) {
	c := RunoffCoefficient(coefficient)
	if !c.Valid() {
		c = DefaultCoefficient
	}
	return nonNegative(area), nonNegative(rainfall), c
}

// Calculate returns area × rainfall × coefficient and the derived annual saving.
func Calculate(area, rainfall float64, coefficient RunoffCoefficient) Calculation {
	water := area * rainfall * float64(coefficient)
	return Calculation{
		Area:              area,
		Rainfall:          rainfall,
		RunoffCoefficient: coefficient,
		HarvestableWater:  water,
		AnnualSavings:     water * SavingsPerUnit,
	}
}

// WaterLabel renders the volume the way the calculator shows it, e.g. "800 gallons".
func (c Calculation) WaterLabel() string {
	return fmt.Sprintf("%d gallons", roundHalfUp(c.HarvestableWater))
}

// SavingsLabel renders the annual saving, e.g. "$8".
func (c Calculation) SavingsLabel() string {
	return fmt.Sprintf("$%d", roundHalfUp(c.AnnualSavings))
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
