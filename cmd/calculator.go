package main

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/Revanthsudeeep/waterconservation/internal/harvest"
	"github.com/Revanthsudeeep/waterconservation/internal/validator"
)

func (app *application) coefficientsHandler(w http.ResponseWriter, r *http.Request) {
	data := envelope{
		"coefficients": harvest.Coefficients,
		"default":      harvest.DefaultCoefficient,
	}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// harvestHandler never rejects a quantity: anything non-numeric or negative counts
// as zero and an unknown coefficient falls back to the pitched-roof default.
func (app *application) harvestHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Area              json.RawMessage `json:"area"`
		Rainfall          json.RawMessage `json:"rainfall"`
		RunoffCoefficient json.RawMessage `json:"runoffCoefficient"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	coefficient := float64(harvest.DefaultCoefficient)
	if len(input.RunoffCoefficient) > 0 {
		coefficient = numberOrZero(input.RunoffCoefficient)
	}

	area, rainfall, c := harvest.Coerce(numberOrZero(input.Area), numberOrZero(input.Rainfall), coefficient)
	result := harvest.Calculate(area, rainfall, c)

	data := envelope{
		"calculation": result,
		"labels": map[string]string{
			"harvestableWater": result.WaterLabel(),
			"annualSavings":    result.SavingsLabel(),
		},
	}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) qualityHandler(w http.ResponseWriter, r *http.Request) {
	var input harvest.QualityReading

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.CheckRange(input.PH, 0, 14, "ph", "must be between 0 and 14")
	v.Check(input.TDS >= 0, "tds", "must not be negative")
	v.Check(input.Turbidity >= 0, "turbidity", "must not be negative")
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	data := envelope{
		"reading": input,
		"status":  harvest.AssessQuality(input),
	}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

var leadingNumberRX = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// numberOrZero reads a JSON number, or the leading number of a JSON string
// ("12.5 m2" is 12.5). Anything else is 0.
func numberOrZero(raw json.RawMessage) float64 {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0
	}

	switch v := value.(type) {
	case float64:
		return v
	case string:
		n, err := strconv.ParseFloat(leadingNumberRX.FindString(strings.TrimSpace(v)), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
