package advisor

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidMeasurement is returned when weight or height is missing,
// non-numeric, non-finite or not strictly positive.
var ErrInvalidMeasurement = errors.New("invalid measurement")

// Measurement is a single weight/height submission.
type Measurement struct {
	WeightKg float64 `json:"weight_kg"`
	HeightM  float64 `json:"height_m"`
}

// Validate checks the measurement invariant. The engine itself never calls
// this; it is meant for the presentation boundary.
func (m Measurement) Validate() error {
	if !positiveFinite(m.WeightKg) || !positiveFinite(m.HeightM) {
		return ErrInvalidMeasurement
	}
	return nil
}

// BMI is shorthand for ComputeBMI(m.WeightKg, m.HeightM).
func (m Measurement) BMI() float64 {
	return ComputeBMI(m.WeightKg, m.HeightM)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ParseMeasurement parses raw weight (kg) and height (cm) text as entered by
// a user and validates the result. Any parse failure is reported as
// ErrInvalidMeasurement.
func ParseMeasurement(weightKg, heightCm string) (Measurement, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(weightKg), 64)
	if err != nil {
		return Measurement{}, ErrInvalidMeasurement
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(heightCm), 64)
	if err != nil {
		return Measurement{}, ErrInvalidMeasurement
	}
	m := Measurement{WeightKg: w, HeightM: h / 100}
	if err := m.Validate(); err != nil {
		return Measurement{}, err
	}
	return m, nil
}
