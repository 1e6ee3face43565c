package advisor

// ComputeBMI returns weightKg / heightM². Inputs are not validated here;
// callers must reject invalid measurements first (see Measurement.Validate).
func ComputeBMI(weightKg, heightM float64) float64 {
	return weightKg / (heightM * heightM)
}

// Classify maps a BMI to its category. Boundaries are inclusive as listed;
// any value not caught by the first three ranges, including the gap between
// 24.9 and 25.0, falls through to Obesity.
func Classify(bmi float64) Category {
	if bmi < 18.5 {
		return Underweight
	}
	if bmi >= 18.5 && bmi <= 24.9 {
		return NormalWeight
	}
	if bmi >= 25.0 && bmi <= 29.9 {
		return Overweight
	}
	return Obesity
}
