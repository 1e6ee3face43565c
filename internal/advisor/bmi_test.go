package advisor

import (
	"math"
	"testing"
)

func TestComputeBMI(t *testing.T) {
	got := ComputeBMI(70, 1.75)
	want := 70 / (1.75 * 1.75)
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if math.Abs(got-22.857) > 0.001 {
		t.Errorf("expected ~22.857, got %v", got)
	}
	if c := Classify(got); c != NormalWeight {
		t.Errorf("expected NormalWeight, got %v", c)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want Category
	}{
		{10, Underweight},
		{18.4, Underweight},
		{18.5, NormalWeight},
		{22, NormalWeight},
		{24.9, NormalWeight},
		{25.0, Overweight},
		{27.3, Overweight},
		{29.9, Overweight},
		{30.0, Obesity},
		{45, Obesity},
	}
	for _, tt := range tests {
		if got := Classify(tt.bmi); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.bmi, got, tt.want)
		}
	}
}

func TestClassify_GapsFallThroughToObesity(t *testing.T) {
	for _, bmi := range []float64{24.95, 29.95, math.NaN()} {
		if got := Classify(bmi); got != Obesity {
			t.Errorf("Classify(%v) = %v, want Obesity", bmi, got)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	for _, bmi := range []float64{17, 18.5, 24.9, 25, 29.9, 31} {
		if Classify(bmi) != Classify(bmi) {
			t.Errorf("Classify(%v) not stable", bmi)
		}
	}
}

func TestMeasurementValidate(t *testing.T) {
	valid := Measurement{WeightKg: 70, HeightM: 1.75}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	bad := []Measurement{
		{WeightKg: 0, HeightM: 1.75},
		{WeightKg: 70, HeightM: 0},
		{WeightKg: -5, HeightM: 1.75},
		{WeightKg: 70, HeightM: -1},
		{WeightKg: math.NaN(), HeightM: 1.75},
		{WeightKg: 70, HeightM: math.Inf(1)},
	}
	for _, m := range bad {
		if err := m.Validate(); err != ErrInvalidMeasurement {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidMeasurement", m, err)
		}
	}
}

func TestParseMeasurement(t *testing.T) {
	m, err := ParseMeasurement(" 70 ", "175")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.WeightKg != 70 || m.HeightM != 1.75 {
		t.Errorf("unexpected measurement %+v", m)
	}

	for _, in := range [][2]string{
		{"", "175"},
		{"70", ""},
		{"seventy", "175"},
		{"70", "0"},
		{"-70", "175"},
		{"NaN", "175"},
		{"70", "Inf"},
	} {
		if _, err := ParseMeasurement(in[0], in[1]); err != ErrInvalidMeasurement {
			t.Errorf("ParseMeasurement(%q, %q) = %v, want ErrInvalidMeasurement", in[0], in[1], err)
		}
	}
}
