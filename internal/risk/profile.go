package risk

import (
	"fmt"
	"strings"
)

// FamilyHistory is the answer to a family-history question.
type FamilyHistory string

const (
	HistoryYes FamilyHistory = "yes"
	HistoryNo  FamilyHistory = "no"
)

// ParseFamilyHistory accepts "yes" or "no" in any case.
func ParseFamilyHistory(s string) (FamilyHistory, error) {
	switch FamilyHistory(strings.ToLower(strings.TrimSpace(s))) {
	case HistoryYes:
		return HistoryYes, nil
	case HistoryNo:
		return HistoryNo, nil
	default:
		return "", fmt.Errorf("family history must be %q or %q, got %q", HistoryYes, HistoryNo, s)
	}
}

// HealthProfile holds the metrics for one assessment.
type HealthProfile struct {
	Pregnancies            float64       `json:"pregnancies" yaml:"pregnancies"`
	Glucose                float64       `json:"glucose" yaml:"glucose"`
	BloodPressure          float64       `json:"bloodPressure" yaml:"bloodPressure"`
	SkinThickness          float64       `json:"skinThickness" yaml:"skinThickness"`
	Insulin                float64       `json:"insulin" yaml:"insulin"`
	BMI                    float64       `json:"bmi" yaml:"bmi"`
	Age                    float64       `json:"age" yaml:"age"`
	ImmediateFamilyHistory FamilyHistory `json:"immediateFamilyHistory" yaml:"immediateFamilyHistory"`
	ExtendedFamilyHistory  FamilyHistory `json:"extendedFamilyHistory" yaml:"extendedFamilyHistory"`
}

// Value returns the numeric value of f.
func (p HealthProfile) Value(f Field) float64 {
	switch f {
	case FieldPregnancies:
		return p.Pregnancies
	case FieldGlucose:
		return p.Glucose
	case FieldBloodPressure:
		return p.BloodPressure
	case FieldSkinThickness:
		return p.SkinThickness
	case FieldInsulin:
		return p.Insulin
	case FieldBMI:
		return p.BMI
	case FieldAge:
		return p.Age
	default:
		panic(fmt.Sprintf("risk: unknown field %d", f))
	}
}

// With returns a copy of p with f set to v.
func (p HealthProfile) With(f Field, v float64) HealthProfile {
	switch f {
	case FieldPregnancies:
		p.Pregnancies = v
	case FieldGlucose:
		p.Glucose = v
	case FieldBloodPressure:
		p.BloodPressure = v
	case FieldSkinThickness:
		p.SkinThickness = v
	case FieldInsulin:
		p.Insulin = v
	case FieldBMI:
		p.BMI = v
	case FieldAge:
		p.Age = v
	default:
		panic(fmt.Sprintf("risk: unknown field %d", f))
	}
	return p
}
