package risk

import (
	"errors"
	"fmt"
	"strconv"
)

// Field identifies one numeric field of a HealthProfile.
type Field int

const (
	FieldPregnancies Field = iota
	FieldGlucose
	FieldBloodPressure
	FieldSkinThickness
	FieldInsulin
	FieldBMI
	FieldAge

	fieldCount
)

type fieldDef struct {
	name  string // wire name
	label string
	min   float64
	max   float64
	unit  string
}

var fieldDefs = [fieldCount]fieldDef{
	FieldPregnancies:   {name: "pregnancies", label: "Pregnancies", min: 0, max: 20},
	FieldGlucose:       {name: "glucose", label: "Glucose", min: 40, max: 400, unit: "mg/dL"},
	FieldBloodPressure: {name: "bloodPressure", label: "Blood Pressure", min: 40, max: 140, unit: "mm Hg"},
	FieldSkinThickness: {name: "skinThickness", label: "Skin Thickness", min: 5, max: 100, unit: "mm"},
	FieldInsulin:       {name: "insulin", label: "Insulin", min: 15, max: 800, unit: "μU/mL"},
	FieldBMI:           {name: "bmi", label: "BMI", min: 15, max: 70},
	FieldAge:           {name: "age", label: "Age", min: 21, max: 100, unit: "years"},
}

// Fields lists every numeric field in declaration order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// String returns the wire name of the field, e.g. "bloodPressure".
func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldDefs[f].name
}

// Range returns the inclusive domain range of the field.
func (f Field) Range() (lo, hi float64) {
	s := fieldDefs[f]
	return s.min, s.max
}

// ParseField maps a wire name back to its Field.
func ParseField(name string) (Field, bool) {
	for f := Field(0); f < fieldCount; f++ {
		if fieldDefs[f].name == name {
			return f, true
		}
	}
	return 0, false
}

// FieldRangeError reports a numeric field outside its domain range.
type FieldRangeError struct {
	Field Field
	Value float64
	Min   float64
	Max   float64
	Unit  string
}

func (e *FieldRangeError) Error() string {
	s := fieldDefs[e.Field]
	msg := fmt.Sprintf("%s must be between %s and %s", s.label, formatBound(e.Min), formatBound(e.Max))
	if e.Unit != "" {
		msg += " " + e.Unit
	}
	return msg
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidateField checks a single value against the range of f and returns nil
// when it is in range.
func ValidateField(f Field, value float64) *FieldRangeError {
	s := fieldDefs[f]
	if value >= s.min && value <= s.max {
		return nil
	}
	return &FieldRangeError{Field: f, Value: value, Min: s.min, Max: s.max, Unit: s.unit}
}

// FieldErrors holds at most one range error per field.
type FieldErrors struct {
	errs [fieldCount]*FieldRangeError
}

// Validate checks every numeric field of p. All failures are reported.
func Validate(p HealthProfile) FieldErrors {
	var fe FieldErrors
	for f := Field(0); f < fieldCount; f++ {
		fe.errs[f] = ValidateField(f, p.Value(f))
	}
	return fe
}

// Empty reports whether no field failed.
func (fe FieldErrors) Empty() bool {
	for _, e := range fe.errs {
		if e != nil {
			return false
		}
	}
	return true
}

// Get returns the error for f, or nil.
func (fe FieldErrors) Get(f Field) *FieldRangeError {
	return fe.errs[f]
}

// List returns the errors in field order.
func (fe FieldErrors) List() []*FieldRangeError {
	var out []*FieldRangeError
	for _, e := range fe.errs {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Messages renders the errors as field name to message, for display.
func (fe FieldErrors) Messages() map[string]string {
	out := make(map[string]string)
	for _, e := range fe.List() {
		out[e.Field.String()] = e.Error()
	}
	return out
}

// Err joins every field error, or returns nil when there are none.
func (fe FieldErrors) Err() error {
	list := fe.List()
	if len(list) == 0 {
		return nil
	}
	errs := make([]error, len(list))
	for i, e := range list {
		errs[i] = e
	}
	return errors.Join(errs...)
}
