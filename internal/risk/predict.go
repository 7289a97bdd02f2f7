// Package risk scores a health profile for diabetes risk. It validates the
// inputs, folds an ordered rule table into a cumulative score, bands the score
// and explains the outcome. Everything here is pure and safe for concurrent use.
package risk

// Result is the outcome of one assessment.
type Result struct {
	IsDiabetic  bool      `json:"isDiabetic" yaml:"isDiabetic"`
	Probability float64   `json:"probability" yaml:"probability"`
	RiskLevel   RiskLevel `json:"riskLevel" yaml:"riskLevel"`
	Score       int       `json:"score" yaml:"score"`
	RiskFactors []string  `json:"riskFactors" yaml:"riskFactors"`
	Feedback    []string  `json:"feedback" yaml:"feedback"`
}

// Predict scores a validated profile. Calling it with out-of-range values is a
// caller error; use Assess when the input has not been validated.
func Predict(p HealthProfile) Result {
	card := Score(p)
	level, diabetic, probability := Classify(card.Score)
	return Result{
		IsDiabetic:  diabetic,
		Probability: probability,
		RiskLevel:   level,
		Score:       card.Score,
		RiskFactors: card.RiskFactors,
		Feedback:    Feedback(card.Fragments, card.RiskFactors, level, diabetic),
	}
}

// Assess validates p and scores it only when every field is in range. Exactly
// one of the returned values is meaningful.
func Assess(p HealthProfile) (Result, FieldErrors) {
	fe := Validate(p)
	if !fe.Empty() {
		return Result{}, fe
	}
	return Predict(p), fe
}
