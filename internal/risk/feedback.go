package risk

const (
	msgEncouragement = "Great job! Your current health metrics look good. Continue with a balanced diet and regular exercise."
	msgConsult       = "Based on your inputs, you may be at risk for diabetes. Please consult with a healthcare provider for proper diagnosis and treatment."
	msgActions       = "Recommended actions: Get regular check-ups, maintain a healthy diet, exercise 150 minutes per week, and monitor your blood sugar."
)

// Feedback appends the summary messages to the per-rule fragments. The input
// slice is not modified.
func Feedback(fragments, riskFactors []string, level RiskLevel, diabetic bool) []string {
	out := make([]string, 0, len(fragments)+3)
	out = append(out, fragments...)

	if !diabetic && len(riskFactors) == 0 {
		out = append(out, msgEncouragement)
	}
	if diabetic {
		out = append(out, msgConsult)
	}
	if level != Low {
		out = append(out, msgActions)
	}
	return out
}
