package risk

import (
	"fmt"
	"strings"
)

// RiskLevel is an ordered risk band. The zero value is Low.
type RiskLevel int

const (
	Low RiskLevel = iota
	Moderate
	High
	VeryHigh
)

var levelNames = [...]string{
	Low:      "Low",
	Moderate: "Moderate",
	High:     "High",
	VeryHigh: "Very High",
}

func (l RiskLevel) String() string {
	if l < Low || l > VeryHigh {
		return fmt.Sprintf("RiskLevel(%d)", int(l))
	}
	return levelNames[l]
}

func (l RiskLevel) MarshalText() ([]byte, error) {
	if l < Low || l > VeryHigh {
		return nil, fmt.Errorf("invalid risk level %d", int(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText accepts both "Very High" and "VeryHigh".
func (l *RiskLevel) UnmarshalText(b []byte) error {
	s := strings.ReplaceAll(strings.ToLower(string(b)), " ", "")
	for i, name := range levelNames {
		if strings.ReplaceAll(strings.ToLower(name), " ", "") == s {
			*l = RiskLevel(i)
			return nil
		}
	}
	return fmt.Errorf("unknown risk level %q", string(b))
}

const (
	veryHighThreshold = 70
	highThreshold     = 50
	moderateThreshold = 30

	minProbability = 5
	maxProbability = 99
)

// Classify maps a cumulative score to its band, diabetic flag and probability
// percentage. Probabilities jump at band edges (49 -> 44.5, 50 -> 65); that
// is intentional.
func Classify(score int) (RiskLevel, bool, float64) {
	var (
		level       RiskLevel
		probability float64
	)
	switch {
	case score >= veryHighThreshold:
		level = VeryHigh
		probability = 85 + float64(min(score-veryHighThreshold, 15))
	case score >= highThreshold:
		level = High
		probability = 65 + float64(score-highThreshold)*0.5
	case score >= moderateThreshold:
		level = Moderate
		probability = 35 + float64(score-moderateThreshold)*0.5
	default:
		level = Low
		probability = float64(max(minProbability, score))
	}
	return level, level >= High, min(probability, maxProbability)
}
