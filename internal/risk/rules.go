package risk

// Tier is one threshold of a rule. Points are added and the optional factor
// and fragment emitted when When holds.
type Tier struct {
	When     func(HealthProfile) bool
	Points   int
	Factor   string
	Fragment string
}

// Rule groups the tiers for one metric. Tiers are tried in order and at most
// one fires.
type Rule struct {
	ID    string
	Tiers []Tier
}

// Scorecard is the output of the scoring pass.
type Scorecard struct {
	Score       int
	RiskFactors []string
	Fragments   []string
}

var ruleDB = []Rule{
	{ID: "glucose", Tiers: []Tier{
		{
			When:     func(p HealthProfile) bool { return p.Glucose >= 140 },
			Points:   35,
			Factor:   "High glucose levels",
			Fragment: "Your glucose level is elevated. Consider consulting a healthcare provider for a glucose tolerance test.",
		},
		{
			When:     func(p HealthProfile) bool { return p.Glucose >= 100 },
			Points:   20,
			Factor:   "Borderline glucose levels",
			Fragment: "Your glucose is in the pre-diabetic range. Lifestyle modifications can help prevent progression.",
		},
		{
			When:     func(p HealthProfile) bool { return p.Glucose < 70 },
			Fragment: "Your glucose level is low. Make sure you're eating regular, balanced meals.",
		},
	}},
	{ID: "bmi", Tiers: []Tier{
		{
			When:     func(p HealthProfile) bool { return p.BMI >= 30 },
			Points:   20,
			Factor:   "Obesity (BMI ≥ 30)",
			Fragment: "Your BMI indicates obesity, which is a significant risk factor. Aim for gradual weight loss through diet and exercise.",
		},
		{
			When:     func(p HealthProfile) bool { return p.BMI >= 25 },
			Points:   10,
			Factor:   "Overweight (BMI 25-29.9)",
			Fragment: "You are in the overweight category. Maintaining a healthy weight can reduce your diabetes risk.",
		},
		{
			When:     func(p HealthProfile) bool { return p.BMI >= 18.5 },
			Fragment: "Your BMI is in the healthy range. Keep up with regular physical activity!",
		},
	}},
	{ID: "bloodPressure", Tiers: []Tier{
		{
			When:     func(p HealthProfile) bool { return p.BloodPressure >= 90 },
			Points:   15,
			Factor:   "High blood pressure",
			Fragment: "Your blood pressure (diastolic) is elevated. This increases diabetes risk and cardiovascular complications.",
		},
		{
			When:     func(p HealthProfile) bool { return p.BloodPressure >= 80 },
			Points:   8,
			Factor:   "Borderline high blood pressure",
			Fragment: "Your blood pressure is slightly elevated. Monitor it regularly and reduce sodium intake.",
		},
		{
			When:     func(p HealthProfile) bool { return p.BloodPressure > 0 },
			Fragment: "Your blood pressure is within normal range. Continue healthy lifestyle habits.",
		},
	}},
	{ID: "age", Tiers: []Tier{
		{
			When:   func(p HealthProfile) bool { return p.Age >= 45 },
			Points: 10,
			Factor: "Age 45 or older",
		},
		{
			When:   func(p HealthProfile) bool { return p.Age >= 35 },
			Points: 5,
		},
	}},
	{ID: "immediateFamilyHistory", Tiers: []Tier{
		{
			When:     func(p HealthProfile) bool { return p.ImmediateFamilyHistory == HistoryYes },
			Points:   15,
			Factor:   "Immediate family history of diabetes",
			Fragment: "Having a parent or sibling with diabetes increases your risk. Regular screening is important.",
		},
	}},
	{ID: "extendedFamilyHistory", Tiers: []Tier{
		{
			When:   func(p HealthProfile) bool { return p.ExtendedFamilyHistory == HistoryYes },
			Points: 5,
			Factor: "Extended family history of diabetes",
		},
	}},
	{ID: "insulin", Tiers: []Tier{
		{
			When:     func(p HealthProfile) bool { return p.Insulin >= 200 },
			Points:   10,
			Factor:   "High insulin levels",
			Fragment: "Elevated insulin levels may indicate insulin resistance, a precursor to type 2 diabetes.",
		},
		{
			When:     func(p HealthProfile) bool { return p.Insulin > 0 && p.Insulin < 50 },
			Fragment: "Your insulin levels appear to be in a healthy range.",
		},
	}},
	{ID: "pregnancies", Tiers: []Tier{
		{
			When:   func(p HealthProfile) bool { return p.Pregnancies >= 3 },
			Points: 8,
			Factor: "Multiple pregnancies",
		},
	}},
	{ID: "skinThickness", Tiers: []Tier{
		{
			When:   func(p HealthProfile) bool { return p.SkinThickness > 40 },
			Points: 5,
			Factor: "Increased skin thickness",
		},
	}},
}

// Rules returns a copy of the rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(ruleDB))
	copy(out, ruleDB)
	return out
}

// Match returns the first tier of r that fires for p.
func (r Rule) Match(p HealthProfile) (Tier, bool) {
	for _, t := range r.Tiers {
		if t.When(p) {
			return t, true
		}
	}
	return Tier{}, false
}

// Score folds the rule table over p. The profile is expected to have passed
// Validate; thresholds assume in-range values.
func Score(p HealthProfile) Scorecard {
	card := Scorecard{
		RiskFactors: []string{},
		Fragments:   []string{},
	}
	for _, rule := range ruleDB {
		tier, ok := rule.Match(p)
		if !ok {
			continue
		}
		card.Score += tier.Points
		if tier.Factor != "" {
			card.RiskFactors = append(card.RiskFactors, tier.Factor)
		}
		if tier.Fragment != "" {
			card.Fragments = append(card.Fragments, tier.Fragment)
		}
	}
	return card
}
