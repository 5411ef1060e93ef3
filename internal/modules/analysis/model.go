package analysis

// Mode selects the transaction the user is evaluating. It changes which
// facts matter (strata fees vs pet policy) and how the budget is labelled.
type Mode string

const (
	ModeBuy  Mode = "buy"
	ModeRent Mode = "rent"
)

// Priorities are the four preference axes, each weighted 1-10.
type Priorities struct {
	Commute    int `json:"commute"`
	Condition  int `json:"condition"`
	Investment int `json:"investment"`
	Amenities  int `json:"amenities"`
}

// PreferenceProfile captures what the user is looking for. Built and owned
// by the caller; never mutated here. BudgetMax is a purchase price when
// Mode is buy and a monthly rent when Mode is rent — a single numeric slot,
// callers must not mix interpretations.
type PreferenceProfile struct {
	Mode           Mode       `json:"mode"`
	BudgetMax      float64    `json:"budget_max"`
	MinBedrooms    int        `json:"min_bedrooms"`
	MinBathrooms   float64    `json:"min_bathrooms"`
	Location       string     `json:"location"`
	Priorities     Priorities `json:"priorities"`
	CustomCriteria string     `json:"custom_criteria"`
}

// Validate rejects profiles that would produce a nonsensical prompt.
func (p PreferenceProfile) Validate() error {
	if p.Mode != ModeBuy && p.Mode != ModeRent {
		return ErrInvalidPreferences
	}
	if p.BudgetMax <= 0 {
		return ErrInvalidPreferences
	}
	if p.MinBedrooms < 0 || p.MinBathrooms < 0 {
		return ErrInvalidPreferences
	}
	for _, w := range []int{p.Priorities.Commute, p.Priorities.Condition, p.Priorities.Investment, p.Priorities.Amenities} {
		if w < 1 || w > 10 {
			return ErrInvalidPreferences
		}
	}
	return nil
}

// Confidence is the closed set the schema constrains claim confidence to.
// Unknown strings from the model normalise to ConfidenceUnclassified
// rather than failing the whole result.
type Confidence string

const (
	ConfidenceHigh         Confidence = "High"
	ConfidenceMedium       Confidence = "Medium"
	ConfidenceLow          Confidence = "Low"
	ConfidenceUnclassified Confidence = "Unclassified"
)

func ParseConfidence(s string) Confidence {
	switch Confidence(s) {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return Confidence(s)
	}
	return ConfidenceUnclassified
}

// GradeTier buckets the model's free-text letter grade.
type GradeTier string

const (
	GradeAPlus        GradeTier = "A+"
	GradeA            GradeTier = "A"
	GradeB            GradeTier = "B"
	GradeC            GradeTier = "C"
	GradeD            GradeTier = "D"
	GradeF            GradeTier = "F"
	GradeUnclassified GradeTier = "Unclassified"
)

func ParseGradeTier(s string) GradeTier {
	switch GradeTier(s) {
	case GradeAPlus, GradeA, GradeB, GradeC, GradeD, GradeF:
		return GradeTier(s)
	}
	return GradeUnclassified
}

// Verdict buckets the market-value call.
type Verdict string

const (
	VerdictOverpriced   Verdict = "Overpriced"
	VerdictFairValue    Verdict = "Fair Value"
	VerdictUnderpriced  Verdict = "Underpriced/Steal"
	VerdictUnclassified Verdict = "Unclassified"
)

func ParseVerdict(s string) Verdict {
	switch Verdict(s) {
	case VerdictOverpriced, VerdictFairValue, VerdictUnderpriced:
		return Verdict(s)
	}
	return VerdictUnclassified
}

// EvidenceClaim is one pro, con or red flag. SourceQuote, when present,
// must be a verbatim substring of the listing text; the validator nulls
// quotes that are not.
type EvidenceClaim struct {
	Claim       string     `json:"claim"`
	SourceQuote *string    `json:"sourceQuote"`
	Confidence  Confidence `json:"confidence"`
}

// Summary is the extracted fact block.
type Summary struct {
	Title        string `json:"title"`
	Price        string `json:"price"`
	Location     string `json:"location"`
	Layout       string `json:"layout"`
	QuickSummary string `json:"quickSummary"`
}

// CategoryScores are the three 0-100 sub-scores behind the total.
type CategoryScores struct {
	Financial int `json:"financial"`
	Lifestyle int `json:"lifestyle"`
	Condition int `json:"condition"`
}

// MatchScore holds the rubric outcome. Grade keeps the model's raw string
// for display; Tier is the validated bucket.
type MatchScore struct {
	Total      int            `json:"total"`
	Grade      string         `json:"grade"`
	Tier       GradeTier      `json:"-"`
	Breakdown  string         `json:"breakdown"`
	Categories CategoryScores `json:"categories"`
}

// Details groups the evidence-backed findings.
type Details struct {
	Pros       []EvidenceClaim `json:"pros"`
	Cons       []EvidenceClaim `json:"cons"`
	RedFlags   []EvidenceClaim `json:"redFlags"`
	HiddenGems []string        `json:"hiddenGems"`
}

// MarketAnalysis is the value call. ValueVerdict keeps the raw string;
// Verdict is the validated bucket.
type MarketAnalysis struct {
	ValueVerdict        string  `json:"valueVerdict"`
	Verdict             Verdict `json:"-"`
	InvestmentPotential string  `json:"investmentPotential"`
	ComparableSales     string  `json:"comparableSales"`
}

// ContactDraft is the ready-to-send inquiry email.
type ContactDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AnalysisResult is the full typed evaluation returned to callers.
type AnalysisResult struct {
	Summary        Summary        `json:"summary"`
	MatchScore     MatchScore     `json:"matchScore"`
	Details        Details        `json:"details"`
	MarketAnalysis MarketAnalysis `json:"marketAnalysis"`
	ContactDraft   ContactDraft   `json:"contactDraft"`
}
