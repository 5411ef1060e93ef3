package analysis

import "github.com/google/generative-ai-go/genai"

// ResponseSchema mirrors AnalysisResult field for field. It is attached to
// the engine call so shape compliance is enforced server-side; the local
// validator then re-checks the output because the engine is an untrusted
// boundary.
func ResponseSchema() *genai.Schema {
	claim := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"claim": {Type: genai.TypeString},
			"sourceQuote": {
				Type:        genai.TypeString,
				Nullable:    true,
				Description: "Verbatim substring of the listing text supporting the claim, or null",
			},
			"confidence": {
				Type: genai.TypeString,
				Enum: []string{"High", "Medium", "Low"},
			},
		},
		Required: []string{"claim", "confidence"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":    {Type: genai.TypeString},
					"price":    {Type: genai.TypeString},
					"location": {Type: genai.TypeString},
					"layout":   {Type: genai.TypeString, Description: "e.g. 2 Bed / 2 Bath, 1200 sqft"},
					"quickSummary": {
						Type:        genai.TypeString,
						Description: "2-3 sentence overview",
					},
				},
				Required: []string{"title", "price", "location", "layout", "quickSummary"},
			},
			"matchScore": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"total": {Type: genai.TypeInteger, Description: "0 to 100 score from the rubric"},
					"grade": {Type: genai.TypeString, Description: "A+, A, B, C, D, or F"},
					"breakdown": {
						Type:        genai.TypeString,
						Description: "Point-by-point arithmetic behind the score",
					},
					"categories": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"financial": {Type: genai.TypeInteger},
							"lifestyle": {Type: genai.TypeInteger},
							"condition": {Type: genai.TypeInteger},
						},
						Required: []string{"financial", "lifestyle", "condition"},
					},
				},
				Required: []string{"total", "grade", "breakdown", "categories"},
			},
			"details": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"pros":     {Type: genai.TypeArray, Items: claim},
					"cons":     {Type: genai.TypeArray, Items: claim},
					"redFlags": {Type: genai.TypeArray, Items: claim},
					"hiddenGems": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "Positive features not immediately obvious",
					},
				},
				Required: []string{"pros", "cons", "redFlags", "hiddenGems"},
			},
			"marketAnalysis": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"valueVerdict": {
						Type:        genai.TypeString,
						Description: "One of: Overpriced, Fair Value, Underpriced/Steal",
					},
					"investmentPotential": {Type: genai.TypeString},
					"comparableSales": {
						Type:        genai.TypeString,
						Description: "Notes on comparable sales mentioned in or implied by the listing",
					},
				},
				Required: []string{"valueVerdict", "investmentPotential", "comparableSales"},
			},
			"contactDraft": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"subject": {Type: genai.TypeString},
					"body":    {Type: genai.TypeString},
				},
				Required: []string{"subject", "body"},
			},
		},
		Required: []string{"summary", "matchScore", "details", "marketAnalysis", "contactDraft"},
	}
}
