package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeResult turns raw engine output into a typed AnalysisResult.
// Malformed JSON is a parse error; a well-formed object missing required
// fields or carrying wrong primitive types is a schema violation. The two
// are distinct so callers can tell a flaky transport from a misbehaving
// model.
func decodeResult(raw, listing string) (*AnalysisResult, error) {
	var generic map[string]any
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}

	if err := checkShape(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseSchema, err)
	}

	var res AnalysisResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseSchema, err)
	}

	normalize(&res, listing)
	return &res, nil
}

// checkShape walks the required structure before the typed unmarshal, so
// a missing block or a string where an integer belongs is reported as the
// schema violation it is instead of silently zeroing a field.
func checkShape(m map[string]any) error {
	summary, err := childObject(m, "summary")
	if err != nil {
		return err
	}
	for _, k := range []string{"title", "price", "location", "layout", "quickSummary"} {
		if err := wantString(summary, "summary", k); err != nil {
			return err
		}
	}

	score, err := childObject(m, "matchScore")
	if err != nil {
		return err
	}
	if err := wantInt(score, "matchScore", "total"); err != nil {
		return err
	}
	if err := wantString(score, "matchScore", "grade"); err != nil {
		return err
	}
	if err := wantString(score, "matchScore", "breakdown"); err != nil {
		return err
	}
	cats, err := childObject(score, "categories")
	if err != nil {
		return fmt.Errorf("matchScore: %v", err)
	}
	for _, k := range []string{"financial", "lifestyle", "condition"} {
		if err := wantInt(cats, "matchScore.categories", k); err != nil {
			return err
		}
	}

	details, err := childObject(m, "details")
	if err != nil {
		return err
	}
	for _, k := range []string{"pros", "cons", "redFlags"} {
		if err := wantClaimList(details, k); err != nil {
			return err
		}
	}
	if err := wantStringList(details, "details", "hiddenGems"); err != nil {
		return err
	}

	market, err := childObject(m, "marketAnalysis")
	if err != nil {
		return err
	}
	for _, k := range []string{"valueVerdict", "investmentPotential", "comparableSales"} {
		if err := wantString(market, "marketAnalysis", k); err != nil {
			return err
		}
	}

	draft, err := childObject(m, "contactDraft")
	if err != nil {
		return err
	}
	for _, k := range []string{"subject", "body"} {
		if err := wantString(draft, "contactDraft", k); err != nil {
			return err
		}
	}

	return nil
}

func childObject(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("missing required field %q", key)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %q is not an object", key)
	}
	return obj, nil
}

func wantString(m map[string]any, parent, key string) error {
	v, ok := m[key]
	if !ok {
		return fmt.Errorf("missing required field %s.%s", parent, key)
	}
	if _, ok := v.(string); !ok {
		return fmt.Errorf("field %s.%s is not a string", parent, key)
	}
	return nil
}

func wantInt(m map[string]any, parent, key string) error {
	v, ok := m[key]
	if !ok {
		return fmt.Errorf("missing required field %s.%s", parent, key)
	}
	n, ok := v.(float64)
	if !ok {
		return fmt.Errorf("field %s.%s is not a number", parent, key)
	}
	if n != float64(int(n)) {
		return fmt.Errorf("field %s.%s is not an integer", parent, key)
	}
	return nil
}

func wantStringList(m map[string]any, parent, key string) error {
	v, ok := m[key]
	if !ok {
		return fmt.Errorf("missing required field %s.%s", parent, key)
	}
	list, ok := v.([]any)
	if !ok {
		return fmt.Errorf("field %s.%s is not an array", parent, key)
	}
	for i, item := range list {
		if _, ok := item.(string); !ok {
			return fmt.Errorf("field %s.%s[%d] is not a string", parent, key, i)
		}
	}
	return nil
}

func wantClaimList(details map[string]any, key string) error {
	v, ok := details[key]
	if !ok {
		return fmt.Errorf("missing required field details.%s", key)
	}
	list, ok := v.([]any)
	if !ok {
		return fmt.Errorf("field details.%s is not an array", key)
	}
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("field details.%s[%d] is not an object", key, i)
		}
		parent := fmt.Sprintf("details.%s[%d]", key, i)
		if err := wantString(obj, parent, "claim"); err != nil {
			return err
		}
		if err := wantString(obj, parent, "confidence"); err != nil {
			return err
		}
		// sourceQuote is the one nullable/omittable field.
		if q, ok := obj["sourceQuote"]; ok && q != nil {
			if _, ok := q.(string); !ok {
				return fmt.Errorf("field %s.sourceQuote is not a string or null", parent)
			}
		}
	}
	return nil
}

// normalize is the data-quality pass: clamp rubric numbers, bucket the
// enum-like strings, and drop any source quote that is not a literal
// substring of the listing (the claim survives, the quote does not).
func normalize(res *AnalysisResult, listing string) {
	res.MatchScore.Total = clampScore(res.MatchScore.Total)
	res.MatchScore.Categories.Financial = clampScore(res.MatchScore.Categories.Financial)
	res.MatchScore.Categories.Lifestyle = clampScore(res.MatchScore.Categories.Lifestyle)
	res.MatchScore.Categories.Condition = clampScore(res.MatchScore.Categories.Condition)

	res.MatchScore.Tier = ParseGradeTier(res.MatchScore.Grade)
	res.MarketAnalysis.Verdict = ParseVerdict(res.MarketAnalysis.ValueVerdict)

	for _, claims := range [][]EvidenceClaim{res.Details.Pros, res.Details.Cons, res.Details.RedFlags} {
		for i := range claims {
			claims[i].Confidence = ParseConfidence(string(claims[i].Confidence))
			if q := claims[i].SourceQuote; q != nil && !strings.Contains(listing, *q) {
				claims[i].SourceQuote = nil
			}
		}
	}
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
