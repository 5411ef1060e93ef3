package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ListingCharLimit is the hard cutoff applied to the listing text before it
// is embedded in the analysis prompt. Plain character truncation, not
// sentence-aware; keeps huge paste-ins inside the model's input limits.
const ListingCharLimit = 30000

// TruncateListing applies the fixed character cap. The cut backs off to
// the nearest rune boundary so a multi-byte character straddling the cap
// never leaves invalid UTF-8 at the prompt tail.
func TruncateListing(listing string, limit int) string {
	if len(listing) <= limit {
		return listing
	}
	for limit > 0 && !utf8.RuneStart(listing[limit]) {
		limit--
	}
	return listing[:limit]
}

// InstructionProfile returns the fixed, request-independent rubric for the
// given mode. It encodes the persona, the grounding discipline and the
// scoring algorithm the model must follow.
func InstructionProfile(mode Mode) string {
	return fmt.Sprintf(`Role: You are a skeptical real estate auditor for the Canadian market. Your duty is to protect the consumer from marketing language, not to sell them the property.

GROUNDING RULES (ABSOLUTE):
1. Any fact not explicitly present in the listing text MUST be reported as "not specified". Never infer or invent.
2. Every pro, con and red flag MUST carry a verbatim "sourceQuote" copied character-for-character from the listing text.
3. If you cannot produce a supporting quote for a claim, DROP the claim. Do not include it unsupported and do not null the quote as a workaround.
4. Claims without a literal supporting quote must never be asserted as fact anywhere in the output.

SCORING ALGORITHM (apply exactly, show your arithmetic in "breakdown"):
- Start at 100.
- Subtract 20 if the asking %s exceeds the user's stated budget.
- Subtract 10 per missing bedroom or bathroom below the user's stated minimums.
- Subtract 15 per severe red flag (structural, legal or financial risk: %s).
- Add 5 to 10 per custom must-have criterion confirmed present in the text.
- Clamp the final total to the range 0-100.

GRADE SCALE (monotonic, apply to the clamped total):
97-100 A+, 90-96 A, 80-89 B, 70-79 C, 60-69 D, below 60 F.

%s

OUTPUT:
- Fill every field of the response schema. Category sub-scores (financial, lifestyle, condition) are each 0-100 integers.
- "confidence" is exactly one of: High, Medium, Low.
- "valueVerdict" is exactly one of: Overpriced, Fair Value, Underpriced/Steal.
- The contact draft is a short, polite inquiry email a buyer could send as-is; reference only facts from the listing.`,
		budgetNoun(mode), severeRedFlags(mode), modeFocus(mode))
}

func budgetNoun(mode Mode) string {
	if mode == ModeRent {
		return "monthly rent"
	}
	return "price"
}

func severeRedFlags(mode Mode) string {
	if mode == ModeRent {
		return "mold, pest history, litigation against the landlord, illegal suite status, building safety orders"
	}
	return "mold, litigation, special assessments or cash calls, pest history, grow-op remediation"
}

func modeFocus(mode Mode) string {
	if mode == ModeRent {
		return `RENTAL FOCUS (mode = rent):
- Which utilities are included vs extra.
- Lease term rigidity and break clauses.
- Damage deposit and any move-in fees.
- Pet policy.
- Laundry access (in-suite vs shared vs none).
- Noise transfer, especially for basement or below-grade units.`
	}
	return `PURCHASE FOCUS (mode = buy):
- Strata/condo fees and special assessments ("cash calls").
- Property tax.
- Leasehold vs freehold status.
- Roof and HVAC age.
- Buried oil tanks.
- "Knob and tube" or aluminum wiring, Kitec plumbing.
- Rental restrictions in strata bylaws, heritage designation.`
}

// UserPrompt builds the deterministic per-request prompt: the preference
// profile followed by the (truncated) listing text.
func UserPrompt(listing string, prefs PreferenceProfile) string {
	var b strings.Builder

	b.WriteString("USER PREFERENCES:\n")
	if prefs.Mode == ModeRent {
		fmt.Fprintf(&b, "- Transaction: renting. Max Monthly Rent: $%.0f CAD\n", prefs.BudgetMax)
	} else {
		fmt.Fprintf(&b, "- Transaction: buying. Max Purchase Price: $%.0f CAD\n", prefs.BudgetMax)
	}
	fmt.Fprintf(&b, "- Minimum: %d Beds, %g Baths\n", prefs.MinBedrooms, prefs.MinBathrooms)
	fmt.Fprintf(&b, "- Desired Location/Area: %s\n", prefs.Location)
	fmt.Fprintf(&b, "- Priority - Commute/Transit: %d/10\n", prefs.Priorities.Commute)
	fmt.Fprintf(&b, "- Priority - Property Condition: %d/10\n", prefs.Priorities.Condition)
	fmt.Fprintf(&b, "- Priority - Investment/Resale: %d/10\n", prefs.Priorities.Investment)
	fmt.Fprintf(&b, "- Priority - Luxury Amenities: %d/10\n", prefs.Priorities.Amenities)
	fmt.Fprintf(&b, "- SPECIFIC MUST-HAVES/NOTES: %q\n", prefs.CustomCriteria)

	b.WriteString("\nTASK:\n")
	b.WriteString("1. Extract key details (price, layout, location).\n")
	b.WriteString("2. Identify pros and cons specifically against the preferences above.\n")
	b.WriteString("3. Detect red flags, including the market-specific ones from your instructions.\n")
	b.WriteString("4. Apply the scoring algorithm and grade scale from your instructions.\n")
	b.WriteString("5. Judge market value and draft the inquiry email.\n")

	b.WriteString("\nRAW LISTING TEXT:\n")
	b.WriteString(TruncateListing(listing, ListingCharLimit))

	return b.String()
}
