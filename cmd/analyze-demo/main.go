package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"estatematch/internal/ai"
	"estatematch/internal/modules/analysis"
)

// Reads listing text from the file given as the first argument and prints
// the structured evaluation. Useful for poking at prompt changes without
// the full server.
func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}
	if len(os.Args) < 2 {
		log.Fatal("usage: analyze-demo <listing.txt>")
	}

	listing, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("read listing: %v", err)
	}

	ctx := context.Background()
	engine, err := ai.NewGeminiEngine(ctx, apiKey, "")
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}
	defer engine.Close()

	prefs := analysis.PreferenceProfile{
		Mode:         analysis.ModeBuy,
		BudgetMax:    750000,
		MinBedrooms:  2,
		MinBathrooms: 1,
		Priorities: analysis.Priorities{
			Commute:    5,
			Condition:  5,
			Investment: 5,
			Amenities:  5,
		},
	}

	svc := analysis.NewService(engine)
	result, err := svc.Analyze(ctx, string(listing), prefs)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	fmt.Printf("%s — %s (%s)\n", result.Summary.Title, result.Summary.Price, result.Summary.Location)
	fmt.Printf("Score: %d (%s)\n", result.MatchScore.Total, result.MatchScore.Grade)
	fmt.Printf("Verdict: %s\n\n", result.MarketAnalysis.ValueVerdict)

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}
