// README: End-to-end test for the analyze endpoint quota guard against a running server.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const sampleListing = `Charming 2 bedroom, 1 bathroom character home in East Vancouver.
Asking $799,000. Newly renovated kitchen, roof replaced 2019.
Strata fee $420/month. No pets allowed.`

// TestAnalyzeEndpointQuotaGuard seeds a user with a single analysis token,
// runs one real analysis, and verifies the second request is rejected with
// 429. Requires a running server, postgres, redis and a Gemini key; skipped
// unless ESTATEMATCH_TEST_DSN is set.
func TestAnalyzeEndpointQuotaGuard(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("ESTATEMATCH_TEST_DSN"))
	if dsn == "" {
		t.Skip("ESTATEMATCH_TEST_DSN not set; skipping integration test")
	}
	baseURL := strings.TrimRight(envOrDefault("ESTATEMATCH_API_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 120 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	uid := fmt.Sprintf("u%d", time.Now().UnixNano())
	currentMonth := time.Now().UTC().Format("2006-01")

	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_usage (
			uid TEXT PRIMARY KEY,
			tokens_remaining INT NOT NULL DEFAULT 50,
			last_reset_month TEXT NOT NULL DEFAULT to_char(now(), 'YYYY-MM')
		)
	`); err != nil {
		t.Fatalf("ensure analysis_usage table: %v", err)
	}

	if _, err := db.Exec(ctx, `
		INSERT INTO analysis_usage (uid, tokens_remaining, last_reset_month)
		VALUES ($1, 1, $2)
		ON CONFLICT (uid) DO UPDATE SET
			tokens_remaining = EXCLUDED.tokens_remaining,
			last_reset_month = EXCLUDED.last_reset_month
	`, uid, currentMonth); err != nil {
		t.Fatalf("seed analysis_usage: %v", err)
	}

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()
		_, _ = db.Exec(cleanupCtx, "DELETE FROM analysis_usage WHERE uid = $1", uid)
	})

	waitForAPIReady(t, client, baseURL)

	// First call consumes the only token and should return a full result.
	status1, body1 := callAnalyze(t, client, baseURL, uid)
	if status1 != http.StatusOK {
		t.Fatalf("first call: expected %d, got %d, body=%s", http.StatusOK, status1, string(body1))
	}
	var okResp struct {
		Result struct {
			Summary struct {
				Title string `json:"title"`
			} `json:"summary"`
			MatchScore struct {
				Total int    `json:"total"`
				Grade string `json:"grade"`
			} `json:"matchScore"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body1, &okResp); err != nil {
		t.Fatalf("first call: unmarshal response: %v, raw=%s", err, string(body1))
	}
	if okResp.Result.MatchScore.Total < 0 || okResp.Result.MatchScore.Total > 100 {
		t.Fatalf("first call: score out of range: %d", okResp.Result.MatchScore.Total)
	}
	t.Logf("analysis: %q scored %d (%s)", okResp.Result.Summary.Title, okResp.Result.MatchScore.Total, okResp.Result.MatchScore.Grade)

	// Second call should fail due to token exhaustion.
	status2, body2 := callAnalyze(t, client, baseURL, uid)
	if status2 != http.StatusTooManyRequests {
		t.Fatalf("second call: expected %d, got %d, body=%s", http.StatusTooManyRequests, status2, string(body2))
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT tokens_remaining FROM analysis_usage WHERE uid = $1", uid).Scan(&remaining); err != nil {
		t.Fatalf("query remaining tokens: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected tokens_remaining=0 after 2 calls, got %d", remaining)
	}
}

func callAnalyze(t *testing.T, client *http.Client, baseURL, uid string) (int, []byte) {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"uid":     uid,
		"listing": sampleListing,
		"preferences": map[string]any{
			"mode":          "buy",
			"budget_max":    750000,
			"min_bedrooms":  2,
			"min_bathrooms": 1,
			"location":      "East Vancouver",
			"priorities": map[string]int{
				"commute":    5,
				"condition":  5,
				"investment": 5,
				"amenities":  5,
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/analyze", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, body
}

func waitForAPIReady(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(time.Second)
	}
	t.Fatalf("API at %s not ready", baseURL)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
