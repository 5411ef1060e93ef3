// README: Listing analysis handler (quota-guarded Gemini structured call).
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"estatematch/internal/maps"
	"estatematch/internal/modules/analysis"
	"estatematch/internal/modules/usage"
)

type AnalyzeHandler struct {
	analysis *analysis.Service
	usage    *usage.Service
	commute  *maps.CommuteService // nil when no maps key is configured
}

func NewAnalyzeHandler(analysisSvc *analysis.Service, usageSvc *usage.Service, commuteSvc *maps.CommuteService) *AnalyzeHandler {
	return &AnalyzeHandler{analysis: analysisSvc, usage: usageSvc, commute: commuteSvc}
}

type analyzeReq struct {
	UID         string                     `json:"uid"`
	Listing     string                     `json:"listing"`
	Preferences analysis.PreferenceProfile `json:"preferences"`
}

type analyzeResp struct {
	Result      *analysis.AnalysisResult `json:"result"`
	CommuteNote string                   `json:"commute_note,omitempty"`
}

// Analyze handles POST /api/analyze.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.UID = strings.TrimSpace(req.UID)
	if req.UID == "" || !isValidID(req.UID) {
		writeError(c, http.StatusBadRequest, "invalid uid")
		return
	}
	if strings.TrimSpace(req.Listing) == "" {
		writeAnalysisError(c, analysis.ErrEmptyListing)
		return
	}
	// Input errors must not cost quota: reject bad preferences before the
	// lock and the token deduction.
	if err := req.Preferences.Validate(); err != nil {
		writeAnalysisError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 90*time.Second)
	defer cancel()

	// One analysis per user at a time, then one token per analysis.
	if err := h.usage.BeginAnalysis(ctx, req.UID); err != nil {
		writeAnalysisError(c, err)
		return
	}
	defer h.usage.EndAnalysis(ctx, req.UID)

	if err := h.usage.UseToken(ctx, req.UID); err != nil {
		writeAnalysisError(c, err)
		return
	}

	result, err := h.analysis.Analyze(ctx, req.Listing, req.Preferences)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}

	resp := analyzeResp{Result: result}
	if h.commute != nil {
		resp.CommuteNote = h.commute.Note(ctx, result.Summary.Location, req.Preferences.Location)
	}

	writeJSON(c, http.StatusOK, resp)
}
