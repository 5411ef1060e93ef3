// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"estatematch/internal/modules/analysis"
	"estatematch/internal/modules/chat"
	"estatematch/internal/modules/usage"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID ensures IDs are alphanumeric and at most 32 chars (matches the
// session id generator).
func isValidID(v string) bool {
	if len(v) == 0 || len(v) > 32 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analysis.ErrEmptyListing), errors.Is(err, analysis.ErrInvalidPreferences):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, usage.ErrInsufficientTokens):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, usage.ErrAnalysisInFlight):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, analysis.ErrEngine),
		errors.Is(err, analysis.ErrResponseParse),
		errors.Is(err, analysis.ErrResponseSchema):
		// One opaque category upward: the caller retries by resubmitting.
		writeError(c, http.StatusBadGateway, "analysis failed, try again or simplify input")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyListing), errors.Is(err, chat.ErrEmptyMessage):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, chat.ErrSessionNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
