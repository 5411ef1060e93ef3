package usage

import (
	"errors"
	"time"
)

// ErrInsufficientTokens is returned when a user has no analysis tokens
// remaining for the current month.
var ErrInsufficientTokens = errors.New("insufficient analysis tokens")

// ErrAnalysisInFlight is returned when the user already has an analysis
// running. One analysis per user at a time; the lock expires on its own
// if a process dies mid-request.
var ErrAnalysisInFlight = errors.New("analysis already in flight")

// DefaultTokens is the number of analysis tokens granted per month.
const DefaultTokens = 50

// inFlightTTL bounds how long a crashed request can hold the lock.
const inFlightTTL = 2 * time.Minute
