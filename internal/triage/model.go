package triage

import "time"

// Condition is one ranked possibility for the reported symptoms.
// Confidence is always within [0.40, 0.95].
type Condition struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

// Output is the result of a single evaluation: at most three conditions,
// highest confidence first, plus the independent red-flag verdict.
type Output struct {
	Results  []Condition `json:"results"`
	IsUrgent bool        `json:"is_urgent"`
}

// Evaluation is an Output with match diagnostics attached. Produced fresh
// per call; the engine keeps no state between evaluations.
type Evaluation struct {
	Output

	// TokenCount is the number of tokens extracted from the input.
	TokenCount int

	// MatchCount is the number of (token, keyword) pairs that matched.
	MatchCount int

	// Fallback reports whether no keyword matched and the fixed
	// fallback conditions were used.
	Fallback bool

	// Duration is wall-clock evaluation time in seconds.
	Duration float64
}

// Report is a persisted evaluation.
type Report struct {
	ID         string      `json:"id"`
	Symptoms   string      `json:"symptoms"`
	Age        int         `json:"age"`
	Results    []Condition `json:"results"`
	IsUrgent   bool        `json:"is_urgent"`
	Fallback   bool        `json:"fallback"`
	TokenCount int         `json:"token_count"`
	MatchCount int         `json:"match_count"`
	CreatedAt  time.Time   `json:"created_at"`
	Duration   float64     `json:"duration_seconds"`
}
