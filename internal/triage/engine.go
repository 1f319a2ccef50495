package triage

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/quicktriage/internal/knowledge"
)

const (
	// MaxResults caps the ranked condition list.
	MaxResults = 3

	// Confidence mapping: raw scores normalize into [floor, ceiling].
	// The top-scoring condition lands exactly on the ceiling.
	confFloor   = 0.40
	confCeiling = 0.95
	confSpan    = 0.55
)

// Fixed fallback conditions used when no keyword matches any token.
// Raw scores 0.5 and 0.3 normalize to confidences 0.95 and 0.73.
const (
	FallbackPrimary   = "Viral infection"
	FallbackSecondary = "Non-specific symptoms"

	fallbackPrimarySummary   = "Symptoms may be viral; rest, fluids, and re-evaluate if worsening."
	fallbackSecondarySummary = "Symptoms are non-specific; follow-up recommended."

	fallbackPrimaryScore   = 0.5
	fallbackSecondaryScore = 0.3
)

// EngineHooks receives instrumentation callbacks from the engine.
// All fields are optional.
type EngineHooks struct {
	OnEvaluate func(e *Evaluation)
}

// Engine matches symptom tokens against the knowledge base, scores and
// ranks candidate conditions, and runs the red-flag classifier. It holds
// only the immutable knowledge base, so a single Engine is safe for
// concurrent use; every call allocates its own scratch state.
type Engine struct {
	kb     *knowledge.Base
	logger log.Logger
	hooks  EngineHooks
}

// NewEngine creates an engine over the given knowledge base.
func NewEngine(kb *knowledge.Base, logger log.Logger, hooks EngineHooks) *Engine {
	if logger == nil {
		logger = log.Nop()
	}
	return &Engine{
		kb:     kb,
		logger: logger,
		hooks:  hooks,
	}
}

// matches implements the keyword match rule: a token matches a keyword
// when either contains the other or they are equal. This deliberately
// preserves the original policy for multi-word keywords: the keyword
// "shortness of breath" matches any token that is a substring of it
// (including "of"), while the full phrase can never appear as a single
// token because the tokenizer splits on spaces. See TestEvaluate_MultiWordKeywordPolicy.
func matches(token, keyword string) bool {
	return token == keyword ||
		strings.Contains(token, keyword) ||
		strings.Contains(keyword, token)
}

// Evaluate tokenizes the symptom text, scores candidate conditions, and
// classifies urgency. It is a total function: empty input, unmatched
// input, and out-of-range ages all produce a well-formed Evaluation,
// never an error. Identical inputs yield identical outputs.
func (e *Engine) Evaluate(symptoms string, age int) *Evaluation {
	start := time.Now()

	tokens := Tokenize(symptoms)
	keywords := e.kb.Keywords()

	scores := make(map[string]float64)
	summaries := make(map[string]string)
	var matchCount int

	for _, token := range tokens {
		for _, keyword := range keywords {
			if !matches(token, keyword) {
				continue
			}
			matchCount++
			for _, cand := range e.kb.CandidatesFor(keyword) {
				scores[cand.Name] += 1.0
				// last write wins; summaries are constant per condition
				summaries[cand.Name] = cand.Summary
			}
		}
	}

	fallback := len(scores) == 0
	if fallback {
		scores[FallbackPrimary] = fallbackPrimaryScore
		summaries[FallbackPrimary] = fallbackPrimarySummary
		scores[FallbackSecondary] = fallbackSecondaryScore
		summaries[FallbackSecondary] = fallbackSecondarySummary
	}

	ev := &Evaluation{
		Output: Output{
			Results:  e.rank(scores, summaries),
			IsUrgent: Urgent(tokens, age),
		},
		TokenCount: len(tokens),
		MatchCount: matchCount,
		Fallback:   fallback,
		Duration:   time.Since(start).Seconds(),
	}

	if e.hooks.OnEvaluate != nil {
		e.hooks.OnEvaluate(ev)
	}

	return ev
}

// rank normalizes raw scores into confidences and returns the top
// conditions, highest raw score first. Ties break by knowledge base
// authoring order, then alphabetically, so output is deterministic.
func (e *Engine) rank(scores map[string]float64, summaries map[string]string) []Condition {
	names := make([]string, 0, len(scores))
	var maxScore float64
	for name, sc := range scores {
		names = append(names, name)
		if sc > maxScore {
			maxScore = sc
		}
	}

	sort.Slice(names, func(i, j int) bool {
		si, sj := scores[names[i]], scores[names[j]]
		if si != sj {
			return si > sj
		}
		ri, rj := e.kb.Rank(names[i]), e.kb.Rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})

	if len(names) > MaxResults {
		names = names[:MaxResults]
	}

	results := make([]Condition, len(names))
	for i, name := range names {
		results[i] = Condition{
			Name:       name,
			Confidence: math.Min(confCeiling, confFloor+scores[name]/maxScore*confSpan),
			Summary:    summaries[name],
		}
	}
	return results
}
