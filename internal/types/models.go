package types

import "time"

// Conversational stage, estimated from turn count. Coarser than the
// per-section scoring; used for display and coaching hints only.
type Stage string

const (
	StageStart     Stage = "start"
	StageSolve     Stage = "solve"
	StageSell      Stage = "sell"
	StageSummarize Stage = "summarize"
)

type Sentiment string

const (
	SentimentNeutral   Sentiment = "neutral"
	SentimentIrate     Sentiment = "irate"
	SentimentSatisfied Sentiment = "satisfied"
)

// SectionID identifies one of the five fixed rubric sections.
type SectionID string

const (
	SectionStart     SectionID = "START"
	SectionSolve     SectionID = "SOLVE"
	SectionSell      SectionID = "SELL"
	SectionSummarize SectionID = "SUMMARIZE"
	SectionBehaviors SectionID = "BEHAVIORS"
)

// CallContext is the per-session conversational state snapshot handed to the
// scoring functions. It is owned and mutated only by the context tracker; a
// turn's score is reproducible from the snapshot it was given.
type CallContext struct {
	Stage           Stage     `json:"stage"`
	TurnCount       int       `json:"turn_count"`
	Sentiment       Sentiment `json:"customer_sentiment"`
	Authenticated   bool      `json:"authenticated"`
	OptedOutOfSales bool      `json:"opted_out_of_sales"`
}

// NewCallContext returns the default context for a fresh call.
func NewCallContext() CallContext {
	return CallContext{Stage: StageStart, Sentiment: SentimentNeutral}
}

// ContextOverrides lets an external caller pin context fields after the
// automatic per-turn update (e.g. an explicit sales opt-out from the UI).
// Nil fields are left untouched.
type ContextOverrides struct {
	Sentiment       *Sentiment `json:"customer_sentiment,omitempty"`
	Authenticated   *bool      `json:"authenticated,omitempty"`
	OptedOutOfSales *bool      `json:"opted_out_of_sales,omitempty"`
}

// --------------------------------------------
// Per-criterion and per-section scoring output
// --------------------------------------------

type CriterionResult struct {
	Criterion     string `json:"criterion"`
	Score         int    `json:"score"`
	MaxScore      int    `json:"max_score"`
	Justification string `json:"justification"`
	Strength      string `json:"strength,omitempty"`
	Improvement   string `json:"improvement,omitempty"`
}

type SectionResult struct {
	Section      SectionID         `json:"section"`
	Name         string            `json:"name"`
	Score        int               `json:"score"`
	MaxScore     int               `json:"max_score"`
	Applicable   bool              `json:"applicable"`
	Criteria     []CriterionResult `json:"criteria"`
	Strengths    []string          `json:"strengths,omitempty"`
	Improvements []string          `json:"improvements,omitempty"`
}

// --------------------------------------------
// Turn-level coaching output
// --------------------------------------------

type InsightTier string

const (
	InsightSuccess InsightTier = "success"
	InsightWarning InsightTier = "warning"
	InsightError   InsightTier = "error"
)

type Insight struct {
	Tier    InsightTier `json:"tier"`
	Section SectionID   `json:"section,omitempty"`
	Message string      `json:"message"`
}

type Opportunity struct {
	Section     SectionID `json:"section"`
	Criterion   string    `json:"criterion"`
	Description string    `json:"description"`
	Suggestion  string    `json:"suggestion"`
	Impact      string    `json:"impact"` // "high" when fully missed, else "medium"
}

type NextStepHint struct {
	Stage    Stage  `json:"stage"`
	Hint     string `json:"hint"`
	Priority string `json:"priority"`
}

// TurnAnalysis is the full scoring result for one agent/customer exchange.
type TurnAnalysis struct {
	TotalScore       int                         `json:"total_score"`
	MaxTotalScore    int                         `json:"max_total_score"`
	Sections         map[SectionID]SectionResult `json:"sections"`
	Insights         []Insight                   `json:"insights"`
	Opportunities    []Opportunity               `json:"opportunities"`
	NextStepHints    []NextStepHint              `json:"next_step_hints"`
	AutoFailDetected bool                        `json:"auto_fail_detected"`
	AutoFailReason   string                      `json:"auto_fail_reason,omitempty"`
}

// Percentage returns the turn score as an integer percentage of the maximum.
func (a TurnAnalysis) Percentage() int {
	if a.MaxTotalScore == 0 {
		return 0
	}
	return a.TotalScore * 100 / a.MaxTotalScore
}

// TurnRecord is one immutable entry in a session's history.
type TurnRecord struct {
	Turn         int          `json:"turn"`
	AgentText    string       `json:"agent_text"`
	CustomerText string       `json:"customer_text"`
	Timestamp    time.Time    `json:"timestamp"`
	Analysis     TurnAnalysis `json:"analysis"`
}
