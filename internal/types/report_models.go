// internal/types/report_models.go
package types

// --------------------------------------------
// FINAL report delivered once per ended call
// --------------------------------------------
type SessionReport struct {
	CallSummary     CallSummary     `json:"call_summary"`
	QualityMetrics  QualityMetrics  `json:"quality_metrics"`
	BusinessMetrics BusinessMetrics `json:"business_metrics"`
	CoachingPlan    CoachingPlan    `json:"coaching_plan"`
}

// --------------------------------------------
// Call summary block
// --------------------------------------------
type CallSummary struct {
	Scenario        string `json:"scenario"`
	DurationSeconds int64  `json:"duration_seconds"`
	TurnCount       int    `json:"turn_count"`
	EndReason       string `json:"end_reason"`
}

// --------------------------------------------
// Quality metrics block
// --------------------------------------------
type QualityMetrics struct {
	AverageScore    float64                        `json:"average_score"`
	Percentage      int                            `json:"percentage"`
	PerformanceTier string                         `json:"performance_tier"`
	Sections        map[SectionID]SectionBreakdown `json:"sections"`
}

type SectionBreakdown struct {
	AverageScore    float64 `json:"average_score"`
	MaxScore        int     `json:"max_score"`
	Percentage      int     `json:"percentage"`
	ApplicableTurns int     `json:"applicable_turns"`
	Trend           string  `json:"trend"`
}

// --------------------------------------------
// Business metrics block
// --------------------------------------------
type BusinessMetrics struct {
	PromoterProbability int    `json:"promoter_probability"` // 0-100
	ResolutionRate      int    `json:"resolution_rate"`      // 0-100
	SalesOpportunity    bool   `json:"sales_opportunity"`
	FirstCallResolution bool   `json:"first_call_resolution"`
	SatisfactionTier    string `json:"satisfaction_tier"`
}

// --------------------------------------------
// Coaching plan block
// --------------------------------------------
type CoachingPlan struct {
	Priority       string      `json:"priority"`
	FocusAreas     []FocusArea `json:"focus_areas"`
	Strengths      []string    `json:"strengths"`
	Recommendation string      `json:"recommendation"`
}

type FocusArea struct {
	Section    SectionID `json:"section"`
	Name       string    `json:"name"`
	Percentage int       `json:"percentage"`
	Advice     string    `json:"advice"`
}
