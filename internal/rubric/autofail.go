package rubric

// AutoFailCategory labels the family of disqualifying behavior detected.
type AutoFailCategory string

const (
	AutoFailRudeness              AutoFailCategory = "rudeness"
	AutoFailCallAvoidance         AutoFailCategory = "call-avoidance"
	AutoFailInappropriateTransfer AutoFailCategory = "inappropriate-transfer"
)

// AutoFailRule is one disqualifying behavior pattern. A rule fires when any
// phrase in Patterns matches; when Markers is non-empty a marker phrase must
// match as well (the combined-phrase form used for call avoidance).
type AutoFailRule struct {
	Category AutoFailCategory
	Patterns []string
	Markers  []string
	Reason   string
}

// AutoFailResult reports whether an utterance disqualified the turn.
type AutoFailResult struct {
	Detected bool             `json:"detected"`
	Category AutoFailCategory `json:"category,omitempty"`
	Reason   string           `json:"reason,omitempty"`
}

// CheckAutoFail scans agent text for disqualifying behavior. Rules run in
// fixed order (rudeness, call avoidance, inappropriate transfer) and the
// first match wins, so overlapping matches resolve deterministically.
func (c *Catalog) CheckAutoFail(agentText string) AutoFailResult {
	text := Normalize(agentText)
	for _, rule := range c.rules {
		if !containsAny(text, rule.Patterns) {
			continue
		}
		if len(rule.Markers) > 0 && !containsAny(text, rule.Markers) {
			continue
		}
		return AutoFailResult{Detected: true, Category: rule.Category, Reason: rule.Reason}
	}
	return AutoFailResult{}
}

func defaultAutoFailRules() []AutoFailRule {
	return []AutoFailRule{
		{
			Category: AutoFailRudeness,
			Patterns: []string{
				"shut up",
				"idiot",
				"stupid",
				"moron",
				"dumb",
				"don't waste my time",
				"not my fault you",
			},
			Reason: "Rudeness: insulting or hostile language toward the customer",
		},
		{
			Category: AutoFailCallAvoidance,
			Patterns: []string{
				"eating",
				"my lunch",
				"texting",
				"on my phone",
				"playing a game",
				"my break",
				"watching",
			},
			Markers: []string{"while", "during", "right now", "hold on", "one sec"},
			Reason:  "Call avoidance: attending to a personal activity during the call",
		},
		{
			Category: AutoFailInappropriateTransfer,
			Patterns: []string{
				"not my department",
				"not my job",
				"call another number",
				"you'll have to call",
				"someone else's problem",
				"just call the",
			},
			Reason: "Inappropriate transfer: redirecting to another department without helping",
		},
	}
}
