// Package rubric holds the fixed five-section scoring scheme and the
// keyword heuristics that score an agent utterance against it. Scoring is
// deliberately coarse string matching rather than NLP: every awarded point
// traces back to a named rule, so results are deterministic and auditable.
package rubric

import (
	"fmt"
	"strings"

	"github.com/amrassal1991/MockCall/internal/types"
)

// Criterion is one scorable line item inside a section.
type Criterion struct {
	Name              string
	MaxScore          int
	Description       string
	Keywords          []string
	FailureConditions []FailureCondition
}

// Section is one of the five fixed rubric sections. Criterion maxima must
// sum to MaxPoints; the catalog constructor enforces this.
type Section struct {
	ID        types.SectionID
	Name      string
	MaxPoints int
	Criteria  []Criterion
}

// Catalog is the process-wide rubric. Read-only after New; safe to share
// across any number of concurrent call sessions.
type Catalog struct {
	sections []Section
	byID     map[types.SectionID]*Section
	rules    []AutoFailRule
}

// SectionOrder is the fixed evaluation order for a turn.
var SectionOrder = []types.SectionID{
	types.SectionStart,
	types.SectionSolve,
	types.SectionSell,
	types.SectionSummarize,
	types.SectionBehaviors,
}

// MaxTotal is the full-call denominator: 22+27+20+14+17.
const MaxTotal = 100

// New builds and validates the catalog. A rubric that fails validation is a
// configuration bug; callers must treat the error as fatal.
func New() (*Catalog, error) {
	c := &Catalog{
		sections: defaultSections(),
		rules:    defaultAutoFailRules(),
	}
	c.byID = make(map[types.SectionID]*Section, len(c.sections))
	total := 0
	for i := range c.sections {
		s := &c.sections[i]
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("rubric catalog: duplicate section id %q", s.ID)
		}
		if len(s.Criteria) == 0 {
			return nil, fmt.Errorf("rubric catalog: section %q has no criteria", s.ID)
		}
		sum := 0
		for _, crit := range s.Criteria {
			if crit.MaxScore < 0 {
				return nil, fmt.Errorf("rubric catalog: section %q criterion %q has negative max score", s.ID, crit.Name)
			}
			for _, fc := range crit.FailureConditions {
				if _, ok := failureChecks[fc]; !ok {
					return nil, fmt.Errorf("rubric catalog: section %q criterion %q references unknown failure condition %q", s.ID, crit.Name, fc)
				}
			}
			sum += crit.MaxScore
		}
		if sum != s.MaxPoints {
			return nil, fmt.Errorf("rubric catalog: section %q criteria sum to %d, want %d", s.ID, sum, s.MaxPoints)
		}
		total += s.MaxPoints
		c.byID[s.ID] = s
	}
	if total != MaxTotal {
		return nil, fmt.Errorf("rubric catalog: section maxima sum to %d, want %d", total, MaxTotal)
	}
	return c, nil
}

// Section returns the definition for id, or nil when unknown.
func (c *Catalog) Section(id types.SectionID) *Section {
	return c.byID[id]
}

// Sections returns the sections in fixed evaluation order.
func (c *Catalog) Sections() []Section {
	return c.sections
}

// Normalize lowercases text and collapses runs of whitespace so keyword
// matching behaves the same for typed and transcribed input.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func defaultSections() []Section {
	return []Section{
		{
			ID:        types.SectionStart,
			Name:      "Call Opening",
			MaxPoints: 22,
			Criteria: []Criterion{
				{
					Name:        "Professional greeting",
					MaxScore:    6,
					Description: "Open with a greeting that identifies you and the company.",
					Keywords:    []string{"hello", "good morning", "good afternoon", "good evening", "thank you for calling", "this is"},
					FailureConditions: []FailureCondition{
						FailGreetingMissingCompany,
					},
				},
				{
					Name:        "Empathy statement",
					MaxScore:    6,
					Description: "Acknowledge the customer's situation before jumping to process.",
					Keywords:    []string{"understand", "sorry", "apologize", "i hear you", "concern", "frustrating"},
				},
				{
					Name:        "Ownership language",
					MaxScore:    5,
					Description: "Commit personally to seeing the issue through.",
					Keywords:    []string{"i will", "i'll", "let me", "i'm here", "resolve", "take care of"},
					FailureConditions: []FailureCondition{
						FailNoOwnershipLanguage,
					},
				},
				{
					Name:        "Account verification",
					MaxScore:    5,
					Description: "Verify the caller's identity before discussing account details.",
					Keywords:    []string{"verify", "confirm", "account", "security", "identity", "date of birth"},
				},
			},
		},
		{
			ID:        types.SectionSolve,
			Name:      "Issue Resolution",
			MaxPoints: 27,
			Criteria: []Criterion{
				{
					Name:        "Probing questions",
					MaxScore:    7,
					Description: "Ask diagnostic questions instead of guessing at the issue.",
					Keywords:    []string{"what", "when", "how", "can you", "could you", "tell me"},
					FailureConditions: []FailureCondition{
						FailNoProbingQuestion,
					},
				},
				{
					Name:        "Active listening",
					MaxScore:    6,
					Description: "Signal that you heard and understood the customer's answers.",
					Keywords:    []string{"i see", "got it", "okay", "understood", "i understand", "let me make sure"},
				},
				{
					Name:        "Solution offered",
					MaxScore:    8,
					Description: "Present a concrete fix or workaround for the stated issue.",
					Keywords:    []string{"solution", "fix", "resolve", "troubleshoot", "reset", "we can", "try"},
				},
				{
					Name:        "Expectations set",
					MaxScore:    6,
					Description: "Tell the customer what happens next and when.",
					Keywords:    []string{"within", "by the end", "minutes", "hours", "follow up", "ticket"},
				},
			},
		},
		{
			ID:        types.SectionSell,
			Name:      "Sales Offer",
			MaxPoints: 20,
			Criteria: []Criterion{
				{
					Name:        "Transition to offer",
					MaxScore:    6,
					Description: "Bridge naturally from the resolved issue into the offer.",
					Keywords:    []string{"by the way", "i noticed", "did you know", "while i have you", "one more thing"},
				},
				{
					Name:        "Value proposition",
					MaxScore:    8,
					Description: "Lead with what the customer gains, not the product name.",
					Keywords:    []string{"save", "upgrade", "offer", "benefit", "promotion", "deal", "discount"},
				},
				{
					Name:        "Permission-based ask",
					MaxScore:    6,
					Description: "Ask before pitching; accept no gracefully.",
					Keywords:    []string{"would you be interested", "can i share", "is it okay", "would you like", "may i tell you"},
				},
			},
		},
		{
			ID:        types.SectionSummarize,
			Name:      "Call Wrap-Up",
			MaxPoints: 14,
			Criteria: []Criterion{
				{
					Name:        "Resolution recap",
					MaxScore:    6,
					Description: "Restate what was done and what was agreed.",
					Keywords:    []string{"to summarize", "to recap", "we've", "today we", "as discussed", "confirmed"},
				},
				{
					Name:        "Additional assistance offer",
					MaxScore:    4,
					Description: "Invite any remaining questions before closing.",
					Keywords:    []string{"anything else", "further questions", "other questions", "is there anything"},
				},
				{
					Name:        "Professional close",
					MaxScore:    4,
					Description: "End warmly and thank the customer for calling.",
					Keywords:    []string{"thank you for", "have a great", "have a good", "goodbye", "take care"},
				},
			},
		},
		{
			ID:        types.SectionBehaviors,
			Name:      "Professional Behaviors",
			MaxPoints: 17,
			Criteria: []Criterion{
				{
					Name:        "Courtesy",
					MaxScore:    6,
					Description: "Use courteous language throughout the exchange.",
					Keywords:    []string{"please", "thank you", "appreciate", "you're welcome", "my pleasure"},
				},
				{
					Name:        "Positive language",
					MaxScore:    6,
					Description: "Frame answers around what you can do for the customer.",
					Keywords:    []string{"absolutely", "certainly", "definitely", "happy to", "glad to", "great"},
					FailureConditions: []FailureCondition{
						FailNegativeBlockerLanguage,
					},
				},
				{
					Name:        "Clear communication",
					MaxScore:    5,
					Description: "Walk the customer through steps in plain, ordered language.",
					Keywords:    []string{"first", "next", "then", "step", "let me explain", "simply"},
				},
			},
		},
	}
}
