package rubric

// FailureCondition names a disqualifying predicate bound to a criterion.
// Any match zeroes that criterion regardless of keyword evidence.
type FailureCondition string

const (
	FailGreetingMissingCompany  FailureCondition = "greeting_missing_company"
	FailNoOwnershipLanguage     FailureCondition = "no_ownership_language"
	FailNoProbingQuestion       FailureCondition = "no_probing_question"
	FailNegativeBlockerLanguage FailureCondition = "negative_blocker_language"
)

type failureCheck struct {
	// matches reports whether the condition fires for normalized agent text.
	matches func(text string) bool
	message string
	advice  string
}

var greetingTokens = []string{"hello", "hi ", "good morning", "good afternoon", "good evening", "thank you for calling"}

var ownershipTokens = []string{"i will", "i'll", "let me", "i'm here", "i can help", "we will", "i am going to", "take care of"}

var probingTokens = []string{"what", "when", "how", "could you", "can you", "tell me"}

var blockerTokens = []string{
	"nothing i can do",
	"can't do anything",
	"not possible",
	"impossible",
	"not my problem",
	"you should have",
}

var failureChecks = map[FailureCondition]failureCheck{
	FailGreetingMissingCompany: {
		matches: func(text string) bool {
			if !containsAny(text, greetingTokens) {
				return false
			}
			return !containsAny(text, []string{"from ", "calling from", " with "})
		},
		message: "greeting does not identify the company",
		advice:  "Name the company in your opening line so the caller knows who they reached.",
	},
	FailNoOwnershipLanguage: {
		matches: func(text string) bool {
			return text != "" && !containsAny(text, ownershipTokens)
		},
		message: "no ownership language",
		advice:  "Use first-person commitments like \"let me\" or \"I will\" so the customer hears you taking the issue on.",
	},
	FailNoProbingQuestion: {
		matches: func(text string) bool {
			if text == "" {
				return false
			}
			if containsAny(text, []string{"?"}) {
				return false
			}
			return !containsAny(text, probingTokens)
		},
		message: "no probing question present",
		advice:  "Ask at least one diagnostic question before proposing a fix.",
	},
	FailNegativeBlockerLanguage: {
		matches: func(text string) bool {
			return containsAny(text, blockerTokens)
		},
		message: "negative blocker language used",
		advice:  "Replace \"can't\" framings with what you are able to do for the customer.",
	},
}
