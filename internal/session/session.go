package session

import (
	"errors"
	"time"

	"github.com/amrassal1991/MockCall/internal/aggregator"
	"github.com/amrassal1991/MockCall/internal/analyzer"
	"github.com/amrassal1991/MockCall/internal/rubric"
	"github.com/amrassal1991/MockCall/internal/types"
)

// Status is the call lifecycle state: idle until the first start, active
// while turns are being processed, ended once terminated.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// End reasons recorded on the report.
const (
	EndReasonInteractionLimit = "interaction_limit"
	EndReasonNaturalEnding    = "natural_ending"
	EndReasonManual           = "manual"
)

// MaxInteractions caps a call at ten exchanges.
const MaxInteractions = 10

// ErrInvalidState signals an operation issued against the wrong lifecycle
// state (interacting with an idle or ended call, ending twice). These are
// caller programming errors, never swallowed.
var ErrInvalidState = errors.New("invalid session state")

// ScenarioRef labels the externally supplied training scenario. The engine
// treats it as opaque; only the label surfaces in the report.
type ScenarioRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// "thank you for calling" is deliberately absent: it is a greeting keyword
// in the rubric, and a silent customer on turn one must not read as assent
// to hang up. Closers that only occur at the end of a call belong here.
var agentClosingPhrases = []string{
	"anything else i can help",
	"is there anything else",
	"have a great day",
	"have a good day",
	"goodbye",
}

var customerEndingPhrases = []string{
	"no thank you",
	"no thanks",
	"that's all",
	"that is all",
	"nothing else",
	"i'm all set",
	"im all set",
	"goodbye",
	"bye",
}

// CallSession is one simulated call: an ordered turn history plus the
// conversational context, advanced synchronously one interaction at a time.
// It has no internal locking; callers must not issue concurrent operations
// against the same session.
type CallSession struct {
	analyzer *analyzer.TurnAnalyzer

	status    Status
	scenario  ScenarioRef
	startTime time.Time
	endTime   time.Time
	endReason string
	context   types.CallContext
	turns     []types.TurnRecord
	report    *types.SessionReport

	// Overridable in tests.
	now func() time.Time
}

func NewCallSession(a *analyzer.TurnAnalyzer) *CallSession {
	return &CallSession{
		analyzer: a,
		status:   StatusIdle,
		context:  types.NewCallContext(),
		now:      time.Now,
	}
}

func (s *CallSession) Status() Status { return s.status }

func (s *CallSession) Context() types.CallContext { return s.context }

func (s *CallSession) EndReason() string { return s.endReason }

// Turns returns a copy of the turn history.
func (s *CallSession) Turns() []types.TurnRecord {
	out := make([]types.TurnRecord, len(s.turns))
	copy(out, s.turns)
	return out
}

// Start begins a new call. Valid from idle or ended; a previous call's
// history and report are discarded, never recycled.
func (s *CallSession) Start(scenario ScenarioRef) error {
	if s.status == StatusActive {
		return ErrInvalidState
	}
	s.status = StatusActive
	s.scenario = scenario
	s.startTime = s.now()
	s.endTime = time.Time{}
	s.endReason = ""
	s.context = types.NewCallContext()
	s.turns = nil
	s.report = nil
	return nil
}

// ProcessInteraction scores one exchange and appends it to the history, then
// checks the termination conditions: the interaction cap first, natural
// ending second. Ended sessions reject further interactions.
func (s *CallSession) ProcessInteraction(agentText, customerText string, overrides *types.ContextOverrides) (types.TurnRecord, error) {
	if s.status != StatusActive {
		return types.TurnRecord{}, ErrInvalidState
	}

	s.context = Advance(s.context, agentText, customerText, overrides)
	analysis := s.analyzer.AnalyzeTurn(agentText, customerText, s.context)
	rec := types.TurnRecord{
		Turn:         s.context.TurnCount,
		AgentText:    agentText,
		CustomerText: customerText,
		Timestamp:    s.now(),
		Analysis:     analysis,
	}
	s.turns = append(s.turns, rec)

	switch {
	case s.context.TurnCount >= MaxInteractions:
		s.end(EndReasonInteractionLimit)
	case naturalEnding(agentText, customerText):
		s.end(EndReasonNaturalEnding)
	}
	return rec, nil
}

// End terminates an active call and freezes the report. Ending an idle or
// already-ended call is an error.
func (s *CallSession) End(reason string) (types.SessionReport, error) {
	if s.status != StatusActive {
		return types.SessionReport{}, ErrInvalidState
	}
	if reason == "" {
		reason = EndReasonManual
	}
	s.end(reason)
	return *s.report, nil
}

// Report returns the frozen report of an ended call.
func (s *CallSession) Report() (types.SessionReport, error) {
	if s.status != StatusEnded || s.report == nil {
		return types.SessionReport{}, ErrInvalidState
	}
	return *s.report, nil
}

// LiveRecommendation is the in-call coaching readout over the scores so far.
// It uses the coarse half-vs-half comparator, intentionally distinct from the
// report's trend classifier.
func (s *CallSession) LiveRecommendation() string {
	return aggregator.LiveRecommendation(s.scores())
}

func (s *CallSession) end(reason string) {
	s.status = StatusEnded
	s.endTime = s.now()
	s.endReason = reason
	report := aggregator.AggregateSession(
		s.turns,
		s.scenario.Label,
		s.endTime.Sub(s.startTime),
		reason,
	)
	s.report = &report
}

func (s *CallSession) scores() []int {
	out := make([]int, len(s.turns))
	for i, rec := range s.turns {
		out[i] = rec.Analysis.TotalScore
	}
	return out
}

// naturalEnding detects a mutually acknowledged close: the agent offered to
// wrap up and the customer assented (or said nothing), or the customer alone
// signalled they are done.
func naturalEnding(agentText, customerText string) bool {
	agent := rubric.Normalize(agentText)
	customer := rubric.Normalize(customerText)

	customerDone := hasAny(customer, customerEndingPhrases)
	if hasAny(agent, agentClosingPhrases) && (customerDone || customer == "") {
		return true
	}
	return customerDone
}
