// Package thinking implements the multi-stage probability pipeline behind
// the think-thoroughly agent: a question is expanded into sub-scenarios,
// each scenario is researched and scored independently, estimates are
// refined over a fixed number of rounds, and a final decision is
// aggregated from the surviving estimates.
package thinking

import (
	"encoding/json"
	"fmt"
	"math"
)

// Scenarios is the named list-of-strings schema the scenario generator
// must return.
type Scenarios struct {
	Scenarios []string `json:"scenarios"`
}

// Decision values for an Answer. Empty means the model could not commit
// either way.
const (
	DecisionYes          = "y"
	DecisionNo           = "n"
	DecisionUndetermined = ""
)

// Answer is the structured estimate for one scenario: complementary
// yes/no probabilities plus a confidence in the estimate itself.
type Answer struct {
	Reasoning  string  `json:"reasoning"`
	Decision   string  `json:"decision"`
	PYes       float64 `json:"p_yes"`
	PNo        float64 `json:"p_no"`
	Confidence float64 `json:"confidence"`
}

// probTolerance bounds how far p_yes + p_no may drift from 1 before the
// answer is rejected as malformed.
const probTolerance = 0.05

// Validate checks the answer against the schema invariants.
func (a Answer) Validate() error {
	switch a.Decision {
	case DecisionYes, DecisionNo, DecisionUndetermined:
	default:
		return fmt.Errorf("decision must be %q, %q, or empty, got %q", DecisionYes, DecisionNo, a.Decision)
	}
	if a.PYes < 0 || a.PYes > 1 {
		return fmt.Errorf("p_yes out of range: %v", a.PYes)
	}
	if a.PNo < 0 || a.PNo > 1 {
		return fmt.Errorf("p_no out of range: %v", a.PNo)
	}
	if math.Abs(a.PYes+a.PNo-1) > probTolerance {
		return fmt.Errorf("p_yes + p_no must sum to 1, got %v", a.PYes+a.PNo)
	}
	if a.Confidence < 0 || a.Confidence > 1 {
		return fmt.Errorf("confidence out of range: %v", a.Confidence)
	}
	return nil
}

// ParseResult is the tagged result of validating model output against the
// Answer schema. Callers branch on Parsed instead of catching errors
// across component boundaries.
type ParseResult struct {
	Parsed bool
	Answer Answer
	Raw    json.RawMessage
	Err    error
}

// ParseAnswer unmarshals and validates raw model output.
func ParseAnswer(raw json.RawMessage) ParseResult {
	var a Answer
	if err := json.Unmarshal(raw, &a); err != nil {
		return ParseResult{Raw: raw, Err: err}
	}
	if err := a.Validate(); err != nil {
		return ParseResult{Raw: raw, Err: err}
	}
	return ParseResult{Parsed: true, Answer: a, Raw: raw}
}
