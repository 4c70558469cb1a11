package scoring

import (
	"errors"
	"fmt"

	"github.com/HeadedBranch/auto-balatro/balatro"
)

// Sentinel errors. Typed errors below unwrap to one of these so callers can
// branch with errors.Is.
var (
	ErrMissingHandContext = errors.New("missing hand context")
	ErrUnmodeledEffect    = errors.New("unmodeled effect")
	ErrContractViolation  = errors.New("contract violation")
)

// Phase names the accumulator stage an effect belongs to.
type Phase string

const (
	PhaseScored Phase = "scored"
	PhaseHeld   Phase = "held"
	PhaseJoker  Phase = "joker"
	PhaseDeck   Phase = "deck"
)

// UnmodeledEffectError reports a joker whose effect on this hand is known to
// exist but is not computed.
type UnmodeledEffectError struct {
	Joker  balatro.JokerKind `json:"joker"`
	Phase  Phase             `json:"phase"`
	Reason string            `json:"reason"`
}

func (e *UnmodeledEffectError) Error() string {
	return fmt.Sprintf("%s: %s (%s phase): %s", ErrUnmodeledEffect, e.Joker, e.Phase, e.Reason)
}

func (e *UnmodeledEffectError) Unwrap() error { return ErrUnmodeledEffect }

// ContractViolationError reports input the upstream classifier should never
// have produced.
type ContractViolationError struct {
	Kind   balatro.PokerHandKind
	Reason string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("%s: %s (hand kind %s)", ErrContractViolation, e.Reason, e.Kind)
}

func (e *ContractViolationError) Unwrap() error { return ErrContractViolation }

// ErrorKind maps an engine error to a stable short name for wire messages
// and storage.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingHandContext):
		return "missing_hand_context"
	case errors.Is(err, ErrUnmodeledEffect):
		return "unmodeled_effect"
	case errors.Is(err, ErrContractViolation):
		return "contract_violation"
	default:
		return "internal"
	}
}
