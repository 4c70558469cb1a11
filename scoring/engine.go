// Package scoring recomputes the score of a played hand from a read-only
// snapshot of the play screen.
//
// Scoring runs in four phases: scored cards, held cards, jokers, then the
// deck's post-processing rule. Every call works on fresh local state, so an
// Engine may be shared between goroutines.
package scoring

import (
	"fmt"
	"math"

	"github.com/HeadedBranch/auto-balatro/balatro"
)

// Options control how the engine reacts to effects it does not model.
type Options struct {
	// ApproximateUnmodeled treats unmodeled effects as no-ops and lists
	// them in Result.Unmodeled instead of failing the call.
	ApproximateUnmodeled bool
}

// Engine scores plays. The zero value is a strict engine.
type Engine struct {
	opts Options
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Score scores play with a strict engine.
func Score(play balatro.Play) (Result, error) {
	return (&Engine{}).Score(play)
}

// Step is one entry of the chip/mult trace.
type Step struct {
	Phase  Phase   `json:"phase"`
	Source string  `json:"source"`
	Op     string  `json:"op"`
	Amount float64 `json:"amount"`
	Chips  float64 `json:"chips"`
	Mult   float64 `json:"mult"`
}

// Result is the outcome of scoring one play.
type Result struct {
	Kind      balatro.PokerHandKind  `json:"kind,omitempty"`
	Chips     float64                `json:"chips"`
	Mult      float64                `json:"mult"`
	Total     float64                `json:"total"`
	Scored    []balatro.PlayingCard  `json:"scored,omitempty"`
	Trace     []Step                 `json:"trace,omitempty"`
	Unmodeled []UnmodeledEffectError `json:"unmodeled,omitempty"`
}

// Score computes the score play will yield. An empty selection scores 0
// without looking at anything else.
func (e *Engine) Score(play balatro.Play) (Result, error) {
	selected := play.Selected()
	if len(selected) == 0 {
		return Result{}, nil
	}
	if play.PokerHand == nil {
		return Result{}, fmt.Errorf("%w: play has no classified poker hand", ErrMissingHandContext)
	}
	hand := *play.PokerHand

	var idx []int
	if play.HasJoker(balatro.Splash) {
		idx = allIndices(len(selected))
	} else {
		var err error
		idx, err = Resolve(selected, hand.Kind, ResolveOptionsFor(play.Jokers))
		if err != nil {
			return Result{}, err
		}
	}
	scored := make([]balatro.PlayingCard, len(idx))
	for i, j := range idx {
		scored[i] = selected[j]
	}

	a := newAccumulator(&play, hand, selected, e.opts)
	for _, phase := range []func() error{
		func() error { return a.scoreCards(scored) },
		a.scoreHeld,
		a.scoreJokers,
		a.applyDeck,
	} {
		if err := phase(); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Kind:      hand.Kind,
		Chips:     a.chips,
		Mult:      a.mult,
		Total:     a.chips * a.mult,
		Scored:    scored,
		Trace:     a.trace,
		Unmodeled: a.unmodeled,
	}, nil
}

// accumulator is the mutable state of one Score call.
type accumulator struct {
	play     *balatro.Play
	kind     balatro.PokerHandKind
	selected []balatro.PlayingCard
	held     []balatro.PlayingCard

	chips, mult float64
	// vampireBonus collects the enhancements Vampire consumed during the
	// scored-card phase; it is folded into Vampire's own xmult later.
	vampireBonus float64

	vampire    bool
	smeared    bool
	pareidolia bool
	// photographed is set once the first scored face card doubled mult.
	photographed bool

	approximate bool
	phase       Phase
	trace       []Step
	unmodeled   []UnmodeledEffectError
	err         error
}

func newAccumulator(play *balatro.Play, hand balatro.PokerHand, selected []balatro.PlayingCard, opts Options) *accumulator {
	a := &accumulator{
		play:        play,
		kind:        hand.Kind,
		selected:    selected,
		chips:       float64(hand.Chips),
		mult:        float64(hand.Mult),
		vampire:     play.HasJoker(balatro.Vampire),
		smeared:     play.HasJoker(balatro.SmearedJoker),
		pareidolia:  play.HasJoker(balatro.Pareidolia),
		approximate: opts.ApproximateUnmodeled,
	}
	for _, c := range play.Held() {
		a.held = append(a.held, c)
		// Red seals retrigger held-in-hand effects once.
		if c.Seal == balatro.SealRed {
			a.held = append(a.held, c)
		}
	}
	return a
}

func (a *accumulator) record(src, op string, amount float64) {
	a.trace = append(a.trace, Step{Phase: a.phase, Source: src, Op: op, Amount: amount, Chips: a.chips, Mult: a.mult})
}

func (a *accumulator) addChips(src string, v float64) {
	a.chips += v
	a.record(src, "+chips", v)
}

func (a *accumulator) addMult(src string, v float64) {
	a.mult += v
	a.record(src, "+mult", v)
}

func (a *accumulator) mulMult(src string, v float64) {
	a.mult *= v
	a.record(src, "xmult", v)
}

// unmodeledEffect either records the gap or fails the call, depending on
// the engine options. Repeated reports for one joker and phase collapse.
func (a *accumulator) unmodeledEffect(kind balatro.JokerKind, reason string) {
	if a.err != nil {
		return
	}
	for _, u := range a.unmodeled {
		if u.Joker == kind && u.Phase == a.phase {
			return
		}
	}
	e := UnmodeledEffectError{Joker: kind, Phase: a.phase, Reason: reason}
	if !a.approximate {
		a.err = &e
		return
	}
	a.unmodeled = append(a.unmodeled, e)
}

func (a *accumulator) fail(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (a *accumulator) hasSuit(c balatro.PlayingCard, s balatro.Suit) bool {
	return HasSuit(c, s, a.smeared)
}

func (a *accumulator) isFace(c balatro.PlayingCard) bool {
	return a.pareidolia || c.Rank.IsFace()
}

func cardSource(c balatro.PlayingCard) string { return "card " + c.String() }

func jokerSource(j balatro.Joker) string { return "joker " + j.Kind.String() }

func (a *accumulator) scoreCards(scored []balatro.PlayingCard) error {
	a.phase = PhaseScored
	for _, c := range scored {
		src := cardSource(c)
		if c.Enhancement != balatro.EnhancementNone {
			if a.vampire {
				a.vampireBonus += 0.1
				a.record(src, "vampire", 0.1)
			} else {
				a.applyEnhancement(src, c.Enhancement)
			}
		}
		switch c.Edition {
		case balatro.EditionFoil:
			a.addChips(src, 50)
		case balatro.EditionHolographic:
			a.addChips(src, 10)
		case balatro.EditionPolychrome:
			a.mulMult(src, 1.5)
		}
		for _, j := range a.play.Jokers {
			eff, err := effectOf(a.kind, j.Kind)
			if err != nil {
				return err
			}
			if eff.scored != nil {
				eff.scored(a, j, c)
			}
			if a.err != nil {
				return a.err
			}
		}
		a.addChips(src, c.Rank.Chips())
	}
	return nil
}

func (a *accumulator) applyEnhancement(src string, e balatro.Enhancement) {
	switch e {
	case balatro.EnhancementBonus:
		a.addChips(src, 30)
	case balatro.EnhancementGlass:
		a.mulMult(src, 2)
	case balatro.EnhancementMult:
		a.addMult(src, 4)
	case balatro.EnhancementLucky:
		a.addMult(src, 20)
	case balatro.EnhancementStone:
		a.addChips(src, 50)
	}
}

func (a *accumulator) scoreHeld() error {
	a.phase = PhaseHeld
	for _, c := range a.held {
		if c.Enhancement == balatro.EnhancementSteel {
			a.mulMult(cardSource(c), 1.5)
		}
		for _, j := range a.play.Jokers {
			eff, err := effectOf(a.kind, j.Kind)
			if err != nil {
				return err
			}
			if eff.held != nil {
				eff.held(a, j, c)
			}
			if a.err != nil {
				return a.err
			}
		}
	}
	return nil
}

func (a *accumulator) scoreJokers() error {
	a.phase = PhaseJoker
	for _, j := range a.play.Jokers {
		eff, err := effectOf(a.kind, j.Kind)
		if err != nil {
			return err
		}
		if eff.global != nil {
			eff.global(a, j)
		}
		if a.err != nil {
			return a.err
		}
		src := jokerSource(j)
		switch j.Edition {
		case balatro.JokerEditionFoil:
			a.addChips(src+" (Foil)", 50)
		case balatro.JokerEditionHolographic:
			a.addMult(src+" (Holographic)", 10)
		case balatro.JokerEditionPolychrome:
			a.mulMult(src+" (Polychrome)", 1.5)
		}
	}
	return nil
}

func (a *accumulator) applyDeck() error {
	a.phase = PhaseDeck
	if a.play.RunInfo.Deck == balatro.PlasmaDeck {
		v := PlasmaBalance(a.chips, a.mult)
		a.chips, a.mult = v, v
		a.record("deck Plasma", "balance", v)
	}
	return nil
}

// PlasmaBalance is the Plasma deck rule: chips and mult both become the
// floored midpoint of the two.
func PlasmaBalance(chips, mult float64) float64 {
	return math.Floor((chips + mult) / 2)
}
