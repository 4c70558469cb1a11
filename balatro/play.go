package balatro

import (
	"errors"
	"fmt"
)

// Deck is the run's deck variant.
type Deck int

const (
	RedDeck Deck = iota + 1
	BlueDeck
	YellowDeck
	GreenDeck
	BlackDeck
	MagicDeck
	NebulaDeck
	GhostDeck
	AbandonedDeck
	CheckeredDeck
	ZodiacDeck
	PaintedDeck
	AnaglyphDeck
	PlasmaDeck
	ErraticDeck
)

var deckNames = []string{
	"", "Red", "Blue", "Yellow", "Green", "Black", "Magic", "Nebula", "Ghost",
	"Abandoned", "Checkered", "Zodiac", "Painted", "Anaglyph", "Plasma", "Erratic",
}

var deckIndex = func() map[string]Deck {
	idx := nameIndex[Deck](deckNames, nil)
	for d := RedDeck; d <= ErraticDeck; d++ {
		idx[normalize(deckNames[d]+" Deck")] = d
		idx[normalize("b_"+deckNames[d])] = d
	}
	return idx
}()

func (d Deck) String() string { return nameOf(deckNames, d) }

func (d Deck) MarshalText() ([]byte, error) { return marshalName(deckNames, "deck", d) }

// UnmarshalText accepts "Plasma", "Plasma Deck" or the game key "b_plasma".
func (d *Deck) UnmarshalText(text []byte) error {
	v, err := lookup(deckIndex, "deck", text)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// HandPlays is how often a poker hand kind was played this run.
type HandPlays struct {
	Kind   PokerHandKind `json:"kind"`
	Played int           `json:"played"`
}

// RunInfo is the run-wide context of a play.
type RunInfo struct {
	Deck       Deck        `json:"deck,omitempty"`
	Discards   int         `json:"discards"`
	Hands      int         `json:"hands"`
	Money      int         `json:"money"`
	PokerHands []HandPlays `json:"poker_hands,omitempty"`
}

// Played returns the play counter for kind and whether the run reported one.
func (r RunInfo) Played(kind PokerHandKind) (int, bool) {
	for _, h := range r.PokerHands {
		if h.Kind == kind {
			return h.Played, true
		}
	}
	return 0, false
}

// Play is the snapshot of the "playing a hand" screen.
type Play struct {
	Hand      []HeldCard `json:"hand"`
	Jokers    []Joker    `json:"jokers"`
	PokerHand *PokerHand `json:"poker_hand,omitempty"`
	RunInfo   RunInfo    `json:"run_info"`
}

// Selected returns the face-up selected cards in hand order.
func (p Play) Selected() []PlayingCard {
	var out []PlayingCard
	for _, h := range p.Hand {
		if h.Selected && h.Card != nil {
			out = append(out, *h.Card)
		}
	}
	return out
}

// Held returns the face-up cards that are not selected, in hand order.
func (p Play) Held() []PlayingCard {
	var out []PlayingCard
	for _, h := range p.Hand {
		if !h.Selected && h.Card != nil {
			out = append(out, *h.Card)
		}
	}
	return out
}

// HasJoker reports whether any joker of kind is present.
func (p Play) HasJoker(kind JokerKind) bool {
	for _, j := range p.Jokers {
		if j.Kind == kind {
			return true
		}
	}
	return false
}

// Validate reports malformed cards and jokers. A missing poker hand is not
// a validation error; scoring decides whether it needs one.
func (p Play) Validate() error {
	var errs []error
	for i, h := range p.Hand {
		if h.Card == nil {
			continue
		}
		if err := h.Card.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("hand[%d]: %w", i, err))
		}
	}
	for i, j := range p.Jokers {
		if !j.Kind.Valid() {
			errs = append(errs, fmt.Errorf("jokers[%d]: invalid kind %d", i, int(j.Kind)))
		}
	}
	if p.PokerHand != nil && !p.PokerHand.Kind.Valid() {
		errs = append(errs, fmt.Errorf("poker_hand: invalid kind %d", int(p.PokerHand.Kind)))
	}
	return errors.Join(errs...)
}

// WithHandDefaults returns a copy of p whose poker hand has chips and mult
// filled from the level table when the snapshot reported neither.
func (p Play) WithHandDefaults() Play {
	if p.PokerHand != nil {
		h := p.PokerHand.WithDefaults()
		p.PokerHand = &h
	}
	return p
}
