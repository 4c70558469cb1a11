package balatro

import "fmt"

// Rank is a playing card rank. Values run 2..14 so that Ace sorts high.
type Rank int

const (
	RankTwo Rank = iota + 2
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
)

var rankNames = []string{
	RankTwo: "Two", RankThree: "Three", RankFour: "Four", RankFive: "Five",
	RankSix: "Six", RankSeven: "Seven", RankEight: "Eight", RankNine: "Nine",
	RankTen: "Ten", RankJack: "Jack", RankQueen: "Queen", RankKing: "King", RankAce: "Ace",
}

var rankIndex = nameIndex(rankNames, map[string]Rank{
	"2": RankTwo, "3": RankThree, "4": RankFour, "5": RankFive, "6": RankSix,
	"7": RankSeven, "8": RankEight, "9": RankNine, "10": RankTen, "T": RankTen,
	"J": RankJack, "Q": RankQueen, "K": RankKing, "A": RankAce,
})

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool { return r >= RankTwo && r <= RankAce }

// Next returns the successor rank used for straight detection. Ace wraps to
// Two so a low-ace run (A-2-3-4-5) is consecutive.
func (r Rank) Next() Rank {
	if r == RankAce {
		return RankTwo
	}
	return r + 1
}

// Chips is the base chip value a scored card of this rank contributes.
func (r Rank) Chips() float64 {
	switch {
	case r == RankAce:
		return 11
	case r >= RankTen:
		return 10
	default:
		return float64(r)
	}
}

// IsFace reports whether r is a Jack, Queen or King.
func (r Rank) IsFace() bool { return r == RankJack || r == RankQueen || r == RankKing }

func (r Rank) String() string { return nameOf(rankNames, r) }

func (r Rank) MarshalText() ([]byte, error) { return marshalName(rankNames, "rank", r) }

func (r *Rank) UnmarshalText(text []byte) error {
	v, err := lookup(rankIndex, "rank", text)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Suit is a playing card suit. The zero value is not a suit.
type Suit int

const (
	SuitSpades Suit = iota + 1
	SuitHearts
	SuitClubs
	SuitDiamonds
)

var suitNames = []string{"", "Spades", "Hearts", "Clubs", "Diamonds"}

var suitIndex = nameIndex(suitNames, map[string]Suit{
	"S": SuitSpades, "H": SuitHearts, "C": SuitClubs, "D": SuitDiamonds,
})

// AllSuits lists the four suits.
var AllSuits = [...]Suit{SuitSpades, SuitHearts, SuitClubs, SuitDiamonds}

func (s Suit) Valid() bool { return s >= SuitSpades && s <= SuitDiamonds }

// IsRed reports whether s is Hearts or Diamonds.
func (s Suit) IsRed() bool { return s == SuitHearts || s == SuitDiamonds }

func (s Suit) String() string { return nameOf(suitNames, s) }

func (s Suit) MarshalText() ([]byte, error) { return marshalName(suitNames, "suit", s) }

func (s *Suit) UnmarshalText(text []byte) error {
	v, err := lookup(suitIndex, "suit", text)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Enhancement is the optional enhancement tag on a playing card.
type Enhancement int

const (
	EnhancementNone Enhancement = iota
	EnhancementBonus
	EnhancementMult
	EnhancementWild
	EnhancementGlass
	EnhancementSteel
	EnhancementStone
	EnhancementGold
	EnhancementLucky
)

var enhancementNames = []string{"", "Bonus", "Mult", "Wild", "Glass", "Steel", "Stone", "Gold", "Lucky"}

var enhancementIndex = nameIndex(enhancementNames, map[string]Enhancement{"": EnhancementNone, "None": EnhancementNone})

func (e Enhancement) String() string {
	if e == EnhancementNone {
		return "None"
	}
	return nameOf(enhancementNames, e)
}

func (e Enhancement) MarshalText() ([]byte, error) {
	if e == EnhancementNone {
		return []byte{}, nil
	}
	return marshalName(enhancementNames, "enhancement", e)
}

func (e *Enhancement) UnmarshalText(text []byte) error {
	v, err := lookup(enhancementIndex, "enhancement", text)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Edition is the optional edition on a playing card.
type Edition int

const (
	EditionNone Edition = iota
	EditionFoil
	EditionHolographic
	EditionPolychrome
)

var editionNames = []string{"", "Foil", "Holographic", "Polychrome"}

var editionIndex = nameIndex(editionNames, map[string]Edition{"": EditionNone, "None": EditionNone, "Holo": EditionHolographic})

func (e Edition) String() string {
	if e == EditionNone {
		return "None"
	}
	return nameOf(editionNames, e)
}

func (e Edition) MarshalText() ([]byte, error) {
	if e == EditionNone {
		return []byte{}, nil
	}
	return marshalName(editionNames, "edition", e)
}

func (e *Edition) UnmarshalText(text []byte) error {
	v, err := lookup(editionIndex, "edition", text)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Seal is the optional seal on a playing card.
type Seal int

const (
	SealNone Seal = iota
	SealGold
	SealRed
	SealBlue
	SealPurple
)

var sealNames = []string{"", "Gold", "Red", "Blue", "Purple"}

var sealIndex = nameIndex(sealNames, map[string]Seal{"": SealNone, "None": SealNone})

func (s Seal) String() string {
	if s == SealNone {
		return "None"
	}
	return nameOf(sealNames, s)
}

func (s Seal) MarshalText() ([]byte, error) {
	if s == SealNone {
		return []byte{}, nil
	}
	return marshalName(sealNames, "seal", s)
}

func (s *Seal) UnmarshalText(text []byte) error {
	v, err := lookup(sealIndex, "seal", text)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// PlayingCard is a card as read from the game. It is treated as immutable.
type PlayingCard struct {
	Rank        Rank        `json:"rank"`
	Suit        Suit        `json:"suit"`
	Enhancement Enhancement `json:"enhancement,omitempty"`
	Edition     Edition     `json:"edition,omitempty"`
	Seal        Seal        `json:"seal,omitempty"`
}

// Validate checks that rank and suit are set.
func (c PlayingCard) Validate() error {
	if !c.Rank.Valid() {
		return fmt.Errorf("balatro: card has invalid rank %d", int(c.Rank))
	}
	if !c.Suit.Valid() {
		return fmt.Errorf("balatro: card has invalid suit %d", int(c.Suit))
	}
	return nil
}

func (c PlayingCard) String() string {
	s := c.Rank.String() + " of " + c.Suit.String()
	if c.Enhancement != EnhancementNone {
		s += " [" + c.Enhancement.String() + "]"
	}
	if c.Edition != EditionNone {
		s += " (" + c.Edition.String() + ")"
	}
	if c.Seal != SealNone {
		s += " {" + c.Seal.String() + " seal}"
	}
	return s
}

// HeldCard is one slot of the hand. Card is nil for a face-down card.
type HeldCard struct {
	Card     *PlayingCard `json:"card"`
	Selected bool         `json:"selected"`
}
