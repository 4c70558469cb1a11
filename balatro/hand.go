package balatro

// PokerHandKind is the poker hand category the game assigned to a selection.
type PokerHandKind int

const (
	HighCard PokerHandKind = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	FiveOfAKind
	FlushHouse
	FlushFive
)

var handKindNames = []string{
	"", "HighCard", "Pair", "TwoPair", "ThreeOfAKind", "Straight", "Flush",
	"FullHouse", "FourOfAKind", "StraightFlush", "FiveOfAKind", "FlushHouse", "FlushFive",
}

// Display names used by the game itself.
var handKindIndex = nameIndex(handKindNames, map[string]PokerHandKind{
	"Three of a Kind": ThreeOfAKind,
	"Four of a Kind":  FourOfAKind,
	"Five of a Kind":  FiveOfAKind,
})

// AllPokerHandKinds lists every hand kind in ascending base strength.
func AllPokerHandKinds() []PokerHandKind {
	out := make([]PokerHandKind, 0, FlushFive)
	for k := HighCard; k <= FlushFive; k++ {
		out = append(out, k)
	}
	return out
}

func (k PokerHandKind) Valid() bool { return k >= HighCard && k <= FlushFive }

func (k PokerHandKind) String() string { return nameOf(handKindNames, k) }

func (k PokerHandKind) MarshalText() ([]byte, error) {
	return marshalName(handKindNames, "poker hand", k)
}

func (k *PokerHandKind) UnmarshalText(text []byte) error {
	v, err := lookup(handKindIndex, "poker hand", text)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// PokerHand is a classified hand together with its current base values.
type PokerHand struct {
	Kind  PokerHandKind `json:"kind"`
	Level int           `json:"level,omitempty"`
	Chips int           `json:"chips"`
	Mult  int           `json:"mult"`
}

type handLevel struct {
	chips, mult         int
	chipsStep, multStep int
}

// Level 1 values and per-level increments as the game ships them.
var handLevels = [...]handLevel{
	HighCard:      {5, 1, 10, 1},
	Pair:          {10, 2, 15, 1},
	TwoPair:       {20, 2, 20, 1},
	ThreeOfAKind:  {30, 3, 20, 2},
	Straight:      {30, 4, 30, 3},
	Flush:         {35, 4, 15, 2},
	FullHouse:     {40, 4, 25, 2},
	FourOfAKind:   {60, 7, 30, 3},
	StraightFlush: {100, 8, 40, 4},
	FiveOfAKind:   {120, 12, 35, 3},
	FlushHouse:    {140, 14, 40, 4},
	FlushFive:     {160, 16, 50, 3},
}

// BaseHand returns the chips and mult of kind at the given level. Levels
// below 1 are treated as level 1.
func BaseHand(kind PokerHandKind, level int) PokerHand {
	if !kind.Valid() {
		return PokerHand{Kind: kind}
	}
	if level < 1 {
		level = 1
	}
	l := handLevels[kind]
	return PokerHand{
		Kind:  kind,
		Level: level,
		Chips: l.chips + (level-1)*l.chipsStep,
		Mult:  l.mult + (level-1)*l.multStep,
	}
}

// WithDefaults fills zero chips and mult from the level table.
func (h PokerHand) WithDefaults() PokerHand {
	if h.Chips != 0 || h.Mult != 0 {
		return h
	}
	return BaseHand(h.Kind, h.Level)
}
