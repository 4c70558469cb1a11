package scoring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HeadedBranch/auto-balatro/balatro"
)

func TestScoreEmptySelection(t *testing.T) {
	p := balatro.Play{Hand: []balatro.HeldCard{{Card: &balatro.PlayingCard{Rank: balatro.RankAce, Suit: balatro.SuitSpades}}}}
	res, err := Score(p)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Trace)
}

func TestScoreMissingPokerHand(t *testing.T) {
	p := newPlay(balatro.Pair, kingPair(), nil)
	p.PokerHand = nil
	_, err := Score(p)
	require.ErrorIs(t, err, ErrMissingHandContext)
	assert.Equal(t, "missing_hand_context", ErrorKind(err))
}

func TestScoreBaseHands(t *testing.T) {
	tests := []struct {
		name     string
		kind     balatro.PokerHandKind
		selected []balatro.PlayingCard
		held     []balatro.PlayingCard
		jokers   []balatro.Joker
		chips    float64
		mult     float64
		total    float64
	}{
		{
			name:     "flush of hearts",
			kind:     balatro.Flush,
			selected: heartFlush(),
			chips:    65, mult: 4, total: 260,
		},
		{
			name:     "pair of kings",
			kind:     balatro.Pair,
			selected: kingPair(),
			chips:    30, mult: 2, total: 60,
		},
		{
			name: "broken straight keeps only the stone card",
			kind: balatro.Straight,
			selected: []balatro.PlayingCard{
				card(balatro.RankTwo, balatro.SuitSpades),
				card(balatro.RankThree, balatro.SuitHearts),
				card(balatro.RankFour, balatro.SuitClubs),
				card(balatro.RankFive, balatro.SuitDiamonds),
				enhanced(card(balatro.RankSeven, balatro.SuitSpades), balatro.EnhancementStone),
			},
			chips: 87, mult: 4, total: 348,
		},
		{
			name:     "steel card held",
			kind:     balatro.Pair,
			selected: kingPair(),
			held:     []balatro.PlayingCard{enhanced(card(balatro.RankFour, balatro.SuitClubs), balatro.EnhancementSteel)},
			chips:    30, mult: 3, total: 90,
		},
		{
			name:     "red seal steel card held",
			kind:     balatro.Pair,
			selected: kingPair(),
			held: []balatro.PlayingCard{{
				Rank: balatro.RankFour, Suit: balatro.SuitClubs,
				Enhancement: balatro.EnhancementSteel, Seal: balatro.SealRed,
			}},
			chips: 30, mult: 4.5, total: 135,
		},
		{
			name:     "raised fist on lowest held card",
			kind:     balatro.Pair,
			selected: kingPair(),
			held:     []balatro.PlayingCard{card(balatro.RankNine, balatro.SuitDiamonds), card(balatro.RankFive, balatro.SuitClubs)},
			jokers:   []balatro.Joker{joker(balatro.RaisedFist)},
			chips:    30, mult: 7, total: 210,
		},
		{
			name:     "polychrome joker after its own effect",
			kind:     balatro.Pair,
			selected: kingPair(),
			jokers:   []balatro.Joker{{Kind: balatro.PlainJoker, Edition: balatro.JokerEditionPolychrome}},
			chips:    30, mult: 9, total: 270,
		},
		{
			name:     "shoot the moon on held queens",
			kind:     balatro.Pair,
			selected: kingPair(),
			held:     []balatro.PlayingCard{card(balatro.RankQueen, balatro.SuitClubs), card(balatro.RankQueen, balatro.SuitHearts)},
			jokers:   []balatro.Joker{joker(balatro.ShootTheMoon)},
			chips:    30, mult: 28, total: 840,
		},
		{
			name:     "hand-gated jokers",
			kind:     balatro.Pair,
			selected: kingPair(),
			jokers:   []balatro.Joker{joker(balatro.JollyJoker), joker(balatro.SlyJoker), joker(balatro.CrazyJoker), joker(balatro.TheDuo)},
			chips:    80, mult: 20, total: 1600,
		},
		{
			name:     "lusty joker per scored heart",
			kind:     balatro.Flush,
			selected: heartFlush(),
			jokers:   []balatro.Joker{joker(balatro.LustyJoker)},
			chips:    65, mult: 19, total: 1235,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Score(newPlay(tt.kind, tt.selected, tt.held, tt.jokers...))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, res.Kind)
			assert.InDelta(t, tt.chips, res.Chips, 1e-9)
			assert.InDelta(t, tt.mult, res.Mult, 1e-9)
			assert.InDelta(t, tt.total, res.Total, 1e-9)
		})
	}
}

func TestScorePlasmaDeck(t *testing.T) {
	p := newPlay(balatro.Flush, heartFlush(), nil)
	p.RunInfo.Deck = balatro.PlasmaDeck
	res, err := Score(p)
	require.NoError(t, err)
	assert.Equal(t, 34.0, res.Chips)
	assert.Equal(t, 34.0, res.Mult)
	assert.Equal(t, 1156.0, res.Total)
}

func TestPlasmaBalanceFloors(t *testing.T) {
	assert.Equal(t, 34.0, PlasmaBalance(65, 4))
	assert.Equal(t, 35.0, PlasmaBalance(65, 5))
	assert.Equal(t, 0.0, PlasmaBalance(0, 0))
	assert.Equal(t, 34.0, PlasmaBalance(65.5, 4))
}

func TestPlasmaBalanceIdempotent(t *testing.T) {
	for _, in := range [][2]float64{{65, 4}, {65.5, 4}, {65, 5}, {0, 0}, {1e6, 3.25}} {
		once := PlasmaBalance(in[0], in[1])
		assert.Equal(t, once, PlasmaBalance(once, once), "chips=%v mult=%v", in[0], in[1])
	}

	// Chips and mult already equal before the deck step: Plasma changes nothing.
	p := newPlay(balatro.Pair, kingPair(), nil)
	p.PokerHand = &balatro.PokerHand{Kind: balatro.Pair, Level: 1, Mult: 20}
	p.RunInfo.Deck = balatro.PlasmaDeck
	res, err := Score(p)
	require.NoError(t, err)
	assert.Equal(t, 20.0, res.Chips)
	assert.Equal(t, 20.0, res.Mult)
	assert.Equal(t, 400.0, res.Total)
}

func TestScoreVampireConsumesEnhancements(t *testing.T) {
	sel := kingPair()
	sel[0] = enhanced(sel[0], balatro.EnhancementGlass)
	p := newPlay(balatro.Pair, sel, nil, balatro.Joker{Kind: balatro.Vampire, XMult: 1.2})

	res, err := Score(p)
	require.NoError(t, err)
	assert.InDelta(t, 30, res.Chips, 1e-9)
	assert.InDelta(t, 2.6, res.Mult, 1e-9)
	assert.InDelta(t, 78, res.Total, 1e-9)

	// Without Vampire the glass card doubles mult instead.
	p.Jokers = nil
	res, err = Score(p)
	require.NoError(t, err)
	assert.InDelta(t, 4, res.Mult, 1e-9)
}

func TestScoreEnhancementsAndEditions(t *testing.T) {
	sel := kingPair()
	sel[0].Enhancement = balatro.EnhancementBonus
	sel[0].Edition = balatro.EditionFoil
	sel[1].Enhancement = balatro.EnhancementMult
	sel[1].Edition = balatro.EditionPolychrome

	res, err := Score(newPlay(balatro.Pair, sel, nil))
	require.NoError(t, err)
	// 10 + (30 + 50 + 10) + 10 chips, (2 + 4) * 1.5 mult.
	assert.InDelta(t, 110, res.Chips, 1e-9)
	assert.InDelta(t, 9, res.Mult, 1e-9)
}

func TestScoreStoneCountedOnce(t *testing.T) {
	sel := kingPair()
	sel[0] = enhanced(sel[0], balatro.EnhancementStone)
	res, err := Score(newPlay(balatro.Pair, sel, nil))
	require.NoError(t, err)
	require.Len(t, res.Scored, 2)
	// 10 base + (50 + 10) + 10.
	assert.InDelta(t, 80, res.Chips, 1e-9)
}

func TestScoreSplashScoresEverything(t *testing.T) {
	res, err := Score(newPlay(balatro.Pair, kingPair(), nil, joker(balatro.Splash)))
	require.NoError(t, err)
	assert.Len(t, res.Scored, 3)
	assert.InDelta(t, 32, res.Chips, 1e-9)
}

func TestScoreUnmodeledEffect(t *testing.T) {
	p := newPlay(balatro.Pair, kingPair(), nil, joker(balatro.PlainJoker), joker(balatro.Blueprint))

	_, err := Score(p)
	require.ErrorIs(t, err, ErrUnmodeledEffect)
	var ue *UnmodeledEffectError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, balatro.Blueprint, ue.Joker)
	assert.Equal(t, PhaseJoker, ue.Phase)
	assert.Equal(t, "unmodeled_effect", ErrorKind(err))

	res, err := NewEngine(Options{ApproximateUnmodeled: true}).Score(p)
	require.NoError(t, err)
	require.Len(t, res.Unmodeled, 1)
	assert.Equal(t, balatro.Blueprint, res.Unmodeled[0].Joker)
	assert.InDelta(t, 180, res.Total, 1e-9)
}

func TestScoreUnmodeledCollapsesPerPhase(t *testing.T) {
	held := []balatro.PlayingCard{card(balatro.RankTwo, balatro.SuitClubs), card(balatro.RankThree, balatro.SuitClubs)}
	p := newPlay(balatro.Pair, kingPair(), held, joker(balatro.Mime))
	res, err := NewEngine(Options{ApproximateUnmodeled: true}).Score(p)
	require.NoError(t, err)
	assert.Len(t, res.Unmodeled, 1)
	assert.Equal(t, PhaseHeld, res.Unmodeled[0].Phase)
}

func TestScoreSupernova(t *testing.T) {
	p := newPlay(balatro.Pair, kingPair(), nil, joker(balatro.Supernova))
	_, err := Score(p)
	require.ErrorIs(t, err, ErrMissingHandContext)

	p.RunInfo.PokerHands = []balatro.HandPlays{{Kind: balatro.Flush, Played: 9}, {Kind: balatro.Pair, Played: 4}}
	res, err := Score(p)
	require.NoError(t, err)
	assert.InDelta(t, 6, res.Mult, 1e-9)
}

func TestScoreUnknownJokerKind(t *testing.T) {
	p := newPlay(balatro.Pair, kingPair(), nil, joker(balatro.JokerKind(9999)))
	_, err := Score(p)
	require.ErrorIs(t, err, ErrContractViolation)
	assert.Equal(t, "contract_violation", ErrorKind(err))
}

func TestEveryJokerKindHasEffect(t *testing.T) {
	for _, k := range balatro.AllJokerKinds() {
		_, ok := jokerEffects[k]
		assert.True(t, ok, "no effect entry for %s", k)
	}
	assert.Len(t, jokerEffects, len(balatro.AllJokerKinds()))
}

func TestScoreIsIdempotent(t *testing.T) {
	p := newPlay(balatro.Flush, heartFlush(), []balatro.PlayingCard{card(balatro.RankKing, balatro.SuitSpades)},
		joker(balatro.LustyJoker), joker(balatro.Baron), balatro.Joker{Kind: balatro.RideTheBus, Mult: 6})
	first, err := Score(p)
	require.NoError(t, err)
	second, err := Score(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScoreAdditiveJokersNeverLower(t *testing.T) {
	base, err := Score(newPlay(balatro.Pair, kingPair(), nil))
	require.NoError(t, err)
	for _, k := range []balatro.JokerKind{balatro.PlainJoker, balatro.SlyJoker, balatro.Stuntman, balatro.Misprint, balatro.ScaryFace} {
		res, err := Score(newPlay(balatro.Pair, kingPair(), nil, joker(k)))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Total, base.Total, k.String())
	}
}

func TestScoreTraceEndsAtResult(t *testing.T) {
	res, err := Score(newPlay(balatro.Pair, kingPair(), nil, joker(balatro.PlainJoker)))
	require.NoError(t, err)
	require.NotEmpty(t, res.Trace)
	last := res.Trace[len(res.Trace)-1]
	assert.Equal(t, res.Chips, last.Chips)
	assert.Equal(t, res.Mult, last.Mult)
	assert.Equal(t, PhaseJoker, last.Phase)
}

func TestEngineConcurrentUse(t *testing.T) {
	e := NewEngine(Options{})
	p := newPlay(balatro.Flush, heartFlush(), nil, joker(balatro.DrollJoker))

	var wg sync.WaitGroup
	totals := make([]float64, 16)
	for i := range totals {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := e.Score(p)
			if err == nil {
				totals[i] = res.Total
			}
		}()
	}
	wg.Wait()
	for _, total := range totals {
		assert.InDelta(t, 65*14, total, 1e-9)
	}
}
