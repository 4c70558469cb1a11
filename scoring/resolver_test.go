package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HeadedBranch/auto-balatro/balatro"
)

func ranksOf(cards []balatro.PlayingCard, idx []int) []balatro.Rank {
	out := make([]balatro.Rank, len(idx))
	for i, j := range idx {
		out[i] = cards[j].Rank
	}
	return out
}

func mixedRun(ranks ...balatro.Rank) []balatro.PlayingCard {
	out := make([]balatro.PlayingCard, len(ranks))
	for i, r := range ranks {
		out[i] = card(r, balatro.AllSuits[i%4])
	}
	return out
}

func TestResolveAlwaysFiveKinds(t *testing.T) {
	sel := mixedRun(balatro.RankTwo, balatro.RankTwo, balatro.RankNine, balatro.RankNine, balatro.RankNine)
	for _, kind := range []balatro.PokerHandKind{balatro.FullHouse, balatro.FiveOfAKind, balatro.FlushHouse, balatro.FlushFive} {
		idx, err := Resolve(sel, kind, ResolveOptions{})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, idx, kind.String())
	}
}

func TestResolveHighCard(t *testing.T) {
	sel := mixedRun(balatro.RankKing, balatro.RankAce, balatro.RankThree)
	idx, err := Resolve(sel, balatro.HighCard, ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, idx)
}

func TestResolveStoneAlwaysScores(t *testing.T) {
	sel := []balatro.PlayingCard{
		enhanced(card(balatro.RankTwo, balatro.SuitClubs), balatro.EnhancementStone),
		card(balatro.RankKing, balatro.SuitSpades),
		card(balatro.RankKing, balatro.SuitHearts),
	}
	for _, kind := range []balatro.PokerHandKind{balatro.HighCard, balatro.Pair, balatro.TwoPair, balatro.Straight, balatro.Flush, balatro.StraightFlush} {
		idx, err := Resolve(sel, kind, ResolveOptions{})
		require.NoError(t, err)
		assert.Contains(t, idx, 0, kind.String())
	}
}

func TestResolvePair(t *testing.T) {
	idx, err := Resolve(kingPair(), balatro.Pair, ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, idx)
}

func TestResolveGroupNotFound(t *testing.T) {
	sel := mixedRun(balatro.RankKing, balatro.RankQueen, balatro.RankTwo)
	idx, err := Resolve(sel, balatro.ThreeOfAKind, ResolveOptions{})
	require.NoError(t, err)
	assert.Empty(t, idx)
}

func TestResolveFourOfAKindIgnoresKicker(t *testing.T) {
	sel := mixedRun(balatro.RankSeven, balatro.RankSeven, balatro.RankAce, balatro.RankSeven, balatro.RankSeven)
	idx, err := Resolve(sel, balatro.FourOfAKind, ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3, 4}, idx)
}

func TestResolveTwoPair(t *testing.T) {
	sel := mixedRun(balatro.RankNine, balatro.RankThree, balatro.RankKing, balatro.RankThree, balatro.RankNine)
	idx, err := Resolve(sel, balatro.TwoPair, ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3, 4}, idx)
}

func TestResolveStraight(t *testing.T) {
	tests := []struct {
		name  string
		ranks []balatro.Rank
		opts  ResolveOptions
		want  []balatro.Rank
	}{
		{
			name:  "five consecutive",
			ranks: []balatro.Rank{balatro.RankSix, balatro.RankTwo, balatro.RankFour, balatro.RankThree, balatro.RankFive},
			want:  []balatro.Rank{balatro.RankSix, balatro.RankTwo, balatro.RankFour, balatro.RankThree, balatro.RankFive},
		},
		{
			name:  "gap without jokers",
			ranks: []balatro.Rank{balatro.RankTwo, balatro.RankThree, balatro.RankFour, balatro.RankFive, balatro.RankSeven},
			want:  []balatro.Rank{},
		},
		{
			name:  "four fingers window",
			ranks: []balatro.Rank{balatro.RankTwo, balatro.RankThree, balatro.RankFour, balatro.RankFive, balatro.RankSeven},
			opts:  ResolveOptions{FourFingers: true},
			want:  []balatro.Rank{balatro.RankTwo, balatro.RankThree, balatro.RankFour, balatro.RankFive},
		},
		{
			name:  "shortcut two-rank steps",
			ranks: []balatro.Rank{balatro.RankTwo, balatro.RankFour, balatro.RankSix, balatro.RankEight, balatro.RankTen},
			opts:  ResolveOptions{Shortcut: true},
			want:  []balatro.Rank{balatro.RankTwo, balatro.RankFour, balatro.RankSix, balatro.RankEight, balatro.RankTen},
		},
		{
			name:  "shortcut and four fingers relaxed window",
			ranks: []balatro.Rank{balatro.RankTwo, balatro.RankThree, balatro.RankFive, balatro.RankSix, balatro.RankKing},
			opts:  ResolveOptions{Shortcut: true, FourFingers: true},
			want:  []balatro.Rank{balatro.RankTwo, balatro.RankThree, balatro.RankFive, balatro.RankSix},
		},
		{
			name:  "shortcut and four fingers window ending king ace",
			ranks: []balatro.Rank{balatro.RankNine, balatro.RankJack, balatro.RankKing, balatro.RankAce, balatro.RankThree},
			opts:  ResolveOptions{Shortcut: true, FourFingers: true},
			want:  []balatro.Rank{balatro.RankNine, balatro.RankJack, balatro.RankKing, balatro.RankAce},
		},
		{
			name:  "shortcut and four fingers ace low window",
			ranks: []balatro.Rank{balatro.RankAce, balatro.RankThree, balatro.RankFour, balatro.RankSix, balatro.RankJack},
			opts:  ResolveOptions{Shortcut: true, FourFingers: true},
			want:  []balatro.Rank{balatro.RankAce, balatro.RankThree, balatro.RankFour, balatro.RankSix},
		},
		{
			name:  "ace low window does not bridge wide gaps",
			ranks: []balatro.Rank{balatro.RankAce, balatro.RankFive, balatro.RankSix, balatro.RankSeven, balatro.RankJack},
			opts:  ResolveOptions{Shortcut: true, FourFingers: true},
			want:  []balatro.Rank{},
		},
		{
			name:  "ace high",
			ranks: []balatro.Rank{balatro.RankAce, balatro.RankKing, balatro.RankQueen, balatro.RankJack, balatro.RankTen},
			want:  []balatro.Rank{balatro.RankAce, balatro.RankKing, balatro.RankQueen, balatro.RankJack, balatro.RankTen},
		},
		{
			name:  "ace low",
			ranks: []balatro.Rank{balatro.RankFive, balatro.RankAce, balatro.RankThree, balatro.RankTwo, balatro.RankFour},
			want:  []balatro.Rank{balatro.RankFive, balatro.RankAce, balatro.RankThree, balatro.RankTwo, balatro.RankFour},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := mixedRun(tt.ranks...)
			idx, err := Resolve(sel, balatro.Straight, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ranksOf(sel, idx))
		})
	}
}

func TestResolveFlush(t *testing.T) {
	offSuit := heartFlush()
	offSuit[2].Suit = balatro.SuitSpades

	idx, err := Resolve(heartFlush(), balatro.Flush, ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, idx)

	idx, err = Resolve(offSuit, balatro.Flush, ResolveOptions{})
	require.NoError(t, err)
	assert.Empty(t, idx)

	idx, err = Resolve(offSuit, balatro.Flush, ResolveOptions{FourFingers: true})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3, 4}, idx)
}

func TestResolveFlushSmearedAndWild(t *testing.T) {
	sel := heartFlush()
	sel[1].Suit = balatro.SuitDiamonds
	sel[3].Suit = balatro.SuitClubs
	sel[3].Enhancement = balatro.EnhancementWild

	idx, err := Resolve(sel, balatro.Flush, ResolveOptions{})
	require.NoError(t, err)
	assert.Empty(t, idx)

	idx, err = Resolve(sel, balatro.Flush, ResolveOptions{Smeared: true})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, idx)
}

func TestResolveStraightFlush(t *testing.T) {
	sel := []balatro.PlayingCard{
		card(balatro.RankNine, balatro.SuitClubs),
		card(balatro.RankFive, balatro.SuitClubs),
		card(balatro.RankSeven, balatro.SuitClubs),
		card(balatro.RankSix, balatro.SuitClubs),
		card(balatro.RankEight, balatro.SuitClubs),
	}
	idx, err := Resolve(sel, balatro.StraightFlush, ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, idx)

	// No partial window: one off-suit card drops the whole hand.
	sel[4].Suit = balatro.SuitHearts
	idx, err = Resolve(sel, balatro.StraightFlush, ResolveOptions{FourFingers: true})
	require.NoError(t, err)
	assert.Empty(t, idx)
}

func TestResolveUnknownKind(t *testing.T) {
	_, err := Resolve(kingPair(), balatro.PokerHandKind(0), ResolveOptions{})
	require.ErrorIs(t, err, ErrContractViolation)

	var cv *ContractViolationError
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, balatro.PokerHandKind(0), cv.Kind)
}

func TestResolveOptionsFor(t *testing.T) {
	opts := ResolveOptionsFor([]balatro.Joker{joker(balatro.PlainJoker), joker(balatro.Shortcut), joker(balatro.SmearedJoker)})
	assert.Equal(t, ResolveOptions{Shortcut: true, Smeared: true}, opts)
}
