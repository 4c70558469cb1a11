package scoring

import (
	"cmp"
	"slices"

	"github.com/HeadedBranch/auto-balatro/balatro"
)

// ResolveOptions are the joker-granted relaxations of the per-kind search.
type ResolveOptions struct {
	// Shortcut allows straights with one-rank gaps.
	Shortcut bool
	// FourFingers allows four-card straights and flushes.
	FourFingers bool
	// Smeared makes Hearts/Diamonds and Spades/Clubs the same suit.
	Smeared bool
}

// ResolveOptionsFor derives the resolver options from the held jokers.
func ResolveOptionsFor(jokers []balatro.Joker) ResolveOptions {
	var o ResolveOptions
	for _, j := range jokers {
		switch j.Kind {
		case balatro.Shortcut:
			o.Shortcut = true
		case balatro.FourFingers:
			o.FourFingers = true
		case balatro.SmearedJoker:
			o.Smeared = true
		}
	}
	return o
}

// Resolve returns the indices of the selected cards that score for kind, in
// selection order and without duplicates.
func Resolve(selected []balatro.PlayingCard, kind balatro.PokerHandKind, opts ResolveOptions) ([]int, error) {
	switch kind {
	case balatro.FiveOfAKind, balatro.FlushFive, balatro.FlushHouse, balatro.FullHouse:
		return allIndices(len(selected)), nil
	}

	scored := make([]bool, len(selected))
	for i, c := range selected {
		if c.Enhancement == balatro.EnhancementStone {
			scored[i] = true
		}
	}
	mark := func(idx []int) {
		for _, i := range idx {
			scored[i] = true
		}
	}

	byRank := sortedBy(selected, func(c balatro.PlayingCard) int { return int(c.Rank) })

	switch kind {
	case balatro.HighCard:
		if len(byRank) > 0 {
			mark(byRank[len(byRank)-1:])
		}
	case balatro.Pair, balatro.ThreeOfAKind, balatro.FourOfAKind:
		mark(sameRankRun(selected, byRank, groupSize(kind)))
	case balatro.TwoPair:
		mark(twoPairs(selected, byRank))
	case balatro.Straight:
		mark(straight(selected, byRank, opts))
	case balatro.Flush:
		mark(flush(selected, opts))
	case balatro.StraightFlush:
		mark(straightFlush(selected, byRank, opts))
	default:
		return nil, &ContractViolationError{Kind: kind, Reason: "no scored-subset rule for hand kind"}
	}

	out := make([]int, 0, len(selected))
	for i, ok := range scored {
		if ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func groupSize(kind balatro.PokerHandKind) int {
	switch kind {
	case balatro.Pair:
		return 2
	case balatro.ThreeOfAKind:
		return 3
	default:
		return 4
	}
}

// sortedBy returns selection indices stably ordered by key.
func sortedBy(cards []balatro.PlayingCard, key func(balatro.PlayingCard) int) []int {
	idx := allIndices(len(cards))
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(key(cards[a]), key(cards[b]))
	})
	return idx
}

func sameRankRun(cards []balatro.PlayingCard, order []int, n int) []int {
	for i := 0; i+n <= len(order); i++ {
		if w := order[i : i+n]; allPairs(cards, w, sameRank) {
			return w
		}
	}
	return nil
}

func twoPairs(cards []balatro.PlayingCard, order []int) []int {
	first := -1
	for i := 0; i+1 < len(order); i++ {
		if cards[order[i]].Rank != cards[order[i+1]].Rank {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		if i >= first+2 {
			return []int{order[first], order[first+1], order[i], order[i+1]}
		}
	}
	return nil
}

func sameRank(a, b balatro.PlayingCard) bool { return a.Rank == b.Rank }

func consecutive(a, b balatro.PlayingCard) bool { return b.Rank == a.Rank.Next() }

func skipOne(a, b balatro.PlayingCard) bool { return b.Rank == a.Rank.Next().Next() }

func withinTwo(a, b balatro.PlayingCard) bool { return rankGap(a.Rank, b.Rank) <= 2 }

func withinOne(a, b balatro.PlayingCard) bool { return rankGap(a.Rank, b.Rank) <= 1 }

// rankGap is the distance from a to b in a rank-sorted order. An Ace ahead
// of a lower card only occurs in the ace-low order, where it counts as one.
func rankGap(a, b balatro.Rank) int {
	if a == balatro.RankAce && b != balatro.RankAce {
		return int(b) - 1
	}
	return int(b) - int(a)
}

// allPairs reports whether step holds for every adjacent pair of w.
func allPairs(cards []balatro.PlayingCard, w []int, step func(a, b balatro.PlayingCard) bool) bool {
	for i := 0; i+1 < len(w); i++ {
		if !step(cards[w[i]], cards[w[i+1]]) {
			return false
		}
	}
	return true
}

// rankOrders yields the ace-high order and, when an Ace is present, the
// ace-low order with every Ace moved to the front.
func rankOrders(cards []balatro.PlayingCard, byRank []int) [][]int {
	orders := [][]int{byRank}
	var aces, rest []int
	for _, i := range byRank {
		if cards[i].Rank == balatro.RankAce {
			aces = append(aces, i)
		} else {
			rest = append(rest, i)
		}
	}
	if len(aces) > 0 && len(rest) > 0 {
		orders = append(orders, append(aces, rest...))
	}
	return orders
}

func straight(cards []balatro.PlayingCard, byRank []int, opts ResolveOptions) []int {
	orders := rankOrders(cards, byRank)
	if len(cards) == 5 {
		for _, o := range orders {
			if allPairs(cards, o, consecutive) {
				return o
			}
		}
		if opts.Shortcut {
			for _, o := range orders {
				if allPairs(cards, o, skipOne) {
					return o
				}
			}
		}
	}
	if !opts.FourFingers {
		return nil
	}
	for _, o := range orders {
		if w := firstWindow(cards, o, 4, consecutive); w != nil {
			return w
		}
	}
	if opts.Shortcut {
		for _, o := range orders {
			if w := firstWindow(cards, o, 4, withinTwo); w != nil {
				return w
			}
		}
	}
	return nil
}

func firstWindow(cards []balatro.PlayingCard, order []int, n int, step func(a, b balatro.PlayingCard) bool) []int {
	for i := 0; i+n <= len(order); i++ {
		if allPairs(cards, order[i:i+n], step) {
			return order[i : i+n]
		}
	}
	return nil
}

// HasSuit reports whether c counts as suit s. Wild cards count as every
// suit; Smeared folds each colour into one suit.
func HasSuit(c balatro.PlayingCard, s balatro.Suit, smeared bool) bool {
	switch {
	case c.Enhancement == balatro.EnhancementWild:
		return true
	case smeared:
		return c.Suit.IsRed() == s.IsRed()
	default:
		return c.Suit == s
	}
}

// suited returns, for the first suit that at least n of idx share, the
// first n of them.
func suited(cards []balatro.PlayingCard, idx []int, n int, smeared bool) []int {
	for _, s := range balatro.AllSuits {
		var match []int
		for _, i := range idx {
			if HasSuit(cards[i], s, smeared) {
				match = append(match, i)
			}
		}
		if len(match) >= n {
			return match[:n]
		}
	}
	return nil
}

func flush(cards []balatro.PlayingCard, opts ResolveOptions) []int {
	all := allIndices(len(cards))
	if w := suited(cards, all, len(cards), opts.Smeared); w != nil {
		return w
	}
	if !opts.FourFingers {
		return nil
	}
	return suited(cards, all, 4, opts.Smeared)
}

// straightFlush only recognises the whole selection; there is no
// four-card fallback.
func straightFlush(cards []balatro.PlayingCard, byRank []int, opts ResolveOptions) []int {
	if suited(cards, allIndices(len(cards)), len(cards), opts.Smeared) == nil {
		return nil
	}
	for _, o := range rankOrders(cards, byRank) {
		if allPairs(cards, o, withinOne) {
			return o
		}
	}
	return nil
}
