package scoring

import "github.com/HeadedBranch/auto-balatro/balatro"

func card(r balatro.Rank, s balatro.Suit) balatro.PlayingCard {
	return balatro.PlayingCard{Rank: r, Suit: s}
}

func enhanced(c balatro.PlayingCard, e balatro.Enhancement) balatro.PlayingCard {
	c.Enhancement = e
	return c
}

// newPlay builds a play with the given selected and held cards, in that
// order, classified as kind at level 1.
func newPlay(kind balatro.PokerHandKind, selected, held []balatro.PlayingCard, jokers ...balatro.Joker) balatro.Play {
	p := balatro.Play{Jokers: jokers}
	for i := range selected {
		c := selected[i]
		p.Hand = append(p.Hand, balatro.HeldCard{Card: &c, Selected: true})
	}
	for i := range held {
		c := held[i]
		p.Hand = append(p.Hand, balatro.HeldCard{Card: &c})
	}
	hand := balatro.BaseHand(kind, 1)
	p.PokerHand = &hand
	return p
}

func kingPair() []balatro.PlayingCard {
	return []balatro.PlayingCard{
		card(balatro.RankKing, balatro.SuitSpades),
		card(balatro.RankKing, balatro.SuitHearts),
		card(balatro.RankTwo, balatro.SuitDiamonds),
	}
}

func heartFlush() []balatro.PlayingCard {
	return []balatro.PlayingCard{
		card(balatro.RankTwo, balatro.SuitHearts),
		card(balatro.RankFour, balatro.SuitHearts),
		card(balatro.RankSix, balatro.SuitHearts),
		card(balatro.RankEight, balatro.SuitHearts),
		card(balatro.RankTen, balatro.SuitHearts),
	}
}

func joker(kind balatro.JokerKind) balatro.Joker { return balatro.Joker{Kind: kind} }
