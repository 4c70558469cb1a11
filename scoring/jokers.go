package scoring

import (
	"fmt"

	"github.com/HeadedBranch/auto-balatro/balatro"
)

// jokerEffect holds the hooks a joker kind contributes. Nil hooks do
// nothing. A kind with no hooks at all either only changes which cards score
// (Splash, Four Fingers, ...) or has no effect on the score (money, consumables).
type jokerEffect struct {
	scored func(a *accumulator, j balatro.Joker, c balatro.PlayingCard)
	held   func(a *accumulator, j balatro.Joker, c balatro.PlayingCard)
	global func(a *accumulator, j balatro.Joker)
}

// effectOf looks up the hooks for kind. Every balatro.JokerKind has an entry;
// a miss means the snapshot carried a kind outside the catalog.
func effectOf(hand balatro.PokerHandKind, kind balatro.JokerKind) (jokerEffect, error) {
	eff, ok := jokerEffects[kind]
	if !ok {
		return jokerEffect{}, &ContractViolationError{Kind: hand, Reason: fmt.Sprintf("unknown joker kind %d", int(kind))}
	}
	return eff, nil
}

func suitMult(s balatro.Suit, v float64) jokerEffect {
	return jokerEffect{scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if a.hasSuit(c, s) {
			a.addMult(jokerSource(j), v)
		}
	}}
}

func rankSet(ranks ...balatro.Rank) func(balatro.Rank) bool {
	return func(r balatro.Rank) bool {
		for _, x := range ranks {
			if x == r {
				return true
			}
		}
		return false
	}
}

func handMult(kind balatro.PokerHandKind, v float64) jokerEffect {
	return jokerEffect{global: func(a *accumulator, j balatro.Joker) {
		if a.kind == kind {
			a.addMult(jokerSource(j), v)
		}
	}}
}

func handChips(kind balatro.PokerHandKind, v float64) jokerEffect {
	return jokerEffect{global: func(a *accumulator, j balatro.Joker) {
		if a.kind == kind {
			a.addChips(jokerSource(j), v)
		}
	}}
}

func handXMult(kind balatro.PokerHandKind, v float64) jokerEffect {
	return jokerEffect{global: func(a *accumulator, j balatro.Joker) {
		if a.kind == kind {
			a.mulMult(jokerSource(j), v)
		}
	}}
}

func flatMult(v float64) jokerEffect {
	return jokerEffect{global: func(a *accumulator, j balatro.Joker) { a.addMult(jokerSource(j), v) }}
}

func flatXMult(v float64) jokerEffect {
	return jokerEffect{global: func(a *accumulator, j balatro.Joker) { a.mulMult(jokerSource(j), v) }}
}

// Scaling jokers report their accumulated value in the snapshot.
var (
	counterChips = jokerEffect{global: func(a *accumulator, j balatro.Joker) { a.addChips(jokerSource(j), float64(j.Chips)) }}
	counterMult  = jokerEffect{global: func(a *accumulator, j balatro.Joker) { a.addMult(jokerSource(j), float64(j.Mult)) }}
	counterXMult = jokerEffect{global: func(a *accumulator, j balatro.Joker) { a.mulMult(jokerSource(j), j.Factor()) }}
)

func unmodeled(reason string) func(a *accumulator, j balatro.Joker) {
	return func(a *accumulator, j balatro.Joker) { a.unmodeledEffect(j.Kind, reason) }
}

var (
	isFibonacci = rankSet(balatro.RankAce, balatro.RankTwo, balatro.RankThree, balatro.RankFive, balatro.RankEight)
	isEven      = rankSet(balatro.RankTwo, balatro.RankFour, balatro.RankSix, balatro.RankEight, balatro.RankTen)
	isOdd       = rankSet(balatro.RankAce, balatro.RankThree, balatro.RankFive, balatro.RankSeven, balatro.RankNine)
	isHackRank  = rankSet(balatro.RankTwo, balatro.RankThree, balatro.RankFour, balatro.RankFive)
)

// selectedHasSuit reports whether any selected card, scored or not, counts as s.
func (a *accumulator) selectedHasSuit(s balatro.Suit) bool {
	for _, c := range a.selected {
		if a.hasSuit(c, s) {
			return true
		}
	}
	return false
}

func (a *accumulator) lowestHeld() balatro.Rank {
	low := balatro.RankAce + 1
	for _, c := range a.held {
		if c.Rank < low {
			low = c.Rank
		}
	}
	return low
}

var jokerEffects = map[balatro.JokerKind]jokerEffect{
	balatro.PlainJoker:      flatMult(4),
	balatro.GreedyJoker:     suitMult(balatro.SuitDiamonds, 3),
	balatro.LustyJoker:      suitMult(balatro.SuitHearts, 3),
	balatro.WrathfulJoker:   suitMult(balatro.SuitSpades, 3),
	balatro.GluttonousJoker: suitMult(balatro.SuitClubs, 3),
	balatro.JollyJoker:      handMult(balatro.Pair, 8),
	balatro.ZanyJoker:       handMult(balatro.ThreeOfAKind, 12),
	balatro.MadJoker:        handMult(balatro.TwoPair, 10),
	balatro.CrazyJoker:      handMult(balatro.Straight, 12),
	balatro.DrollJoker:      handMult(balatro.Flush, 10),
	balatro.SlyJoker:        handChips(balatro.Pair, 50),
	balatro.WilyJoker:       handChips(balatro.ThreeOfAKind, 100),
	balatro.CleverJoker:     handChips(balatro.TwoPair, 80),
	balatro.DeviousJoker:    handChips(balatro.Straight, 100),
	balatro.CraftyJoker:     handChips(balatro.Flush, 80),
	balatro.HalfJoker: {global: func(a *accumulator, j balatro.Joker) {
		if len(a.selected) <= 3 {
			a.addMult(jokerSource(j), 20)
		}
	}},
	balatro.JokerStencil: counterXMult,
	balatro.FourFingers:  {},
	balatro.Mime: {held: func(a *accumulator, j balatro.Joker, _ balatro.PlayingCard) {
		a.unmodeledEffect(j.Kind, "retriggers held-in-hand abilities")
	}},
	balatro.CreditCard:       {},
	balatro.CeremonialDagger: counterMult,
	balatro.Banner: {global: func(a *accumulator, j balatro.Joker) {
		a.addChips(jokerSource(j), 30*float64(a.play.RunInfo.Discards))
	}},
	balatro.MysticSummit: {global: func(a *accumulator, j balatro.Joker) {
		if a.play.RunInfo.Discards == 0 {
			a.addMult(jokerSource(j), 15)
		}
	}},
	balatro.LoyaltyCard: {global: func(a *accumulator, j balatro.Joker) {
		if j.Left == 0 {
			a.mulMult(jokerSource(j), 4)
		}
	}},
	balatro.EightBall: {},
	// Misprint rolls 0..23; the upper bound is used.
	balatro.Misprint: flatMult(23),
	balatro.Dusk: {scored: func(a *accumulator, j balatro.Joker, _ balatro.PlayingCard) {
		if a.play.RunInfo.Hands == 1 {
			a.unmodeledEffect(j.Kind, "retriggers played cards on the final hand")
		}
	}},
	balatro.RaisedFist: {held: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if c.Rank == a.lowestHeld() {
			a.addMult(jokerSource(j), c.Rank.Chips())
		}
	}},
	balatro.ChaosTheClown: {},
	balatro.Fibonacci: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if isFibonacci(c.Rank) {
			a.addMult(jokerSource(j), 8)
		}
	}},
	balatro.SteelJoker: counterXMult,
	balatro.ScaryFace: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if a.isFace(c) {
			a.addChips(jokerSource(j), 30)
		}
	}},
	balatro.AbstractJoker: counterMult,
	balatro.Hack: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if isHackRank(c.Rank) {
			a.unmodeledEffect(j.Kind, "retriggers played 2, 3, 4 and 5")
		}
	}},
	balatro.Pareidolia: {},
	balatro.GrosMichel: flatMult(15),
	balatro.EvenSteven: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if isEven(c.Rank) {
			a.addMult(jokerSource(j), 4)
		}
	}},
	balatro.OddTodd: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if isOdd(c.Rank) {
			a.addChips(jokerSource(j), 31)
		}
	}},
	balatro.Scholar: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if c.Rank == balatro.RankAce {
			a.addChips(jokerSource(j), 20)
			a.addMult(jokerSource(j), 4)
		}
	}},
	balatro.BusinessCard: {},
	balatro.Supernova: {global: func(a *accumulator, j balatro.Joker) {
		played, ok := a.play.RunInfo.Played(a.kind)
		if !ok {
			a.fail(fmt.Errorf("%w: no play count for %s", ErrMissingHandContext, a.kind))
			return
		}
		a.addMult(jokerSource(j), float64(played))
	}},
	balatro.RideTheBus: counterMult,
	balatro.Egg:        {},
	balatro.Burglar:    {},
	balatro.Blackboard: {global: func(a *accumulator, j balatro.Joker) {
		for _, c := range a.held {
			if !a.hasSuit(c, balatro.SuitSpades) && !a.hasSuit(c, balatro.SuitClubs) {
				return
			}
		}
		a.mulMult(jokerSource(j), 3)
	}},
	balatro.Runner:        counterChips,
	balatro.IceCream:      counterChips,
	balatro.Splash:        {},
	balatro.BlueJoker:     counterChips,
	balatro.Constellation: counterXMult,
	balatro.GreenJoker:    counterMult,
	balatro.TodoList:      {},
	balatro.Cavendish:     flatXMult(3),
	balatro.CardSharp:     {global: unmodeled("depends on hands already played this round")},
	balatro.RedCard:       counterMult,
	balatro.Madness:       counterXMult,
	balatro.SquareJoker:   counterChips,
	balatro.Vampire: {global: func(a *accumulator, j balatro.Joker) {
		a.mulMult(jokerSource(j), j.Factor()+a.vampireBonus)
	}},
	balatro.Shortcut: {},
	balatro.Hologram: counterXMult,
	balatro.Baron: {held: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if c.Rank == balatro.RankKing {
			a.mulMult(jokerSource(j), 1.5)
		}
	}},
	balatro.Obelisk: counterXMult,
	balatro.Photograph: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if !a.photographed && a.isFace(c) {
			a.photographed = true
			a.mulMult(jokerSource(j), 2)
		}
	}},
	balatro.GiftCard:        {},
	balatro.Erosion:         counterMult,
	balatro.ReservedParking: {},
	balatro.FortuneTeller:   counterMult,
	balatro.Juggler:         {},
	balatro.Drunkard:        {},
	balatro.StoneJoker:      counterChips,
	balatro.LuckyCat:        counterXMult,
	balatro.Bull: {global: func(a *accumulator, j balatro.Joker) {
		a.addChips(jokerSource(j), 2*float64(max(a.play.RunInfo.Money, 0)))
	}},
	balatro.DietCola:      {},
	balatro.FlashCard:     counterMult,
	balatro.Popcorn:       counterMult,
	balatro.SpareTrousers: counterMult,
	balatro.AncientJoker: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if a.hasSuit(c, j.Suit) {
			a.mulMult(jokerSource(j), 1.5)
		}
	}},
	balatro.Ramen: counterXMult,
	balatro.WalkieTalkie: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if c.Rank == balatro.RankTen || c.Rank == balatro.RankFour {
			a.addChips(jokerSource(j), 10)
			a.addMult(jokerSource(j), 4)
		}
	}},
	balatro.Castle: counterChips,
	balatro.SmileyFace: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if a.isFace(c) {
			a.addMult(jokerSource(j), 5)
		}
	}},
	balatro.Campfire:     counterXMult,
	balatro.GoldenTicket: {},
	balatro.MrBones:      {},
	balatro.Acrobat: {global: func(a *accumulator, j balatro.Joker) {
		if a.play.RunInfo.Hands == 1 {
			a.mulMult(jokerSource(j), 3)
		}
	}},
	balatro.SockAndBuskin: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if a.isFace(c) {
			a.unmodeledEffect(j.Kind, "retriggers played face cards")
		}
	}},
	balatro.Swashbuckler: counterMult,
	balatro.SmearedJoker: {},
	balatro.Throwback:    counterXMult,
	balatro.HangingChad: {scored: func(a *accumulator, j balatro.Joker, _ balatro.PlayingCard) {
		a.unmodeledEffect(j.Kind, "retriggers the first scored card")
	}},
	balatro.RoughGem: {},
	// Bloodstone fires 1 in 2; the hit is assumed.
	balatro.Bloodstone: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if a.hasSuit(c, balatro.SuitHearts) {
			a.mulMult(jokerSource(j), 1.5)
		}
	}},
	balatro.Arrowhead: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if a.hasSuit(c, balatro.SuitSpades) {
			a.addChips(jokerSource(j), 50)
		}
	}},
	balatro.OnyxAgate: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if a.hasSuit(c, balatro.SuitClubs) {
			a.addMult(jokerSource(j), 7)
		}
	}},
	balatro.GlassJoker: counterXMult,
	balatro.FlowerPot: {global: func(a *accumulator, j balatro.Joker) {
		for _, s := range balatro.AllSuits {
			if !a.selectedHasSuit(s) {
				return
			}
		}
		a.mulMult(jokerSource(j), 3)
	}},
	balatro.Blueprint: {global: unmodeled("copies the joker to its right")},
	balatro.WeeJoker:  counterChips,
	balatro.TheIdol: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if c.Rank == j.Rank && a.hasSuit(c, j.Suit) {
			a.mulMult(jokerSource(j), 2)
		}
	}},
	balatro.SeeingDouble: {global: func(a *accumulator, j balatro.Joker) {
		if !a.selectedHasSuit(balatro.SuitClubs) {
			return
		}
		for _, c := range a.selected {
			if !a.hasSuit(c, balatro.SuitClubs) {
				a.mulMult(jokerSource(j), 2)
				return
			}
		}
	}},
	balatro.Matador:    {},
	balatro.HitTheRoad: counterXMult,
	balatro.TheDuo:     handXMult(balatro.Pair, 2),
	balatro.TheTrio:    handXMult(balatro.ThreeOfAKind, 3),
	balatro.TheFamily:  handXMult(balatro.FourOfAKind, 4),
	balatro.TheOrder:   handXMult(balatro.Straight, 3),
	balatro.TheTribe:   handXMult(balatro.Flush, 2),
	balatro.Stuntman: {global: func(a *accumulator, j balatro.Joker) {
		a.addChips(jokerSource(j), 250)
	}},
	balatro.Brainstorm: {global: unmodeled("copies the leftmost joker")},
	balatro.DriversLicense: {global: func(a *accumulator, j balatro.Joker) {
		if j.Cards >= 16 {
			a.mulMult(jokerSource(j), 3)
		}
	}},
	balatro.ShootTheMoon: {held: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if c.Rank == balatro.RankQueen {
			a.addMult(jokerSource(j), 13)
		}
	}},
	balatro.Bootstraps: counterMult,
	balatro.Caino:      counterXMult,
	balatro.Triboulet: {scored: func(a *accumulator, j balatro.Joker, c balatro.PlayingCard) {
		if c.Rank == balatro.RankQueen || c.Rank == balatro.RankKing {
			a.mulMult(jokerSource(j), 2)
		}
	}},
	balatro.Yorick: counterXMult,
	balatro.Chicot: {},
	balatro.Perkeo: {},
}
