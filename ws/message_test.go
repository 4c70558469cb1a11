package ws

import (
	"encoding/json"
	"testing"

	"github.com/HeadedBranch/auto-balatro/balatro"
)

func TestInboundEnvelopeKeepsRaw(t *testing.T) {
	data := []byte(`{"type":"screen","screen":"SHOP"}`)
	var env InboundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Type != "screen" {
		t.Errorf("expected type screen, got %q", env.Type)
	}
	var msg ScreenMsg
	if err := json.Unmarshal(env.Raw, &msg); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if msg.Screen != "SHOP" {
		t.Errorf("expected screen SHOP, got %q", msg.Screen)
	}
}

func TestDecodePlay(t *testing.T) {
	raw := json.RawMessage(`{
		"hand": [{"card": {"rank": "A", "suit": "Spades"}, "selected": true}],
		"jokers": [{"kind": "j_joker"}],
		"poker_hand": {"kind": "High Card", "chips": 5, "mult": 1},
		"run_info": {"hands": 4, "discards": 3}
	}`)
	p, err := decodePlay(raw)
	if err != nil {
		t.Fatalf("decodePlay: %v", err)
	}
	if len(p.Selected()) != 1 || p.Selected()[0].Rank != balatro.RankAce {
		t.Errorf("unexpected selection %+v", p.Selected())
	}
	if !p.HasJoker(balatro.PlainJoker) {
		t.Error("expected the plain joker")
	}
	if p.PokerHand == nil || p.PokerHand.Kind != balatro.HighCard {
		t.Errorf("unexpected poker hand %+v", p.PokerHand)
	}

	if _, err := decodePlay(json.RawMessage(`{"hand": [{"card": {"rank": "Z", "suit": "S"}}]}`)); err == nil {
		t.Error("expected error for unknown rank")
	}
}
