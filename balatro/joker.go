package balatro

// JokerKind identifies a joker. The zero value is not a joker.
type JokerKind int

const (
	PlainJoker JokerKind = iota + 1
	GreedyJoker
	LustyJoker
	WrathfulJoker
	GluttonousJoker
	JollyJoker
	ZanyJoker
	MadJoker
	CrazyJoker
	DrollJoker
	SlyJoker
	WilyJoker
	CleverJoker
	DeviousJoker
	CraftyJoker
	HalfJoker
	JokerStencil
	FourFingers
	Mime
	CreditCard
	CeremonialDagger
	Banner
	MysticSummit
	LoyaltyCard
	EightBall
	Misprint
	Dusk
	RaisedFist
	ChaosTheClown
	Fibonacci
	SteelJoker
	ScaryFace
	AbstractJoker
	Hack
	Pareidolia
	GrosMichel
	EvenSteven
	OddTodd
	Scholar
	BusinessCard
	Supernova
	RideTheBus
	Egg
	Burglar
	Blackboard
	Runner
	IceCream
	Splash
	BlueJoker
	Constellation
	GreenJoker
	TodoList
	Cavendish
	CardSharp
	RedCard
	Madness
	SquareJoker
	Vampire
	Shortcut
	Hologram
	Baron
	Obelisk
	Photograph
	GiftCard
	Erosion
	ReservedParking
	FortuneTeller
	Juggler
	Drunkard
	StoneJoker
	LuckyCat
	Bull
	DietCola
	FlashCard
	Popcorn
	SpareTrousers
	AncientJoker
	Ramen
	WalkieTalkie
	Castle
	SmileyFace
	Campfire
	GoldenTicket
	MrBones
	Acrobat
	SockAndBuskin
	Swashbuckler
	SmearedJoker
	Throwback
	HangingChad
	RoughGem
	Bloodstone
	Arrowhead
	OnyxAgate
	GlassJoker
	FlowerPot
	Blueprint
	WeeJoker
	TheIdol
	SeeingDouble
	Matador
	HitTheRoad
	TheDuo
	TheTrio
	TheFamily
	TheOrder
	TheTribe
	Stuntman
	Brainstorm
	DriversLicense
	ShootTheMoon
	Bootstraps
	Caino
	Triboulet
	Yorick
	Chicot
	Perkeo

	numJokerKinds
)

type jokerInfo struct {
	key  string
	name string
}

var jokerCatalog = [numJokerKinds]jokerInfo{
	PlainJoker:       {"j_joker", "Joker"},
	GreedyJoker:      {"j_greedy_joker", "Greedy Joker"},
	LustyJoker:       {"j_lusty_joker", "Lusty Joker"},
	WrathfulJoker:    {"j_wrathful_joker", "Wrathful Joker"},
	GluttonousJoker:  {"j_gluttenous_joker", "Gluttonous Joker"},
	JollyJoker:       {"j_jolly", "Jolly Joker"},
	ZanyJoker:        {"j_zany", "Zany Joker"},
	MadJoker:         {"j_mad", "Mad Joker"},
	CrazyJoker:       {"j_crazy", "Crazy Joker"},
	DrollJoker:       {"j_droll", "Droll Joker"},
	SlyJoker:         {"j_sly", "Sly Joker"},
	WilyJoker:        {"j_wily", "Wily Joker"},
	CleverJoker:      {"j_clever", "Clever Joker"},
	DeviousJoker:     {"j_devious", "Devious Joker"},
	CraftyJoker:      {"j_crafty", "Crafty Joker"},
	HalfJoker:        {"j_half", "Half Joker"},
	JokerStencil:     {"j_stencil", "Joker Stencil"},
	FourFingers:      {"j_four_fingers", "Four Fingers"},
	Mime:             {"j_mime", "Mime"},
	CreditCard:       {"j_credit_card", "Credit Card"},
	CeremonialDagger: {"j_ceremonial", "Ceremonial Dagger"},
	Banner:           {"j_banner", "Banner"},
	MysticSummit:     {"j_mystic_summit", "Mystic Summit"},
	LoyaltyCard:      {"j_loyalty_card", "Loyalty Card"},
	EightBall:        {"j_8_ball", "8 Ball"},
	Misprint:         {"j_misprint", "Misprint"},
	Dusk:             {"j_dusk", "Dusk"},
	RaisedFist:       {"j_raised_fist", "Raised Fist"},
	ChaosTheClown:    {"j_chaos", "Chaos the Clown"},
	Fibonacci:        {"j_fibonacci", "Fibonacci"},
	SteelJoker:       {"j_steel_joker", "Steel Joker"},
	ScaryFace:        {"j_scary_face", "Scary Face"},
	AbstractJoker:    {"j_abstract", "Abstract Joker"},
	Hack:             {"j_hack", "Hack"},
	Pareidolia:       {"j_pareidolia", "Pareidolia"},
	GrosMichel:       {"j_gros_michel", "Gros Michel"},
	EvenSteven:       {"j_even_steven", "Even Steven"},
	OddTodd:          {"j_odd_todd", "Odd Todd"},
	Scholar:          {"j_scholar", "Scholar"},
	BusinessCard:     {"j_business", "Business Card"},
	Supernova:        {"j_supernova", "Supernova"},
	RideTheBus:       {"j_ride_the_bus", "Ride the Bus"},
	Egg:              {"j_egg", "Egg"},
	Burglar:          {"j_burglar", "Burglar"},
	Blackboard:       {"j_blackboard", "Blackboard"},
	Runner:           {"j_runner", "Runner"},
	IceCream:         {"j_ice_cream", "Ice Cream"},
	Splash:           {"j_splash", "Splash"},
	BlueJoker:        {"j_blue_joker", "Blue Joker"},
	Constellation:    {"j_constellation", "Constellation"},
	GreenJoker:       {"j_green_joker", "Green Joker"},
	TodoList:         {"j_todo_list", "To Do List"},
	Cavendish:        {"j_cavendish", "Cavendish"},
	CardSharp:        {"j_card_sharp", "Card Sharp"},
	RedCard:          {"j_red_card", "Red Card"},
	Madness:          {"j_madness", "Madness"},
	SquareJoker:      {"j_square", "Square Joker"},
	Vampire:          {"j_vampire", "Vampire"},
	Shortcut:         {"j_shortcut", "Shortcut"},
	Hologram:         {"j_hologram", "Hologram"},
	Baron:            {"j_baron", "Baron"},
	Obelisk:          {"j_obelisk", "Obelisk"},
	Photograph:       {"j_photograph", "Photograph"},
	GiftCard:         {"j_gift", "Gift Card"},
	Erosion:          {"j_erosion", "Erosion"},
	ReservedParking:  {"j_reserved_parking", "Reserved Parking"},
	FortuneTeller:    {"j_fortune_teller", "Fortune Teller"},
	Juggler:          {"j_juggler", "Juggler"},
	Drunkard:         {"j_drunkard", "Drunkard"},
	StoneJoker:       {"j_stone", "Stone Joker"},
	LuckyCat:         {"j_lucky_cat", "Lucky Cat"},
	Bull:             {"j_bull", "Bull"},
	DietCola:         {"j_diet_cola", "Diet Cola"},
	FlashCard:        {"j_flash", "Flash Card"},
	Popcorn:          {"j_popcorn", "Popcorn"},
	SpareTrousers:    {"j_trousers", "Spare Trousers"},
	AncientJoker:     {"j_ancient", "Ancient Joker"},
	Ramen:            {"j_ramen", "Ramen"},
	WalkieTalkie:     {"j_walkie_talkie", "Walkie Talkie"},
	Castle:           {"j_castle", "Castle"},
	SmileyFace:       {"j_smiley", "Smiley Face"},
	Campfire:         {"j_campfire", "Campfire"},
	GoldenTicket:     {"j_ticket", "Golden Ticket"},
	MrBones:          {"j_mr_bones", "Mr. Bones"},
	Acrobat:          {"j_acrobat", "Acrobat"},
	SockAndBuskin:    {"j_sock_and_buskin", "Sock and Buskin"},
	Swashbuckler:     {"j_swashbuckler", "Swashbuckler"},
	SmearedJoker:     {"j_smeared", "Smeared Joker"},
	Throwback:        {"j_throwback", "Throwback"},
	HangingChad:      {"j_hanging_chad", "Hanging Chad"},
	RoughGem:         {"j_rough_gem", "Rough Gem"},
	Bloodstone:       {"j_bloodstone", "Bloodstone"},
	Arrowhead:        {"j_arrowhead", "Arrowhead"},
	OnyxAgate:        {"j_onyx_agate", "Onyx Agate"},
	GlassJoker:       {"j_glass", "Glass Joker"},
	FlowerPot:        {"j_flower_pot", "Flower Pot"},
	Blueprint:        {"j_blueprint", "Blueprint"},
	WeeJoker:         {"j_wee", "Wee Joker"},
	TheIdol:          {"j_idol", "The Idol"},
	SeeingDouble:     {"j_seeing_double", "Seeing Double"},
	Matador:          {"j_matador", "Matador"},
	HitTheRoad:       {"j_hit_the_road", "Hit the Road"},
	TheDuo:           {"j_duo", "The Duo"},
	TheTrio:          {"j_trio", "The Trio"},
	TheFamily:        {"j_family", "The Family"},
	TheOrder:         {"j_order", "The Order"},
	TheTribe:         {"j_tribe", "The Tribe"},
	Stuntman:         {"j_stuntman", "Stuntman"},
	Brainstorm:       {"j_brainstorm", "Brainstorm"},
	DriversLicense:   {"j_drivers_license", "Driver's License"},
	ShootTheMoon:     {"j_shoot_the_moon", "Shoot the Moon"},
	Bootstraps:       {"j_bootstraps", "Bootstraps"},
	Caino:            {"j_caino", "Canio"},
	Triboulet:        {"j_triboulet", "Triboulet"},
	Yorick:           {"j_yorick", "Yorick"},
	Chicot:           {"j_chicot", "Chicot"},
	Perkeo:           {"j_perkeo", "Perkeo"},
}

var jokerIndex = func() map[string]JokerKind {
	idx := make(map[string]JokerKind, 2*int(numJokerKinds))
	for k := PlainJoker; k < numJokerKinds; k++ {
		idx[normalize(jokerCatalog[k].key)] = k
		idx[normalize(jokerCatalog[k].name)] = k
	}
	return idx
}()

// AllJokerKinds returns every known joker kind in catalog order.
func AllJokerKinds() []JokerKind {
	out := make([]JokerKind, 0, numJokerKinds-1)
	for k := PlainJoker; k < numJokerKinds; k++ {
		out = append(out, k)
	}
	return out
}

func (k JokerKind) Valid() bool { return k >= PlainJoker && k < numJokerKinds }

// Key is the game's internal identifier, e.g. "j_greedy_joker".
func (k JokerKind) Key() string {
	if !k.Valid() {
		return ""
	}
	return jokerCatalog[k].key
}

func (k JokerKind) String() string {
	if !k.Valid() {
		return "JokerKind(" + nameOf(nil, k) + ")"
	}
	return jokerCatalog[k].name
}

func (k JokerKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &invalidJokerError{k}
	}
	return []byte(jokerCatalog[k].key), nil
}

// UnmarshalText accepts either the game key or the display name.
func (k *JokerKind) UnmarshalText(text []byte) error {
	v, err := lookup(jokerIndex, "joker", text)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

type invalidJokerError struct{ kind JokerKind }

func (e *invalidJokerError) Error() string {
	return "balatro: invalid joker kind " + nameOf(nil, e.kind)
}

// JokerEdition is the optional edition on a joker.
type JokerEdition int

const (
	JokerEditionNone JokerEdition = iota
	JokerEditionFoil
	JokerEditionHolographic
	JokerEditionPolychrome
	JokerEditionNegative
)

var jokerEditionNames = []string{"", "Foil", "Holographic", "Polychrome", "Negative"}

var jokerEditionIndex = nameIndex(jokerEditionNames, map[string]JokerEdition{"": JokerEditionNone, "None": JokerEditionNone, "Holo": JokerEditionHolographic})

func (e JokerEdition) String() string {
	if e == JokerEditionNone {
		return "None"
	}
	return nameOf(jokerEditionNames, e)
}

func (e JokerEdition) MarshalText() ([]byte, error) {
	if e == JokerEditionNone {
		return []byte{}, nil
	}
	return marshalName(jokerEditionNames, "joker edition", e)
}

func (e *JokerEdition) UnmarshalText(text []byte) error {
	v, err := lookup(jokerEditionIndex, "joker edition", text)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Joker is a held joker. Kind decides which of the parameter fields carry
// meaning; the game reports them as the joker's current counters.
type Joker struct {
	Kind    JokerKind    `json:"kind"`
	Edition JokerEdition `json:"edition,omitempty"`

	// XMult is the current multiplier of scaling xmult jokers (Vampire, Hologram, ...).
	XMult float64 `json:"xmult,omitempty"`
	// Chips and Mult are the accumulated bonuses of scaling +chips/+mult jokers.
	Chips int `json:"chips,omitempty"`
	Mult  int `json:"mult,omitempty"`
	// Left is a countdown (Loyalty Card); zero means the effect is active.
	Left int `json:"left,omitempty"`
	// Cards counts enhanced cards in the full deck (Driver's License).
	Cards int `json:"cards,omitempty"`
	// Suit and Rank are remembered targets (Ancient Joker, The Idol, Castle).
	Suit Suit `json:"suit,omitempty"`
	Rank Rank `json:"rank,omitempty"`
	// PokerHand is the target hand of To Do List.
	PokerHand PokerHandKind `json:"poker_hand,omitempty"`
}

// Factor returns XMult, treating an unreported multiplier as x1.
func (j Joker) Factor() float64 {
	if j.XMult == 0 {
		return 1
	}
	return j.XMult
}

func (j Joker) String() string {
	if j.Edition == JokerEditionNone {
		return j.Kind.String()
	}
	return j.Kind.String() + " (" + j.Edition.String() + ")"
}
