package domain

import "fmt"

// Comparator relates the two operands of a condition.
type Comparator string

const (
	CompareEq  Comparator = "=="
	CompareGte Comparator = ">="
)

// OperandKind selects which accessor an operand resolves through. Rules are
// declarative data; evaluation walks this closed set instead of parsing field
// paths at runtime.
type OperandKind int

const (
	// OperandLiteral resolves to Value itself.
	OperandLiteral OperandKind = iota
	// OperandPileLength resolves to the number of cards on the pile.
	OperandPileLength
	// OperandRankFromTop resolves to the rank of the card Value positions
	// below the pile top (0 = top card).
	OperandRankFromTop
	// OperandBottomRank resolves to the rank of the first-appended pile card.
	OperandBottomRank
	// OperandHandSize resolves to the acting player's hand size.
	OperandHandSize
)

// Operand is one side of a condition.
type Operand struct {
	Kind  OperandKind `json:"kind"`
	Value int         `json:"value,omitempty"`
}

// Accessor constructors keep rule declarations readable.
func Literal(n int) Operand     { return Operand{Kind: OperandLiteral, Value: n} }
func PileLength() Operand       { return Operand{Kind: OperandPileLength} }
func RankFromTop(n int) Operand { return Operand{Kind: OperandRankFromTop, Value: n} }
func BottomRank() Operand       { return Operand{Kind: OperandBottomRank} }
func HandSize() Operand         { return Operand{Kind: OperandHandSize} }

// Condition compares two resolved operands. A condition whose operands cannot
// be resolved against the current state is simply not satisfied.
type Condition struct {
	Left    Operand    `json:"left"`
	Compare Comparator `json:"compare"`
	Right   Operand    `json:"right"`
}

// RuleAction is the outcome applied when a slap rule matches.
type RuleAction string

const (
	ActionTakePile RuleAction = "take-pile"
	ActionDrink    RuleAction = "drink"
	ActionDrinkAll RuleAction = "drink-all"
)

// RuleTarget selects who an action applies to.
type RuleTarget string

const (
	TargetSlapper RuleTarget = "slapper"
	TargetAll     RuleTarget = "all"
)

// SlapRule is a named, ordered list of conditions (implicit AND) plus the
// action taken when all conditions hold.
type SlapRule struct {
	Name       string      `json:"name"`
	Conditions []Condition `json:"conditions"`
	Action     RuleAction  `json:"action"`
	Target     RuleTarget  `json:"target,omitempty"`
}

// CheckSlap evaluates the rules in declaration order against the pile and the
// acting player, returning the first rule whose full condition list is
// satisfied, or nil when no rule matches. Evaluation is pure and never panics
// on short piles.
func CheckSlap(pile []Card, player *Player, rules []SlapRule) *SlapRule {
	for i := range rules {
		if ruleMatches(&rules[i], pile, player) {
			return &rules[i]
		}
	}
	return nil
}

func ruleMatches(rule *SlapRule, pile []Card, player *Player) bool {
	if len(rule.Conditions) == 0 {
		return false
	}
	for _, cond := range rule.Conditions {
		if !conditionHolds(cond, pile, player) {
			return false
		}
	}
	return true
}

func conditionHolds(cond Condition, pile []Card, player *Player) bool {
	left, ok := resolveOperand(cond.Left, pile, player)
	if !ok {
		return false
	}
	right, ok := resolveOperand(cond.Right, pile, player)
	if !ok {
		return false
	}
	switch cond.Compare {
	case CompareEq:
		return left == right
	case CompareGte:
		return left >= right
	default:
		return false
	}
}

func resolveOperand(op Operand, pile []Card, player *Player) (int, bool) {
	switch op.Kind {
	case OperandLiteral:
		return op.Value, true
	case OperandPileLength:
		return len(pile), true
	case OperandRankFromTop:
		idx := len(pile) - 1 - op.Value
		if op.Value < 0 || idx < 0 {
			return 0, false
		}
		return pile[idx].Rank, true
	case OperandBottomRank:
		if len(pile) == 0 {
			return 0, false
		}
		return pile[0].Rank, true
	case OperandHandSize:
		if player == nil {
			return 0, false
		}
		return player.Hand.Len(), true
	default:
		return 0, false
	}
}

// FaceCardChallengeCount maps a played card's rank to the number of response
// plays it grants. Zero for non-face cards. The table is fixed, not
// user-configurable.
func FaceCardChallengeCount(c Card) int {
	switch c.Rank {
	case RankJack:
		return 1
	case RankQueen:
		return 2
	case RankKing:
		return 3
	case RankAce:
		return 4
	default:
		return 0
	}
}

// DefaultSlapRules returns the standard rule set in priority order.
func DefaultSlapRules() []SlapRule {
	return []SlapRule{
		{
			Name: "doubles",
			Conditions: []Condition{
				{Left: PileLength(), Compare: CompareGte, Right: Literal(2)},
				{Left: RankFromTop(0), Compare: CompareEq, Right: RankFromTop(1)},
			},
			Action: ActionTakePile,
			Target: TargetSlapper,
		},
		{
			Name: "sandwich",
			Conditions: []Condition{
				{Left: PileLength(), Compare: CompareGte, Right: Literal(3)},
				{Left: RankFromTop(0), Compare: CompareEq, Right: RankFromTop(2)},
			},
			Action: ActionTakePile,
			Target: TargetSlapper,
		},
		{
			Name: "top-bottom",
			Conditions: []Condition{
				{Left: PileLength(), Compare: CompareGte, Right: Literal(2)},
				{Left: BottomRank(), Compare: CompareEq, Right: RankFromTop(0)},
			},
			Action: ActionTakePile,
			Target: TargetSlapper,
		},
	}
}

// HouseSlapRules returns the optional party rules that can be enabled through
// settings alongside the defaults.
func HouseSlapRules() []SlapRule {
	return []SlapRule{
		{
			Name: "sevens-drink",
			Conditions: []Condition{
				{Left: RankFromTop(0), Compare: CompareEq, Right: Literal(7)},
			},
			Action: ActionDrink,
			Target: TargetSlapper,
		},
		{
			Name: "aces-drink-all",
			Conditions: []Condition{
				{Left: RankFromTop(0), Compare: CompareEq, Right: Literal(RankAce)},
			},
			Action: ActionDrinkAll,
			Target: TargetAll,
		},
	}
}

// RulesByName resolves rule names against the known catalog, preserving the
// requested order. An unknown name is a caller contract violation and returns
// an error.
func RulesByName(names []string) ([]SlapRule, error) {
	catalog := map[string]SlapRule{}
	for _, r := range DefaultSlapRules() {
		catalog[r.Name] = r
	}
	for _, r := range HouseSlapRules() {
		catalog[r.Name] = r
	}
	out := make([]SlapRule, 0, len(names))
	for _, name := range names {
		rule, ok := catalog[name]
		if !ok {
			return nil, fmt.Errorf("unknown slap rule %q", name)
		}
		out = append(out, rule)
	}
	return out, nil
}
