package rules

import (
	"slices"

	"github.com/lox/belote/internal/cards"
)

// Kind is a scoring combination a seat may declare.
type Kind int

const (
	KindNone Kind = iota
	Sequence3
	Sequence4
	Sequence5
	Sequence6
	Sequence7
	Bela
	FourAces
	FourKings
	FourQueens
	FourTens
	FourNines
	FourJacks
	Belot
)

// kindInfo is the authoritative combination table.
var kindInfo = [...]struct {
	name  string
	value int
	tier  int
}{
	KindNone:   {"none", 0, 0},
	Sequence3:  {"sequence of 3", 20, 1},
	Sequence4:  {"sequence of 4", 50, 2},
	Sequence5:  {"sequence of 5", 100, 3},
	Sequence6:  {"sequence of 6", 100, 3},
	Sequence7:  {"sequence of 7", 100, 3},
	Bela:       {"bela", 20, 4},
	FourAces:   {"four aces", 100, 5},
	FourKings:  {"four kings", 100, 6},
	FourQueens: {"four queens", 100, 7},
	FourTens:   {"four tens", 100, 8},
	FourNines:  {"four nines", 150, 9},
	FourJacks:  {"four jacks", 200, 10},
	Belot:      {"belot", 0, 11},
}

var fourOfAKind = map[cards.Rank]Kind{
	cards.Ace:   FourAces,
	cards.King:  FourKings,
	cards.Queen: FourQueens,
	cards.Ten:   FourTens,
	cards.Nine:  FourNines,
	cards.Jack:  FourJacks,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return "unknown"
	}
	return kindInfo[k].name
}

// Value is the number of points the combination adds to the pool. Belot
// ends the game instead of scoring, so its value is zero.
func (k Kind) Value() int {
	if k < 0 || int(k) >= len(kindInfo) {
		return 0
	}
	return kindInfo[k].value
}

// Tier is the cross-kind strength used to compare declarations.
func (k Kind) Tier() int {
	if k < 0 || int(k) >= len(kindInfo) {
		return 0
	}
	return kindInfo[k].tier
}

// IsSequence reports whether k is a run of consecutive ranks.
func (k Kind) IsSequence() bool {
	return k >= Sequence3 && k <= Sequence7
}

// Combination is a classified card subset.
type Combination struct {
	Kind  Kind
	Cards []cards.Card
}

// Declaration is a combination declared by a seat on behalf of its team.
type Declaration struct {
	Seat string
	Team int
	Combination
}

// Classify returns the combination formed by exactly this subset. A subset
// with repeated cards never classifies.
func Classify(subset []cards.Card, trump cards.Suit) (Kind, bool) {
	n := len(subset)
	if n < 2 || n > cards.DeckSize/4 || hasDuplicates(subset) {
		return KindNone, false
	}

	sameSuit := true
	sameRank := true
	for _, c := range subset[1:] {
		sameSuit = sameSuit && c.Suit == subset[0].Suit
		sameRank = sameRank && c.Rank == subset[0].Rank
	}

	switch {
	case n == 8 && sameSuit:
		return Belot, true
	case n == 2:
		if sameSuit && subset[0].Suit == trump && isKingQueen(subset) {
			return Bela, true
		}
		return KindNone, false
	case n == 4 && sameRank:
		k, ok := fourOfAKind[subset[0].Rank]
		return k, ok
	case n >= 3 && sameSuit && isConsecutive(subset):
		return Sequence3 + Kind(n-3), true
	}
	return KindNone, false
}

// Compare orders two combinations by declaration strength. Equal-tier
// sequences are split by the plain value of their highest-valued card.
func Compare(a, b Combination) int {
	if d := a.Kind.Tier() - b.Kind.Tier(); d != 0 {
		return d
	}
	if a.Kind.IsSequence() && b.Kind.IsSequence() {
		return topPlainPoints(a.Cards) - topPlainPoints(b.Cards)
	}
	return 0
}

// FindAll enumerates every non-empty subset of playable and returns the
// ones that classify, in bitmask order. playable is at most hand plus talon
// (ten cards), so the 2^n walk stays small.
func FindAll(playable []cards.Card, trump cards.Suit) []Combination {
	n := len(playable)
	var out []Combination
	subset := make([]cards.Card, 0, n)
	for mask := 1; mask < 1<<n; mask++ {
		subset = subset[:0]
		for j := range n {
			if mask&(1<<j) != 0 {
				subset = append(subset, playable[j])
			}
		}
		if k, ok := Classify(subset, trump); ok {
			out = append(out, Combination{Kind: k, Cards: slices.Clone(subset)})
		}
	}
	return out
}

// Best returns the strongest combination that can be declared from playable.
func Best(playable []cards.Card, trump cards.Suit) (Combination, bool) {
	return Strongest(FindAll(playable, trump))
}

// Strongest returns the highest-ranked combination; the earliest wins ties.
func Strongest(combos []Combination) (Combination, bool) {
	if len(combos) == 0 {
		return Combination{}, false
	}
	best := combos[0]
	for _, c := range combos[1:] {
		if Compare(c, best) > 0 {
			best = c
		}
	}
	return best, true
}

// ResolveDeclarations picks the single scoring declaration. Each team's
// strongest declaration is compared; a tie goes to trumpTeam, or to team 2
// when nobody named trump.
func ResolveDeclarations(decls []Declaration, trumpTeam int) (Declaration, bool) {
	best1, ok1 := strongestForTeam(decls, 1)
	best2, ok2 := strongestForTeam(decls, 2)

	switch {
	case !ok1 && !ok2:
		return Declaration{}, false
	case !ok1:
		return best2, true
	case !ok2:
		return best1, true
	}

	switch cmp := Compare(best1.Combination, best2.Combination); {
	case cmp > 0:
		return best1, true
	case cmp < 0:
		return best2, true
	case trumpTeam == 1:
		return best1, true
	default:
		return best2, true
	}
}

func strongestForTeam(decls []Declaration, team int) (Declaration, bool) {
	var best Declaration
	found := false
	for _, d := range decls {
		if d.Team != team || d.Kind == KindNone {
			continue
		}
		if !found || Compare(d.Combination, best.Combination) > 0 {
			best = d
			found = true
		}
	}
	return best, found
}

func isKingQueen(pair []cards.Card) bool {
	a, b := pair[0].Rank, pair[1].Rank
	return (a == cards.King && b == cards.Queen) || (a == cards.Queen && b == cards.King)
}

func isConsecutive(run []cards.Card) bool {
	ranks := make([]int, len(run))
	for i, c := range run {
		ranks[i] = int(c.Rank)
	}
	slices.Sort(ranks)
	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			return false
		}
	}
	return true
}

func topPlainPoints(cs []cards.Card) int {
	top := -1
	for _, c := range cs {
		top = max(top, cards.PlainPoints(c.Rank))
	}
	return top
}

func hasDuplicates(cs []cards.Card) bool {
	for i := range cs {
		for j := i + 1; j < len(cs); j++ {
			if cs[i] == cs[j] {
				return true
			}
		}
	}
	return false
}
