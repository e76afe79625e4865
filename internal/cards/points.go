package cards

// TotalPoints is the sum of every card's value with one suit as trump.
const TotalPoints = 152

var plainPoints = [...]int{
	Seven: 0,
	Eight: 0,
	Nine:  0,
	Ten:   10,
	Jack:  2,
	Queen: 3,
	King:  4,
	Ace:   11,
}

var trumpPoints = [...]int{
	Seven: 0,
	Eight: 0,
	Nine:  14,
	Ten:   10,
	Jack:  20,
	Queen: 3,
	King:  4,
	Ace:   11,
}

// PlainPoints returns the value of a rank in a non-trump suit.
func PlainPoints(r Rank) int { return plainPoints[r] }

// TrumpPoints returns the value of a rank in the trump suit.
func TrumpPoints(r Rank) int { return trumpPoints[r] }

// Points returns the card's value given the trump suit.
func (c Card) Points(trump Suit) int {
	if c.Suit == trump {
		return trumpPoints[c.Rank]
	}
	return plainPoints[c.Rank]
}

// Contains reports whether c is in cs.
func Contains(cs []Card, c Card) bool {
	return IndexOf(cs, c) >= 0
}

// IndexOf returns the position of c in cs, or -1.
func IndexOf(cs []Card, c Card) int {
	for i, x := range cs {
		if x == c {
			return i
		}
	}
	return -1
}

// Remove returns cs without the first occurrence of c. The input slice is
// modified in place.
func Remove(cs []Card, c Card) ([]Card, bool) {
	i := IndexOf(cs, c)
	if i < 0 {
		return cs, false
	}
	return append(cs[:i], cs[i+1:]...), true
}

// CountSuit returns how many cards of suit s are in cs.
func CountSuit(cs []Card, s Suit) int {
	n := 0
	for _, c := range cs {
		if c.Suit == s {
			n++
		}
	}
	return n
}

// HasSuit reports whether cs holds at least one card of suit s.
func HasSuit(cs []Card, s Suit) bool {
	for _, c := range cs {
		if c.Suit == s {
			return true
		}
	}
	return false
}
