package cards

import (
	"testing"

	"github.com/lox/belote/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		{name: "jack of hearts", input: "Jh", want: New(Jack, Hearts)},
		{name: "ten uses T", input: "Ts", want: New(Ten, Spades)},
		{name: "lower-case rank", input: "as", want: New(Ace, Spades)},
		{name: "seven of clubs", input: "7c", want: New(Seven, Clubs)},
		{name: "six is not in the deck", input: "6c", wantErr: true},
		{name: "unknown suit", input: "Ax", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: "Jhh", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCard(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.String(), got.String())
		})
	}
}

func TestPointTables(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 20, New(Jack, Hearts).Points(Hearts))
	assert.Equal(t, 2, New(Jack, Hearts).Points(Spades))
	assert.Equal(t, 14, New(Nine, Clubs).Points(Clubs))
	assert.Equal(t, 0, New(Nine, Clubs).Points(Diamonds))

	for _, trump := range Suits {
		total := 0
		for _, s := range Suits {
			for _, r := range Ranks {
				total += New(r, s).Points(trump)
			}
		}
		assert.Equal(t, TotalPoints, total, "trump %s", trump)
	}
}

func TestZeroValueRanks(t *testing.T) {
	t.Parallel()

	for _, r := range []Rank{Seven, Eight, Nine} {
		assert.Zero(t, New(r, Hearts).Points(Spades), "plain %s", r)
	}
	for _, r := range []Rank{Seven, Eight} {
		assert.Zero(t, New(r, Hearts).Points(Hearts), "trump %s", r)
	}
	assert.Equal(t, 10, New(Ten, Hearts).Points(Spades))
	assert.Equal(t, 4, New(King, Hearts).Points(Hearts))
}

func TestDeckIsCompleteAndSeeded(t *testing.T) {
	t.Parallel()

	d1 := NewDeck(randutil.New(42))
	d2 := NewDeck(randutil.New(42))
	d3 := NewDeck(randutil.New(43))

	all1 := d1.Deal(DeckSize)
	require.Len(t, all1, DeckSize)
	assert.Equal(t, all1, d2.Deal(DeckSize), "same seed must give same order")
	assert.NotEqual(t, all1, d3.Deal(DeckSize))

	seen := map[Card]bool{}
	for _, c := range all1 {
		seen[c] = true
	}
	assert.Len(t, seen, DeckSize)
	assert.Equal(t, 0, d1.CardsRemaining())
	assert.Nil(t, d1.Deal(1))
}

func TestDealConsumesDeck(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(7))
	first := d.Deal(3)
	assert.Equal(t, 29, d.CardsRemaining())
	rest := d.Remaining()
	require.Len(t, rest, 29)
	for _, c := range first {
		assert.NotContains(t, rest, c)
	}
}

func TestStackedDeck(t *testing.T) {
	t.Parallel()

	order := NewDeck(randutil.New(1)).Remaining()
	d, err := NewStackedDeck(order)
	require.NoError(t, err)
	assert.Equal(t, order, d.Deal(DeckSize))

	dup := append([]Card{}, order...)
	dup[1] = dup[0]
	_, err = NewStackedDeck(dup)
	require.Error(t, err)

	_, err = NewStackedDeck(order[:10])
	require.Error(t, err)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	hand := MustParseCards("Jh 9h Ah")
	hand, ok := Remove(hand, New(Nine, Hearts))
	require.True(t, ok)
	assert.Equal(t, MustParseCards("Jh Ah"), hand)

	_, ok = Remove(hand, New(Seven, Clubs))
	assert.False(t, ok)
}
