package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionForSeatRoundTrip(t *testing.T) {
	// Every seat at every table size for every dealer must receive a
	// unique position from that size's canonical set.
	for size := 2; size <= 9; size++ {
		for dealer := 0; dealer < size; dealer++ {
			t.Run(fmt.Sprintf("size=%d dealer=%d", size, dealer), func(t *testing.T) {
				seen := make(map[Position]int)
				for seat := 0; seat < size; seat++ {
					pos, err := PositionForSeat(seat, dealer, size)
					require.NoError(t, err)
					if prev, dup := seen[pos]; dup {
						t.Errorf("position %s assigned to both seat %d and %d", pos, prev, seat)
					}
					seen[pos] = seat
				}
				assert.Len(t, seen, size)
			})
		}
	}
}

func TestPositionForSeatKnownLayout(t *testing.T) {
	// 6-max with dealer at seat 0
	expected := []Position{BTN, SB, BB, UTG, MP, CO}
	for seat, want := range expected {
		pos, err := PositionForSeat(seat, 0, 6)
		require.NoError(t, err)
		assert.Equal(t, want, pos, "seat %d", seat)
	}
}

func TestPositionForSeatHeadsUp(t *testing.T) {
	pos, err := PositionForSeat(1, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, SB, pos)

	pos, err = PositionForSeat(0, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, BB, pos)
}

func TestPositionForSeatUnsupportedSize(t *testing.T) {
	_, err := PositionForSeat(0, 0, 1)
	assert.Error(t, err)

	_, err = PositionForSeat(0, 0, 10)
	assert.Error(t, err)
}
