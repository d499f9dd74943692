package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelRoundTrip(t *testing.T) {
	for x := BorderLeft; x <= BorderRight; x++ {
		if got := PixelXFromEast(EastFromPixelX(x)); got != x {
			t.Fatalf("x round trip: got %d, want %d", got, x)
		}
	}
	for y := BorderUp; y <= BorderDown; y++ {
		if got := PixelYFromNorth(NorthFromPixelY(y)); got != y {
			t.Fatalf("y round trip: got %d, want %d", got, y)
		}
	}
}

func TestProjection(t *testing.T) {
	tests := []struct {
		name  string
		north float64
		east  float64
		wantX int
		wantY int
	}{
		{"origin", NorthernOrigin, EasternOrigin, 0, 0},
		{"player start", PlayerStartNorth, PlayerStartEast, 549, 310},
		{"police start", PoliceStartNorth, PoliceStartEast, 10, 10},
		{"rounds to nearest", NorthernOrigin + 0.8/Scale, EasternOrigin + 0.4/Scale, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantX, PixelXFromEast(tt.east))
			assert.Equal(t, tt.wantY, PixelYFromNorth(tt.north))
		})
	}
}

func TestInBounds(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top left corner", BorderLeft, BorderUp, true},
		{"bottom right corner", BorderRight, BorderDown, true},
		{"center", 500, 300, true},
		{"left of map", BorderLeft - 1, 300, false},
		{"right of map", BorderRight + 1, 300, false},
		{"below map", 500, BorderUp - 1, false},
		{"above map", 500, BorderDown + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InBounds(tt.x, tt.y))
		})
	}
}
