package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		input string
		want  Coordinate
	}{
		{"A1", Coordinate{Row: 0, Col: 0}},
		{"a1", Coordinate{Row: 0, Col: 0}},
		{"J10", Coordinate{Row: 9, Col: 9}},
		{" c7 ", Coordinate{Row: 2, Col: 6}},
		{"B3", Coordinate{Row: 1, Col: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCoordinate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCoordinate_OutOfBounds(t *testing.T) {
	for _, input := range []string{"K1", "Z5", "A0", "A11", "j11", "A100", "A99999999999999999999"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseCoordinate(input)
			assert.ErrorIs(t, err, ErrOutOfBounds)
		})
	}
}

func TestParseCoordinate_Malformed(t *testing.T) {
	for _, input := range []string{"", "A", "1A", "AA1", "A1x", "#1", "A-1", "A01", "a001", "J010", "A00"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseCoordinate(input)
			assert.ErrorIs(t, err, ErrMalformedCommand)
		})
	}
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "A1", Coordinate{Row: 0, Col: 0}.String())
	assert.Equal(t, "J10", Coordinate{Row: 9, Col: 9}.String())
	assert.Equal(t, "D5", Coordinate{Row: 3, Col: 4}.String())
}

func TestCoordinate_Neighbors(t *testing.T) {
	assert.Equal(t, []Coordinate{
		{Row: 3, Col: 4}, {Row: 5, Col: 4}, {Row: 4, Col: 3}, {Row: 4, Col: 5},
	}, Coordinate{Row: 4, Col: 4}.Neighbors())

	// Corner only has two in-bounds neighbours
	assert.Equal(t, []Coordinate{
		{Row: 1, Col: 0}, {Row: 0, Col: 1},
	}, Coordinate{Row: 0, Col: 0}.Neighbors())
}
