package parse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		fallback float64
		want     float64
	}{
		{name: "euro amount with spaces", input: "2 400 €", fallback: 0, want: 2400},
		{name: "plain thousands", input: "5 100", fallback: 0, want: 5100},
		{name: "decimal point", input: "5.10", fallback: 0, want: 5.1},
		{name: "decimal comma", input: "5,10", fallback: 0, want: 5.1},
		{name: "numeric zero", input: 0, fallback: 42, want: 0},
		{name: "float passthrough", input: 12.5, fallback: 0, want: 12.5},
		{name: "mileage with unit", input: "48 000 km", fallback: 0, want: 48000},
		{name: "garbage", input: "n/a", fallback: 7, want: 7},
		{name: "empty string", input: "", fallback: 3, want: 3},
		{name: "nil", input: nil, fallback: 9, want: 9},
		{name: "nan input", input: math.NaN(), fallback: 1, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Number(tc.input, tc.fallback)
			require.False(t, math.IsNaN(got) || math.IsInf(got, 0))
			require.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Peugeot 208 GT Line", CleanText("  Peugeot \n 208\t GT  Line "))
	require.Equal(t, "", CleanText("   \n\t "))
}

func TestYear(t *testing.T) {
	t.Parallel()

	year, ok := Year("1ère mise en circulation : 03/2019")
	require.True(t, ok)
	require.Equal(t, 2019, year)

	year, ok = Year("immatriculée en 1998")
	require.True(t, ok)
	require.Equal(t, 1998, year)

	_, ok = Year("aucune date connue")
	require.False(t, ok)
}

func TestEuroAmount(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 9500, EuroAmount("9 500 €"), 1e-9)
	require.InDelta(t, 0, EuroAmount("prix inconnu"), 1e-9)
}

func TestHorsePower(t *testing.T) {
	t.Parallel()

	hp, ok := HorsePower("110 cv")
	require.True(t, ok)
	require.InDelta(t, 110, hp, 1e-9)

	hp, ok = HorsePower("81kW")
	require.True(t, ok)
	require.InDelta(t, 81, hp, 1e-9)

	hp, ok = HorsePower("130 CH fiscaux")
	require.True(t, ok)
	require.InDelta(t, 130, hp, 1e-9)

	hp, ok = HorsePower("95")
	require.True(t, ok)
	require.InDelta(t, 95, hp, 1e-9)

	_, ok = HorsePower("")
	require.False(t, ok)

	_, ok = HorsePower("inconnue")
	require.False(t, ok)
}
