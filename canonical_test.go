package units

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeDeterminism(t *testing.T) {
	for _, u := range []Unit{
		metre,
		kilometre,
		hertz,
		newton,
		Div(kilometre, hour),
		Scale(MustMagnitude(5, 9), metre),
	} {
		first := canonicalize(u)
		second := canonicalize(u)
		assert.True(t, first.mag.Equal(second.mag))
		assert.True(t, sameExpr(first.ref, second.ref))
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Unit
		equal bool
	}{
		{"reflexive", metre, metre, true},
		{"hertz is one per second", hertz, Inverse(second), true},
		{"named unit unfolds", newton, Div(Mul(kilogram, metre), Square(second)), true},
		{"different magnitude", metre, kilometre, false},
		{"different dimension", metre, second, false},
		{"prefix against scaled", kilometre, Scale(MustMagnitude(1000, 1), metre), true},
		{"hour against scaled second", hour, Scale(MustMagnitude(3600, 1), second), true},
		{"dimensionless", Div(metre, metre), Dimensionless, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.equal, Equal(test.a, test.b))
			assert.Equal(t, test.equal, Equal(test.b, test.a))
		})
	}
}

func TestConvertible(t *testing.T) {
	assert.True(t, Convertible(metre, metre))
	assert.True(t, Convertible(metre, kilometre))
	assert.True(t, Convertible(Div(kilometre, hour), Div(metre, second)))
	assert.False(t, Convertible(metre, second))
	assert.False(t, Convertible(metre, Square(metre)))
}

func TestConversionFactor(t *testing.T) {
	identity, err := ConversionFactor(metre, metre)
	require.NoError(t, err)
	assert.True(t, identity.Equal(One()))

	factor, err := ConversionFactor(kilometre, metre)
	require.NoError(t, err)
	n, err := factor.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), n)

	factor, err = ConversionFactor(metre, kilometre)
	require.NoError(t, err)
	assert.True(t, factor.Equal(MustMagnitude(1, 1000)))

	// km/h to m/s is the exact ratio 5/18
	factor, err = ConversionFactor(Div(kilometre, hour), Div(metre, second))
	require.NoError(t, err)
	assert.True(t, factor.Equal(MustMagnitude(5, 18)))

	_, err = ConversionFactor(metre, second)
	assert.ErrorIs(t, err, ErrNotConvertible)
}

func TestCommonUnit(t *testing.T) {
	// integrally related scales resolve to the finer-grained unit
	common, err := CommonUnit(metre, kilometre)
	require.NoError(t, err)
	require.Same(t, metre, common)

	common, err = CommonUnit(kilometre, metre)
	require.NoError(t, err)
	require.Same(t, metre, common)

	common, err = CommonUnit(second, hour)
	require.NoError(t, err)
	require.Same(t, second, common)

	_, err = CommonUnit(metre, second)
	assert.ErrorIs(t, err, ErrNotConvertible)
}

func TestCommonUnitSynthesized(t *testing.T) {
	centimetre := NewPrefixedUnit(Sym("c"), MustMagnitude(1, 100), metre)
	inch := NewUnit(Sym("in"), MustMagnitude(254, 10000), metre)

	common, err := CommonUnit(inch, centimetre)
	require.NoError(t, err)

	// neither scale divides the other, so a scaled unit over the shared
	// base expression is synthesized; it represents both sides exactly
	factor, err := ConversionFactor(inch, common)
	require.NoError(t, err)
	n, err := factor.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(127), n)

	factor, err = ConversionFactor(centimetre, common)
	require.NoError(t, err)
	n, err = factor.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(50), n)
}

func TestCommonUnitTieBreak(t *testing.T) {
	// two distinct names for the same unit: the lexicographically smaller
	// symbol ("klick" sorts before "km") wins regardless of argument or
	// declaration order
	klick := NewUnit(Sym("klick"), MustMagnitude(1000, 1), metre)

	common, err := CommonUnit(kilometre, klick)
	require.NoError(t, err)
	require.Same(t, klick, common)

	common, err = CommonUnit(klick, kilometre)
	require.NoError(t, err)
	require.Same(t, klick, common)

	// a named unit beats an equal anonymous expression
	common, err = CommonUnit(Scale(MustMagnitude(1000, 1), metre), klick)
	require.NoError(t, err)
	require.Same(t, klick, common)

	// two equal anonymous expressions tie-break on their rendered ASCII
	// symbols, independent of argument order
	minute := NewUnit(Sym("min"), MustMagnitude(60, 1), second)
	anonA := Square(minute)
	anonB := Scale(MustMagnitude(3600, 1), Square(second))
	require.True(t, Equal(anonA, anonB))

	first, err := CommonUnit(anonA, anonB)
	require.NoError(t, err)
	swapped, err := CommonUnit(anonB, anonA)
	require.NoError(t, err)
	assert.Equal(t, first, swapped)
	assert.Equal(t, String(first), String(swapped))
}

func TestConcurrentQueries(t *testing.T) {
	// canonical forms are write-once; first-time fills and cache hits
	// from many goroutines must agree
	candela := NewBaseUnit(Sym("cd"))
	megacandela := NewPrefixedUnit(Sym("M"), MustMagnitude(1000000, 1), candela)
	fixtures := []Unit{candela, megacandela, hertz, newton, Div(kilometre, hour)}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				for _, u := range fixtures {
					assert.True(t, Equal(u, u))
					assert.True(t, Convertible(u, u))
				}
				factor, err := ConversionFactor(megacandela, candela)
				assert.NoError(t, err)
				n, err := factor.Int64()
				assert.NoError(t, err)
				assert.Equal(t, int64(1000000), n)
			}
		}()
	}
	wg.Wait()
}

func TestCommonUnitVariadic(t *testing.T) {
	millimetre := NewPrefixedUnit(Sym("m"), MustMagnitude(1, 1000), metre)

	common, err := CommonUnit(kilometre, metre, millimetre)
	require.NoError(t, err)
	require.Same(t, millimetre, common)

	_, err = CommonUnit(kilometre, metre, second)
	assert.ErrorIs(t, err, ErrNotConvertible)
}
