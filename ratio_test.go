package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatioArithmeticStaysExactAtWideValues(t *testing.T) {
	// a sum whose raw cross-products exceed int64 must still reduce
	// exactly: 1/3e18 + 1/5e18 = 8/15e18 = 1/1.875e18
	a := newRatio(1, 3_000_000_000_000_000_000)
	b := newRatio(1, 5_000_000_000_000_000_000)
	assert.Equal(t, ratio{1, 1_875_000_000_000_000_000}, a.add(b))

	// a product whose intermediate terms overflow reduces back under the
	// boundary
	wide := newRatio(1<<62, 3)
	assert.Equal(t, ratioOne, wide.mul(newRatio(3, 1<<62)))

	// comparisons must not wrap when the cross-products overflow
	assert.Equal(t, 1, a.cmp(b))
	assert.Equal(t, -1, b.cmp(a))
	assert.Equal(t, 0, a.cmp(newRatio(1, 3_000_000_000_000_000_000)))
	assert.Equal(t, 1,
		newRatio(4_000_000_000_000_000_000, 3).cmp(newRatio(3_000_000_000_000_000_000, 4)))
}
