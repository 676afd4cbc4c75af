// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"fmt"
	"math"
	"math/big"
)

// ratio is a rational exponent in lowest terms with a positive denominator.
// It is a comparable value type so the terms built from it support ==.
// Arithmetic widens through math/big before reducing, so intermediate
// products can never silently overflow; a reduced result that does not fit
// an int64 is no exponent any unit algebra can reach and panics.
type ratio struct {
	num, den int64
}

var (
	ratioZero = ratio{0, 1}
	ratioOne  = ratio{1, 1}
)

// newRatio normalizes num/den; den must be non-zero.
func newRatio(num, den int64) ratio {
	return ratioFromBig(big.NewInt(num), big.NewInt(den))
}

// ratioFromBig reduces num/den to lowest terms with a positive denominator
// and narrows back to int64, consuming its arguments.
func ratioFromBig(num, den *big.Int) ratio {
	if den.Sign() == 0 {
		panic("ratio: zero denominator")
	}
	if num.Sign() == 0 {
		return ratioZero
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
	num.Quo(num, g)
	den.Quo(den, g)
	if !num.IsInt64() || !den.IsInt64() || num.Int64() == math.MinInt64 {
		panic(fmt.Sprintf("ratio: exponent %s/%s overflows int64", num, den))
	}
	return ratio{num.Int64(), den.Int64()}
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func (r ratio) add(other ratio) ratio {
	num := new(big.Int).Mul(big.NewInt(r.num), big.NewInt(other.den))
	num.Add(num, new(big.Int).Mul(big.NewInt(other.num), big.NewInt(r.den)))
	den := new(big.Int).Mul(big.NewInt(r.den), big.NewInt(other.den))
	return ratioFromBig(num, den)
}

func (r ratio) mul(other ratio) ratio {
	num := new(big.Int).Mul(big.NewInt(r.num), big.NewInt(other.num))
	den := new(big.Int).Mul(big.NewInt(r.den), big.NewInt(other.den))
	return ratioFromBig(num, den)
}

func (r ratio) neg() ratio {
	return ratio{-r.num, r.den}
}

func (r ratio) isZero() bool {
	return r.num == 0
}

func (r ratio) isInt() bool {
	return r.den == 1
}

func (r ratio) sign() int {
	switch {
	case r.num > 0:
		return 1
	case r.num < 0:
		return -1
	}
	return 0
}

// cmp returns -1, 0 or 1 as r is less than, equal to or greater than other.
func (r ratio) cmp(other ratio) int {
	a := new(big.Int).Mul(big.NewInt(r.num), big.NewInt(other.den))
	b := new(big.Int).Mul(big.NewInt(other.num), big.NewInt(r.den))
	return a.Cmp(b)
}

// trunc is the integral part of r, rounded toward zero.
func (r ratio) trunc() int64 {
	return r.num / r.den
}

func (r ratio) float() float64 {
	return float64(r.num) / float64(r.den)
}

func (r ratio) String() string {
	if r.den == 1 {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}
