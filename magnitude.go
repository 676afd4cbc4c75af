// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// A Magnitude is a strictly positive real scale factor kept in exact
// symbolic form: a product of basis powers, where each basis is either a
// prime number or a named irrational constant and each exponent is
// rational. Arithmetic never goes through floating point; only the final
// Float64 extraction does, and only when it has to.
type Magnitude struct {
	terms []basePower // sorted by basis, no zero exponents
}

// basis of a magnitude term: a prime number or a named irrational constant.
type basis struct {
	prime  int64   // > 0 when the basis is a prime number
	symbol Symbol  // display symbol of an irrational constant (prime == 0)
	value  float64 // numeric value of an irrational constant
}

type basePower struct {
	base basis
	exp  ratio
}

// Prime bases order numerically and come before irrational bases, which
// order by symbol. This gives the total canonical term order.
func basisLess(a, b basis) bool {
	if a.prime > 0 && b.prime > 0 {
		return a.prime < b.prime
	}
	if a.prime > 0 || b.prime > 0 {
		return a.prime > 0
	}
	if a.symbol.ASCII != b.symbol.ASCII {
		return a.symbol.ASCII < b.symbol.ASCII
	}
	return a.symbol.Unicode < b.symbol.Unicode
}

// One is the identity magnitude.
func One() Magnitude {
	return Magnitude{}
}

// Pi is the magnitude of the circle constant, kept symbolic so that e.g.
// radian-degree factors stay exact until a float is requested.
var Pi = Magnitude{terms: []basePower{{
	base: basis{symbol: Symbol{Unicode: "π", ASCII: "pi"}, value: math.Pi},
	exp:  ratioOne,
}}}

// NewMagnitude builds the exact magnitude num/den. Both parts must be
// non-zero and the value strictly positive.
func NewMagnitude(num, den int64) (Magnitude, error) {
	if den == 0 || num == 0 || (num < 0) != (den < 0) {
		return Magnitude{}, fmt.Errorf("%w: %d/%d", ErrNonPositive, num, den)
	}
	m := Magnitude{terms: factorAbs(num)}
	return m.Div(Magnitude{terms: factorAbs(den)}), nil
}

// factorAbs factorizes |n|; the minimum int64 cannot be negated, but its
// absolute value is exactly 2^63.
func factorAbs(n int64) []basePower {
	if n == math.MinInt64 {
		return []basePower{{base: basis{prime: 2}, exp: ratio{63, 1}}}
	}
	return factorize(abs64(n))
}

// MustMagnitude is NewMagnitude for literals in unit declarations.
func MustMagnitude(num, den int64) Magnitude {
	m, err := NewMagnitude(num, den)
	if err != nil {
		panic(err)
	}
	return m
}

// NewConstant declares an irrational basis (such as π) with its display
// symbol and the numeric value used once exactness has to degrade.
func NewConstant(symbol Symbol, value float64) (Magnitude, error) {
	if value <= 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return Magnitude{}, fmt.Errorf("%w: %s = %v", ErrNonPositive, symbol.ASCII, value)
	}
	return Magnitude{terms: []basePower{{
		base: basis{symbol: symbol, value: value},
		exp:  ratioOne,
	}}}, nil
}

// factorize returns the sorted prime-power terms of n >= 1.
func factorize(n int64) []basePower {
	var terms []basePower
	for p := int64(2); p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		var count int64
		for n%p == 0 {
			n /= p
			count++
		}
		terms = append(terms, basePower{base: basis{prime: p}, exp: ratio{count, 1}})
	}
	if n > 1 {
		terms = append(terms, basePower{base: basis{prime: n}, exp: ratioOne})
	}
	return terms
}

// mergeTerms folds two sorted term lists, adding exponents of equal bases
// and dropping terms whose exponent cancels to zero.
func mergeTerms(a, b []basePower) []basePower {
	merged := make([]basePower, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].base == b[j].base:
			if exp := a[i].exp.add(b[j].exp); !exp.isZero() {
				merged = append(merged, basePower{base: a[i].base, exp: exp})
			}
			i++
			j++
		case basisLess(a[i].base, b[j].base):
			merged = append(merged, a[i])
			i++
		default:
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// Mul returns the product of the two magnitudes.
func (m Magnitude) Mul(other Magnitude) Magnitude {
	return Magnitude{terms: mergeTerms(m.terms, other.terms)}
}

// Div returns the quotient of the two magnitudes.
func (m Magnitude) Div(other Magnitude) Magnitude {
	return m.Mul(other.powRatio(ratio{-1, 1}))
}

// Pow raises the magnitude to the rational power num/den.
func (m Magnitude) Pow(num, den int64) (Magnitude, error) {
	if den == 0 {
		return Magnitude{}, fmt.Errorf("%w: %d/0", ErrInvalidExponent, num)
	}
	return m.powRatio(newRatio(num, den)), nil
}

func (m Magnitude) powRatio(r ratio) Magnitude {
	if r.isZero() || len(m.terms) == 0 {
		return Magnitude{}
	}
	terms := make([]basePower, len(m.terms))
	for i, t := range m.terms {
		terms[i] = basePower{base: t.base, exp: t.exp.mul(r)}
	}
	return Magnitude{terms: terms}
}

// Equal reports whether the two magnitudes are exactly equal. Terms
// compare by (basis, exponent) pairs, so roots and irrational factors
// compare exactly without evaluation.
func (m Magnitude) Equal(other Magnitude) bool {
	if len(m.terms) != len(other.terms) {
		return false
	}
	for i, t := range m.terms {
		if t != other.terms[i] {
			return false
		}
	}
	return true
}

// IsOne reports whether the magnitude is the identity.
func (m Magnitude) IsOne() bool {
	return len(m.terms) == 0
}

// IsIntegral reports whether the magnitude is a whole number.
func (m Magnitude) IsIntegral() bool {
	for _, t := range m.terms {
		if t.base.prime == 0 || !t.exp.isInt() || t.exp.num < 0 {
			return false
		}
	}
	return true
}

// Rat returns the exact rational value, or ErrInexact when the magnitude
// carries an irrational basis or a fractional exponent.
func (m Magnitude) Rat() (*big.Rat, error) {
	value := big.NewRat(1, 1)
	for _, t := range m.terms {
		if t.base.prime == 0 {
			return nil, fmt.Errorf("%w: irrational factor %s", ErrInexact, t.base.symbol.ASCII)
		}
		if !t.exp.isInt() {
			return nil, fmt.Errorf("%w: fractional exponent %s on %d", ErrInexact, t.exp, t.base.prime)
		}
		p := new(big.Int).Exp(big.NewInt(t.base.prime), big.NewInt(abs64(t.exp.num)), nil)
		f := new(big.Rat).SetInt(p)
		if t.exp.num < 0 {
			f.Inv(f)
		}
		value.Mul(value, f)
	}
	return value, nil
}

// Int64 returns the exact integer value, or ErrInexact when the magnitude
// is not a whole number or does not fit in an int64.
func (m Magnitude) Int64() (int64, error) {
	value, err := m.Rat()
	if err != nil {
		return 0, err
	}
	if !value.IsInt() || !value.Num().IsInt64() {
		return 0, fmt.Errorf("%w: %s is not an int64", ErrInexact, value.RatString())
	}
	return value.Num().Int64(), nil
}

const precision = 113 // match IEEE 754 quadruple-precision binary floating-point format (binary128)

// Float64 returns the numeric value. Rational magnitudes fold through
// math/big at full precision; irrational bases and fractional exponents
// fall back to floating point term by term.
func (m Magnitude) Float64() float64 {
	if value, err := m.Rat(); err == nil {
		f, _ := new(big.Float).SetPrec(precision).SetRat(value).Float64()
		return f
	}
	value := 1.0
	for _, t := range m.terms {
		base := t.base.value
		if t.base.prime > 0 {
			base = float64(t.base.prime)
		}
		value *= math.Pow(base, t.exp.float())
	}
	return value
}

// Common returns the greatest magnitude dividing both m and other with a
// non-negative-exponent remainder on each side: per basis, the smaller of
// the two exponents, where a missing basis counts as exponent zero.
func (m Magnitude) Common(other Magnitude) Magnitude {
	var terms []basePower
	i, j := 0, 0
	emit := func(b basis, e ratio) {
		if !e.isZero() {
			terms = append(terms, basePower{base: b, exp: e})
		}
	}
	for i < len(m.terms) && j < len(other.terms) {
		a, b := m.terms[i], other.terms[j]
		switch {
		case a.base == b.base:
			e := a.exp
			if b.exp.cmp(e) < 0 {
				e = b.exp
			}
			emit(a.base, e)
			i++
			j++
		case basisLess(a.base, b.base):
			if a.exp.sign() < 0 {
				emit(a.base, a.exp)
			}
			i++
		default:
			if b.exp.sign() < 0 {
				emit(b.base, b.exp)
			}
			j++
		}
	}
	for ; i < len(m.terms); i++ {
		if m.terms[i].exp.sign() < 0 {
			emit(m.terms[i].base, m.terms[i].exp)
		}
	}
	for ; j < len(other.terms); j++ {
		if other.terms[j].exp.sign() < 0 {
			emit(other.terms[j].base, other.terms[j].exp)
		}
	}
	return Magnitude{terms: terms}
}

// powerOfTen factors out the largest signed power of ten shared by the
// exponents of bases 2 and 5, for display only. The remainder multiplied
// by 10^exp reproduces the magnitude.
func (m Magnitude) powerOfTen() (int64, Magnitude) {
	var e2, e5 ratio
	for _, t := range m.terms {
		switch t.base.prime {
		case 2:
			e2 = t.exp
		case 5:
			e5 = t.exp
		}
	}
	if e2.isZero() || e5.isZero() || e2.sign() != e5.sign() {
		return 0, m
	}
	t2, t5 := e2.trunc(), e5.trunc()
	exp := t2
	if abs64(t5) < abs64(t2) {
		exp = t5
	}
	if exp == 0 {
		return 0, m
	}
	return exp, m.Div(powerOfTenMagnitude(exp))
}

func powerOfTenMagnitude(exp int64) Magnitude {
	if exp == 0 {
		return Magnitude{}
	}
	return Magnitude{terms: []basePower{
		{base: basis{prime: 2}, exp: ratio{exp, 1}},
		{base: basis{prime: 5}, exp: ratio{exp, 1}},
	}}
}

func (m Magnitude) String() string {
	if len(m.terms) == 0 {
		return "1"
	}
	var parts []string
	for _, t := range m.terms {
		base := t.base.symbol.ASCII
		if t.base.prime > 0 {
			base = fmt.Sprintf("%d", t.base.prime)
		}
		if t.exp == ratioOne {
			parts = append(parts, base)
		} else {
			parts = append(parts, fmt.Sprintf("%s^%s", base, t.exp))
		}
	}
	return strings.Join(parts, " ")
}
