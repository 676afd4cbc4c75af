// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import "fmt"

// Symbol is a display symbol with distinct Unicode and ASCII renderings
// (e.g. "Ω"/"ohm"). Use Sym for symbols that render the same either way.
type Symbol struct {
	Unicode string
	ASCII   string
}

// Sym builds a Symbol whose Unicode and ASCII renderings are identical.
func Sym(s string) Symbol {
	return Symbol{Unicode: s, ASCII: s}
}

func (s Symbol) text(enc Encoding) string {
	if enc == EncodingASCII {
		return s.ASCII
	}
	return s.Unicode
}

// Unit is an immutable unit expression: a named unit, a scaled unit or a
// derived product of powers of named units. Values are structurally
// compared and never mutated; build new ones with Mul, Div, Inverse, Pow
// and Scale.
type Unit interface {
	fmt.Stringer
	isUnit()
}

// NamedUnit is an atomic unit with a display symbol. A base unit stands
// alone; a derived named unit is defined as magnitude × reference unit and
// every definition chain terminates at base units. Identity is the
// declaration itself: declaring the same symbol twice makes two distinct
// units.
type NamedUnit struct {
	symbol Symbol
	mag    Magnitude // identity for base units
	ref    Unit      // nil for base units
}

// NewBaseUnit declares a base unit with no further definition.
func NewBaseUnit(symbol Symbol) *NamedUnit {
	return &NamedUnit{symbol: symbol}
}

// NewUnit declares a named unit defined as mag × ref, e.g. an hour as
// 3600 × second.
func NewUnit(symbol Symbol, mag Magnitude, ref Unit) *NamedUnit {
	return &NamedUnit{symbol: symbol, mag: mag, ref: ref}
}

// NewPrefixedUnit declares a prefixed unit, e.g. kilometre from the "k"
// prefix, the magnitude 1000 and the metre. The result is an atomic named
// unit like any other.
func NewPrefixedUnit(prefix Symbol, mag Magnitude, u *NamedUnit) *NamedUnit {
	symbol := Symbol{
		Unicode: prefix.Unicode + u.symbol.Unicode,
		ASCII:   prefix.ASCII + u.symbol.ASCII,
	}
	return &NamedUnit{symbol: symbol, mag: mag, ref: u}
}

// Symbol returns the unit's display symbol.
func (u *NamedUnit) Symbol() Symbol {
	return u.symbol
}

func (u *NamedUnit) isUnit() {}

// scaledUnit is an anonymous (magnitude, reference unit) pair. The
// magnitude is never the identity and the reference is never itself a
// scaledUnit; Scale maintains both invariants.
type scaledUnit struct {
	mag Magnitude
	ref Unit
}

func (u scaledUnit) isUnit() {}

// Scale multiplies a unit by a magnitude. Scaling by the identity returns
// the unit unchanged, so an identity wrapper can never be observed.
func Scale(mag Magnitude, u Unit) Unit {
	if s, ok := u.(scaledUnit); ok {
		return Scale(mag.Mul(s.mag), s.ref)
	}
	if mag.IsOne() {
		return u
	}
	return scaledUnit{mag: mag, ref: u}
}

// factor is one term of a derived expression: a named unit raised to a
// positive rational exponent.
type factor struct {
	unit *NamedUnit
	exp  ratio
}

// derivedUnit is a normalized product of powers of named units, split into
// numerator and denominator groups. Both groups are sorted by symbol and
// denominator exponents are stored positive. The dimensionless unit is the
// expression with both groups empty.
type derivedUnit struct {
	num []factor
	den []factor
}

func (u derivedUnit) isUnit() {}

// Dimensionless is the identity unit (the empty product).
var Dimensionless Unit = derivedUnit{}

// unitLess is the canonical ordering over named units: lexicographic on
// the ASCII symbol, Unicode symbol as tie-break.
func unitLess(a, b *NamedUnit) bool {
	if a.symbol.ASCII != b.symbol.ASCII {
		return a.symbol.ASCII < b.symbol.ASCII
	}
	return a.symbol.Unicode < b.symbol.Unicode
}

// signedFactors is the working form for expression arithmetic: numerator
// terms keep their exponent, denominator terms negate it, and the list
// stays sorted by unitLess.
func (u derivedUnit) signedFactors() []factor {
	merged := make([]factor, 0, len(u.num)+len(u.den))
	i, j := 0, 0
	for i < len(u.num) && j < len(u.den) {
		if unitLess(u.num[i].unit, u.den[j].unit) {
			merged = append(merged, u.num[i])
			i++
		} else {
			merged = append(merged, factor{unit: u.den[j].unit, exp: u.den[j].exp.neg()})
			j++
		}
	}
	merged = append(merged, u.num[i:]...)
	for ; j < len(u.den); j++ {
		merged = append(merged, factor{unit: u.den[j].unit, exp: u.den[j].exp.neg()})
	}
	return merged
}

// groupFactors splits a sorted signed factor list back into numerator and
// denominator groups.
func groupFactors(factors []factor) derivedUnit {
	var expr derivedUnit
	for _, f := range factors {
		if f.exp.sign() > 0 {
			expr.num = append(expr.num, f)
		} else if f.exp.sign() < 0 {
			expr.den = append(expr.den, factor{unit: f.unit, exp: f.exp.neg()})
		}
	}
	return expr
}

// mergeFactors folds two sorted signed factor lists, summing exponents of
// the same named unit and dropping terms that cancel.
func mergeFactors(a, b []factor) []factor {
	merged := make([]factor, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].unit == b[j].unit:
			if exp := a[i].exp.add(b[j].exp); !exp.isZero() {
				merged = append(merged, factor{unit: a[i].unit, exp: exp})
			}
			i++
			j++
		case unitLess(a[i].unit, b[j].unit):
			merged = append(merged, a[i])
			i++
		default:
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

// toExpr views any non-scaled unit as a derived expression.
func toExpr(u Unit) derivedUnit {
	switch u := u.(type) {
	case *NamedUnit:
		return derivedUnit{num: []factor{{unit: u, exp: ratioOne}}}
	case derivedUnit:
		return u
	}
	panic(fmt.Sprintf("units: unexpected unit %T in expression", u))
}

// Mul multiplies two unit expressions. Scaled units take priority: their
// magnitudes are hoisted out and only the reference units enter the
// derived expression, so a scaled unit never nests inside one.
func Mul(a, b Unit) Unit {
	if s, ok := a.(scaledUnit); ok {
		return Scale(s.mag, Mul(s.ref, b))
	}
	if s, ok := b.(scaledUnit); ok {
		return Scale(s.mag, Mul(a, s.ref))
	}
	merged := mergeFactors(toExpr(a).signedFactors(), toExpr(b).signedFactors())
	return groupFactors(merged)
}

// Div divides two unit expressions, with the same scaled-unit hoisting as
// Mul.
func Div(a, b Unit) Unit {
	if s, ok := a.(scaledUnit); ok {
		return Scale(s.mag, Div(s.ref, b))
	}
	if s, ok := b.(scaledUnit); ok {
		return Scale(s.mag.powRatio(ratio{-1, 1}), Div(a, s.ref))
	}
	return Mul(a, Inverse(b))
}

// Inverse returns the reciprocal unit. Inverting twice returns the
// original expression.
func Inverse(u Unit) Unit {
	return powRatioUnit(u, ratio{-1, 1})
}

// Pow raises a unit expression to the rational power num/den. The power
// distributes over every factor of a derived expression and, for a scaled
// unit, over the magnitude and the reference unit alike.
func Pow(u Unit, num, den int64) (Unit, error) {
	if den == 0 {
		return nil, fmt.Errorf("%w: %d/0", ErrInvalidExponent, num)
	}
	return powRatioUnit(u, newRatio(num, den)), nil
}

func powRatioUnit(u Unit, r ratio) Unit {
	if r.isZero() {
		return Dimensionless
	}
	if s, ok := u.(scaledUnit); ok {
		return Scale(s.mag.powRatio(r), powRatioUnit(s.ref, r))
	}
	signed := toExpr(u).signedFactors()
	powered := make([]factor, len(signed))
	for i, f := range signed {
		powered[i] = factor{unit: f.unit, exp: f.exp.mul(r)}
	}
	return groupFactors(powered)
}

// Square returns u².
func Square(u Unit) Unit {
	return Mul(u, u)
}

// Cubic returns u³.
func Cubic(u Unit) Unit {
	return Mul(Mul(u, u), u)
}

// sameExpr is structural equality of two normalized derived expressions.
func sameExpr(a, b derivedUnit) bool {
	if len(a.num) != len(b.num) || len(a.den) != len(b.den) {
		return false
	}
	for i := range a.num {
		if a.num[i] != b.num[i] {
			return false
		}
	}
	for i := range a.den {
		if a.den[i] != b.den[i] {
			return false
		}
	}
	return true
}

func (u *NamedUnit) String() string {
	return String(u)
}

func (u scaledUnit) String() string {
	return String(u)
}

func (u derivedUnit) String() string {
	return String(u)
}
