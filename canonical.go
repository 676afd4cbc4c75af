// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// canonicalUnit is a unit reduced to base units only, paired with the
// magnitude accumulated while unfolding definitions. Equality and
// convertibility are decided on this form.
type canonicalUnit struct {
	mag Magnitude
	ref derivedUnit // factors are base units only
}

const canonicalCacheSize = 1024

// Named-unit canonical forms are memoized: the same unit is canonicalized
// repeatedly during comparisons and its definition never changes, so
// entries are write-once and safe to share across goroutines.
var canonicalCache = func() *lru.Cache[*NamedUnit, canonicalUnit] {
	cache, err := lru.New[*NamedUnit, canonicalUnit](canonicalCacheSize)
	if err != nil {
		panic(err)
	}
	return cache
}()

// canonicalize unfolds every atomic unit into its base-unit definition,
// accumulating the magnitude, and renormalizes the result.
func canonicalize(u Unit) canonicalUnit {
	switch u := u.(type) {
	case *NamedUnit:
		if c, ok := canonicalCache.Get(u); ok {
			return c
		}
		var c canonicalUnit
		if u.ref == nil {
			c = canonicalUnit{
				mag: One(),
				ref: derivedUnit{num: []factor{{unit: u, exp: ratioOne}}},
			}
		} else {
			base := canonicalize(u.ref)
			c = canonicalUnit{mag: u.mag.Mul(base.mag), ref: base.ref}
		}
		canonicalCache.Add(u, c)
		return c
	case scaledUnit:
		base := canonicalize(u.ref)
		return canonicalUnit{mag: u.mag.Mul(base.mag), ref: base.ref}
	case derivedUnit:
		acc := canonicalUnit{mag: One()}
		for _, f := range u.signedFactors() {
			base := canonicalize(f.unit)
			acc.mag = acc.mag.Mul(base.mag.powRatio(f.exp))
			powered := powRatioUnit(base.ref, f.exp).(derivedUnit)
			acc.ref = Mul(acc.ref, powered).(derivedUnit)
		}
		return acc
	}
	panic(fmt.Sprintf("units: unexpected unit %T in canonicalization", u))
}

// Equal reports whether two unit expressions denote exactly the same unit:
// identical canonical base-unit expressions and equal magnitudes.
func Equal(a, b Unit) bool {
	ca, cb := canonicalize(a), canonicalize(b)
	return sameExpr(ca.ref, cb.ref) && ca.mag.Equal(cb.mag)
}

// Convertible reports whether two unit expressions share a canonical
// base-unit expression; their magnitudes may differ.
func Convertible(a, b Unit) bool {
	return sameExpr(canonicalize(a).ref, canonicalize(b).ref)
}

// ConversionFactor returns the magnitude f such that a value measured in
// from equals f times that value measured in to. It fails with
// ErrNotConvertible when the units do not share a canonical form.
func ConversionFactor(from, to Unit) (Magnitude, error) {
	cf, ct := canonicalize(from), canonicalize(to)
	if !sameExpr(cf.ref, ct.ref) {
		return Magnitude{}, fmt.Errorf("%w: %s and %s", ErrNotConvertible, from, to)
	}
	return cf.mag.Div(ct.mag), nil
}

// CommonUnit resolves the unit mixed-unit arithmetic should target: the
// finer-grained of the two when one scale is a whole multiple of the
// other, otherwise a synthesized scaled unit over the shared base
// expression that represents both sides exactly. Extra units fold in
// pairwise. It fails with ErrNotConvertible when any pair differs in
// canonical base-unit form.
func CommonUnit(a, b Unit, rest ...Unit) (Unit, error) {
	common, err := commonUnit(a, b)
	if err != nil {
		return nil, err
	}
	for _, u := range rest {
		if common, err = commonUnit(common, u); err != nil {
			return nil, err
		}
	}
	return common, nil
}

func commonUnit(a, b Unit) (Unit, error) {
	ca, cb := canonicalize(a), canonicalize(b)
	if !sameExpr(ca.ref, cb.ref) {
		return nil, fmt.Errorf("%w: %s and %s", ErrNotConvertible, a, b)
	}
	if ca.mag.Equal(cb.mag) {
		return preferNamed(a, b), nil
	}
	if ca.mag.Div(cb.mag).IsIntegral() {
		return b, nil
	}
	if cb.mag.Div(ca.mag).IsIntegral() {
		return a, nil
	}
	cm := ca.mag.Common(cb.mag)
	return Scale(cm, ca.ref), nil
}

// preferNamed picks between two equal units: a named unit beats an
// anonymous expression, between two named units the lexicographically
// smaller ASCII symbol wins, and two anonymous expressions fall back to
// their rendered ASCII symbols. Deterministic regardless of argument or
// declaration order.
func preferNamed(a, b Unit) Unit {
	na, aNamed := a.(*NamedUnit)
	nb, bNamed := b.(*NamedUnit)
	switch {
	case aNamed && bNamed:
		if unitLess(nb, na) {
			return nb
		}
		return na
	case aNamed:
		return a
	case bNamed:
		return b
	}
	as, _ := Format(a, Options{Encoding: EncodingASCII})
	bs, _ := Format(b, Options{Encoding: EncodingASCII})
	if bs < as {
		return b
	}
	return a
}
