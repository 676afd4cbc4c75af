// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Encoding selects the character repertoire of the rendered symbol.
type Encoding int

const (
	EncodingUnicode Encoding = iota // m³, kg⋅m²/s²
	EncodingASCII                   // m^3, kg m^2/s^2
)

// Solidus selects how denominator terms are rendered.
type Solidus int

const (
	SolidusOneDenominator Solidus = iota // m/s;   kg m⁻¹ s⁻¹
	SolidusAlways                        // m/s;   kg/(m s)
	SolidusNever                         // m s⁻¹; kg m⁻¹ s⁻¹
)

// Separator selects the text between adjacent terms.
type Separator int

const (
	SeparatorSpace Separator = iota // kg m²/s²
	SeparatorDot                    // kg⋅m²/s², Unicode encoding only
)

// Options configure unit symbol rendering. The zero value is the default:
// Unicode encoding, a solidus when the denominator is a single term, and a
// space between terms.
type Options struct {
	Encoding  Encoding
	Solidus   Solidus
	Separator Separator
}

// Format renders a unit expression as text under the given options.
// It fails with ErrUnsupportedOption for option combinations the encoding
// cannot honor and ErrUnsupportedExponent for exponents that have no
// superscript rendering.
func Format(u Unit, opts Options) (string, error) {
	if opts.Separator == SeparatorDot && opts.Encoding != EncodingUnicode {
		return "", fmt.Errorf("%w: interpunct separator requires Unicode encoding", ErrUnsupportedOption)
	}
	var b strings.Builder
	if err := writeUnit(&b, u, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// String renders the unit with default options, falling back to ASCII for
// the rare magnitudes the Unicode superscript set cannot express.
func String(u Unit) string {
	s, err := Format(u, Options{})
	if err != nil {
		s, _ = Format(u, Options{Encoding: EncodingASCII})
	}
	return s
}

func writeUnit(b *strings.Builder, u Unit, opts Options) error {
	switch u := u.(type) {
	case *NamedUnit:
		b.WriteString(u.symbol.text(opts.Encoding))
		return nil
	case scaledUnit:
		if err := writeMagnitude(b, u.mag, opts); err != nil {
			return err
		}
		if expr, ok := u.ref.(derivedUnit); ok && len(expr.num) == 0 && len(expr.den) == 0 {
			return nil
		}
		b.WriteByte(' ')
		return writeUnit(b, u.ref, opts)
	case derivedUnit:
		return writeExpr(b, u, opts)
	}
	panic(fmt.Sprintf("units: unexpected unit %T in formatting", u))
}

func writeExpr(b *strings.Builder, e derivedUnit, opts Options) error {
	if len(e.num) == 0 && len(e.den) == 0 {
		return nil // dimensionless
	}
	if err := writeGroup(b, e.num, opts, false); err != nil {
		return err
	}
	if len(e.den) == 0 {
		return nil
	}

	solidus := opts.Solidus == SolidusAlways ||
		(opts.Solidus == SolidusOneDenominator && len(e.den) == 1)
	if solidus {
		if len(e.num) == 0 {
			b.WriteByte('1')
		}
		b.WriteByte('/')
	} else if len(e.num) > 0 {
		writeSeparator(b, opts)
	}

	paren := opts.Solidus == SolidusAlways && len(e.den) > 1
	if paren {
		b.WriteByte('(')
	}
	if err := writeGroup(b, e.den, opts, !solidus); err != nil {
		return err
	}
	if paren {
		b.WriteByte(')')
	}
	return nil
}

func writeGroup(b *strings.Builder, factors []factor, opts Options, negative bool) error {
	for i, f := range factors {
		if i > 0 {
			writeSeparator(b, opts)
		}
		if err := writeFactor(b, f, opts, negative); err != nil {
			return err
		}
	}
	return nil
}

func writeSeparator(b *strings.Builder, opts Options) {
	if opts.Separator == SeparatorDot {
		b.WriteString("⋅")
	} else {
		b.WriteByte(' ')
	}
}

func writeFactor(b *strings.Builder, f factor, opts Options, negative bool) error {
	b.WriteString(f.unit.symbol.text(opts.Encoding))
	exp := f.exp
	if negative {
		exp = exp.neg()
	}
	return writeExponent(b, exp, opts)
}

// writeExponent renders a non-unity exponent: superscripts (or ^n under
// ASCII) for integral values, the ^(p/q) root form for fractional ones.
func writeExponent(b *strings.Builder, exp ratio, opts Options) error {
	if exp == ratioOne {
		return nil
	}
	if !exp.isInt() {
		fmt.Fprintf(b, "^(%d/%d)", exp.num, exp.den)
		return nil
	}
	if opts.Encoding == EncodingASCII {
		b.WriteByte('^')
		b.WriteString(strconv.FormatInt(exp.num, 10))
		return nil
	}
	sup, err := superscript(exp)
	if err != nil {
		return err
	}
	b.WriteString(sup)
	return nil
}

var superscriptDigits = [10]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

// superscript renders an exponent with the fixed Unicode superscript
// code points; only integral values are representable.
func superscript(exp ratio) (string, error) {
	if !exp.isInt() {
		return "", fmt.Errorf("%w: no superscript form for %s", ErrUnsupportedExponent, exp)
	}
	var b strings.Builder
	n := exp.num
	if n < 0 {
		b.WriteString("⁻")
		n = -n
	}
	for _, d := range strconv.FormatInt(n, 10) {
		b.WriteRune(superscriptDigits[d-'0'])
	}
	return b.String(), nil
}

// writeMagnitude renders a leading non-unit scale factor: a bare power of
// ten as "× 10ⁿ", anything else as a bracketed ratio with the power of
// ten factored out.
func writeMagnitude(b *strings.Builder, m Magnitude, opts Options) error {
	exp, rest := m.powerOfTen()
	if rest.IsOne() && exp != 0 {
		return writePowerOfTen(b, exp, opts)
	}

	b.WriteByte('[')
	if err := writeMagnitudeTerms(b, rest, opts); err != nil {
		return err
	}
	if exp != 0 {
		b.WriteByte(' ')
		if err := writePowerOfTen(b, exp, opts); err != nil {
			return err
		}
	}
	b.WriteByte(']')
	return nil
}

func writePowerOfTen(b *strings.Builder, exp int64, opts Options) error {
	if opts.Encoding == EncodingASCII {
		b.WriteString("x 10^")
		b.WriteString(strconv.FormatInt(exp, 10))
		return nil
	}
	b.WriteString("× 10")
	sup, err := superscript(ratio{exp, 1})
	if err != nil {
		return err
	}
	b.WriteString(sup)
	return nil
}

// writeMagnitudeTerms folds the exactly-representable part of a magnitude
// into a single ratio and renders the remaining symbolic factors (roots,
// irrational constants) term by term.
func writeMagnitudeTerms(b *strings.Builder, m Magnitude, opts Options) error {
	rational := One()
	var symbolic []basePower
	for _, t := range m.terms {
		if t.base.prime > 0 && t.exp.isInt() {
			rational.terms = append(rational.terms, t)
		} else {
			symbolic = append(symbolic, t)
		}
	}

	wrote := false
	if !rational.IsOne() || len(symbolic) == 0 {
		value, err := rational.Rat()
		if err != nil {
			panic("units: rational magnitude part failed exact extraction")
		}
		b.WriteString(value.RatString())
		wrote = true
	}
	for _, t := range symbolic {
		if wrote {
			b.WriteByte(' ')
		}
		if t.base.prime > 0 {
			b.WriteString(strconv.FormatInt(t.base.prime, 10))
		} else {
			b.WriteString(t.base.symbol.text(opts.Encoding))
		}
		if err := writeMagnitudeExponent(b, t.exp, opts); err != nil {
			return err
		}
		wrote = true
	}
	return nil
}

// writeMagnitudeExponent renders the exponent of a symbolic magnitude
// factor. Unicode output uses the superscript code points exclusively, so
// a fractional exponent there fails with ErrUnsupportedExponent; ASCII
// output falls back to ^n and ^(p/q).
func writeMagnitudeExponent(b *strings.Builder, exp ratio, opts Options) error {
	if exp == ratioOne {
		return nil
	}
	if opts.Encoding == EncodingUnicode {
		sup, err := superscript(exp)
		if err != nil {
			return err
		}
		b.WriteString(sup)
		return nil
	}
	if exp.isInt() {
		b.WriteByte('^')
		b.WriteString(strconv.FormatInt(exp.num, 10))
		return nil
	}
	fmt.Fprintf(b, "^(%d/%d)", exp.num, exp.den)
	return nil
}
