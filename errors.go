// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import "errors"

// All engine failures are reported synchronously at the call that triggers
// them and match one of these sentinels via errors.Is.
var (
	// ErrInvalidExponent reports a rational power with a zero denominator.
	ErrInvalidExponent = errors.New("invalid exponent")

	// ErrInexact reports a numeric extraction into a type that cannot hold
	// the exact value (irrational factor, fractional exponent, overflow).
	ErrInexact = errors.New("inexact conversion")

	// ErrNotConvertible reports a conversion or common-unit request between
	// units whose canonical base-unit expressions differ.
	ErrNotConvertible = errors.New("units not convertible")

	// ErrNonPositive reports an attempt to construct a magnitude that is
	// not strictly positive.
	ErrNonPositive = errors.New("magnitude must be strictly positive")

	// ErrUnsupportedOption reports a formatting option combination that the
	// chosen text encoding cannot honor.
	ErrUnsupportedOption = errors.New("unsupported format option")

	// ErrUnsupportedExponent reports an exponent that cannot be rendered as
	// a Unicode superscript.
	ErrUnsupportedExponent = errors.New("unsupported exponent")
)
