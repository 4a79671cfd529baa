/*
Package dimen implements scaled dimensions, the unit system every width,
height, stretch and shrink in the paragraph breaker is expressed in.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"fmt"
	"math"
)

// DU is a 'design unit', a scaled dimension. Values are in scaled big points.
type DU int32

// Some pre-defined dimensions
const (
	Zero DU = 0
	SP   DU = 1       // scaled point = BP / 65536
	BP   DU = 65536   // big point (PDF) = 1/72 inch
	PX   DU = 65536   // "pixels"
	PT   DU = 65291   // printers point 1/72.27 inch
	MM   DU = 185771  // millimeters
	CM   DU = 1857710 // centimeters
	IN   DU = 4718592 // inch
)

// Infinity is the largest possible dimension.
const Infinity = math.MaxInt32

// Some very stretchable dimensions, ordered by "infinity order" (fil < fill < filll).
const Fil DU = Infinity - 3
const Fill DU = Infinity - 2
const Filll DU = Infinity - 1

// StretchOrder classifies the "infinity order" of a glue's stretch or shrink
// component: ordinary (finite), fil, fill, or filll. Higher orders always
// dominate lower ones when glue is distributed.
type StretchOrder int8

// Stretch/shrink orders, normal first.
const (
	Normal StretchOrder = iota
	Fil1
	Fill1
	Filll1
)

// OrderOf classifies a dimension by its infinity order.
func OrderOf(d DU) StretchOrder {
	switch {
	case d >= Filll:
		return Filll1
	case d >= Fill:
		return Fill1
	case d >= Fil:
		return Fil1
	default:
		return Normal
	}
}

// String is part of fmt.Stringer.
func (d DU) String() string {
	return fmt.Sprintf("%dsp", int32(d))
}

// Points returns a dimension in big (PDF) points.
func (d DU) Points() float64 {
	return float64(d) / float64(BP)
}

// Min returns the smaller of two dimensions.
func Min(a, b DU) DU {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b DU) DU {
	if a > b {
		return a
	}
	return b
}

// Abs returns the absolute value of a dimension.
func Abs(d DU) DU {
	if d < 0 {
		return -d
	}
	return d
}
