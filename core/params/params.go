/*
Package params holds the scalar typesetting parameters the paragraph
breaker reads. It is the "Engine context" mentioned in the design notes:
rather than reaching into process-wide globals, callers construct a
*Registers and thread it explicitly through every call.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package params

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/npillmayer/parabreak/core/dimen"
)

// TypesettingParameter identifies a single scalar register.
type TypesettingParameter int

//go:generate stringer -type=TypesettingParameter
const (
	none TypesettingParameter = iota
	P_LANGUAGE                // string: hyphenation language tag
	P_SCRIPT                  // string
	P_TEXTDIRECTION           // bidi.Direction
	P_PRETOLERANCE            // int: Merits, first-pass threshold; <0 disables first pass
	P_TOLERANCE               // int: Merits, second-pass threshold
	P_LINEPENALTY             // int: Merits, flat per-line penalty
	P_HYPHENPENALTY           // int: Merits, penalty for a hyphenated break
	P_EXHYPHENPENALTY         // int: Merits, penalty for an explicit discretionary
	P_DOUBLEHYPHENDEMERITS    // int: Merits, extra cost for consecutive hyphenated lines
	P_FINALHYPHENDEMERITS     // int: Merits, extra cost if the next-to-last line is hyphenated
	P_ADJDEMERITS             // int: Merits, extra cost for adjacent fit-class jumps > 1
	P_LOOSENESS               // int: desired line count delta from the optimum
	P_LASTLINEFIT             // int: 0 disables; >0 enables last-line-fit, scaled 0..1000
	P_EMERGENCYSTRETCH        // dimen.DU: extra stretch granted on the final pass
	P_HSIZE                   // dimen.DU: nominal line width
	P_HANGINDENT              // dimen.DU: indentation for hanging lines
	P_HANGAFTER               // int: line after which hang_indent stops (negative: before)
	P_LEFTHYPHENMIN           // int: minimum characters before a hyphen (l_hyf)
	P_RIGHTHYPHENMIN          // int: minimum characters after a hyphen (r_hyf)
	P_UCHYPH                  // int: non-zero permits hyphenating capitalized words
	P_XETEXPROTRUDECHARS      // int: 0 off, 1 protrude, 2 protrude & adjust natural width
	P_XETEXUSEGLYPHMETRICS    // int: non-zero to use glyph-derived protrusion amounts
	P_TEXXET                  // int: non-zero enables eTeX directional (bidi) bookkeeping
	P_HYPHENCHAR              // rune: hyphen character inserted at discretionaries
	P_MINHYPHENLENGTH         // int: minimum word length eligible for hyphenation
	P_STOPPER
)

// ParShapeFunc returns the target line length for a 1-based line number.
// It generalizes par_shape/hang_indent/hang_after into a single callback.
type ParShapeFunc func(line int32) dimen.DU

// ParameterGroup is one level of a grouped (pushed) register scope.
type ParameterGroup struct {
	params map[TypesettingParameter]interface{}
	level  int
	next   *ParameterGroup
}

// Registers is a scope-aware table of scalar typesetting parameters,
// modeled on TeX's grouped parameter semantics: a Push inside a group is
// visible until the matching Endgroup, then the previous value resurfaces.
type Registers struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int

	// non-scalar registers too irregular in shape for the interface{} table
	ParShape             ParShapeFunc
	InterLinePenalties   []int32
	ClubPenalties        []int32
	WidowPenalties       []int32
	DisplayWidowPenalties []int32
}

// NewRegisters creates a Registers table seeded with TeX-like defaults.
func NewRegisters() *Registers {
	regs := &Registers{}
	initDefaults(&regs.base)
	return regs
}

func initDefaults(p *[P_STOPPER]interface{}) {
	p[P_LANGUAGE] = "en_EN"
	p[P_SCRIPT] = "Latin"
	p[P_TEXTDIRECTION] = bidi.LeftToRight
	p[P_PRETOLERANCE] = 100
	p[P_TOLERANCE] = 200
	p[P_LINEPENALTY] = 10
	p[P_HYPHENPENALTY] = 50
	p[P_EXHYPHENPENALTY] = 50
	p[P_DOUBLEHYPHENDEMERITS] = 0
	p[P_FINALHYPHENDEMERITS] = 0
	p[P_ADJDEMERITS] = 10000
	p[P_LOOSENESS] = 0
	p[P_LASTLINEFIT] = 0
	p[P_EMERGENCYSTRETCH] = dimen.DU(0)
	p[P_HSIZE] = dimen.DU(0)
	p[P_HANGINDENT] = dimen.DU(0)
	p[P_HANGAFTER] = 1
	p[P_LEFTHYPHENMIN] = 2
	p[P_RIGHTHYPHENMIN] = 3
	p[P_UCHYPH] = 0
	p[P_XETEXPROTRUDECHARS] = 0
	p[P_XETEXUSEGLYPHMETRICS] = 0
	p[P_TEXXET] = 0
	p[P_HYPHENCHAR] = rune('-')
	p[P_MINHYPHENLENGTH] = dimen.Infinity // disabled by default
}

// Begingroup opens a new nested scope. Pushes made after this call are
// undone by the matching Endgroup.
func (regs *Registers) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes the innermost scope, discarding any values pushed in it.
func (regs *Registers) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

// Push sets a register, scoped to the current group if one is open.
func (regs *Registers) Push(key TypesettingParameter, value interface{}) {
	if regs.grouplevel > 0 {
		var g *ParameterGroup
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &ParameterGroup{params: make(map[TypesettingParameter]interface{}), level: regs.grouplevel, next: regs.groups}
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

// Get returns the current value of a register, honoring group scoping.
func (regs *Registers) Get(key TypesettingParameter) interface{} {
	if key <= 0 || key >= P_STOPPER {
		panic("parameter key outside range of typesetting parameters")
	}
	for g := regs.groups; g != nil; g = g.next {
		if v, ok := g.params[key]; ok {
			return v
		}
	}
	return regs.base[key]
}

// S returns a register as a string.
func (regs *Registers) S(key TypesettingParameter) string {
	return regs.Get(key).(string)
}

// N returns a register as an int.
func (regs *Registers) N(key TypesettingParameter) int {
	return regs.Get(key).(int)
}

// D returns a register as a dimension.
func (regs *Registers) D(key TypesettingParameter) dimen.DU {
	return regs.Get(key).(dimen.DU)
}

// R returns a register as a rune.
func (regs *Registers) R(key TypesettingParameter) rune {
	return regs.Get(key).(rune)
}

// Dir returns a register as a bidi direction.
func (regs *Registers) Dir(key TypesettingParameter) bidi.Direction {
	return regs.Get(key).(bidi.Direction)
}
