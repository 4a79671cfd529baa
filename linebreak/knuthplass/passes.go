package knuthplass

import (
	"fmt"

	"github.com/npillmayer/parabreak/core/dimen"
	"github.com/npillmayer/parabreak/khipu"
	"github.com/npillmayer/parabreak/linebreak"
)

// BreakParagraphInPasses runs the multi-pass escalation TeX's line_break
// performs: a first, cheap pass with hyphenation disabled and a tight
// tolerance (pre_tolerance), a second pass with hyphenation enabled and the
// normal tolerance, and — only if both fail — a final pass that additionally
// grants every line emergency_stretch of extra stretchability.
//
// newCursor must return a fresh linebreak.Cursor positioned at the start of
// the paragraph's khipu; it is called once per pass attempted, since a
// Cursor is consumed by scanning.
func BreakParagraphInPasses(newCursor func() linebreak.Cursor, parshape linebreak.ParShape,
	params *linebreak.Parameters) ([]khipu.Mark, error) {
	//
	if params == nil {
		params = linebreak.DefaultParameters
	}
	type attempt struct {
		label            string
		tolerance        linebreak.Merits
		allowDisc        bool
		emergencyStretch dimen.DU
	}
	var attempts []attempt
	if params.PreTolerance >= 0 {
		attempts = append(attempts, attempt{"pretolerance", params.PreTolerance, false, 0})
	}
	attempts = append(attempts, attempt{"tolerance", params.Tolerance, true, 0})
	if params.EmergencyStretch > 0 {
		attempts = append(attempts, attempt{"emergency", params.Tolerance, true, params.EmergencyStretch})
	}

	var lastErr error
	for _, a := range attempts {
		T().Infof("line-breaking pass %q: tolerance=%d, hyphenation=%v, emergencystretch=%d",
			a.label, a.tolerance, a.allowDisc, a.emergencyStretch)
		variants, breakpoints, err := runPass(newCursor(), parshape, params, a.tolerance, a.allowDisc,
			a.emergencyStretch)
		if err != nil {
			lastErr = err
			continue
		}
		if len(breakpoints) == 0 {
			lastErr = fmt.Errorf("pass %q found no breakpoints", a.label)
			continue
		}
		best := variants[0]
		if params.Looseness != 0 {
			best = applyLooseness(variants, best, params.Looseness)
		}
		return breakpoints[best], nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no breakpoints could be found for paragraph")
	}
	return nil, lastErr
}

// runPass executes one pass of the Feasibility Engine with explicit
// per-pass overrides, independent of the defaults setupLinebreaker would
// otherwise apply.
func runPass(cursor linebreak.Cursor, parshape linebreak.ParShape, params *linebreak.Parameters,
	tolerance linebreak.Merits, allowDisc bool, emergencyStretch dimen.DU) ([]int32, map[int32][]khipu.Mark, error) {
	//
	kp, err := setupLinebreaker(cursor, parshape, params)
	if err != nil {
		return nil, nil, err
	}
	kp.tolerance = tolerance
	kp.allowDisc = allowDisc
	kp.emergencyStretch = emergencyStretch
	if err = kp.constructBreakpointGraph(cursor, parshape, params); err != nil {
		return nil, nil, err
	}
	variants, breaks, err := kp.collectFeasibleBreakpoints(kp.end)
	if err != nil {
		return nil, nil, err
	}
	return variants, breaks, nil
}
