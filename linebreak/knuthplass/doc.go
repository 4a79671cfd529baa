/*
Package knuthplass implements a line breaking algorithm described by
D.E. Knuth and M.F. Plass.

Definite source of information is of course

   Computers & Typesetting, Vol. A & C.
   http://www-cs-faculty.stanford.edu/~knuth/abcde.html

An approachable summary may be found in

   http://defoe.sourceforge.net/folio/knuth-plass.html

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package knuthplass

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
