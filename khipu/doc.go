// Package khipu is about the items a paragraph is made of.
//
// "Khipu were recording devices fashioned from strings historically used by
// a number of cultures in the region of Andean South America. Khipu is the
// word for "knot" in Cusco Quechua. [...] The cords stored numeric and
// other values encoded as knots, often in a base ten positional system."
// ––Excerpt from a Wikipedia article about khipus
//
// We keep the teacher project's analogy: a paragraph is a Khipu, a string
// of Knots. Knot types more or less mirror the node types of a TeX-derived
// typesetting engine's horizontal list: characters, boxes, glue, kerns,
// ligatures, discretionaries, math nodes, penalties and whatsits.
//
// Package khipu also provides the node arena facade: knots live in an
// Arena, addressed by a small integer Handle (0 reserved for "null"),
// linked into a singly-linked Khipu list. This is the systems-language
// rendition of the shared `mem` heap: a tagged union of Go structs instead
// of packed 32-bit cells, addressed the same way.
/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package khipu

import (
	"github.com/npillmayer/schuko/tracing"
)

// T traces with key 'parabreak.khipu'.
func T() tracing.Trace {
	return tracing.Select("parabreak.khipu")
}
