/*
Package layout produces a tree of positioned boxes from a styled tree.

Layout is a two step process:

▪︎ BuildBoxTree transforms the styled tree into a box tree, selecting a
box variant (block, inline, inline-block) from each node's display mode
and synthesizing anonymous boxes where block and inline content mix.

▪︎ Layouter.Layout assigns box-model geometry to every box, given a
viewport as the initial containing block. Blocks stack vertically,
inline content runs left-to-right within its line without breaking.

Layout never fails: impossible constraints (like a negative content
width) are clamped and reported as diagnostics.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'briq.layout'.
func tracer() tracing.Trace {
	return tracing.Select("briq.layout")
}
