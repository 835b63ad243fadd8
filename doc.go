/*
Package briq is a small style-and-layout pipeline: it parses a
constrained subset of markup and CSS, resolves styles via cascade,
builds a box tree, computes a block/inline layout and dispatches input
events against the resulting geometry.

briq is not a browser. There is no script engine, no network loading, no
rasterization and no windowing; the host application owns the event loop
and the paint backend. What briq offers is declarative UI description:
hand it markup and a stylesheet, get back a positioned, paintable box
tree plus event routing.

	doc, err := briq.Load(markup, stylesheet, briq.WithViewport(800, 600))
	if err != nil { … }
	list := render.BuildDisplayList(doc.Boxes())   // paint these rects
	doc.Dispatch(event.PointerDown, event.Point{X: 50, Y: 30}, "")

Malformed input degrades gracefully: parse and style problems are
repaired where possible and surfaced through Document.Warnings.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package briq

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'briq.doc'.
func tracer() tracing.Trace {
	return tracing.Select("briq.doc")
}
