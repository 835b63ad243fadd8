/*
Package styledtree is a straightforward default implementation of a styled
document tree.

Overview

A styled tree mirrors the DOM one node per element or text fragment.
cssom.Style() will create a styled tree from a markup parse tree and a
CSSOM. Each node carries its computed style property map plus the dynamic
pseudo-class state (hover, focus, active) that the event dispatcher may
flip at runtime.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'briq.dom'.
func tracer() tracing.Trace {
	return tracing.Select("briq.dom")
}
