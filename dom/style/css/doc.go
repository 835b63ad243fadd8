/*
Package css provides typed access to CSS style properties.

CSS properties are plentyful and some of them are complicated.
This package trys to shield clients from the cumbersome handling of
CSS properties resulting of (1) the textual nature of CSS properties
and (2) the complicated semantics of computing style attributes for a
given node.

Clients usually query properties of styled-tree nodes with GetProperty,
which respects CSS inheritance, and convert them to typed values with
DimenOf or ParseDisplay.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

// see
// https://developer.mozilla.org/en-US/docs/Web/CSS/Reference#dom-css_cssom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'briq.style'.
func tracer() tracing.Trace {
	return tracing.Select("briq.style")
}
