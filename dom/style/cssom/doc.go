/*
Package cssom provides functionality for CSS styling: selector matching,
specificity ordering and the cascade.

Overview

CSSOM is the "CSS Object Model", similar to the DOM for HTML. Clients
construct a CSSOM from one or more stylesheets (see interface StyleSheet
and sub-package douceuradapter for a concrete implementation), then apply
it to a markup parse tree:

    om := cssom.NewCSSOM(nil)
    om.AddStyleSheet(sheet)
    styled, err := om.Style(parsetree)

The result is a styled tree (package styledtree), with each node holding
its cascaded property map. Re-styling after a dynamic pseudo-class change
is scoped: only the flipped node and descendants whose match set or
inherited inputs changed get fresh property maps.

Selectors cover the subset needed to emulate a desktop toolkit's
stylesheets: tag, #id, .class, compound simple selectors, the descendant
combinator, and the dynamic pseudo-classes :hover, :focus and :active.
Unknown selector parts compile to never-matching selectors (the rule is
retained but inert, which keeps stylesheets forward-compatible).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'briq.style'.
func tracer() tracing.Trace {
	return tracing.Select("briq.style")
}
