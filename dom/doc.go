/*
Package dom provides a Document Object Model for markup documents,
built from parsing and styling.

Overview

Styling and layout of HTML/CSS involves a lot of operations on different
trees. We implement the various trees on top of a general purpose tree
type (package tree). In a fully object oriented programming language we
would subclass this tree type for every type of tree in use (styled tree,
layout tree, render tree), but in Go we resort to composition, thus
including a generic tree node in every node (sub-)type. The downside of
this approach is that we will have to provide an adapter for every node
sub-type to return the sub-type from the generic type.

Parsing with this package is recovering: mismatched or missing end tags
never fail a parse, but are repaired and reported as warnings.

Client access to DOM nodes happens through W3CNode, a read-only view
implementing interface w3cdom.Node on top of styled-tree nodes.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'briq.dom'
func tracer() tracing.Trace {
	return tracing.Select("briq.dom")
}
