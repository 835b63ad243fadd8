/*
Package event routes input events to handlers bound on document nodes.

The dispatcher owns no event loop: the host application delivers raw
pointer and key events to Dispatcher.Dispatch, which hit-tests the
current layout, maintains hover/focus/active pseudo-states and invokes
handlers synchronously, first in a capture phase from the root down to
the target, then in a bubble phase back up. Dispatch returns once every
handler has run, so the caller always observes up-to-date state.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package event

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'briq.event'.
func tracer() tracing.Trace {
	return tracing.Select("briq.event")
}
