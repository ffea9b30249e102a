/*
Package selection turns a document selection into highlight geometry.

It reads typeset fragment geometry only through [LineLocator] and
[OffsetLocator], so it works against any line storage that can answer offset
and index queries. [Builder.FillRects] produces pixel-aligned fill rectangles,
[Builder.Outline] produces a closed outline path with rounded corners.
*/
package selection

import "github.com/npillmayer/schuko/tracing"

// tracer returns the trace sink for the selection package.
func tracer() tracing.Trace {
	return tracing.Select("galley.selection")
}
