/*
Package layout implements the line typesetter of galley.

A logical document line is split into text and attachment runs ([Segment]),
broken into width-constrained fragments by an accumulator ([TypesetLine]),
and published into a [FragmentCollection]. [Layout] stacks the collections of
all lines of a document and answers the offset and geometry queries the
selection package needs. The compose package drives the whole pipeline from a
DSL document.
*/
package layout

import "github.com/npillmayer/schuko/tracing"

// tracer returns the trace sink for the layout package.
func tracer() tracing.Trace {
	return tracing.Select("galley.layout")
}
