// Package trace formats the two fixed stdout line shapes of the
// simulator: the once-per-level config header and the per-access log
// line (spec.md §4.I).
package trace

import (
	"fmt"
	"io"
)

// Emitter writes trace lines to W.
type Emitter struct {
	W io.Writer
}

// NewEmitter wraps w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{W: w}
}

// Header prints the config-header line for one cache level, emitted
// once per configured level at start, before the first cycle.
func (e *Emitter) Header(name string, size, assoc, blocksize, lines int) {
	fmt.Fprintf(e.W, "Cache %s has size %d, associativity %d, blocksize %d, lines %d\n",
		name, size, assoc, blocksize, lines)
}

// Line prints one per-access log line. Field widths and separators
// are exact per spec.md §4.I: "<NAME> <STATUS>" left-aligned in a
// width-8 field, then space-prefixed pc:/addr:/line: fields of widths
// 5/5/4 separated by tabs.
func (e *Emitter) Line(name, status string, pc, addr, line int) {
	label := name + " " + status
	fmt.Fprintf(e.W, "%-8s pc:%5d\taddr:%5d\tline:%4d\n", label, pc, addr, line)
}
