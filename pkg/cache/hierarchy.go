package cache

import (
	"github.com/e20sim/e20sim/pkg/runstats"
	"github.com/e20sim/e20sim/pkg/trace"
)

// Hierarchy sequences L1 and L2 for each access and applies the
// load/store policy of spec.md §4.H. It structurally satisfies
// e20.CacheObserver (OnLoad/OnStore) without importing pkg/e20.
type Hierarchy struct {
	L1 *Level
	L2 *Level // nil if no second level is configured

	emit  *trace.Emitter
	stats *runstats.Stats
}

// NewHierarchy builds a Hierarchy from one or two configs, printing
// the config header for each level immediately (spec.md §4.I: headers
// are emitted once, before the first cycle).
func NewHierarchy(emit *trace.Emitter, stats *runstats.Stats, l1 Config, l2 *Config) *Hierarchy {
	h := &Hierarchy{emit: emit, stats: stats}

	h.L1 = NewLevel(l1)
	emit.Header(l1.Name, l1.Size, l1.Assoc, l1.BlockSize, l1.NumLines())

	if l2 != nil {
		h.L2 = NewLevel(*l2)
		emit.Header(l2.Name, l2.Size, l2.Assoc, l2.BlockSize, l2.NumLines())
	}

	return h
}

// OnLoad implements the load policy: probe L1 and log; on an L1 miss,
// if L2 exists, probe L2 and log too (spec.md §4.H).
func (h *Hierarchy) OnLoad(pc, addr int) {
	if h.stats != nil {
		h.stats.Loads++
	}

	line, status := h.L1.Probe(addr)
	h.emit.Line(h.L1.Config.Name, status.String(), pc, addr, line)
	h.record(h.L1.Config.Name, status)

	if status == Miss && h.L2 != nil {
		line2, status2 := h.L2.Probe(addr)
		h.emit.Line(h.L2.Config.Name, status2.String(), pc, addr, line2)
		h.record(h.L2.Config.Name, status2)
	}
}

// OnStore implements the store policy: every sw probes (and updates)
// both configured levels and always logs the literal status "SW",
// regardless of the set's internal hit/miss result (spec.md §4.H, §9 —
// the design deliberately normalizes away the original's single-cache
// sw logging bug).
func (h *Hierarchy) OnStore(pc, addr int) {
	if h.stats != nil {
		h.stats.Stores++
	}

	line, status := h.L1.Probe(addr)
	h.emit.Line(h.L1.Config.Name, "SW", pc, addr, line)
	h.record(h.L1.Config.Name, status)

	if h.L2 != nil {
		line2, status2 := h.L2.Probe(addr)
		h.emit.Line(h.L2.Config.Name, "SW", pc, addr, line2)
		h.record(h.L2.Config.Name, status2)
	}
}

func (h *Hierarchy) record(level string, status Status) {
	if h.stats == nil {
		return
	}
	h.stats.Record(level, status == Hit)
}
