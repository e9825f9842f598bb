package cache

// Level is one cache level: its config plus its resident sets
// (spec.md §4.G).
type Level struct {
	Config Config
	sets   []*Set
}

// NewLevel builds a Level with NumLines empty sets.
func NewLevel(cfg Config) *Level {
	n := cfg.NumLines()
	sets := make([]*Set, n)
	for i := range sets {
		sets[i] = NewSet(cfg.Assoc)
	}
	return &Level{Config: cfg, sets: sets}
}

// Probe decodes addr and applies the set's access rule, returning the
// line index touched and the resulting status.
func (l *Level) Probe(addr int) (line int, status Status) {
	line, tag := Decode(addr, l.Config.BlockSize, l.Config.NumLines())
	status = l.sets[line].Access(tag)
	return line, status
}
