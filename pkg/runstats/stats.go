// Package runstats collects optional, off-by-default run counters for
// a completed simulation (SPEC_FULL.md §3, §6). They never affect the
// mandatory stdout trace contract.
package runstats

import (
	"encoding/gob"
	"encoding/json"
	"io"
)

// LevelStats tallies hits and misses observed by one cache level.
type LevelStats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
}

// Stats is the full per-run summary.
type Stats struct {
	Cycles int                   `json:"cycles"`
	Loads  int                   `json:"loads"`
	Stores int                   `json:"stores"`
	Levels map[string]LevelStats `json:"levels"`
}

// NewStats returns an empty Stats ready for accumulation.
func NewStats() *Stats {
	return &Stats{Levels: make(map[string]LevelStats)}
}

// Record tallies one access outcome for the named level.
func (s *Stats) Record(level string, hit bool) {
	ls := s.Levels[level]
	if hit {
		ls.Hits++
	} else {
		ls.Misses++
	}
	s.Levels[level] = ls
}

// WriteJSON encodes s as JSON to w (mirrors result.WriteJSON in the
// teacher repo's output-export path).
func WriteJSON(w io.Writer, s *Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteGob encodes s as gob to w (mirrors result.SaveCheckpoint).
func WriteGob(w io.Writer, s *Stats) error {
	return gob.NewEncoder(w).Encode(s)
}

// ReadGob decodes a Stats value previously written by WriteGob.
func ReadGob(r io.Reader) (*Stats, error) {
	var s Stats
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
