// Package cache implements a set-associative cache hierarchy with
// true LRU replacement, used to trace loads and stores executed by an
// E20 program (spec.md §4.E-§4.H).
package cache

import "fmt"

// Config holds one cache level's parameters (spec.md §3).
type Config struct {
	Name      string // "L1" or "L2"
	Size      int    // total cells
	Assoc     int    // ways per set
	BlockSize int    // cells per block
}

// NumLines returns the number of sets: size / (assoc * blocksize).
func (c Config) NumLines() int {
	return c.Size / (c.Assoc * c.BlockSize)
}

// Validate checks the power-of-two and divisibility invariants of
// spec.md §3. It is the degenerate-config guard referenced in
// spec.md §7 (an assoc of 0 would otherwise divide by zero below).
func (c Config) Validate() error {
	if !isPowerOfTwo(c.Size) || !isPowerOfTwo(c.Assoc) || !isPowerOfTwo(c.BlockSize) {
		return fmt.Errorf("cache %s: size, assoc, and blocksize must be powers of two", c.Name)
	}
	if c.Size%(c.Assoc*c.BlockSize) != 0 {
		return fmt.Errorf("cache %s: size must be a multiple of assoc*blocksize", c.Name)
	}
	if c.NumLines() < 1 {
		return fmt.Errorf("cache %s: numLines must be at least 1", c.Name)
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
