// Package loader parses the E20 machine-code text format into a
// memory image (spec.md §6, component J; SPEC_FULL.md §4.J).
package loader

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/e20sim/e20sim/pkg/e20"
)

var lineRe = regexp.MustCompile(`^ram\[(\d+)\] = 16'b([01]+);.*$`)

// ErrParse is returned when a non-empty line does not match
// the expected grammar.
type ErrParse struct{ Line string }

func (e *ErrParse) Error() string {
	return fmt.Sprintf("Can't parse line: %s", e.Line)
}

// ErrOutOfSequence is returned when a line's address does
// not equal the running expected counter.
type ErrOutOfSequence struct{ Addr int }

func (e *ErrOutOfSequence) Error() string {
	return fmt.Sprintf("Memory addresses encountered out of sequence: %d", e.Addr)
}

// ErrTooBig is returned when an address exceeds the memory size.
type ErrTooBig struct{}

func (e *ErrTooBig) Error() string { return "Program too big for memory" }

// Load reads machine-code lines from r, one `ram[addr] = 16'b...;`
// statement per line, and returns the populated memory image. Blank
// lines are skipped; everything else must match the grammar, and
// addresses must start at 0 and increase by exactly 1 per accepted
// line (spec.md §6).
func Load(r io.Reader) ([e20.MemSize]e20.Word, error) {
	var mem [e20.MemSize]e20.Word

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	expected := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			return mem, &ErrParse{Line: line}
		}

		addr, err := strconv.Atoi(m[1])
		if err != nil {
			return mem, &ErrParse{Line: line}
		}
		if addr != expected {
			return mem, &ErrOutOfSequence{Addr: addr}
		}
		if addr >= e20.MemSize {
			return mem, &ErrTooBig{}
		}

		instr, err := strconv.ParseUint(m[2], 2, 16)
		if err != nil {
			return mem, &ErrParse{Line: line}
		}

		mem[addr] = e20.Word(instr)
		expected++
	}
	if err := scanner.Err(); err != nil {
		return mem, err
	}

	return mem, nil
}
