package e20

// CacheObserver receives load/store notifications from the
// interpreter for every lw/sw that executes (spec.md §4.D steps 5-6).
// pkg/cache.Hierarchy implements this interface; it is expressed in
// plain ints here so pkg/e20 does not need to import pkg/cache.
type CacheObserver interface {
	OnLoad(pc int, addr int)
	OnStore(pc int, addr int)
}

// nullObserver is used when no cache is configured: the interpreter
// still runs to halt, it just never notifies anyone (spec.md §6).
type nullObserver struct{}

func (nullObserver) OnLoad(int, int)  {}
func (nullObserver) OnStore(int, int) {}

// Machine is the E20 interpreter state: PC, registers, and memory.
type Machine struct {
	PC        Word
	Registers Registers
	Memory    *Memory
}

// NewMachine builds a Machine with PC and registers at their initial
// state of zero and the given memory image (spec.md §4.D).
func NewMachine(mem *Memory) *Machine {
	return &Machine{Memory: mem}
}

// Run executes cycles until the halt predicate fires, notifying obs
// of every lw/sw along the way. obs may be nil if no cache is
// configured. It returns the number of cycles executed (the halting
// jump-to-self itself is not counted, per spec.md §4.D step 2), for
// callers that want to report it alongside cache stats.
func (m *Machine) Run(obs CacheObserver) int {
	if obs == nil {
		obs = nullObserver{}
	}
	cycles := 0
	for {
		halted := m.Step(obs)
		if halted {
			return cycles
		}
		cycles++
	}
}

// Step fetches and executes exactly one cycle. It returns true if the
// fetched instruction was the halt (jump-to-self) — in that case no
// other state changes and no cache notification occurs (spec.md
// §4.D step 2).
func (m *Machine) Step(obs CacheObserver) bool {
	word := m.Memory.Get(m.PC)

	if IsHalt(word, m.PC) {
		return true
	}

	in := Decode(word)
	pc := int(m.PC)

	switch in.Op {
	case OpAdd:
		m.Registers.Set(in.RDst, m.Registers.Get(in.RA)+m.Registers.Get(in.RB))
		m.PC = wrapPC(pc + 1)

	case OpSub:
		m.Registers.Set(in.RDst, m.Registers.Get(in.RA)-m.Registers.Get(in.RB))
		m.PC = wrapPC(pc + 1)

	case OpAnd:
		m.Registers.Set(in.RDst, m.Registers.Get(in.RA)&m.Registers.Get(in.RB))
		m.PC = wrapPC(pc + 1)

	case OpOr:
		m.Registers.Set(in.RDst, m.Registers.Get(in.RA)|m.Registers.Get(in.RB))
		m.PC = wrapPC(pc + 1)

	case OpSlt:
		var v Word
		if m.Registers.Get(in.RA) < m.Registers.Get(in.RB) {
			v = 1
		}
		m.Registers.Set(in.RDst, v)
		m.PC = wrapPC(pc + 1)

	case OpJr:
		target := m.Registers.Get(in.RA)
		m.PC = wrapPC(int(target))

	case OpAddi:
		v := int(m.Registers.Get(in.RA)) + SignExt7(in.Imm7)
		m.Registers.Set(in.RB, Word(v))
		m.PC = wrapPC(pc + 1)

	case OpJ:
		m.PC = Word(in.Imm13)

	case OpJal:
		m.Registers.Set(7, Word(pc+1))
		m.PC = wrapPC(in.Imm13)

	case OpLw:
		addr := wrapPC(int(m.Registers.Get(in.RA)) + SignExt7(in.Imm7))
		if in.RB != 0 {
			m.Registers.Set(in.RB, m.Memory.Get(addr))
		}
		obs.OnLoad(pc, int(addr))
		m.PC = wrapPC(pc + 1)

	case OpSw:
		addr := wrapPC(int(m.Registers.Get(in.RA)) + SignExt7(in.Imm7))
		m.Memory.Set(addr, m.Registers.Get(in.RB))
		obs.OnStore(pc, int(addr))
		m.PC = wrapPC(pc + 1)

	case OpJeq:
		if m.Registers.Get(in.RA) == m.Registers.Get(in.RB) {
			m.PC = wrapPC(pc + 1 + SignExt7(in.Imm7))
		} else {
			m.PC = wrapPC(pc + 1)
		}

	case OpSlti:
		// Unlike addi/jeq, the original does not sign-extend imm7 here:
		// it compares the raw 7-bit immediate, zero-extended, against
		// the register (original_source/src/simcache.cpp:390-402 and
		// proj3_arch/proj3_arch/simcachee.cpp:271-283 both do this).
		var v Word
		if m.Registers.Get(in.RA) < Word(in.Imm7) {
			v = 1
		}
		m.Registers.Set(in.RB, v)
		m.PC = wrapPC(pc + 1)

	default: // OpNop and any unrecognized decode
		m.PC = wrapPC(pc + 1)
	}

	return false
}
