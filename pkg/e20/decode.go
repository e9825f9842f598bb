package e20

// Op identifies a decoded E20 instruction. Unlike a raw opcode, Op
// distinguishes primary-opcode 000's sub-opcodes as distinct values
// (mirrors how a richer instruction set's decoder separates prefixed
// forms sharing a raw byte).
type Op uint8

const (
	OpNop Op = iota
	OpAdd
	OpSub
	OpAnd
	OpOr
	OpSlt
	OpJr
	OpAddi
	OpJ
	OpJal
	OpLw
	OpSw
	OpJeq
	OpSlti
)

// Info holds static metadata about an Op, for documentation and
// disassembly purposes (mirrors a catalog-of-opcodes table).
type Info struct {
	Mnemonic string
}

// Catalog maps each Op to its static metadata.
var Catalog = map[Op]Info{
	OpNop:  {"nop"},
	OpAdd:  {"add"},
	OpSub:  {"sub"},
	OpAnd:  {"and"},
	OpOr:   {"or"},
	OpSlt:  {"slt"},
	OpJr:   {"jr"},
	OpAddi: {"addi"},
	OpJ:    {"j"},
	OpJal:  {"jal"},
	OpLw:   {"lw"},
	OpSw:   {"sw"},
	OpJeq:  {"jeq"},
	OpSlti: {"slti"},
}

// Instruction is a fully decoded E20 instruction word: the Op plus
// whichever fields are relevant to it. Unused fields are left zero.
type Instruction struct {
	Op    Op
	RA    int // rA / rAddr / rSrc, bits [12:10]
	RB    int // rB / rDst / rSrc, bits [9:7]
	RDst  int // rDst, bits [6:4] (register-register forms only)
	Imm7  uint8 // raw 7-bit immediate, bits [6:0]
	Imm13 int   // raw 13-bit absolute target, bits [12:0]
}

func bits(w Word, width, pos int) int {
	mask := Word((1 << uint(width)) - 1)
	return int((w >> uint(pos)) & mask)
}

// Decode splits a 16-bit instruction word into its opcode and fields
// per spec.md §4.C. Any primary-000 word whose sub-opcode is not one
// of the six listed forms decodes as OpNop — a PC-advancing no-op,
// per spec.md §4.D's failure semantics.
func Decode(w Word) Instruction {
	primary := bits(w, 3, 13)

	switch primary {
	case 0b000:
		sub := bits(w, 4, 0)
		in := Instruction{
			RA:   bits(w, 3, 10),
			RB:   bits(w, 3, 7),
			RDst: bits(w, 3, 4),
		}
		switch sub {
		case 0b0000:
			in.Op = OpAdd
		case 0b0001:
			in.Op = OpSub
		case 0b0010:
			in.Op = OpAnd
		case 0b0011:
			in.Op = OpOr
		case 0b0100:
			in.Op = OpSlt
		case 0b1000:
			in.Op = OpJr
			in.RA = bits(w, 3, 10) // rSrc
		default:
			in.Op = OpNop
		}
		return in

	case 0b001:
		return Instruction{
			Op:   OpAddi,
			RA:   bits(w, 3, 10), // rSrc
			RB:   bits(w, 3, 7),  // rDst
			Imm7: uint8(bits(w, 7, 0)),
		}

	case 0b010:
		return Instruction{Op: OpJ, Imm13: bits(w, 13, 0)}

	case 0b011:
		return Instruction{Op: OpJal, Imm13: bits(w, 13, 0)}

	case 0b100:
		return Instruction{
			Op:   OpLw,
			RA:   bits(w, 3, 10), // rAddr
			RB:   bits(w, 3, 7),  // rDst
			Imm7: uint8(bits(w, 7, 0)),
		}

	case 0b101:
		return Instruction{
			Op:   OpSw,
			RA:   bits(w, 3, 10), // rAddr
			RB:   bits(w, 3, 7),  // rSrc
			Imm7: uint8(bits(w, 7, 0)),
		}

	case 0b110:
		return Instruction{
			Op:   OpJeq,
			RA:   bits(w, 3, 10),
			RB:   bits(w, 3, 7),
			Imm7: uint8(bits(w, 7, 0)),
		}

	case 0b111:
		return Instruction{
			Op:   OpSlti,
			RA:   bits(w, 3, 10), // rSrc
			RB:   bits(w, 3, 7),  // rDst
			Imm7: uint8(bits(w, 7, 0)),
		}
	}

	return Instruction{Op: OpNop}
}

// IsHalt reports whether the fetched word is an unconditional jump to
// its own address — the only halt condition in this design (spec.md
// §4.D, §9: a self-targeting jr does not count).
func IsHalt(w Word, pc Word) bool {
	if bits(w, 3, 13) != 0b010 {
		return false
	}
	return Word(bits(w, 13, 0)) == pc
}
