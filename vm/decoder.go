package vm

// Opcode identifies one of the fourteen operations the machine understands.
// Values 14 and 15 never decode to a valid Opcode; fetching one is a
// program error (see errInvalidOpcode).
type Opcode uint32

const (
	OpCmov Opcode = iota
	OpArrayLoad
	OpArrayStore
	OpAdd
	OpMul
	OpDiv
	OpNand
	OpHalt
	OpAlloc
	OpFree
	OpOut
	OpIn
	OpLoadProgram
	OpLoadImmediate
)

func (op Opcode) String() string {
	switch op {
	case OpCmov:
		return "cmov"
	case OpArrayLoad:
		return "aload"
	case OpArrayStore:
		return "astore"
	case OpAdd:
		return "add"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpNand:
		return "nand"
	case OpHalt:
		return "halt"
	case OpAlloc:
		return "alloc"
	case OpFree:
		return "free"
	case OpOut:
		return "out"
	case OpIn:
		return "in"
	case OpLoadProgram:
		return "loadp"
	case OpLoadImmediate:
		return "loadi"
	default:
		return "invalid"
	}
}

// instruction is the decoded form of one 32-bit word. Only the fields
// relevant to the opcode are meaningful: standard-form opcodes use a, b, c;
// OpLoadImmediate uses wideA and imm.
type instruction struct {
	op    Opcode
	a     uint32
	b     uint32
	c     uint32
	wideA uint32
	imm   uint32
}

// decode splits a 32-bit word into its opcode and operand fields. It never
// fails: bits 28-31 that don't correspond to a defined opcode still decode,
// the resulting Opcode is simply not one step recognizes.
func decode(word uint32) instruction {
	op := Opcode(word >> 28)
	if op == OpLoadImmediate {
		return instruction{
			op:    op,
			wideA: (word >> 25) & 0x7,
			imm:   word & 0x1FFFFFF,
		}
	}
	return instruction{
		op: op,
		a:  (word >> 6) & 0x7,
		b:  (word >> 3) & 0x7,
		c:  word & 0x7,
	}
}
