package vm

import (
	"errors"
	"io"
)

// step fetches, decodes and executes exactly one instruction. It returns
// nil to keep running, errHalted on a clean opcode-7 halt, or any other
// error to signal a program error per §7 of the specification.
func (vm *VM) step() error {
	prog := vm.arrays.program()
	if vm.pc >= uint32(len(prog)) {
		return errProgramFinished
	}

	word := prog[vm.pc]
	vm.pc++
	ins := decode(word)

	switch ins.op {
	case OpCmov:
		if vm.registers[ins.c] != 0 {
			vm.registers[ins.a] = vm.registers[ins.b]
		}

	case OpArrayLoad:
		v, err := vm.arrays.load(vm.registers[ins.b], vm.registers[ins.c])
		if err != nil {
			return err
		}
		vm.registers[ins.a] = v

	case OpArrayStore:
		return vm.arrays.store(vm.registers[ins.a], vm.registers[ins.b], vm.registers[ins.c])

	case OpAdd:
		vm.registers[ins.a] = vm.registers[ins.b] + vm.registers[ins.c]

	case OpMul:
		vm.registers[ins.a] = vm.registers[ins.b] * vm.registers[ins.c]

	case OpDiv:
		c := vm.registers[ins.c]
		if c == 0 {
			return errDivisionByZero
		}
		vm.registers[ins.a] = vm.registers[ins.b] / c

	case OpNand:
		vm.registers[ins.a] = ^(vm.registers[ins.b] & vm.registers[ins.c])

	case OpHalt:
		return errHalted

	case OpAlloc:
		vm.registers[ins.b] = vm.arrays.allocate(vm.registers[ins.c])

	case OpFree:
		return vm.arrays.deallocate(vm.registers[ins.c])

	case OpOut:
		v := vm.registers[ins.c]
		if v > 0xFF {
			return errOutOfRange
		}
		return vm.sink.WriteByte(byte(v))

	case OpIn:
		b, err := vm.source.ReadByte()
		switch {
		case err == nil:
			vm.registers[ins.c] = uint32(b)
		case errors.Is(err, io.EOF):
			vm.registers[ins.c] = 0xFFFFFFFF
		default:
			return errIO
		}

	case OpLoadProgram:
		b := vm.registers[ins.b]
		if b != 0 {
			if err := vm.arrays.cloneIntoZero(b); err != nil {
				return err
			}
		}
		vm.pc = vm.registers[ins.c]

	case OpLoadImmediate:
		vm.registers[ins.wideA] = ins.imm

	default:
		return errInvalidOpcode
	}

	return nil
}
