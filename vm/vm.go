// Package vm implements the stack-free register machine: eight 32-bit
// registers, a recyclable array space addressed by 32-bit identifier, and
// a fetch/decode/dispatch loop that executes array 0 as the program.
package vm

import (
	"log/slog"

	"um/ioport"
)

// Config holds the run-time knobs a caller may set before RunProgram. All
// fields are optional; the zero value reproduces the instruction set's
// behavior exactly (no step tracing, no cycle bound).
type Config struct {
	// Debug enables RunProgramDebugMode-style step tracing instead of the
	// plain run loop.
	Debug bool
	// MaxCycles bounds the number of instructions executed before the VM
	// gives up and reports errCycleLimit. Zero means unbounded, matching
	// the instruction set, which has no such concept.
	MaxCycles uint64
}

// VM is one machine instance: its register file, array space, program
// counter, and the I/O bindings opcodes 10/11 read and write through.
type VM struct {
	registers [8]uint32
	pc        uint32
	arrays    *arraySpace

	sink   ioport.Sink
	source ioport.Source

	cfg Config
	log *slog.Logger

	cycles  uint64
	errcode error
}

// New constructs a VM whose array 0 is program and which reads/writes
// through source and sink. log receives structured diagnostics for every
// program error the dispatch loop raises.
func New(program []uint32, sink ioport.Sink, source ioport.Source, log *slog.Logger, cfg Config) *VM {
	if len(program) == 0 {
		program = make([]uint32, 1)
	}
	return &VM{
		arrays: newArraySpace(program),
		sink:   sink,
		source: source,
		cfg:    cfg,
		log:    log,
	}
}

// Err returns the error that stopped the VM, or nil if it has not run yet
// or halted normally via opcode 7.
func (vm *VM) Err() error {
	return vm.errcode
}

// PC returns the current program counter, mainly useful for tests and the
// debug-mode tracer.
func (vm *VM) PC() uint32 {
	return vm.pc
}

// Registers returns a copy of the eight general-purpose registers, mainly
// useful for tests.
func (vm *VM) Registers() [8]uint32 {
	return vm.registers
}
