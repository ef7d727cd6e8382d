package vm

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"

	"um/diag"
)

// recoverSegfault converts an unexpected Go-level panic (a slice index
// bug, an integer overflow we failed to guard) into the same program-error
// reporting path a detected error takes, rather than letting the process
// crash with a raw stack trace. A correct instruction stream never hits
// this; it exists because the instruction set leaves out-of-range access
// explicitly undefined (§7) and we'd rather report than corrupt state.
func (vm *VM) recoverSegfault() {
	if r := recover(); r != nil {
		if vm.errcode == nil {
			vm.errcode = fmt.Errorf("internal error: %v", r)
		}
		vm.reportError()
	}
}

func (vm *VM) reportError() {
	if vm.errcode == nil || vm.errcode == errHalted {
		return
	}
	// An instruction that fails has already advanced pc past itself; a
	// failed fetch or the cycle limit leaves pc at the word not yet run.
	pc := vm.pc
	if pc > 0 && vm.errcode != errProgramFinished && vm.errcode != errCycleLimit {
		pc--
	}
	if vm.log != nil {
		diag.ProgramError(vm.log, vm.errcode, pc, vm.lastOpcode())
	}
}

func (vm *VM) lastOpcode() string {
	prog := vm.arrays.program()
	if vm.pc == 0 || int(vm.pc) > len(prog) {
		return "?"
	}
	return decode(prog[vm.pc-1]).op.String()
}

// RunProgram executes instructions until halt or a program error. It
// mirrors the donor's GOGC-disabling technique: the dispatch loop performs
// no steady-state allocation once the VM is constructed, so suspending the
// collector for the run avoids paying for GC cycles that would never find
// meaningful garbage.
func (vm *VM) RunProgram() {
	restoreGC := disableGC()
	defer restoreGC()
	defer vm.recoverSegfault()
	defer vm.flushSink()

	if vm.cfg.Debug {
		vm.runDebug()
		return
	}

	for {
		if vm.cfg.MaxCycles > 0 && vm.cycles >= vm.cfg.MaxCycles {
			vm.errcode = errCycleLimit
			vm.reportError()
			return
		}
		vm.cycles++

		err := vm.step()
		if err == nil {
			continue
		}
		if err == errHalted {
			return
		}
		vm.errcode = err
		vm.reportError()
		return
	}
}

// runDebug executes the same loop as RunProgram but prints machine state
// before each instruction, the way the donor's RunProgramDebugMode traces
// its stack machine.
func (vm *VM) runDebug() {
	for {
		if vm.cfg.MaxCycles > 0 && vm.cycles >= vm.cfg.MaxCycles {
			vm.errcode = errCycleLimit
			vm.reportError()
			return
		}
		vm.cycles++

		fmt.Fprintf(os.Stderr, "  pc=%d registers=%v\n", vm.pc, vm.registers)

		err := vm.step()
		if err == nil {
			continue
		}
		if err == errHalted {
			return
		}
		vm.errcode = err
		vm.reportError()
		return
	}
}

func (vm *VM) flushSink() {
	if vm.sink != nil {
		_ = vm.sink.Flush()
	}
}

// disableGC suspends the garbage collector for the duration of a run and
// returns a func that restores whatever GOGC was in effect before,
// defaulting to 100 when the environment variable isn't set (matching the
// donor's fallback).
func disableGC() func() {
	key, ok := os.LookupEnv("GOGC")
	if !ok {
		key = "100"
	}
	gcPercent, err := strconv.Atoi(key)
	if err != nil {
		gcPercent = 100
	}

	debug.SetGCPercent(-1)
	return func() {
		debug.SetGCPercent(gcPercent)
	}
}
