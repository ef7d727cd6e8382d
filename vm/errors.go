package vm

import "errors"

// Sentinel program errors. Each corresponds to one of the undefined
// conditions in the instruction set (§7 of the specification), except
// errIO (a failing input source) and errCycleLimit (the host-side
// max-cycles bound); the dispatch loop sets errcode to one of these and
// stops, it never continues after an error is raised.
var (
	errProgramFinished   = errors.New("fetched past the end of array 0")
	errInvalidOpcode     = errors.New("opcode outside 0-13")
	errUnknownIdentifier = errors.New("array identifier is not live")
	errOutOfBounds       = errors.New("array offset out of bounds")
	errDivisionByZero    = errors.New("division by zero")
	errDeallocateProgram = errors.New("deallocation of identifier 0")
	errOutOfRange        = errors.New("output value exceeds one byte")
	errIO                = errors.New("input-output error")
	errCycleLimit        = errors.New("max-cycles limit reached")

	// errHalted is used internally to unwind out of the dispatch loop on a
	// clean opcode-7 halt; it is never exposed through Err().
	errHalted = errors.New("halt")
)
