// Package diag provides structured diagnostics for the VM and its command
// surface, following the corpus's own pattern of wrapping log/slog rather
// than reaching for a standalone logging library (see DESIGN.md).
package diag

import (
	"io"
	"log/slog"
)

// New builds a text-handler logger writing to w (os.Stderr in normal use).
// Tests construct their own logger over a bytes.Buffer to assert on
// emitted diagnostics without touching the real stderr.
func New(w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler)
}

// ProgramError logs an instruction-set-level error (division by zero, an
// out-of-bounds array access, an invalid opcode, ...). Callers terminate
// the process with a non-zero status immediately after.
func ProgramError(log *slog.Logger, err error, pc uint32, opcode string) {
	log.Error("program error", "err", err, "pc", pc, "opcode", opcode)
}

// HostError logs an implementation-level error that happens before a VM
// is constructed: a missing or unreadable image file, a short or
// odd-length read.
func HostError(log *slog.Logger, err error, context string) {
	log.Error("host error", "err", err, "context", context)
}
