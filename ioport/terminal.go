package ioport

import (
	"io"
	"os"

	"golang.org/x/term"
)

// terminalSource reads stdin in raw mode so opcode 11 observes keystrokes
// as soon as they arrive instead of waiting on a newline. It is only ever
// constructed by NewTerminalSource, which falls back to the plain buffered
// Source when stdin isn't an interactive terminal, so the raw-mode path
// never changes the byte values a program receives — only whether the
// host's line discipline gets in the way first.
type terminalSource struct {
	fd    int
	saved *term.State
}

// NewTerminalSource returns a raw-mode Source bound to stdin when stdin is
// a terminal, or the default buffered Source otherwise. The returned
// io.Closer must be closed to restore the terminal state it found; callers should do this in the same defer that
// tears down the VM, covering normal halt, program errors, and panics.
func NewTerminalSource() (Source, io.Closer, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return NewStdinSource(), noopCloser{}, nil
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, err
	}
	ts := &terminalSource{fd: fd, saved: saved}
	return ts, ts, nil
}

func (t *terminalSource) ReadByte() (byte, error) {
	var buf [1]byte
	n, err := os.Stdin.Read(buf[:])
	if n == 0 && err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (t *terminalSource) Close() error {
	return term.Restore(t.fd, t.saved)
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
