// Package ioport provides the console byte-stream bindings the VM's in/out
// opcodes read and write through. The default bindings wrap os.Stdin and
// os.Stdout with bufio, mirroring the buffered stdio the donor VM uses;
// NewTerminalSource (terminal.go) is an additive raw-mode alternative for
// the input side.
package ioport

import (
	"bufio"
	"io"
	"os"
)

// Sink is the abstract output byte stream opcode 10 writes through.
type Sink interface {
	io.ByteWriter
	Flush() error
}

// Source is the abstract input byte stream opcode 11 reads through. EOF is
// reported as io.EOF and is sticky: once returned, all further reads must
// keep returning io.EOF.
type Source interface {
	io.ByteReader
}

// stdoutSink is the default Sink: a bufio.Writer over os.Stdout, which
// writes out when its buffer fills and is flushed explicitly on halt and
// at shutdown; it does not flush at newlines.
type stdoutSink struct {
	w *bufio.Writer
}

// NewStdoutSink wraps os.Stdout in a buffered Sink.
func NewStdoutSink() Sink {
	return &stdoutSink{w: bufio.NewWriter(os.Stdout)}
}

func (s *stdoutSink) WriteByte(b byte) error {
	return s.w.WriteByte(b)
}

func (s *stdoutSink) Flush() error {
	return s.w.Flush()
}

// stdinSource is the default Source: a buffered reader over os.Stdin. Once
// the underlying reader reports io.EOF it keeps doing so; bufio.Reader
// already has this property for a stream that stays exhausted.
type stdinSource struct {
	r *bufio.Reader
}

// NewStdinSource wraps os.Stdin in a buffered Source.
func NewStdinSource() Source {
	return &stdinSource{r: bufio.NewReader(os.Stdin)}
}

func (s *stdinSource) ReadByte() (byte, error) {
	return s.r.ReadByte()
}
