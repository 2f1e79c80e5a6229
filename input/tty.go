package input

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// TTY reads keypresses from a file, in raw mode when the file is a terminal.
type TTY struct {
	in     *os.File
	fd     int
	old    *term.State
	chunks chan []byte
}

// OpenTTY starts reading in. Call Close to restore the terminal.
func OpenTTY(in *os.File) (*TTY, error) {
	t := &TTY{
		in:     in,
		fd:     int(in.Fd()),
		chunks: make(chan []byte, 64),
	}
	if isatty.IsTerminal(in.Fd()) {
		old, err := term.MakeRaw(t.fd)
		if err != nil {
			return nil, fmt.Errorf("enter raw mode: %w", err)
		}
		t.old = old
	}
	go t.readLoop()
	return t, nil
}

func (t *TTY) readLoop() {
	defer close(t.chunks)
	buf := make([]byte, 64)
	for {
		n, err := t.in.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			t.chunks <- chunk
		}
		if err != nil {
			return
		}
	}
}

// Chunks delivers bytes as they are read. It is closed at end of input.
func (t *TTY) Chunks() <-chan []byte {
	return t.chunks
}

// Raw reports whether the terminal was switched to raw mode.
func (t *TTY) Raw() bool {
	return t.old != nil
}

func (t *TTY) Close() error {
	if t.old == nil {
		return nil
	}
	err := term.Restore(t.fd, t.old)
	t.old = nil
	return err
}
