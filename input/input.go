package input

import (
	"github.com/hoshinonyaruko/snake-in-term/structs"
)

// State is the intent shared between the key reader and the game loop.
type State struct {
	Direction structs.Direction
	Paused    bool
	Running   bool
}

// NewState returns a running, paused state with no direction yet.
func NewState() *State {
	return &State{Paused: true, Running: true}
}

// Apply updates the state for k and reports whether k was recognized.
// Once the game is over no key has an effect.
func (s *State) Apply(k Key) bool {
	if !s.Running {
		return false
	}
	switch k {
	case KeyEscape:
		s.Paused = true
	case KeyUp:
		s.steer(structs.Up)
	case KeyDown:
		s.steer(structs.Down)
	case KeyLeft:
		s.steer(structs.Left)
	case KeyRight:
		s.steer(structs.Right)
	case KeyInterrupt:
		s.Running = false
	default:
		return false
	}
	return true
}

func (s *State) steer(d structs.Direction) {
	s.Direction = d
	s.Paused = false
}

func (s *State) Phase() structs.Phase {
	switch {
	case !s.Running:
		return structs.Over
	case s.Paused:
		return structs.Paused
	default:
		return structs.Running
	}
}

// Reader turns raw byte chunks into keys without blocking.
type Reader struct {
	chunks  <-chan []byte
	pending []byte
}

func NewReader(chunks <-chan []byte) *Reader {
	return &Reader{chunks: chunks}
}

// Drain applies every key buffered so far to s, in arrival order, and returns
// how many were recognized. It never waits for input.
//
// A sequence cut short by the end of a read is held for the next Drain. If
// nothing new arrives by then, a held ESC is taken as the Escape key and the
// bytes after it are dropped.
func (r *Reader) Drain(s *State) int {
	arrived := false
loop:
	for r.chunks != nil {
		select {
		case chunk, ok := <-r.chunks:
			if !ok {
				r.chunks = nil
				break loop
			}
			arrived = arrived || len(chunk) > 0
			r.pending = append(r.pending, chunk...)
		default:
			break loop
		}
	}

	keys, rest := Decode(r.pending)
	if !arrived && len(rest) > 0 {
		if rest[0] == esc {
			keys = append(keys, KeyEscape)
		}
		rest = nil
	}
	r.pending = append(r.pending[:0:0], rest...)

	n := 0
	for _, k := range keys {
		if s.Apply(k) {
			n++
		}
	}
	return n
}

// Closed reports whether the input has ended and no more keys will arrive.
func (r *Reader) Closed() bool {
	return r.chunks == nil
}
