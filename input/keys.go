package input

// Key is a decoded keypress.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	// KeyInterrupt is Ctrl-C, which raw mode delivers as a byte instead of a signal.
	KeyInterrupt
)

const (
	esc       = 0x1b
	ctrlC     = 0x03
	extPrefix = 0x00
	extAlt    = 0xe0
)

// Decode splits buf into keys. Arrow keys arrive either as ANSI sequences
// (ESC [ A, ESC O A, ESC [ 1 ; 5 A) or as a 0x00 / 0xE0 prefix followed by a scan code.
// An incomplete sequence at the end of buf, a trailing ESC included, is
// returned as rest for the next call.
func Decode(buf []byte) (keys []Key, rest []byte) {
	i := 0
	for i < len(buf) {
		b := buf[i]
		switch b {
		case esc:
			if i+1 == len(buf) {
				return keys, buf[i:]
			}
			switch buf[i+1] {
			case '[':
				final, n, more := csi(buf[i+2:])
				switch {
				case more:
					return keys, buf[i:]
				case n == 0:
					// not a key sequence: Escape, then '[' on its own
					keys = append(keys, KeyEscape)
					i++
				default:
					keys = append(keys, arrow(final))
					i += 2 + n
				}
			case 'O':
				if i+2 == len(buf) {
					return keys, buf[i:]
				}
				keys = append(keys, arrow(buf[i+2]))
				i += 3
			default:
				keys = append(keys, KeyEscape)
				i++
			}
		case extPrefix, extAlt:
			if i+1 == len(buf) {
				return keys, buf[i:]
			}
			keys = append(keys, scanCode(buf[i+1]))
			i += 2
		default:
			keys = append(keys, letter(b))
			i++
		}
	}
	return keys, nil
}

// csi skips digit and ';' parameters and returns the final byte and how many
// bytes were read. Only 'A'..'Z' and '~' end a key sequence; any other byte
// gives n == 0. more is set when buf ends first.
func csi(buf []byte) (final byte, n int, more bool) {
	for n < len(buf) {
		c := buf[n]
		n++
		switch {
		case c >= '0' && c <= '9', c == ';':
		case c >= 'A' && c <= 'Z', c == '~':
			return c, n, false
		default:
			return 0, 0, false
		}
	}
	return 0, 0, true
}

func arrow(final byte) Key {
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	default:
		return KeyUnknown
	}
}

func scanCode(c byte) Key {
	switch c {
	case 72:
		return KeyUp
	case 80:
		return KeyDown
	case 75:
		return KeyLeft
	case 77:
		return KeyRight
	default:
		return KeyUnknown
	}
}

func letter(b byte) Key {
	switch b {
	case 'w', 'W':
		return KeyUp
	case 's', 'S':
		return KeyDown
	case 'a', 'A':
		return KeyLeft
	case 'd', 'D':
		return KeyRight
	case ctrlC:
		return KeyInterrupt
	default:
		return KeyUnknown
	}
}
