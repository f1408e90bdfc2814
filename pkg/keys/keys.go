package keys

import "fmt"

// Key is a single input code. Values below 256 are raw input bytes; larger
// values name keys that arrive as multi-byte sequences (arrows).
type Key int

const (
	KeyNone      Key = -1
	KeyBackspace Key = 8
	KeyTab       Key = 9
	KeyLineFeed  Key = 10
	KeyEnter     Key = 13
	KeyEscape    Key = 27
	KeyDelete    Key = 127
)

const (
	KeyUp Key = 256 + iota
	KeyDown
	KeyLeft
	KeyRight
)

// Ctrl returns the control code for an ASCII letter, e.g. Ctrl('r') == 18.
func Ctrl(letter byte) Key {
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	return Key(letter & 0x1f)
}

// IsPrintable reports whether k inserts itself into the buffer in insert mode.
func IsPrintable(k Key) bool {
	return k == KeyTab || (k >= 32 && k < 127)
}

// IsEnter reports whether k ends a line.
func IsEnter(k Key) bool { return k == KeyEnter || k == KeyLineFeed }

// IsBackspace reports whether k deletes the byte before the cursor.
func IsBackspace(k Key) bool { return k == KeyBackspace || k == KeyDelete }

// Byte returns the byte a printable key inserts.
func (k Key) Byte() byte { return byte(k) }

var names = map[Key]string{
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyLineFeed:  "Enter",
	KeyEnter:     "Enter",
	KeyEscape:    "Esc",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
}

func (k Key) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	switch {
	case k == KeyNone:
		return "None"
	case k > 0 && k < 32:
		return fmt.Sprintf("Ctrl+%c", 'A'+rune(k)-1)
	case k >= 32 && k < 127:
		return string(rune(k))
	}
	return fmt.Sprintf("Key(%d)", int(k))
}
