package plain

import (
	"bufio"
	"io"

	"example.com/ink/pkg/keys"
)

// KeyReader decodes raw terminal bytes into key codes.
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader wraps r.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

// ReadKey returns the next key. An ESC followed, in the same read, by "[A"
// through "[D" (or the "O" variants) is an arrow key; any other ESC is Escape.
// It returns io.EOF once the input is exhausted.
func (kr *KeyReader) ReadKey() (keys.Key, error) {
	c, err := kr.r.ReadByte()
	if err != nil {
		return keys.KeyNone, err
	}
	if c != byte(keys.KeyEscape) || kr.r.Buffered() < 2 {
		return keys.Key(c), nil
	}
	seq, err := kr.r.Peek(2)
	if err != nil || (seq[0] != '[' && seq[0] != 'O') {
		return keys.KeyEscape, nil
	}
	var k keys.Key
	switch seq[1] {
	case 'A':
		k = keys.KeyUp
	case 'B':
		k = keys.KeyDown
	case 'C':
		k = keys.KeyRight
	case 'D':
		k = keys.KeyLeft
	default:
		return keys.KeyEscape, nil
	}
	kr.r.Discard(2)
	return k, nil
}
