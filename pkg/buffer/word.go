package buffer

type byteClass int

const (
	classBlank byteClass = iota
	classWord
	classPunct
)

// IsWordByte reports whether c belongs to a word: ASCII letters, digits and
// underscore.
func IsWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func classOf(c byte) byteClass {
	switch {
	case c == ' ' || c == '\t' || c == Separator || c == '\r':
		return classBlank
	case IsWordByte(c):
		return classWord
	}
	return classPunct
}

func (b *Buffer) classAt(off int) byteClass { return classOf(b.text[off]) }

// NextWordStart returns the offset of the first byte of the next word after
// off, like vi's w. Runs of punctuation count as words. It returns Len() when
// there is no next word.
func NextWordStart(b *Buffer, off int) int {
	if b == nil {
		return 0
	}
	if off >= b.n {
		return b.n
	}
	if off < 0 {
		off = 0
	}
	if c := b.classAt(off); c != classBlank {
		for off < b.n && b.classAt(off) == c {
			off++
		}
	}
	for off < b.n && b.classAt(off) == classBlank {
		off++
	}
	return off
}

// WordStart returns the offset of the first byte of the word before off, like
// vi's b.
func WordStart(b *Buffer, off int) int {
	if b == nil || b.n == 0 {
		return 0
	}
	if off > b.n {
		off = b.n
	}
	off--
	for off > 0 && b.classAt(off) == classBlank {
		off--
	}
	if off <= 0 {
		return 0
	}
	c := b.classAt(off)
	for off > 0 && b.classAt(off-1) == c {
		off--
	}
	return off
}

// WordEnd returns the offset of the last byte of the word after off, like
// vi's e. At the end of the buffer it returns the last offset.
func WordEnd(b *Buffer, off int) int {
	if b == nil || b.n == 0 {
		return 0
	}
	last := b.n - 1
	off++
	if off >= last {
		return last
	}
	for off < last && b.classAt(off) == classBlank {
		off++
	}
	c := b.classAt(off)
	for off < last && b.classAt(off+1) == c {
		off++
	}
	return off
}
