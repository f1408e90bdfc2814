package buffer

// TextStorage defines the offset-level operations the undo log needs to
// replay or invert an edit. Offsets and lengths are in bytes.
type TextStorage interface {
	InsertAt(off int, b byte) error
	RemoveAt(off int) (byte, error)
	Len() int
}
