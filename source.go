package avrdisasm

// ByteSource is the pull contract an image-format parser implements. Read
// yields one (byte, address) pair per call; io.EOF signals a clean end of
// stream. Addresses are byte addresses in flash and must increase by
// exactly 1 per call within a contiguous run; gaps between runs are
// permitted and are what drives the printer's .org emission.
type ByteSource interface {
	Init() error
	Read() (b byte, address uint32, err error)
	Close() error
}
