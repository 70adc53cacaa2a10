package sources

import "io"

// Binary reads a raw flash image byte for byte, addressing from zero.
// Grounded on original_source/file/binary.c.
type Binary struct {
	r    io.Reader
	addr uint32
}

func NewBinary(r io.Reader) *Binary {
	return &Binary{r: r}
}

func (b *Binary) Init() error  { return nil }
func (b *Binary) Close() error { return nil }

func (b *Binary) Read() (byte, uint32, error) {
	var buf [1]byte
	n, err := b.r.Read(buf[:])
	if n == 1 {
		addr := b.addr
		b.addr++
		return buf[0], addr, nil
	}
	if err == io.EOF {
		return 0, 0, io.EOF
	}
	if err != nil {
		return 0, 0, err
	}
	return 0, 0, io.EOF
}
