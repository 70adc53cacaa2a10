package avrdisasm

import "io"

// sliceSource is a ByteSource fixture backed by an explicit byte/address
// pair list, letting tests construct both contiguous runs and runs with
// gaps without going through a sources.* parser.
type sliceSource struct {
	bytes []byte
	addrs []uint32
	i     int
}

func newContigSource(start uint32, bytes []byte) *sliceSource {
	addrs := make([]uint32, len(bytes))
	for i := range bytes {
		addrs[i] = start + uint32(i)
	}
	return &sliceSource{bytes: bytes, addrs: addrs}
}

func newGappedSource(bytes []byte, addrs []uint32) *sliceSource {
	if len(bytes) != len(addrs) {
		panic("avrdisasm: test fixture bytes/addrs length mismatch")
	}
	return &sliceSource{bytes: bytes, addrs: addrs}
}

func (s *sliceSource) Init() error  { return nil }
func (s *sliceSource) Close() error { return nil }

func (s *sliceSource) Read() (byte, uint32, error) {
	if s.i >= len(s.bytes) {
		return 0, 0, io.EOF
	}
	b, a := s.bytes[s.i], s.addrs[s.i]
	s.i++
	return b, a, nil
}
