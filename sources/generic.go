package sources

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Generic reads the Atmel Generic record format: one record per line,
// "AAAAAA:DDDD" — a 6 hex digit word address, a ':' separator at offset 6,
// and a 4 hex digit data word. Each record's word address is doubled to a
// byte address and its data word is emitted low byte first, high byte
// second. Grounded on original_source/file/atmel_generic.c and the bundled
// libGIS-1.0.5/atmel_generic.h record layout.
type Generic struct {
	r *bufio.Reader
	q byteQueue
}

func NewGeneric(r io.Reader) *Generic {
	return &Generic{r: bufio.NewReader(r)}
}

func (g *Generic) Init() error  { return nil }
func (g *Generic) Close() error { return nil }

func (g *Generic) Read() (byte, uint32, error) {
	for g.q.empty() {
		line, err := nextNonEmptyLine(g.r)
		if err != nil {
			if err == io.EOF {
				return 0, 0, io.EOF
			}
			return 0, 0, fmt.Errorf("sources: generic: %w", err)
		}
		addr, data, err := parseGenericRecord(line)
		if err != nil {
			return 0, 0, err
		}
		g.q.fill(addr*2, []byte{byte(data), byte(data >> 8)})
	}
	b, a := g.q.next()
	return b, a, nil
}

func parseGenericRecord(line string) (uint32, uint16, error) {
	const addressLen = 6
	const separatorOffset = 6
	const dataLen = 4
	if len(line) < separatorOffset+1+dataLen || line[separatorOffset] != ':' {
		return 0, 0, fmt.Errorf("sources: generic: malformed record %q", line)
	}
	addr, err := strconv.ParseUint(line[:addressLen], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("sources: generic: malformed address in %q: %w", line, err)
	}
	data, err := strconv.ParseUint(line[separatorOffset+1:separatorOffset+1+dataLen], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("sources: generic: malformed data in %q: %w", line, err)
	}
	return uint32(addr), uint16(data), nil
}
