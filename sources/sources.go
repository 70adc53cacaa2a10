// Package sources implements avrdisasm.ByteSource for the flash image
// formats named in spec §6: Atmel Generic, Intel HEX8, Motorola S-Record,
// raw binary, and whitespace-delimited ASCII hex.
package sources

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// byteQueue buffers the bytes decoded from one record of a record-based
// format (generic, ihex, srecord) along with their flash addresses.
type byteQueue struct {
	data []byte
	addr uint32
	idx  int
}

func (q *byteQueue) empty() bool {
	return q.idx >= len(q.data)
}

func (q *byteQueue) next() (byte, uint32) {
	b := q.data[q.idx]
	a := q.addr + uint32(q.idx)
	q.idx++
	return b, a
}

func (q *byteQueue) fill(addr uint32, data []byte) {
	q.data = data
	q.addr = addr
	q.idx = 0
}

// nextNonEmptyLine returns the next line with leading/trailing whitespace
// stripped, skipping blank lines. It mirrors the record readers' habit of
// treating a bare newline as "keep going" rather than end of file (see
// IHEX_ERROR_NEWLINE / SRECORD_ERROR_NEWLINE in the libGIS sources this is
// grounded on): a non-empty line is always returned immediately, and EOF is
// only reported once the reader itself is exhausted.
func nextNonEmptyLine(r *bufio.Reader) (string, error) {
	for {
		line, err := r.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Detect sniffs the image format from the first non-whitespace byte of
// data, per spec §6: ':' is Intel HEX, 'S' is Motorola S-Record, any other
// hex digit is Atmel Generic. It never consults file extensions.
func Detect(data []byte) (string, error) {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if trimmed == "" {
		return "", fmt.Errorf("sources: empty input, cannot detect format")
	}
	switch trimmed[0] {
	case ':':
		return "ihex", nil
	case 'S', 's':
		return "srecord", nil
	default:
		if isHexDigit(trimmed[0]) {
			return "generic", nil
		}
	}
	return "", fmt.Errorf("sources: could not detect format from leading byte %q", trimmed[0])
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Open constructs the ByteSource named by format ("generic", "ihex",
// "srecord", "binary", "asciihex") over r.
func Open(format string, r io.Reader) (ByteSourceCloser, error) {
	switch format {
	case "generic":
		return NewGeneric(r), nil
	case "ihex":
		return NewIHex(r), nil
	case "srecord":
		return NewSRecord(r), nil
	case "binary":
		return NewBinary(r), nil
	case "asciihex":
		return NewAsciiHex(r), nil
	default:
		return nil, fmt.Errorf("sources: unknown format %q", format)
	}
}

// ByteSourceCloser is the avrdisasm.ByteSource contract, restated here so
// this package doesn't import avrdisasm (which never needs to import
// sources back).
type ByteSourceCloser interface {
	Init() error
	Read() (b byte, address uint32, err error)
	Close() error
}
