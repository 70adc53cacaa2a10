package sources

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
)

// addrBytesForSRecType returns the address field width in bytes for a
// given S-record type digit, or 0 if the type carries no address/isn't
// recognized.
func addrBytesForSRecType(typ byte) int {
	switch typ {
	case '1', '9':
		return 2
	case '2', '8':
		return 3
	case '3', '7':
		return 4
	default:
		return 0
	}
}

func isSRecDataType(typ byte) bool {
	return typ == '1' || typ == '2' || typ == '3'
}

func isSRecTerminationType(typ byte) bool {
	return typ == '7' || typ == '8' || typ == '9'
}

// SRecord reads Motorola S-Record files. Only S1/S2/S3 data records
// contribute bytes; S0 headers and S5/S6 count records are skipped; an
// S7/S8/S9 termination record ends the stream. Grounded on
// original_source/file/srecord.c and libGIS-1.0.5/srecord.h.
type SRecord struct {
	r *bufio.Reader
	q byteQueue
}

func NewSRecord(r io.Reader) *SRecord {
	return &SRecord{r: bufio.NewReader(r)}
}

func (s *SRecord) Init() error  { return nil }
func (s *SRecord) Close() error { return nil }

func (s *SRecord) Read() (byte, uint32, error) {
	for s.q.empty() {
		line, err := nextNonEmptyLine(s.r)
		if err != nil {
			if err == io.EOF {
				return 0, 0, io.EOF
			}
			return 0, 0, fmt.Errorf("sources: srecord: %w", err)
		}
		typ, addr, data, err := parseSRecord(line)
		if err != nil {
			return 0, 0, err
		}
		switch {
		case isSRecTerminationType(typ):
			return 0, 0, io.EOF
		case isSRecDataType(typ):
			s.q.fill(addr, data)
		default:
			// S0 header or S5/S6 count record: no flash bytes.
		}
	}
	b, a := s.q.next()
	return b, a, nil
}

func parseSRecord(line string) (typ byte, addr uint32, data []byte, err error) {
	if len(line) < 4 || line[0] != 'S' {
		return 0, 0, nil, fmt.Errorf("sources: srecord: malformed record %q", line)
	}
	typ = line[1]
	addrBytes := addrBytesForSRecType(typ)
	if addrBytes == 0 {
		// S0/S4/S5/S6 have no fixed address width we care about; treat the
		// whole remainder as opaque and skip it.
		return typ, 0, nil, nil
	}
	raw, herr := hex.DecodeString(line[2:])
	if herr != nil {
		return 0, 0, nil, fmt.Errorf("sources: srecord: malformed hex in %q: %w", line, herr)
	}
	if len(raw) < 1 {
		return 0, 0, nil, fmt.Errorf("sources: srecord: truncated record %q", line)
	}
	count := int(raw[0])
	if len(raw) != count+1 {
		return 0, 0, nil, fmt.Errorf("sources: srecord: count field %d does not match record %q", count, line)
	}
	if count < addrBytes+1 {
		return 0, 0, nil, fmt.Errorf("sources: srecord: record %q too short for its address width", line)
	}
	sum := byte(0)
	for _, b := range raw {
		sum += b
	}
	if sum != 0xFF {
		return 0, 0, nil, fmt.Errorf("sources: srecord: checksum mismatch in record %q", line)
	}
	for i := 0; i < addrBytes; i++ {
		addr = addr<<8 | uint32(raw[1+i])
	}
	dataStart := 1 + addrBytes
	dataEnd := len(raw) - 1 // exclude trailing checksum byte
	return typ, addr, raw[dataStart:dataEnd], nil
}
