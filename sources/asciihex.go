package sources

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// AsciiHex reads whitespace-delimited two-digit hex byte tokens ("4c 0a 9f"
// or newline-separated), addressing from zero. Grounded on
// original_source/file/asciihex.c, reimplemented with bufio.ScanWords
// rather than the original's fixed 3-byte read-ahead.
type AsciiHex struct {
	sc   *bufio.Scanner
	addr uint32
}

func NewAsciiHex(r io.Reader) *AsciiHex {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &AsciiHex{sc: sc}
}

func (s *AsciiHex) Init() error  { return nil }
func (s *AsciiHex) Close() error { return nil }

func (s *AsciiHex) Read() (byte, uint32, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return 0, 0, fmt.Errorf("sources: asciihex: %w", err)
		}
		return 0, 0, io.EOF
	}
	tok := s.sc.Text()
	if len(tok) != 2 {
		return 0, 0, fmt.Errorf("sources: asciihex: malformed token %q", tok)
	}
	v, err := strconv.ParseUint(tok, 16, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("sources: asciihex: malformed token %q: %w", tok, err)
	}
	addr := s.addr
	s.addr++
	return byte(v), addr, nil
}
