package sources

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, src ByteSourceCloser) ([]byte, []uint32) {
	t.Helper()
	require.NoError(t, src.Init())
	defer src.Close()

	var bs []byte
	var addrs []uint32
	for {
		b, a, err := src.Read()
		if err == io.EOF {
			return bs, addrs
		}
		require.NoError(t, err)
		bs = append(bs, b)
		addrs = append(addrs, a)
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{":10000000", "ihex"},
		{"S1130000", "srecord"},
		{"000000:C000", "generic"},
	}
	for _, c := range cases {
		got, err := Detect([]byte(c.input))
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}

	_, err := Detect([]byte{})
	assert.Error(t, err)
}

func TestGenericSource(t *testing.T) {
	// word address 0x000000 -> byte address 0, data 0xC000 -> low 0x00, high 0xC0
	// word address 0x000001 -> byte address 2, data 0xEF0F -> low 0x0F, high 0xEF
	in := "000000:C000\n000001:EF0F\n"
	src := NewGeneric(strings.NewReader(in))
	bs, addrs := drain(t, src)
	assert.Equal(t, []byte{0x00, 0xC0, 0x0F, 0xEF}, bs)
	assert.Equal(t, []uint32{0, 1, 2, 3}, addrs)
}

func TestGenericSourceMalformedRecord(t *testing.T) {
	src := NewGeneric(strings.NewReader("not-a-record\n"))
	require.NoError(t, src.Init())
	defer src.Close()
	_, _, err := src.Read()
	assert.Error(t, err)
}

func TestBinarySource(t *testing.T) {
	src := NewBinary(strings.NewReader("\x01\x02\x03"))
	bs, addrs := drain(t, src)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, bs)
	assert.Equal(t, []uint32{0, 1, 2}, addrs)
}

func TestAsciiHexSource(t *testing.T) {
	src := NewAsciiHex(strings.NewReader("4c 0a 9F\n"))
	bs, addrs := drain(t, src)
	assert.Equal(t, []byte{0x4c, 0x0a, 0x9f}, bs)
	assert.Equal(t, []uint32{0, 1, 2}, addrs)
}

func TestAsciiHexSourceMalformedToken(t *testing.T) {
	src := NewAsciiHex(strings.NewReader("zz\n"))
	require.NoError(t, src.Init())
	defer src.Close()
	_, _, err := src.Read()
	assert.Error(t, err)
}

func TestIHexSourceDataRecordAndEOF(t *testing.T) {
	// :03 0000 00 010203 F7   -- data record, 3 bytes, addr 0, type 00
	// :00 0000 01 FF          -- EOF record
	in := ":03000000010203F7\n:00000001FF\n"
	src := NewIHex(strings.NewReader(in))
	bs, addrs := drain(t, src)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, bs)
	assert.Equal(t, []uint32{0, 1, 2}, addrs)
}

func TestSRecordSourceS1DataAndS9Termination(t *testing.T) {
	// Built programmatically below to avoid manual checksum arithmetic mistakes.
	in := buildS1(t, 0x0000, []byte{0x01, 0x02, 0x03}) + "\n" + buildS9(t) + "\n"
	src := NewSRecord(strings.NewReader(in))
	bs, addrs := drain(t, src)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, bs)
	assert.Equal(t, []uint32{0, 1, 2}, addrs)
}

func buildS1(t *testing.T, addr uint16, data []byte) string {
	t.Helper()
	count := 2 + len(data) + 1
	sum := byte(count) + byte(addr>>8) + byte(addr)
	for _, b := range data {
		sum += b
	}
	checksum := ^sum
	var sb strings.Builder
	sb.WriteString("S1")
	writeHexByte(&sb, byte(count))
	writeHexByte(&sb, byte(addr>>8))
	writeHexByte(&sb, byte(addr))
	for _, b := range data {
		writeHexByte(&sb, b)
	}
	writeHexByte(&sb, checksum)
	return sb.String()
}

func buildS9(t *testing.T) string {
	t.Helper()
	// S9, count 3 (addr2+sum1), addr 0000
	count := byte(3)
	sum := count
	checksum := ^sum
	var sb strings.Builder
	sb.WriteString("S9")
	writeHexByte(&sb, count)
	writeHexByte(&sb, 0)
	writeHexByte(&sb, 0)
	writeHexByte(&sb, checksum)
	return sb.String()
}

func writeHexByte(sb *strings.Builder, b byte) {
	const hexDigits = "0123456789ABCDEF"
	sb.WriteByte(hexDigits[b>>4])
	sb.WriteByte(hexDigits[b&0xF])
}
