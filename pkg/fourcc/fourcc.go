// Package fourcc provides the four-character code value type used by the
// generated codec tables.
package fourcc

import (
	"errors"
	"fmt"
)

// FourCC packs four bytes little-endian, first character in the low byte.
type FourCC uint32

var ErrInvalidLength = errors.New("fourcc must be exactly 4 bytes")

// New builds a FourCC from its four characters.
func New(a, b, c, d byte) FourCC {
	return FourCC(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// Parse converts a 4 byte string such as "h264" into a FourCC.
func Parse(s string) (FourCC, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	return New(s[0], s[1], s[2], s[3]), nil
}

// Bytes returns the four characters in declaration order.
func (f FourCC) Bytes() [4]byte {
	return [4]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
}

func (f FourCC) String() string {
	b := f.Bytes()
	return string(b[:])
}
