package otmath

import (
	"errors"
)

// Reading bytes from a font's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler.
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler.
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// fontBinSegm is a segment of byte data. We use it throughout this
// package to navigate the font's binary data.
type fontBinSegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b fontBinSegm) view(offset, n int) (fontBinSegm, error) {
	if offset < 0 || n <= 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b fontBinSegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// i16 returns the int16 in b at the relative offset i.
func (b fontBinSegm) i16(i int) (int16, error) {
	v, err := b.u16(i)
	return int16(v), err
}

// --- Coverage tables -------------------------------------------------------

// coverage is an OpenType coverage table, which maps glyph IDs to
// indices into an accompanying value array.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#coverage-table
type coverage struct {
	b fontBinSegm
}

// index returns the coverage index for a glyph, if covered.
func (c coverage) index(gid uint16) (int, bool) {
	if len(c.b) < 4 {
		return 0, false
	}
	format := u16(c.b)
	count := int(u16(c.b[2:]))
	switch format {
	case 1: // glyph array
		if len(c.b) < 4+2*count {
			return 0, false
		}
		lo, hi := 0, count
		for lo < hi {
			mid := (lo + hi) / 2
			g := u16(c.b[4+2*mid:])
			if g < gid {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo < count && u16(c.b[4+2*lo:]) == gid {
			return lo, true
		}
	case 2: // range records of (start, end, startCoverageIndex)
		if len(c.b) < 4+6*count {
			return 0, false
		}
		for i := 0; i < count; i++ {
			rec := c.b[4+6*i:]
			start, end := u16(rec), u16(rec[2:])
			if gid >= start && gid <= end {
				return int(u16(rec[4:])) + int(gid-start), true
			}
			if gid < start {
				break
			}
		}
	}
	return 0, false
}
