package vlay

import "io"

// slotBits is the packed width of one slot value. 12 bits hold exactly
// [0, Volume), so range validity is structural in the packed form.
const slotBits = 12

// packedSize is the byte length of Volume slot values packed slotBits wide.
const packedSize = Volume * slotBits / 8

// packSlots packs each value into slotBits bits, filling bytes low bit first.
func packSlots(vals []uint16) []byte {
	out := make([]byte, 0, len(vals)*slotBits/8+1)
	var acc uint32
	var n uint8
	for _, v := range vals {
		acc |= uint32(v&(1<<slotBits-1)) << n
		n += slotBits
		for n >= 8 {
			out = append(out, byte(acc))
			acc >>= 8
			n -= 8
		}
	}
	if n > 0 {
		out = append(out, byte(acc))
	}
	return out
}

// unpackSlots reverses packSlots, reading count values. It fails with
// io.ErrUnexpectedEOF when data runs out early.
func unpackSlots(data []byte, count int) ([]uint16, error) {
	out := make([]uint16, count)
	var acc uint32
	var n uint8
	pos := 0
	for i := 0; i < count; i++ {
		for n < slotBits {
			if pos >= len(data) {
				return nil, io.ErrUnexpectedEOF
			}
			acc |= uint32(data[pos]) << n
			n += 8
			pos++
		}
		out[i] = uint16(acc & (1<<slotBits - 1))
		acc >>= slotBits
		n -= slotBits
	}
	return out, nil
}
