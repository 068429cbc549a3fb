package vlay

import (
	"errors"
	"testing"
)

func TestMorton_KnownCodes(t *testing.T) {
	cases := []struct {
		p    Point
		want uint32
	}{
		{Point{0, 0, 0}, 0},
		{Point{1, 0, 0}, 1},
		{Point{0, 1, 0}, 2},
		{Point{0, 0, 1}, 4},
		{Point{3, 5, 7}, 431},
		{Point{9, 14, 2}, 1713},
		{Point{15, 15, 15}, 4095},
	}
	for _, c := range cases {
		got, err := EncodeMorton(c.p)
		if err != nil {
			t.Fatalf("encode %v: %v", c.p, err)
		}
		if got != c.want {
			t.Fatalf("encode %v = %d, want %d", c.p, got, c.want)
		}
	}
}

func TestMorton_RoundTrip(t *testing.T) {
	for y := range Height {
		for z := range Depth {
			for x := range Width {
				p := Point{X: x, Y: y, Z: z}
				code, err := EncodeMorton(p)
				if err != nil {
					t.Fatalf("encode %v: %v", p, err)
				}
				if code >= Volume {
					t.Fatalf("encode %v = %d, out of range", p, code)
				}
				if got := DecodeMorton(code); got != p {
					t.Fatalf("decode(encode(%v)) = %v", p, got)
				}
			}
		}
	}
	for i := uint32(0); i < Volume; i++ {
		p := DecodeMorton(i)
		code, err := EncodeMorton(p)
		if err != nil {
			t.Fatalf("decode %d -> %v: %v", i, p, err)
		}
		if code != i {
			t.Fatalf("encode(decode(%d)) = %d", i, code)
		}
	}
}

func TestMorton_BitCycle(t *testing.T) {
	// bit i of the code must be bit i/3 of axis i%3
	for y := range Height {
		for z := range Depth {
			for x := range Width {
				code, _ := EncodeMorton(Point{X: x, Y: y, Z: z})
				var want uint32
				for bit := 0; bit < 4; bit++ {
					want |= uint32(x>>bit&1) << (3 * bit)
					want |= uint32(y>>bit&1) << (3*bit + 1)
					want |= uint32(z>>bit&1) << (3*bit + 2)
				}
				if code != want {
					t.Fatalf("(%d,%d,%d): code %d, reference %d", x, y, z, code, want)
				}
			}
		}
	}
}

func TestMorton_EncodeBounds(t *testing.T) {
	bad := []Point{
		{16, 0, 0},
		{0, 16, 0},
		{0, 0, 16},
		{-1, 0, 0},
		{0, -1, 0},
		{0, 0, -1},
		{255, 255, 255},
	}
	for _, p := range bad {
		if _, err := EncodeMorton(p); !errors.Is(err, ErrMortonRange) {
			t.Fatalf("encode %v: want ErrMortonRange, got %v", p, err)
		}
	}
}
