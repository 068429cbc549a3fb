package vlay

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// Compression selects how the packed slot payload is stored.
type Compression uint8

const (
	CompNone Compression = 0
	CompZlib Compression = 1
	CompZstd Compression = 2
)

const (
	vlayMagic   = "VLAY"
	vlayVersion = 1

	headerSize = 22 // magic + ver + comp + w/h/d + bits + digest + plen
)

// Snapshot validation failures. Load rejects the file before building a
// layout, so a failed load cannot disturb the caller's state.
var (
	ErrNotVlay            = errors.New("vlay: not a .vlay file")
	ErrUnsupportedVersion = errors.New("vlay: unsupported version")
	ErrDimensionMismatch  = errors.New("vlay: dimension mismatch")
	ErrChecksum           = errors.New("vlay: payload digest mismatch")
	ErrNotBijective       = errors.New("vlay: slots are not a permutation")
)

// Header is the fixed-size .vlay file header.
type Header struct {
	Ver     uint8
	Comp    Compression
	W, H, D uint8
	Bits    uint8
	Digest  uint64
	PLen    uint32
}

// MarshalLayout encodes the layout as a .vlay file: the slot values in
// canonical coordinate order, packed 12 bits wide, digested with xxhash64 and
// compressed per comp.
func MarshalLayout(l *Layout, comp Compression) ([]byte, error) {
	packed := packSlots(l.slots[:])
	digest := xxhash.Sum64(packed)

	var payload []byte
	switch comp {
	case CompNone:
		payload = packed
	case CompZlib:
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if _, err := zw.Write(packed); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		payload = buf.Bytes()
	case CompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		payload = enc.EncodeAll(packed, nil)
	default:
		return nil, fmt.Errorf("vlay: unsupported compression: %d", comp)
	}

	var out bytes.Buffer
	out.WriteString(vlayMagic)
	_ = binary.Write(&out, binary.LittleEndian, uint8(vlayVersion))
	_ = binary.Write(&out, binary.LittleEndian, uint8(comp))
	_ = binary.Write(&out, binary.LittleEndian, uint8(Width))
	_ = binary.Write(&out, binary.LittleEndian, uint8(Height))
	_ = binary.Write(&out, binary.LittleEndian, uint8(Depth))
	_ = binary.Write(&out, binary.LittleEndian, uint8(slotBits))
	_ = binary.Write(&out, binary.LittleEndian, digest)
	_ = binary.Write(&out, binary.LittleEndian, uint32(len(payload)))
	_, _ = out.Write(payload)
	return out.Bytes(), nil
}

// ParseHeader validates the fixed header of data and returns it together with
// the payload slice. The payload is still compressed and undigested.
func ParseHeader(data []byte) (Header, []byte, error) {
	var hdr Header
	if len(data) < headerSize || string(data[:4]) != vlayMagic {
		return hdr, nil, ErrNotVlay
	}
	r := bytes.NewReader(data[4:])
	_ = binary.Read(r, binary.LittleEndian, &hdr.Ver)
	_ = binary.Read(r, binary.LittleEndian, &hdr.Comp)
	_ = binary.Read(r, binary.LittleEndian, &hdr.W)
	_ = binary.Read(r, binary.LittleEndian, &hdr.H)
	_ = binary.Read(r, binary.LittleEndian, &hdr.D)
	_ = binary.Read(r, binary.LittleEndian, &hdr.Bits)
	_ = binary.Read(r, binary.LittleEndian, &hdr.Digest)
	_ = binary.Read(r, binary.LittleEndian, &hdr.PLen)
	if hdr.Ver != vlayVersion {
		return hdr, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, hdr.Ver)
	}
	if hdr.W != Width || hdr.H != Height || hdr.D != Depth {
		return hdr, nil, fmt.Errorf("%w: %dx%dx%d, want %dx%dx%d",
			ErrDimensionMismatch, hdr.W, hdr.H, hdr.D, Width, Height, Depth)
	}
	if hdr.Bits != slotBits {
		return hdr, nil, fmt.Errorf("%w: %d-bit slots", ErrUnsupportedVersion, hdr.Bits)
	}
	if uint32(len(data)-headerSize) != hdr.PLen {
		return hdr, nil, fmt.Errorf("vlay: payload is %d bytes, header says %d: %w",
			len(data)-headerSize, hdr.PLen, io.ErrUnexpectedEOF)
	}
	return hdr, data[headerSize:], nil
}

// UnmarshalLayout parses and validates a .vlay file, binding policy to the
// resulting layout. The pipeline checks magic, version, dimensions, slot
// width, payload digest and the bijection before any layout exists.
func UnmarshalLayout(data []byte, policy CostPolicy) (*Layout, error) {
	hdr, payload, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	var raw []byte
	switch hdr.Comp {
	case CompNone:
		raw = payload
	case CompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		raw, err = io.ReadAll(zr)
		if err != nil {
			return nil, err
		}
	case CompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		raw, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("vlay: unsupported compression: %d", hdr.Comp)
	}

	if len(raw) != packedSize {
		return nil, fmt.Errorf("vlay: packed payload is %d bytes, want %d: %w",
			len(raw), packedSize, ErrChecksum)
	}
	if got := xxhash.Sum64(raw); got != hdr.Digest {
		return nil, fmt.Errorf("%w: got %016x, want %016x", ErrChecksum, got, hdr.Digest)
	}
	vals, err := unpackSlots(raw, Volume)
	if err != nil {
		return nil, err
	}
	if !isPermutation(vals) {
		return nil, ErrNotBijective
	}

	l := newLayout(policy)
	copy(l.slots[:], vals)
	return l, nil
}

// SaveLayout writes the layout to path as a .vlay file.
func SaveLayout(l *Layout, path string, comp Compression) error {
	data, err := MarshalLayout(l, comp)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadLayout reads and validates a .vlay file from path.
func LoadLayout(path string, policy CostPolicy) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalLayout(data, policy)
}
