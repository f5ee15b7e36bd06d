package npy

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

var hostLittleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// File is a read-only, mmap-backed .npy file.
type File struct {
	f      *os.File
	data   mmap.MMap
	hdr    *Header
	dtype  DType
	offset int
}

// Open maps path and parses its header. Call Close when done; slices returned
// by Float32s and Float64s are invalid afterwards.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.Size() < int64(preambleV1) {
		f.Close()
		return nil, fmt.Errorf("%s: %w: file too short", path, ErrBadHeader)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	nf := &File{f: f, data: m}
	if err := nf.parse(); err != nil {
		nf.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nf, nil
}

func (f *File) parse() error {
	h, off, err := DecodeHeader(f.data)
	if err != nil {
		return err
	}
	dt, err := h.DType()
	if err != nil {
		return err
	}
	if h.FortranOrder && len(h.Shape) > 1 {
		return fmt.Errorf("%w: fortran_order arrays are not supported", ErrBadHeader)
	}
	need := int64(off) + int64(h.Len())*int64(dt.Size())
	if int64(len(f.data)) < need {
		return fmt.Errorf("%w: data truncated (%d < %d bytes)", ErrBadHeader, len(f.data), need)
	}
	f.hdr, f.dtype, f.offset = h, dt, off
	return nil
}

// Header returns the parsed header.
func (f *File) Header() *Header { return f.hdr }

// DType returns the element type.
func (f *File) DType() DType { return f.dtype }

// Len returns the element count.
func (f *File) Len() int { return f.hdr.Len() }

// DataOffset returns the offset of the first data byte.
func (f *File) DataOffset() int { return f.offset }

// Bytes returns the full mapped file.
func (f *File) Bytes() []byte { return f.data }

// Float32s returns the elements of a float32 array. On little-endian hosts
// the slice aliases the mapping and must not be modified.
func (f *File) Float32s() ([]float32, error) {
	if f.dtype != Float32 {
		return nil, fmt.Errorf("%w: have %s, want float32", ErrDTypeMismatch, f.dtype)
	}
	n := f.Len()
	if n == 0 {
		return []float32{}, nil
	}
	raw := f.data[f.offset : f.offset+n*4]
	if hostLittleEndian {
		return unsafe.Slice((*float32)(unsafe.Pointer(&raw[0])), n), nil
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// Float64s returns the elements of a float64 array. On little-endian hosts
// the slice aliases the mapping and must not be modified.
func (f *File) Float64s() ([]float64, error) {
	if f.dtype != Float64 {
		return nil, fmt.Errorf("%w: have %s, want float64", ErrDTypeMismatch, f.dtype)
	}
	n := f.Len()
	if n == 0 {
		return []float64{}, nil
	}
	raw := f.data[f.offset : f.offset+n*8]
	if hostLittleEndian {
		return unsafe.Slice((*float64)(unsafe.Pointer(&raw[0])), n), nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return out, nil
}

// Close unmaps the file and closes it.
func (f *File) Close() error {
	if f.data != nil {
		if err := f.data.Unmap(); err != nil {
			return err
		}
		f.data = nil
	}
	if f.f != nil {
		err := f.f.Close()
		f.f = nil
		return err
	}
	return nil
}
