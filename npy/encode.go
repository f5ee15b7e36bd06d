package npy

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// chunkBytes bounds the scratch buffer used while streaming element data.
const chunkBytes = 1 << 20

// DTypeOf returns the element type matching T.
func DTypeOf[T constraints.Float]() DType {
	var zero T
	if unsafe.Sizeof(zero) == 4 {
		return Float32
	}
	return Float64
}

// HeaderFor returns the header of a one-dimensional array of n elements.
func HeaderFor(dt DType, n int) *Header {
	return &Header{Descr: dt.Descr(), Shape: []int{n}}
}

// Encode writes data to w as a one-dimensional .npy array and returns the
// number of bytes written.
func Encode[T constraints.Float](w io.Writer, data []T) (int64, error) {
	dt := DTypeOf[T]()
	hdr, err := EncodeHeader(HeaderFor(dt, len(data)))
	if err != nil {
		return 0, err
	}
	n, err := w.Write(hdr)
	written := int64(n)
	if err != nil {
		return written, err
	}
	m, err := encodeData(w, data, dt)
	return written + m, err
}

func encodeData[T constraints.Float](w io.Writer, data []T, dt DType) (int64, error) {
	size := dt.Size()
	per := chunkBytes / size
	if per > len(data) {
		per = len(data)
	}
	buf := make([]byte, 0, per*size)
	var written int64
	for start := 0; start < len(data); start += per {
		end := start + per
		if end > len(data) {
			end = len(data)
		}
		buf = buf[:0]
		if size == 4 {
			for _, v := range data[start:end] {
				buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v)))
			}
		} else {
			for _, v := range data[start:end] {
				buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(v)))
			}
		}
		n, err := w.Write(buf)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Save writes data to path, replacing any existing file. A failed write
// leaves the partial file in place.
func Save[T constraints.Float](path string, data []T) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := Encode(f, data)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		return n, err
	}
	return n, f.Close()
}
