package npy

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Magic prefixes every .npy file.
	Magic = "\x93NUMPY"

	// HeaderAlign is the alignment of the data section.
	HeaderAlign = 64

	preambleV1 = len(Magic) + 2 + 2
	preambleV2 = len(Magic) + 2 + 4
)

var (
	ErrBadMagic           = errors.New("npy: invalid magic")
	ErrUnsupportedVersion = errors.New("npy: unsupported format version")
	ErrBadHeader          = errors.New("npy: malformed header")
	ErrDTypeMismatch      = errors.New("npy: dtype mismatch")
)

// Header holds the array metadata stored ahead of the data.
type Header struct {
	Descr        string
	FortranOrder bool
	Shape        []int
}

// Len returns the number of elements described by the shape.
func (h *Header) Len() int {
	n := 1
	for _, d := range h.Shape {
		n *= d
	}
	return n
}

// DType returns the element type named by Descr.
func (h *Header) DType() (DType, error) {
	return dtypeFromDescr(h.Descr)
}

func (h *Header) dict() string {
	order := "False"
	if h.FortranOrder {
		order = "True"
	}
	var shape string
	switch len(h.Shape) {
	case 0:
		shape = "()"
	case 1:
		shape = "(" + strconv.Itoa(h.Shape[0]) + ",)"
	default:
		dims := make([]string, len(h.Shape))
		for i, d := range h.Shape {
			dims[i] = strconv.Itoa(d)
		}
		shape = "(" + strings.Join(dims, ", ") + ")"
	}
	return fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", h.Descr, order, shape)
}

// EncodeHeader returns the preamble and padded header dict. Version 1.0 is
// used unless the header does not fit a uint16 length.
func EncodeHeader(h *Header) ([]byte, error) {
	if h == nil {
		return nil, errors.New("npy: header is nil")
	}
	if h.Descr == "" {
		return nil, fmt.Errorf("%w: empty descr", ErrBadHeader)
	}
	for _, d := range h.Shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", ErrBadHeader, d)
		}
	}
	dict := h.dict()

	major := byte(1)
	pre := preambleV1
	hlen := padded(pre, len(dict))
	if hlen > 0xFFFF {
		major = 2
		pre = preambleV2
		hlen = padded(pre, len(dict))
	}

	var w bytes.Buffer
	w.Grow(pre + hlen)
	w.WriteString(Magic)
	w.WriteByte(major)
	w.WriteByte(0)
	if major == 1 {
		binary.Write(&w, binary.LittleEndian, uint16(hlen))
	} else {
		binary.Write(&w, binary.LittleEndian, uint32(hlen))
	}
	w.WriteString(dict)
	w.WriteString(strings.Repeat(" ", hlen-len(dict)-1))
	w.WriteByte('\n')
	return w.Bytes(), nil
}

// padded returns the header length (dict, spaces and newline) that puts the
// data on a HeaderAlign boundary.
func padded(preamble, dictLen int) int {
	total := preamble + dictLen + 1
	if rem := total % HeaderAlign; rem != 0 {
		total += HeaderAlign - rem
	}
	return total - preamble
}

var (
	descrRe   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	fortranRe = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	shapeRe   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// DecodeHeader parses the preamble and header dict at the start of src and
// returns the header with the offset of the first data byte.
func DecodeHeader(src []byte) (*Header, int, error) {
	if len(src) < preambleV1 {
		return nil, 0, fmt.Errorf("%w: file too short", ErrBadHeader)
	}
	if string(src[:len(Magic)]) != Magic {
		return nil, 0, ErrBadMagic
	}
	major := src[len(Magic)]
	var hlen, pre int
	switch major {
	case 1:
		pre = preambleV1
		hlen = int(binary.LittleEndian.Uint16(src[len(Magic)+2:]))
	case 2, 3:
		pre = preambleV2
		if len(src) < pre {
			return nil, 0, fmt.Errorf("%w: file too short", ErrBadHeader)
		}
		hlen = int(binary.LittleEndian.Uint32(src[len(Magic)+2:]))
	default:
		return nil, 0, fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, major, src[len(Magic)+1])
	}
	if len(src) < pre+hlen {
		return nil, 0, fmt.Errorf("%w: header truncated", ErrBadHeader)
	}
	dict := strings.TrimSpace(string(src[pre : pre+hlen]))
	if !strings.HasPrefix(dict, "{") || !strings.HasSuffix(dict, "}") {
		return nil, 0, fmt.Errorf("%w: not a dict", ErrBadHeader)
	}

	h := &Header{}
	m := descrRe.FindStringSubmatch(dict)
	if m == nil {
		return nil, 0, fmt.Errorf("%w: missing descr", ErrBadHeader)
	}
	h.Descr = m[1]
	m = fortranRe.FindStringSubmatch(dict)
	if m == nil {
		return nil, 0, fmt.Errorf("%w: missing fortran_order", ErrBadHeader)
	}
	h.FortranOrder = m[1] == "True"
	m = shapeRe.FindStringSubmatch(dict)
	if m == nil {
		return nil, 0, fmt.Errorf("%w: missing shape", ErrBadHeader)
	}
	for _, f := range strings.Split(m[1], ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		d, err := strconv.Atoi(strings.TrimSuffix(f, "L"))
		if err != nil || d < 0 {
			return nil, 0, fmt.Errorf("%w: bad dimension %q", ErrBadHeader, f)
		}
		h.Shape = append(h.Shape, d)
	}
	return h, pre + hlen, nil
}
