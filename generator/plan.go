package generator

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// minNameWidth is the zero padding of file indices.
const minNameWidth = 3

// Plan is the file layout derived from a Config.
type Plan struct {
	NumFiles        int   // ceil(TotalSize / FileSize)
	ElementsPerFile int   // floor(FileSize / ElementSize)
	ElementSize     int   // bytes per element
	NominalBytes    int64 // NumFiles * FileSize
	StartIndex      int
	nameWidth       int
}

// NumFiles returns ceil(total / fileSize) for positive sizes.
func NumFiles(total, fileSize int64) int64 {
	n := total / fileSize
	if total%fileSize != 0 {
		n++
	}
	return n
}

// ElementsPerFile returns floor(fileSize / elementSize); trailing bytes that
// cannot hold a whole element are unused.
func ElementsPerFile(fileSize int64, elementSize int) int {
	return int(fileSize / int64(elementSize))
}

func newPlan(total, fileSize int64, elemSize, start int) Plan {
	p := Plan{
		NumFiles:        int(NumFiles(total, fileSize)),
		ElementsPerFile: ElementsPerFile(fileSize, elemSize),
		ElementSize:     elemSize,
		StartIndex:      start,
	}
	p.NominalBytes = int64(p.NumFiles) * fileSize
	p.nameWidth = minNameWidth
	if w := len(strconv.Itoa(p.LastIndex())); w > p.nameWidth {
		p.nameWidth = w
	}
	return p
}

// LastIndex returns the index of the last file.
func (p Plan) LastIndex() int {
	return p.StartIndex + p.NumFiles - 1
}

// DataBytes returns the element payload of one file.
func (p Plan) DataBytes() int64 {
	return int64(p.ElementsPerFile) * int64(p.ElementSize)
}

// FileName returns the name of the file with the given index. Indices are
// zero padded to at least three digits, wider when the plan needs it, so
// names sort in index order.
func (p Plan) FileName(index int) string {
	w := p.nameWidth
	if w == 0 {
		w = minNameWidth
	}
	return fmt.Sprintf("file_%0*d.npy", w, index)
}

// Path returns the path of the k-th file (0 <= k < NumFiles) under dir.
func (p Plan) Path(dir string, k int) string {
	return filepath.Join(dir, p.FileName(p.StartIndex+k))
}

// Paths returns every planned path in order.
func (p Plan) Paths(dir string) []string {
	out := make([]string, p.NumFiles)
	for k := range out {
		out[k] = p.Path(dir, k)
	}
	return out
}
