// Package npy reads and writes one-dimensional float arrays in the NumPy
// .npy format.
//
// The file format consists of:
//   - Preamble: magic "\x93NUMPY", major/minor version, header length
//     (uint16 for version 1.0, uint32 for version 2.0)
//   - Header: an ASCII Python dict literal describing descr, fortran_order
//     and shape, space padded and newline terminated so the data starts on a
//     64-byte boundary
//   - Data: contiguous little-endian elements
package npy
