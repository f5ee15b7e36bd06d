//go:build amd64 && cgo

package simd

import "golang.org/x/sys/cpu"

func init() {
	if cpu.X86.HasAVX2 {
		momentsImpl = momentsAVX2
		momentsImplDesc = "AVX2"
	} else {
		momentsImpl = momentsGo
		momentsImplDesc = "Go"
	}
}
