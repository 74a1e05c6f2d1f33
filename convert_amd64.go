//go:build amd64 && !noasm

package intseries

import "golang.org/x/sys/cpu"

//go:generate go run -tags avogen ./internal/avo -out convert_amd64.s -pkg intseries

func initSIMDSelection() {
	if cpu.X86.HasSSSE3 {
		shuffleImpl = shuffleSSSE3
		convert1Impl = convert1SSE2
		convert2Impl = convert2SSSE3
		convert3Impl = convert3SSSE3
		convert4Impl = convert4SSSE3
		convert8Impl = convert8SSSE3
		simdAvailable = true
	}
}

// Assembly entry points provided by convert_amd64.s.
//
//go:noescape
func shuffleSSSE3(dst, src, pattern *[16]byte)

//go:noescape
func convert1SSE2(in *[16]byte, out *[16]uint32)

//go:noescape
func convert2SSSE3(in *[16]byte, out *[16]uint32)

//go:noescape
func convert3SSSE3(in *[16]byte, out *[16]uint32)

//go:noescape
func convert4SSSE3(in *[16]byte, out *[16]uint32)

//go:noescape
func convert8SSSE3(in *[16]byte, out *[16]uint32)
