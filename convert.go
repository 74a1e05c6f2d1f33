package intseries

import "fmt"

// Kernel implementations. Each converts every lane of a shuffled window into
// out; the exported wrappers copy the first n results. They are replaced by
// initSIMDSelection when the CPU supports the assembly kernels.
var (
	shuffleImpl  func(dst, src, pattern *[16]byte) = shuffleGeneric
	convert1Impl func(in *[16]byte, out *[16]uint32) = convert1SWAR
	convert2Impl func(in *[16]byte, out *[16]uint32) = convert2SWAR
	convert3Impl func(in *[16]byte, out *[16]uint32) = convert3SWAR
	convert4Impl func(in *[16]byte, out *[16]uint32) = convert4SWAR
	convert8Impl func(in *[16]byte, out *[16]uint32) = convert8SWAR

	simdAvailable bool
)

func init() {
	initSIMDSelection()
}

// IsSIMDavailable reports whether the assembly shuffle and conversion kernels are active.
func IsSIMDavailable() bool {
	return simdAvailable
}

// KernelImplementation returns the name of the active kernel family.
func KernelImplementation() string {
	if simdAvailable {
		return "ssse3"
	}
	return "swar"
}

// expand3 spreads four 3-digit groups over four 4-byte lanes with a leading zero,
// so the 3-digit kernel can reuse the 4-digit reduction.
var expand3 = [16]byte{
	shufflePad, 0, 1, 2,
	shufflePad, 3, 4, 5,
	shufflePad, 6, 7, 8,
	shufflePad, 9, 10, 11,
}

// Shuffle writes src[pattern[i]] to dst[i]; a pattern byte with the high bit
// set writes zero. dst may alias src.
func Shuffle(dst, src, pattern *[16]byte) {
	shuffleImpl(dst, src, pattern)
}

func shuffleGeneric(dst, src, pattern *[16]byte) {
	var tmp [16]byte
	for i, p := range pattern {
		if p&0x80 == 0 {
			tmp[i] = src[p&0x0f]
		}
	}
	*dst = tmp
}

// Convert runs the kernel k over a window shuffled with the matching
// BlockInfo pattern and writes n values to dst. It panics for KernelNone.
func Convert(k Kernel, in *[16]byte, n int, dst []uint32) {
	switch k {
	case Kernel1Digit:
		Convert1Digit(in, n, dst)
	case Kernel2Digits:
		Convert2Digits(in, n, dst)
	case Kernel3Digits:
		Convert3Digits(in, n, dst)
	case Kernel4Digits:
		Convert4Digits(in, n, dst)
	case Kernel8Digits:
		Convert8Digits(in, n, dst)
	default:
		panic(fmt.Sprintf("intseries: no conversion kernel for %v", k))
	}
}

// Convert1Digit converts n single-digit numbers held in in[0:n].
func Convert1Digit(in *[16]byte, n int, dst []uint32) {
	validateCount(n, 1, dst)
	var out [16]uint32
	convert1Impl(in, &out)
	copy(dst[:n], out[:n])
}

// Convert2Digits converts n 2-digit numbers held in in[0:2n].
func Convert2Digits(in *[16]byte, n int, dst []uint32) {
	validateCount(n, 2, dst)
	var out [16]uint32
	convert2Impl(in, &out)
	copy(dst[:n], out[:n])
}

// Convert3Digits converts n 3-digit numbers held in in[0:3n].
func Convert3Digits(in *[16]byte, n int, dst []uint32) {
	validateCount(n, 3, dst)
	var out [16]uint32
	convert3Impl(in, &out)
	if n == 5 {
		// The fifth group does not fit the four expanded lanes.
		out[4] = uint32(in[12]&0x0f)*100 + uint32(in[13]&0x0f)*10 + uint32(in[14]&0x0f)
	}
	copy(dst[:n], out[:n])
}

// Convert4Digits converts n 4-digit numbers held in in[0:4n].
func Convert4Digits(in *[16]byte, n int, dst []uint32) {
	validateCount(n, 4, dst)
	var out [16]uint32
	convert4Impl(in, &out)
	copy(dst[:n], out[:n])
}

// Convert8Digits converts n 8-digit numbers held in in[0:8n].
func Convert8Digits(in *[16]byte, n int, dst []uint32) {
	validateCount(n, 8, dst)
	var out [16]uint32
	convert8Impl(in, &out)
	copy(dst[:n], out[:n])
}

// validateCount panics if n groups of the given width do not fit a window or dst.
func validateCount(n, digits int, dst []uint32) {
	if n < 0 || n*digits > 16 {
		panic(fmt.Sprintf("intseries: %d groups of %d digits exceed a 16-byte window", n, digits))
	}
	if len(dst) < n {
		panic(fmt.Sprintf("intseries: destination holds %d values, need %d", len(dst), n))
	}
}
