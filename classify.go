package intseries

import "fmt"

// Kernel selects the conversion routine for a classified window.
type Kernel uint8

const (
	// KernelNone marks a window the vector kernels cannot decode.
	KernelNone Kernel = iota
	Kernel1Digit
	Kernel2Digits
	Kernel3Digits
	Kernel4Digits
	Kernel8Digits
)

// Digits returns the run length handled by the kernel, or 0 for KernelNone.
func (k Kernel) Digits() int {
	switch k {
	case Kernel1Digit:
		return 1
	case Kernel2Digits:
		return 2
	case Kernel3Digits:
		return 3
	case Kernel4Digits:
		return 4
	case Kernel8Digits:
		return 8
	}
	return 0
}

func (k Kernel) String() string {
	if k == KernelNone {
		return "none"
	}
	if k > Kernel8Digits {
		return fmt.Sprintf("Kernel(%d)", uint8(k))
	}
	return fmt.Sprintf("%d-digit", k.Digits())
}

// kernelForRun maps a digit run length to its kernel.
var kernelForRun = [17]Kernel{1: Kernel1Digit, 2: Kernel2Digits, 3: Kernel3Digits, 4: Kernel4Digits, 8: Kernel8Digits}

// shufflePad is the shuffle index for unused output positions. Indices with
// the high bit set produce a zero byte, as PSHUFB does.
const shufflePad = 0x80

// BlockInfo is the routing decision for one 16-byte window.
type BlockInfo struct {
	// Kernel converts the shuffled window; KernelNone routes the window to
	// the scalar decoder.
	Kernel Kernel
	// Count is the number of digit runs in the window.
	Count uint8
	// Shuffle gathers run i into bytes [i*k, (i+1)*k) of the kernel input.
	Shuffle [16]byte
}

// Supported reports whether the window can be decoded by a vector kernel.
func (b BlockInfo) Supported() bool {
	return b.Kernel != KernelNone
}

// blocks holds the BlockInfo of every digit mask, indexed by the mask.
var blocks [1 << 16]BlockInfo

func init() {
	for mask := range len(blocks) {
		blocks[mask] = buildBlockInfo(uint16(mask))
	}
}

// Classify returns the routing decision for a window whose digit positions
// are the set bits of mask. Bit i corresponds to window byte i.
func Classify(mask uint16) BlockInfo {
	return blocks[mask]
}

// buildBlockInfo splits mask into maximal runs of set bits. The window is
// supported when all runs share one length from {1, 2, 3, 4, 8}; a mask
// without digits is trivially supported with a count of zero.
func buildBlockInfo(mask uint16) BlockInfo {
	var (
		info   BlockInfo
		starts [8]int
		runs   int
		runLen int
	)
	for i := range info.Shuffle {
		info.Shuffle[i] = shufflePad
	}

	for i := 0; i < 16; {
		if mask&(1<<i) == 0 {
			i++
			continue
		}
		start := i
		for i < 16 && mask&(1<<i) != 0 {
			i++
		}
		n := i - start
		if runs > 0 && n != runLen {
			return unsupportedBlock()
		}
		runLen = n
		starts[runs] = start
		runs++
	}

	if runs == 0 {
		info.Kernel = Kernel1Digit
		return info
	}
	kernel := kernelForRun[runLen]
	if kernel == KernelNone {
		return unsupportedBlock()
	}

	info.Kernel = kernel
	info.Count = uint8(runs)
	for r := range runs {
		for j := range runLen {
			info.Shuffle[r*runLen+j] = byte(starts[r] + j)
		}
	}
	return info
}

func unsupportedBlock() BlockInfo {
	info := BlockInfo{Kernel: KernelNone}
	for i := range info.Shuffle {
		info.Shuffle[i] = shufflePad
	}
	return info
}

// DigitMask returns a bitmask with bit i set iff window[i] is an ASCII digit.
func DigitMask(window *[16]byte) uint16 {
	var mask uint16
	for i, c := range window {
		if isDigit(c) {
			mask |= 1 << i
		}
	}
	return mask
}
