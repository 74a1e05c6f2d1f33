package intseries

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// fillWindow writes digits at the positions set in mask and '_' elsewhere.
// digit supplies the digit for the n-th digit position.
func fillWindow(mask uint16, digit func(n int) byte) [16]byte {
	var w [16]byte
	n := 0
	for i := range w {
		if mask&(1<<i) == 0 {
			w[i] = '_'
			continue
		}
		w[i] = digit(n)
		n++
	}
	return w
}

// verifyMask decodes w through the classifier, shuffle and kernel and
// compares the result with the scalar decoder. It reports whether the
// mask has a vector kernel.
func verifyMask(t *testing.T, mask uint16, w *[16]byte, seps *Separators) bool {
	info := Classify(mask)
	if !info.Supported() {
		return false
	}
	want, err := AppendUnsignedScalar(nil, w[:], seps)
	require.NoError(t, err)

	var shuffled [16]byte
	got := make([]uint32, info.Count)
	Shuffle(&shuffled, w, &info.Shuffle)
	Convert(info.Kernel, &shuffled, int(info.Count), got)

	if len(want) != len(got) {
		t.Fatalf("mask %016b %q: %d values, scalar has %d", mask, w[:], len(got), len(want))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("mask %016b %q: value %d is %d, scalar has %d", mask, w[:], i, got[i], want[i])
		}
	}
	return true
}

// TestVectorMatchesScalarAllMasks runs every digit mask through the vector
// path with a cycling digit pattern.
func TestVectorMatchesScalarAllMasks(t *testing.T) {
	seps := MustSeparators("_")
	forEachKernelSet(t, func(t *testing.T) {
		supported := 0
		for m := range 1 << 16 {
			mask := uint16(m)
			w := fillWindow(mask, func(n int) byte { return byte('0' + (n+m)%10) })
			if verifyMask(t, mask, &w, seps) {
				supported++
			}
		}
		require.Equal(t, countSupported(), supported)
	})
}

// TestVectorMatchesScalarRandomDigits repeats the check with random digits.
func TestVectorMatchesScalarRandomDigits(t *testing.T) {
	seps := MustSeparators("_")
	rng := rand.New(rand.NewSource(42))
	forEachKernelSet(t, func(t *testing.T) {
		for range 4 {
			for m := range 1 << 16 {
				mask := uint16(m)
				w := fillWindow(mask, func(int) byte { return byte('0' + rng.Intn(10)) })
				verifyMask(t, mask, &w, seps)
			}
		}
	})
}

// TestDriverMatchesScalarAllMasks feeds every mask to AppendUnsigned on its
// own and followed by more input, which exercises held back runs.
func TestDriverMatchesScalarAllMasks(t *testing.T) {
	seps := MustSeparators("_")
	suffixes := []string{"", "_", "9", "12_3", "4567890123456789_1"}
	forEachKernelSet(t, func(t *testing.T) {
		for m := range 1 << 16 {
			w := fillWindow(uint16(m), func(n int) byte { return byte('0' + (n*3+m)%10) })
			for _, suffix := range suffixes {
				data := append(w[:], suffix...)
				want, err := AppendUnsignedScalar(nil, data, seps)
				require.NoError(t, err)
				got, err := AppendUnsigned(nil, data, seps)
				require.NoError(t, err)
				if !equalValues(want, got) {
					t.Fatalf("input %q: got %v, want %v", data, got, want)
				}
			}
		}
	})
}

func countSupported() int {
	n := 0
	for m := range 1 << 16 {
		if Classify(uint16(m)).Supported() {
			n++
		}
	}
	return n
}

func equalValues(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
