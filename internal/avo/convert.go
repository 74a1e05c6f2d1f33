//go:build avogen
// +build avogen

package main

import (
	. "github.com/mmcloughlin/avo/build"
	op "github.com/mmcloughlin/avo/operand"
	"github.com/mmcloughlin/avo/reg"
)

// This file generates the SSSE3 kernels that turn a shuffled 16-byte window of
// ASCII digits into uint32 values.
//
// Every kernel follows the widening multiply-accumulate cascade:
//
//	PSUBB     '0'           bytes   -> digit values
//	PMADDUBSW (10, 1)       bytes   -> 16-bit lanes holding 2 digits
//	PMADDWL   (100, 1)      16-bit  -> 32-bit lanes holding 4 digits
//	PACKSSLW + PMADDWL (10000, 1)   -> 32-bit lanes holding 8 digits
//
// and stops after ceil(log2(k)) passes for k-digit numbers. The kernels convert
// all lanes; the Go wrappers copy out only the lanes holding complete numbers.
// Lanes past those numbers hold padding and may saturate, which never leaks
// into a neighbouring lane.

var (
	asciiZero op.Mem
	mulPairs  op.Mem
	mulQuads  op.Mem
	mulOctets op.Mem
	expand3   op.Mem
)

func genConstants() {
	asciiZero = GLOBL("asciiZero", RODATA|NOPTR)
	DATA(0, op.U64(0x3030303030303030))
	DATA(8, op.U64(0x3030303030303030))

	// PMADDUBSW weights: byte lanes (10, 1).
	mulPairs = GLOBL("mulPairs", RODATA|NOPTR)
	DATA(0, op.U64(0x010a010a010a010a))
	DATA(8, op.U64(0x010a010a010a010a))

	// PMADDWL weights: word lanes (100, 1).
	mulQuads = GLOBL("mulQuads", RODATA|NOPTR)
	DATA(0, op.U64(0x0001006400010064))
	DATA(8, op.U64(0x0001006400010064))

	// PMADDWL weights: word lanes (10000, 1).
	mulOctets = GLOBL("mulOctets", RODATA|NOPTR)
	DATA(0, op.U64(0x0001271000012710))
	DATA(8, op.U64(0x0001271000012710))

	// PSHUFB pattern spreading 3-digit groups over 4-byte lanes (0x80 = zero).
	expand3 = GLOBL("expand3", RODATA|NOPTR)
	DATA(0, op.U64(0x0504038002010080))
	DATA(8, op.U64(0x0b0a098008070680))
}

func genShuffleKernel() {
	TEXT("shuffleSSSE3", NOSPLIT, "func(dst, src, pattern *[16]byte)")
	Doc("shuffleSSSE3 gathers src bytes into dst with a single PSHUFB.")

	dst := Load(Param("dst"), GP64())
	src := Load(Param("src"), GP64())
	pattern := Load(Param("pattern"), GP64())

	data := XMM()
	mask := XMM()
	MOVOU(op.Mem{Base: src}, data)
	MOVOU(op.Mem{Base: pattern}, mask)
	PSHUFB(mask, data)
	MOVOU(data, op.Mem{Base: dst})
	RET()
}

// loadDigits loads the window at in and subtracts '0' from every byte.
func loadDigits(in reg.Register) reg.VecVirtual {
	v := XMM()
	zero := XMM()
	MOVOU(op.Mem{Base: in}, v)
	MOVOU(asciiZero, zero)
	PSUBB(zero, v)
	return v
}

// foldPairs folds byte lanes into 16-bit lanes a*10+b.
func foldPairs(v reg.VecVirtual) {
	w := XMM()
	MOVOU(mulPairs, w)
	PMADDUBSW(w, v)
}

// foldQuads folds 16-bit lanes into 32-bit lanes a*100+b.
func foldQuads(v reg.VecVirtual) {
	w := XMM()
	MOVOU(mulQuads, w)
	PMADDWL(w, v)
}

// foldOctets packs 32-bit lanes back to words and folds them into a*10000+b.
func foldOctets(v reg.VecVirtual) {
	w := XMM()
	PACKSSLW(v, v)
	MOVOU(mulOctets, w)
	PMADDWL(w, v)
}

// storeWords widens eight 16-bit lanes to 32 bits and stores them at out+disp.
func storeWords(v reg.VecVirtual, out reg.Register, disp int) {
	zero := XMM()
	high := XMM()
	PXOR(zero, zero)
	MOVO(v, high)
	PUNPCKLWL(zero, v)
	PUNPCKHWL(zero, high)
	MOVOU(v, op.Mem{Base: out, Disp: disp})
	MOVOU(high, op.Mem{Base: out, Disp: disp + 16})
}

func genConvert1Kernel() {
	TEXT("convert1SSE2", NOSPLIT, "func(in *[16]byte, out *[16]uint32)")
	Doc("convert1SSE2 widens 16 single digits to uint32.")

	in := Load(Param("in"), GP64())
	out := Load(Param("out"), GP64())

	v := loadDigits(in)
	zero := XMM()
	high := XMM()
	PXOR(zero, zero)
	MOVO(v, high)
	PUNPCKLBW(zero, v)
	PUNPCKHBW(zero, high)

	storeWords(v, out, 0)
	storeWords(high, out, 32)
	RET()
}

func genConvert2Kernel() {
	TEXT("convert2SSSE3", NOSPLIT, "func(in *[16]byte, out *[16]uint32)")
	Doc("convert2SSSE3 converts eight 2-digit groups.")

	in := Load(Param("in"), GP64())
	out := Load(Param("out"), GP64())

	v := loadDigits(in)
	foldPairs(v)
	storeWords(v, out, 0)
	RET()
}

func genConvert3Kernel() {
	TEXT("convert3SSSE3", NOSPLIT, "func(in *[16]byte, out *[16]uint32)")
	Doc("convert3SSSE3 converts four 3-digit groups stored back to back.")

	in := Load(Param("in"), GP64())
	out := Load(Param("out"), GP64())

	v := loadDigits(in)
	mask := XMM()
	MOVOU(expand3, mask)
	PSHUFB(mask, v)
	foldPairs(v)
	foldQuads(v)
	MOVOU(v, op.Mem{Base: out})
	RET()
}

func genConvert4Kernel() {
	TEXT("convert4SSSE3", NOSPLIT, "func(in *[16]byte, out *[16]uint32)")
	Doc("convert4SSSE3 converts four 4-digit groups.")

	in := Load(Param("in"), GP64())
	out := Load(Param("out"), GP64())

	v := loadDigits(in)
	foldPairs(v)
	foldQuads(v)
	MOVOU(v, op.Mem{Base: out})
	RET()
}

func genConvert8Kernel() {
	TEXT("convert8SSSE3", NOSPLIT, "func(in *[16]byte, out *[16]uint32)")
	Doc("convert8SSSE3 converts two 8-digit groups.")
	Doc("Lanes 2 and 3 of out repeat lanes 0 and 1.")

	in := Load(Param("in"), GP64())
	out := Load(Param("out"), GP64())

	v := loadDigits(in)
	foldPairs(v)
	foldQuads(v)
	foldOctets(v)
	MOVOU(v, op.Mem{Base: out})
	RET()
}
