//go:build !amd64 || noasm

package intseries

func initSIMDSelection() {}
