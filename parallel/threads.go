package parallel

import "runtime"

import "github.com/klauspost/cpuid/v2"

// Threads reports the number of hardware threads usable for parallel work.
// Can't return 0.
func Threads() int {
	var n = cpuid.CPU.LogicalCores
	if n <= 0 {
		n = cpuid.CPU.PhysicalCores
	}
	if procs := runtime.GOMAXPROCS(0); n <= 0 || procs < n {
		n = procs
	}
	if n <= 0 {
		return 1
	}
	return n
}
