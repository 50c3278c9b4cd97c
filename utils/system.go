package utils

import (
	"fmt"
	"math"
	"runtime"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

// IsFinite reports whether every value in A is neither NaN nor Inf. Types
// other than float64, []float64, [2][2]float64 and Matrix panic, convert
// named types first.
func IsFinite(A any) bool {
	switch v := A.(type) {
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case []float64:
		for _, f := range v {
			if !IsFinite(f) {
				return false
			}
		}
	case [2][2]float64:
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				if !IsFinite(v[i][j]) {
					return false
				}
			}
		}
	case Matrix:
		return IsFinite(v.RawMatrix().Data)
	default:
		panic(fmt.Errorf("IsFinite: unsupported type %T", A))
	}
	return true
}
