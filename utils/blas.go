package utils

// BLASBackend names the BLAS implementation in use, "gonum" unless the
// netlib build tag swaps in the cgo backend.
var BLASBackend = "gonum"
