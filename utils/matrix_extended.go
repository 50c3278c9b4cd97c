package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M        *mat.Dense
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		m,
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface, RawMatrix lets
// gonum copy the backing data directly.
var _ mat.Matrix = Matrix{}

func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) IsReadOnly() bool          { return m.readOnly }

// Chainable methods (extended)
func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		data   = m.M.RawMatrix().Data
		nr, nc = m.Dims()
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	var (
		nr, nc = m.Dims()
	)
	i, j = lim(i, nr), lim(j, nc)
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

// SetBlock2 writes a 2x2 block with its upper left corner at (2*I, 2*J)
func (m Matrix) SetBlock2(I, J int, B [2][2]float64) Matrix { // Changes receiver
	var (
		_, nc = m.Dims()
		data  = m.M.RawMatrix().Data
		row   = 2 * I
		col   = 2 * J
	)
	m.checkWritable()
	for a := 0; a < 2; a++ {
		ind := (row+a)*nc + col
		data[ind] = B[a][0]
		data[ind+1] = B[a][1]
	}
	return m
}

// Block2 returns the 2x2 block with its upper left corner at (2*I, 2*J)
func (m Matrix) Block2(I, J int) (B [2][2]float64) {
	var (
		_, nc = m.Dims()
		data  = m.M.RawMatrix().Data
		row   = 2 * I
		col   = 2 * J
	)
	for a := 0; a < 2; a++ {
		ind := (row+a)*nc + col
		B[a][0] = data[ind]
		B[a][1] = data[ind+1]
	}
	return
}

func (m Matrix) Col(j int) []float64 {
	var (
		data   = m.M.RawMatrix().Data
		nr, nc = m.M.Dims()
		vData  = make([]float64, nr)
	)
	j = lim(j, nc)
	for i := range vData {
		vData[i] = data[i*nc+j]
	}
	return vData
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func lim(i, imax int) int {
	if i < 0 {
		return imax + i // Support indexing from end, -1 is imax
	}
	return i
}
