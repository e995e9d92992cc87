package qtwirl

import (
	"gonum.org/v1/gonum/mat"

	"github.com/theapemachine/errnie"
)

/*
BasisStates holds the 2^n computational basis vectors for n qubits, keyed by
bitstring, together with their density matrices |s><s|. Like PauliAlgebra it
is built once and only read afterwards.
*/
type BasisStates struct {
	n       int
	labels  []BasisLabel
	vectors map[BasisLabel][]complex128
	density map[BasisLabel]*mat.CDense
}

func NewBasisStates(n int) (*BasisStates, error) {
	if n < 1 {
		return nil, argumentError("qubit count must be at least 1, got %d", n)
	}

	errnie.Info("NewBasisStates - qubits %d, states %d", n, 1<<n)

	count := 1 << n
	bs := &BasisStates{
		n:       n,
		labels:  make([]BasisLabel, count),
		vectors: make(map[BasisLabel][]complex128, count),
		density: make(map[BasisLabel]*mat.CDense, count),
	}

	for i := 0; i < count; i++ {
		label := bitsAt(i, n)
		vector := basisVector(label)

		bs.labels[i] = label
		bs.vectors[label] = vector
		bs.density[label] = outer(vector, vector)
	}

	return bs, nil
}

// bitsAt renders i as an n-bit string, most significant bit first.
func bitsAt(i, n int) BasisLabel {
	buf := make([]byte, n)
	for q := n - 1; q >= 0; q-- {
		buf[q] = basisAlphabet[i&1]
		i >>= 1
	}
	return BasisLabel(buf)
}

func basisVector(label BasisLabel) []complex128 {
	vector := singleBasis(label[0])
	for q := 1; q < len(label); q++ {
		vector = kronVec(vector, singleBasis(label[q]))
	}
	return vector
}

func (bs *BasisStates) Qubits() int {
	return bs.n
}

// Labels returns the bitstrings in ascending numeric order.
func (bs *BasisStates) Labels() []BasisLabel {
	out := make([]BasisLabel, len(bs.labels))
	copy(out, bs.labels)
	return out
}

// Vector returns a copy of the state vector for label.
func (bs *BasisStates) Vector(label BasisLabel) ([]complex128, error) {
	v, ok := bs.vectors[label]
	if !ok {
		return nil, bs.unknown(label)
	}
	out := make([]complex128, len(v))
	copy(out, v)
	return out, nil
}

// Density returns |s><s| for label. The matrix is shared; treat it as
// read-only.
func (bs *BasisStates) Density(label BasisLabel) (*mat.CDense, error) {
	d, ok := bs.density[label]
	if !ok {
		return nil, bs.unknown(label)
	}
	return d, nil
}

func (bs *BasisStates) unknown(label BasisLabel) error {
	if _, err := ParseBasisLabel(string(label), bs.n); err != nil {
		return err
	}
	return argumentError("unknown basis state %q", label)
}
