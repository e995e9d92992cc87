package qtwirl

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"

	"github.com/theapemachine/errnie"
)

// zetaTolerance is the closeness used to call a commutator or anticommutator zero.
const zetaTolerance = 1e-12

/*
PauliAlgebra holds the full n-qubit Pauli group: every label of
{I,X,Y,Z}^n in canonical order (qubit 0 varies slowest) and its
2^n x 2^n operator. It is immutable after construction and safe to share
between goroutines; callers must not modify the matrices it hands out.
*/
type PauliAlgebra struct {
	n         int
	dim       int
	labels    []PauliLabel
	index     map[PauliLabel]int
	operators []*mat.CDense
}

// NewPauliAlgebra builds the 4^n operators for n >= 1 qubits.
func NewPauliAlgebra(n int) (*PauliAlgebra, error) {
	if n < 1 {
		return nil, argumentError("qubit count must be at least 1, got %d", n)
	}

	errnie.Info("NewPauliAlgebra - qubits %d, operators %d", n, 1<<(2*n))

	count := 1 << (2 * n)
	pa := &PauliAlgebra{
		n:         n,
		dim:       1 << n,
		labels:    make([]PauliLabel, count),
		index:     make(map[PauliLabel]int, count),
		operators: make([]*mat.CDense, count),
	}

	for i := 0; i < count; i++ {
		label := labelAt(i, n)
		pa.labels[i] = label
		pa.index[label] = i
		pa.operators[i] = pauliOperator(label)
	}

	return pa, nil
}

// labelAt decodes i as n base-4 digits over IXYZ, most significant first.
func labelAt(i, n int) PauliLabel {
	buf := make([]byte, n)
	for q := n - 1; q >= 0; q-- {
		buf[q] = pauliAlphabet[i&3]
		i >>= 2
	}
	return PauliLabel(buf)
}

// pauliOperator folds the Kronecker product left to right. A single qubit
// needs no product at all.
func pauliOperator(label PauliLabel) *mat.CDense {
	op := singlePauli(label[0])
	for q := 1; q < len(label); q++ {
		op = kron(op, singlePauli(label[q]))
	}
	return op
}

func (pa *PauliAlgebra) Qubits() int {
	return pa.n
}

// Dim is the Hilbert space dimension 2^n.
func (pa *PauliAlgebra) Dim() int {
	return pa.dim
}

// Labels returns a copy of the ordered label list.
func (pa *PauliAlgebra) Labels() []PauliLabel {
	out := make([]PauliLabel, len(pa.labels))
	copy(out, pa.labels)
	return out
}

func (pa *PauliAlgebra) Identity() PauliLabel {
	return pa.labels[0]
}

// Operator looks up the matrix for label. The result is shared; treat it
// as read-only.
func (pa *PauliAlgebra) Operator(label PauliLabel) (*mat.CDense, error) {
	i, ok := pa.index[label]
	if !ok {
		if _, err := ParsePauliLabel(string(label), pa.n); err != nil {
			return nil, err
		}
		return nil, argumentError("unknown Pauli label %q", label)
	}
	return pa.operators[i], nil
}

func (pa *PauliAlgebra) operator(label PauliLabel) *mat.CDense {
	return pa.operators[pa.index[label]]
}

/*
Zeta compares two Pauli operators through their matrices: 1 when they
commute, -1 when they anticommute, 0 when neither holds. For Pauli
operators the last case cannot occur, but the check is on the matrices,
not on the labels.
*/
func (pa *PauliAlgebra) Zeta(a, b PauliLabel) (int, error) {
	ga, err := pa.Operator(a)
	if err != nil {
		return 0, err
	}
	gb, err := pa.Operator(b)
	if err != nil {
		return 0, err
	}

	ab := product(blas.NoTrans, ga, blas.NoTrans, gb)
	ba := product(blas.NoTrans, gb, blas.NoTrans, ga)

	zero := zeros(pa.dim, pa.dim)

	commutator := zeros(pa.dim, pa.dim)
	commutator.Copy(ab)
	addScaled(commutator, -1, ba)
	if maxAbsDiff(commutator, zero) <= zetaTolerance {
		return 1, nil
	}

	anticommutator := zeros(pa.dim, pa.dim)
	anticommutator.Copy(ab)
	addScaled(anticommutator, 1, ba)
	if maxAbsDiff(anticommutator, zero) <= zetaTolerance {
		return -1, nil
	}

	return 0, nil
}

// Commutes answers the same question as Zeta from the labels alone: two
// Paulis anticommute exactly when an odd number of positions hold two
// different non-identity letters.
func Commutes(a, b PauliLabel) (bool, error) {
	if len(a) != len(b) {
		return false, argumentError("Pauli labels %q and %q have different lengths", a, b)
	}

	odd := false
	for i := 0; i < len(a); i++ {
		if a[i] != 'I' && b[i] != 'I' && a[i] != b[i] {
			odd = !odd
		}
	}
	return !odd, nil
}

// CommutationTable returns zeta for every ordered pair of labels.
func (pa *PauliAlgebra) CommutationTable(labels []PauliLabel) ([][]int, error) {
	table := make([][]int, len(labels))
	for i, a := range labels {
		table[i] = make([]int, len(labels))
		for j, b := range labels {
			z, err := pa.Zeta(a, b)
			if err != nil {
				return nil, err
			}
			table[i][j] = z
		}
	}
	return table, nil
}
