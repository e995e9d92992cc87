package qtwirl

import (
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"
)

// traceTolerance is relative to the expected trace 2^n.
const traceTolerance = 1e-8

/*
ChannelValidator checks that a Kraus set describes a valid quantum channel.
Every failed condition is reported, never only the first.
*/
type ChannelValidator struct {
	completenessTolerance float64
	hermitianTolerance    float64
	eigenTolerance        float64
	checkChannelMatrix    bool
}

func NewChannelValidator(cfg *Config) *ChannelValidator {
	return &ChannelValidator{
		completenessTolerance: cfg.CompletenessTolerance,
		hermitianTolerance:    cfg.HermitianTolerance,
		eigenTolerance:        cfg.EigenTolerance,
		checkChannelMatrix:    cfg.ValidateChannelMatrix,
	}
}

/*
Validate checks shapes first (ErrDimensionMismatch): the set must be
non-empty and every operator square and 2^n x 2^n. With sound shapes it
checks completeness, sum K†K = I within the absolute tolerance, and when
configured the induced channel matrix as well; those failures are reported
together as ErrChannelCompleteness.
*/
func (v *ChannelValidator) Validate(kraus KrausSet, n int) error {
	if n < 1 {
		return argumentError("qubit count must be at least 1, got %d", n)
	}

	dim := 1 << n
	shape := newViolations(ErrDimensionMismatch)

	if len(kraus) == 0 {
		shape.add("Kraus operator list is empty")
	}

	for i, k := range kraus {
		if k == nil || k.IsEmpty() {
			shape.add("operator %d is empty", i)
			continue
		}
		r, c := k.Dims()
		if r != c {
			shape.add("operator %d is %dx%d, not square", i, r, c)
		}
		if r != dim || c != dim {
			shape.add("operator %d is %dx%d, want %dx%d for %d qubits", i, r, c, dim, dim, n)
		}
	}

	if err := shape.asError(); err != nil {
		return err
	}

	issues := newViolations(ErrChannelCompleteness)

	sum := zeros(dim, dim)
	for _, k := range kraus {
		addScaled(sum, 1, product(blas.ConjTrans, k, blas.NoTrans, k))
	}
	if dev := maxAbsDiff(sum, identity(dim)); dev > v.completenessTolerance {
		issues.add("Kraus operators do not satisfy the completeness relation: max |sum K†K - I| = %.3g (tolerance %.3g)",
			dev, v.completenessTolerance)
	}

	if v.checkChannelMatrix {
		v.checkMatrix(ChannelMatrix(kraus), n, issues)
	}

	return issues.asError()
}

// ChannelMatrix is the channel applied to the identity, sum K·K†. For a
// complete set it is Hermitian, positive semidefinite, with trace 2^n.
func ChannelMatrix(kraus KrausSet) *mat.CDense {
	if len(kraus) == 0 {
		return nil
	}
	r, _ := kraus[0].Dims()
	out := zeros(r, r)
	for _, k := range kraus {
		addScaled(out, 1, product(blas.NoTrans, k, blas.ConjTrans, k))
	}
	return out
}

/*
ValidateChannelMatrix checks a channel matrix for n qubits: square,
2^n x 2^n, Hermitian, positive semidefinite and trace 2^n. All failures
are reported together as ErrChannelCompleteness.
*/
func (v *ChannelValidator) ValidateChannelMatrix(m mat.CMatrix, n int) error {
	if n < 1 {
		return argumentError("qubit count must be at least 1, got %d", n)
	}

	issues := newViolations(ErrChannelCompleteness)
	v.checkMatrix(m, n, issues)
	return issues.asError()
}

func (v *ChannelValidator) checkMatrix(m mat.CMatrix, n int, issues *violations) {
	dim := 1 << n
	r, c := m.Dims()

	if !isSquare(m) {
		issues.add("channel matrix must be square, got %dx%d", r, c)
	}
	if r != dim || c != dim {
		issues.add("channel matrix must be %dx%d for %d qubits, got %dx%d", dim, dim, n, r, c)
	}

	// The remaining checks need a square matrix.
	if !isSquare(m) {
		return
	}

	if dev := maxAbsDiff(m, m.H()); dev > v.hermitianTolerance {
		issues.add("channel matrix must be Hermitian: max |M - M†| = %.3g", dev)
	}

	eigenvalues, ok := hermitianEigenvalues(m)
	switch {
	case !ok:
		issues.add("channel matrix eigenvalues did not converge")
	case eigenvalues[0] < -v.eigenTolerance:
		issues.add("channel matrix must be positive semidefinite: eigenvalues %.6g", eigenvalues)
	}

	if tr := trace(m); cmplx.Abs(tr-complex(float64(dim), 0)) > traceTolerance*float64(dim) {
		issues.add("channel matrix trace must be %d, got %.6g", dim, tr)
	}
}
