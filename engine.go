package qtwirl

import (
	"fmt"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"
)

// Estimator selects how a Pauli label's weight is read off the channel.
type Estimator int

const (
	/*
		EstimatorTraceOverlap evaluates the group-twirl overlap
		|tr(P_w · sum_i P_w K_i P_w†)| / 2^n. The absolute value is taken after
		summing over the Kraus operators so phases can cancel. The weights are
		not normalised.
	*/
	EstimatorTraceOverlap Estimator = iota
	/*
		EstimatorProcessDiagonal evaluates the diagonal of the process matrix,
		sum_i |tr(P_w† K_i)|² / 4^n. Over the full label set the weights of a
		complete Kraus set sum to 1.
	*/
	EstimatorProcessDiagonal
)

func (e Estimator) String() string {
	switch e {
	case EstimatorTraceOverlap:
		return "trace_overlap"
	case EstimatorProcessDiagonal:
		return "process_diagonal"
	}
	return fmt.Sprintf("Estimator(%d)", int(e))
}

func ParseEstimator(s string) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace_overlap", "overlap", "":
		return EstimatorTraceOverlap, nil
	case "process_diagonal", "chi":
		return EstimatorProcessDiagonal, nil
	}
	return 0, fmt.Errorf("unknown estimator %q", s)
}

// TwirlEngine projects a Kraus set onto the Pauli basis.
type TwirlEngine struct {
	estimator Estimator
}

func NewTwirlEngine(cfg *Config) *TwirlEngine {
	return &TwirlEngine{estimator: cfg.Estimator}
}

/*
Project returns one weight per label, in the order of labels. The Kraus set
is expected to have passed ChannelValidator for the algebra's qubit count.
*/
func (e *TwirlEngine) Project(kraus KrausSet, algebra *PauliAlgebra, labels []PauliLabel) ([]float64, error) {
	if len(kraus) == 0 {
		return nil, argumentError("Kraus operator list is empty")
	}

	ops := make([]*mat.CDense, len(labels))
	for i, label := range labels {
		op, err := algebra.Operator(label)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}

	d := float64(algebra.Dim())
	weights := make([]float64, len(labels))

	switch e.estimator {
	case EstimatorTraceOverlap:
		// Conjugation is linear, so sum_i P K_i P† = P (sum_i K_i) P†.
		sum := zeros(algebra.Dim(), algebra.Dim())
		for _, k := range kraus {
			addScaled(sum, 1, k)
		}

		for i, p := range ops {
			conjugated := product(blas.NoTrans, mul(p, sum), blas.ConjTrans, p)
			weights[i] = cmplx.Abs(traceProduct(p, conjugated)) / d
		}

	case EstimatorProcessDiagonal:
		for i, p := range ops {
			var w float64
			for _, k := range kraus {
				overlap := traceProduct(p.H(), k)
				w += real(overlap)*real(overlap) + imag(overlap)*imag(overlap)
			}
			weights[i] = w / (d * d)
		}

	default:
		return nil, argumentError("unknown estimator %v", e.estimator)
	}

	return weights, nil
}
