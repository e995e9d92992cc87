package qtwirl

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/mat"
)

// KrausSet is an ordered list of Kraus operators of one shape.
type KrausSet []*mat.CDense

// IdentityPolicy decides what an explicit all-I entry in an error model means.
type IdentityPolicy int

const (
	// IdentityAsLeftover treats explicit identity weight as part of the
	// no-error term: leftover = 1 - (non-identity probabilities).
	IdentityAsLeftover IdentityPolicy = iota
	// IdentityDiscard drops the identity entry and still subtracts it from
	// the leftover, so any nonzero identity weight leaves the channel
	// incomplete and validation rejects it.
	IdentityDiscard
)

func (p IdentityPolicy) String() string {
	switch p {
	case IdentityAsLeftover:
		return "as_leftover"
	case IdentityDiscard:
		return "discard"
	}
	return fmt.Sprintf("IdentityPolicy(%d)", int(p))
}

func ParseIdentityPolicy(s string) (IdentityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "as_leftover", "leftover", "":
		return IdentityAsLeftover, nil
	case "discard", "legacy":
		return IdentityDiscard, nil
	}
	return 0, fmt.Errorf("unknown identity policy %q", s)
}

/*
ChannelBuilder turns an ErrorModel into Kraus operators. For every basis
state s (all 2^n of them, present in the model or not) each error P with
probability w contributes sqrt(w)·P·|s><s|, and the remaining no-error weight
contributes sqrt(leftover)·|s><s| to one shared identity operator that is
appended last.
*/
type ChannelBuilder struct {
	policy IdentityPolicy
	logger *log.Logger
}

func NewChannelBuilder(cfg *Config) *ChannelBuilder {
	return &ChannelBuilder{
		policy: cfg.IdentityPolicy,
		logger: cfg.logger(),
	}
}

func (b *ChannelBuilder) Build(
	model *ErrorModel, algebra *PauliAlgebra, basis *BasisStates,
) (KrausSet, error) {
	if model == nil || model.Qubits() < 1 {
		return nil, argumentError("error model is empty")
	}
	if algebra.Qubits() != model.Qubits() || basis.Qubits() != model.Qubits() {
		return nil, argumentError(
			"qubit counts disagree: model %d, algebra %d, basis %d",
			model.Qubits(), algebra.Qubits(), basis.Qubits(),
		)
	}

	dim := algebra.Dim()
	id := algebra.Identity()
	noError := zeros(dim, dim)
	kraus := make(KrausSet, 0, 1)

	for _, state := range basis.Labels() {
		rho, _ := basis.Density(state)
		errorWeight := 0.0

		for _, in := range model.Instructions(state) {
			if in.Label == id {
				if b.policy == IdentityDiscard && in.Probability > 0 {
					errorWeight += in.Probability
					b.logger.Warn("explicit identity weight discarded",
						"state", state, "probability", in.Probability)
				}
				continue
			}

			errorWeight += in.Probability
			if in.Probability == 0 {
				continue
			}

			op := mul(algebra.operator(in.Label), rho)
			kraus = append(kraus, scaled(complex(math.Sqrt(in.Probability), 0), op))
		}

		leftover := math.Max(0, 1-errorWeight)
		addScaled(noError, complex(math.Sqrt(leftover), 0), rho)
	}

	kraus = append(kraus, noError)

	b.logger.Debug("built kraus operators", "qubits", model.Qubits(), "operators", len(kraus))
	return kraus, nil
}
