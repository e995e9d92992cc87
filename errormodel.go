package qtwirl

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// probabilitySlack absorbs rounding in per-state totals such as 0.3+0.3+0.4.
const probabilitySlack = 1e-12

// Instruction is one Pauli error and the probability it occurs.
type Instruction struct {
	Label       PauliLabel
	Probability float64
}

/*
ErrorModel is a validated state-dependent error specification: for each
computational basis state, the probability of each Pauli error occurring
when the register is in that state. States that are absent pass through
untouched. Construct it with NewErrorModel; the zero value is unusable.
*/
type ErrorModel struct {
	n      int
	states map[BasisLabel][]Instruction
}

/*
NewErrorModel validates raw and converts it into an ErrorModel. The qubit
count is taken from the lexicographically first state label. Label problems
are reported as ErrArgument and probability problems as ErrInputValidation;
all of them are collected before returning.
*/
func NewErrorModel(raw map[string]map[string]float64) (*ErrorModel, error) {
	if len(raw) == 0 {
		return nil, argumentError("error model is empty, cannot infer the qubit count")
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := len(keys[0])
	labelIssues := newViolations(ErrArgument)
	inputIssues := newViolations(ErrInputValidation)

	model := &ErrorModel{
		n:      n,
		states: make(map[BasisLabel][]Instruction, len(raw)),
	}

	for _, key := range keys {
		if err := checkLabel(key, basisAlphabet, "basis state", n); err != nil {
			labelIssues.add("%v", err)
		}

		errs := raw[key]
		names := make([]string, 0, len(errs))
		for name := range errs {
			names = append(names, name)
		}
		sort.Strings(names)

		instructions := make([]Instruction, 0, len(names))
		probabilities := make([]float64, 0, len(names))

		for _, name := range names {
			if err := checkLabel(name, pauliAlphabet, "Pauli", n); err != nil {
				labelIssues.add("state %q: %v", key, err)
			}

			p := errs[name]
			switch {
			case math.IsNaN(p) || math.IsInf(p, 0):
				inputIssues.add("state %q: probability of %q is %v", key, name, p)
				continue
			case p < 0:
				inputIssues.add("state %q: probability of %q is negative (%.6g)", key, name, p)
			case p > 1:
				inputIssues.add("state %q: probability of %q exceeds 1 (%.6g)", key, name, p)
			}

			instructions = append(instructions, Instruction{Label: PauliLabel(name), Probability: p})
			probabilities = append(probabilities, p)
		}

		if total := floats.Sum(probabilities); total > 1+probabilitySlack {
			inputIssues.add("state %q: error probabilities sum to %.6g, must not exceed 1", key, total)
		}

		model.states[BasisLabel(key)] = instructions
	}

	if err := combineViolations(labelIssues, inputIssues); err != nil {
		return nil, err
	}

	return model, nil
}

// Qubits is the qubit count shared by every label in the model.
func (m *ErrorModel) Qubits() int {
	if m == nil {
		return 0
	}
	return m.n
}

// States lists the states that carry instructions, in ascending order.
func (m *ErrorModel) States() []BasisLabel {
	out := make([]BasisLabel, 0, len(m.states))
	for s := range m.states {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Instructions returns the errors for state ordered by label, or nil when
// the state is not in the model.
func (m *ErrorModel) Instructions(state BasisLabel) []Instruction {
	src := m.states[state]
	if src == nil {
		return nil
	}
	out := make([]Instruction, len(src))
	copy(out, src)
	return out
}

// Total is the summed error probability for state, identity entries included.
func (m *ErrorModel) Total(state BasisLabel) float64 {
	probabilities := make([]float64, 0, len(m.states[state]))
	for _, in := range m.states[state] {
		probabilities = append(probabilities, in.Probability)
	}
	return floats.Sum(probabilities)
}
