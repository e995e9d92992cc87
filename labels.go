package qtwirl

import (
	"fmt"
	"strings"
)

const (
	pauliAlphabet = "IXYZ"
	basisAlphabet = "01"
)

// PauliLabel names an n-qubit Pauli operator, one character of {I,X,Y,Z}
// per qubit, qubit 0 first.
type PauliLabel string

// BasisLabel names a computational basis state as a bitstring, most
// significant bit first.
type BasisLabel string

// Qubits is the number of qubits the label spans.
func (l PauliLabel) Qubits() int {
	return len(l)
}

// IsIdentity reports whether every position is I.
func (l PauliLabel) IsIdentity() bool {
	return len(l) > 0 && strings.Trim(string(l), "I") == ""
}

func (l BasisLabel) Qubits() int {
	return len(l)
}

// IdentityLabel returns the all-I label for n qubits.
func IdentityLabel(n int) PauliLabel {
	return PauliLabel(strings.Repeat("I", n))
}

// ParsePauliLabel validates s against the Pauli alphabet and, when n > 0,
// against the expected qubit count.
func ParsePauliLabel(s string, n int) (PauliLabel, error) {
	if err := checkLabel(s, pauliAlphabet, "Pauli", n); err != nil {
		return "", argumentError("%v", err)
	}
	return PauliLabel(s), nil
}

// ParseBasisLabel validates s as a bitstring and, when n > 0, against the
// expected qubit count.
func ParseBasisLabel(s string, n int) (BasisLabel, error) {
	if err := checkLabel(s, basisAlphabet, "basis state", n); err != nil {
		return "", argumentError("%v", err)
	}
	return BasisLabel(s), nil
}

func checkLabel(s, alphabet, kind string, n int) error {
	if s == "" {
		return fmt.Errorf("%s label is empty", kind)
	}

	for _, r := range s {
		if !strings.ContainsRune(alphabet, r) {
			return fmt.Errorf("%s label %q has character %q outside {%s}",
				kind, s, r, strings.Join(strings.Split(alphabet, ""), ","))
		}
	}

	if n > 0 && len(s) != n {
		return fmt.Errorf("%s label %q has length %d, want %d", kind, s, len(s), n)
	}

	return nil
}
