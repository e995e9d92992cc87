package qtwirl

import "gonum.org/v1/gonum/mat"

/*
singlePauli returns a fresh copy of the single-qubit Pauli matrix for one
label character:

	I = [1 0]  X = [0 1]  Y = [0 -i]  Z = [1  0]
	    [0 1]      [1 0]      [i  0]      [0 -1]
*/
func singlePauli(r byte) *mat.CDense {
	switch r {
	case 'I':
		return mat.NewCDense(2, 2, []complex128{1, 0, 0, 1})
	case 'X':
		return mat.NewCDense(2, 2, []complex128{0, 1, 1, 0})
	case 'Y':
		return mat.NewCDense(2, 2, []complex128{0, -1i, 1i, 0})
	case 'Z':
		return mat.NewCDense(2, 2, []complex128{1, 0, 0, -1})
	}
	return nil
}

// singleBasis returns |0> = (1, 0) or |1> = (0, 1).
func singleBasis(bit byte) []complex128 {
	if bit == '1' {
		return []complex128{0, 1}
	}
	return []complex128{1, 0}
}
