package qtwirl

import (
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
)

// zeros allocates a contiguous r x c complex matrix.
func zeros(r, c int) *mat.CDense {
	return mat.NewCDense(r, c, make([]complex128, r*c))
}

func identity(d int) *mat.CDense {
	m := zeros(d, d)
	for i := 0; i < d; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// kron returns the Kronecker product a ⊗ b.
func kron(a, b mat.CMatrix) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()

	out := zeros(ar*br, ac*bc)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			aij := a.At(i, j)
			if aij == 0 {
				continue
			}
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					out.Set(i*br+k, j*bc+l, aij*b.At(k, l))
				}
			}
		}
	}
	return out
}

// kronVec returns the tensor product of two state vectors.
func kronVec(u, v []complex128) []complex128 {
	out := make([]complex128, 0, len(u)*len(v))
	for _, x := range u {
		for _, y := range v {
			out = append(out, x*y)
		}
	}
	return out
}

// outer returns the Hermitian outer product |u><v|, conjugating v.
func outer(u, v []complex128) *mat.CDense {
	out := zeros(len(u), len(v))
	for i, x := range u {
		for j, y := range v {
			out.Set(i, j, x*cmplx.Conj(y))
		}
	}
	return out
}

/*
product computes op(a)·op(b) with cblas128.Gemm, where op is selected by
the transpose flags (blas.NoTrans or blas.ConjTrans).
*/
func product(tA blas.Transpose, a *mat.CDense, tB blas.Transpose, b *mat.CDense) *mat.CDense {
	r, _ := a.Dims()
	if tA != blas.NoTrans {
		_, r = a.Dims()
	}
	_, c := b.Dims()
	if tB != blas.NoTrans {
		c, _ = b.Dims()
	}

	out := zeros(r, c)
	cblas128.Gemm(tA, tB, 1, a.RawCMatrix(), b.RawCMatrix(), 0, out.RawCMatrix())
	return out
}

// mul is the plain product a·b.
func mul(a, b *mat.CDense) *mat.CDense {
	return product(blas.NoTrans, a, blas.NoTrans, b)
}

// addScaled performs dst += alpha·a. Both matrices must share a shape.
func addScaled(dst *mat.CDense, alpha complex128, a *mat.CDense) {
	d, s := dst.RawCMatrix(), a.RawCMatrix()
	if d.Stride == d.Cols && s.Stride == s.Cols {
		n := d.Rows * d.Cols
		cblas128.Axpy(alpha,
			cblas128.Vector{N: n, Inc: 1, Data: s.Data[:n]},
			cblas128.Vector{N: n, Inc: 1, Data: d.Data[:n]},
		)
		return
	}

	for i := 0; i < d.Rows; i++ {
		for j := 0; j < d.Cols; j++ {
			dst.Set(i, j, dst.At(i, j)+alpha*a.At(i, j))
		}
	}
}

// scaled returns alpha·a as a new contiguous matrix.
func scaled(alpha complex128, a mat.CMatrix) *mat.CDense {
	r, c := a.Dims()
	out := zeros(r, c)
	out.Copy(a)
	raw := out.RawCMatrix()
	cblas128.Scal(alpha, cblas128.Vector{N: r * c, Inc: 1, Data: raw.Data[:r*c]})
	return out
}

func trace(a mat.CMatrix) complex128 {
	r, _ := a.Dims()
	var t complex128
	for i := 0; i < r; i++ {
		t += a.At(i, i)
	}
	return t
}

// traceProduct returns tr(a·b) without forming the product.
func traceProduct(a, b mat.CMatrix) complex128 {
	r, c := a.Dims()
	var t complex128
	for i := 0; i < r; i++ {
		for k := 0; k < c; k++ {
			aik := a.At(i, k)
			if aik == 0 {
				continue
			}
			t += aik * b.At(k, i)
		}
	}
	return t
}

// maxAbsDiff is the largest element-wise |a - b|. Shapes must match.
func maxAbsDiff(a, b mat.CMatrix) float64 {
	r, c := a.Dims()
	var worst float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			worst = math.Max(worst, cmplx.Abs(a.At(i, j)-b.At(i, j)))
		}
	}
	return worst
}

func isSquare(a mat.CMatrix) bool {
	r, c := a.Dims()
	return r == c
}

/*
hermitianEigenvalues returns the eigenvalues of the Hermitian part of h in
ascending order. H = A + iB is mapped to the real symmetric matrix
[[A, -B], [B, A]], whose spectrum is the spectrum of H with every eigenvalue
doubled, and factorised with mat.EigenSym.
*/
func hermitianEigenvalues(h mat.CMatrix) ([]float64, bool) {
	d, _ := h.Dims()

	sym := mat.NewSymDense(2*d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			v := (h.At(i, j) + cmplx.Conj(h.At(j, i))) / 2
			re, im := real(v), imag(v)

			sym.SetSym(i, j, re)
			sym.SetSym(d+i, d+j, re)
			sym.SetSym(i, d+j, -im)
			sym.SetSym(j, d+i, im)
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(sym, false); !ok {
		return nil, false
	}

	doubled := es.Values(nil)
	sort.Float64s(doubled)

	values := make([]float64, d)
	for i := range values {
		values[i] = doubled[2*i]
	}
	return values, true
}
