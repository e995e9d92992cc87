package qtwirl

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"
)

func TestNewBasisStates(t *testing.T) {
	Convey("Given two-qubit basis states", t, func() {
		bs, err := NewBasisStates(2)
		So(err, ShouldBeNil)

		Convey("Then labels are in ascending numeric order", func() {
			So(bs.Labels(), ShouldResemble, []BasisLabel{"00", "01", "10", "11"})
			So(bs.Qubits(), ShouldEqual, 2)
		})

		Convey("Then each vector is a unit vector at the label's index", func() {
			for i, label := range bs.Labels() {
				v, err := bs.Vector(label)
				So(err, ShouldBeNil)
				So(len(v), ShouldEqual, 4)

				for j, amp := range v {
					if j == i {
						So(amp, ShouldEqual, complex(1, 0))
					} else {
						So(amp, ShouldEqual, complex(0, 0))
					}
				}
			}
		})

		Convey("Then each density matrix is a rank-one projector", func() {
			rho, err := bs.Density("10")
			So(err, ShouldBeNil)

			want := zeros(4, 4)
			want.Set(2, 2, 1)
			So(maxAbsDiff(rho, want), ShouldEqual, 0.0)
			So(maxAbsDiff(mul(rho, rho), rho), ShouldEqual, 0.0)
		})

		Convey("Then the projectors resolve the identity", func() {
			sum := zeros(4, 4)
			for _, label := range bs.Labels() {
				rho, _ := bs.Density(label)
				addScaled(sum, 1, rho)
			}
			So(maxAbsDiff(sum, identity(4)), ShouldEqual, 0.0)
		})

		Convey("Then vectors are copies", func() {
			v, _ := bs.Vector("00")
			v[0] = 5
			again, _ := bs.Vector("00")
			So(again[0], ShouldEqual, complex(1, 0))
		})

		Convey("When asking for a malformed or foreign state", func() {
			_, errLength := bs.Density("0")
			_, errAlphabet := bs.Vector("0a")

			Convey("Then an argument error is returned", func() {
				So(errors.Is(errLength, ErrArgument), ShouldBeTrue)
				So(errors.Is(errAlphabet, ErrArgument), ShouldBeTrue)
			})
		})
	})

	Convey("Given a zero qubit count", t, func() {
		_, err := NewBasisStates(0)

		Convey("Then construction fails", func() {
			So(errors.Is(err, ErrArgument), ShouldBeTrue)
		})
	})
}

func TestKron(t *testing.T) {
	Convey("Given two small matrices", t, func() {
		a := mat.NewCDense(2, 2, []complex128{1, 2, 3, 4})
		b := mat.NewCDense(2, 2, []complex128{0, 1i, 1, 0})

		Convey("Then the Kronecker product places scaled copies of b in blocks", func() {
			got := kron(a, b)
			want := mat.NewCDense(4, 4, []complex128{
				0, 1i, 0, 2i,
				1, 0, 2, 0,
				0, 3i, 0, 4i,
				3, 0, 4, 0,
			})
			So(maxAbsDiff(got, want), ShouldEqual, 0.0)
		})
	})

	Convey("Given a Hermitian matrix with known spectrum", t, func() {
		h := mat.NewCDense(2, 2, []complex128{2, 1i, -1i, 2})

		Convey("Then its eigenvalues are returned in ascending order", func() {
			values, ok := hermitianEigenvalues(h)
			So(ok, ShouldBeTrue)
			So(len(values), ShouldEqual, 2)
			So(values[0], ShouldAlmostEqual, 1, 1e-12)
			So(values[1], ShouldAlmostEqual, 3, 1e-12)
		})
	})
}
