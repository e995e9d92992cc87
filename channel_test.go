package qtwirl

import (
	"errors"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"
)

func buildKraus(cfg *Config, raw map[string]map[string]float64) (KrausSet, error) {
	model, err := NewErrorModel(raw)
	if err != nil {
		return nil, err
	}

	ops, err := buildOperators(model.Qubits())
	if err != nil {
		return nil, err
	}

	return NewChannelBuilder(cfg).Build(model, ops.Algebra, ops.Basis)
}

func TestChannelBuilder(t *testing.T) {
	Convey("Given a certain bit flip on |1>", t, func() {
		kraus, err := buildKraus(NewConfig(), map[string]map[string]float64{
			"1": {"X": 1},
		})
		So(err, ShouldBeNil)

		Convey("Then one error operator and the no-error operator are built", func() {
			So(len(kraus), ShouldEqual, 2)

			flip := mat.NewCDense(2, 2, []complex128{0, 1, 0, 0})
			noError := mat.NewCDense(2, 2, []complex128{1, 0, 0, 0})

			if maxAbsDiff(kraus[0], flip) != 0 {
				t.Log(spew.Sdump(kraus))
			}
			So(maxAbsDiff(kraus[0], flip), ShouldEqual, 0.0)
			So(maxAbsDiff(kraus[1], noError), ShouldEqual, 0.0)
		})

		Convey("Then the set is complete", func() {
			So(NewChannelValidator(NewConfig()).Validate(kraus, 1), ShouldBeNil)
		})
	})

	Convey("Given a partial error on one state", t, func() {
		kraus, err := buildKraus(NewConfig(), map[string]map[string]float64{
			"1": {"X": 0.2},
		})
		So(err, ShouldBeNil)

		Convey("Then the no-error operator carries the leftover amplitude", func() {
			noError := kraus[len(kraus)-1]
			So(real(noError.At(0, 0)), ShouldAlmostEqual, 1, 1e-15)
			So(real(noError.At(1, 1)), ShouldAlmostEqual, math.Sqrt(0.8), 1e-15)
			So(real(kraus[0].At(0, 1)), ShouldAlmostEqual, math.Sqrt(0.2), 1e-15)
		})
	})

	Convey("Given zero-probability entries", t, func() {
		kraus, err := buildKraus(NewConfig(), map[string]map[string]float64{
			"0": {"X": 0, "Z": 0},
		})
		So(err, ShouldBeNil)

		Convey("Then no operator is emitted for them", func() {
			So(len(kraus), ShouldEqual, 1)
			So(maxAbsDiff(kraus[0], identity(2)), ShouldEqual, 0.0)
		})
	})

	Convey("Given an explicit identity entry", t, func() {
		raw := map[string]map[string]float64{
			"0": {"I": 0.3, "X": 0.2},
		}

		Convey("When the identity is part of the leftover", func() {
			kraus, err := buildKraus(NewConfig(), raw)
			So(err, ShouldBeNil)

			Convey("Then the channel stays complete", func() {
				So(len(kraus), ShouldEqual, 2)
				So(real(kraus[1].At(0, 0)), ShouldAlmostEqual, math.Sqrt(0.8), 1e-15)
				So(NewChannelValidator(NewConfig()).Validate(kraus, 1), ShouldBeNil)
			})
		})

		Convey("When the identity weight is discarded", func() {
			cfg := NewConfig()
			cfg.IdentityPolicy = IdentityDiscard

			kraus, err := buildKraus(cfg, raw)
			So(err, ShouldBeNil)

			Convey("Then the channel is incomplete", func() {
				err := NewChannelValidator(cfg).Validate(kraus, 1)
				So(errors.Is(err, ErrChannelCompleteness), ShouldBeTrue)
			})
		})
	})

	Convey("Given operators for a different qubit count", t, func() {
		model, err := NewErrorModel(map[string]map[string]float64{"0": {"X": 0.1}})
		So(err, ShouldBeNil)

		ops, err := buildOperators(2)
		So(err, ShouldBeNil)

		_, err = NewChannelBuilder(NewConfig()).Build(model, ops.Algebra, ops.Basis)

		Convey("Then building fails", func() {
			So(errors.Is(err, ErrArgument), ShouldBeTrue)
		})
	})
}

func TestParseIdentityPolicy(t *testing.T) {
	Convey("Given policy names", t, func() {
		for name, want := range map[string]IdentityPolicy{
			"":            IdentityAsLeftover,
			"as_leftover": IdentityAsLeftover,
			"Discard":     IdentityDiscard,
			"legacy":      IdentityDiscard,
		} {
			got, err := ParseIdentityPolicy(name)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		_, err := ParseIdentityPolicy("ignore")
		So(err, ShouldNotBeNil)
		So(IdentityDiscard.String(), ShouldEqual, "discard")
	})
}
