package qtwirl

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewErrorModel(t *testing.T) {
	Convey("Given a well-formed two-qubit model", t, func() {
		model, err := NewErrorModel(map[string]map[string]float64{
			"10": {"XI": 0.1, "ZZ": 0.2},
			"00": {"IX": 0.05},
		})
		So(err, ShouldBeNil)

		Convey("Then the qubit count and states are recorded in order", func() {
			So(model.Qubits(), ShouldEqual, 2)
			So(model.States(), ShouldResemble, []BasisLabel{"00", "10"})
		})

		Convey("Then instructions are ordered by label", func() {
			So(model.Instructions("10"), ShouldResemble, []Instruction{
				{Label: "XI", Probability: 0.1},
				{Label: "ZZ", Probability: 0.2},
			})
			So(model.Instructions("11"), ShouldBeNil)
			So(model.Total("10"), ShouldAlmostEqual, 0.3, 1e-15)
		})
	})

	Convey("Given totals that round just above 1", t, func() {
		_, err := NewErrorModel(map[string]map[string]float64{
			"0": {"X": 0.3, "Y": 0.3, "Z": 0.4},
		})

		Convey("Then the slack absorbs the rounding", func() {
			So(err, ShouldBeNil)
		})
	})

	Convey("Given a state whose probabilities sum past 1", t, func() {
		_, err := NewErrorModel(map[string]map[string]float64{
			"0": {"X": 0.6, "Z": 0.5},
		})

		Convey("Then the state and its total are named", func() {
			So(errors.Is(err, ErrInputValidation), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `state "0"`)
			So(err.Error(), ShouldContainSubstring, "1.1")
		})
	})

	Convey("Given several problems at once", t, func() {
		_, err := NewErrorModel(map[string]map[string]float64{
			"0": {"X": -0.1, "Y": math.NaN()},
			"1": {"Q": 0.1, "Z": 1.5},
		})

		Convey("Then every problem is reported under its own kind", func() {
			So(errors.Is(err, ErrInputValidation), ShouldBeTrue)
			So(errors.Is(err, ErrArgument), ShouldBeTrue)

			// Q label, negative X, NaN Y, Z above 1, state "1" total above 1.
			So(len(Violations(err)), ShouldEqual, 5)
		})
	})

	Convey("Given labels that disagree on the qubit count", t, func() {
		_, err := NewErrorModel(map[string]map[string]float64{
			"00": {"X": 0.1},
			"1":  {"XX": 0.1},
		})

		Convey("Then the count comes from the first state and the rest are rejected", func() {
			So(errors.Is(err, ErrArgument), ShouldBeTrue)
			So(errors.Is(err, ErrInputValidation), ShouldBeFalse)
			So(len(Violations(err)), ShouldEqual, 2)
		})
	})

	Convey("Given an empty model", t, func() {
		_, err := NewErrorModel(nil)

		Convey("Then the qubit count cannot be inferred", func() {
			So(errors.Is(err, ErrArgument), ShouldBeTrue)
		})
	})
}
