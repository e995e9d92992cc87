package qtwirl

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func mustModel(raw map[string]map[string]float64) *ErrorModel {
	model, err := NewErrorModel(raw)
	if err != nil {
		panic(err)
	}
	return model
}

func TestTwirlBatch(t *testing.T) {
	Convey("Given a twirler with a few workers", t, func() {
		cfg := NewConfig()
		cfg.Workers = 3
		twirler, err := NewTwirler(cfg)
		So(err, ShouldBeNil)

		models := []*ErrorModel{
			mustModel(map[string]map[string]float64{"0": {"X": 0}}),
			mustModel(map[string]map[string]float64{"0": {"X": 1}, "1": {"X": 1}}),
			mustModel(map[string]map[string]float64{"1": {"X": 1}}),
			mustModel(map[string]map[string]float64{"01": {"ZY": 0.4}}),
			mustModel(map[string]map[string]float64{"0": {"Z": 1}, "1": {"Z": 1}}),
		}

		Convey("When the batch succeeds", func() {
			results, err := twirler.TwirlBatch(context.Background(), models)
			So(err, ShouldBeNil)

			Convey("Then results come back in input order", func() {
				So(len(results), ShouldEqual, len(models))
				So(results[0].Labels(), ShouldResemble, []PauliLabel{"I"})
				So(results[1].Labels(), ShouldResemble, []PauliLabel{"X"})
				So(results[2].Labels(), ShouldResemble, []PauliLabel{"I", "X", "Y", "Z"})
				So(results[4].Labels(), ShouldResemble, []PauliLabel{"Z"})
			})

			Convey("Then each result matches a single twirl", func() {
				single, err := twirler.Twirl(models[3])
				So(err, ShouldBeNil)
				So(results[3], ShouldResemble, single)
			})
		})

		Convey("When one model fails", func() {
			strict := NewConfig()
			strict.Workers = 2
			strict.MaxQubits = 1
			twirler, err := NewTwirler(strict)
			So(err, ShouldBeNil)

			results, err := twirler.TwirlBatch(context.Background(), models)

			Convey("Then the failure names the model and nothing is returned", func() {
				So(results, ShouldBeNil)
				So(errors.Is(err, ErrArgument), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "error model 3")
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			results, err := twirler.TwirlBatch(ctx, models)

			Convey("Then no work is done", func() {
				So(results, ShouldBeNil)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(twirler.Metrics().TwirlCount, ShouldEqual, int64(0))
			})
		})

		Convey("When the batch is empty", func() {
			results, err := twirler.TwirlBatch(context.Background(), nil)

			Convey("Then an empty result list is returned", func() {
				So(err, ShouldBeNil)
				So(results, ShouldBeEmpty)
			})
		})
	})
}
