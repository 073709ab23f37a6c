package service_test

import (
	"context"
	"errors"
	"testing"

	service "github.com/okian/livescore/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a variant name", t, func() {
		ctx := context.Background()

		Convey("When it is event", func() {
			board, err := service.New(ctx, service.VariantEvent, 16)

			Convey("Then an EventService is built", func() {
				So(err, ShouldBeNil)
				_, ok := board.(*service.EventService)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When it is snapshot", func() {
			board, err := service.New(ctx, service.VariantSnapshot, 0, service.WithStrictMatchLookup(true))

			Convey("Then a SnapshotService is built with the options applied", func() {
				So(err, ShouldBeNil)
				_, ok := board.(*service.SnapshotService)
				So(ok, ShouldBeTrue)
				So(board.Stats(ctx)["strict"], ShouldBeTrue)
			})
		})

		Convey("When it is unknown", func() {
			board, err := service.New(ctx, "hybrid", 0)

			Convey("Then ErrInvalidArgument is returned", func() {
				So(board, ShouldBeNil)
				So(errors.Is(err, service.ErrInvalidArgument), ShouldBeTrue)
			})
		})
	})
}
