package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	dedupe "github.com/cardroom/standings/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryIndex(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new in-memory index", t, func() {
		idx := dedupe.NewInMemoryIndex()

		Convey("When a submission has never been recorded", func() {
			_, seen := idx.Lookup(ctx, "sub-1")

			Convey("Then it is not seen", func() {
				So(seen, ShouldBeFalse)
				So(idx.Size(), ShouldEqual, 0)
			})
		})

		Convey("When a submission is recorded", func() {
			idx.Record(ctx, "sub-1", "tournament-9")

			Convey("Then a lookup returns the tournament it produced", func() {
				tournamentID, seen := idx.Lookup(ctx, "sub-1")
				So(seen, ShouldBeTrue)
				So(tournamentID, ShouldEqual, "tournament-9")
				So(idx.Size(), ShouldEqual, 1)
			})

			Convey("And re-recording the same id keeps its size stable", func() {
				idx.Record(ctx, "sub-1", "tournament-9")
				So(idx.Size(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a bounded index", t, func() {
		idx := dedupe.NewInMemoryIndex(dedupe.WithMaxSize(3))

		Convey("When more submissions arrive than it can hold", func() {
			for n := 1; n <= 4; n++ {
				idx.Record(ctx, fmt.Sprintf("sub-%d", n), fmt.Sprintf("t-%d", n))
			}

			Convey("Then the oldest entry is evicted first", func() {
				So(idx.Size(), ShouldEqual, 3)
				_, seen := idx.Lookup(ctx, "sub-1")
				So(seen, ShouldBeFalse)
				_, seen = idx.Lookup(ctx, "sub-4")
				So(seen, ShouldBeTrue)
			})
		})
	})
}
