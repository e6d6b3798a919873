package model_test

import (
	"testing"

	"github.com/cardroom/standings/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScoreboardAverageFinish(t *testing.T) {
	Convey("Given a scoreboard with recorded positions", t, func() {
		Convey("When positions 1 and 5 were recorded", func() {
			sb := model.Scoreboard{PositionSum: 6, TournamentCount: 2}

			Convey("Then the average rounds to 3", func() {
				So(sb.AverageFinish(), ShouldEqual, 3)
			})
		})

		Convey("When the exact mean is a half value", func() {
			sb := model.Scoreboard{PositionSum: 7, TournamentCount: 2}

			Convey("Then it rounds half-up", func() {
				So(sb.AverageFinish(), ShouldEqual, 4)
			})
		})

		Convey("When repeated positions would have drifted an incremental mean", func() {
			// 3, 4, 4: running rounded mean would give round((round(3.5)*2+4)/3) = 4,
			// the sum-based mean gives round(11/3) = 4 as well, but 2, 3, 3 differs:
			// incremental: round((round(2.5)*2+3)/3) = 3, exact: round(8/3) = 3.
			sb := model.Scoreboard{PositionSum: 8, TournamentCount: 3}
			So(sb.AverageFinish(), ShouldEqual, 3)
		})

		Convey("When no tournaments were recorded", func() {
			sb := model.Scoreboard{}

			Convey("Then the average is zero", func() {
				So(sb.AverageFinish(), ShouldEqual, 0)
			})
		})
	})
}
