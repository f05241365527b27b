package model_test

import (
	"testing"

	"github.com/okian/mlbview/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	convey.Convey("Given raw statistic cells", t, func() {
		convey.Convey("When the cell is numeric", func() {
			convey.So(model.ParseValue("3"), convey.ShouldResemble, model.Number(3))
			convey.So(model.ParseValue(" 4.50 "), convey.ShouldResemble, model.Number(4.5))
			convey.So(model.ParseValue("-1.25"), convey.ShouldResemble, model.Number(-1.25))
			convey.So(model.ParseValue("1,024"), convey.ShouldResemble, model.Number(1024))
			convey.So(model.ParseValue("12.5%"), convey.ShouldResemble, model.Number(12.5))
		})

		convey.Convey("When the cell is blank or a placeholder", func() {
			for _, raw := range []string{"", " ", "-", "NA", "nan", "NaN", "null", "inf"} {
				convey.So(model.ParseValue(raw).Valid, convey.ShouldBeFalse)
			}
		})

		convey.Convey("When the cell is text", func() {
			convey.So(model.ParseValue("DNP"), convey.ShouldResemble, model.Missing)
		})

		convey.Convey("Then OrZero should treat missing as zero", func() {
			convey.So(model.Missing.OrZero(), convey.ShouldEqual, 0.0)
			convey.So(model.Number(2).OrZero(), convey.ShouldEqual, 2.0)
		})
	})
}

func TestParseKind(t *testing.T) {
	convey.Convey("Given dataset names", t, func() {
		k, ok := model.ParseKind(" Hitters ")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(k, convey.ShouldEqual, model.KindHitters)

		_, ok = model.ParseKind("umpires")
		convey.So(ok, convey.ShouldBeFalse)
	})
}

func TestGameInvolves(t *testing.T) {
	convey.Convey("Given a schedule row", t, func() {
		g := model.Game{Home: "NYY", Away: "BOS"}

		convey.So(g.Involves("nyy"), convey.ShouldBeTrue)
		convey.So(g.Involves("BOS"), convey.ShouldBeTrue)
		convey.So(g.Involves("LAD"), convey.ShouldBeFalse)
		convey.So(g.Involves(""), convey.ShouldBeTrue)
	})
}
