package search_test

import (
	"testing"

	"github.com/okian/mlbview/internal/adapters/search"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIndex_Find(t *testing.T) {
	Convey("Given an index of players", t, func() {
		idx := search.NewIndex([]string{"Aaron Judge", "Jose Altuve", "Juan Soto", "Shohei Ohtani"})
		So(idx.Len(), ShouldEqual, 4)

		Convey("When the query is empty", func() {
			got := idx.Find("", 2)

			Convey("Then it should list names in order", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].Name, ShouldEqual, "Aaron Judge")
				So(got[1].Name, ShouldEqual, "Jose Altuve")
			})
		})

		Convey("When searching a partial name in another case", func() {
			got := idx.Find("JUDG", 10)

			Convey("Then the matching player comes first with its original casing", func() {
				So(len(got), ShouldBeGreaterThan, 0)
				So(got[0].Name, ShouldEqual, "Aaron Judge")
			})
		})

		Convey("When a substring match competes with scattered matches", func() {
			got := idx.Find("soto", 10)

			Convey("Then the substring match ranks first", func() {
				So(got[0].Name, ShouldEqual, "Juan Soto")
			})
		})

		Convey("When nothing matches", func() {
			So(idx.Find("zzz", 10), ShouldBeEmpty)
		})

		Convey("When the limit is zero", func() {
			So(idx.Find("a", 0), ShouldBeEmpty)
		})

		Convey("When the limit is below the match count", func() {
			So(idx.Find("o", 1), ShouldHaveLength, 1)
		})
	})
}
