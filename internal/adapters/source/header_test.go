package source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUniqueHeader(t *testing.T) {
	Convey("Given a header with blank and repeated names", t, func() {
		header, renamed := uniqueHeader([]string{"\ufeffPlayer ", "H", "", "H", "H", "H_2"})

		Convey("Then names are trimmed and made unique", func() {
			So(header, ShouldResemble, []string{"Player", "H", "column_3", "H_2", "H_3", "H_2_2"})
		})

		Convey("Then every change is reported", func() {
			So(renamed, ShouldResemble, []string{
				`"" -> "column_3"`,
				`"H" -> "H_2"`,
				`"H" -> "H_3"`,
				`"H_2" -> "H_2_2"`,
			})
		})
	})

	Convey("Given a clean header", t, func() {
		header, renamed := uniqueHeader([]string{"Player", "Date", "ERA"})
		So(header, ShouldResemble, []string{"Player", "Date", "ERA"})
		So(renamed, ShouldBeEmpty)
	})
}
