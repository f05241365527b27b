package dates_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/mlbview/internal/domain/dates"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given game log date strings without a year", t, func() {
		Convey("When the token is a plain month abbreviation and day", func() {
			d := dates.Normalize("Mar 28", 2024)

			Convey("Then it should use the reference year", func() {
				So(d.Valid(), ShouldBeTrue)
				So(d.String(), ShouldEqual, "2024-03-28")
				So(d.Time(), ShouldEqual, time.Date(2024, time.March, 28, 0, 0, 0, 0, time.UTC))
			})
		})

		Convey("When the token uses an underscore separator", func() {
			So(dates.Normalize("Mar_30", 2024).String(), ShouldEqual, "2024-03-30")
		})

		Convey("When the token carries a non-breaking space", func() {
			So(dates.Normalize("Apr\u00a05", 2024).String(), ShouldEqual, "2024-04-05")
		})

		Convey("When the non-breaking space was mis-decoded as Latin-1", func() {
			So(dates.Normalize("Apr\u00c2\u00a012", 2024).String(), ShouldEqual, "2024-04-12")
			So(dates.Normalize("Apr\u00c2 12", 2024).String(), ShouldEqual, "2024-04-12")
		})

		Convey("When the token contains a stray invalid byte", func() {
			So(dates.Normalize("May\xa03", 2023).String(), ShouldEqual, "2023-05-03")
		})

		Convey("When the token is a doubleheader game", func() {
			So(dates.Normalize("Jul 4 (2)", 2024).String(), ShouldEqual, "2024-07-04")
		})

		Convey("When the token has a weekday prefix and full month name", func() {
			So(dates.Normalize("Sun, September 29", 2024).String(), ShouldEqual, "2024-09-29")
		})

		Convey("When the month is lower case", func() {
			So(dates.Normalize("aug 1", 2024).String(), ShouldEqual, "2024-08-01")
		})
	})

	Convey("Given numeric date strings", t, func() {
		Convey("When the date is month-first with a year", func() {
			d := dates.Normalize("03/28/2023", 2024)

			Convey("Then the year in the string should win", func() {
				So(d.String(), ShouldEqual, "2023-03-28")
			})
		})

		Convey("When the date is month-first without zero padding", func() {
			So(dates.Normalize("4/1/2024", 1999).String(), ShouldEqual, "2024-04-01")
		})

		Convey("When the date is ISO formatted", func() {
			So(dates.Normalize("2024-06-15", 1999).String(), ShouldEqual, "2024-06-15")
		})

		Convey("When the numeric day does not exist", func() {
			So(dates.Normalize("02/30/2024", 2024), ShouldResemble, dates.NoDate)
		})
	})

	Convey("Given unparseable input", t, func() {
		cases := []string{
			"not a date",
			"",
			"   ",
			"Feb 30",
			"Mar",
			"Mar 28 29",
			"Foo 12",
			"13/01/2024",
			"Mar -1",
		}
		for _, raw := range cases {
			raw := raw
			Convey("When normalizing "+raw, func() {
				d := dates.Normalize(raw, 2024)

				Convey("Then it should return NoDate", func() {
					So(d.Valid(), ShouldBeFalse)
					So(d, ShouldResemble, dates.NoDate)
					So(d.String(), ShouldEqual, "")
				})
			})
		}

		Convey("When the reference year is not positive", func() {
			So(dates.Normalize("Mar 28", 0).Valid(), ShouldBeFalse)
		})
	})

	Convey("Given a leap day", t, func() {
		So(dates.Normalize("Feb 29", 2024).String(), ShouldEqual, "2024-02-29")
		So(dates.Normalize("Feb 29", 2023).Valid(), ShouldBeFalse)
	})
}

func TestClean(t *testing.T) {
	Convey("Given strings with encoding debris", t, func() {
		So(dates.Clean("Mar_30"), ShouldEqual, "Mar 30")
		So(dates.Clean("  Mar\u00c2\u00a0\u00a0 30 "), ShouldEqual, "Mar 30")
		So(dates.Clean("Mar\ufffd30"), ShouldEqual, "Mar 30")
	})
}

func TestDateJSON(t *testing.T) {
	Convey("Given a valid date and NoDate", t, func() {
		valid := dates.Of(2024, time.March, 28)

		Convey("When marshaling", func() {
			b, err := json.Marshal(struct {
				A dates.Date `json:"a"`
				B dates.Date `json:"b"`
			}{A: valid, B: dates.NoDate})

			Convey("Then NoDate should be null", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, `{"a":"2024-03-28","b":null}`)
			})
		})

		Convey("When unmarshaling", func() {
			var out struct {
				A dates.Date `json:"a"`
				B dates.Date `json:"b"`
			}
			err := json.Unmarshal([]byte(`{"a":"2024-03-28","b":null}`), &out)

			So(err, ShouldBeNil)
			So(out.A.Equal(valid), ShouldBeTrue)
			So(out.B.Valid(), ShouldBeFalse)
		})
	})
}

func TestRange(t *testing.T) {
	Convey("Given date ranges", t, func() {
		from := dates.Of(2024, time.April, 1)
		to := dates.Of(2024, time.April, 30)
		r := dates.Range{From: from, To: to}

		Convey("Then the bounds should be inclusive", func() {
			So(r.Contains(from), ShouldBeTrue)
			So(r.Contains(to), ShouldBeTrue)
			So(r.Contains(dates.Of(2024, time.April, 15)), ShouldBeTrue)
			So(r.Contains(dates.Of(2024, time.March, 31)), ShouldBeFalse)
			So(r.Contains(dates.Of(2024, time.May, 1)), ShouldBeFalse)
		})

		Convey("Then a bounded range should exclude NoDate", func() {
			So(r.Contains(dates.NoDate), ShouldBeFalse)
			So(dates.Range{From: from}.Contains(dates.NoDate), ShouldBeFalse)
		})

		Convey("Then an unbounded range should contain everything", func() {
			So(dates.Range{}.Bounded(), ShouldBeFalse)
			So(dates.Range{}.Contains(dates.NoDate), ShouldBeTrue)
			So(dates.Range{}.Contains(from), ShouldBeTrue)
		})

		Convey("Then an inverted range should be detected", func() {
			So(dates.Range{From: to, To: from}.Inverted(), ShouldBeTrue)
			So(r.Inverted(), ShouldBeFalse)
		})
	})
}
