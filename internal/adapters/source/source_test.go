package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/okian/mlbview/internal/adapters/source"
	"github.com/okian/mlbview/internal/domain/model"
	"github.com/okian/mlbview/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const hittersCSV = "\ufeffPlayer , Date,H,HR\n" +
	"Aaron Judge,Mar 28,1,1\n" +
	"\"Soto, Juan\",Mar_29,NA,0\n" +
	",,,\n" +
	"Aaron Judge,TBD,2,\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeXLSX(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "pitchers.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	return path
}

func TestReader_CSV(t *testing.T) {
	Convey("Given a hitters CSV", t, func() {
		path := writeFile(t, "hitters.csv", hittersCSV)

		Convey("Read trims the header and skips blank rows", func() {
			tbl, err := source.NewReader().Read(context.Background(), model.KindHitters, path)
			So(err, ShouldBeNil)
			So(tbl.Kind, ShouldEqual, model.KindHitters)
			So(tbl.Source, ShouldEqual, path)
			So(tbl.Header, ShouldResemble, []string{"Player", "Date", "H", "HR"})
			So(len(tbl.Rows), ShouldEqual, 3)
			So(tbl.Rows[1][0], ShouldEqual, "Soto, Juan")
			So(tbl.Rows[1][1], ShouldEqual, "Mar_29")
			So(model.ParseValue(tbl.Rows[1][2]).Valid, ShouldBeFalse)
		})

		Convey("A cancelled context stops the read", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := source.NewReader().Read(ctx, model.KindHitters, path)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given a CSV with ragged rows", t, func() {
		path := writeFile(t, "ragged.csv", "Player,Date,H,HR\nA,Mar 28,1,0\nB,Mar 29\nC,Mar 30,2,1,extra\n")

		Convey("Short rows are padded and long rows cut", func() {
			tbl, err := source.NewReader().Read(context.Background(), model.KindHitters, path)
			So(err, ShouldBeNil)
			So(len(tbl.Rows), ShouldEqual, 3)
			So(tbl.Rows[1], ShouldResemble, []string{"B", "Mar 29", "", ""})
			So(tbl.Rows[2], ShouldResemble, []string{"C", "Mar 30", "2", "1"})
		})
	})

	Convey("Given a CSV with blank and repeated column names", t, func() {
		path := writeFile(t, "dupes.csv", "Player,Date,,H,H\nA,Mar 28,x,1,2\n")

		Convey("The first occurrence keeps its name", func() {
			tbl, err := source.NewReader().Read(context.Background(), model.KindHitters, path)
			So(err, ShouldBeNil)
			So(tbl.Header, ShouldResemble, []string{"Player", "Date", "column_3", "H", "H_2"})
			So(tbl.Rows[0], ShouldResemble, []string{"A", "Mar 28", "x", "1", "2"})
			So(tbl.Column("H"), ShouldEqual, 3)
		})
	})

	Convey("Given a CSV with only a header", t, func() {
		path := writeFile(t, "empty.csv", "Player,Date,H\n")

		Convey("The table has no rows", func() {
			tbl, err := source.NewReader().Read(context.Background(), model.KindHitters, path)
			So(err, ShouldBeNil)
			So(tbl.Header, ShouldResemble, []string{"Player", "Date", "H"})
			So(tbl.Rows, ShouldBeEmpty)
		})
	})

	Convey("Given an unsupported extension", t, func() {
		path := writeFile(t, "hitters.json", "{}")

		Convey("Read refuses it", func() {
			_, err := source.NewReader().Read(context.Background(), model.KindHitters, path)
			So(errors.Is(err, source.ErrUnsupportedFormat), ShouldBeTrue)
		})
	})
}

func TestReader_Excel(t *testing.T) {
	Convey("Given a pitchers workbook", t, func() {
		path := writeXLSX(t, [][]any{
			{"Players", "Date", "ERA"},
			{"Gerrit Cole", "Apr 2", "1.50"},
			{"Corbin Burnes", "Apr 7"},
		})

		Convey("Read pads short rows to the header width", func() {
			tbl, err := source.NewReader().Read(context.Background(), model.KindPitchers, path)
			So(err, ShouldBeNil)
			So(tbl.Header, ShouldResemble, []string{"Players", "Date", "ERA"})
			So(len(tbl.Rows), ShouldEqual, 2)
			So(tbl.Rows[0], ShouldResemble, []string{"Gerrit Cole", "Apr 2", "1.50"})
			So(tbl.Rows[1], ShouldResemble, []string{"Corbin Burnes", "Apr 7", ""})
		})

		Convey("An unknown sheet is an error", func() {
			r := &source.Reader{Sheet: "Nope"}
			_, err := r.Read(context.Background(), model.KindPitchers, path)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoader_LoadAll(t *testing.T) {
	Convey("Given a loader", t, func() {
		ctx := context.Background()
		ld := source.NewLoader(source.WithLogger(logger.NewNop()))
		hitters := writeFile(t, "hitters.csv", hittersCSV)
		missing := filepath.Join(t.TempDir(), "schedule.csv")

		Convey("Required and present optional datasets are loaded", func() {
			pitchers := writeXLSX(t, [][]any{{"Players", "Date", "ERA"}, {"Gerrit Cole", "Apr 2", "1.50"}})
			tables, err := ld.LoadAll(ctx, []source.Spec{
				{Kind: model.KindHitters, Path: hitters},
				{Kind: model.KindPitchers, Path: pitchers, Optional: true},
			})
			So(err, ShouldBeNil)
			So(len(tables), ShouldEqual, 2)
			So(len(tables[model.KindPitchers].Rows), ShouldEqual, 1)
		})

		Convey("A missing optional file is skipped", func() {
			tables, err := ld.LoadAll(ctx, []source.Spec{
				{Kind: model.KindHitters, Path: hitters},
				{Kind: model.KindSchedule, Path: missing, Optional: true},
				{Kind: model.KindPitchers, Optional: true},
			})
			So(err, ShouldBeNil)
			So(len(tables), ShouldEqual, 1)
			_, ok := tables[model.KindSchedule]
			So(ok, ShouldBeFalse)
		})

		Convey("A missing required file fails the load", func() {
			_, err := ld.LoadAll(ctx, []source.Spec{
				{Kind: model.KindHitters, Path: hitters},
				{Kind: model.KindPitchers, Path: missing},
			})
			So(errors.Is(err, source.ErrLoadDataset), ShouldBeTrue)
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})

		Convey("A required spec without a path fails", func() {
			_, err := ld.LoadAll(ctx, []source.Spec{{Kind: model.KindHitters}})
			So(errors.Is(err, source.ErrLoadDataset), ShouldBeTrue)
		})
	})
}
