package probe_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/okian/mlbview/internal/adapters/http/api"
	service "github.com/okian/mlbview/internal/app"
	"github.com/okian/mlbview/internal/domain/classify"
	"github.com/okian/mlbview/internal/fixtures"
	"github.com/okian/mlbview/internal/probe"
	"github.com/okian/mlbview/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	color.NoColor = true
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	store, err := fixtures.Store(ctx)
	if err != nil {
		t.Fatalf("fixture store: %v", err)
	}
	svc := service.New(service.WithStore(store), service.WithLogger(logger.NewNop()))
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc,
		api.WithReferenceYear(fixtures.Year),
		api.WithLogger(logger.NewNop()),
	).Register(ctx, mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		svc.Stop()
	})
	return srv
}

func TestCheck(t *testing.T) {
	Convey("Given summaries", t, func() {
		Convey("A consistent summary passes", func() {
			s := classify.Summary{
				Total: 5,
				Above: classify.Share{Count: 2, Percentage: 40},
				Below: classify.Share{Count: 1, Percentage: 20},
				At:    classify.Share{Count: 2, Percentage: 40},
			}
			So(probe.Check(s), ShouldBeNil)
		})

		Convey("Rounded thirds pass", func() {
			s := classify.Summary{
				Total: 3,
				Above: classify.Share{Count: 1, Percentage: 33.33},
				Below: classify.Share{Count: 1, Percentage: 33.33},
				At:    classify.Share{Count: 1, Percentage: 33.33},
			}
			So(probe.Check(s), ShouldBeNil)
		})

		Convey("Mismatched counts fail", func() {
			s := classify.Summary{Total: 4, Above: classify.Share{Count: 1, Percentage: 100}}
			So(errors.Is(probe.Check(s), probe.ErrInvariant), ShouldBeTrue)
		})

		Convey("Percentages far from 100 fail", func() {
			s := classify.Summary{
				Total: 2,
				Above: classify.Share{Count: 1, Percentage: 50},
				Below: classify.Share{Count: 1, Percentage: 40},
			}
			So(errors.Is(probe.Check(s), probe.ErrInvariant), ShouldBeTrue)
		})

		Convey("An empty summary must be flagged", func() {
			So(probe.Check(classify.Summary{Empty: true}), ShouldBeNil)
			So(probe.Check(classify.Summary{}), ShouldNotBeNil)
		})
	})
}

func TestClient(t *testing.T) {
	Convey("Given a running service", t, func() {
		srv := newServer(t)
		c := probe.NewClient(srv.URL+"/", 5*time.Second)
		ctx := context.Background()

		Convey("Health answers", func() {
			So(c.Health(ctx), ShouldBeNil)
		})

		Convey("Players searches by name", func() {
			matches, err := c.Players(ctx, "hitters", "judge", 5)
			So(err, ShouldBeNil)
			So(matches, ShouldNotBeEmpty)
			So(matches[0].Name, ShouldEqual, "Aaron Judge")
		})

		Convey("Select decodes a classified series", func() {
			sel, err := c.Select(ctx, probe.SelectParams{
				Dataset: "hitters", Player: "Aaron Judge", Stat: "H",
				From: "2024-03-28", To: "2024-04-02",
			})
			So(err, ShouldBeNil)
			So(len(sel.Points), ShouldEqual, 5)
			So(sel.Threshold, ShouldEqual, 2.0)
			So(sel.Summary.At.Count, ShouldEqual, 2)
			So(sel.Points[0].Date.String(), ShouldEqual, "2024-03-28")
		})

		Convey("Service errors carry the error body", func() {
			_, err := c.Select(ctx, probe.SelectParams{Dataset: "hitters", Player: "Nobody", Stat: "H"})
			So(errors.Is(err, probe.ErrRequest), ShouldBeTrue)
			var apiErr *probe.APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Status, ShouldEqual, http.StatusNotFound)
			So(apiErr.Code, ShouldEqual, "player_not_found")
		})
	})
}

func TestVerify(t *testing.T) {
	Convey("Given a running service", t, func() {
		srv := newServer(t)
		c := probe.NewClient(srv.URL, 5*time.Second)
		cfg := probe.Config{Workers: 2}

		Convey("Every hitter passes for H", func() {
			rep, err := probe.Verify(context.Background(), c, cfg, "hitters", "H")
			So(err, ShouldBeNil)
			So(rep.Players, ShouldEqual, 2)
			So(rep.Checked, ShouldEqual, 2)
			So(rep.OK(), ShouldBeTrue)

			var buf bytes.Buffer
			probe.RenderReport(&buf, rep)
			So(buf.String(), ShouldContainSubstring, "all summaries consistent")
		})

		Convey("An unknown stat is reported per player", func() {
			rep, err := probe.Verify(context.Background(), c, cfg, "pitchers", "NOPE")
			So(err, ShouldBeNil)
			So(rep.OK(), ShouldBeFalse)
			So(len(rep.Failures), ShouldEqual, 2)
			So(rep.Failures[0].Player, ShouldEqual, "Corbin Burnes")

			var buf bytes.Buffer
			probe.RenderReport(&buf, rep)
			So(buf.String(), ShouldContainSubstring, "FAIL Corbin Burnes")
		})

		Convey("An unknown dataset fails the listing", func() {
			_, err := probe.Verify(context.Background(), c, cfg, "umpires", "H")
			So(errors.Is(err, probe.ErrRequest), ShouldBeTrue)
		})
	})
}

func TestRenderSelection(t *testing.T) {
	Convey("Given a selection", t, func() {
		sel := service.Selection{
			Player: "Aaron Judge", Stat: "H", Dataset: "hitters",
			Threshold: 2, ThresholdSource: service.ThresholdMedian,
			Points: []service.Point{
				{RawDate: "TBD", Value: 9, Bucket: classify.Above},
				{RawDate: "Mar 28", Value: 1, Bucket: classify.Below},
			},
			Summary: classify.Summary{
				Total: 2,
				Above: classify.Share{Count: 1, Percentage: 50},
				Below: classify.Share{Count: 1, Percentage: 50},
			},
		}

		Convey("Points and the summary are printed", func() {
			var buf bytes.Buffer
			probe.RenderSelection(&buf, sel)
			out := buf.String()
			So(out, ShouldContainSubstring, "Aaron Judge H (hitters)")
			So(out, ShouldContainSubstring, "normal polarity")
			So(out, ShouldContainSubstring, "TBD")
			So(out, ShouldContainSubstring, "above 1 (50.00%)")
		})

		Convey("An empty selection says so", func() {
			sel.Empty = true
			var buf bytes.Buffer
			probe.RenderSelection(&buf, sel)
			So(buf.String(), ShouldContainSubstring, "no data")
		})
	})
}
