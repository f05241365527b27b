package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/mlbview/internal/adapters/http/api"
	service "github.com/okian/mlbview/internal/app"
	"github.com/okian/mlbview/internal/domain/model"
	"github.com/okian/mlbview/internal/fixtures"
	"github.com/okian/mlbview/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func serve(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	store, err := fixtures.Store(ctx)
	if err != nil {
		t.Fatalf("fixture store: %v", err)
	}
	svc := service.New(
		service.WithStore(store),
		service.WithLogger(logger.NewNop()),
		service.WithReversedStats(model.KindPitchers, []string{"ERA"}),
	)
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc, api.WithReferenceYear(fixtures.Year), api.WithLogger(logger.NewNop())).Register(ctx, mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func execute(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProbeCommands(t *testing.T) {
	Convey("Given a running service", t, func() {
		url := serve(t)

		Convey("players prints matching names", func() {
			out, err := execute("players", "--url", url, "--no-color", "soto")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Juan Soto")
		})

		Convey("select renders the series", func() {
			out, err := execute("select", "--url", url, "--no-color",
				"--dataset", "pitchers", "--player", "Gerrit Cole", "--stat", "ERA")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Gerrit Cole ERA (pitchers)")
			So(out, ShouldContainSubstring, "reversed polarity")
			So(out, ShouldContainSubstring, "total 3")
		})

		Convey("select with an explicit threshold", func() {
			out, err := execute("select", "--url", url, "--no-color",
				"--player", "Aaron Judge", "--stat", "H", "--threshold", "2.5",
				"--from", "2024-03-28", "--to", "2024-04-02")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "explicit")
		})

		Convey("select requires a player", func() {
			_, err := execute("select", "--url", url, "--stat", "H")
			So(err, ShouldNotBeNil)
		})

		Convey("verify passes on consistent data", func() {
			out, err := execute("verify", "--url", url, "--no-color", "--stat", "TB")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "all summaries consistent")
		})

		Convey("verify fails on an unknown stat", func() {
			_, err := execute("verify", "--url", url, "--no-color", "--stat", "NOPE")
			So(err, ShouldNotBeNil)
		})
	})
}
