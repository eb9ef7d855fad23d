/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/internal/iohttp"
	"github.com/gnames/gnweather/internal/iometrics"
	"github.com/gnames/gnweather/internal/iostore"
	"github.com/gnames/gnweather/pkg/query"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// appMetrics registers collectors on the default registry once per process.
var appMetrics = sync.OnceValue(func() *iometrics.Metrics {
	return iometrics.New(prometheus.DefaultRegisterer)
})

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve weather observations over HTTP",
		Long: `Serve starts the JSON API on top of the ingested observations.

Endpoints:
  GET /api/health
  GET /api/weather?station_id=&date_from=&date_to=&page=&page_size=
  GET /api/weather/stats?station_id=&year=&page=&page_size=
  GET /metrics

Dates use the YYYY-MM-DD format. Pages start at 1, the default page
size is 100 and the maximum is 1000.

The server stops gracefully on SIGINT or SIGTERM.

Examples:
  gnweather serve
  gnweather serve --port 8000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runServe(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().IntP("port", "p", 0,
		"port of the HTTP API (default from configuration)")

	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg.Update(flagOptions(cmd, portFlag))

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	op, err := connect(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = ensureSchema(ctx, op, &cfg.Database); err != nil {
		return err
	}

	st, err := iostore.New(op, cfg.Database.BatchSize)
	if err != nil {
		return err
	}

	srv := iohttp.NewServer(
		fmt.Sprintf(":%d", cfg.Server.Port),
		query.New(st),
		iohttp.WithTimeout(
			time.Duration(cfg.Server.RequestTimeoutSec)*time.Second,
		),
		iohttp.WithMetrics(appMetrics(), prometheus.DefaultGatherer),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(
			context.Background(), shutdownTimeout,
		)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	gn.Info("Serving on <em>http://localhost:%d</em>", cfg.Server.Port)
	if err = g.Wait(); err != nil {
		return err
	}

	gn.Info("Server stopped.")
	return nil
}
