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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnweather/internal/ioingest"
	"github.com/gnames/gnweather/internal/ioschema"
	"github.com/gnames/gnweather/internal/iostore"
	"github.com/spf13/cobra"
)

// getIngestCmd returns the ingest command.
func getIngestCmd() *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest station files into the database",
		Long: `Ingest loads daily observations from a directory of station files.

Every file with the .txt extension holds observations of one station,
the file name without extension is the station id. Each line has four
tab-separated fields:

  YYYYMMDD  TMAX  TMIN  PRCP

Temperatures are in tenths of a degree Celsius, precipitation in tenths
of a millimeter, -9999 marks a missing value.

The whole run is one transaction: a malformed line aborts the run and
leaves the database unchanged. Repeated runs over the same files do not
change stored data.

Examples:
  gnweather ingest --data-dir ./wx_data
  gnweather ingest -d ./wx_data --no-progress`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runIngest(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	ingestCmd.Flags().StringP("data-dir", "d", "",
		"directory with station files")
	ingestCmd.Flags().Bool("no-progress", false,
		"do not show the progress bar")
	_ = ingestCmd.MarkFlagRequired("data-dir")

	return ingestCmd
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg.Update(flagOptions(cmd, dataDirFlag, progressFlag))

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

	in := ioingest.New(cfg, st,
		ioingest.OptMetrics(appMetrics()),
	)

	gn.Info("Ingesting station files from <em>%s</em>", cfg.Ingest.DataDir)
	start := time.Now()
	count, err := in.Ingest(ctx, cfg.Ingest.DataDir)
	if err != nil {
		return err
	}
	end := time.Now()

	if count > 0 {
		if err = ioschema.NewManager(op).Analyze(ctx); err != nil {
			return err
		}
	}

	gn.Info("Processed <em>%s</em> records", humanize.Comma(int64(count)))
	gn.Info("Started:  %s", start.Format(time.DateTime))
	gn.Info("Finished: %s", end.Format(time.DateTime))
	gn.Info("Elapsed:  %s", gnfmt.TimeString(end.Sub(start).Seconds()))
	return nil
}
