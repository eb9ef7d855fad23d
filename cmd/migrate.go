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

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/internal/ioschema"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
func getMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate database schema to latest version",
		Long: `Migrate updates the database schema to the latest version.

This command:
  1. Connects to the database using configuration settings
  2. Checks if database schema exists
  3. Adds missing tables, columns and indexes
  4. Preserves existing observations (non-destructive)

Running migrate twice is safe.

Examples:
  gnweather migrate`,
		RunE: runMigrate,
	}

	return migrateCmd
}

func runMigrate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op, err := connect(ctx, &cfg.Database)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err = requireSchema(ctx, op, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Migrating schema to latest version...")
	if err = ioschema.NewManager(op).Migrate(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Schema is now up to date.")
	return nil
}
