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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/internal/ioschema"
	"github.com/gnames/gnweather/pkg/db"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the gnweather database schema from scratch.

This command:
  1. Connects to SQLite or PostgreSQL using configuration settings
  2. Checks for existing tables and prompts for confirmation
  3. Creates stations and observations tables
     (GORM AutoMigrate for PostgreSQL, DDL for SQLite)
  4. Sets "C" collation on station ids for PostgreSQL

Use --force to skip confirmation and drop existing tables.

Examples:
  gnweather create
  gnweather create --force
  gnweather create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, forceCreate)
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(cmd *cobra.Command, _ []string, force bool) error {
	ctx := context.Background()

	op, err := connect(ctx, &cfg.Database)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	ok, err := dropExisting(ctx, op, cmd.InOrStdin(), force)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !ok {
		gn.Info("Aborted. No changes made.")
		return nil
	}

	gn.Info("Creating schema...")
	if err = ioschema.NewManager(op).Create(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Database schema creation complete!")
	gn.Info("Next step: <em>gnweather ingest --data-dir DIR</em>")
	return nil
}

// dropExisting removes existing tables after confirmation. It returns
// false when the user declines.
func dropExisting(
	ctx context.Context,
	op db.Operator,
	in io.Reader,
	force bool,
) (bool, error) {
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return false, err
	}
	if !hasTables {
		return true, nil
	}

	if !force {
		gn.Warn("Database contains existing tables.")
		gn.Warn("Creating schema will drop ALL existing tables and data.")
		fmt.Print("\nDo you want to continue? (yes/no): ")

		if !confirm(in) {
			return false, nil
		}
	}

	gn.Info("Dropping all existing tables...")
	if err = op.DropAllTables(ctx); err != nil {
		return false, err
	}
	gn.Info("All tables dropped")
	return true, nil
}

func confirm(in io.Reader) bool {
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
