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

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/internal/iodb"
	"github.com/gnames/gnweather/internal/ioschema"
	"github.com/gnames/gnweather/pkg/config"
	"github.com/gnames/gnweather/pkg/db"
)

// connect opens the storage backend selected in the configuration.
func connect(ctx context.Context, dbCfg *config.DatabaseConfig) (db.Operator, error) {
	op, err := iodb.New(dbCfg.Driver)
	if err != nil {
		return nil, err
	}
	if err = op.Connect(ctx, dbCfg); err != nil {
		return nil, err
	}

	gn.Info("Connected to database: <em>%s</em>", target(dbCfg))
	return op, nil
}

// requireSchema fails when the database has no tables yet.
func requireSchema(ctx context.Context, op db.Operator, dbCfg *config.DatabaseConfig) error {
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		return iodb.EmptyDatabaseError(target(dbCfg))
	}
	return nil
}

// ensureSchema creates the tables of an empty database. The schema of
// an existing database is left as it is.
func ensureSchema(ctx context.Context, op db.Operator, dbCfg *config.DatabaseConfig) error {
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if hasTables {
		return nil
	}

	gn.Info("Database <em>%s</em> is empty, creating schema", target(dbCfg))
	return ioschema.NewManager(op).Migrate(ctx)
}

// target describes the database for user-facing messages.
func target(dbCfg *config.DatabaseConfig) string {
	if dbCfg.Driver == iodb.DriverSQLite {
		return dbCfg.Path
	}
	return fmt.Sprintf("%s@%s:%d/%s",
		dbCfg.User, dbCfg.Host, dbCfg.Port, dbCfg.Database)
}
