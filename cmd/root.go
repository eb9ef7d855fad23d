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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/internal/iofs"
	"github.com/gnames/gnweather/internal/iologger"
	app "github.com/gnames/gnweather/pkg"
	"github.com/gnames/gnweather/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnweather",
		Short:   "Gnweather ingests and serves daily weather observations",
		Long: `Gnweather loads per-station daily weather records into SQLite or
PostgreSQL and serves them through a paginated JSON API.

Features:
  - Schema Management: create and migrate the database schema
  - Ingestion: idempotent import of station files (YYYYMMDD, tmax, tmin,
    prcp in tenths of a unit, -9999 for a missing value)
  - Query API: observations and yearly statistics per station

Environment variables use the GNWEATHER_ prefix, for example
GNWEATHER_DATABASE_DRIVER=postgres or GNWEATHER_LOG_LEVEL=debug.

Without a subcommand gnweather prints the effective configuration.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for gnweather")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getIngestCmd(),
		getServeCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// logging before the config is known
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})
	if cfg.Database.Path == "" {
		cfg.Update([]config.Option{
			config.OptDatabasePath(config.SQLitePath(homeDir)),
		})
	}

	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

// runRoot prints the effective configuration.
func runRoot(cmd *cobra.Command, _ []string) error {
	out, err := configYAML(cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Configuration file: <em>%s</em>", config.ConfigFilePath(homeDir))
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// configYAML renders persistent settings with the password masked.
func configYAML(c *config.Config) (string, error) {
	show := *c
	if show.Database.Password != "" {
		show.Database.Password = "********"
	}
	res, err := yaml.Marshal(show)
	if err != nil {
		return "", err
	}
	return string(res), nil
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// initEnvVars binds the environment variables that match the persistent
// fields of config.ToOptions().
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("GNWEATHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	v.AutomaticEnv()
}

var envKeys = []string{
	"database.driver",
	"database.path",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.database",
	"database.ssl_mode",
	"database.batch_size",
	"server.port",
	"server.request_timeout_sec",
	"log.level",
	"log.format",
	"log.destination",
}
