package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gnames/gnweather/internal/iofs"
	"github.com/gnames/gnweather/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "gnweather", cmd.Use,
		"Command name should be gnweather")
}

// TestGetRootCmd_Subcommands verifies all subcommands are attached.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, name := range []string{"create", "migrate", "ingest", "serve"} {
		assert.Contains(t, names, name)
	}
}

func TestGetRootCmd_Version(t *testing.T) {
	tests := []struct {
		msg  string
		flag string
	}{
		{"long flag", "--version"},
		{"short flag", "-V"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cmd := getRootCmd()
			cmd.Version = "version: v1.2.3\nbuild:   abc123"

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{v.flag})

			err := cmd.Execute()
			require.NoError(t, err)

			output := buf.String()
			assert.Contains(t, output, "v1.2.3")
			assert.Contains(t, output, "abc123")
			assert.NotContains(t, output, "gnweather version",
				"Should use custom version template")
		})
	}
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "gnweather")
	assert.Contains(t, helpText, "PostgreSQL")
	assert.Contains(t, helpText, "GNWEATHER_")
	assert.Contains(t, helpText, "ingest")
	assert.Contains(t, helpText, "serve")
}

func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE,
		"RunE should print configuration")
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")

	cmd1.Version = "version1"
	cmd2.Version = "version2"

	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.True(t,
		strings.Contains(buf.String(), "unknown") ||
			strings.Contains(err.Error(), "unknown"),
		"Error should indicate unknown command")
}

// TestConfigYAML verifies the password is masked and the original
// configuration is not changed.
func TestConfigYAML(t *testing.T) {
	c := config.New()
	c.Update([]config.Option{
		config.OptDatabasePassword("s3cret"),
		config.OptHomeDir("/home/test"),
	})

	out, err := configYAML(c)
	require.NoError(t, err)
	assert.NotContains(t, out, "s3cret")
	assert.NotContains(t, out, "/home/test")
	assert.Equal(t, "s3cret", c.Database.Password)

	var res config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, "********", res.Database.Password)
	assert.Equal(t, c.Database.Driver, res.Database.Driver)
	assert.Equal(t, c.Server.Port, res.Server.Port)
	assert.Equal(t, c.Log, res.Log)
}

// TestInitConfig verifies environment variables override config.yaml.
func TestInitConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GNWEATHER_DATABASE_DRIVER", "postgres")
	t.Setenv("GNWEATHER_SERVER_PORT", "9090")

	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))

	res, err := initConfig(home)
	require.NoError(t, err)
	assert.Equal(t, "postgres", res.Database.Driver)
	assert.Equal(t, 9090, res.Server.Port)
	assert.Equal(t, "info", res.Log.Level)
}

func TestInitConfig_Missing(t *testing.T) {
	_, err := initConfig(t.TempDir())
	assert.Error(t, err)
}
