package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gnames/gnweather/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCreateCmd_Exists verifies getCreateCmd returns
// a valid command.
func TestGetCreateCmd_Exists(t *testing.T) {
	cmd := getCreateCmd()
	require.NotNil(t, cmd, "Create command should exist")
	assert.Equal(t, "create", cmd.Use)
	assert.Contains(t, cmd.Short, "schema")
	assert.NotNil(t, cmd.RunE)
}

// TestGetCreateCmd_ForceFlag verifies --force flag exists.
func TestGetCreateCmd_ForceFlag(t *testing.T) {
	cmd := getCreateCmd()

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag, "--force flag should exist")

	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
	assert.Contains(t, forceFlag.Usage, "drop")
}

// TestGetCreateCmd_HelpText verifies help text content.
func TestGetCreateCmd_HelpText(t *testing.T) {
	cmd := getCreateCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "--force")
	assert.Contains(t, helpText, "Examples:")
	assert.Contains(t, helpText, "gnweather create -f")
	assert.Contains(t, helpText, "collation")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		exp   bool
	}{
		{"yes", "yes\n", true},
		{"y", "y\n", true},
		{"upper case", "YES\n", true},
		{"spaces", "  y  \n", true},
		{"no newline", "yes", true},
		{"no", "no\n", false},
		{"other", "sure\n", false},
		{"empty", "", false},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert.Equal(t, v.exp, confirm(strings.NewReader(v.input)))
		})
	}
}

func TestDropExisting(t *testing.T) {
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		op := iotesting.ConnectSQLite(t)
		ok, err := dropExisting(ctx, op, strings.NewReader(""), false)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("declined", func(t *testing.T) {
		op := iotesting.SetupSQLite(t)
		ok, err := dropExisting(ctx, op, strings.NewReader("no\n"), false)
		require.NoError(t, err)
		assert.False(t, ok)

		has, err := op.HasTables(ctx)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("confirmed", func(t *testing.T) {
		op := iotesting.SetupSQLite(t)
		ok, err := dropExisting(ctx, op, strings.NewReader("yes\n"), false)
		require.NoError(t, err)
		assert.True(t, ok)

		has, err := op.HasTables(ctx)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("forced", func(t *testing.T) {
		op := iotesting.SetupSQLite(t)
		ok, err := dropExisting(ctx, op, strings.NewReader(""), true)
		require.NoError(t, err)
		assert.True(t, ok)

		has, err := op.HasTables(ctx)
		require.NoError(t, err)
		assert.False(t, has)
	})
}
