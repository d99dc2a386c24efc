package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func findStringFlag(cmd *cli.Command, name string) *cli.StringFlag {
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func findIntFlag(cmd *cli.Command, name string) *cli.IntFlag {
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func TestAppCommands(t *testing.T) {
	app := newApp()

	for _, name := range []string{"run", "search", "embed", "batches", "stats", "purge"} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, findCommand(t, app, name))
		})
	}
}

func TestRunCommandFlags(t *testing.T) {
	app := newApp()
	cmd := findCommand(t, app, "run")

	t.Run("db is required", func(t *testing.T) {
		dbFlag := findStringFlag(cmd, "db")
		require.NotNil(t, dbFlag)
		assert.True(t, dbFlag.Required)
	})

	t.Run("feed is required", func(t *testing.T) {
		var feedFlag *cli.StringSliceFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringSliceFlag); ok && f.Name == "feed" {
				feedFlag = f
				break
			}
		}
		require.NotNil(t, feedFlag)
		assert.True(t, feedFlag.Required)
	})

	t.Run("similarity threshold defaults to 0.85", func(t *testing.T) {
		var simFlag *cli.Float64Flag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.Float64Flag); ok && f.Name == "similarity-threshold" {
				simFlag = f
				break
			}
		}
		require.NotNil(t, simFlag)
		assert.Equal(t, 0.85, simFlag.Value)
	})

	t.Run("embedding-host has default value", func(t *testing.T) {
		hostFlag := findStringFlag(cmd, "embedding-host")
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})

	t.Run("missing feed flag fails", func(t *testing.T) {
		err := app.Run([]string{"newsift", "run", "--db", "/tmp/test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feed")
	})
}

func TestEmbedCommandFlags(t *testing.T) {
	app := newApp()
	cmd := findCommand(t, app, "embed")

	t.Run("batch-size has default value of 50", func(t *testing.T) {
		batchFlag := findIntFlag(cmd, "batch-size")
		require.NotNil(t, batchFlag)
		assert.Equal(t, 50, batchFlag.Value)
	})

	t.Run("max-retries has default value of 3", func(t *testing.T) {
		retriesFlag := findIntFlag(cmd, "max-retries")
		require.NotNil(t, retriesFlag)
		assert.Equal(t, 3, retriesFlag.Value)
	})

	t.Run("missing db flag fails", func(t *testing.T) {
		err := app.Run([]string{"newsift", "embed"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("zero batch-size rejected", func(t *testing.T) {
		err := app.Run([]string{"newsift", "embed", "--db", t.TempDir(), "--batch-size", "0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch-size")
	})
}

func TestSearchCommand_RequiresQuery(t *testing.T) {
	app := newApp()
	err := app.Run([]string{"newsift", "search", "--db", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}

func TestPurgeCommandFlags(t *testing.T) {
	app := newApp()

	err := app.Run([]string{"newsift", "purge", "--db", "/tmp/test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch")
}

func TestSetupLogger(t *testing.T) {
	newTestApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				err := newTestApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				err := newTestApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newTestApp().Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := newTestApp()
		app.Action = func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		}
		err := app.Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}
