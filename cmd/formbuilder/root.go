package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

const (
	envAddr      = "FORMBUILDER_ADDR"
	envContainer = "FORMBUILDER_CONTAINER"
	envLogLevel  = "FORMBUILDER_LOG_LEVEL"

	flagLogLevel = "log-level"
	flagEnvFile  = "env-file"
)

// app carries the state shared by every subcommand. Tests swap the prompt
// driver and environment lookup.
type app struct {
	logger *slog.Logger
	driver tui.PromptDriver
	getenv func(string) string
}

func newApp() *app {
	return &app{getenv: os.Getenv}
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formbuilder [sub-command]",
		Short: "Seal, render, validate and serve form definitions",
		Long: `formbuilder works with form definitions produced by the drag-and-drop
form authoring tool. A definition is sealed into a container (the serialized
structure plus its hash) which can then be rendered as HTML, XML, JSON or an
OpenAPI schema, used to validate submissions, filled in the terminal or served
over HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	cmd.PersistentFlags().String(flagLogLevel, "", `sets the logging level (debug, info, warn, error); defaults to $`+envLogLevel+` or warn`)
	cmd.PersistentFlags().String(flagEnvFile, ".env", `dotenv file loaded before reading `+envAddr+`, `+envContainer+` and `+envLogLevel)

	cmd.AddCommand(newStoreCommand(a))
	cmd.AddCommand(newRenderCommand(a))
	cmd.AddCommand(newValidateCommand(a))
	cmd.AddCommand(newFillCommand(a))
	cmd.AddCommand(newServeCommand(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	envFile, err := cmd.Flags().GetString(flagEnvFile)
	if err != nil {
		return err
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %q: %w", envFile, err)
		}
	}

	levelName, err := cmd.Flags().GetString(flagLogLevel)
	if err != nil {
		return err
	}
	if levelName == "" {
		levelName = a.env(envLogLevel)
	}
	level, err := parseLevel(levelName)
	if err != nil {
		return err
	}

	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) env(key string) string {
	if a.getenv == nil {
		return os.Getenv(key)
	}
	return a.getenv(key)
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", name)
	}
}
