package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"metric-mapper/internal/analyze"
	"metric-mapper/internal/catalog"
	"metric-mapper/internal/editor"
	"metric-mapper/internal/logging"
	"metric-mapper/internal/settings"
)

// Environment fallbacks for the collaborator paths, read from the process
// environment or a .env file in the working directory.
const (
	envSettings = "METRIC_MAPPER_SETTINGS"
	envCatalog  = "METRIC_MAPPER_CATALOG"
	envFile     = ".env"
)

type globalOptions struct {
	settingsPath string
	catalogPath  string
	envFile      string
	logLevel     string
	color        bool
	json         bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "metric-mapper",
		Short:         "Map source-code metrics onto city building attributes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.loadEnv()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.settingsPath, "settings", "", "settings file with the displayed attributes (env "+envSettings+")")
	flags.StringVar(&opts.catalogPath, "catalog", "", "property catalog of the analysis data: a YAML file or a Go package of record types (env "+envCatalog+")")
	flags.StringVar(&opts.envFile, "env-file", envFile, "optional dotenv file with "+envSettings+" and "+envCatalog)
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.color, "color", false, "colored log output")
	flags.BoolVar(&opts.json, "log-json", false, "JSON log output")

	root.AddCommand(
		newMatrixCmd(),
		newEditCmd(opts),
		newSuggestCmd(opts),
		newCheckCmd(opts),
	)

	return root
}

// loadEnv fills unset paths from the dotenv file and the environment.
// A missing dotenv file is not an error.
func (o *globalOptions) loadEnv() error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if o.settingsPath == "" {
		o.settingsPath = os.Getenv(envSettings)
	}

	if o.catalogPath == "" {
		o.catalogPath = os.Getenv(envCatalog)
	}

	return nil
}

func (o *globalOptions) logger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}

	return logging.New(logging.Config{
		Writer: cmd.ErrOrStderr(),
		Level:  level,
		Color:  o.color,
		JSON:   o.json,
	}), nil
}

// openSession opens an editing session over the configured collaborators.
func (o *globalOptions) openSession(cmd *cobra.Command) (*editor.Session, error) {
	log, err := o.logger(cmd)
	if err != nil {
		return nil, err
	}

	sessionOpts := editor.Options{Logger: log, DataPath: o.catalogPath}

	if o.settingsPath != "" {
		sessionOpts.Settings = settings.File(o.settingsPath)
	}

	if o.catalogPath != "" {
		sessionOpts.Collector = collectorFor(o.catalogPath)
	}

	return editor.Open(sessionOpts), nil
}

// collectorFor picks the Go source collector for package directories and
// patterns, and the YAML catalog reader otherwise.
func collectorFor(path string) catalog.Collector {
	if strings.Contains(path, "...") {
		return analyze.Collector{}
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return analyze.Collector{}
	}

	return catalog.FileCollector{}
}
