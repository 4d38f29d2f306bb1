package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
	"github.com/open5nippet/Capstone-Project-1/pkg/services/config"
	"github.com/open5nippet/Capstone-Project-1/pkg/services/ingest"
)

// configFlags are shared by every command that reads the effective configuration
type configFlags struct {
	configPath string
	envFile    string
}

func (cf *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cf.configPath, "config", "c", "", "Path to a yaml, toml or json config file")
	cmd.Flags().StringVar(&cf.envFile, "env-file", ".env", "Path to a .env file with CAMPUS_ENERGY_* variables")
}

// load resolves the configuration; bindings map config keys to flag names of cmd
func (cf *configFlags) load(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	if err := config.LoadDotEnv(cf.envFile); err != nil {
		return nil, &domain.ConfigurationError{Path: cf.envFile, Err: err}
	}

	v := config.New()
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return config.Load(v, cf.configPath)
}

func newIngestor(cfg *config.Config, logger zerolog.Logger) (*ingest.Ingestor, error) {
	opts := ingest.Options{
		Extension: cfg.Ingest.Extension,
		Schema:    cfg.Schema(),
		Workers:   cfg.Ingest.Workers,
	}
	if cfg.BuildingsFile != "" {
		registry, err := config.NewBuildingRegistry(cfg.BuildingsFile)
		if err != nil {
			return nil, &domain.ConfigurationError{Path: cfg.BuildingsFile, Err: err}
		}
		logger.Debug().
			Str("file", cfg.BuildingsFile).
			Strs("stems", registry.Stems()).
			Msg("building registry loaded")
		opts.Buildings = registry
	}
	return ingest.New(opts, logger), nil
}

// logFilePath places relative log files inside the output directory
func logFilePath(cfg *config.Config) string {
	if cfg.Log.File == "" || filepath.IsAbs(cfg.Log.File) {
		return cfg.Log.File
	}
	return filepath.Join(cfg.OutputDir, cfg.Log.File)
}
