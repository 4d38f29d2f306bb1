package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
)

const EnvPrefix = "CAMPUS_ENERGY"

type Config struct {
	InputDir      string          `mapstructure:"input_dir" yaml:"input_dir"`
	OutputDir     string          `mapstructure:"output_dir" yaml:"output_dir"`
	BuildingsFile string          `mapstructure:"buildings_file" yaml:"buildings_file,omitempty"`
	Log           LogConfig       `mapstructure:"log" yaml:"log"`
	Ingest        IngestConfig    `mapstructure:"ingest" yaml:"ingest"`
	Columns       ColumnsConfig   `mapstructure:"columns" yaml:"columns"`
	Report        ReportConfig    `mapstructure:"report" yaml:"report"`
	Dashboard     DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	File   string `mapstructure:"file" yaml:"file"`     // relative paths land in the output dir
	Format string `mapstructure:"format" yaml:"format"` // console or json
}

type IngestConfig struct {
	Extension   string   `mapstructure:"extension" yaml:"extension"`
	Workers     int      `mapstructure:"workers" yaml:"workers"`
	DateLayouts []string `mapstructure:"date_layouts" yaml:"date_layouts"`
	UnknownSlot string   `mapstructure:"unknown_slot" yaml:"unknown_slot"`
}

// ColumnsConfig lists accepted header aliases per logical column
type ColumnsConfig struct {
	Date     []string `mapstructure:"date" yaml:"date"`
	Time     []string `mapstructure:"time" yaml:"time"`
	KWh      []string `mapstructure:"kwh" yaml:"kwh"`
	Building []string `mapstructure:"building" yaml:"building"`
}

type ReportConfig struct {
	SavingsTarget float64 `mapstructure:"savings_target" yaml:"savings_target"`
}

type DashboardConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// New returns a viper instance carrying the defaults and the environment binding.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	schema := domain.DefaultSchema()

	v.SetDefault("input_dir", "./data")
	v.SetDefault("output_dir", "./output")
	v.SetDefault("buildings_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "energy_dashboard.log")
	v.SetDefault("log.format", "console")
	v.SetDefault("ingest.extension", ".csv")
	v.SetDefault("ingest.workers", 1)
	v.SetDefault("ingest.date_layouts", schema.DateLayouts)
	v.SetDefault("ingest.unknown_slot", schema.UnknownSlot)
	for _, col := range schema.Columns {
		v.SetDefault("columns."+string(col.Name), col.Aliases)
	}
	v.SetDefault("report.savings_target", 0.125)
	v.SetDefault("dashboard.width", 60)
	v.SetDefault("dashboard.height", 10)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load merges the optional config file into v and decodes the result.
// An explicitly named file that cannot be read is a ConfigurationError.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &domain.ConfigurationError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadDotEnv loads .env style files into the process environment; missing files are skipped
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Schema turns the column and ingest settings into an ingest schema
func (c *Config) Schema() domain.Schema {
	s := domain.DefaultSchema()
	s = s.WithAliases(domain.ColumnDate, c.Columns.Date)
	s = s.WithAliases(domain.ColumnTime, c.Columns.Time)
	s = s.WithAliases(domain.ColumnKWh, c.Columns.KWh)
	s = s.WithAliases(domain.ColumnBuilding, c.Columns.Building)
	if len(c.Ingest.DateLayouts) > 0 {
		s.DateLayouts = append([]string{}, c.Ingest.DateLayouts...)
	}
	if c.Ingest.UnknownSlot != "" {
		s.UnknownSlot = c.Ingest.UnknownSlot
	}
	return s
}

func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
