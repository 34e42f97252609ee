package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/example/annoboard/internal/core/extract"
	"github.com/example/annoboard/internal/core/link"
	"github.com/example/annoboard/internal/core/markdown"
)

// Backend names
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

const (
	dirName    = ".annoboard"
	fileName   = "config"
	fileExt    = "yaml"
	envPrefix  = "ANNOBOARD"
	dbFileName = "annoboard.db"
)

// Config is the annoboard configuration, read from .annoboard/config.yaml.
type Config struct {
	Backend      string           `mapstructure:"backend" yaml:"backend"`
	DataDir      string           `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	DBPath       string           `mapstructure:"db_path" yaml:"db_path,omitempty"`
	PapersFile   string           `mapstructure:"papers_file" yaml:"papers_file,omitempty"`
	CurrentBoard string           `mapstructure:"current_board" yaml:"current_board,omitempty"`
	LogLevel     string           `mapstructure:"log_level" yaml:"log_level"`
	Extraction   ExtractionConfig `mapstructure:"extraction" yaml:"extraction"`
	Export       ExportConfig     `mapstructure:"export" yaml:"export"`
}

// ExtractionConfig tunes the annotation extractor.
type ExtractionConfig struct {
	Scheme         string `mapstructure:"scheme" yaml:"scheme"`
	Window         int    `mapstructure:"window" yaml:"window"`
	MinQuoteLength int    `mapstructure:"min_quote_length" yaml:"min_quote_length"`
}

// ExportConfig tunes the Markdown exporter.
type ExportConfig struct {
	CitationLabel string `mapstructure:"citation_label" yaml:"citation_label"`
}

// ExtractOptions converts the extraction settings for the extractor.
func (c *Config) ExtractOptions() extract.Options {
	return extract.Options{
		Scheme:         c.Extraction.Scheme,
		Window:         c.Extraction.Window,
		MinQuoteLength: c.Extraction.MinQuoteLength,
	}
}

// MarkdownOptions converts the export settings for the exporter.
func (c *Config) MarkdownOptions() markdown.Options {
	return markdown.Options{CitationLabel: c.Export.CitationLabel}
}

// Dir returns the .annoboard directory under dir.
func Dir(dir string) string {
	return filepath.Join(dir, dirName)
}

// Path returns the config file path under dir.
func Path(dir string) string {
	return filepath.Join(Dir(dir), fileName+"."+fileExt)
}

// Defaults returns the default settings. Paths derived from the project
// directory are left empty; LoadConfig fills them in.
func Defaults() *Config {
	return &Config{
		Backend:  BackendSQLite,
		LogLevel: "warn",
		Extraction: ExtractionConfig{
			Scheme:         link.DefaultScheme,
			Window:         extract.DefaultWindow,
			MinQuoteLength: extract.DefaultMinQuoteLength,
		},
		Export: ExportConfig{CitationLabel: markdown.DefaultCitationLabel},
	}
}

func setDefaults(v *viper.Viper, dir string) {
	d := Defaults()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("data_dir", Dir(dir))
	v.SetDefault("db_path", "")
	v.SetDefault("papers_file", "")
	v.SetDefault("current_board", "")
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("extraction.scheme", d.Extraction.Scheme)
	v.SetDefault("extraction.window", d.Extraction.Window)
	v.SetDefault("extraction.min_quote_length", d.Extraction.MinQuoteLength)
	v.SetDefault("export.citation_label", d.Export.CitationLabel)
}

// LoadConfig reads .annoboard/config.yaml from dir.
// A missing file is not an error: defaults and ANNOBOARD_* env vars apply.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType(fileExt)
	v.AddConfigPath(Dir(dir))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, dbFileName)
	}
	return &cfg, nil
}

// Validate checks settings that have a fixed set of valid values.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("invalid backend %q: must be %s or %s", c.Backend, BackendSQLite, BackendFile)
	}
	if c.Extraction.Window < 0 || c.Extraction.MinQuoteLength < 0 {
		return fmt.Errorf("extraction window and min_quote_length must not be negative")
	}
	return nil
}

// SaveConfig writes cfg as config.yaml to dir, replacing the file. Empty
// paths are omitted so they keep resolving against dir.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(Dir(dir), 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", dirName, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// SetCurrentBoard records the current board in config.yaml under dir. Only
// that key changes: other keys in the file are kept as written, and
// defaults or ANNOBOARD_* overrides are never persisted.
func SetCurrentBoard(dir, boardID string) error {
	return updateFile(dir, map[string]any{"current_board": boardID})
}

// updateFile sets keys in config.yaml through a viper instance that sees
// only the file.
func updateFile(dir string, values map[string]any) error {
	v := viper.New()
	v.SetConfigFile(Path(dir))

	if _, err := os.Stat(Path(dir)); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read config: %w", err)
	}

	for key, value := range values {
		v.Set(key, value)
	}

	if err := os.MkdirAll(Dir(dir), 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", dirName, err)
	}
	if err := v.WriteConfigAs(Path(dir)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
