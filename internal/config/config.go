// internal/config/config.go
//
// Run configuration for entra-bulk. Every setting has a default, so running
// with no config file, no environment and no flags reads user_data.csv and
// writes bulk_create.csv for penguincoding.org.
//
// Sources, lowest precedence first:
//  1. Defaults
//  2. bulkcreate.yaml (or the file named by -config)
//  3. BULKCREATE_* environment variables (a .env file may supply them)
//  4. Command-line flags, layered with Apply
//
// Load does not validate. Call Finalize once every layer is applied, so a
// flag can still correct a bad value from the file or the environment.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	Application = "entra-bulk"
	Description = "Generate Entra ID bulk-create CSV files from a roster"
	WebSite     = "https://github.com/kingrea/entra-bulk"

	// DefaultFile is the config file looked up in the working directory.
	DefaultFile = "bulkcreate.yaml"

	DefaultInput         = "user_data.csv"
	DefaultOutput        = "bulk_create.csv"
	DefaultDomain        = "penguincoding.org"
	DefaultPrompt        = "auto"
	DefaultNameColumn    = "DisplayName"
	DefaultLicenseColumn = "LicenseSkuId"
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
)

const defaultConfigYAML = `# entra-bulk configuration
# Paths are relative to this file.
input: user_data.csv
output: bulk_create.csv

# Appended to every generated user principal name.
domain: penguincoding.org

# How long names are disambiguated: auto, console or tui.
prompt: auto

columns:
  display_name: DisplayName
  license: LicenseSkuId

licenses:
  # When true the license column holds license names (for example
  # "Office 365 A1 for faculty") which are translated to SKU ids.
  resolve_names: false

log:
  level: warn
  format: text
  # file: logs/entra-bulk.log
`

// ColumnsConfig names the roster columns that are read.
type ColumnsConfig struct {
	DisplayName string `yaml:"display_name" env:"BULKCREATE_NAME_COLUMN"`
	License     string `yaml:"license" env:"BULKCREATE_LICENSE_COLUMN"`
}

// LicenseConfig controls how the license column is interpreted.
type LicenseConfig struct {
	ResolveNames bool `yaml:"resolve_names" env:"BULKCREATE_RESOLVE_LICENSE_NAMES"`
}

// LogConfig controls diagnostics output.
type LogConfig struct {
	Level  string `yaml:"level" env:"BULKCREATE_LOG_LEVEL"`
	Format string `yaml:"format" env:"BULKCREATE_LOG_FORMAT"`
	File   string `yaml:"file,omitempty" env:"BULKCREATE_LOG_FILE"`
}

// Config holds everything a run needs.
type Config struct {
	Input    string        `yaml:"input" env:"BULKCREATE_INPUT"`
	Output   string        `yaml:"output" env:"BULKCREATE_OUTPUT"`
	Domain   string        `yaml:"domain" env:"BULKCREATE_DOMAIN"`
	Prompt   string        `yaml:"prompt" env:"BULKCREATE_PROMPT"`
	Columns  ColumnsConfig `yaml:"columns"`
	Licenses LicenseConfig `yaml:"licenses"`
	Log      LogConfig     `yaml:"log"`

	// Source is the config file that was read, if any.
	Source string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input:  DefaultInput,
		Output: DefaultOutput,
		Domain: DefaultDomain,
		Prompt: DefaultPrompt,
		Columns: ColumnsConfig{
			DisplayName: DefaultNameColumn,
			License:     DefaultLicenseColumn,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: stat %s: %w", p, err)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

// Load builds a configuration from defaults, the YAML file at path and the
// environment. An empty path means DefaultFile, which may be absent; a path
// given explicitly must exist. The result is not yet validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

// Overrides holds command-line values. A nil field was not given.
type Overrides struct {
	Input               *string
	Output              *string
	Domain              *string
	Prompt              *string
	LicenseColumn       *string
	ResolveLicenseNames *bool
	LogFile             *string
	LogFormat           *string
	Debug               bool
}

// Apply layers o over c. Call Finalize afterwards.
func (c *Config) Apply(o Overrides) {
	setString(&c.Input, o.Input)
	setString(&c.Output, o.Output)
	setString(&c.Domain, o.Domain)
	setString(&c.Prompt, o.Prompt)
	setString(&c.Columns.License, o.LicenseColumn)
	setString(&c.Log.File, o.LogFile)
	setString(&c.Log.Format, o.LogFormat)
	if o.ResolveLicenseNames != nil {
		c.Licenses.ResolveNames = *o.ResolveLicenseNames
	}
	if o.Debug {
		c.Log.Level = "debug"
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := *Default()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	base := filepath.Dir(path)
	parsed.Input = resolvePath(base, parsed.Input)
	parsed.Output = resolvePath(base, parsed.Output)
	parsed.Log.File = resolvePath(base, parsed.Log.File)
	parsed.Source = path

	*c = parsed
	return nil
}

// Finalize normalizes and validates the configuration. Call it again after
// applying command-line overrides.
func (c *Config) Finalize() error {
	c.normalize()
	if err := c.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Output = strings.TrimSpace(c.Output)
	c.Domain = strings.TrimPrefix(strings.TrimSpace(c.Domain), "@")
	c.Prompt = strings.ToLower(strings.TrimSpace(c.Prompt))
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	c.Columns.DisplayName = strings.TrimSpace(c.Columns.DisplayName)
	if c.Columns.DisplayName == "" {
		c.Columns.DisplayName = DefaultNameColumn
	}
	c.Columns.License = strings.TrimSpace(c.Columns.License)
	if c.Columns.License == "" {
		c.Columns.License = DefaultLicenseColumn
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	c.Log.File = strings.TrimSpace(c.Log.File)
}

func (c *Config) validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return fmt.Errorf("output %s would overwrite the input roster", c.Output)
	}
	if c.Domain == "" {
		return fmt.Errorf("domain is required")
	}
	if strings.ContainsAny(c.Domain, " \t@") {
		return fmt.Errorf("domain %q must be a bare host name", c.Domain)
	}
	switch c.Prompt {
	case "auto", "console", "tui":
	default:
		return fmt.Errorf("prompt must be 'auto', 'console' or 'tui'")
	}
	if c.Columns.DisplayName == c.Columns.License {
		return fmt.Errorf("columns.display_name and columns.license must differ")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// WriteDefault creates the commented default config at path. An existing
// file is left alone and reported through the bool result.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("config: ensure dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return true, nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) || base == "" || base == "." {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
