package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/gitcontrib/internal/gitref"
	"github.com/huangsam/gitcontrib/schema"
)

// Default values for configuration.
const (
	DefaultOutputFile  = "contributors.csv"
	DefaultResultLimit = 0 // 0 = all contributors
	MaxResultLimit     = 10000
)

// dateInputFormat is the accepted shape for --since/--until values.
const dateInputFormat = "2006-01-02"

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	RepoRef   string // The reference exactly as the user supplied it
	CloneURL  string // Canonical clone target after normalization
	Branch    string // Revision to analyze; defaults to HEAD
	PathScope string // Optional subdirectory restriction
	Since     string // Optional inclusive lower date bound (YYYY-MM-DD)
	Until     string // Optional inclusive upper date bound (YYYY-MM-DD)

	LineStats   bool   // Collect per-contributor line statistics (slower)
	ResultLimit int    // Maximum contributors to report (0 = all)
	LinkedIn    bool   // Append a profile-search-link column to reports
	CacheDir    string // Root directory for cached repository mirrors

	Output     schema.OutputMode
	OutputFile string

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored output in table rendering
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoRefStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Branch       string `mapstructure:"branch"`
	Scope        string `mapstructure:"scope"`
	Since        string `mapstructure:"since"`
	Until        string `mapstructure:"until"`
	LineStats    bool   `mapstructure:"line-stats"`
	Limit        int    `mapstructure:"limit"`
	LinkedIn     bool   `mapstructure:"linkedin"`
	CacheDir     string `mapstructure:"cache-dir"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	RunBackend   string `mapstructure:"run-backend"`
	RunDBConnect string `mapstructure:"run-db-connect"`
	Color        string `mapstructure:"color"`
}

// Clone returns a copy of the config that can be mutated per request.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// HistoryScope derives the stream constraints from the validated config.
func (c *Config) HistoryScope() HistoryScope {
	return HistoryScope{
		Branch:    c.Branch,
		Since:     c.Since,
		Until:     c.Until,
		PathScope: c.PathScope,
	}
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processRepoRef(cfg, input); err != nil {
		return err
	}
	if err := processDateRange(cfg, input); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// processRepoRef normalizes the repository reference and merges the detected
// branch and path scope, overriding only what the caller did not supply.
func processRepoRef(cfg *Config, input *ConfigRawInput) error {
	if strings.TrimSpace(input.RepoRefStr) == "" {
		return fmt.Errorf("repository reference is required")
	}
	cfg.RepoRef = input.RepoRefStr

	ref := gitref.Normalize(input.RepoRefStr)
	cfg.CloneURL = ref.CloneURL

	// Branch: explicit flag wins, then the URL, then HEAD.
	switch {
	case input.Branch != "":
		cfg.Branch = input.Branch
	case ref.Branch != "":
		cfg.Branch = ref.Branch
	default:
		cfg.Branch = schema.DefaultBranch
	}

	// Scope: a URL-detected subdirectory nests under an explicit one.
	switch {
	case input.Scope != "" && ref.PathScope != "":
		cfg.PathScope = input.Scope + "/" + ref.PathScope
	case input.Scope != "":
		cfg.PathScope = input.Scope
	default:
		cfg.PathScope = ref.PathScope
	}

	return nil
}

// processDateRange validates the optional since/until bounds.
func processDateRange(cfg *Config, input *ConfigRawInput) error {
	if input.Since != "" {
		if _, err := time.Parse(dateInputFormat, input.Since); err != nil {
			return fmt.Errorf("invalid since date %q: expected YYYY-MM-DD", input.Since)
		}
		cfg.Since = input.Since
	}
	if input.Until != "" {
		if _, err := time.Parse(dateInputFormat, input.Until); err != nil {
			return fmt.Errorf("invalid until date %q: expected YYYY-MM-DD", input.Until)
		}
		cfg.Until = input.Until
	}
	if cfg.Since != "" && cfg.Until != "" && cfg.Since > cfg.Until {
		return fmt.Errorf("since date %s is after until date %s", cfg.Since, cfg.Until)
	}
	return nil
}

// validateSimpleInputs handles the flat fields that only need bounds and
// enum checks.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d", MaxResultLimit)
	}
	cfg.ResultLimit = input.Limit

	output := schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q: must be table, csv, json, or parquet", input.Output)
	}
	cfg.Output = output

	cfg.OutputFile = input.OutputFile
	if cfg.OutputFile == "" && (output == schema.CSVOut || output == schema.ParquetOut) {
		cfg.OutputFile = DefaultOutputFile
		if output == schema.ParquetOut {
			cfg.OutputFile = "contributors.parquet"
		}
	}

	backend := schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid run backend %q: must be sqlite, mysql, postgresql, or none", input.RunBackend)
	}
	if err := ValidateDatabaseConnectionString(backend, input.RunDBConnect); err != nil {
		return err
	}
	cfg.RunBackend = backend
	cfg.RunDBConnect = input.RunDBConnect

	cfg.LineStats = input.LineStats
	cfg.LinkedIn = input.LinkedIn

	cfg.CacheDir = input.CacheDir
	if cfg.CacheDir == "" {
		cfg.CacheDir = GetDefaultCacheDir()
	}

	cfg.UseColors = parseBoolFlag(input.Color, true)

	return nil
}

// ValidateDatabaseConnectionString checks backend/connection string pairing.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required for the %s backend", backend)
		}
	default:
		// SQLite defaults to a file under the home directory; none ignores it.
	}
	return nil
}

// parseBoolFlag interprets yes/no style string flags with a default.
func parseBoolFlag(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
