package contract

import (
	"testing"

	"github.com/huangsam/gitcontrib/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProcessAndValidate tests the raw-input to config pipeline.
func TestProcessAndValidate(t *testing.T) {
	t.Run("minimal local reference", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{RepoRefStr: ".", Output: "table"}

		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, ".", cfg.RepoRef)
		assert.Equal(t, ".", cfg.CloneURL)
		assert.Equal(t, schema.DefaultBranch, cfg.Branch)
		assert.Equal(t, schema.TableOut, cfg.Output)
		assert.Equal(t, schema.NoneBackend, cfg.RunBackend)
		assert.NotEmpty(t, cfg.CacheDir)
	})

	t.Run("missing repo reference", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{RepoRefStr: "   ", Output: "table"}
		require.Error(t, ProcessAndValidate(cfg, input))
	})

	t.Run("url branch and scope extracted", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{
			RepoRefStr: "https://github.com/llvm/llvm-project/tree/main/clang",
			Output:     "table",
		}

		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, "https://github.com/llvm/llvm-project.git", cfg.CloneURL)
		assert.Equal(t, "main", cfg.Branch)
		assert.Equal(t, "clang", cfg.PathScope)
	})

	t.Run("explicit branch beats url branch", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{
			RepoRefStr: "https://github.com/llvm/llvm-project/tree/main/clang",
			Branch:     "release/18.x",
			Output:     "table",
		}

		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, "release/18.x", cfg.Branch)
	})

	t.Run("explicit scope nests url scope", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{
			RepoRefStr: "https://github.com/llvm/llvm-project/tree/main/clang",
			Scope:      "lib",
			Output:     "table",
		}

		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, "lib/clang", cfg.PathScope)
	})

	t.Run("invalid since date", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{RepoRefStr: ".", Since: "01-02-2024", Output: "table"}
		err := ProcessAndValidate(cfg, input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected YYYY-MM-DD")
	})

	t.Run("inverted date range", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{
			RepoRefStr: ".",
			Since:      "2024-06-01",
			Until:      "2024-01-01",
			Output:     "table",
		}
		err := ProcessAndValidate(cfg, input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is after until date")
	})

	t.Run("valid date range accepted", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{
			RepoRefStr: ".",
			Since:      "2024-01-01",
			Until:      "2024-06-01",
			Output:     "table",
		}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, "2024-01-01", cfg.Since)
		assert.Equal(t, "2024-06-01", cfg.Until)
	})

	t.Run("limit bounds enforced", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{RepoRefStr: ".", Limit: MaxResultLimit + 1, Output: "table"}
		require.Error(t, ProcessAndValidate(cfg, input))

		input = &ConfigRawInput{RepoRefStr: ".", Limit: -1, Output: "table"}
		require.Error(t, ProcessAndValidate(cfg, input))
	})

	t.Run("invalid output mode", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{RepoRefStr: ".", Output: "yaml"}
		require.Error(t, ProcessAndValidate(cfg, input))
	})

	t.Run("csv output defaults file", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{RepoRefStr: ".", Output: "csv"}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	})

	t.Run("parquet output defaults file", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{RepoRefStr: ".", Output: "parquet"}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, "contributors.parquet", cfg.OutputFile)
	})

	t.Run("mysql backend requires connection string", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{RepoRefStr: ".", Output: "table", RunBackend: "mysql"}
		require.Error(t, ProcessAndValidate(cfg, input))
	})

	t.Run("sqlite backend works without connection string", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{RepoRefStr: ".", Output: "table", RunBackend: "sqlite"}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, schema.SQLiteBackend, cfg.RunBackend)
	})

	t.Run("invalid backend rejected", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{RepoRefStr: ".", Output: "table", RunBackend: "oracle"}
		require.Error(t, ProcessAndValidate(cfg, input))
	})

	t.Run("color flag parsing", func(t *testing.T) {
		cfg := &Config{}
		input := &ConfigRawInput{RepoRefStr: ".", Output: "table", Color: "no"}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.False(t, cfg.UseColors)

		cfg = &Config{}
		input = &ConfigRawInput{RepoRefStr: ".", Output: "table", Color: "garbage"}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.True(t, cfg.UseColors, "unknown values fall back to enabled")
	})
}

// TestHistoryScope tests derivation of git-facing filters from the config.
func TestHistoryScope(t *testing.T) {
	cfg := &Config{
		Branch:    "main",
		Since:     "2024-01-01",
		Until:     "2024-06-01",
		PathScope: "src",
	}
	scope := cfg.HistoryScope()
	assert.Equal(t, "main", scope.Branch)
	assert.Equal(t, "2024-01-01", scope.Since)
	assert.Equal(t, "2024-06-01", scope.Until)
	assert.Equal(t, "src", scope.PathScope)
}

// TestParseBoolFlag tests yes/no style flag interpretation.
func TestParseBoolFlag(t *testing.T) {
	assert.True(t, parseBoolFlag("yes", false))
	assert.True(t, parseBoolFlag("TRUE", false))
	assert.True(t, parseBoolFlag(" 1 ", false))
	assert.False(t, parseBoolFlag("no", true))
	assert.False(t, parseBoolFlag("off", true))
	assert.True(t, parseBoolFlag("", true))
	assert.False(t, parseBoolFlag("", false))
}
