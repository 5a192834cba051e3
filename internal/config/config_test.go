package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/weakspot/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		DBPath:            "test.db",
		LogLevel:          "INFO",
		MaxGames:          30,
		TopWeaknesses:     3,
		TopOpenings:       10,
		AnalysisWorkers:   1,
		ReportWorkerCount: 2,
		ReportQueueSize:   32,
		OpeningMoves:      10,
		EndgamePieces:     10,
		ColorMatch:        config.ColorMatchExact,
		PercentBase:       config.PercentBaseShared,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = "  "

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{"zero max games", func(c *config.Config) { c.MaxGames = 0 }, "MAX_GAMES"},
		{"zero top weaknesses", func(c *config.Config) { c.TopWeaknesses = 0 }, "TOP_WEAKNESSES"},
		{"zero top openings", func(c *config.Config) { c.TopOpenings = 0 }, "TOP_OPENINGS"},
		{"too many analysis workers", func(c *config.Config) { c.AnalysisWorkers = 65 }, "ANALYSIS_WORKERS"},
		{"zero report workers", func(c *config.Config) { c.ReportWorkerCount = 0 }, "REPORT_WORKER_COUNT"},
		{"zero queue", func(c *config.Config) { c.ReportQueueSize = 0 }, "REPORT_QUEUE_SIZE"},
		{"negative opening moves", func(c *config.Config) { c.OpeningMoves = -1 }, "OPENING_MOVES"},
		{"endgame too small", func(c *config.Config) { c.EndgamePieces = 1 }, "ENDGAME_PIECES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_Enums(t *testing.T) {
	cfg := validConfig()
	cfg.ColorMatch = "fuzzy"
	cfg.PercentBase = "half"
	cfg.LogLevel = "TRACE"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COLOR_MATCH")
	assert.Contains(t, err.Error(), "PERCENT_BASE")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_ValidLogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "info", "WARN", "warning", "ERROR"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestValidate_MissingOpeningsCSV(t *testing.T) {
	cfg := validConfig()
	cfg.OpeningsCSV = filepath.Join(t.TempDir(), "missing.csv")

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENINGS_CSV")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)
	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "MAX_GAMES")
	assert.Contains(t, errStr, "REPORT_WORKER_COUNT")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "MAX_GAMES", "COLOR_MATCH", "PERCENT_BASE"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 30, cfg.MaxGames)
	assert.Equal(t, config.ColorMatchExact, cfg.ColorMatch)
	assert.Equal(t, config.PercentBaseShared, cfg.PercentBase)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("MAX_GAMES", "12")
	t.Setenv("COLOR_MATCH", "Substring")
	t.Setenv("ENDGAME_PIECES", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 12, cfg.MaxGames)
	assert.Equal(t, config.ColorMatchSubstring, cfg.ColorMatch)
	assert.Equal(t, 10, cfg.EndgamePieces)
}
