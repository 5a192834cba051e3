package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ColorMatchExact     = "exact"
	ColorMatchSubstring = "substring"

	PercentBaseShared = "shared"
	PercentBaseSplit  = "split"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	MaxGames          int
	TopWeaknesses     int
	TopOpenings       int
	AnalysisWorkers   int
	ReportWorkerCount int
	ReportQueueSize   int
	OpeningMoves      int
	EndgamePieces     int
	ColorMatch        string
	PercentBase       string
	OpeningsCSV       string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:weakspot.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		MaxGames:          envIntOr("MAX_GAMES", 30),
		TopWeaknesses:     envIntOr("TOP_WEAKNESSES", 3),
		TopOpenings:       envIntOr("TOP_OPENINGS", 10),
		AnalysisWorkers:   envIntOr("ANALYSIS_WORKERS", 1),
		ReportWorkerCount: envIntOr("REPORT_WORKER_COUNT", 2),
		ReportQueueSize:   envIntOr("REPORT_QUEUE_SIZE", 32),
		OpeningMoves:      envIntOr("OPENING_MOVES", 10),
		EndgamePieces:     envIntOr("ENDGAME_PIECES", 10),
		ColorMatch:        strings.ToLower(envOr("COLOR_MATCH", ColorMatchExact)),
		PercentBase:       strings.ToLower(envOr("PERCENT_BASE", PercentBaseShared)),
		OpeningsCSV:       envOr("OPENINGS_CSV", ""),
	}
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.MaxGames < 1 {
		errs = append(errs, fmt.Sprintf("MAX_GAMES must be at least 1 (got %d)", c.MaxGames))
	}
	if c.TopWeaknesses < 1 {
		errs = append(errs, fmt.Sprintf("TOP_WEAKNESSES must be at least 1 (got %d)", c.TopWeaknesses))
	}
	if c.TopOpenings < 1 {
		errs = append(errs, fmt.Sprintf("TOP_OPENINGS must be at least 1 (got %d)", c.TopOpenings))
	}
	if c.AnalysisWorkers < 1 || c.AnalysisWorkers > 64 {
		errs = append(errs, fmt.Sprintf("ANALYSIS_WORKERS must be between 1 and 64 (got %d)", c.AnalysisWorkers))
	}
	if c.ReportWorkerCount < 1 || c.ReportWorkerCount > 32 {
		errs = append(errs, fmt.Sprintf("REPORT_WORKER_COUNT must be between 1 and 32 (got %d)", c.ReportWorkerCount))
	}
	if c.ReportQueueSize < 1 {
		errs = append(errs, fmt.Sprintf("REPORT_QUEUE_SIZE must be at least 1 (got %d)", c.ReportQueueSize))
	}
	if c.OpeningMoves < 0 {
		errs = append(errs, fmt.Sprintf("OPENING_MOVES cannot be negative (got %d)", c.OpeningMoves))
	}
	if c.EndgamePieces < 2 || c.EndgamePieces > 32 {
		errs = append(errs, fmt.Sprintf("ENDGAME_PIECES must be between 2 and 32 (got %d)", c.EndgamePieces))
	}
	if c.ColorMatch != ColorMatchExact && c.ColorMatch != ColorMatchSubstring {
		errs = append(errs, fmt.Sprintf("COLOR_MATCH must be %q or %q (got %q)", ColorMatchExact, ColorMatchSubstring, c.ColorMatch))
	}
	if c.PercentBase != PercentBaseShared && c.PercentBase != PercentBaseSplit {
		errs = append(errs, fmt.Sprintf("PERCENT_BASE must be %q or %q (got %q)", PercentBaseShared, PercentBaseSplit, c.PercentBase))
	}
	if c.OpeningsCSV != "" {
		if _, err := os.Stat(c.OpeningsCSV); err != nil {
			errs = append(errs, fmt.Sprintf("OPENINGS_CSV not readable: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
