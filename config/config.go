// Package config holds the settings of a simulation run.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sibexico/pagesim/memory"
	"github.com/sibexico/pagesim/vm"
)

// MinPageSize leaves room for the stamp written into every modified page
const MinPageSize = 16

// Config holds simulation configuration
type Config struct {
	// Page Table Configuration
	Policy string `json:"policy"` // Replacement policy (fifo, lru, clock)
	Pages  int    `json:"pages"`  // Number of virtual pages
	Frames int    `json:"frames"` // Number of physical frames

	// Backing Store Configuration
	PageSize    int    `json:"page_size"`   // Page size in bytes
	SwapFile    string `json:"swap_file"`   // Swap file path, in-memory store when empty
	Compression string `json:"compression"` // Swap compression (none, lz4, snappy)

	// Recording Configuration
	Record      bool   `json:"record"`       // Record every access to SQLite
	RecordPath  string `json:"record_path"`  // Recording file name without extension
	RecordBatch int    `json:"record_batch"` // Rows buffered before a flush

	// Output Configuration
	ShowStatus bool   `json:"show_status"` // Print the page table after the run
	LogLevel   string `json:"log_level"`   // Log level (debug, info, warn, error)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Policy:      "fifo",
		Pages:       16,
		Frames:      4,
		PageSize:    4096,
		Compression: "none",
		RecordBatch: 1000,
		LogLevel:    "info",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadDotEnv loads variables from .env files into the environment.
// Missing files are ignored; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// LoadConfigFromEnv loads configuration from environment variables
// Falls back to default values if environment variables are not set
func LoadConfigFromEnv() *Config {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overrides fields of config with the PAGESIM_* variables that are set
func ApplyEnv(config *Config) *Config {
	// Page Table
	if val := os.Getenv("PAGESIM_POLICY"); val != "" {
		config.Policy = val
	}

	if val := os.Getenv("PAGESIM_PAGES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.Pages = n
		}
	}

	if val := os.Getenv("PAGESIM_FRAMES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.Frames = n
		}
	}

	// Backing Store
	if val := os.Getenv("PAGESIM_PAGE_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.PageSize = n
		}
	}

	if val := os.Getenv("PAGESIM_SWAP_FILE"); val != "" {
		config.SwapFile = val
	}

	if val := os.Getenv("PAGESIM_COMPRESSION"); val != "" {
		config.Compression = val
	}

	// Recording
	if val := os.Getenv("PAGESIM_RECORD"); val != "" {
		config.Record = val == "true" || val == "1"
	}

	if val := os.Getenv("PAGESIM_RECORD_PATH"); val != "" {
		config.RecordPath = val
	}

	if val := os.Getenv("PAGESIM_RECORD_BATCH"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.RecordBatch = n
		}
	}

	// Output
	if val := os.Getenv("PAGESIM_SHOW_STATUS"); val != "" {
		config.ShowStatus = val == "true" || val == "1"
	}

	if val := os.Getenv("PAGESIM_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	return config
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := vm.ParsePolicy(c.Policy); err != nil {
		return err
	}

	if c.Pages <= 0 {
		return fmt.Errorf("page count must be greater than 0")
	}

	if c.Frames <= 0 {
		return fmt.Errorf("frame count must be greater than 0")
	}

	if c.PageSize < MinPageSize || c.PageSize > memory.MaxPageSize {
		return fmt.Errorf("page size must be between %d and %d", MinPageSize, memory.MaxPageSize)
	}

	if _, err := memory.ParseCompression(c.Compression); err != nil {
		return err
	}

	if c.Record && c.RecordBatch <= 0 {
		return fmt.Errorf("record batch must be greater than 0 when recording")
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ParseLogLevel maps a level name to its slog level
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", name)
}

// NewLogger creates a text logger writing to w at the named level
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
