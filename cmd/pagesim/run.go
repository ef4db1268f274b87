package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sibexico/pagesim/config"
	"github.com/sibexico/pagesim/sim"
	"github.com/sibexico/pagesim/trace"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a reference string through the simulator.",
	Long: "`run --policy lru --frames 4 --trace refs.txt` simulates every access " +
		"in refs.txt. The reference string is read from stdin when --trace is absent. " +
		"Settings come from defaults, then --config, then PAGESIM_* variables " +
		"(including those in .env), then flags.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			atexit.Fatalf("Error: %v", err)
		}

		if err := run(cmd, cfg); err != nil {
			atexit.Fatalf("Error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("config", "", "JSON configuration file")
	flags.String("trace", "", "Reference string file (default stdin)")
	flags.String("policy", "", "Replacement policy: fifo, lru or clock")
	flags.Int("pages", 0, "Number of virtual pages")
	flags.Int("frames", 0, "Number of physical frames")
	flags.Int("page-size", 0, "Page size in bytes")
	flags.String("swap", "", "Swap file, pages swap to memory when empty")
	flags.String("compression", "", "Swap compression: none, lz4 or snappy")
	flags.String("record", "", "Record every access to <path>.sqlite3")
	flags.Bool("status", false, "Print the page table after the run")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig layers defaults, the config file, the environment and flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.DefaultConfig()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		cfg, err = config.LoadConfigFromFile(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg = config.ApplyEnv(cfg)

	if flags.Changed("policy") {
		cfg.Policy, _ = flags.GetString("policy")
	}
	if flags.Changed("pages") {
		cfg.Pages, _ = flags.GetInt("pages")
	}
	if flags.Changed("frames") {
		cfg.Frames, _ = flags.GetInt("frames")
	}
	if flags.Changed("page-size") {
		cfg.PageSize, _ = flags.GetInt("page-size")
	}
	if flags.Changed("swap") {
		cfg.SwapFile, _ = flags.GetString("swap")
	}
	if flags.Changed("compression") {
		cfg.Compression, _ = flags.GetString("compression")
	}
	if flags.Changed("record") {
		cfg.Record = true
		cfg.RecordPath, _ = flags.GetString("record")
	}
	if flags.Changed("status") {
		cfg.ShowStatus, _ = flags.GetBool("status")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	logger, err := config.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var input io.Reader = cmd.InOrStdin()
	if path, _ := cmd.Flags().GetString("trace"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open trace: %w", err)
		}
		defer f.Close()
		input = f
	}

	s, err := sim.New(cfg, logger)
	if err != nil {
		return err
	}
	atexit.Register(func() { s.Close() })

	runErr := s.RunReader(trace.NewReader(input))

	// The report shows the state reached even when the run failed
	if err := s.WriteReport(cmd.OutOrStdout(), cfg.ShowStatus); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	return s.Close()
}
