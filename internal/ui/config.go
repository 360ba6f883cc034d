package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gigbook/internal/config"
	"github.com/javiermolinar/gigbook/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  gigbook config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(config.DefaultConfigPath(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Storage.Backend = promptValue(reader, out, "Storage backend (sqlite, redis, memory)", cfg.Storage.Backend)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	case config.BackendRedis:
		cfg.Storage.RedisAddr = promptValue(reader, out, "Redis address", cfg.Storage.RedisAddr)
		cfg.Storage.RedisDB = promptInt(reader, out, "Redis database", cfg.Storage.RedisDB)
		cfg.Storage.SessionTTL = promptValue(reader, out, "Session TTL (empty keeps forever)", cfg.Storage.SessionTTL)
	}
	cfg.Server.Listen = promptValue(reader, out, "HTTP listen address", cfg.Server.Listen)
	cfg.Server.SweepSchedule = promptValue(reader, out, "Sweep schedule (cron)", cfg.Server.SweepSchedule)
	cfg.Session.CLIID = promptValue(reader, out, "CLI session name", cfg.Session.CLIID)
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[storage]")
	fmt.Fprintf(out, "  backend          = %s\n", cfg.Storage.Backend)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	case config.BackendRedis:
		fmt.Fprintf(out, "  redis_addr       = %s\n", cfg.Storage.RedisAddr)
		fmt.Fprintf(out, "  redis_db         = %d\n", cfg.Storage.RedisDB)
		if cfg.Storage.SessionTTL != "" {
			fmt.Fprintf(out, "  session_ttl      = %s\n", cfg.Storage.SessionTTL)
		}
	}
	fmt.Fprintln(out, "\n[server]")
	fmt.Fprintf(out, "  listen           = %s\n", cfg.Server.Listen)
	fmt.Fprintf(out, "  sweep_schedule   = %s\n", cfg.Server.SweepSchedule)
	fmt.Fprintf(out, "  metrics          = %t\n", cfg.Server.Metrics)
	fmt.Fprintln(out, "\n[session]")
	fmt.Fprintf(out, "  cli_id           = %s\n", cfg.Session.CLIID)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level            = %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  format           = %s\n", cfg.Log.Format)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  %q is not a number\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
