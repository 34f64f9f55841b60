package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/archiveview/internal/config"
	"github.com/user/archiveview/pkg/archive"
	"github.com/user/archiveview/pkg/archive/rest"
)

var (
	cfgPath    string
	baseURL    string
	formatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "archiveview",
	Short: "Browse archived conversation sessions",
	Long: `archiveview reads a conversation archive over its HTTP API and renders
the session list or a single session transcript as text, HTML or Markdown,
or interactively in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultPath := filepath.Join(os.Getenv("HOME"), ".archiveview", "config.json")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "archive backend URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "output format: text, html or markdown (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file, applies flag overrides and sets up
// logging. It exits on failure.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if baseURL != "" {
		cfg.Backend.BaseURL = baseURL
	}
	if formatFlag != "" {
		cfg.Format = formatFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg)
	return cfg
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func newSource(cfg *config.Config) archive.Source {
	return rest.New(&archive.Config{
		BaseURL:   cfg.Backend.BaseURL,
		AuthToken: cfg.Backend.AuthToken,
		Timeout:   cfg.Timeout(),
	})
}
