package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/archiveview/internal/config"
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Long: `Setup asks for each setting and writes the answers to the config file.
Defaults come from the file itself; environment variables and flags are not
saved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		cfg, err := config.LoadFile(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(cmd.InOrStdin())

		fmt.Fprintln(out, "archiveview setup")
		fmt.Fprintln(out, "Press Enter to accept the default value shown in brackets.")
		fmt.Fprintln(out)

		cfg.Backend.BaseURL = prompt(out, scanner, "Archive backend URL", cfg.Backend.BaseURL)
		cfg.Backend.AuthToken = prompt(out, scanner, "Bearer token (optional)", cfg.Backend.AuthToken)
		cfg.Format = prompt(out, scanner, "Output format (text, html, markdown)", cfg.Format)

		timeout := prompt(out, scanner, "Request timeout in seconds", strconv.Itoa(cfg.Backend.TimeoutSeconds))
		if n, err := strconv.Atoi(timeout); err == nil {
			cfg.Backend.TimeoutSeconds = n
		}

		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(cfgPath, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Configuration saved to", cfgPath)
		return nil
	},
}

// prompt displays a labeled prompt with a default value and reads user input.
// If the user enters nothing, the default is returned.
func prompt(w io.Writer, scanner *bufio.Scanner, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(w, "%s [%s]: ", label, defaultVal)
	} else {
		fmt.Fprintf(w, "%s: ", label)
	}
	if scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input != "" {
			return input
		}
	}
	return defaultVal
}
