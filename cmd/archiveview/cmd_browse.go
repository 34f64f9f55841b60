package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/user/archiveview/internal/tui"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the archive interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		b := tui.New(ctx, newSource(cfg), controllerOptions(cfg)...)
		if _, err := tea.NewProgram(b, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("run browser: %w", err)
		}
		return nil
	},
}
