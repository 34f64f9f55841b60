package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/archiveview/internal/controller"
	"github.com/user/archiveview/internal/page"
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("search", "s", "", "only list sessions matching this text")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		query, _ := cmd.Flags().GetString("search")

		list := page.NewNodeMount()
		status := page.NewTextBox()
		p := &page.Page{
			List:   list,
			Status: status,
			Search: page.NewTextInput(query),
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		controller.NewList(newSource(cfg), p, page.StatusFor(p), controllerOptions(cfg)...).Load(ctx)

		if list.Replacements() == 0 {
			return errors.New(status.Text())
		}
		if err := writeNodes(cmd.OutOrStdout(), cfg.Format, list.Nodes()); err != nil {
			return fmt.Errorf("write list: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), status.Text())
		return nil
	},
}
