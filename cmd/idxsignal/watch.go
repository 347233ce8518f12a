package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danijuhaeni22/idx-signal-web/internal/view"
)

func newWatchCmd() *cobra.Command {
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Manage the ticker watchlist",
	}

	watch.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List watched tickers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return printWatchlist(a)
		},
	})

	watch.AddCommand(&cobra.Command{
		Use:   "add <ticker>",
		Short: "Add a ticker to the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.store.Add(args[0]); err != nil {
				return err
			}
			return printWatchlist(a)
		},
	})

	watch.AddCommand(&cobra.Command{
		Use:   "remove <ticker>",
		Short: "Remove a ticker from the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.store.Remove(args[0]); err != nil {
				return err
			}
			return printWatchlist(a)
		},
	})

	return watch
}

func printWatchlist(a *app) error {
	list, err := a.store.List()
	if err != nil {
		return err
	}
	fmt.Print(view.RenderTable(view.WatchlistTable(list)))
	return nil
}
