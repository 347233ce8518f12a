package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danijuhaeni22/idx-signal-web/internal/view"
)

func newRadarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "radar",
		Short: "Show the ranked screener for the configured universe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			rv, err := a.dash.RefreshRadar(context.Background())
			if err != nil {
				fmt.Print(view.RenderPanel(view.ErrorPanel("Radar", err)))
				return nil
			}

			fmt.Print(view.RenderPanel(view.RegimePanel(&rv.Result.MarketRegime)))
			fmt.Println()
			fmt.Print(view.RenderTable(view.ScreenerTable(rv.Result)))
			fmt.Printf("\n  %d candidates scanned; load one with: idxsignal show <ticker>\n", rv.Result.Count)
			return nil
		},
	}
}
