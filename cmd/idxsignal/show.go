package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/danijuhaeni22/idx-signal-web/internal/chart"
	"github.com/danijuhaeni22/idx-signal-web/internal/view"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [ticker]",
		Short: "Render regime, signal, chart and watchlist for one ticker",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}
	cmd.Flags().String("out", "chart.png", "chart file written when stdout is not a terminal")
	cmd.Flags().Bool("no-chart", false, "skip the chart")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ticker := ""
	if len(args) > 0 {
		ticker = args[0]
	}
	if ticker == "" {
		ticker = a.dash.DefaultTicker(a.cfg.API.Ticker)
	}

	v, err := a.dash.LoadTicker(context.Background(), ticker)
	if err != nil {
		fmt.Print(view.RenderPanel(view.ErrorPanel("Signal "+view.DisplayTicker(ticker), err)))
		return nil
	}

	fmt.Print(view.RenderPanel(view.RegimePanel(v.Regime)))
	fmt.Println()
	fmt.Print(view.RenderPanel(view.SignalPanel(v.Ticker, v.Signal, v.Regime.Status)))
	fmt.Println()

	if noChart, _ := cmd.Flags().GetBool("no-chart"); !noChart {
		renderChart(cmd, v.Ticker, chart.Build(v.Ticker, v.Bars, v.MA20, v.MA50))
		fmt.Println()
	}

	list, err := a.store.List()
	if err != nil {
		log.Printf("[WARN] read watchlist: %v", err)
	}
	fmt.Print(view.RenderTable(view.WatchlistTable(list)))
	return nil
}

// renderChart negotiates a renderer once: terminal cells on a TTY, a PNG
// file otherwise. A failed negotiation renders as an inline error, it never
// kills the rest of the output.
func renderChart(cmd *cobra.Command, ticker string, data *chart.Data) {
	renderer, err := chart.Select(
		chart.NewTermRenderer(os.Stdout),
		chart.NewPNGRenderer(),
	)
	if err != nil {
		fmt.Printf("  chart error: %v\n", err)
		return
	}

	if renderer.Name() == "term" {
		if err := renderer.Render(data, os.Stdout); err != nil {
			fmt.Printf("  chart error: %v\n", err)
		}
		return
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		// bare root invocation has no --out flag
		out = "chart.png"
	}
	f, err := os.Create(out)
	if err != nil {
		fmt.Printf("  chart error: %v\n", err)
		return
	}
	defer f.Close()
	if err := renderer.Render(data, f); err != nil {
		fmt.Printf("  chart error: %v\n", err)
		return
	}
	fmt.Printf("  chart for %s written to %s\n", view.DisplayTicker(ticker), out)
}
