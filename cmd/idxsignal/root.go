package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/danijuhaeni22/idx-signal-web/internal/api"
	"github.com/danijuhaeni22/idx-signal-web/internal/config"
	"github.com/danijuhaeni22/idx-signal-web/internal/dashboard"
	"github.com/danijuhaeni22/idx-signal-web/internal/watchlist"
)

const version = "v1.2.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "idxsignal",
		Short:   "IDX market signal dashboard",
		Version: version,
		Long: `idxsignal renders the IDX Signal API as a dashboard: market regime,
per-ticker trade plan, price/volume chart, ranked radar and a watchlist.

Run 'idxsignal show' for a one-shot terminal view, or 'idxsignal serve'
for the browser dashboard.`,
		RunE: runShow, // bare invocation shows the default ticker
	}

	root.PersistentFlags().String("config", "", "config file path (default configs/config.yaml)")
	root.PersistentFlags().String("api", "", "API base URL override, tried before all other candidates")

	root.AddCommand(newShowCmd())
	root.AddCommand(newRadarCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newServeCmd())
	return root
}

// app bundles everything a command needs, wired once per invocation.
type app struct {
	cfg    *config.Config
	client *api.Client
	store  watchlist.Store
	dash   *dashboard.Dashboard
}

func buildApp(cmd *cobra.Command) (*app, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if override, _ := cmd.Flags().GetString("api"); override != "" {
		cfg.API.Override = override
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolver := api.NewResolver(cfg.API.Override, cfg.API.Bases, cfg.State.File)
	client := api.NewClient(resolver, cfg.Proxy, cfg.API.Days, cfg.API.Universe)

	var store watchlist.Store
	if cfg.Watchlist.SQLitePath != "" {
		ss, err := watchlist.NewSQLiteStore(cfg.Watchlist.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite watchlist failed, using JSON file: %v", err)
			store = watchlist.NewJSONStore(cfg.Watchlist.File)
		} else {
			store = ss
		}
	} else {
		store = watchlist.NewJSONStore(cfg.Watchlist.File)
	}

	return &app{
		cfg:    cfg,
		client: client,
		store:  store,
		dash:   dashboard.New(client, store, cfg.State.File),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		log.Printf("[WARN] close watchlist store: %v", err)
	}
}
