package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"foresight/internal/config"
	"foresight/internal/deploy"
	"foresight/internal/logging"
	"foresight/internal/market"
	"foresight/internal/thinking"
)

var runFlags struct {
	profiles  string
	placeBets bool
}

var runCmd = &cobra.Command{
	Use:   "run <think-thoroughly|coinflip>",
	Short: "Run an agent against the configured market venue",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.profiles, "profiles", "agents.yaml", "agent profile file")
	f.BoolVar(&runFlags.placeBets, "place-bets", false, "place real bets instead of logging decisions")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.MarketURL == "" {
		return fmt.Errorf("MARKET_API_URL is not set")
	}
	profiles, err := config.LoadProfiles(runFlags.profiles)
	if err != nil {
		return err
	}
	name := args[0]
	profile := profiles[name]
	if profile.Provider != "" && rootFlags.provider == "" {
		cfg.Provider = profile.Provider
	}
	if profile.Model != "" && rootFlags.model == "" {
		cfg.Model = profile.Model
	}

	ctx := cmd.Context()
	var agent deploy.Agent
	switch name {
	case "coinflip":
		agent = deploy.CoinFlipAgent{}
	case "think-thoroughly":
		cli, err := buildLLM(ctx, cfg)
		if err != nil {
			return err
		}
		defer cli.Close()
		tools, err := buildSearchTools(cfg)
		if err != nil {
			return err
		}
		agent = thinking.NewAgent(cli, tools, thinking.Options{
			Hypotheticals: profile.Hypotheticals,
			Conditionals:  profile.Conditionals,
			Rounds:        profile.Rounds,
			Workers:       profile.Workers,
			ResearchIters: profile.ResearchIters,
		})
	default:
		return fmt.Errorf("unknown agent %q", name)
	}

	runner := &deploy.Runner{
		Agent:         agent,
		Provider:      market.NewHTTPProvider(cfg.MarketURL, cfg.MarketAPIKey),
		MarketsPerRun: profile.MarketsPerRun,
		Timeout:       time.Duration(profile.TimeoutSec) * time.Second,
		PlaceBets:     runFlags.placeBets || profile.PlaceBets,
		BetAmount:     profile.BetAmount,
		Log:           logging.New("deploy").With("agent", name),
	}
	return runner.Run(ctx)
}
