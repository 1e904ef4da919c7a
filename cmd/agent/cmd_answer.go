package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"foresight/internal/thinking"
)

var answerFlags struct {
	hypotheticals int
	conditionals  int
	rounds        int
	workers       int
}

var answerCmd = &cobra.Command{
	Use:   "answer <question>",
	Short: "Answer one yes/no question with the think-thoroughly pipeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnswer,
}

func init() {
	f := answerCmd.Flags()
	f.IntVar(&answerFlags.hypotheticals, "hypotheticals", 0, "target count of hypothetical scenarios")
	f.IntVar(&answerFlags.conditionals, "conditionals", 0, "target count of conditional scenarios")
	f.IntVar(&answerFlags.rounds, "rounds", 0, "refinement rounds")
	f.IntVar(&answerFlags.workers, "workers", 0, "parallel scenario workers")
}

func runAnswer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	cli, err := buildLLM(ctx, cfg)
	if err != nil {
		return err
	}
	defer cli.Close()
	tools, err := buildSearchTools(cfg)
	if err != nil {
		return err
	}

	agent := thinking.NewAgent(cli, tools, thinking.Options{
		Hypotheticals: answerFlags.hypotheticals,
		Conditionals:  answerFlags.conditionals,
		Rounds:        answerFlags.rounds,
		Workers:       answerFlags.workers,
	})
	answer, err := agent.AnswerBinaryMarket(ctx, args[0])
	if err != nil {
		return err
	}
	if answer == nil {
		fmt.Fprintln(os.Stderr, "could not decide")
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(answer)
}
