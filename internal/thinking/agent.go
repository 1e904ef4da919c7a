package thinking

import (
	"context"
	"log/slog"

	llmclient "foresight/internal/llm/client"
	"foresight/internal/llmtool"
	"foresight/internal/logging"
)

// Options tune the pipeline shape. Zero values fall back to the defaults
// the agent has been calibrated with.
type Options struct {
	// Hypotheticals is the target count of hypothetical scenarios.
	Hypotheticals int
	// Conditionals is the target count of required-condition scenarios.
	Conditionals int
	// Rounds is the fixed number of refinement iterations.
	Rounds int
	// Workers bounds the parallel fan-out within a round.
	Workers int
	// ResearchIters bounds tool-loop iterations per research call.
	ResearchIters int
}

func (o Options) withDefaults() Options {
	if o.Hypotheticals <= 0 {
		o.Hypotheticals = 5
	}
	if o.Conditionals <= 0 {
		o.Conditionals = 3
	}
	if o.Rounds <= 0 {
		o.Rounds = 1
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.ResearchIters <= 0 {
		o.ResearchIters = 5
	}
	return o
}

// Agent is the think-thoroughly agent: it decomposes a yes/no question
// into scenarios, estimates each independently with research, refines the
// estimates over fixed rounds, and aggregates one final answer.
type Agent struct {
	scenarios  *ScenarioGenerator
	pipeline   *Pipeline
	aggregator *Aggregator
	opts       Options
	log        *slog.Logger
}

// NewAgent wires the pipeline components around one inference client and
// one search tool provider. Both are safe for concurrent use.
func NewAgent(cli llmclient.LLMClient, tools llmtool.ToolProvider, opts Options) *Agent {
	opts = opts.withDefaults()
	log := logging.New("think-thoroughly")
	return &Agent{
		scenarios: &ScenarioGenerator{LLM: cli, Log: log},
		pipeline: &Pipeline{
			Researcher: &Researcher{LLM: cli, Tools: tools, MaxIters: opts.ResearchIters, Log: log},
			Predictor:  &Predictor{LLM: cli, Log: log},
			Workers:    opts.Workers,
			Log:        log,
		},
		aggregator: &Aggregator{LLM: cli, Log: log},
		opts:       opts,
		log:        log,
	}
}

// AnswerBinaryMarket resolves one yes/no question. It returns (nil, nil)
// when every scenario failed in every round: "could not decide" is a
// normal outcome the caller must expect, distinct from a pipeline error.
func (a *Agent) AnswerBinaryMarket(ctx context.Context, question string) (*Answer, error) {
	hypothetical, err := a.scenarios.Generate(ctx, question, Hypothetical, a.opts.Hypotheticals)
	if err != nil {
		return nil, err
	}
	conditional, err := a.scenarios.Generate(ctx, question, Conditional, a.opts.Conditionals)
	if err != nil {
		return nil, err
	}

	// Both sets feed one fan-out; duplicates across sets would be
	// estimated twice and collapse in the result map, so drop them here.
	all := dedupe(append(hypothetical.Scenarios, conditional.Scenarios...))

	answers := a.pipeline.Refine(ctx, question, all, a.opts.Rounds)
	if len(answers) == 0 {
		a.log.Warn("no scenario produced a usable estimate", "question", question)
		return nil, nil
	}
	for _, scenario := range all {
		if ans, ok := answers[scenario]; ok {
			a.log.Info("scenario estimate",
				"scenario", scenario,
				"p_yes", ans.PYes,
				"confidence", ans.Confidence)
		}
	}

	final, err := a.aggregator.Aggregate(ctx, question, all, answers)
	if err != nil {
		return nil, err
	}
	return &final, nil
}
