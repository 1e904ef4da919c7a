package thinking

import "foresight/internal/llmtool"

func mustPrompt(spec llmtool.StructuredPromptSpec) string {
	s, err := llmtool.RenderStructuredPrompt(spec)
	if err != nil {
		panic(err)
	}
	return s
}

var answerFields = []llmtool.PromptField{
	{Name: "reasoning", Type: "string", Required: true, Description: "step-by-step reasoning behind the estimate"},
	{Name: "decision", Type: "string", Required: true, Description: `"y" if the event will occur, "n" if it will not, empty if undetermined`},
	{Name: "p_yes", Type: "number", Required: true, Description: "probability the event occurs, 0..1"},
	{Name: "p_no", Type: "number", Required: true, Description: "probability the event does not occur; p_yes + p_no must equal 1"},
	{Name: "confidence", Type: "number", Required: true, Description: "confidence in this estimate, 0..1"},
}

var hypotheticalScenariosPrompt = mustPrompt(llmtool.StructuredPromptSpec{
	Purpose: "Brainstorm distinct hypothetical scenarios that are alternate realizations of the given yes/no question.",
	Background: "You are a senior research analyst preparing to estimate the probability of a future event. " +
		"Each scenario is a concrete way the situation described by the question could play out.",
	OutputFields: []llmtool.PromptField{
		{Name: "scenarios", Type: "array of string", Required: true, Description: "distinct hypothetical scenario statements"},
	},
	Constraints: []string{
		"Produce roughly n_scenarios scenarios.",
		"Scenarios must be mutually distinct.",
		"Each scenario is a single declarative sentence.",
	},
	OutputFormat: `STRICT JSON ONLY: {"scenarios":["string", "..."]}`,
})

var conditionalScenariosPrompt = mustPrompt(llmtool.StructuredPromptSpec{
	Purpose: "List the necessary preconditions that must hold for the given yes/no question to resolve yes.",
	Background: "You are a senior research analyst decomposing a future event into the conditions it requires. " +
		"Each condition is something that must happen first, or the event cannot occur.",
	OutputFields: []llmtool.PromptField{
		{Name: "scenarios", Type: "array of string", Required: true, Description: "distinct required-condition statements"},
	},
	Constraints: []string{
		"Produce roughly n_scenarios conditions.",
		"Conditions must be mutually distinct.",
		"Each condition is a single declarative sentence.",
	},
	OutputFormat: `STRICT JSON ONLY: {"scenarios":["string", "..."]}`,
})

// researchOutcomePrompt is the base prompt for the research tool loop; the
// loop appends [TOOLS] and [TOOL_RESULTS] sections on every iteration.
const researchOutcomePrompt = `You are a senior research analyst investigating whether a future event will occur.

Research the scenario in the input. You may call the web_search tool to gather current evidence; call it as many times as useful, then finish.

To call a tool, return STRICT JSON: {"action":"tool","tool_name":"web_search","tool_input":{"query":"string"}}
When done, return STRICT JSON: {"action":"final","final":{"report":"your full research report as text"}}

The report should cover the relevant facts, recent developments, and considerations for and against the scenario occurring. If prior-round estimates are present in the input, do not repeat reasoning they already settle; focus on what is still uncertain.`

var predictOutcomePrompt = mustPrompt(llmtool.StructuredPromptSpec{
	Purpose: "Estimate the probability that the scenario in the input will occur, based on the research report provided.",
	Background: "You are a professional gambler who predicts outcomes of future events from research. " +
		"The input carries the scenario, a research report, and optionally estimates from a previous refinement round.",
	OutputFields: answerFields,
	Rules: []string{
		"Ground the estimate in the research report; do not invent facts.",
		"If prior-round estimates are present, refine rather than restate them.",
		"p_yes and p_no must sum to 1.",
	},
	OutputFormat: `STRICT JSON ONLY: {"reasoning":"string","decision":"y|n","p_yes":0.0,"p_no":0.0,"confidence":0.0}`,
})

var finalDecisionPrompt = mustPrompt(llmtool.StructuredPromptSpec{
	Purpose: "Produce one consolidated probability estimate for the original question by weighing the per-scenario estimates in the input.",
	Background: "You are a professional gambler making a final call. The input lists every researched scenario with its probability, confidence, and reasoning.",
	OutputFields: answerFields,
	Rules: []string{
		"Weigh scenarios by their confidence and how directly they bear on the original question.",
		"The answer is for the original question, not for any individual scenario.",
		"p_yes and p_no must sum to 1.",
	},
	OutputFormat: `STRICT JSON ONLY: {"reasoning":"string","decision":"y|n","p_yes":0.0,"p_no":0.0,"confidence":0.0}`,
})
