// agent is the deployment CLI: it answers single questions directly or
// runs an agent against a market venue.
//
// Usage:
//
//	agent answer "Will X happen by date Y?" [--rounds=2]
//	agent run think-thoroughly [--profiles=agents.yaml] [--place-bets]
//	agent run coinflip
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
