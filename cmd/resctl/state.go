package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// stateCmd prints the ecosystem snapshot
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the current ecosystem state",
	Long: `Fetch the full ecosystem snapshot from the resonanced daemon: recent
observations, detected patterns, couplings, and coherence metrics.

Examples:
  # Show the state as indented JSON
  resctl state

  # Pipe into jq for filtering
  resctl state | jq .total_coherence`,
	RunE: runState,
}

// couplingsCmd prints the coupling graph
var couplingsCmd = &cobra.Command{
	Use:   "couplings",
	Short: "Show the active coupling graph",
	Long: `Render the couplings between producing systems as a text graph, the
same visualization the visualize_coupling_graph MCP tool returns.

Examples:
  # Show active couplings
  resctl couplings`,
	RunE: runCouplings,
}

// runState handles the state command
func runState(cmd *cobra.Command, args []string) error {
	body, _, err := getEndpoint("/api/v1/state")
	if err != nil {
		return err
	}

	pretty, err := prettyJSON(body)
	if err != nil {
		return fmt.Errorf("failed to format state: %w", err)
	}

	fmt.Println(pretty)
	return nil
}

// runCouplings handles the couplings command
func runCouplings(cmd *cobra.Command, args []string) error {
	body, _, err := getEndpoint("/api/v1/couplings")
	if err != nil {
		return err
	}

	fmt.Println(string(body))
	return nil
}

// prettyJSON re-indents a JSON document for terminal output.
func prettyJSON(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
