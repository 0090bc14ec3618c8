package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

// suggestCmd prints the next synthesis suggestion
var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show the suggested next synthesis step",
	Long: `Ask the daemon what the ecosystem should do next, based on the
patterns and couplings it has observed.

Examples:
  # Show the current suggestion
  resctl suggest`,
	RunE: runSuggest,
}

// resetCmd clears all observations
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all observations and patterns",
	Long: `Reset the daemon's observation log, patterns, couplings, and harmonic
history for a fresh session.

Examples:
  # Start over
  resctl reset`,
	RunE: runReset,
}

// Suggestion matches the internal/resonance Suggestion wire form
type Suggestion struct {
	ID              string   `json:"id"`
	Reason          string   `json:"reason"`
	TargetConcepts  []string `json:"target_concepts"`
	SuggestedAction string   `json:"suggested_action"`
	Confidence      float64  `json:"confidence"`
	BasedOnPatterns []string `json:"based_on_patterns"`
}

// ResetResponse matches internal/httpapi/server.go ResetResponse
type ResetResponse struct {
	Status string `json:"status"`
}

// runSuggest handles the suggest command
func runSuggest(cmd *cobra.Command, args []string) error {
	body, status, err := getEndpoint("/api/v1/suggestion")
	if err != nil {
		return err
	}

	if status == http.StatusNoContent {
		fmt.Println("System does not yet have enough data to suggest a synthesis. Continue observing.")
		return nil
	}

	var suggestion Suggestion
	if err := json.Unmarshal(body, &suggestion); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Print(formatSuggestion(suggestion))
	return nil
}

// runReset handles the reset command
func runReset(cmd *cobra.Command, args []string) error {
	body, err := postEndpoint("/api/v1/reset")
	if err != nil {
		return err
	}

	var resp ResetResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Println("All observations and patterns cleared. Ready for a new session.")
	return nil
}

// formatSuggestion renders a suggestion for terminal output.
func formatSuggestion(s Suggestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggested action: %s\n", s.SuggestedAction)
	fmt.Fprintf(&b, "Reason: %s\n", s.Reason)
	fmt.Fprintf(&b, "Confidence: %.0f%%\n", s.Confidence*100)
	if len(s.TargetConcepts) > 0 {
		fmt.Fprintf(&b, "Target concepts: %s\n", strings.Join(s.TargetConcepts, ", "))
	}
	if len(s.BasedOnPatterns) > 0 {
		fmt.Fprintf(&b, "Based on: %s\n", strings.Join(s.BasedOnPatterns, ", "))
	}
	return b.String()
}
