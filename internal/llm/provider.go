// Package llm provides the optional advisory summary of a finished scan.
// The summary is generated after scoring and never feeds back into any
// score or filter; a failure here is a warning, not a run failure.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/steamrisk/internal/model"
)

// Provider is one LLM backend
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates an advisory summary of the report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest is the input for summary generation
type SummarizeRequest struct {
	Report    *model.Report
	Model     string
	MaxTokens int
}

// SummarizeResponse is the generated summary
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	Provider  string // "openai", "ollama", "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// NewProvider creates the configured provider, or (nil, nil) when the
// feature is disabled
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "ollama":
		// both speak the OpenAI chat API; ollama via BaseURL
		return newChatProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}

// ConfigFromModel converts the runtime configuration section
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// BuildPrompt constructs the summarization prompt from the scored rows.
// Only already-computed facts go in: the model restates the factor trail,
// it never classifies anything itself.
func BuildPrompt(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing a game-library risk report. Scores are 0-10 and were
computed deterministically from keyword heuristics; do not re-score, and do
not assert anything not present in the factor trails below.

Library: %d titles scanned, %d live fetches, %d cache hits.

Highest-scoring titles:
`, len(report.Rows), report.Fetched, report.CacheHits)

	count := 0
	for _, row := range report.Rows {
		if row.Risk.Score == 0 || count >= 10 {
			break
		}
		count++
		fmt.Fprintf(&b, "- %s (score %d): %s\n", row.Name, row.Risk.Score, strings.Join(row.Risk.Factors, "; "))
	}
	if count == 0 {
		b.WriteString("(none - no title scored above zero)\n")
	}

	b.WriteString("\nProvide a 3-5 sentence advisory summary. State that the heuristics tolerate false positives.")
	return b.String()
}
