package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/steamrisk/internal/model"
)

// Summarizer wraps a provider behind the enabled/disabled decision
type Summarizer struct {
	provider Provider
}

// NewSummarizer creates a summarizer; (nil provider, nil error) means the
// feature is disabled
func NewSummarizer(cfg Config) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces the advisory summary for a finished report
func (s *Summarizer) GenerateSummary(ctx context.Context, report *model.Report) (string, error) {
	if !s.IsEnabled() {
		return "", nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{Report: report})
	if err != nil {
		return "", fmt.Errorf("%s summary: %w", s.provider.Name(), err)
	}

	return resp.Summary, nil
}
