package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Provider is a text-generation backend.
type Provider interface {
	// Complete sends a prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name for logging.
	Name() string
}

// DefaultTimeout is the hard ceiling on one backend call. The request is
// cancelled at the deadline; the caller gets the fallback instead of
// waiting.
const DefaultTimeout = 8 * time.Second

// ServiceConfig holds configuration for the analysis service.
type ServiceConfig struct {
	// Provider is the text-generation backend. Nil means unconfigured:
	// every call answers with the canned fallback.
	Provider Provider

	// Timeout bounds each backend call (default: 8 seconds).
	Timeout time.Duration

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service produces analysis results.
type Service struct {
	provider Provider
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewService creates a new analysis service.
func NewService(cfg ServiceConfig) *Service {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Service{
		provider: cfg.Provider,
		timeout:  timeout,
		logger:   cfg.Logger,
	}
}

// Analyze runs one analysis. It always returns a usable Result: the live
// backend response when it arrives in time and parses, the canned
// fallback for the request's kind otherwise.
func (s *Service) Analyze(ctx context.Context, req Request) *Result {
	kind := req.Kind.normalize()

	if s.provider == nil {
		return fallbackFor(kind)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := s.provider.Complete(ctx, buildPrompt(req))
	if err != nil {
		s.logger.Warn().
			Str("kind", string(kind)).
			Str("provider", s.provider.Name()).
			Err(err).
			Msg("analysis backend unavailable, serving fallback")
		return fallbackFor(kind)
	}

	raw, ok := extractJSON(body)
	if !ok {
		s.logger.Warn().
			Str("kind", string(kind)).
			Msg("no JSON object in analysis response, serving fallback")
		return fallbackFor(kind)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil || !result.complete() {
		s.logger.Warn().
			Str("kind", string(kind)).
			Msg("analysis response missing required fields, serving fallback")
		return fallbackFor(kind)
	}

	return &result
}
