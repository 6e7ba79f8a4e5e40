package analysis_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/citypulse/internal/analysis"
)

// mockProvider is a scriptable analysis backend for testing.
type mockProvider struct {
	mu         sync.Mutex
	response   string
	err        error
	delay      time.Duration
	lastPrompt string
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.lastPrompt = prompt
	response, err, delay := m.response, m.err, m.delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return response, nil
}

func (m *mockProvider) prompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

func newService(provider analysis.Provider, timeout time.Duration) *analysis.Service {
	return analysis.NewService(analysis.ServiceConfig{
		Provider: provider,
		Timeout:  timeout,
		Logger:   zerolog.Nop(),
	})
}

func payload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestAnalyze_LiveResponse(t *testing.T) {
	provider := &mockProvider{
		response: "Here you go:\n```json\n{\"insights\":\"x\",\"recommendations\":[\"a\"],\"forecast\":\"y\"}\n```",
	}
	service := newService(provider, time.Second)

	result := service.Analyze(context.Background(), analysis.Request{
		Payload: payload(t, map[string]int{"congestion": 72}),
		Kind:    analysis.KindTraffic,
	})

	require.NotNil(t, result)
	assert.Equal(t, "x", result.Insights)
	assert.Equal(t, []string{"a"}, result.Recommendations)
	assert.Equal(t, "y", result.Forecast)

	// The payload travels into the prompt verbatim.
	assert.Contains(t, provider.prompt(), `"congestion":72`)
}

func TestAnalyze_TimeoutServesFallback(t *testing.T) {
	provider := &mockProvider{
		delay:    5 * time.Second,
		response: `{"insights":"late","recommendations":["never"],"forecast":"seen"}`,
	}
	service := newService(provider, 50*time.Millisecond)

	start := time.Now()
	result := service.Analyze(context.Background(), analysis.Request{
		Payload: payload(t, map[string]string{}),
		Kind:    analysis.KindTraffic,
	})
	elapsed := time.Since(start)

	// Fallback has the same shape as a live result: all fields populated.
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Recommendations)
	assert.NotEmpty(t, result.Insights)
	assert.NotEmpty(t, result.Forecast)
	assert.Less(t, elapsed, time.Second, "timeout must cut the call off")
}

func TestAnalyze_BackendErrorServesFallback(t *testing.T) {
	provider := &mockProvider{err: errors.New("502 bad gateway")}
	service := newService(provider, time.Second)

	result := service.Analyze(context.Background(), analysis.Request{Kind: analysis.KindGrowth})

	require.NotNil(t, result)
	assert.NotEmpty(t, result.Recommendations)
	assert.NotEmpty(t, result.Insights)
	assert.NotEmpty(t, result.Forecast)
}

func TestAnalyze_UnparseableResponseServesFallback(t *testing.T) {
	provider := &mockProvider{response: "I'm sorry, I can't produce JSON today."}
	service := newService(provider, time.Second)

	result := service.Analyze(context.Background(), analysis.Request{Kind: analysis.KindEnvironmental})

	require.NotNil(t, result)
	assert.NotEmpty(t, result.Recommendations)
	assert.NotEmpty(t, result.Insights)
	assert.NotEmpty(t, result.Forecast)
}

func TestAnalyze_MissingFieldsServeFallback(t *testing.T) {
	// Parses fine but lacks a forecast: still the fallback.
	provider := &mockProvider{response: `{"insights":"only insights","recommendations":["r"]}`}
	service := newService(provider, time.Second)

	result := service.Analyze(context.Background(), analysis.Request{Kind: analysis.KindDensity})

	require.NotNil(t, result)
	assert.NotEqual(t, "only insights", result.Insights)
	assert.NotEmpty(t, result.Forecast)
}

func TestAnalyze_NilProviderServesFallback(t *testing.T) {
	service := newService(nil, time.Second)

	result := service.Analyze(context.Background(), analysis.Request{Kind: analysis.KindTraffic})

	require.NotNil(t, result)
	assert.NotEmpty(t, result.Recommendations)
	assert.NotEmpty(t, result.Insights)
	assert.NotEmpty(t, result.Forecast)
}

func TestAnalyze_UnknownKindUsesGeneralTemplate(t *testing.T) {
	provider := &mockProvider{err: errors.New("down")}
	service := newService(provider, time.Second)

	unknown := service.Analyze(context.Background(), analysis.Request{Kind: analysis.Kind("astrology")})
	general := service.Analyze(context.Background(), analysis.Request{Kind: analysis.KindGeneral})

	require.NotNil(t, unknown)
	assert.Equal(t, general, unknown, "unknown kinds map to the general fallback")
}

func TestAnalyze_FallbacksDifferByKind(t *testing.T) {
	service := newService(nil, time.Second)

	traffic := service.Analyze(context.Background(), analysis.Request{Kind: analysis.KindTraffic})
	growth := service.Analyze(context.Background(), analysis.Request{Kind: analysis.KindGrowth})

	assert.NotEqual(t, traffic.Insights, growth.Insights)
}

func TestAnalyze_FallbackCopyIsIsolated(t *testing.T) {
	service := newService(nil, time.Second)

	first := service.Analyze(context.Background(), analysis.Request{Kind: analysis.KindTraffic})
	first.Recommendations[0] = "mutated"

	second := service.Analyze(context.Background(), analysis.Request{Kind: analysis.KindTraffic})
	assert.NotEqual(t, "mutated", second.Recommendations[0])
}

func TestAnalyze_MetricsPassThrough(t *testing.T) {
	provider := &mockProvider{
		response: `{"insights":"i","recommendations":["r"],"forecast":"f","metrics":{"confidence":0.9}}`,
	}
	service := newService(provider, time.Second)

	result := service.Analyze(context.Background(), analysis.Request{Kind: analysis.KindTraffic})

	require.NotNil(t, result)
	assert.Equal(t, 0.9, result.Metrics["confidence"])
}
