package resilience_test

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/citypulse/internal/provider/resilience"
)

func TestRegistry_RegisterAndHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	client := resilience.NewClient(resilience.DefaultClientConfig("tomtom-flow"))

	registry.Register("tomtom-flow", client)

	health := registry.GetHealth("tomtom-flow")
	require.NotNil(t, health)
	assert.Equal(t, "tomtom-flow", health.Name)
	assert.Equal(t, gobreaker.StateClosed, health.CircuitState)
	assert.True(t, health.IsHealthy())
	assert.Nil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)
}

func TestRegistry_UnknownProvider(t *testing.T) {
	registry := resilience.NewRegistry()
	assert.Nil(t, registry.GetHealth("nope"))
}

func TestRegistry_RecordSuccessAndFailure(t *testing.T) {
	registry := resilience.NewRegistry()
	client := resilience.NewClient(resilience.DefaultClientConfig("analysis"))
	registry.Register("analysis", client)

	registry.RecordSuccess("analysis")
	health := registry.GetHealth("analysis")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)

	registry.RecordFailure("analysis", errors.New("timeout"))
	health = registry.GetHealth("analysis")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastFailureAt)
	assert.Equal(t, "timeout", health.LastError)
}

func TestRegistry_GetAllHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("tomtom-flow", resilience.NewClient(resilience.DefaultClientConfig("tomtom-flow")))
	registry.Register("tomtom-incidents", resilience.NewClient(resilience.DefaultClientConfig("tomtom-incidents")))

	all := registry.GetAllHealth()
	assert.Len(t, all, 2)
	assert.Equal(t, 2, registry.ProviderCount())
	assert.ElementsMatch(t, []string{"tomtom-flow", "tomtom-incidents"}, registry.GetProviderNames())

	registry.Unregister("tomtom-flow")
	assert.Equal(t, 1, registry.ProviderCount())
}
