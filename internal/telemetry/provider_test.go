package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := Setup(context.Background(), "test-service", "")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// non-routable address so no export happens
	shutdown, err := Setup(context.Background(), "test-service", "http://192.0.2.1:4318")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestTracer_StartsSpan(t *testing.T) {
	ctx, span := Tracer("test").Start(context.Background(), "op")
	defer span.End()
	require.NotNil(t, ctx)
}
