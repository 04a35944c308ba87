package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "instanti8-api", "test", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitTracerWithEndpoint(t *testing.T) {
	// The gRPC exporter connects lazily, so construction succeeds without a collector.
	shutdown, err := InitTracer(context.Background(), "instanti8-api", "test", "localhost:4317")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
