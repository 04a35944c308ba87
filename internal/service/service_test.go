package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/instanti8/api/internal/generator"
	"github.com/instanti8/api/internal/metrics"
	"github.com/instanti8/api/internal/models"
	"github.com/instanti8/api/internal/templates"
)

type fakeGenerator struct {
	code  string
	err   error
	calls int

	gotPrompt    string
	gotProvider  models.ProviderLabel
	gotInfraType models.InfraTypeLabel
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, provider models.ProviderLabel, infraType models.InfraTypeLabel) (string, error) {
	f.calls++
	f.gotPrompt, f.gotProvider, f.gotInfraType = prompt, provider, infraType
	return f.code, f.err
}

func TestGenerateRemoteSuccess(t *testing.T) {
	gen := &fakeGenerator{code: "const cluster = new gcp.container.Cluster();"}
	svc := New(gen, zaptest.NewLogger(t))

	resp, err := svc.Generate(context.Background(), models.GenerationRequest{Prompt: "GKE kubernetes on Google"})
	require.NoError(t, err)

	assert.Equal(t, gen.code, resp.Code)
	require.NotNil(t, resp.CloudProvider)
	require.NotNil(t, resp.InfraType)
	assert.Equal(t, models.ProviderGCP, *resp.CloudProvider)
	assert.Equal(t, models.InfraTypeKubernetes, *resp.InfraType)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "GKE kubernetes on Google", gen.gotPrompt)
	assert.Equal(t, models.ProviderGCP, gen.gotProvider)
	assert.Equal(t, models.InfraTypeKubernetes, gen.gotInfraType)
}

func TestGenerateFallsBackToTemplate(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		err    error
		want   string
	}{
		{"aws vpc on status error", "AWS VPC with public subnets", &generator.RemoteError{StatusCode: 503, Body: "unavailable"}, templates.AWSVPC()},
		{"azure network on network error", "Azure virtual network", &generator.RemoteError{Err: errors.New("connection refused")}, templates.AzureNetwork()},
		{"gke on decode error", "k8s on gcp", &generator.RemoteError{StatusCode: 200, Err: errors.New("decode")}, templates.GCPKubernetes()},
		{"multi-cloud on plain error", "a storage bucket", errors.New("context canceled"), templates.MultiCloud()},
		{"aws serverless falls to multi-cloud", "aws lambda", errors.New("boom"), templates.MultiCloud()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{err: tt.err}
			svc := New(gen, zaptest.NewLogger(t))

			outcome, err := svc.Run(context.Background(), tt.prompt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome.Code)
			assert.Equal(t, SourceTemplate, outcome.Source)
			assert.Equal(t, tt.err, outcome.Cause)
			assert.Equal(t, 1, gen.calls, "remote generation must be attempted exactly once")
		})
	}
}

func TestGenerateMissingCredentialIsNotMasked(t *testing.T) {
	gen := &fakeGenerator{err: generator.ErrMissingCredential}
	svc := New(gen, zaptest.NewLogger(t))

	resp, err := svc.Generate(context.Background(), models.GenerationRequest{Prompt: "aws vpc"})
	assert.ErrorIs(t, err, generator.ErrMissingCredential)
	assert.Nil(t, resp)
}

func TestGenerateResponseHidesSource(t *testing.T) {
	remote := New(&fakeGenerator{code: templates.AWSVPC()}, zaptest.NewLogger(t))
	fallback := New(&fakeGenerator{err: errors.New("down")}, zaptest.NewLogger(t))

	a, err := remote.Generate(context.Background(), models.GenerationRequest{Prompt: "aws vpc"})
	require.NoError(t, err)
	b, err := fallback.Generate(context.Background(), models.GenerationRequest{Prompt: "aws vpc"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateRecordsMetrics(t *testing.T) {
	counter := metrics.GenerationsTotal.WithLabelValues(string(SourceTemplate), "Azure", "Serverless")
	before := testutil.ToFloat64(counter)

	svc := New(&fakeGenerator{err: errors.New("down")}, zaptest.NewLogger(t))
	_, err := svc.Run(context.Background(), "azure function")
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestOffline(t *testing.T) {
	o := Offline("Azure VNet network")
	assert.Equal(t, templates.AzureNetwork(), o.Code)
	assert.Equal(t, SourceTemplate, o.Source)
	assert.Equal(t, models.ProviderAzure, o.Classification.Provider)
	assert.Equal(t, models.InfraTypeNetwork, o.Classification.InfraType)
}
