package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instanti8/api/internal/models"
	"github.com/instanti8/api/internal/templates"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := New(&out, &errOut).Run(context.Background(), append([]string{name}, args...))
	return out.String(), errOut.String(), err
}

func TestClassify(t *testing.T) {
	out, _, err := run(t, "classify", "Deploy", "an", "EKS", "kubernetes", "cluster", "on", "aws")
	require.NoError(t, err)
	assert.Contains(t, out, "provider:   AWS")
	assert.Contains(t, out, "infra type: Kubernetes")
}

func TestClassifyRequiresPrompt(t *testing.T) {
	_, _, err := run(t, "classify")
	assert.EqualError(t, err, "a prompt is required")
}

func TestTemplate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"defaults", []string{"template"}, templates.MultiCloud()},
		{"gcp kubernetes", []string{"template", "--provider", "gcp", "--infra-type", "kubernetes"}, templates.GCPKubernetes()},
		{"aws vpc", []string{"template", "--provider", "AWS", "--infra-type", "vpc"}, templates.AWSVPC()},
		{"by name", []string{"template", "--name", "azure-network"}, templates.AzureNetwork()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestTemplateUnknownProvider(t *testing.T) {
	_, _, err := run(t, "template", "--provider", "oracle")
	assert.Error(t, err)
}

func TestGenerateOffline(t *testing.T) {
	out, errOut, err := run(t, "generate", "--offline", "azure virtual network with subnets")
	require.NoError(t, err)
	assert.Equal(t, templates.AzureNetwork(), out)
	assert.Contains(t, errOut, "provider=Azure infra_type=Network source=template")
}

func TestGenerateRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"export const bucket = 1;"}}]}`))
	}))
	defer srv.Close()

	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_API_URL", srv.URL)

	out, errOut, err := run(t, "generate", "--json", "aws s3 bucket behind a lambda function")
	require.NoError(t, err)
	assert.Contains(t, errOut, "source=remote")

	var resp models.GenerationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "export const bucket = 1;", resp.Code)
	require.NotNil(t, resp.CloudProvider)
	assert.Equal(t, models.ProviderAWS, *resp.CloudProvider)
	require.NotNil(t, resp.InfraType)
	assert.Equal(t, models.InfraTypeServerless, *resp.InfraType)
}

func TestGenerateMissingCredential(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	_, _, err := run(t, "generate", "gke cluster")
	assert.EqualError(t, err, "GROQ_API_KEY environment variable not set")
}

func TestRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate-infrastructure", r.URL.Path)

		var req models.GenerationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gke cluster", req.Prompt)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.NewGenerationResponse("code", models.ProviderGCP, models.InfraTypeKubernetes))
	}))
	defer srv.Close()

	out, _, err := run(t, "request", "--url", srv.URL+"/", "gke", "cluster")
	require.NoError(t, err)

	var resp models.GenerationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "code", resp.Code)
	assert.Equal(t, models.ProviderGCP, *resp.CloudProvider)
}

func TestRequestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"GROQ_API_KEY environment variable not set"}`))
	}))
	defer srv.Close()

	_, _, err := run(t, "request", "--url", srv.URL, "anything")
	assert.EqualError(t, err, "server returned 500: GROQ_API_KEY environment variable not set")
}
