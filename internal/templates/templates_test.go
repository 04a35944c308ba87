package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instanti8/api/internal/models"
)

func TestLookupExactPairs(t *testing.T) {
	assert.Equal(t, GCPKubernetes(), Lookup(models.ProviderGCP, models.InfraTypeKubernetes))
	assert.Equal(t, AzureNetwork(), Lookup(models.ProviderAzure, models.InfraTypeNetwork))
	assert.Equal(t, AWSVPC(), Lookup(models.ProviderAWS, models.InfraTypeNetwork))
	assert.Equal(t, AWSVPC(), Lookup(models.ProviderAWS, models.InfraTypeVPC))
}

func TestLookupFallsBackToMultiCloud(t *testing.T) {
	pairs := []struct {
		p models.ProviderLabel
		t models.InfraTypeLabel
	}{
		{models.ProviderMultiCloud, models.InfraTypeGeneral},
		{models.ProviderAWS, models.InfraTypeKubernetes},
		{models.ProviderAWS, models.InfraTypeServerless},
		{models.ProviderAWS, models.InfraTypeGeneral},
		{models.ProviderAzure, models.InfraTypeKubernetes},
		{models.ProviderAzure, models.InfraTypeVPC},
		{models.ProviderGCP, models.InfraTypeNetwork},
		{models.ProviderMultiCloud, models.InfraTypeKubernetes},
		{models.ProviderMultiCloud, models.InfraTypeNetwork},
	}
	for _, pair := range pairs {
		assert.Equal(t, MultiCloud(), Lookup(pair.p, pair.t), "%s/%s", pair.p, pair.t)
	}
}

func TestTemplatesContent(t *testing.T) {
	assert.Contains(t, GCPKubernetes(), "new gcp.container.Cluster(`${namePrefix}-gke-cluster`")
	assert.Contains(t, AzureNetwork(), "new network.VirtualNetwork(\"azure-vnet\"")
	assert.Contains(t, AWSVPC(), "new aws.ec2.Vpc(`${namePrefix}-vpc`")
	assert.Contains(t, MultiCloud(), "new gcp.storage.Bucket(`${namePrefix}-bucket`")
}

func TestTemplatesExactText(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		prefix string
		size   int
	}{
		{"gcp-kubernetes", GCPKubernetes(), "\nimport * as pulumi", 3034},
		{"azure-network", AzureNetwork(), "\n// Azure Virtual Network", 1812},
		{"aws-vpc", AWSVPC(), "\nimport * as pulumi", 3539},
		{"multi-cloud", MultiCloud(), "\nimport * as pulumi", 1271},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(tt.code, tt.prefix), "prefix %q", tt.code[:20])
			assert.True(t, strings.HasSuffix(tt.code, ";\n"))
			assert.Len(t, tt.code, tt.size)
		})
	}
}

func TestByName(t *testing.T) {
	assert.Equal(t, []string{"aws-vpc", "azure-network", "gcp-kubernetes", "multi-cloud"}, Names())

	for name, want := range map[string]string{
		"gcp-kubernetes": GCPKubernetes(),
		"azure-network":  AzureNetwork(),
		"aws-vpc":        AWSVPC(),
		"multi-cloud":    MultiCloud(),
	} {
		code, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, want, code, name)
	}

	_, err := ByName("oracle")
	assert.Error(t, err)
}
