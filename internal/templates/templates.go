// Package templates holds the static Pulumi TypeScript programs returned
// when remote generation is unavailable.
package templates

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/instanti8/api/internal/models"
)

var (
	//go:embed gcp_kubernetes.ts
	gcpKubernetes string

	//go:embed azure_network.ts
	azureNetwork string

	//go:embed aws_vpc.ts
	awsVPC string

	//go:embed multi_cloud.ts
	multiCloud string
)

// GCPKubernetes returns the GKE cluster and deployment program
func GCPKubernetes() string { return gcpKubernetes }

// AzureNetwork returns the Azure virtual network and security group program
func AzureNetwork() string { return azureNetwork }

// AWSVPC returns the AWS VPC program
func AWSVPC() string { return awsVPC }

// MultiCloud returns the multi-provider storage program used for every
// combination without a dedicated template.
func MultiCloud() string { return multiCloud }

type key struct {
	provider  models.ProviderLabel
	infraType models.InfraTypeLabel
}

var table = map[key]string{
	{models.ProviderGCP, models.InfraTypeKubernetes}: gcpKubernetes,
	{models.ProviderAzure, models.InfraTypeNetwork}:  azureNetwork,
	{models.ProviderAWS, models.InfraTypeNetwork}:    awsVPC,
	{models.ProviderAWS, models.InfraTypeVPC}:        awsVPC,
}

// Lookup returns the template for an exact (provider, infraType) pair, or
// the multi-cloud template for any other combination.
func Lookup(provider models.ProviderLabel, infraType models.InfraTypeLabel) string {
	if code, ok := table[key{provider, infraType}]; ok {
		return code
	}
	return multiCloud
}

var byName = map[string]string{
	"gcp-kubernetes": gcpKubernetes,
	"azure-network":  azureNetwork,
	"aws-vpc":        awsVPC,
	"multi-cloud":    multiCloud,
}

// Names returns the template names accepted by ByName, sorted
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ByName returns a template by its short name
func ByName(name string) (string, error) {
	code, ok := byName[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q (supported values: %v)", name, Names())
	}
	return code, nil
}
