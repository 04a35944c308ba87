// Package classifier maps free-text infrastructure descriptions onto
// provider and infrastructure-type labels by keyword matching.
package classifier

import (
	"fmt"
	"strings"

	"github.com/instanti8/api/internal/models"
)

type providerRule struct {
	label    models.ProviderLabel
	keywords []string
}

type infraTypeRule struct {
	label    models.InfraTypeLabel
	keywords []string
}

// Rules are evaluated in order; the first rule with a matching keyword wins.
var providerRules = []providerRule{
	{models.ProviderAWS, []string{"aws", "amazon"}},
	{models.ProviderAzure, []string{"azure", "microsoft"}},
	{models.ProviderGCP, []string{"gcp", "google"}},
}

var infraTypeRules = []infraTypeRule{
	{models.InfraTypeKubernetes, []string{"kubernetes", "k8s"}},
	{models.InfraTypeServerless, []string{"serverless", "lambda", "function"}},
	{models.InfraTypeNetwork, []string{"vpc", "network"}},
}

// Classification holds both labels derived from one prompt
type Classification struct {
	Provider  models.ProviderLabel
	InfraType models.InfraTypeLabel
}

// Classify derives both labels from text
func Classify(text string) Classification {
	lower := strings.ToLower(text)
	return Classification{
		Provider:  classifyProviderLower(lower),
		InfraType: classifyInfraTypeLower(lower),
	}
}

// ClassifyProvider returns the provider label for text, defaulting to multi-cloud
func ClassifyProvider(text string) models.ProviderLabel {
	return classifyProviderLower(strings.ToLower(text))
}

// ClassifyInfraType returns the infra-type label for text, defaulting to general
func ClassifyInfraType(text string) models.InfraTypeLabel {
	return classifyInfraTypeLower(strings.ToLower(text))
}

func classifyProviderLower(lower string) models.ProviderLabel {
	for _, r := range providerRules {
		if containsAny(lower, r.keywords) {
			return r.label
		}
	}
	return models.ProviderMultiCloud
}

func classifyInfraTypeLower(lower string) models.InfraTypeLabel {
	for _, r := range infraTypeRules {
		if containsAny(lower, r.keywords) {
			return r.label
		}
	}
	return models.InfraTypeGeneral
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// ParseProvider resolves a user-supplied provider name, accepting either the
// label itself or any of its classification keywords.
func ParseProvider(name string) (models.ProviderLabel, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range models.Providers() {
		if n == strings.ToLower(string(p)) {
			return p, nil
		}
	}
	for _, r := range providerRules {
		for _, k := range r.keywords {
			if n == k {
				return r.label, nil
			}
		}
	}
	return "", fmt.Errorf("unknown provider %q (supported values: %v)", name, models.Providers())
}

// ParseInfraType resolves a user-supplied infra type name. VPC is accepted
// in addition to the classifier labels.
func ParseInfraType(name string) (models.InfraTypeLabel, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == strings.ToLower(string(models.InfraTypeVPC)) {
		return models.InfraTypeVPC, nil
	}
	for _, t := range models.InfraTypes() {
		if n == strings.ToLower(string(t)) {
			return t, nil
		}
	}
	for _, r := range infraTypeRules {
		for _, k := range r.keywords {
			if n == k {
				return r.label, nil
			}
		}
	}
	return "", fmt.Errorf("unknown infra type %q (supported values: %v)", name, models.InfraTypes())
}
