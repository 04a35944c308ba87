package models

// ProviderLabel identifies the cloud platform a prompt targets
type ProviderLabel string

const (
	ProviderAWS        ProviderLabel = "AWS"
	ProviderAzure      ProviderLabel = "Azure"
	ProviderGCP        ProviderLabel = "Google Cloud Platform"
	ProviderMultiCloud ProviderLabel = "multi-cloud"
)

// String implements fmt.Stringer
func (p ProviderLabel) String() string { return string(p) }

// InfraTypeLabel identifies the kind of infrastructure a prompt asks for
type InfraTypeLabel string

const (
	InfraTypeKubernetes InfraTypeLabel = "Kubernetes"
	InfraTypeServerless InfraTypeLabel = "Serverless"
	InfraTypeNetwork    InfraTypeLabel = "Network"
	InfraTypeGeneral    InfraTypeLabel = "general"

	// InfraTypeVPC is never produced by the classifier. The template
	// library accepts it as an alias for AWS networking.
	InfraTypeVPC InfraTypeLabel = "VPC"
)

// String implements fmt.Stringer
func (t InfraTypeLabel) String() string { return string(t) }

// Providers lists every provider label in classification priority order
func Providers() []ProviderLabel {
	return []ProviderLabel{ProviderAWS, ProviderAzure, ProviderGCP, ProviderMultiCloud}
}

// InfraTypes lists every infra-type label in classification priority order
func InfraTypes() []InfraTypeLabel {
	return []InfraTypeLabel{InfraTypeKubernetes, InfraTypeServerless, InfraTypeNetwork, InfraTypeGeneral}
}

// GenerationRequest is the request body for infrastructure generation. The
// prompt key must be present; an empty string is accepted.
type GenerationRequest struct {
	Prompt string `json:"prompt" validate:"required" example:"Create an EKS cluster on AWS"`
}

// GenerationResponse is the response body for infrastructure generation
type GenerationResponse struct {
	Code          string          `json:"code"`
	CloudProvider *ProviderLabel  `json:"cloudProvider" swaggertype:"string" example:"AWS"`
	InfraType     *InfraTypeLabel `json:"infraType" swaggertype:"string" example:"Kubernetes"`
}

// NewGenerationResponse builds a response with both labels populated
func NewGenerationResponse(code string, provider ProviderLabel, infraType InfraTypeLabel) *GenerationResponse {
	return &GenerationResponse{
		Code:          code,
		CloudProvider: &provider,
		InfraType:     &infraType,
	}
}

// WelcomeResponse is returned from the API root
type WelcomeResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail string `json:"detail"`
}
