// Package service orchestrates classification, remote generation and
// template fallback for one infrastructure request.
package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/instanti8/api/internal/classifier"
	"github.com/instanti8/api/internal/generator"
	"github.com/instanti8/api/internal/metrics"
	"github.com/instanti8/api/internal/models"
	"github.com/instanti8/api/internal/templates"
)

var tracer = otel.Tracer("github.com/instanti8/api/internal/service")

// Source records where the returned code came from
type Source string

const (
	SourceRemote   Source = "remote"
	SourceTemplate Source = "template"
)

// Outcome is the result of one generation attempt
type Outcome struct {
	Code           string
	Source         Source
	Classification classifier.Classification
	// Cause is the remote error that triggered the fallback, if any
	Cause error
}

// Response converts the outcome into the API response. The source is
// deliberately not part of it.
func (o Outcome) Response() *models.GenerationResponse {
	return models.NewGenerationResponse(o.Code, o.Classification.Provider, o.Classification.InfraType)
}

// Service handles infrastructure generation requests
type Service struct {
	gen    generator.Generator
	logger *zap.Logger
}

// New creates a service using gen for remote generation
func New(gen generator.Generator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Generate classifies the prompt and produces code for it. Remote failures
// are replaced by the matching template; only a missing credential is
// returned as an error.
func (s *Service) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResponse, error) {
	outcome, err := s.Run(ctx, req.Prompt)
	if err != nil {
		return nil, err
	}
	return outcome.Response(), nil
}

// Run is Generate returning the full outcome
func (s *Service) Run(ctx context.Context, prompt string) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "service.Generate")
	defer span.End()

	class := classifier.Classify(prompt)
	span.SetAttributes(
		attribute.String("iac.provider", class.Provider.String()),
		attribute.String("iac.infra_type", class.InfraType.String()),
	)

	outcome := Outcome{Classification: class}

	code, err := s.gen.Generate(ctx, prompt, class.Provider, class.InfraType)
	switch {
	case err == nil:
		outcome.Code = code
		outcome.Source = SourceRemote
	case errors.Is(err, generator.ErrMissingCredential):
		s.logger.Error("generation not configured", zap.Error(err))
		return Outcome{}, err
	default:
		s.logger.Warn("error generating code with Groq AI, using template",
			zap.String("provider", class.Provider.String()),
			zap.String("infra_type", class.InfraType.String()),
			zap.Error(err),
		)
		outcome.Code = templates.Lookup(class.Provider, class.InfraType)
		outcome.Source = SourceTemplate
		outcome.Cause = err
	}

	span.SetAttributes(attribute.String("iac.source", string(outcome.Source)))
	metrics.GenerationsTotal.WithLabelValues(string(outcome.Source), class.Provider.String(), class.InfraType.String()).Inc()

	s.logger.Info("infrastructure generated",
		zap.String("provider", class.Provider.String()),
		zap.String("infra_type", class.InfraType.String()),
		zap.String("source", string(outcome.Source)),
		zap.Int("code_bytes", len(outcome.Code)),
	)
	return outcome, nil
}

// Offline classifies the prompt and returns its template without any remote call
func Offline(prompt string) Outcome {
	class := classifier.Classify(prompt)
	return Outcome{
		Code:           templates.Lookup(class.Provider, class.InfraType),
		Source:         SourceTemplate,
		Classification: class,
	}
}
