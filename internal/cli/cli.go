// Package cli implements the iacgen operator tool.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/instanti8/api/internal/classifier"
	"github.com/instanti8/api/internal/config"
	"github.com/instanti8/api/internal/generator"
	"github.com/instanti8/api/internal/models"
	"github.com/instanti8/api/internal/service"
	"github.com/instanti8/api/internal/templates"
)

const name = "iacgen"

// New returns the root command writing results to out and diagnostics to errOut
func New(out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Classify infrastructure prompts and generate Pulumi TypeScript",
		Writer:    out,
		ErrWriter: errOut,
		Commands: []*cli.Command{
			classifyCmd(),
			templateCmd(),
			generateCmd(),
			requestCmd(),
		},
	}
}

func promptArg(cmd *cli.Command) (string, error) {
	prompt := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if prompt == "" {
		return "", errors.New("a prompt is required")
	}
	return prompt, nil
}

func classifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "Print the provider and infrastructure-type labels for a prompt",
		ArgsUsage: "<prompt>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			prompt, err := promptArg(cmd)
			if err != nil {
				return err
			}
			c := classifier.Classify(prompt)
			_, err = fmt.Fprintf(cmd.Root().Writer, "provider:   %s\ninfra type: %s\n", c.Provider, c.InfraType)
			return err
		},
	}
}

func templateCmd() *cli.Command {
	return &cli.Command{
		Name:  "template",
		Usage: "Print the fallback template for a provider and infrastructure type",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "provider",
				Value: models.ProviderMultiCloud.String(),
				Usage: fmt.Sprintf("Cloud provider (supported values: %v)", models.Providers()),
			},
			&cli.StringFlag{
				Name:  "infra-type",
				Value: models.InfraTypeGeneral.String(),
				Usage: fmt.Sprintf("Infrastructure type (supported values: %v, VPC)", models.InfraTypes()),
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: fmt.Sprintf("Select a template by name instead (supported values: %v)", templates.Names()),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if n := cmd.String("name"); n != "" {
				code, err := templates.ByName(n)
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.Root().Writer, code)
				return err
			}

			provider, err := classifier.ParseProvider(cmd.String("provider"))
			if err != nil {
				return err
			}
			infraType, err := classifier.ParseInfraType(cmd.String("infra-type"))
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.Root().Writer, templates.Lookup(provider, infraType))
			return err
		},
	}
}

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Run the generation pipeline in-process using the server configuration",
		ArgsUsage: "<prompt>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "Skip the chat-completion call and use the fallback template",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log pipeline decisions to stderr",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the API response shape as JSON instead of raw code",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			prompt, err := promptArg(cmd)
			if err != nil {
				return err
			}

			var outcome service.Outcome
			if cmd.Bool("offline") {
				outcome = service.Offline(prompt)
			} else {
				cfg := config.Load()
				logger := zap.NewNop()
				if cmd.Bool("verbose") {
					// Development config writes to stderr, keeping stdout for code.
					if logger, err = zap.NewDevelopment(); err != nil {
						return err
					}
				}
				outcome, err = service.New(generator.NewClient(cfg), logger).Run(ctx, prompt)
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.Root().ErrWriter, "provider=%s infra_type=%s source=%s\n",
				outcome.Classification.Provider, outcome.Classification.InfraType, outcome.Source)
			if outcome.Cause != nil {
				fmt.Fprintf(cmd.Root().ErrWriter, "fallback cause: %v\n", outcome.Cause)
			}

			if cmd.Bool("json") {
				return writeJSON(cmd.Root().Writer, outcome.Response())
			}
			_, err = io.WriteString(cmd.Root().Writer, outcome.Code)
			return err
		},
	}
}

func requestCmd() *cli.Command {
	return &cli.Command{
		Name:      "request",
		Usage:     "Send a prompt to a running server and print the response",
		ArgsUsage: "<prompt>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Value: "http://localhost:8000",
				Usage: "Base URL of the API server",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 2 * time.Minute,
				Usage: "Request timeout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			prompt, err := promptArg(cmd)
			if err != nil {
				return err
			}

			body, err := json.Marshal(models.GenerationRequest{Prompt: prompt})
			if err != nil {
				return err
			}
			url := strings.TrimRight(cmd.String("url"), "/") + "/api/generate-infrastructure"
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := (&http.Client{Timeout: cmd.Duration("timeout")}).Do(req)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				var e models.ErrorResponse
				if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Detail != "" {
					return fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Detail)
				}
				return fmt.Errorf("server returned %d", resp.StatusCode)
			}

			var out models.GenerationResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return writeJSON(cmd.Root().Writer, out)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
