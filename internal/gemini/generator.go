// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Generator produces Markdown for a single prompt. The production
// implementation calls the Gemini API; tests supply mocks.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// genaiGenerator is the SDK-backed Generator.
type genaiGenerator struct {
	client         *genai.Client
	model          string
	thinkingBudget int32
}

func newGenaiGenerator(ctx context.Context, apiKey, model string, thinkingBudget int32) (*genaiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &genaiGenerator{client: client, model: model, thinkingBudget: thinkingBudget}, nil
}

func (g *genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget:  genai.Ptr(g.thinkingBudget),
			IncludeThoughts: false,
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", classify(err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("model returned empty response")
	}
	return text, nil
}

// classify maps SDK errors to package error types. A quota failure becomes
// a RateLimitError carrying the server-suggested delay, if any.
func classify(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.Code != http.StatusTooManyRequests && apiErr.Status != "RESOURCE_EXHAUSTED" {
		return err
	}
	return &RateLimitError{RetryAfter: retryDelay(apiErr), Err: err}
}

// retryDelay extracts the retryDelay duration from a google.rpc.RetryInfo
// detail. Values arrive as strings like "7s", which time.ParseDuration
// handles directly.
func retryDelay(apiErr genai.APIError) time.Duration {
	for _, detail := range apiErr.Details {
		typeURL, _ := detail["@type"].(string)
		if !strings.HasSuffix(typeURL, "google.rpc.RetryInfo") {
			continue
		}
		raw, _ := detail["retryDelay"].(string)
		if raw == "" {
			continue
		}
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return 0
}
