package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-planner/internal/infrastructure/config"
	"recipe-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const apiVersion = "2023-06-01"

// Client talks to the Anthropic Messages API.
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient creates an Anthropic client from the application config.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Anthropic.BaseURL).
		SetTimeout(cfg.Anthropic.Timeout).
		SetHeader("x-api-key", cfg.Anthropic.APIKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("Content-Type", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Generate sends one prompt with the given token budget and returns the first
// text block of the response. Every failure mode, from transport errors to a
// non-200 status or empty content, surfaces as an UpstreamError. The call is never
// retried here: generation calls are metered.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body := messagesRequest{
		Model:     c.config.Anthropic.Model,
		MaxTokens: maxTokens,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	common.LogInfo("sending generation request",
		zap.String("model", body.Model),
		zap.Int("max_tokens", maxTokens),
		zap.Int("prompt_length", len(prompt)),
	)

	start := time.Now()

	var result messagesResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/v1/messages")

	if err != nil {
		common.LogGenerationCall(time.Since(start), err, "")
		return "", common.NewUpstreamError("failed to reach generation API", err)
	}

	if resp.StatusCode() != http.StatusOK {
		err := fmt.Errorf("generation API returned status %d: %s", resp.StatusCode(), resp.String())
		common.LogGenerationCall(time.Since(start), err, "")
		return "", common.NewUpstreamError("generation API error", err)
	}

	for _, block := range result.Content {
		if block.Type == "text" && block.Text != "" {
			common.LogGenerationCall(time.Since(start), nil, "")
			common.LogDebug("generation usage",
				zap.Int("input_tokens", result.Usage.InputTokens),
				zap.Int("output_tokens", result.Usage.OutputTokens),
				zap.String("stop_reason", result.StopReason),
			)
			return block.Text, nil
		}
	}

	err = fmt.Errorf("no text block in generation response")
	common.LogGenerationCall(time.Since(start), err, "")
	return "", common.NewUpstreamError("empty generation response", err)
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
