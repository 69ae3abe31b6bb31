// Package advisor wraps the external text-generation service that produces
// agronomic advice. The rest of the system treats it as an opaque
// prompt-in/text-out collaborator.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"agrisathi/internal/apperr"
)

// Generator is what services depend on; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client talks to an OpenAI-compatible completion endpoint.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	log     *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Client {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		api:     openai.NewClientWithConfig(c),
		model:   model,
		timeout: timeout,
		log:     log,
	}
}

const systemPrompt = "You are an experienced agriculture extension officer. " +
	"Give short, practical advice a smallholder farmer can act on. " +
	"If the question mentions a crop disease, include both an organic and a chemical treatment option."

// Generate returns the advice text for prompt. Failures and empty
// completions surface as AiUnavailable; the caller must not persist
// anything in that case.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	callID := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.log.Warn("advice generation failed",
			zap.String("call_id", callID),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return "", apperr.AiUnavailable(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		c.log.Warn("advice generation returned empty completion", zap.String("call_id", callID))
		return "", apperr.AiUnavailable(fmt.Errorf("empty completion"))
	}

	c.log.Debug("advice generated",
		zap.String("call_id", callID),
		zap.Duration("elapsed", time.Since(started)))
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildPrompt frames the farmer's question for the model, pinning the reply
// language so Hindi questions get Hindi answers.
func BuildPrompt(question, language string) string {
	if language == "" {
		language = "en"
	}
	return fmt.Sprintf("Answer in language %q.\n\nFarmer's question: %s", language, question)
}
