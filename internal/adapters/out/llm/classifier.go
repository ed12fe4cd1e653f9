// Package llm classifies utterances with an OpenAI-compatible chat completion API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/intent"
	"ordering/internal/core/ports"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 20 * time.Second
)

var ErrEmptyCompletion = errors.New("classifier returned no choices")

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Classifier struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewClassifier(cfg Config, logger *slog.Logger) *Classifier {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Classifier{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
		logger:  logger.With("component", "IntentClassifier"),
	}
}

// Classify returns an error when the API could not be reached, answered
// without a choice, or answered with content naming no intent. The last case
// wraps ports.ErrUnparsableClassification.
func (c *Classifier) Classify(ctx context.Context, req ports.ClassifyRequest) (intent.Intent, error) {
	prompt, err := userPrompt(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	content := completion.Choices[0].Message.Content
	result, ok := ParseOutput(content)
	if !ok {
		c.logger.WarnContext(ctx, "unparsable classifier output", "content", content)
		return nil, fmt.Errorf("%w: %q", ports.ErrUnparsableClassification, content)
	}

	c.logger.DebugContext(ctx, "classified", "intent", string(result.Kind()), "customerId", req.Profile.ID)
	return result, nil
}
