package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAI is the alternative provider for deployments without a GCP project.
type OpenAI struct {
	client openai.Client
}

func NewOpenAI(apiKey string) (*OpenAI, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key is empty")
	}

	return &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

func (o *OpenAI) Translate(
	ctx context.Context,
	text, sourceURL string,
) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("input is empty")
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildPrompt(text, sourceURL)),
		},
		Temperature:         openai.Float(temperature),
		TopP:                openai.Float(topP),
		MaxCompletionTokens: openai.Int(maxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("response has no choices")
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("output text is missing")
	}

	return out, nil
}
