package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.0-flash-lite-001"

// Gemini calls a Gemini model through the Vertex AI backend.
type Gemini struct {
	client *genai.Client
}

// NewGemini builds a Vertex-backed translator using application default
// credentials for the given project and region.
func NewGemini(ctx context.Context, project, region string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  project,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &Gemini{client: client}, nil
}

func (g *Gemini) Translate(
	ctx context.Context,
	text, sourceURL string,
) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("input is empty")
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		geminiModel,
		genai.Text(buildPrompt(text, sourceURL)),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](temperature),
			TopP:            genai.Ptr[float32](topP),
			TopK:            genai.Ptr[float32](topK),
			MaxOutputTokens: maxOutputTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", errors.New("output text is missing")
	}

	return out, nil
}
