package llm

import (
	"context"
	"errors"
	"strings"
)

// GeminiBaseURL is Google's OpenAI-compatible endpoint for Gemini models.
const GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// ErrEmptyResponse is returned by GoogleProvider when Gemini answers with no text.
var ErrEmptyResponse = errors.New("empty response from google ai")

// GoogleProvider talks to Gemini. It only produces free text, so every
// response is a generalQuery and never triggers a side effect.
type GoogleProvider struct {
	client chatCompleter
	model  string
}

// NewGoogleProvider builds a Gemini provider. An empty baseURL uses
// GeminiBaseURL.
func NewGoogleProvider(apiKey, baseURL, model string) *GoogleProvider {
	if baseURL == "" {
		baseURL = GeminiBaseURL
	}
	return &GoogleProvider{client: newClient(apiKey, baseURL), model: model}
}

func (p *GoogleProvider) GenerateResponse(ctx context.Context, model string, messages []Message) (*Response, error) {
	if model == "" {
		model = p.model
	}
	content, err := completeText(ctx, p.client, model, messages)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyResponse
	}
	return &Response{Intent: IntentGeneralQuery, Content: content}, nil
}
