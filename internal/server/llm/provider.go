// Package llm adapts chat-completion vendors to the companion's intent
// contract: a role-tagged message list goes in, and either free text or a
// structured addEvent/addNote request comes out.
package llm

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/supreassistant/internal/server/config"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

// Intent classifies what a model turn asks the backend to do.
type Intent string

const (
	IntentAddEvent     Intent = "addEvent"
	IntentAddNote      Intent = "addNote"
	IntentGeneralQuery Intent = "generalQuery"
)

// NoResponseText is returned as content when the model produced nothing.
const NoResponseText = "No response from AI"

// Message is one prompt entry.
type Message struct {
	Role    models.Role
	Content string
}

// Response is the adapter's answer. Event is set only for IntentAddEvent and
// Note only for IntentAddNote.
type Response struct {
	Intent  Intent
	Content string
	Event   *models.CreateEventData
	Note    *models.CreateNoteData
}

// Provider turns a prompt into a Response. model overrides the provider's
// default model when non-empty. Vendor and network errors are returned as is.
type Provider interface {
	GenerateResponse(ctx context.Context, model string, messages []Message) (*Response, error)
}

// New returns the provider selected by cfg.LLMProvider.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai api key is required")
		}
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case config.ProviderGoogle:
		if cfg.GoogleAPIKey == "" {
			return nil, fmt.Errorf("google api key is required")
		}
		return NewGoogleProvider(cfg.GoogleAPIKey, "", cfg.GoogleModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
