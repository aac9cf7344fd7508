package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/dmitrijs2005/supreassistant/internal/timex"
	openai "github.com/sashabaranov/go-openai"
)

// chatCompleter is the part of *openai.Client the providers use.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

func newClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// OpenAIProvider asks the model for a structured reply first and falls back
// to a plain completion when the reply carries no actionable intent.
type OpenAIProvider struct {
	client   chatCompleter
	model    string
	location *time.Location
}

// NewOpenAIProvider builds a provider for the OpenAI chat completions API.
// An empty baseURL uses the public endpoint.
func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client:   newClient(apiKey, baseURL),
		model:    model,
		location: time.Local,
	}
}

type eventPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location"`
}

type notePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type structuredReply struct {
	Intent  Intent        `json:"intent"`
	Content string        `json:"content"`
	Event   *eventPayload `json:"event"`
	Note    *notePayload  `json:"note"`
}

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, model string, messages []Message) (*Response, error) {
	if model == "" {
		model = p.model
	}
	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: toOpenAIMessages(messages),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "assistant_reply",
				Schema: replySchema,
				Strict: true,
			},
		},
	}
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	if r, ok := p.interpret(firstContent(resp)); ok {
		return r, nil
	}
	return freeText(ctx, p.client, model, messages)
}

// interpret maps a structured reply to a Response. It reports false for
// generalQuery and for anything it cannot use.
func (p *OpenAIProvider) interpret(raw string) (*Response, bool) {
	if raw == "" {
		return nil, false
	}
	var reply structuredReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return nil, false
	}

	switch reply.Intent {
	case IntentAddEvent:
		if reply.Event == nil {
			return nil, false
		}
		start, err := timex.ParseTime(reply.Event.StartTime, p.location)
		if err != nil {
			return nil, false
		}
		end, err := timex.ParseTime(reply.Event.EndTime, p.location)
		if err != nil {
			return nil, false
		}
		description := reply.Event.Description
		return &Response{
			Intent:  IntentAddEvent,
			Content: eventConfirmation(reply.Event.Title, reply.Event.Location, description, start, end),
			Event: &models.CreateEventData{
				Title:       reply.Event.Title,
				Description: &description,
				StartTime:   &start,
				EndTime:     &end,
				Location:    reply.Event.Location,
			},
		}, true
	case IntentAddNote:
		if reply.Note == nil {
			return nil, false
		}
		return &Response{
			Intent:  IntentAddNote,
			Content: fmt.Sprintf("Note added: %s; Details: %s", reply.Note.Title, reply.Note.Content),
			Note:    &models.CreateNoteData{Title: reply.Note.Title, Content: reply.Note.Content},
		}, true
	}
	return nil, false
}

const confirmationTimeLayout = "Mon Jan 2 2006 15:04"

func eventConfirmation(title, location, description string, start, end time.Time) string {
	var b strings.Builder
	b.WriteString("Event added: ")
	b.WriteString(title)
	if location != "" {
		b.WriteString(" at ")
		b.WriteString(location)
	}
	fmt.Fprintf(&b, " on %s to %s", start.Format(confirmationTimeLayout), end.Format(confirmationTimeLayout))
	if description != "" {
		b.WriteString("; Details: ")
		b.WriteString(description)
	}
	return b.String()
}

// completeText issues a plain completion and returns the first choice.
func completeText(ctx context.Context, client chatCompleter, model string, messages []Message) (string, error) {
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: toOpenAIMessages(messages),
	})
	if err != nil {
		return "", err
	}
	return firstContent(resp), nil
}

// freeText wraps a plain completion as a generalQuery. An empty answer
// becomes NoResponseText.
func freeText(ctx context.Context, client chatCompleter, model string, messages []Message) (*Response, error) {
	content, err := completeText(ctx, client, model, messages)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		content = NoResponseText
	}
	return &Response{Intent: IntentGeneralQuery, Content: content}, nil
}

func firstContent(resp openai.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case models.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case models.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
