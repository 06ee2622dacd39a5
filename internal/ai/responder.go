// Package ai holds the fallback responder: when neither the command
// dispatcher nor the local answer generator can handle a message, it is
// forwarded to a chat-completion model together with the user's medical
// profile.
package ai

import (
	"context"
	"fmt"

	"github.com/medassist/assistant-gateway/pkg/model"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// Responder generates a free-text answer for a message the assistant
// could not resolve locally. Implementations make exactly one attempt;
// the caller converts any failure into an apology and never retries.
type Responder interface {
	Respond(ctx context.Context, message string, profile *model.UserProfile) (string, error)
}

// OpenAIResponder answers through an OpenAI-compatible chat completion
// endpoint.
type OpenAIResponder struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIResponder creates a responder against the given endpoint.
// baseURL may be empty to use the SDK default.
func NewOpenAIResponder(baseURL, apiKey, chatModel string, logger *zap.Logger) (*OpenAIResponder, error) {
	if apiKey == "" || chatModel == "" {
		return nil, fmt.Errorf("apiKey and model are required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &OpenAIResponder{
		client: &client,
		model:  chatModel,
		logger: logger,
	}, nil
}

// Respond sends a single chat completion request. The system prompt
// carries the user's medical profile so answers can take height, weight,
// blood type, allergies and conditions into account.
func (r *OpenAIResponder) Respond(ctx context.Context, message string, profile *model.UserProfile) (string, error) {
	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(r.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt(profile)),
			openai.UserMessage(message),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}

	r.logger.Info("fallback completion",
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	return content, nil
}

// SystemPrompt renders the profile-aware instruction block. A nil
// profile produces a generic assistant prompt.
func SystemPrompt(profile *model.UserProfile) string {
	if profile == nil {
		return "As a medical assistant, provide a helpful response."
	}
	return fmt.Sprintf(`User Medical Profile:
- Height: %gcm
- Weight: %gkg
- Blood Type: %s
- Allergies: %s
- Medical Conditions: %s

As a medical assistant, provide a helpful response based on this profile.`,
		profile.Height,
		profile.Weight,
		profile.BloodType,
		profile.Allergies,
		profile.MedicalConditions,
	)
}
