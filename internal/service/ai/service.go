package ai

import (
	"context"
	"errors"
	"fmt"

	"chatrelay/internal/config"
	"chatrelay/internal/models"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

const claudeMaxTokens = 3000

// ErrEmptyReply is returned when the provider answers without a message.
var ErrEmptyReply = errors.New("model returned no message")

// NewChatModel builds the chat model for the configured provider.
func NewChatModel(ctx context.Context, cfg *config.Config) (model.BaseChatModel, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	provCfg := cfg.ActiveProvider()

	var (
		chatModel model.BaseChatModel
		err       error
	)
	switch cfg.Chat.Provider {
	case "gemini":
		client, cerr := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  provCfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if cerr != nil {
			return nil, fmt.Errorf("create gemini client: %w", cerr)
		}
		chatModel, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  provCfg.Model,
		})
	case "openai":
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: provCfg.BaseURL,
			Model:   provCfg.Model,
			APIKey:  provCfg.APIKey,
		})
	case "claude":
		var baseURLPtr *string
		if provCfg.BaseURL != "" {
			baseURLPtr = &provCfg.BaseURL
		}
		chatModel, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:    provCfg.APIKey,
			Model:     provCfg.Model,
			BaseURL:   baseURLPtr,
			MaxTokens: claudeMaxTokens,
		})
	default:
		return nil, fmt.Errorf("invalid provider: %s", cfg.Chat.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s chat model: %w", cfg.Chat.Provider, err)
	}
	return chatModel, nil
}

// Relay sends one user message, prefixed by the system instruction, to the chat model.
// It holds no per-request state and is safe for concurrent use.
type Relay struct {
	chatModel   model.BaseChatModel
	instruction string
	temperature float32
}

// NewRelay expects chat as returned by config.Load, with defaults applied.
func NewRelay(chatModel model.BaseChatModel, chat config.ChatConfig) *Relay {
	return &Relay{
		chatModel:   chatModel,
		instruction: chat.SystemInstruction,
		temperature: chat.TemperatureValue(),
	}
}

// Reply returns the model's text for message. Provider errors are returned as is.
func (r *Relay) Reply(ctx context.Context, message string) (string, error) {
	turns := []*models.Message{
		{Role: models.RoleSystem, Content: r.instruction},
		{Role: models.RoleUser, Content: message},
	}
	out, err := r.chatModel.Generate(ctx, convertMessages(turns), model.WithTemperature(r.temperature))
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", ErrEmptyReply
	}
	return out.Content, nil
}

func convertMessages(turns []*models.Message) []*schema.Message {
	messages := make([]*schema.Message, 0, len(turns))
	for _, msg := range turns {
		var role schema.RoleType
		switch msg.Role {
		case models.RoleUser:
			role = schema.User
		case models.RoleAssistant:
			role = schema.Assistant
		case models.RoleSystem:
			role = schema.System
		default:
			role = schema.User
		}

		messages = append(messages, &schema.Message{
			Role:    role,
			Content: msg.Content,
		})
	}
	return messages
}
