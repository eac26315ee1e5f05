package ai

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/wanyue/mindgarden/backend/internal/config"
)

// Service generates meditation guidance through the configured chat model.
type Service struct {
	chatModel model.ChatModel
	cfg       config.AIConfig
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates a new AI service instance
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		cfg:       cfg,
		chain:     runnable,
	}, nil
}

// GenerateReply produces guidance for one finalized user utterance. The
// session context map is flattened into the query the way the guide prompt
// expects it.
func (s *Service) GenerateReply(ctx context.Context, userText string, sessionCtx map[string]any) (string, error) {
	input := map[string]any{
		"system": guideSystemPrompt,
		"query":  fmt.Sprintf("Session context: %s. User said: %s", formatContext(sessionCtx), userText),
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}

	log.Printf("[ai] generated guidance length=%d", len(response.Content))
	return response.Content, nil
}

// GetChatModel 返回底层的聊天模型
func (s *Service) GetChatModel() model.ChatModel {
	return s.chatModel
}

// formatContext renders the context map deterministically (sorted keys).
func formatContext(sessionCtx map[string]any) string {
	if len(sessionCtx) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(sessionCtx))
	for k := range sessionCtx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, sessionCtx[k]))
	}
	return strings.Join(parts, ", ")
}
