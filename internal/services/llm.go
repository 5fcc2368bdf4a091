package services

import (
	"context"

	"github.com/jwebster45206/survival-engine/pkg/chat"
)

// LLMService defines the interface for interacting with the LLM API
type LLMService interface {
	// InitModel verifies the model is usable before play starts
	InitModel(ctx context.Context, modelName string) error

	// Chat generates a completion for the given messages
	Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
}
