package ai

import (
	"context"

	"github.com/medassist/assistant-gateway/pkg/model"
)

// ChatBackend is the slice of the backend client used by RemoteResponder.
type ChatBackend interface {
	Chat(ctx context.Context, message string) (string, error)
}

// RemoteResponder delegates fallback messages to the health backend's
// /ai/chat endpoint. Used when the gateway has no direct model access;
// the backend builds the profile context itself, so the profile argument
// is ignored here.
type RemoteResponder struct {
	backend ChatBackend
}

func NewRemoteResponder(backend ChatBackend) *RemoteResponder {
	return &RemoteResponder{backend: backend}
}

func (r *RemoteResponder) Respond(ctx context.Context, message string, _ *model.UserProfile) (string, error) {
	return r.backend.Chat(ctx, message)
}
