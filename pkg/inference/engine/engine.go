package engine

import (
	"context"

	"github.com/go-go-golems/cicerone/pkg/turns"
)

// Engine represents an AI inference engine that can process a conversation
// turn and return it extended with exactly one model reply block: either
// assistant text or a tool_call. Engines handle provider-specific logic.
//
// Engines must not retry internally; retry policy, if any, belongs to the
// caller. Engines work on the Turn they are given and do not touch any
// shared history; the orchestrator owns history mutation.
type Engine interface {
	RunInference(ctx context.Context, t *turns.Turn) (*turns.Turn, error)

	// Close releases the engine's underlying connection or session. Safe to
	// call once on shutdown regardless of exit path.
	Close() error
}
