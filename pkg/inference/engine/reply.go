package engine

import (
	"github.com/go-go-golems/cicerone/pkg/turns"
)

// ReplyKind classifies what the model produced.
type ReplyKind string

const (
	// ReplyKindText is a final natural-language answer.
	ReplyKindText ReplyKind = "text"
	// ReplyKindToolCall is a request to run a declared tool.
	ReplyKindToolCall ReplyKind = "tool_call"
	// ReplyKindNone means the engine appended nothing usable.
	ReplyKindNone ReplyKind = "none"
)

// Reply is the typed outcome of one inference step.
type Reply struct {
	Kind     ReplyKind
	Text     string
	ToolCall turns.ToolCall
}

// ExtractReply classifies what the engine appended to the Turn. since is the
// number of blocks the Turn had before RunInference; only blocks appended
// after that index are considered, so stale unanswered tool calls from
// earlier requests cannot shadow a fresh text answer.
func ExtractReply(t *turns.Turn, since int) Reply {
	if t == nil || since < 0 || since > len(t.Blocks) {
		return Reply{Kind: ReplyKindNone}
	}
	for i := len(t.Blocks) - 1; i >= since; i-- {
		b := t.Blocks[i]
		switch b.Kind {
		case turns.BlockKindToolCall:
			if call, ok := turns.ToolCallFromBlock(b); ok {
				return Reply{Kind: ReplyKindToolCall, ToolCall: call}
			}
		case turns.BlockKindLLMText:
			if txt, ok := b.Payload[turns.PayloadKeyText].(string); ok {
				return Reply{Kind: ReplyKindText, Text: txt}
			}
		}
	}
	return Reply{Kind: ReplyKindNone}
}
