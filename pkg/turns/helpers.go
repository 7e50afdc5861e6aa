package turns

import (
	"encoding/json"
)

// ToolCall represents a pending tool invocation described by a tool_call block.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// ToolCallFromBlock decodes a tool_call block into a ToolCall. Returns false
// for blocks of any other kind or without an id.
func ToolCallFromBlock(b Block) (ToolCall, bool) {
	if b.Kind != BlockKindToolCall {
		return ToolCall{}, false
	}
	id, _ := b.Payload[PayloadKeyID].(string)
	if id == "" {
		return ToolCall{}, false
	}
	name, _ := b.Payload[PayloadKeyName].(string)
	var args map[string]any
	if raw := b.Payload[PayloadKeyArgs]; raw != nil {
		switch v := raw.(type) {
		case map[string]any:
			args = v
		case string:
			_ = json.Unmarshal([]byte(v), &args)
		case json.RawMessage:
			_ = json.Unmarshal(v, &args)
		default:
			if bts, err := json.Marshal(v); err == nil {
				_ = json.Unmarshal(bts, &args)
			}
		}
	}
	if args == nil {
		args = map[string]any{}
	}
	return ToolCall{ID: id, Name: name, Arguments: args}, true
}

// AnsweredToolCallIDs collects the ids of tool_use blocks, i.e. the tool
// calls that already have a result.
func AnsweredToolCallIDs(t *Turn) map[string]bool {
	used := make(map[string]bool)
	if t == nil {
		return used
	}
	for _, b := range t.Blocks {
		if b.Kind == BlockKindToolUse {
			if id, ok := b.Payload[PayloadKeyID].(string); ok && id != "" {
				used[id] = true
			}
		}
	}
	return used
}

// ExtractPendingToolCalls finds tool_call blocks that don't yet have a
// matching tool_use block, in turn order.
func ExtractPendingToolCalls(t *Turn) []ToolCall {
	if t == nil {
		return nil
	}
	used := AnsweredToolCallIDs(t)
	var calls []ToolCall
	for _, b := range t.Blocks {
		call, ok := ToolCallFromBlock(b)
		if !ok || used[call.ID] {
			continue
		}
		calls = append(calls, call)
	}
	return calls
}

// LastAssistantText returns the text of the last llm_text block, or "" when
// the turn ends without assistant output.
func LastAssistantText(t *Turn) string {
	if t == nil {
		return ""
	}
	for i := len(t.Blocks) - 1; i >= 0; i-- {
		b := t.Blocks[i]
		if b.Kind != BlockKindLLMText {
			continue
		}
		if txt, ok := b.Payload[PayloadKeyText].(string); ok {
			return txt
		}
		return ""
	}
	return ""
}
