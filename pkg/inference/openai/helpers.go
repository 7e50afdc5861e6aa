package openai

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	go_openai "github.com/sashabaranov/go-openai"

	"github.com/go-go-golems/cicerone/pkg/inference/tools"
	"github.com/go-go-golems/cicerone/pkg/turns"
)

// makeMessagesFromTurn converts Turn blocks into chat-completion messages.
// Provider ordering constraint: an assistant message carrying tool_calls must
// be immediately followed by the matching tool messages. Tool calls without a
// result (a request that ended before dispatch) therefore stay in the local
// history but are not sent on the wire.
func makeMessagesFromTurn(t *turns.Turn) []go_openai.ChatCompletionMessage {
	if t == nil {
		return nil
	}
	answered := turns.AnsweredToolCallIDs(t)
	var msgs []go_openai.ChatCompletionMessage
	for _, b := range t.Blocks {
		switch b.Kind {
		case turns.BlockKindSystem, turns.BlockKindUser, turns.BlockKindLLMText:
			text := payloadText(b)
			if text == "" {
				continue
			}
			role := go_openai.ChatMessageRoleUser
			switch b.Kind {
			case turns.BlockKindSystem:
				role = go_openai.ChatMessageRoleSystem
			case turns.BlockKindLLMText:
				role = go_openai.ChatMessageRoleAssistant
			}
			msgs = append(msgs, go_openai.ChatCompletionMessage{Role: role, Content: text})
		case turns.BlockKindToolCall:
			id, _ := b.Payload[turns.PayloadKeyID].(string)
			if !answered[id] {
				log.Debug().Str("id", id).Msg("openai: skipping unanswered tool_call block")
				continue
			}
			name, _ := b.Payload[turns.PayloadKeyName].(string)
			args := marshalArgs(b.Payload[turns.PayloadKeyArgs])
			msgs = append(msgs, go_openai.ChatCompletionMessage{
				Role: go_openai.ChatMessageRoleAssistant,
				ToolCalls: []go_openai.ToolCall{{
					ID:       id,
					Type:     go_openai.ToolTypeFunction,
					Function: go_openai.FunctionCall{Name: name, Arguments: args},
				}},
			})
		case turns.BlockKindToolUse:
			id, _ := b.Payload[turns.PayloadKeyID].(string)
			msgs = append(msgs, go_openai.ChatCompletionMessage{
				Role:       go_openai.ChatMessageRoleTool,
				ToolCallID: id,
				Content:    marshalArgs(b.Payload[turns.PayloadKeyResult]),
			})
		}
	}
	return msgs
}

// makeToolsFromRegistry advertises every registered tool as a function tool.
func makeToolsFromRegistry(registry tools.Registry) []go_openai.Tool {
	if registry == nil {
		return nil
	}
	defs := registry.List()
	if len(defs) == 0 {
		return nil
	}
	out := make([]go_openai.Tool, 0, len(defs))
	for _, def := range defs {
		out = append(out, go_openai.Tool{
			Type: go_openai.ToolTypeFunction,
			Function: go_openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return out
}

func payloadText(b turns.Block) string {
	v, ok := b.Payload[turns.PayloadKeyText]
	if !ok {
		return ""
	}
	switch sv := v.(type) {
	case string:
		return strings.TrimSpace(sv)
	case []byte:
		return strings.TrimSpace(string(sv))
	default:
		bb, _ := json.Marshal(v)
		return strings.TrimSpace(string(bb))
	}
}

func marshalArgs(v any) string {
	switch sv := v.(type) {
	case nil:
		return "{}"
	case string:
		return sv
	case json.RawMessage:
		return string(sv)
	default:
		bb, err := json.Marshal(v)
		if err != nil {
			return "{}"
		}
		return string(bb)
	}
}
