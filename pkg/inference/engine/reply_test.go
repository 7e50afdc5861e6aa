package engine

import (
	"testing"

	"github.com/go-go-golems/cicerone/pkg/turns"
)

func TestExtractReplyText(t *testing.T) {
	t.Parallel()

	turn := &turns.Turn{}
	turns.AppendBlock(turn, turns.NewUserTextBlock("hi"))
	since := len(turn.Blocks)
	turns.AppendBlock(turn, turns.NewAssistantTextBlock("hello there"))

	reply := ExtractReply(turn, since)
	if reply.Kind != ReplyKindText {
		t.Fatalf("expected text reply, got %s", reply.Kind)
	}
	if reply.Text != "hello there" {
		t.Fatalf("unexpected text: %q", reply.Text)
	}
}

func TestExtractReplyToolCall(t *testing.T) {
	t.Parallel()

	turn := &turns.Turn{}
	turns.AppendBlock(turn, turns.NewUserTextBlock("find sushi"))
	since := len(turn.Blocks)
	turns.AppendBlock(turn, turns.NewToolCallBlock("call-1", "search_places", map[string]any{"query": "sushi"}))

	reply := ExtractReply(turn, since)
	if reply.Kind != ReplyKindToolCall {
		t.Fatalf("expected tool call reply, got %s", reply.Kind)
	}
	if reply.ToolCall.Name != "search_places" || reply.ToolCall.Arguments["query"] != "sushi" {
		t.Fatalf("unexpected tool call: %+v", reply.ToolCall)
	}
}

func TestExtractReplyIgnoresStaleToolCall(t *testing.T) {
	t.Parallel()

	// A tool_call left unanswered by an earlier request must not shadow a
	// fresh text answer.
	turn := &turns.Turn{}
	turns.AppendBlock(turn, turns.NewUserTextBlock("find sushi"))
	turns.AppendBlock(turn, turns.NewToolCallBlock("call-1", "search_places", map[string]any{}))
	turns.AppendBlock(turn, turns.NewUserTextBlock("never mind, just say hi"))
	since := len(turn.Blocks)
	turns.AppendBlock(turn, turns.NewAssistantTextBlock("hi!"))

	reply := ExtractReply(turn, since)
	if reply.Kind != ReplyKindText {
		t.Fatalf("expected text reply, got %s", reply.Kind)
	}
	if reply.Text != "hi!" {
		t.Fatalf("unexpected text: %q", reply.Text)
	}
}

func TestExtractReplyNone(t *testing.T) {
	t.Parallel()

	turn := &turns.Turn{}
	turns.AppendBlock(turn, turns.NewUserTextBlock("hi"))

	if reply := ExtractReply(turn, len(turn.Blocks)); reply.Kind != ReplyKindNone {
		t.Fatalf("expected none reply, got %s", reply.Kind)
	}
	if reply := ExtractReply(nil, 0); reply.Kind != ReplyKindNone {
		t.Fatalf("expected none reply for nil turn, got %s", reply.Kind)
	}
	if reply := ExtractReply(turn, 99); reply.Kind != ReplyKindNone {
		t.Fatalf("expected none reply for out-of-range since, got %s", reply.Kind)
	}
}
