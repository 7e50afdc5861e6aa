package events

import (
	"github.com/google/uuid"
)

type EventType string

const (
	// EventTypeStart marks the beginning of an orchestration run.
	EventTypeStart EventType = "start"
	// EventTypeToolCall is emitted when the model requests a tool.
	EventTypeToolCall EventType = "tool-call"
	// EventTypeToolResult carries the outcome of a tool dispatch.
	EventTypeToolResult EventType = "tool-result"
	// EventTypeFinal carries the answer text returned to the caller.
	EventTypeFinal EventType = "final"
	// EventTypeError is emitted when a model call fails.
	EventTypeError EventType = "error"
)

// EventMetadata correlates an event with its session and turn.
type EventMetadata struct {
	ID        uuid.UUID `json:"id"`
	SessionID string    `json:"session_id,omitempty"`
	TurnID    string    `json:"turn_id,omitempty"`
}

type Event interface {
	Type() EventType
	Metadata() EventMetadata
}

// EventImpl is the common base for all events.
type EventImpl struct {
	Type_     EventType     `json:"type"`
	Metadata_ EventMetadata `json:"meta"`
}

func (e *EventImpl) Type() EventType         { return e.Type_ }
func (e *EventImpl) Metadata() EventMetadata { return e.Metadata_ }

type EventStart struct {
	EventImpl
	Question string `json:"question"`
}

func NewStartEvent(meta EventMetadata, question string) *EventStart {
	return &EventStart{
		EventImpl: EventImpl{Type_: EventTypeStart, Metadata_: meta},
		Question:  question,
	}
}

type EventToolCall struct {
	EventImpl
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

func NewToolCallEvent(meta EventMetadata, toolName string, arguments map[string]any) *EventToolCall {
	return &EventToolCall{
		EventImpl: EventImpl{Type_: EventTypeToolCall, Metadata_: meta},
		ToolName:  toolName,
		Arguments: arguments,
	}
}

type EventToolResult struct {
	EventImpl
	ToolName string `json:"tool_name"`
	Status   string `json:"status"`
	Count    int    `json:"count"`
}

func NewToolResultEvent(meta EventMetadata, toolName, status string, count int) *EventToolResult {
	return &EventToolResult{
		EventImpl: EventImpl{Type_: EventTypeToolResult, Metadata_: meta},
		ToolName:  toolName,
		Status:    status,
		Count:     count,
	}
}

type EventFinal struct {
	EventImpl
	Text string `json:"text"`
}

func NewFinalEvent(meta EventMetadata, text string) *EventFinal {
	return &EventFinal{
		EventImpl: EventImpl{Type_: EventTypeFinal, Metadata_: meta},
		Text:      text,
	}
}

type EventError struct {
	EventImpl
	ErrorString string `json:"error_string"`
}

func NewErrorEvent(meta EventMetadata, err error) *EventError {
	errStr := ""
	if err != nil {
		errStr = err.Error()
	}
	return &EventError{
		EventImpl:   EventImpl{Type_: EventTypeError, Metadata_: meta},
		ErrorString: errStr,
	}
}
