package openai

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	go_openai "github.com/sashabaranov/go-openai"

	"github.com/go-go-golems/cicerone/pkg/inference/engine"
	"github.com/go-go-golems/cicerone/pkg/inference/tools"
	"github.com/go-go-golems/cicerone/pkg/turns"
)

// Engine implements engine.Engine against the OpenAI chat-completions API.
// Non-streaming, single attempt per call: transport and model errors are
// returned to the caller, never retried here.
type Engine struct {
	settings Settings
	client   *go_openai.Client
	registry tools.Registry
}

var _ engine.Engine = (*Engine)(nil)

type Option func(*Engine)

// WithRegistry makes the engine advertise the registry's tools on every request.
func WithRegistry(reg tools.Registry) Option {
	return func(e *Engine) { e.registry = reg }
}

// WithClient overrides the API client, mainly for tests.
func WithClient(client *go_openai.Client) Option {
	return func(e *Engine) { e.client = client }
}

// NewEngine creates an OpenAI inference engine with the given settings.
func NewEngine(settings Settings, options ...Option) (*Engine, error) {
	e := &Engine{settings: settings}
	for _, o := range options {
		o(e)
	}
	if e.client == nil {
		client, err := MakeClient(settings)
		if err != nil {
			return nil, err
		}
		e.client = client
	}
	if e.settings.Model == "" {
		return nil, errors.New("no model specified")
	}
	return e, nil
}

// RunInference sends the Turn to the model and appends exactly one reply
// block: assistant text, or a tool_call when the model requests a tool.
func (e *Engine) RunInference(ctx context.Context, t *turns.Turn) (*turns.Turn, error) {
	if t == nil {
		t = &turns.Turn{}
	}
	req := go_openai.ChatCompletionRequest{
		Model:    e.settings.Model,
		Messages: makeMessagesFromTurn(t),
	}
	if e.settings.Temperature != nil {
		req.Temperature = *e.settings.Temperature
	}
	if toolDefs := makeToolsFromRegistry(e.registry); len(toolDefs) > 0 {
		req.Tools = toolDefs
		req.ToolChoice = "auto"
	}

	log.Debug().
		Int("num_messages", len(req.Messages)).
		Int("num_tools", len(req.Tools)).
		Str("model", req.Model).
		Msg("openai: RunInference started")

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) > 0 {
		tc := msg.ToolCalls[0]
		var args map[string]any
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			log.Warn().Err(err).Str("tool", tc.Function.Name).Msg("openai: malformed tool arguments")
			args = map[string]any{}
		}
		turns.AppendBlock(t, turns.NewToolCallBlock(tc.ID, tc.Function.Name, args))
		log.Debug().Str("tool", tc.Function.Name).Str("id", tc.ID).Msg("openai: model requested tool call")
		return t, nil
	}

	turns.AppendBlock(t, turns.NewAssistantTextBlock(msg.Content))
	return t, nil
}

// Close releases the engine. The chat-completions client holds no persistent
// connection state, so this only exists to satisfy scoped teardown.
func (e *Engine) Close() error {
	return nil
}
