package chatbot

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/cicerone/pkg/events"
	"github.com/go-go-golems/cicerone/pkg/inference/engine"
	"github.com/go-go-golems/cicerone/pkg/places"
	"github.com/go-go-golems/cicerone/pkg/sessions"
	"github.com/go-go-golems/cicerone/pkg/turns"
)

// PlaceSearcher is the external place-search capability the model may invoke.
// Implementations degrade to an empty slice instead of failing.
type PlaceSearcher interface {
	Search(ctx context.Context, query string) []places.Place
}

// Service runs the tool-use orchestration loop for one question at a time.
//
// The state machine is INIT -> MODEL_1 -> {DONE | TOOL_DISPATCH} -> MODEL_2
// -> DONE. Each request holds its session's lock for the whole machine, so
// the three external calls are strictly sequential and same-key requests
// cannot race on history. Every path terminates in a non-empty answer
// string; no error escapes Ask.
type Service struct {
	store    *sessions.Store
	eng      engine.Engine
	searcher PlaceSearcher
	pub      *events.PublisherManager
}

type Option func(*Service)

// WithPublisher wires an event publisher for run observability.
func WithPublisher(pub *events.PublisherManager) Option {
	return func(s *Service) { s.pub = pub }
}

// NewService creates the orchestrator.
func NewService(store *sessions.Store, eng engine.Engine, searcher PlaceSearcher, options ...Option) *Service {
	s := &Service{store: store, eng: eng, searcher: searcher}
	for _, o := range options {
		o(s)
	}
	return s
}

// Ask answers a question about places around contextName, remembering the
// conversation under sessionKey.
func (s *Service) Ask(ctx context.Context, sessionKey, contextName, question string) string {
	sess := s.store.GetOrCreate(sessionKey)
	var answer string
	sess.WithLock(func(history *turns.Turn) {
		answer = s.run(ctx, history, sessionKey, contextName, question)
		dumpHistory(sessionKey, history)
	})
	return answer
}

// dumpHistory writes the full conversation to the debug log after a request.
func dumpHistory(sessionKey string, history *turns.Turn) {
	if log.Logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	dump, err := turns.ToYAML(history)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionKey).Msg("chatbot: failed to serialize history")
		return
	}
	log.Debug().
		Str("session", sessionKey).
		Int("blocks", len(history.Blocks)).
		Str("history", string(dump)).
		Msg("chatbot: conversation state")
}

func (s *Service) run(ctx context.Context, history *turns.Turn, sessionKey, contextName, question string) string {
	meta := events.EventMetadata{ID: uuid.New(), SessionID: sessionKey, TurnID: history.ID}
	logger := log.With().Str("session", sessionKey).Str("context_name", contextName).Logger()

	s.publish(events.NewStartEvent(meta, question))

	// INIT: the task prompt is the only block this request contributes
	// before the model speaks.
	turns.AppendBlock(history, turns.NewUserTextBlock(RenderTaskPrompt(contextName, question)))

	// MODEL_1. The engine works on a clone; only the orchestrator appends
	// to the real history.
	since := len(history.Blocks)
	out, err := s.eng.RunInference(ctx, history.Clone())
	if err != nil {
		logger.Error().Err(err).Msg("chatbot: first model call failed")
		s.publish(events.NewErrorEvent(meta, err))
		return MessageModelFailure
	}

	reply := engine.ExtractReply(out, since)
	switch reply.Kind {
	case engine.ReplyKindText:
		if strings.TrimSpace(reply.Text) == "" {
			logger.Error().Msg("chatbot: model returned empty text")
			s.publish(events.NewErrorEvent(meta, errors.New("model returned empty text")))
			return MessageModelFailure
		}
		turns.AppendBlock(history, turns.NewAssistantTextBlock(reply.Text))
		s.publish(events.NewFinalEvent(meta, reply.Text))
		return reply.Text
	case engine.ReplyKindToolCall:
		// fall through to dispatch below
	default:
		logger.Error().Msg("chatbot: model returned neither text nor a tool call")
		s.publish(events.NewErrorEvent(meta, errors.New("model returned neither text nor a tool call")))
		return MessageModelFailure
	}

	call := reply.ToolCall
	turns.AppendBlock(history, turns.NewToolCallBlock(call.ID, call.Name, call.Arguments))
	s.publish(events.NewToolCallEvent(meta, call.Name, call.Arguments))

	if call.Name != ToolNameSearchPlaces {
		logger.Warn().Str("tool", call.Name).Msg("chatbot: model requested undeclared tool")
		msg := UnsupportedToolMessage(call.Name)
		turns.AppendBlock(history, turns.NewAssistantTextBlock(msg))
		s.publish(events.NewFinalEvent(meta, msg))
		return msg
	}

	// TOOL_DISPATCH. The tool_call block stays in history as a record of
	// the attempt even when the query is unusable.
	query, _ := call.Arguments["query"].(string)
	if strings.TrimSpace(query) == "" {
		logger.Warn().Msg("chatbot: model invoked search_places without a query")
		s.publish(events.NewFinalEvent(meta, MessageClarifyQuery))
		return MessageClarifyQuery
	}

	logger.Debug().Str("query", query).Msg("chatbot: dispatching place search")
	found := s.searcher.Search(ctx, query)
	status := "success"
	if len(found) == 0 {
		status = "no_results"
	}
	result := map[string]any{"status": status}
	if len(found) > 0 {
		result["places"] = placesPayload(found)
	} else {
		result["message"] = "No places found for query: " + query
	}
	turns.AppendBlock(history, turns.NewToolUseBlock(call.ID, result))
	s.publish(events.NewToolResultEvent(meta, call.Name, status, len(found)))

	// MODEL_2. On failure the history is left exactly as it was, ending on
	// the tool_use block.
	since = len(history.Blocks)
	out, err = s.eng.RunInference(ctx, history.Clone())
	if err != nil {
		logger.Error().Err(err).Msg("chatbot: second model call failed")
		s.publish(events.NewErrorEvent(meta, err))
		return MessageModelFailure
	}

	final := engine.ExtractReply(out, since)
	if final.Kind != engine.ReplyKindText || strings.TrimSpace(final.Text) == "" {
		logger.Error().Str("kind", string(final.Kind)).Msg("chatbot: second model call produced no text")
		s.publish(events.NewErrorEvent(meta, errors.New("second model call produced no text")))
		return MessageModelFailure
	}

	turns.AppendBlock(history, turns.NewAssistantTextBlock(final.Text))
	s.publish(events.NewFinalEvent(meta, final.Text))
	return final.Text
}

func (s *Service) publish(e events.Event) {
	if s.pub != nil {
		s.pub.PublishBlind(e)
	}
}
