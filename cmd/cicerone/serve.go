package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/go-go-golems/cicerone/pkg/chatbot"
	"github.com/go-go-golems/cicerone/pkg/events"
	"github.com/go-go-golems/cicerone/pkg/inference/openai"
	"github.com/go-go-golems/cicerone/pkg/inference/tools"
	"github.com/go-go-golems/cicerone/pkg/places"
	"github.com/go-go-golems/cicerone/pkg/sessions"
)

const eventTopic = "chat"

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chatbot HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.Flags().String("addr", ":8080", "HTTP listen address")
	cmd.Flags().String("openai-api-key", "", "OpenAI API key")
	cmd.Flags().String("openai-model", "gpt-4o-mini", "Chat completion model")
	cmd.Flags().String("openai-base-url", "", "OpenAI-compatible API base URL (optional)")
	cmd.Flags().String("kakao-api-key", "", "Kakao Local REST API key")
	cmd.Flags().String("kakao-base-url", "", "Kakao Local API base URL (optional)")
	_ = viper.BindPFlags(cmd.Flags())

	return cmd
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := tools.NewInMemoryRegistry()
	searchDef, err := chatbot.SearchPlacesDefinition()
	if err != nil {
		return errors.Wrap(err, "could not build search_places definition")
	}
	if err := registry.Register(chatbot.ToolNameSearchPlaces, *searchDef); err != nil {
		return errors.Wrap(err, "could not register search_places")
	}

	eng, err := openai.NewEngine(
		openai.Settings{
			APIKey:  viper.GetString("openai-api-key"),
			Model:   viper.GetString("openai-model"),
			BaseURL: viper.GetString("openai-base-url"),
		},
		openai.WithRegistry(registry),
	)
	if err != nil {
		return errors.Wrap(err, "could not create inference engine")
	}
	defer func() {
		if err := eng.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close inference engine")
		}
	}()

	kakaoKey := viper.GetString("kakao-api-key")
	if kakaoKey == "" {
		return errors.New("kakao-api-key is required")
	}
	var placeOptions []places.Option
	if base := viper.GetString("kakao-base-url"); base != "" {
		placeOptions = append(placeOptions, places.WithBaseURL(base))
	}
	searcher := places.NewClient(kakaoKey, placeOptions...)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	pm := events.NewPublisherManager()
	pm.SubscribePublisher(eventTopic, pubSub)

	store := sessions.NewStore()
	svc := chatbot.NewService(store, eng, searcher, chatbot.WithPublisher(pm))

	mux := http.NewServeMux()
	handler := &AskHandler{Service: svc}
	mux.HandleFunc("/chatbot/ask", handler.AskHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	addr := viper.GetString("addr")
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		log.Info().Str("addr", addr).Msg("starting chatbot server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		return drainEvents(ctx, pubSub)
	})

	eg.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("server shutdown failed")
		}
		return pubSub.Close()
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// drainEvents mirrors the chat event stream into the logs.
func drainEvents(ctx context.Context, pubSub *gochannel.GoChannel) error {
	msgs, err := pubSub.Subscribe(ctx, eventTopic)
	if err != nil {
		return errors.Wrap(err, "could not subscribe to event topic")
	}
	for msg := range msgs {
		log.Debug().
			Str("event_type", msg.Metadata.Get("event_type")).
			Str("sequence_number", msg.Metadata.Get("sequence_number")).
			RawJSON("event", msg.Payload).
			Msg("chat event")
		msg.Ack()
	}
	return nil
}
