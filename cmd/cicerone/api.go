package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Asker answers one question within a session.
type Asker interface {
	Ask(ctx context.Context, sessionKey, contextName, question string) string
}

type askRequest struct {
	SessionID string `json:"sessionId"`
	PlaceName string `json:"placeName"`
	Question  string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// defaultSessionKey groups requests that do not identify themselves.
const defaultSessionKey = "anonymous"

type AskHandler struct {
	Service Asker
}

func (h *AskHandler) AskHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.PlaceName) == "" || strings.TrimSpace(req.Question) == "" {
		http.Error(w, "placeName and question are required", http.StatusBadRequest)
		return
	}

	sessionKey := strings.TrimSpace(req.SessionID)
	if sessionKey == "" {
		sessionKey = defaultSessionKey
	}

	answer := h.Service.Ask(r.Context(), sessionKey, req.PlaceName, req.Question)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(askResponse{Answer: answer}); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
