package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubAsker struct {
	lastSession string
	lastContext string
	lastQuery   string
}

func (s *stubAsker) Ask(ctx context.Context, sessionKey, contextName, question string) string {
	s.lastSession = sessionKey
	s.lastContext = contextName
	s.lastQuery = question
	return "try the ramen place around the corner"
}

func TestAskHandlerReturnsAnswer(t *testing.T) {
	asker := &stubAsker{}
	h := &AskHandler{Service: asker}

	body := `{"sessionId":"u-42","placeName":"Gangnam station","question":"where should I eat?"}`
	req := httptest.NewRequest(http.MethodPost, "/chatbot/ask", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.AskHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	var resp askResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Answer != "try the ramen place around the corner" {
		t.Fatalf("unexpected answer: %q", resp.Answer)
	}
	if asker.lastSession != "u-42" || asker.lastContext != "Gangnam station" {
		t.Fatalf("request fields not forwarded: %+v", asker)
	}
}

func TestAskHandlerDefaultsSessionKey(t *testing.T) {
	asker := &stubAsker{}
	h := &AskHandler{Service: asker}

	body := `{"placeName":"Hongdae","question":"a quiet cafe?"}`
	req := httptest.NewRequest(http.MethodPost, "/chatbot/ask", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.AskHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if asker.lastSession != defaultSessionKey {
		t.Fatalf("expected default session key, got %q", asker.lastSession)
	}
}

func TestAskHandlerRejectsBadRequests(t *testing.T) {
	h := &AskHandler{Service: &stubAsker{}}

	cases := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"broken json", http.MethodPost, "{", http.StatusBadRequest},
		{"missing question", http.MethodPost, `{"placeName":"Gangnam station"}`, http.StatusBadRequest},
		{"missing place", http.MethodPost, `{"question":"where?"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/chatbot/ask", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			h.AskHandler(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, w.Code)
			}
		})
	}
}
