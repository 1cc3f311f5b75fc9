// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockagent

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ============================================================================
// Mock agent server
// ============================================================================

// DefaultTokensPerSec is the emission pace when none is configured. Slow
// enough that streaming is visible in the TUI, fast enough not to drag.
const DefaultTokensPerSec = 40

// Server serves the agent wire protocol with canned responses.
type Server struct {
	tokensPerSec float64
	log          *zap.Logger
}

// New returns a mock server. tokensPerSec <= 0 selects the default pace.
// A nil logger disables logging.
func New(tokensPerSec float64, logger *zap.Logger) *Server {
	if tokensPerSec <= 0 {
		tokensPerSec = DefaultTokensPerSec
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{tokensPerSec: tokensPerSec, log: logger}
}

// Handler returns the HTTP handler so callers can mount it on their own
// server (tests use this with httptest).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/chat", s.handleChat)
	return mux
}

// ListenAndServe blocks serving on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("mock agent listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "empty message", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	s.log.Debug("chat request", zap.Int("message_len", len(req.Message)))
	s.respond(r, w, flusher, req.Message)
}

// ============================================================================
// Response generation
// ============================================================================

// respond emits the scripted reply for one request: zero or more tool_call
// frames, an unknown-type frame clients must ignore, then paced content.
func (s *Server) respond(r *http.Request, w http.ResponseWriter, flusher http.Flusher, userMessage string) {
	lower := strings.ToLower(userMessage)

	switch {
	case strings.Contains(lower, "summarize") || strings.Contains(lower, "pdf"):
		s.writeFrame(w, flusher, map[string]any{
			"type": "tool_call", "server": "pdf_summarize", "tool": "summarize_pdf",
			"latency": 1843.2, "success": true,
		})
	case strings.Contains(lower, "search") || strings.Contains(lower, "paper") || strings.Contains(lower, "find"):
		s.writeFrame(w, flusher, map[string]any{
			"type": "tool_call", "server": "paper_search", "tool": "search_papers",
			"latency": 412.5, "success": true,
		})
	case strings.Contains(lower, "fail"):
		s.writeFrame(w, flusher, map[string]any{
			"type": "tool_call", "server": "paper_search", "tool": "search_papers",
			"latency": 5000.0, "success": false,
		})
	}

	// Newer backends emit frame types this client predates. Send one so
	// the ignore path stays exercised end to end.
	s.writeFrame(w, flusher, map[string]any{"type": "heartbeat", "ts": time.Now().Unix()})

	s.streamContent(r, w, flusher, responseFor(lower))
}

// streamContent emits the reply a few runes per frame, paced by a token
// limiter. Stops early if the client goes away.
func (s *Server) streamContent(r *http.Request, w http.ResponseWriter, flusher http.Flusher, text string) {
	limiter := rate.NewLimiter(rate.Limit(s.tokensPerSec), 1)
	runes := []rune(text)

	const batch = 3
	for i := 0; i < len(runes); i += batch {
		if err := limiter.Wait(r.Context()); err != nil {
			s.log.Debug("client disconnected", zap.Error(err))
			return
		}
		end := i + batch
		if end > len(runes) {
			end = len(runes)
		}
		s.writeFrame(w, flusher, map[string]any{
			"type":    "content",
			"content": string(runes[i:end]),
		})
	}
}

func (s *Server) writeFrame(w http.ResponseWriter, flusher http.Flusher, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n", data)
	flusher.Flush()
}

func responseFor(lower string) string {
	switch {
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi"):
		return "Hello! I'm Paper Scout, your research assistant. Ask me to search for papers on a topic, or to summarize a PDF, and I'll report back with what I find."
	case strings.Contains(lower, "summarize") || strings.Contains(lower, "pdf"):
		return "Here is a summary of the paper:\n\nThe authors propose a retrieval-augmented approach and evaluate it on three benchmarks. The key finding is a consistent improvement over the baseline, with the largest gains on long-document tasks. The limitations section notes sensitivity to chunk size."
	case strings.Contains(lower, "search") || strings.Contains(lower, "paper") || strings.Contains(lower, "find"):
		return "I found 5 relevant papers. The most cited is \"Attention Is All You Need\" (2017), which introduced the transformer architecture. Two recent follow-ups focus on efficient attention variants. Want me to summarize any of these?"
	case strings.Contains(lower, "fail"):
		return "The search backend timed out, so I couldn't retrieve results this time. You could retry, or narrow the query."
	default:
		return "I can help with two things: searching the literature for papers on a topic, and summarizing PDFs you point me at. What would you like to look into?"
	}
}
