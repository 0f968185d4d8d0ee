package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/siherrmann/meetinggraph/core/schema"
	"github.com/siherrmann/meetinggraph/model"
)

type graph interface {
	Scrape(ctx context.Context, url string) (string, error)
	Extract(ctx context.Context, text string, maxChars int) (*model.Record, error)
	WriteData(ctx context.Context, data interface{}) (*model.WriteSummary, error)
	BrowserURL() string
}

type handler struct {
	graph graph
}

func newHandler(g graph) *handler {
	return &handler{graph: g}
}

func (h *handler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /scrape", h.handleScrape)
	mux.HandleFunc("POST /extract", h.handleExtract)
	mux.HandleFunc("POST /write-graph", h.handleWriteGraph)
	mux.HandleFunc("GET /health", h.handleHealth)
	return mux
}

// POST /scrape
func (h *handler) handleScrape(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", err)
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "url is required", nil)
		return
	}

	text, err := h.graph.Scrape(ctx, req.URL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "scrape failed", err)
		slog.Error("scrape error", "url", req.URL, "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clean_text": text})
}

// POST /extract
func (h *handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	var req struct {
		CleanText string `json:"clean_text"`
		MaxChars  int    `json:"max_chars,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", err)
		return
	}

	if strings.TrimSpace(req.CleanText) == "" {
		writeError(w, http.StatusBadRequest, "clean_text is required", nil)
		return
	}

	record, err := h.graph.Extract(ctx, req.CleanText, req.MaxChars)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "LLM Extraction failed", err)
		slog.Error("extract error", "error", err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// POST /write-graph
func (h *handler) handleWriteGraph(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	var req struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", err)
		return
	}

	if req.Data == nil {
		writeError(w, http.StatusBadRequest, "data is required", nil)
		return
	}

	summary, err := h.graph.WriteData(ctx, req.Data)
	if errors.Is(err, schema.ErrSchema) {
		writeError(w, http.StatusBadRequest, "invalid record", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Write failed", err)
		slog.Error("write error", "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"summary":     summary,
		"browser_url": h.graph.BrowserURL(),
	})
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := map[string]string{"error": msg}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
