// Package httpapi exposes the LESS pipeline over HTTP.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"go.trai.ch/lessbuild/internal/adapters/watcher"
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// FormField is the form and JSON field listing watched stylesheets.
	FormField = "less_files"

	maxBodyBytes = 1 << 20
)

// Service is what the handler needs from the application.
type Service interface {
	// Settings returns the current settings snapshot.
	Settings() domain.Settings
	// Poll returns the stylesheets among urls whose output changed.
	Poll(ctx context.Context, urls []string) ([]domain.Change, error)
	// RenderPath renders the LESS file at relPath below the root and
	// records it under urlPath.
	RenderPath(ctx context.Context, urlPath, relPath string) (domain.RenderFile, error)
}

// Handler routes the LESS endpoints.
type Handler struct {
	service Service
	broker  *watcher.Broker
	logger  ports.Logger
	mux     *http.ServeMux
}

// NewHandler creates the HTTP handler. A nil broker disables the events
// stream.
func NewHandler(service Service, broker *watcher.Broker, logger ports.Logger) *Handler {
	h := &Handler{service: service, broker: broker, logger: logger, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /less/watch", h.handleWatch)
	h.mux.HandleFunc("GET /less/events", h.handleEvents)
	h.mux.HandleFunc("GET /less/{path...}", h.handleLess)

	publicPath := strings.TrimRight(service.Settings().PublicPath, "/") + "/"
	files := http.FileServer(http.Dir(service.Settings().OutputDir))
	h.mux.Handle("GET "+publicPath, http.StripPrefix(publicPath, files))

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleWatch(w http.ResponseWriter, r *http.Request) {
	changes := []domain.Change{}
	if !h.service.Settings().WatchMode {
		writeJSON(w, changes)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	urls, err := parseWatchRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(urls) > 0 {
		changes, err = h.service.Poll(r.Context(), urls)
		if err != nil {
			h.fail(w, err)
			return
		}
	}

	writeJSON(w, changes)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) handleLess(w http.ResponseWriter, r *http.Request) {
	rel := r.PathValue("path")
	if !strings.EqualFold(path.Ext(rel), domain.LessExt) {
		http.NotFound(w, r)
		return
	}

	rendered, err := h.service.RenderPath(r.Context(), r.URL.Path, rel)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPath) && !errors.Is(err, domain.ErrCompile) {
			http.NotFound(w, r)
			return
		}
		h.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, rendered.OutputFile)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if h.broker == nil {
		http.Error(w, domain.ErrWatchDisabled.Error(), http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	batches, cancel := h.broker.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case batch, ok := <-batches:
			if !ok {
				return
			}
			data, err := json.Marshal(batch)
			if err != nil {
				continue
			}
			_, _ = fmt.Fprintf(w, "event: change\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	if h.logger != nil {
		h.logger.Error(err)
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

type watchRequest struct {
	LessFiles []string `json:"less_files"`
}

// parseWatchRequest reads the watched URLs from a JSON object, a bare JSON
// array or a form body.
func parseWatchRequest(r *http.Request) ([]string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data") {
		return parseWatchForm(r)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	if body[0] == '[' {
		var urls []string
		if err := json.Unmarshal(body, &urls); err != nil {
			return nil, zerr.Wrap(err, "invalid JSON array")
		}
		return urls, nil
	}

	var req watchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, zerr.Wrap(err, "invalid JSON body")
	}
	return req.LessFiles, nil
}

func parseWatchForm(r *http.Request) ([]string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}

	urls := append([]string(nil), r.PostForm[FormField]...)
	return append(urls, r.PostForm[FormField+"[]"]...), nil
}
