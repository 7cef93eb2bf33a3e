package handler

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/dukerupert/mealplanner/internal/planner"
)

type StateHandler struct {
	store  *planner.Store
	logger *slog.Logger
}

func NewStateHandler(s *planner.Store, logger *slog.Logger) *StateHandler {
	return &StateHandler{store: s, logger: logger}
}

type selectedDateRequest struct {
	Date string `json:"date"`
}

// etag is a strong validator over the encoded snapshot.
func etag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// etagMatches reports whether an If-None-Match header names tag. The header
// may be "*" or a comma-separated list; weak tags compare by their opaque part.
func etagMatches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}

// Get returns the whole state. Clients polling with If-None-Match get 304
// while nothing has changed.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(h.store.Snapshot())
	if err != nil {
		h.logger.Error("encode state", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to encode state")
		return
	}

	tag := etag(body)
	w.Header().Set("ETag", tag)
	if etagMatches(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Dispatch applies a raw {"type","payload"} action.
func (h *StateHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	a, err := planner.DecodeAction(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.store.Dispatch(a)
	writeJSON(w, http.StatusOK, planner.Describe(a))
}

func (h *StateHandler) SetSelectedDate(w http.ResponseWriter, r *http.Request) {
	var req selectedDateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	next := h.store.Dispatch(planner.SetSelectedDate{Date: date})
	writeJSON(w, http.StatusOK, map[string]any{"selected_date": next.SelectedDate})
}

func (h *StateHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, planner.Dashboard(h.store.Snapshot()))
}
