package comparison

import (
	"context"
	"encoding/json"
	"net/http"

	shields "Sediment/internal/calc/shields"
)

// Sessions resolves a session id to the comparison log it owns. Log creates
// the log on first use; Get only looks it up.
type Sessions interface {
	Log(id string) *Log
	Get(id string) (*Log, bool)
}

// SessionEntries returns the session's entries, or none if it has no log.
func SessionEntries(s Sessions, id string) []Entry {
	l, ok := s.Get(id)
	if !ok {
		return nil
	}
	return l.Entries()
}

type Item struct {
	Number int `json:"number"`
	Entry
	Status string `json:"status"`
}

type ListResponse struct {
	Count int    `json:"count"`
	Items []Item `json:"items"`
}

type Handler struct {
	Sessions  Sessions
	SessionID func(context.Context) string
}

// Add evaluates the posted input and appends it to the session's log.
// Rejected inputs are never logged.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var input shields.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := shields.Calculate(input)
	if err != nil {
		shields.WriteError(w, err)
		return
	}
	e, n := h.Sessions.Log(h.SessionID(r.Context())).Append(input, res)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(Item{Number: n, Entry: e, Status: shields.Status(res)})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(List(SessionEntries(h.Sessions, h.SessionID(r.Context()))))
}

// List numbers entries from 1 in insertion order.
func List(entries []Entry) ListResponse {
	items := make([]Item, 0, len(entries))
	for i, e := range entries {
		items = append(items, Item{Number: i + 1, Entry: e, Status: shields.Status(e.Result)})
	}
	return ListResponse{Count: len(items), Items: items}
}
