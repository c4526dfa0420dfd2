package profile

import (
	auth "Sediment/internal/auth"
	comparison "Sediment/internal/calc/comparison"
	"Sediment/internal/repo"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

type ProfileHandler struct {
	Repo     repo.Repository
	Sessions comparison.Sessions
}

type SessionResponse struct {
	SessionID string     `json:"session_id"`
	User      *repo.User `json:"user,omitempty"`
	Scenarios int        `json:"scenarios"`
}

// GetSession describes the caller's session: the account it is logged in
// as, if any, and how many scenarios its comparison log holds.
func (h *ProfileHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sid := auth.SessionID(r.Context())
	if sid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	resp := SessionResponse{SessionID: sid}
	if l, ok := h.Sessions.Get(sid); ok {
		resp.Scenarios = l.Len()
	}

	if userID := auth.UserID(r.Context()); userID != 0 {
		u, err := h.Repo.GetUser(r.Context(), userID)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		case err != nil:
			log.Printf("GetUser error: %v", err)
			http.Error(w, "DB error", http.StatusInternalServerError)
			return
		}
		resp.User = &u
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
