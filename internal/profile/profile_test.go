package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	auth "Sediment/internal/auth"
	shields "Sediment/internal/calc/shields"
	"Sediment/internal/repo"
	session "Sediment/internal/session"
)

type stubRepo struct{ user repo.User }

func (s stubRepo) CreateUser(context.Context, string, string, string) (int, error) { return 0, nil }
func (s stubRepo) GetByLogin(context.Context, string) (int, string, error) { return 0, "", repo.ErrNotFound }
func (s stubRepo) GetUser(_ context.Context, id int) (repo.User, error) {
	if id != s.user.ID {
		return repo.User{}, repo.ErrNotFound
	}
	return s.user, nil
}

func TestGetSessionAnonymous(t *testing.T) {
	sessions := session.NewStore(auth.SessionTTL)
	env := &auth.Authenv{JWTkey: []byte("k"), Sessions: sessions}
	h := &ProfileHandler{Repo: stubRepo{}, Sessions: sessions}

	var sid string
	srv := env.SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid = auth.SessionID(r.Context())
		in := shields.Input{WaterDensityKgM3: 1000, SedimentDensityKgM3: 2650, GrainDiameterM: 0.001, ShearVelocityMS: 0.05, CriticalShields: 0.047}
		sessions.Log(sid).Append(in, shields.Evaluate(in))
		h.GetSession(w, r)
	}))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID != sid || resp.Scenarios != 1 || resp.User != nil {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestGetSessionWithoutMiddleware(t *testing.T) {
	h := &ProfileHandler{Repo: stubRepo{}, Sessions: session.NewStore(auth.SessionTTL)}
	rec := httptest.NewRecorder()
	h.GetSession(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGetSessionDoesNotCreateLog(t *testing.T) {
	sessions := session.NewStore(auth.SessionTTL)
	env := &auth.Authenv{JWTkey: []byte("k"), Sessions: sessions}
	h := &ProfileHandler{Repo: stubRepo{}, Sessions: sessions}
	srv := env.SessionMiddleware(http.HandlerFunc(h.GetSession))

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
	if sessions.Len() != 0 {
		t.Fatalf("expected no stored logs, got %d", sessions.Len())
	}
}
