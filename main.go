package main

import (
	auth "Sediment/internal/auth"
	comparison "Sediment/internal/calc/comparison"
	batch "Sediment/internal/calc/premium/batch"
	importer "Sediment/internal/calc/premium/importer"
	threshold "Sediment/internal/calc/premium/threshold"
	report "Sediment/internal/calc/report"
	shields "Sediment/internal/calc/shields"
	config "Sediment/internal/config"
	profile "Sediment/internal/profile"
	repo "Sediment/internal/repo"
	session "Sediment/internal/session"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func HandleList(router *mux.Router, cfg config.Config, userRepo repo.Repository, sessions *session.Store) {
	authEnv := &auth.Authenv{
		JWTkey:       cfg.TokenKey,
		Repo:         userRepo,
		Sessions:     sessions,
		SecureCookie: cfg.TLS(),
	}
	profileH := &profile.ProfileHandler{Repo: userRepo, Sessions: sessions}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)
	api.Use(authEnv.SessionMiddleware)

	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")
	api.HandleFunc("/session", profileH.GetSession).Methods("GET")

	shieldsH := &shields.Handler{}
	thresholdH := &threshold.Handler{}
	batchH := &batch.Handler{}
	reportH := &report.Handler{Sessions: sessions, SessionID: auth.SessionID}
	comparisonH := &comparison.Handler{Sessions: sessions, SessionID: auth.SessionID}
	importerH := &importer.Handler{Sessions: sessions, SessionID: auth.SessionID}

	api.HandleFunc("/tools/shields/calc", shieldsH.Calc).Methods("POST")
	api.HandleFunc("/tools/shields/report", reportH.Generate).Methods("POST")
	api.HandleFunc("/tools/shields/threshold", thresholdH.Calc).Methods("POST")
	api.HandleFunc("/tools/shields/batch", batchH.Calc).Methods("POST")

	api.HandleFunc("/comparison", comparisonH.Add).Methods("POST")
	api.HandleFunc("/comparison", comparisonH.List).Methods("GET")
	api.HandleFunc("/comparison/report", reportH.Comparison).Methods("GET")
	api.HandleFunc("/comparison/export", importerH.Export).Methods("GET")
	api.HandleFunc("/comparison/import", importerH.Import).Methods("POST")

	router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	db, err := repo.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Database error: ", err)
	}
	defer db.Close()
	userRepo := repo.NewSQLRepository(db, cfg.DBDriver)
	if err := userRepo.Migrate(ctx); err != nil {
		log.Fatal("Migration error: ", err)
	}

	sessions := session.NewStore(auth.SessionTTL)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sessions.Run(ctx, 10*time.Minute)
	}()

	router := mux.NewRouter()
	HandleList(router, cfg, userRepo, sessions)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Starting server on %s (tls=%v, db=%s)", cfg.Addr, cfg.TLS(), cfg.DBDriver)
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
