package main

import (
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
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	auth "MixLab/internal/auth"
	mix "MixLab/internal/calc/mix"
	batch "MixLab/internal/calc/premium/batch"
	importer "MixLab/internal/calc/premium/importer"
	optimize "MixLab/internal/calc/premium/optimize"
	recommend "MixLab/internal/calc/premium/recommend"
	report "MixLab/internal/calc/report"
	"MixLab/internal/config"
	"MixLab/internal/handlers"
	"MixLab/internal/observability"
	profile "MixLab/internal/profile"
	repo "MixLab/internal/repo"
)

var wg sync.WaitGroup

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HandleList registers every route on router.
func HandleList(router *mux.Router, cfg *config.Config, users repo.Repository) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.Auth.TokenKey), Repo: users}
	profileH := &profile.ProfileHandler{}

	router.Use(observability.RequestID, observability.AccessLog)

	router.Handle("/metrics", observability.PrometheusHandler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.Auth.RateLimit), cfg.Auth.RateBurst)

	api := router.PathPrefix("/api").Subrouter()
	api.Handle("/login", limiter.LimitMiddleware(http.HandlerFunc(authEnv.AuthHandler))).Methods("POST")
	api.Handle("/register", limiter.LimitMiddleware(http.HandlerFunc(authEnv.RegisterHandler))).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)
	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")

	book := cfg.PriceBook
	mixH := &mix.Handler{PriceBook: book}
	optimizeH := &optimize.Handler{PriceBook: book}
	recommendH := &recommend.Handler{}
	batchH := &batch.Handler{PriceBook: book}
	importH := &importer.Handler{PriceBook: book}
	reportH := &report.Handler{PriceBook: book}

	tools := secureApi.PathPrefix("/tools/mix").Subrouter()
	tools.HandleFunc("/calc", mixH.Calc).Methods("POST")
	tools.HandleFunc("/nominal", mixH.Nominal).Methods("POST")
	tools.HandleFunc("/optimize", optimizeH.Optimize).Methods("POST")
	tools.HandleFunc("/exposure", recommendH.Exposure).Methods("POST")
	tools.HandleFunc("/batch", batchH.Mix).Methods("POST")
	tools.HandleFunc("/import", importH.Mix).Methods("POST")
	tools.HandleFunc("/report/pdf", reportH.PDF).Methods("POST")
	tools.HandleFunc("/report/xlsx", reportH.XLSX).Methods("POST")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := observability.InitLogger(cfg.Logging.Level); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer observability.SyncLogger()
	logger := observability.Logger

	db, err := repo.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer db.Close()
	users := repo.NewPostgresUserDB(db)
	if err := users.Migrate(ctx); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	router := mux.NewRouter()
	HandleList(router, cfg, users)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           CORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr), zap.Bool("tls", cfg.TLS()))
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	wg.Wait()
	logger.Info("server stopped")
}
