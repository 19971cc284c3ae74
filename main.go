package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"Integrity/internal/auth"
	"Integrity/internal/calc/batch"
	"Integrity/internal/calc/grades"
	"Integrity/internal/calc/importer"
	"Integrity/internal/calc/level0"
	"Integrity/internal/calc/level1"
	"Integrity/internal/calc/level2"
	"Integrity/internal/calc/recommend"
	"Integrity/internal/calc/report"
	"Integrity/internal/config"
	"Integrity/internal/metrics"
	"Integrity/internal/narrative"
	"Integrity/pkg/log"
	"Integrity/pkg/requestid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-Report-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg *config.Config, logger *zap.Logger) {
	mux.Use(requestid.Middleware, log.Logger(logger, "http"))
	mux.Handle("/metrics", metrics.Handler()).Methods("GET")

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.Service.RateLimit), cfg.Service.RateBurst)
	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	tools := api.PathPrefix("/tools/b31g").Subrouter()
	if cfg.AuthEnabled() {
		authEnv := &auth.Authenv{
			JWTkey:        []byte(cfg.Auth.TokenKey),
			AccessKeyHash: []byte(cfg.Auth.AccessKeyHash),
			Secure:        cfg.TLS(),
			Log:           logger.Named("auth"),
		}
		api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")
		tools.Use(authEnv.AuthMiddleware)
	} else {
		logger.Warn("TOKEN_KEY is not set, tool API is open")
	}

	calcLog := logger.Named("calc")
	level0H := &level0.Handler{Log: calcLog}
	level1H := &level1.Handler{Log: calcLog}
	level2H := &level2.Handler{Log: calcLog}
	batchH := &batch.Handler{Log: calcLog}
	importH := &importer.Handler{Log: calcLog}
	reportH := &report.Handler{Log: logger.Named("report")}
	recommendH := &recommend.Handler{}
	gradesH := &grades.Handler{}

	client := narrative.NewClient(cfg.Narrative.Key)
	client.BaseURL = cfg.Narrative.URL
	client.Model = cfg.Narrative.Model
	client.MaxRetries = cfg.Narrative.Retries
	client.BaseDelay = cfg.Narrative.BaseDelay
	client.Log = logger.Named("narrative")
	narrativeH := &narrative.Handler{Client: client, Log: client.Log}

	tools.HandleFunc("/level0", level0H.Calc).Methods("POST")
	tools.HandleFunc("/level1", level1H.Calc).Methods("POST")
	tools.HandleFunc("/level2", level2H.Calc).Methods("POST")
	tools.HandleFunc("/batch", batchH.Calc).Methods("POST")
	tools.HandleFunc("/recommend", recommendH.Calc).Methods("POST")
	tools.HandleFunc("/import/profile", importH.Profile).Methods("POST")
	tools.HandleFunc("/import/defects", importH.Defects).Methods("POST")
	tools.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")
	tools.HandleFunc("/narrative", narrativeH.Generate).Methods("POST")
	tools.HandleFunc("/grades", gradesH.List).Methods("GET")
}

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New(*envFile)
	if err != nil {
		zap.NewExample().Fatal("configuration", zap.Error(err))
	}
	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	defer logger.Sync()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	mux := mux.NewRouter()
	HandleList(mux, cfg, logger)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Service.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", zap.String("address", server.Addr), zap.Bool("tls", cfg.TLS()))
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.Service.TLSCert, cfg.Service.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")

	wg.Wait()
}
