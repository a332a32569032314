package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/username/creditline/backend/src/aggregator"
	appcache "github.com/username/creditline/backend/src/cache"
	"github.com/username/creditline/backend/src/config"
	"github.com/username/creditline/backend/src/confirmations"
	"github.com/username/creditline/backend/src/database"
	"github.com/username/creditline/backend/src/fallback"
	"github.com/username/creditline/backend/src/handlers"
	"github.com/username/creditline/backend/src/logger"
	"github.com/username/creditline/backend/src/members"
	"github.com/username/creditline/backend/src/services"
	"github.com/username/creditline/backend/src/tradesys"
)

var limiter *rate.Limiter

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag, X-Request-ID")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Creditline backend server starting...")

	limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), config.Cfg.RateLimitBurst)

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing feed cache...")
	var feedCache appcache.FeedCache
	if config.Cfg.RedisAddr != "" {
		redisCache, err := appcache.NewRedisCache(config.Cfg.RedisAddr)
		if err != nil {
			logger.L.Error("Failed to connect to Redis, falling back to in-memory feed cache", "addr", config.Cfg.RedisAddr, "error", err)
			feedCache = appcache.NewMemoryCache(config.Cfg.FeedCacheTTL, 2*config.Cfg.FeedCacheTTL)
		} else {
			logger.L.Info("Feed cache backed by Redis", "addr", config.Cfg.RedisAddr)
			feedCache = redisCache
		}
	} else {
		feedCache = appcache.NewMemoryCache(config.Cfg.FeedCacheTTL, 2*config.Cfg.FeedCacheTTL)
	}
	defer feedCache.Close()

	logger.L.Info("Initializing trade booking system clients...")
	generator := fallback.NewGenerator()

	var tradeClient tradesys.Client
	var confirmationStore confirmations.Store
	var sizeOracle members.SizeOracle
	if config.Cfg.TradeAPIBaseURL != "" {
		tradeClient = tradesys.NewHTTPClient(config.Cfg.TradeAPIBaseURL, config.Cfg.TradeAPITimeout)
		confirmationStore = confirmations.NewSQLStore(database.DB)
		sizeOracle = members.NewSQLSizeOracle(database.DB)
		logger.L.Info("Using live trade booking system", "baseURL", config.Cfg.TradeAPIBaseURL)
	} else {
		tradeClient = tradesys.NewFallbackClient(generator, time.Now)
		confirmationStore = confirmations.NewFallbackStore(generator)
		sizeOracle = members.NewFallbackSizeOracle(generator)
		logger.L.Warn("Trade booking system not configured; serving deterministic fallback activity data")
	}

	logger.L.Info("Initializing services and handlers...")
	activityAggregator := aggregator.New(tradeClient, confirmationStore, sizeOracle, time.Now)
	activityService := services.NewActivityService(activityAggregator, feedCache, config.Cfg.FeedCacheTTL)
	activityHandler := handlers.NewActivityHandler(activityService)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("GET /api/members/{memberID}/activity", activityHandler.HandleGetMemberActivity)
	apiRouter.HandleFunc("GET /api/members/{memberID}/activity/summary", activityHandler.HandleGetMemberActivitySummary)
	apiRouter.HandleFunc("DELETE /api/members/{memberID}/activity/cache", activityHandler.HandleInvalidateMemberCache)

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "CREDITLINE Backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(handlers.RequestIDMiddleware(rootMux)))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
