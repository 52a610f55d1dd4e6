package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peerdesk/peerdesk/backend/auth-service/handlers"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/config"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/database"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/resolve"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/sessions"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/tokens"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/users"
	"github.com/peerdesk/peerdesk/backend/auth-service/pkg/logger"
	"github.com/peerdesk/peerdesk/backend/auth-service/pkg/metrics"
	"github.com/peerdesk/peerdesk/backend/auth-service/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL (debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v jwt_secret_set=%v env=%s",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.JWT.Secret != "", cfg.Server.Environment)

	// token codec is constructed up front: malformed TTL strings are a
	// configuration error and abort startup
	codec, err := tokens.NewCodec(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	if err != nil {
		logger.Fatalf("token codec: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Errorf("panic recovered: %v (method=%s path=%s)\n%s", recovered, c.Request.Method, c.Request.URL.Path, debug.Stack())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error", "code": "INTERNAL_ERROR"})
	}))

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple; production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Client-Type, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	var userSvc *users.Service
	var sessionsSvc *sessions.Service

	// Connect to Redis early; when available it backs the session store
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// sessions live as long as the refresh token
	sessionTTL := codec.TTL(tokens.Refresh)
	if rdb != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(rdb, "session:"), sessionTTL)
		logger.Infof("Using Redis for session storage")
	}

	// MongoDB-backed services (users, and sessions when Redis is absent).
	// Retry/backoff tolerates startup races against the database container.
	ctx := context.Background()
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			usersCol := client.Database(cfg.MongoDB.Database).Collection("users")
			userSvc = users.NewService(users.NewMongoUserRepository(usersCol), users.NewBcryptHasher(cfg.Auth.BcryptCost))

			if sessionsSvc == nil {
				sessionsCol := client.Database(cfg.MongoDB.Database).Collection("sessions")
				sessionsSvc = sessions.NewService(sessions.NewMongoRepository(sessionsCol), sessionTTL)
			}
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint: 200 only when both stores are wired
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"users":    userSvc != nil,
			"sessions": sessionsSvc != nil,
		}
		if !deps["users"] || !deps["sessions"] {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// session cookie attachment runs for every request; RequireAuth is
	// applied only to protected routes
	r.Use(middleware.SessionLoader(sessionsSvc))

	resolver := resolve.NewResolver(codec)

	if userSvc != nil && sessionsSvc != nil {
		h := handlers.NewAuthHandler(cfg, userSvc, sessionsSvc, codec)
		h.Register(r.Group("/"))

		api := r.Group("/api/v1")
		api.GET("/me", middleware.RequireAuth(resolver, cfg.Auth.LoginPath), h.Profile)
	} else {
		logger.Warnf("auth handlers not registered because user/sessions services are unavailable")
	}

	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting auth service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
