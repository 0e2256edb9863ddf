package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/JhonW67/ProjectHub/config"
	"github.com/JhonW67/ProjectHub/internal/auth"
	"github.com/JhonW67/ProjectHub/internal/db"
	"github.com/JhonW67/ProjectHub/internal/handlers"
	"github.com/JhonW67/ProjectHub/internal/metrics"
	"github.com/JhonW67/ProjectHub/internal/mq"
	"github.com/JhonW67/ProjectHub/internal/services"
	"github.com/JhonW67/ProjectHub/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server wraps the HTTP server, its router, and the resources it owns.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	bus        *mq.Bus
	log        zerolog.Logger
}

// New constructs a fully wired Server: database, broker, repositories,
// services, and routes.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	bus, err := newBus(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	eventRepo := store.NewEventRepository(dbConn)
	groupRepo := store.NewGroupRepository(dbConn)
	projectRepo := store.NewProjectRepository(dbConn)
	evaluationRepo := store.NewEvaluationRepository(dbConn)

	var publisher services.Publisher
	if bus != nil {
		publisher = bus
	}
	notifier := services.NewNotifier(publisher, cfg.Notifications.Channel, log)

	authService := services.NewAuthService(userRepo, tokens, log)
	userService := services.NewUserService(userRepo, groupRepo)
	eventService := services.NewEventService(eventRepo)
	groupService := services.NewGroupService(groupRepo)
	projectService := services.NewProjectService(projectRepo, groupRepo)
	evaluationService := services.NewEvaluationService(evaluationRepo, projectRepo, notifier)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		metrics.Middleware,
	)
	router.Get("/healthz", handlers.Healthz)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authService, userService, tokens)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, tokens)
	})
	router.Route("/events", func(r chi.Router) {
		handlers.EventRouter(r, eventService, tokens)
	})
	router.Route("/groups", func(r chi.Router) {
		handlers.GroupRouter(r, groupService, projectService, tokens)
	})
	router.Route("/projects", func(r chi.Router) {
		handlers.ProjectRouter(r, projectService, evaluationService, tokens)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		bus:        bus,
		log:        log,
	}, nil
}

// newBus constructs the notification bus for the configured backend.
// An empty backend disables publishing.
func newBus(ctx context.Context, cfg config.Config) (*mq.Bus, error) {
	switch cfg.Notifications.Backend {
	case "":
		return nil, nil
	case "rabbitmq":
		client, err := mq.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		return mq.New(client), nil
	case "pubsub":
		client, err := mq.NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, fmt.Errorf("connect pubsub: %w", err)
		}
		return mq.New(client), nil
	default:
		return nil, fmt.Errorf("unknown notification backend %q", cfg.Notifications.Backend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown, then releases the database and
// broker connections.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.bus != nil {
		if cerr := s.bus.Close(); cerr != nil {
			s.log.Warn().Err(cerr).Msg("failed to close message bus")
		}
	}
	return err
}
