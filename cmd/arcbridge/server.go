package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/api/handlers"
	"github.com/BaSui01/arcbridge/config"
	"github.com/BaSui01/arcbridge/federation"
	"github.com/BaSui01/arcbridge/internal/metrics"
	"github.com/BaSui01/arcbridge/internal/server"
	"github.com/BaSui01/arcbridge/rho2"
	"github.com/BaSui01/arcbridge/stream"
	"github.com/BaSui01/arcbridge/types"
)

// Server assembles the control plane: state, stream hub, signer, metrics,
// HTTP surface, and the local heartbeat.
type Server struct {
	config *config.Config
	logger *zap.Logger

	state  *federation.State
	hub    *stream.Hub
	signer rho2.Signer

	metricsCollector *metrics.Collector
	httpManager      *server.Manager
	metricsManager   *server.Manager

	healthHandler     *handlers.HealthHandler
	federationHandler *handlers.FederationHandler
	actionsHandler    *handlers.ActionsHandler
	whispererHandler  *handlers.WhispererHandler
	operatorHandler   *handlers.OperatorHandler
	signingHandler    *handlers.SigningHandler

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer wires every component together. Nothing starts listening until
// Start is called.
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		config: cfg,
		logger: logger,
		state:  federation.NewState(logger),
		ctx:    ctx,
		cancel: cancel,
	}

	if cfg.Stream.Enabled {
		s.hub = stream.NewHub(logger)
	}
	if cfg.Signing.Enabled {
		s.signer = rho2.NewDevSigner(cfg.Signing.Secret)
	}
	if cfg.Telemetry.Enabled {
		s.metricsCollector = metrics.NewCollector(cfg.Telemetry.Namespace, logger)
	}

	s.wireBus()
	s.initHandlers()

	return s
}

// wireBus attaches the cross-cutting bus listeners: the stream bridge and
// the metrics counter. Both tolerate their backend being disabled.
func (s *Server) wireBus() {
	s.state.Bus.Subscribe(func(event types.Event) {
		if s.signer != nil {
			if sig, err := s.signer.Sign(event.Payload); err == nil {
				event.Signature = sig
			}
		}
		s.hub.BroadcastEvent(event)
	})

	if s.metricsCollector != nil {
		s.state.Bus.Subscribe(func(event types.Event) {
			s.metricsCollector.RecordEvent(string(event.Signal))
			switch event.Signal {
			case types.SignalOperatorCommand:
				s.metricsCollector.RecordCommandEnqueued()
			case types.SignalIntentDetected:
				s.metricsCollector.RecordIntentDeclared()
			}
		})
		s.state.Bus.OnFault(s.metricsCollector.RecordListenerFault)
		s.hub.OnSendFailure(s.metricsCollector.RecordStreamSendFailure)
	}
}

func (s *Server) initHandlers() {
	s.healthHandler = handlers.NewHealthHandler(s.logger, Version)
	s.federationHandler = handlers.NewFederationHandler(s.state, s.logger)
	s.actionsHandler = handlers.NewActionsHandler(s.state, s.logger)
	s.whispererHandler = handlers.NewWhispererHandler(s.state.Bus, s.hub, s.logger)
	s.operatorHandler = handlers.NewOperatorHandler(s.state, s.logger)
	if s.signer != nil {
		s.signingHandler = handlers.NewSigningHandler(s.signer, s.logger)
	}
}

// routes builds the HTTP mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.healthHandler.HandleHealth)
	mux.HandleFunc("/healthz", s.healthHandler.HandleHealthz)
	mux.HandleFunc("/ready", s.healthHandler.HandleReady)

	mux.HandleFunc("/api/federation/commands", s.federationHandler.HandleCommands)
	mux.HandleFunc("/api/federation/state", s.federationHandler.HandleState)
	mux.HandleFunc("/api/federation/nodes/status", s.federationHandler.HandleNodesStatus)
	mux.HandleFunc("/api/federation/heartbeat", s.federationHandler.HandleHeartbeat)
	mux.HandleFunc("/api/federation/subscriptions", s.federationHandler.HandleSubscriptions)
	mux.HandleFunc("/api/federation/intents", s.federationHandler.HandleIntents)
	mux.HandleFunc("/api/federation/intents/summary", s.federationHandler.HandleIntentSummary)
	mux.HandleFunc("/api/federation/topology", s.federationHandler.HandleTopology)
	mux.HandleFunc("/api/federation/divergence", s.federationHandler.HandleDivergence)
	mux.HandleFunc("/api/federation/reasons", s.federationHandler.HandleReasons)
	mux.HandleFunc("/api/federation/policy", s.federationHandler.HandlePolicy)

	mux.HandleFunc("/api/federation/action/record", s.actionsHandler.HandleRecord)
	mux.HandleFunc("/api/federation/action/preview", s.actionsHandler.HandlePreview)
	mux.HandleFunc("/api/federation/actions", s.actionsHandler.HandleActions)
	mux.HandleFunc("/api/act", s.actionsHandler.HandleAct)
	mux.HandleFunc("/api/intent", s.actionsHandler.HandleIntentText)

	mux.HandleFunc("/api/whisperer/message", s.whispererHandler.HandleMessage)
	mux.HandleFunc("/api/whisperer/send", s.whispererHandler.HandleSend)

	mux.HandleFunc("/api/operator", s.operatorHandler.HandleOperator)
	mux.HandleFunc("/api/operator/session", s.operatorHandler.HandleSession)

	if s.signingHandler != nil {
		mux.HandleFunc("/api/rho2/sign", s.signingHandler.HandleSign)
		mux.HandleFunc("/api/rho2/verify", s.signingHandler.HandleVerify)
	}

	return mux
}

// Start begins serving HTTP and metrics, and starts the local heartbeat.
func (s *Server) Start() error {
	cfg := s.config

	middlewares := []Middleware{
		Recovery(s.logger),
		RequestID(),
		SecurityHeaders(),
		RequestLogger(s.logger),
		CORS(cfg.Server.AllowedOrigins),
		RateLimiter(s.ctx, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, s.logger),
	}
	if s.metricsCollector != nil {
		middlewares = append(middlewares, MetricsMiddleware(s.metricsCollector))
	}

	handler := Chain(s.routes(), middlewares...)

	// The stream endpoint bypasses the middleware chain: response writer
	// wrappers would hide the Hijacker the WebSocket upgrade needs.
	root := http.NewServeMux()
	if s.hub != nil {
		root.Handle(cfg.Stream.Path, s.hub.Handler())
	}
	root.Handle("/", handler)

	s.httpManager = server.NewManager(root, server.Config{
		Addr:            fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     120 * time.Second,
		MaxHeaderBytes:  1 << 20,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, s.logger)

	if err := s.httpManager.Start(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	if s.metricsCollector != nil && cfg.Server.MetricsPort > 0 {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())

		s.metricsManager = server.NewManager(metricsMux, server.Config{
			Addr:            fmt.Sprintf(":%d", cfg.Server.MetricsPort),
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		}, s.logger)

		if err := s.metricsManager.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	if cfg.Heartbeat.Enabled {
		go s.heartbeatLoop()
	}

	s.logger.Info("Arc Bridge started",
		zap.Int("http_port", cfg.Server.HTTPPort),
		zap.Int("metrics_port", cfg.Server.MetricsPort),
		zap.Bool("stream", s.hub != nil),
		zap.Bool("signing", s.signer != nil),
	)
	return nil
}

// heartbeatLoop emits a local heartbeat so single-node setups have a live
// stream and a populated node registry. Gauges are refreshed on the same
// cadence.
func (s *Server) heartbeatLoop() {
	ticker := time.NewTicker(s.config.Heartbeat.Interval)
	defer ticker.Stop()

	nodeID := s.config.Heartbeat.NodeID
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.state.Nodes.RecordHeartbeat(nodeID)
			s.state.Bus.EmitSignal(types.SignalHeartbeatTick, nodeID, map[string]any{
				"nodeId": nodeID,
				"ts":     time.Now().UnixMilli(),
			})
			s.refreshGauges()
		}
	}
}

func (s *Server) refreshGauges() {
	if s.metricsCollector == nil {
		return
	}
	s.metricsCollector.SetStreamClients(s.hub.ClientCount())
	s.metricsCollector.SetRegistrySize("commands", s.state.Commands.Len())
	s.metricsCollector.SetRegistrySize("intents", len(s.state.Intents.List()))
	s.metricsCollector.SetRegistrySize("subscriptions", len(s.state.Subscriptions.List()))
	s.metricsCollector.SetRegistrySize("actions", len(s.state.Actions.List()))
}

// WaitForShutdown blocks until the HTTP server stops, then tears down the
// rest.
func (s *Server) WaitForShutdown() {
	s.httpManager.WaitForShutdown()
	s.Shutdown(context.Background())
}

// Shutdown stops the heartbeat and both servers.
func (s *Server) Shutdown(ctx context.Context) {
	s.cancel()

	if s.httpManager != nil {
		if err := s.httpManager.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP server shutdown failed", zap.Error(err))
		}
	}
	if s.metricsManager != nil {
		if err := s.metricsManager.Shutdown(ctx); err != nil {
			s.logger.Error("metrics server shutdown failed", zap.Error(err))
		}
	}
}
