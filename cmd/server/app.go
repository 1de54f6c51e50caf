package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "landtitle/internal/auth/handler"
	authservice "landtitle/internal/auth/service"
	"landtitle/internal/auth/store/session"
	"landtitle/internal/auth/store/user"
	"landtitle/internal/certificate"
	jwttoken "landtitle/internal/jwt_token"
	"landtitle/internal/ledger"
	"landtitle/internal/ledger/ethereum"
	"landtitle/internal/platform/config"
	"landtitle/internal/platform/kafka"
	platformmetrics "landtitle/internal/platform/metrics"
	"landtitle/internal/platform/postgres"
	"landtitle/internal/platform/redis"
	registryhandler "landtitle/internal/registry/handler"
	registrymetrics "landtitle/internal/registry/metrics"
	registryservice "landtitle/internal/registry/service"
	registrystore "landtitle/internal/registry/store"
	"landtitle/internal/registry/worker"
	"landtitle/pkg/platform/audit"
	"landtitle/pkg/platform/audit/publisher"
	auditmemory "landtitle/pkg/platform/audit/store/memory"
	auditpostgres "landtitle/pkg/platform/audit/store/postgres"
	outbox "landtitle/pkg/platform/audit/worker"
	"landtitle/pkg/platform/httputil"
	authmw "landtitle/pkg/platform/middleware/auth"
	"landtitle/pkg/platform/middleware/device"
	"landtitle/pkg/platform/middleware/metadata"
	"landtitle/pkg/platform/middleware/request"
	"landtitle/pkg/platform/middleware/requesttime"
)

type app struct {
	router  http.Handler
	workers []func(context.Context) error
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// storage groups the persistence backends selected by configuration.
type storage struct {
	registry registryservice.Store
	users    authservice.UserStore
	sessions authservice.SessionStore
	audit    audit.Store
	outbox   outbox.OutboxStore
	health   []func(context.Context) error
}

func buildApp(ctx context.Context, cfg config.Server, log *slog.Logger) (*app, error) {
	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	st, err := buildStorage(ctx, cfg, log, a)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := platformmetrics.New(reg)
	registryMetrics := registrymetrics.New(reg)

	auditPublisher := publisher.NewPublisher(st.audit, publisher.WithLogger(log), publisher.WithAsyncBuffer(1024))
	a.closers = append(a.closers, auditPublisher.Close)

	l, err := buildLedger(ctx, cfg, log, reg)
	if err != nil {
		return nil, err
	}
	conv, err := ledger.NewConverter(cfg.Ledger.INRPerEther)
	if err != nil {
		return nil, fmt.Errorf("ledger converter: %w", err)
	}
	codec := certificate.NewCodec(
		certificate.WithStyle(certificate.EmbedStyle(cfg.Certificate.EmbedStyle)),
		certificate.WithIssuer(cfg.Certificate.Issuer),
	)

	registry, err := registryservice.New(st.registry, st.users, l, codec, registryservice.Config{
		CustodianAddress: cfg.Ledger.CustodianAddress,
		Converter:        conv,
		LedgerTimeout:    cfg.Ledger.Timeout,
	},
		registryservice.WithLogger(log),
		registryservice.WithAuditPublisher(auditPublisher),
		registryservice.WithMetrics(registryMetrics),
	)
	if err != nil {
		return nil, fmt.Errorf("registry service: %w", err)
	}

	jwt := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	auth := authservice.New(st.users, st.sessions, jwt, authservice.Config{
		AccessTokenTTL:      cfg.Auth.AccessTokenTTL,
		SessionTTL:          cfg.Auth.SessionTTL,
		InspectorInviteCode: cfg.Auth.InspectorInviteCode,
		BcryptCost:          cfg.Auth.BcryptCost,
	},
		authservice.WithLogger(log),
		authservice.WithAuditPublisher(auditPublisher),
		authservice.WithMetrics(httpMetrics),
	)
	requireAuth := authmw.RequireAuth(jwttoken.NewJWTServiceAdapter(jwt), auth, log)

	r := chi.NewRouter()
	r.Use(
		request.RequestID,
		request.Recovery(log),
		request.Logger(log),
		metadata.ClientMetadata,
		device.Middleware,
		requesttime.Middleware,
		httpMetrics.LatencyMiddleware,
	)
	r.Get("/healthz", healthHandler(st.health))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	authhandler.New(auth, log, requireAuth).Register(r)
	registryhandler.New(registry, log, requireAuth).Register(r)
	a.router = r

	confirmations := worker.NewConfirmationWorker(registry,
		worker.WithInterval(cfg.Worker.ConfirmationInterval),
		worker.WithParallelism(cfg.Worker.ConfirmationParallel),
		worker.WithLogger(log),
		worker.WithMetrics(registryMetrics),
	)
	a.workers = append(a.workers, confirmations.Run)

	if st.outbox != nil && len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, producer.Close)
		if err := producer.EnsureTopic(ctx, 3, 1); err != nil {
			log.Warn("ensure audit topic", "topic", cfg.Kafka.Topic, "error", err)
		}
		relay := outbox.NewWorker(st.outbox, producer,
			outbox.WithInterval(cfg.Kafka.RelayInterval),
			outbox.WithLogger(log),
		)
		a.workers = append(a.workers, relay.Run)
	}

	ok = true
	return a, nil
}

func buildStorage(ctx context.Context, cfg config.Server, log *slog.Logger, a *app) (*storage, error) {
	st := &storage{}

	if cfg.Database.URL == "" {
		if cfg.IsProduction() {
			return nil, errors.New("DATABASE_URL is required in production")
		}
		log.Warn("DATABASE_URL not set; using in-memory stores")
		st.registry = registrystore.NewInMemory()
		st.users = user.New()
		st.audit = auditmemory.NewInMemoryStore()
	} else {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, err
		}
		auditStore := auditpostgres.New(db)
		st.registry = registrystore.NewPostgres(db).WithTxTimeout(cfg.Database.TxTimeout)
		st.users = user.NewPostgres(db)
		st.audit = auditStore
		st.outbox = auditStore
		st.health = append(st.health, func(ctx context.Context) error { return pingDB(ctx, db) })
	}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client != nil {
		a.closers = append(a.closers, func() { _ = client.Close() })
		st.sessions = session.NewRedis(client.Client)
		st.health = append(st.health, client.Health)
	} else {
		st.sessions = session.New()
	}
	return st, nil
}

func buildLedger(ctx context.Context, cfg config.Server, log *slog.Logger, reg prometheus.Registerer) (registryservice.Ledger, error) {
	if cfg.Ledger.RPCURL == "" {
		if cfg.IsProduction() {
			return nil, errors.New("LEDGER_RPC_URL is required in production")
		}
		log.Warn("LEDGER_RPC_URL not set; payment transactions are accepted without chain verification")
		return ledger.NewDevLedger(ledger.WithTrustUnknown()), nil
	}
	client, err := ethereum.Dial(ctx, cfg.Ledger.RPCURL, cfg.Ledger.ChainID,
		ethereum.WithTimeout(cfg.Ledger.Timeout),
		ethereum.WithMinConfirmations(cfg.Ledger.MinConfirmations),
		ethereum.WithLogger(log),
		ethereum.WithMetrics(reg),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func pingDB(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}

func healthHandler(checks []func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
