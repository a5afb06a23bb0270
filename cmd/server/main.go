// Command server wires the scan and barcode services behind the HTTP API and
// owns process lifecycle: dependency construction, background workers, and
// graceful shutdown. Business logic lives in the internal service packages.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"scanid/internal/audit"
	auditkafka "scanid/internal/audit/kafka"
	auditmemory "scanid/internal/audit/store/memory"
	auditpostgres "scanid/internal/audit/store/postgres"
	barcodehandler "scanid/internal/barcode/handler"
	barcodemetrics "scanid/internal/barcode/metrics"
	"scanid/internal/barcode/ports"
	barcodeservice "scanid/internal/barcode/service"
	"scanid/internal/barcode/store/catalog"
	httpapi "scanid/internal/http"
	"scanid/internal/platform/config"
	"scanid/internal/platform/httpserver"
	"scanid/internal/platform/logger"
	platformmetrics "scanid/internal/platform/metrics"
	"scanid/internal/platform/postgres"
	"scanid/internal/platform/ratelimit"
	platformredis "scanid/internal/platform/redis"
	"scanid/internal/platform/token"
	"scanid/internal/scan/adapters/cataloghttp"
	"scanid/internal/scan/adapters/catalogmem"
	scanhandler "scanid/internal/scan/handler"
	scanmetrics "scanid/internal/scan/metrics"
	scanports "scanid/internal/scan/ports"
	scanservice "scanid/internal/scan/service"
	"scanid/internal/scan/store/history"
)

const auditInboxSize = 1024

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Backing stores. Both are optional; absence falls back to in-memory
	// implementations so the service still runs in local development.
	pool, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Audit pipeline: request paths publish to a buffered channel, a worker
	// drains it into the store, and kafka fans out when brokers are set.
	auditStore, closeAuditStore, err := buildAuditStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeAuditStore()

	auditInbox := make(chan audit.Event, auditInboxSize)
	auditWorker := audit.NewWorker(auditStore, auditInbox, log)

	publishers := audit.Fanout{audit.NewChannelPublisher(auditInbox)}
	var kafkaPublisher *auditkafka.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err = auditkafka.NewPublisher(ctx, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, log)
		if err != nil {
			return err
		}
		publishers = append(publishers, kafkaPublisher)
	}

	// Barcode feature.
	var catalogStore ports.CatalogStore = catalog.NewInMemoryStore()
	if pool != nil {
		catalogStore = catalog.NewPostgres(pool.Pool)
	}

	barcodeSvc, err := barcodeservice.New(catalogStore,
		barcodeservice.WithLogger(log),
		barcodeservice.WithMetrics(barcodemetrics.New()),
		barcodeservice.WithAuditPublisher(publishers),
		barcodeservice.WithMaxProbes(cfg.Allocator.MaxProbes),
		barcodeservice.WithPersistAttempts(cfg.Allocator.PersistAttempts),
	)
	if err != nil {
		return err
	}

	// Scan feature.
	var lookup scanports.LookupService
	if cfg.Scan.LookupBaseURL != "" {
		lookup, err = cataloghttp.NewClient(cfg.Scan.LookupBaseURL,
			cataloghttp.WithHTTPClient(&http.Client{Timeout: cfg.Scan.LookupTimeout}))
		if err != nil {
			return err
		}
	} else {
		log.Warn("no lookup service configured, using empty in-memory catalog")
		lookup = catalogmem.NewCatalog()
	}

	var historyStore scanports.HistoryStore = history.NewInMemoryStore()
	if redisClient != nil {
		historyStore = history.NewRedisStore(redisClient.Client)
	}

	scanSvc, err := scanservice.New(lookup,
		scanservice.WithLogger(log),
		scanservice.WithMetrics(scanmetrics.New()),
		scanservice.WithAuditPublisher(publishers),
		scanservice.WithHistoryStore(historyStore),
		scanservice.WithTabSubmitMinLength(cfg.Scan.TabSubmitMinLength),
		scanservice.WithHistoryLimit(cfg.Scan.HistoryLimit),
	)
	if err != nil {
		return err
	}

	var pgCheck, redisCheck httpapi.HealthChecker
	if pool != nil {
		pgCheck = pool
	}
	if redisClient != nil {
		redisCheck = redisClient
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         log,
		Metrics:        platformmetrics.New(),
		Validator:      token.NewValidator(cfg.Auth.JWTSigningKey),
		Limiter:        ratelimit.New(cfg.RateLimit.Limit, cfg.RateLimit.Window),
		ScanHandler:    scanhandler.New(scanSvc, log),
		BarcodeHandler: barcodehandler.New(barcodeSvc, log),
		Postgres:       pgCheck,
		Redis:          redisCheck,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting scanid server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return auditWorker.Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		log.Info("shutting down")
		if kafkaPublisher != nil {
			if err := kafkaPublisher.Close(shutdownCtx); err != nil {
				log.Warn("kafka publisher close failed", "error", err)
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	// A signal-driven shutdown surfaces as context.Canceled; that is a clean exit.
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// buildAuditStore prefers postgres via database/sql and falls back to memory.
func buildAuditStore(cfg config.Config, log *slog.Logger) (audit.Store, func(), error) {
	if cfg.Postgres.URL == "" {
		return auditmemory.NewInMemoryStore(), func() {}, nil
	}

	store, db, err := auditpostgres.Open(cfg.Postgres.URL)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := db.Close(); err != nil {
			log.Warn("audit store close failed", "error", err)
		}
	}, nil
}
