package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/usecase"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/port"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/service"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/infrastructure/config"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/infrastructure/messaging"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/infrastructure/telemetry"
	grpcpresentation "github.com/Hec-S/Supplement-Guard-sub003/internal/presentation/grpc"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/presentation/rest"
	"github.com/Hec-S/Supplement-Guard-sub003/pkg/auth"
	"github.com/Hec-S/Supplement-Guard-sub003/pkg/kafka"
	"github.com/Hec-S/Supplement-Guard-sub003/pkg/observability"
	"github.com/Hec-S/Supplement-Guard-sub003/pkg/tlsutil"
)

const serviceName = "risk-service"

func main() {
	if err := run(); err != nil {
		slog.Error("risk-service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Service:     serviceName,
		Environment: cfg.Environment,
	})

	logger.Info("starting risk-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing is optional; without a collector spans go to the no-op provider.
	if cfg.TracingEnabled() {
		tp, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: serviceName,
			Environment: cfg.Environment,
			Endpoint:    cfg.OTLPEndpoint,
			SampleRatio: cfg.TraceSampleRatio,
			Insecure:    !cfg.TLSEnabled(),
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					logger.Error("tracer shutdown error", "error", err)
				}
			}()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: serviceName})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer meterProvider.Shutdown(context.Background())

	riskMetrics, err := telemetry.NewRiskMetrics(meterProvider.Meter(serviceName))
	if err != nil {
		return err
	}

	thresholds, err := config.LoadThresholds(cfg.ThresholdsFile)
	if err != nil {
		return fmt.Errorf("failed to load thresholds: %w", err)
	}

	// Wire infrastructure adapters.
	kafkaCfg := kafka.Config{
		Brokers:       cfg.KafkaBrokers,
		ConsumerGroup: cfg.KafkaConsumerGroup,
		SASLEnabled:   cfg.KafkaSASLMechanism != "",
		SASLMechanism: cfg.KafkaSASLMechanism,
		SASLUsername:  cfg.KafkaSASLUsername,
		SASLPassword:  cfg.KafkaSASLPassword,
		TLS:           cfg.KafkaTLS,
	}

	var publisher port.EventPublisher
	readiness := map[string]rest.ReadinessCheck{}
	if cfg.KafkaEnabled() {
		producer, err := kafka.NewProducer(kafkaCfg)
		if err != nil {
			return fmt.Errorf("failed to create kafka producer: %w", err)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaPublisher(producer, cfg.KafkaTopic, logger)
		readiness["kafka"] = func(ctx context.Context) error { return kafka.Ping(ctx, kafkaCfg) }
	} else {
		logger.Warn("no kafka brokers configured, logging events instead")
		publisher = messaging.NewLogPublisher(logger)
	}

	// Wire domain services.
	detector := service.NewAnomalyDetector(thresholds, logger)
	scorer := service.NewRiskScorer(thresholds, logger)
	fallback := service.NewBaselineScorer(thresholds)

	// Wire use cases.
	assessSupplementUC := usecase.NewAssessSupplement(detector, scorer, fallback, publisher, riskMetrics, logger)
	assessBatchUC := usecase.NewAssessBatch(assessSupplementUC, cfg.BatchConcurrency)

	var jwtService *auth.JWTService
	if cfg.AuthEnabled() {
		if cfg.JWTPublicKeyFile != "" {
			jwtService, err = auth.NewJWTServiceFromFile(cfg.JWTPublicKeyFile, cfg.JWTIssuer)
		} else {
			jwtService, err = auth.NewJWTService(auth.JWTConfig{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})
		}
		if err != nil {
			return fmt.Errorf("failed to initialize authentication: %w", err)
		}
	} else {
		logger.Warn("authentication disabled, set JWT_SECRET or JWT_PUBLIC_KEY_FILE to enable it")
	}

	// gRPC server.
	grpcHandler := grpcpresentation.NewRiskServiceHandler(assessSupplementUC, assessBatchUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		JWT:         jwtService,
		Address:     cfg.GRPCAddress(),
		TLSCertFile: cfg.TLSCertFile,
		TLSKeyFile:  cfg.TLSKeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server.
	httpMux := http.NewServeMux()
	rest.NewHealthHandler(serviceName, readiness, logger).RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	var wrap func(http.Handler) http.Handler
	if jwtService != nil {
		wrap = auth.Middleware(jwtService, auth.AssessRoles)
	}
	rest.NewAssessmentHandler(assessSupplementUC, assessBatchUC, logger).RegisterRoutes(httpMux, wrap)

	middlewares := []func(http.Handler) http.Handler{rest.LoggingMiddleware(logger)}
	if cfg.RateLimitRPS > 0 {
		middlewares = append(middlewares, rest.RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitRPS)))
	}

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      otelhttp.NewHandler(rest.Chain(httpMux, middlewares...), serviceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	if cfg.TLSEnabled() {
		tlsCfg, err := tlsutil.ServerConfig(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return err
		}
		httpServer.TLSConfig = tlsCfg
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Start(); err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		var err error
		if httpServer.TLSConfig != nil {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	if cfg.IntakeEnabled() {
		handler := messaging.NewComparisonHandler(assessSupplementUC, logger)
		consumer, err := kafka.NewConsumer(kafkaCfg, cfg.KafkaIntakeTopic, handler, logger)
		if err != nil {
			return fmt.Errorf("failed to create intake consumer: %w", err)
		}
		g.Go(func() error {
			defer consumer.Close()
			if err := consumer.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("intake consumer error: %w", err)
			}
			return nil
		})
	}

	logger.Info("risk-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"intake_topic", cfg.KafkaIntakeTopic,
		"environment", cfg.Environment,
	)

	// Wait for a shutdown signal or the first server failure.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down risk-service")

		grpcServer.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("risk-service stopped")
	return nil
}
