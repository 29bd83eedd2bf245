package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/tablewise/setup-api/internal/engine"
	"github.com/tablewise/setup-api/internal/orchestrators/admin"
	"github.com/tablewise/setup-api/internal/orchestrators/setup"
	"github.com/tablewise/setup-api/internal/pkg/clock"
	"github.com/tablewise/setup-api/internal/pkg/idgen"
	internalredis "github.com/tablewise/setup-api/internal/redis"
	"github.com/tablewise/setup-api/internal/repositories/expansion"
	"github.com/tablewise/setup-api/internal/repositories/game"
	gamemodule "github.com/tablewise/setup-api/internal/repositories/game_module"
	setupsession "github.com/tablewise/setup-api/internal/repositories/setup_session"
	"github.com/tablewise/setup-api/internal/repositories/step"
)

// serverConfig is populated from the environment. A .env file in the
// working directory is loaded first if present.
type serverConfig struct {
	Port       int           `env:"PORT" envDefault:"50051"`
	RedisAddr  string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisTLS   bool          `env:"REDIS_TLS" envDefault:"false"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"4h"`
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the setup-api gRPC server with all configured services.`,
	RunE:  runServer,
}

func loadConfig() (*serverConfig, error) {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg := &serverConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// buildServices wires repositories, the engine, and both orchestrators
// against a shared redis client.
func buildServices(cfg *serverConfig) (setup.Service, admin.Service, error) {
	redisClient, err := internalredis.NewClient(cfg.RedisAddr, &internalredis.Options{
		UseTLS: cfg.RedisTLS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	clk := clock.New()

	gameRepo, err := game.NewRedis(&game.RedisConfig{
		Client:      redisClient,
		Clock:       clk,
		IDGenerator: idgen.NewUUID("game"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create game repository: %w", err)
	}

	expansionRepo, err := expansion.NewRedis(&expansion.RedisConfig{
		Client:      redisClient,
		Clock:       clk,
		IDGenerator: idgen.NewUUID("exp"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create expansion repository: %w", err)
	}

	moduleRepo, err := gamemodule.NewRedis(&gamemodule.RedisConfig{
		Client:      redisClient,
		Clock:       clk,
		IDGenerator: idgen.NewUUID("mod"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create module repository: %w", err)
	}

	stepRepo, err := step.NewRedis(&step.RedisConfig{
		Client:      redisClient,
		Clock:       clk,
		IDGenerator: idgen.NewUUID("step"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create step repository: %w", err)
	}

	sessionRepo, err := setupsession.NewRedisRepository(&setupsession.Config{
		Client:      redisClient,
		Clock:       clk,
		IDGenerator: idgen.NewUUID("sess"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session repository: %w", err)
	}

	eng, err := engine.New(&engine.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}

	setupSvc, err := setup.NewOrchestrator(&setup.Config{
		GameRepo:      gameRepo,
		ExpansionRepo: expansionRepo,
		ModuleRepo:    moduleRepo,
		StepRepo:      stepRepo,
		SessionRepo:   sessionRepo,
		Engine:        eng,
		SessionTTL:    cfg.SessionTTL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create setup orchestrator: %w", err)
	}

	adminSvc, err := admin.NewOrchestrator(&admin.Config{
		GameRepo:      gameRepo,
		ExpansionRepo: expansionRepo,
		ModuleRepo:    moduleRepo,
		StepRepo:      stepRepo,
		Engine:        eng,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create admin orchestrator: %w", err)
	}

	return setupSvc, adminSvc, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Orchestrators are wired here so a bad configuration fails fast at
	// startup rather than on the first request. The gRPC service
	// bindings land with the generated API; until then the server
	// exposes health and reflection.
	if _, _, err := buildServices(cfg); err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("gRPC server starting on port %d...", cfg.Port)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down gRPC server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			log.Println("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	log.Printf("[%v] %s %v", level, msg, fields)
}
