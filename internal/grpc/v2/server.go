package v2

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName имя сервиса в протоколе grpc.health.v1.
const ServiceName = "linkbucket.v1.LinkBucket"

const defaultPollInterval = 10 * time.Second

// Pinger проверка доступности хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// GRPCServer отдаёт состояние сервиса по grpc.health.v1, основанное на доступности хранилища.
type GRPCServer struct {
	Server       *grpc.Server
	Health       *health.Server
	Pinger       Pinger
	PollInterval time.Duration
	Logger       *zap.Logger
}

func NewGRPCServer(pinger Pinger, logger *zap.Logger) *GRPCServer {
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return &GRPCServer{
		Server:       srv,
		Health:       hs,
		Pinger:       pinger,
		PollInterval: defaultPollInterval,
		Logger:       logger.With(zap.String("component", "grpc")),
	}
}

// Check один раз проверяет хранилище и обновляет статус.
func (s *GRPCServer) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.Pinger.Ping(ctx); err != nil {
		s.Logger.Warn("Storage ping failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.Health.SetServingStatus("", status)
	s.Health.SetServingStatus(ServiceName, status)
	return status
}

// Watch обновляет статус, пока не отменён ctx.
func (s *GRPCServer) Watch(ctx context.Context) {
	interval := s.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Serve принимает соединения на lis до вызова Shutdown.
func (s *GRPCServer) Serve(lis net.Listener) error {
	s.Logger.Info("gRPC health server listening", zap.String("address", lis.Addr().String()))
	return s.Server.Serve(lis)
}

// Shutdown помечает сервис недоступным и останавливает сервер.
func (s *GRPCServer) Shutdown() {
	s.Health.Shutdown()
	s.Server.GracefulStop()
}
