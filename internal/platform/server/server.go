package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Registrar は gRPC サービスをサーバーへ登録する関数です。
type Registrar func(grpc.ServiceRegistrar)

// Options はサーバーの構成です。Observer と Limiter は省略可能です。
type Options struct {
	ListenAddr string
	Logger     zerolog.Logger
	Observer   RPCObserver
	Limiter    Limiter
	Services   map[string]Registrar
}

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
	logger     zerolog.Logger
}

// New はインターセプターとヘルスチェックを組み込んだ gRPC サーバーを構築します。
func New(opts Options, extra ...grpc.ServerOption) *Server {
	interceptors := []grpc.UnaryServerInterceptor{
		RequestLogging(opts.Logger),
	}
	if opts.Observer != nil {
		interceptors = append(interceptors, Observe(opts.Observer))
	}
	if opts.Limiter != nil {
		interceptors = append(interceptors, RateLimit(opts.Limiter, opts.Observer))
	}

	serverOpts := append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptors...)}, extra...)
	srv := grpc.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	for name, register := range opts.Services {
		register(srv)
		healthSrv.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return &Server{
		listenAddr: opts.ListenAddr,
		grpcServer: srv,
		health:     healthSrv,
		logger:     opts.Logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	s.logger.Info().Str("addr", lis.Addr().String()).Msg("gRPC server listening")
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}
	return nil
}

// GracefulStop はヘルスチェックを NOT_SERVING にしてからサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
