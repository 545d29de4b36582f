package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/ogurasousui/codex-minhex/internal/adapters/grpc/handler"
	"github.com/ogurasousui/codex-minhex/internal/adapters/grpc/userv1"
	"github.com/ogurasousui/codex-minhex/internal/core/user"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, users user.UseCase, logger *slog.Logger, opts ...grpc.ServerOption) *Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(loggingInterceptor(logger))}, opts...)
	srv := grpc.NewServer(opts...)
	userv1.RegisterUserServiceServer(srv, handler.NewUserGrpcHandler(users, logger))

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.serve(ctx, lis)
}

func (s *Server) serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.grpcServer.GracefulStop()
	}()

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		if logger != nil {
			logger.InfoContext(ctx, "grpc request",
				slog.String("method", info.FullMethod),
				slog.String("code", status.Code(err).String()),
				slog.Duration("duration", time.Since(start)),
			)
		}
		return resp, err
	}
}
