// Package grpc serves the identity operations over gRPC with a JSON codec.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/authz"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
	"google.golang.org/grpc"
)

type Options struct {
	AccessTokenTTL time.Duration
	// Development echoes raw verification and reset tokens in responses.
	Development bool
}

type GRPCServer struct {
	address  string
	identity *services.IdentityService
	admin    *services.AdminService
	avatars  *services.AvatarService
	gate     *authz.Gate
	opts     Options
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, identity *services.IdentityService, admin *services.AdminService, avatars *services.AvatarService, gate *authz.Gate, opts Options) (*GRPCServer, error) {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		identity: identity,
		admin:    admin,
		avatars:  avatars,
		gate:     gate,
		opts:     opts,
	}, nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	srv.RegisterService(&AuthServiceDesc, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
