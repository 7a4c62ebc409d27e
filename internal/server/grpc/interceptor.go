package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/authz"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// protectedMethods lists the methods that need an access token, with the
// roles allowed to call them. An empty list admits any authenticated caller.
var protectedMethods = map[string][]models.Role{
	MethodGetProfile:         nil,
	MethodChangePassword:     nil,
	MethodCreateAvatarUpload: nil,
	MethodConfirmAvatar:      nil,
	MethodGetAvatarURL:       nil,
	MethodRemoveAvatar:       nil,
	MethodListAccounts:       {models.RoleAdmin},
	MethodChangeRole:         {models.RoleAdmin},
	MethodDeleteAccount:      {models.RoleAdmin},
	MethodGetAnalytics:       {models.RoleAdmin},
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	roles, protected := protectedMethods[info.FullMethod]
	if !protected {
		return handler(ctx, req)
	}

	id, err := s.gate.Authenticate(ctx, firstMetadata(ctx, common.AuthorizationHeaderName))
	if err != nil {
		return nil, toStatus(err)
	}
	if err := authz.RequireRole(id, roles...); err != nil {
		return nil, toStatus(err)
	}

	return handler(authz.WithIdentity(ctx, id), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "rpc",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}
