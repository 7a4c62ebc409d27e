package grpc

import (
	"errors"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC status codes. Only validation errors
// carry their own message; the rest use fixed text so token and credential
// failures look alike to callers.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrDuplicateEmail):
		return status.Error(codes.AlreadyExists, "email already registered")
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid email or password")
	case errors.Is(err, common.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "authentication required")
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, "insufficient role")
	case errors.Is(err, common.ErrEmailNotVerified):
		return status.Error(codes.FailedPrecondition, "email not verified")
	case errors.Is(err, common.ErrInvalidOrExpiredToken):
		return status.Error(codes.InvalidArgument, "invalid or expired token")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
