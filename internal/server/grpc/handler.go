package grpc

import (
	"context"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/authz"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

var _ AuthServiceServer = (*GRPCServer)(nil)

func (s *GRPCServer) Ping(ctx context.Context, _ *Empty) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	res, err := s.identity.Register(ctx, req.DisplayName, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &RegisterResponse{Account: res.Account.View(), DeliveryFailed: res.DeliveryErr != nil}
	if s.opts.Development {
		resp.VerificationHandle = res.VerificationHandle
	}
	return resp, nil
}

func (s *GRPCServer) VerifyEmail(ctx context.Context, req *TokenRequest) (*StatusResponse, error) {
	if _, err := s.identity.VerifyEmail(ctx, req.Token); err != nil {
		return nil, toStatus(err)
	}
	return &StatusResponse{Status: "verified"}, nil
}

func (s *GRPCServer) ResendVerification(ctx context.Context, req *EmailRequest) (*StatusResponse, error) {
	res, err := s.identity.ResendVerification(ctx, req.Email)
	if err != nil {
		return nil, toStatus(err)
	}

	if res.AlreadyVerified {
		return &StatusResponse{Status: "already_verified"}, nil
	}
	resp := &StatusResponse{Status: "sent", DeliveryFailed: res.DeliveryErr != nil}
	if s.opts.Development {
		resp.VerificationHandle = res.VerificationHandle
	}
	return resp, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *LoginRequest) (*AccessResponse, error) {
	res, err := s.identity.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := grpc.SetHeader(ctx, metadata.Pairs(common.RefreshTokenMetadataKey, res.RefreshToken)); err != nil {
		s.logger.Error(ctx, "failed to set refresh token header", "error", err)
		return nil, toStatus(err)
	}

	view := res.Account.View()
	return &AccessResponse{
		AccessToken: res.AccessToken,
		ExpiresIn:   int64(s.opts.AccessTokenTTL.Seconds()),
		Account:     &view,
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, _ *Empty) (*AccessResponse, error) {
	token := firstMetadata(ctx, common.RefreshTokenMetadataKey)
	if token == "" {
		return nil, toStatus(common.ErrUnauthorized)
	}

	access, _, err := s.identity.RefreshAccessToken(ctx, token)
	if err != nil {
		return nil, toStatus(err)
	}
	return &AccessResponse{AccessToken: access, ExpiresIn: int64(s.opts.AccessTokenTTL.Seconds())}, nil
}

func (s *GRPCServer) ForgotPassword(ctx context.Context, req *EmailRequest) (*StatusResponse, error) {
	res, err := s.identity.ForgotPassword(ctx, req.Email)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &StatusResponse{Status: "accepted"}
	if s.opts.Development {
		resp.ResetHandle = res.ResetHandle
	}
	return resp, nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *ResetPasswordRequest) (*StatusResponse, error) {
	if err := s.identity.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		return nil, toStatus(err)
	}
	return &StatusResponse{Status: "password_reset"}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, _ *Empty) (*models.AccountView, error) {
	acc, err := s.identity.GetProfile(ctx, authz.FromContext(ctx).AccountID)
	if err != nil {
		return nil, toStatus(err)
	}
	view := acc.View()
	return &view, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *ChangePasswordRequest) (*StatusResponse, error) {
	id := authz.FromContext(ctx)
	if err := s.identity.ChangePassword(ctx, id.AccountID, req.CurrentPassword, req.NewPassword); err != nil {
		return nil, toStatus(err)
	}
	return &StatusResponse{Status: "password_changed"}, nil
}

func (s *GRPCServer) ListAccounts(ctx context.Context, _ *Empty) (*AccountList, error) {
	list, err := s.admin.ListAccounts(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	out := &AccountList{Accounts: make([]models.AccountView, 0, len(list))}
	for _, acc := range list {
		out.Accounts = append(out.Accounts, acc.View())
	}
	return out, nil
}

func (s *GRPCServer) ChangeRole(ctx context.Context, req *ChangeRoleRequest) (*models.AccountView, error) {
	acc, err := s.admin.ChangeRole(ctx, authz.FromContext(ctx), req.ID, req.Role)
	if err != nil {
		return nil, toStatus(err)
	}
	view := acc.View()
	return &view, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *AccountRequest) (*Empty, error) {
	if err := s.admin.DeleteAccount(ctx, authz.FromContext(ctx), req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *GRPCServer) CreateAvatarUpload(ctx context.Context, req *AvatarUploadRequest) (*AvatarUploadResponse, error) {
	up, err := s.avatars.CreateUpload(ctx, authz.FromContext(ctx).AccountID, req.ContentType)
	if err != nil {
		return nil, toStatus(err)
	}
	return &AvatarUploadResponse{
		Key:         up.Key,
		UploadURL:   up.UploadURL,
		ContentType: up.ContentType,
		ExpiresAt:   up.ExpiresAt,
	}, nil
}

func (s *GRPCServer) ConfirmAvatar(ctx context.Context, req *AvatarKeyRequest) (*models.AccountView, error) {
	acc, err := s.avatars.Confirm(ctx, authz.FromContext(ctx).AccountID, req.Key)
	if err != nil {
		return nil, toStatus(err)
	}
	view := acc.View()
	return &view, nil
}

func (s *GRPCServer) GetAvatarURL(ctx context.Context, _ *Empty) (*AvatarLinkResponse, error) {
	link, err := s.avatars.DownloadURL(ctx, authz.FromContext(ctx).AccountID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &AvatarLinkResponse{URL: link.URL, ExpiresAt: link.ExpiresAt}, nil
}

func (s *GRPCServer) RemoveAvatar(ctx context.Context, _ *Empty) (*models.AccountView, error) {
	acc, err := s.avatars.Remove(ctx, authz.FromContext(ctx).AccountID)
	if err != nil {
		return nil, toStatus(err)
	}
	view := acc.View()
	return &view, nil
}

func (s *GRPCServer) GetAnalytics(ctx context.Context, _ *Empty) (*AnalyticsResponse, error) {
	a, err := s.admin.Analytics(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &AnalyticsResponse{
		TotalUsers:       a.TotalUsers,
		TotalStudents:    a.TotalStudents,
		TotalInstructors: a.TotalInstructors,
		TotalAdmins:      a.TotalAdmins,
	}, nil
}
