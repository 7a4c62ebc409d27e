package grpc

import (
	"context"

	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"google.golang.org/grpc"
)

const ServiceName = "coursehub.auth.v1.AuthService"

// Full method names, as seen by interceptors.
const (
	MethodPing               = "/" + ServiceName + "/Ping"
	MethodRegister           = "/" + ServiceName + "/Register"
	MethodVerifyEmail        = "/" + ServiceName + "/VerifyEmail"
	MethodResendVerification = "/" + ServiceName + "/ResendVerification"
	MethodLogin              = "/" + ServiceName + "/Login"
	MethodRefreshToken       = "/" + ServiceName + "/RefreshToken"
	MethodForgotPassword     = "/" + ServiceName + "/ForgotPassword"
	MethodResetPassword      = "/" + ServiceName + "/ResetPassword"
	MethodGetProfile         = "/" + ServiceName + "/GetProfile"
	MethodChangePassword     = "/" + ServiceName + "/ChangePassword"
	MethodListAccounts       = "/" + ServiceName + "/ListAccounts"
	MethodChangeRole         = "/" + ServiceName + "/ChangeRole"
	MethodDeleteAccount      = "/" + ServiceName + "/DeleteAccount"
	MethodCreateAvatarUpload = "/" + ServiceName + "/CreateAvatarUpload"
	MethodConfirmAvatar      = "/" + ServiceName + "/ConfirmAvatar"
	MethodGetAvatarURL       = "/" + ServiceName + "/GetAvatarURL"
	MethodRemoveAvatar       = "/" + ServiceName + "/RemoveAvatar"
	MethodGetAnalytics       = "/" + ServiceName + "/GetAnalytics"
)

// AuthServiceServer is implemented by GRPCServer.
type AuthServiceServer interface {
	Ping(context.Context, *Empty) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	VerifyEmail(context.Context, *TokenRequest) (*StatusResponse, error)
	ResendVerification(context.Context, *EmailRequest) (*StatusResponse, error)
	Login(context.Context, *LoginRequest) (*AccessResponse, error)
	RefreshToken(context.Context, *Empty) (*AccessResponse, error)
	ForgotPassword(context.Context, *EmailRequest) (*StatusResponse, error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*StatusResponse, error)
	GetProfile(context.Context, *Empty) (*models.AccountView, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*StatusResponse, error)
	ListAccounts(context.Context, *Empty) (*AccountList, error)
	ChangeRole(context.Context, *ChangeRoleRequest) (*models.AccountView, error)
	DeleteAccount(context.Context, *AccountRequest) (*Empty, error)
	CreateAvatarUpload(context.Context, *AvatarUploadRequest) (*AvatarUploadResponse, error)
	ConfirmAvatar(context.Context, *AvatarKeyRequest) (*models.AccountView, error)
	GetAvatarURL(context.Context, *Empty) (*AvatarLinkResponse, error)
	RemoveAvatar(context.Context, *Empty) (*models.AccountView, error)
	GetAnalytics(context.Context, *Empty) (*AnalyticsResponse, error)
}

func _AuthService_Ping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodPing}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).Ping(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_Register_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).Register(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodRegister}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).Register(ctx, req.(*RegisterRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_VerifyEmail_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TokenRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).VerifyEmail(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodVerifyEmail}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).VerifyEmail(ctx, req.(*TokenRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_ResendVerification_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EmailRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).ResendVerification(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodResendVerification}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).ResendVerification(ctx, req.(*EmailRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_Login_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLogin}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).Login(ctx, req.(*LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_RefreshToken_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).RefreshToken(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodRefreshToken}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).RefreshToken(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_ForgotPassword_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EmailRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).ForgotPassword(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodForgotPassword}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).ForgotPassword(ctx, req.(*EmailRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_ResetPassword_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ResetPasswordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).ResetPassword(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodResetPassword}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).ResetPassword(ctx, req.(*ResetPasswordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_GetProfile_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).GetProfile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetProfile}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).GetProfile(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_ChangePassword_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChangePasswordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).ChangePassword(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodChangePassword}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).ChangePassword(ctx, req.(*ChangePasswordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_ListAccounts_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).ListAccounts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListAccounts}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).ListAccounts(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_ChangeRole_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChangeRoleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).ChangeRole(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodChangeRole}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).ChangeRole(ctx, req.(*ChangeRoleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_DeleteAccount_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).DeleteAccount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDeleteAccount}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).DeleteAccount(ctx, req.(*AccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_CreateAvatarUpload_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AvatarUploadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).CreateAvatarUpload(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCreateAvatarUpload}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).CreateAvatarUpload(ctx, req.(*AvatarUploadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_ConfirmAvatar_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AvatarKeyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).ConfirmAvatar(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodConfirmAvatar}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).ConfirmAvatar(ctx, req.(*AvatarKeyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_GetAvatarURL_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).GetAvatarURL(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetAvatarURL}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).GetAvatarURL(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_RemoveAvatar_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).RemoveAvatar(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodRemoveAvatar}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).RemoveAvatar(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_GetAnalytics_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).GetAnalytics(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetAnalytics}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).GetAnalytics(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// AuthServiceDesc describes the service without protobuf descriptors;
// messages are encoded with the json codec.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: _AuthService_Ping_Handler},
		{MethodName: "Register", Handler: _AuthService_Register_Handler},
		{MethodName: "VerifyEmail", Handler: _AuthService_VerifyEmail_Handler},
		{MethodName: "ResendVerification", Handler: _AuthService_ResendVerification_Handler},
		{MethodName: "Login", Handler: _AuthService_Login_Handler},
		{MethodName: "RefreshToken", Handler: _AuthService_RefreshToken_Handler},
		{MethodName: "ForgotPassword", Handler: _AuthService_ForgotPassword_Handler},
		{MethodName: "ResetPassword", Handler: _AuthService_ResetPassword_Handler},
		{MethodName: "GetProfile", Handler: _AuthService_GetProfile_Handler},
		{MethodName: "ChangePassword", Handler: _AuthService_ChangePassword_Handler},
		{MethodName: "ListAccounts", Handler: _AuthService_ListAccounts_Handler},
		{MethodName: "ChangeRole", Handler: _AuthService_ChangeRole_Handler},
		{MethodName: "DeleteAccount", Handler: _AuthService_DeleteAccount_Handler},
		{MethodName: "CreateAvatarUpload", Handler: _AuthService_CreateAvatarUpload_Handler},
		{MethodName: "ConfirmAvatar", Handler: _AuthService_ConfirmAvatar_Handler},
		{MethodName: "GetAvatarURL", Handler: _AuthService_GetAvatarURL_Handler},
		{MethodName: "RemoveAvatar", Handler: _AuthService_RemoveAvatar_Handler},
		{MethodName: "GetAnalytics", Handler: _AuthService_GetAnalytics_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coursehub/auth/v1/auth.json",
}

// AuthClient is a thin typed client over a connection.
type AuthClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) *AuthClient {
	return &AuthClient{cc: cc}
}

func (c *AuthClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodPing, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	out := new(RegisterResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodRegister, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) VerifyEmail(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodVerifyEmail, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) ResendVerification(ctx context.Context, in *EmailRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodResendVerification, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AccessResponse, error) {
	out := new(AccessResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodLogin, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) RefreshToken(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AccessResponse, error) {
	out := new(AccessResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodRefreshToken, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) ForgotPassword(ctx context.Context, in *EmailRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodForgotPassword, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodResetPassword, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) GetProfile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*models.AccountView, error) {
	out := new(models.AccountView)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodGetProfile, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodChangePassword, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) ListAccounts(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AccountList, error) {
	out := new(AccountList)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodListAccounts, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) ChangeRole(ctx context.Context, in *ChangeRoleRequest, opts ...grpc.CallOption) (*models.AccountView, error) {
	out := new(models.AccountView)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodChangeRole, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) DeleteAccount(ctx context.Context, in *AccountRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodDeleteAccount, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) CreateAvatarUpload(ctx context.Context, in *AvatarUploadRequest, opts ...grpc.CallOption) (*AvatarUploadResponse, error) {
	out := new(AvatarUploadResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodCreateAvatarUpload, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) ConfirmAvatar(ctx context.Context, in *AvatarKeyRequest, opts ...grpc.CallOption) (*models.AccountView, error) {
	out := new(models.AccountView)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodConfirmAvatar, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) GetAvatarURL(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AvatarLinkResponse, error) {
	out := new(AvatarLinkResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodGetAvatarURL, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) RemoveAvatar(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*models.AccountView, error) {
	out := new(models.AccountView)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodRemoveAvatar, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) GetAnalytics(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AnalyticsResponse, error) {
	out := new(AnalyticsResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodGetAnalytics, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
