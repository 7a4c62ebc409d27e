package grpc

import (
	"time"

	"github.com/dmitrijs2005/coursehub/internal/server/models"
)

type Empty struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role,omitempty"`
}

type RegisterResponse struct {
	Account            models.AccountView `json:"account"`
	VerificationHandle string             `json:"verificationHandle,omitempty"`
	DeliveryFailed     bool               `json:"deliveryFailed,omitempty"`
}

type TokenRequest struct {
	Token string `json:"token"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type StatusResponse struct {
	Status             string `json:"status"`
	VerificationHandle string `json:"verificationHandle,omitempty"`
	ResetHandle        string `json:"resetHandle,omitempty"`
	DeliveryFailed     bool   `json:"deliveryFailed,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccessResponse carries the access token only. The refresh token travels
// in the refresh-token header metadata.
type AccessResponse struct {
	AccessToken string              `json:"accessToken"`
	ExpiresIn   int64               `json:"expiresIn"`
	Account     *models.AccountView `json:"account,omitempty"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AccountRequest struct {
	ID string `json:"id"`
}

type ChangeRoleRequest struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type AccountList struct {
	Accounts []models.AccountView `json:"accounts"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType"`
}

// AvatarUploadResponse names the presigned PUT. The upload must send
// ContentType as its Content-Type header.
type AvatarUploadResponse struct {
	Key         string    `json:"key"`
	UploadURL   string    `json:"uploadUrl"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type AvatarKeyRequest struct {
	Key string `json:"key"`
}

type AvatarLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AnalyticsResponse struct {
	TotalUsers       int `json:"totalUsers"`
	TotalStudents    int `json:"totalStudents"`
	TotalInstructors int `json:"totalInstructors"`
	TotalAdmins      int `json:"totalAdmins"`
}
