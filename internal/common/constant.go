package common

const (
	// AuthorizationHeaderName carries "Bearer <access token>" on HTTP requests
	// and as gRPC metadata.
	AuthorizationHeaderName = "authorization"

	// BearerPrefix is the scheme prefix of the authorization header value.
	BearerPrefix = "Bearer "

	// RefreshTokenCookieName is the HttpOnly cookie carrying the refresh token.
	RefreshTokenCookieName = "refreshToken"

	// RefreshTokenMetadataKey carries the refresh token in gRPC metadata.
	// It is never part of a response message.
	RefreshTokenMetadataKey = "refresh-token"
)
