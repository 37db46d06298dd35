package usecase

import (
	authdomain "studioflow-backend/internal/auth/domain"
	authdto "studioflow-backend/internal/auth/dto"
)

// AuthUsecase defines the interface for authentication business logic
type AuthUsecase interface {
	// Login authenticates an email/password user and issues tokens
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)

	// Register creates a new workspace member account
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)

	// RefreshToken rotates an access token using a stored refresh token
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)

	// Logout revokes a refresh token
	Logout(refreshToken string) error

	// ValidateToken verifies an access token and returns its user
	ValidateToken(tokenString string) (*authdomain.User, error)

	// ListTeam returns all workspace members
	ListTeam() ([]*authdomain.User, error)

	// RegisterDeviceToken stores an FCM token for push notifications
	RegisterDeviceToken(userID, token, deviceInfo string) error

	// UnregisterDeviceToken removes an FCM token
	UnregisterDeviceToken(token string) error
}
