package dto

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type RevokeTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest used for PUT /api/user. All fields optional;
// only the provided ones change.
type UpdateProfileRequest struct {
	Username        *string `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Email           *string `json:"email,omitempty" binding:"omitempty,email"`
	AvatarURL       *string `json:"avatar_url,omitempty" binding:"omitempty,url"`
	Password        *string `json:"password,omitempty" binding:"omitempty,min=8"`
	CurrentPassword *string `json:"current_password,omitempty"`
}
