package player

import "time"

// SignInRequest represents a player sign-in request.
type SignInRequest struct {
	PlayerCode string `json:"player_code"`
}

// SignInResponse carries the issued identity.
type SignInResponse struct {
	PlayerID  string    `json:"player_id,omitempty"`
	Token     string    `json:"token,omitempty"`
	TokenType string    `json:"token_type,omitempty"`
	ExpiresIn int64     `json:"expires_in,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response.
type ValidateTokenResponse struct {
	Valid      bool   `json:"valid"`
	PlayerID   string `json:"player_id,omitempty"`
	PlayerCode string `json:"player_code,omitempty"`
	Error      string `json:"error,omitempty"`
}
