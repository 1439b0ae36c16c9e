package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IsAdmin      bool   `json:"es_admin"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse carries the backend's confirmation message.
type RegisterResponse struct {
	Message string `json:"mensaje"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
