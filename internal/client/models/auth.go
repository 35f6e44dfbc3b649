package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	Token string `json:"token"`
}

// LoginResult is returned by both login endpoints.
type LoginResult struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

type SendVerificationRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type VerifyCodeRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
}

// VerificationResult is the reply of both phone verification endpoints.
type VerificationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
