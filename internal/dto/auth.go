package dto

// RequestOTPRequest asks for a one-time code to be sent to a phone number.
// Phone numbers are E.164 formatted.
type RequestOTPRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
}

// RequestOTPResponse acknowledges that a code was issued.
type RequestOTPResponse struct {
	Message   string `json:"message"`
	ExpiresIn int    `json:"expiresIn"` // Seconds until the code expires
}

// VerifyOTPRequest submits a one-time code for a phone number.
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// GoogleSignInRequest submits a Google ID token obtained by the client.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LoginResponse represents the response for a successful sign-in.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token string `json:"token"`
}
