package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
	"github.com/splitmate/splitmate_backend/internal/dto"
	"github.com/splitmate/splitmate_backend/internal/middleware"
	"github.com/splitmate/splitmate_backend/internal/platform/config"
	"github.com/splitmate/splitmate_backend/internal/utils"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
	tokenSvc    portssvc.TokenSvcFacade
	otpSvc      portssvc.OTPSvcFacade
	googleSvc   portssvc.GoogleAuthSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *AuthHandler {
	return &AuthHandler{
		cfg:         cfg,
		userService: services.User,
		tokenSvc:    services.Token,
		otpSvc:      services.OTP,
		googleSvc:   services.GoogleAuth,
	}
}

// registerAuthRoutes sets up the public routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(cfg, services)

	// Code requests are the abuse surface (SMS cost); 5 per minute per IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	limitMiddleware := middleware.RateLimit(limiter.New(store, rate))

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/otp/request", limitMiddleware, h.RequestOTP)
		auth.POST("/otp/verify", h.VerifyOTP)
		auth.POST("/google", h.GoogleSignIn)
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/logout", h.Logout)
	}
}

// RequestOTP godoc
// @Summary Request a one-time sign-in code
// @Description Issues a one-time code for the given phone number, delivered out of band.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestOTPRequest true "Phone number"
// @Success 200 {object} dto.RequestOTPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Failure 500 {object} ErrorResponse
// @Router /auth/otp/request [post]
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	code, err := h.otpSvc.RequestOTP(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, err, "Failed to issue code")
		return
	}

	// Delivery via SMS gateway. Until one is wired, the code is logged outside
	// production so local sign-in remains possible.
	if !h.cfg.IsProduction {
		logger.Info("Generated sign-in code", slog.String("code", code))
	}

	c.JSON(http.StatusOK, dto.RequestOTPResponse{
		Message:   "Code sent",
		ExpiresIn: int(h.cfg.OTPExpiryDuration.Seconds()),
	})
}

// VerifyOTP godoc
// @Summary Verify a one-time code and sign in
// @Description Verifies the code for a phone number; creates the user on first sign-in. Returns an access token and sets the refresh token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Phone number and code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Wrong or expired code"
// @Failure 500 {object} ErrorResponse
// @Router /auth/otp/verify [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.otpSvc.VerifyOTP(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		respondError(c, err, "Failed to verify code")
		return
	}

	h.issueTokens(c, user)
}

// GoogleSignIn godoc
// @Summary Sign in with a Google ID token
// @Description Validates a Google ID token obtained by the client; creates the user on first sign-in. Returns an access token and sets the refresh token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleSignInRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid ID token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	payload, err := h.googleSvc.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	// Google accounts carry a verified phone only rarely; the account's subject
	// is used as a synthetic phone-style identity key.
	phone, _ := payload.Claims["phone_number"].(string)
	if phone == "" {
		phone = "google:" + payload.Subject
	}

	user, err := h.userService.FindOrCreateUserByPhone(c.Request.Context(), phone)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}

	h.issueTokens(c, user)
}

// RefreshToken godoc
// @Summary Refresh the access token
// @Description Exchanges the refresh token cookie for a new access token, rotating the refresh token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse "Missing, invalid or expired refresh token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	userID, rawToken, ok := h.readRefreshCookie(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing refresh token"})
		return
	}

	user, err := h.tokenSvc.ValidateAndParseRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		h.clearRefreshCookie(c)
		respondError(c, err, "Failed to refresh token")
		return
	}

	accessToken, _, err := h.tokenSvc.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	// Rotate: each refresh token is single use.
	if err := h.storeRefreshToken(c, user); err != nil {
		respondError(c, err, "Failed to refresh token")
		return
	}

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken})
}

// Logout godoc
// @Summary Sign out
// @Description Clears the refresh token cookie and revokes the stored refresh token.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, _, ok := h.readRefreshCookie(c); ok {
		if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Warn("Failed to revoke refresh token on logout", slog.String("error", err.Error()))
		}
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// issueTokens writes the login response: access token in the body, rotated
// refresh token in an HTTP-only cookie.
func (h *AuthHandler) issueTokens(c *gin.Context, user *domain.User) {
	accessToken, _, err := h.tokenSvc.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	if err := h.storeRefreshToken(c, user); err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: accessToken,
		User:  dto.ToUserResponse(user),
	})
}

// storeRefreshToken generates a fresh refresh token, persists its hash on the
// user row and sets the cookie.
func (h *AuthHandler) storeRefreshToken(c *gin.Context, user *domain.User) error {
	rawToken, expiryTime, err := h.tokenSvc.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		return err
	}

	hash := utils.HashRefreshToken(rawToken)
	if err := h.userService.UpdateRefreshToken(c.Request.Context(), user.UserID, hash, expiryTime); err != nil {
		return err
	}

	// Cookie value carries the user ID alongside the token so refresh does not
	// need a (possibly expired) access token to identify the user.
	maxAge := int(h.cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, user.UserID+":"+rawToken, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	return nil
}

func (h *AuthHandler) readRefreshCookie(c *gin.Context) (userID, rawToken string, ok bool) {
	value, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || value == "" {
		return "", "", false
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}
