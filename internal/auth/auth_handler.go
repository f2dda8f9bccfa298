package auth

import (
	"net/http"
	"time"

	"frigo-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication requests for the single device user
type AuthHandler struct {
	jwtManager   *JWTManager
	username     string
	passwordHash []byte
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler. passwordHash is a bcrypt hash;
// when empty every login is refused.
func NewAuthHandler(jwtManager *JWTManager, username, passwordHash string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		jwtManager:   jwtManager,
		username:     username,
		passwordHash: []byte(passwordHash),
		logger:       logger,
	}
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"frigo"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Type      string    `json:"type" example:"Bearer"`
	ExpiresIn int       `json:"expires_in" example:"86400"`
	ExpiresAt time.Time `json:"expires_at" example:"2024-05-01T12:00:00Z"`
}

// Login handles POST /api/v1/auth/login
// @Summary      Login and get JWT token
// @Description  Authenticates the device user and returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Login credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  errors.StandardError
// @Failure      401      {object}  errors.StandardError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid login request", zap.Error(err))
		c.Error(errors.NewValidationError("invalid request", "username or password"))
		c.Abort()
		return
	}

	if !h.validateCredentials(req.Username, req.Password) {
		h.logger.Warn("Invalid credentials", zap.String("username", req.Username))
		c.Error(errors.NewUnauthorized("invalid credentials", "username or password incorrect"))
		c.Abort()
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateToken(req.Username)
	if err != nil {
		c.Error(errors.NewInternalError("failed to generate token", err))
		c.Abort()
		return
	}

	h.logger.Info("User logged in successfully",
		zap.String("username", req.Username),
		zap.Time("expires_at", expiresAt),
	)

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		Type:      "Bearer",
		ExpiresIn: int(h.jwtManager.TTL().Seconds()),
		ExpiresAt: expiresAt,
	})
}

func (h *AuthHandler) validateCredentials(username, password string) bool {
	if len(h.passwordHash) == 0 || username != h.username {
		return false
	}
	return bcrypt.CompareHashAndPassword(h.passwordHash, []byte(password)) == nil
}
