package middleware

import (
	"strings"

	"frigo-service/internal/auth"
	"frigo-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware validates bearer JWT tokens
func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			abortUnauthorized(c, "missing authorization header", "Header: Authorization")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization header format", "Expected: Bearer <token>")
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			if err == auth.ErrExpiredToken {
				abortUnauthorized(c, "token expired", "Token has expired, please login again")
				return
			}
			abortUnauthorized(c, "invalid token", err.Error())
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message, details string) {
	stdErr := errors.NewUnauthorized(message, details)
	c.AbortWithStatusJSON(stdErr.HTTPStatus(), stdErr)
}
