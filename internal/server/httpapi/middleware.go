package httpapi

import (
	"net/http"
	"time"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/server/auth"
	"github.com/gin-gonic/gin"
)

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// requireRole gates a route group on a verified access token carrying the
// given role.
func (s *Server) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(common.AccessTokenHeaderName)
		if tokenString == "" {
			s.reject(c, http.StatusUnauthorized, "Missing token")
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(tokenString, s.jwtSecret)
		if err != nil {
			s.reject(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}
		if claims.Role != role {
			s.reject(c, http.StatusForbidden, "Forbidden")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}
