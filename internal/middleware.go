package internal

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Guards compose left to right on a route; the first failure aborts the
// chain before the handler runs. None of them touch resource state.

func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}
		cl, err := ParseToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}
		c.Set("email", cl.Email)
		c.Next()
	}
}

// RequireRole checks the identity store, not the token: role changes take
// effect immediately even for tokens issued before the promotion.
func RequireRole(users UserStore, role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.FindByEmail(c.Request.Context(), callerEmail(c))
		if err != nil || u == nil || u.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		c.Next()
	}
}

// RequireSelf stops a valid token holder from reading another identity's
// records through an email-scoped route.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param(param) != callerEmail(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		c.Next()
	}
}

func callerEmail(c *gin.Context) string {
	v, _ := c.Get("email")
	s, _ := v.(string)
	return s
}
