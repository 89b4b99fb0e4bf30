package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daleel-app/daleel/internal/model"
)

const (
	ctxUserID = "userID"
	ctxTier   = "tier"
)

// requireAuth resolves the bearer token to a user and subscription tier.
// Unauthenticated requests never reach the pipeline.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "غير مصرّح — authentification requise",
			})
			return
		}

		entry, found := s.cfg.Server.APIKeys[token]
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "غير مصرّح — clé d'API invalide",
			})
			return
		}

		tier := entry.Tier
		if tier == "" {
			tier = model.TierFree
		}

		c.Set(ctxUserID, entry.UserID)
		c.Set(ctxTier, tier)
		c.Next()
	}
}

func currentUser(c *gin.Context) (string, model.Tier) {
	userID := c.GetString(ctxUserID)
	tier := model.TierFree
	if v, ok := c.Get(ctxTier); ok {
		tier = v.(model.Tier)
	}
	return userID, tier
}
