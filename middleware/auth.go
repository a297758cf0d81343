package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	clientRepo "wellnest/database/repository/client"
	providerRepo "wellnest/database/repository/provider"
	"wellnest/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/go-redis/redis/v8"
)

// Auth cache keys are scoped per role: a validated client token must never
// satisfy the provider middleware's cache check, and vice versa.
const (
	providerAuthCachePrefix = "auth:provider:"
	clientAuthCachePrefix   = "auth:client:"
	authCacheTTL            = 15 * time.Minute
)

// JWTAuthProviderMiddleware validates the JWT token for providers with Redis caching.
func JWTAuthProviderMiddleware(providers providerRepo.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := context.Background()

		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		providerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || providerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := providerAuthCachePrefix + computedHash

		// Check the authorization cache.
		authCache := utils.GetAuthCacheClient()
		if cached, err := authCache.Get(ctx, cacheKey).Result(); err == nil && cached == "1" {
			// Refresh TTL (sliding expiration) and proceed.
			if err := authCache.Expire(ctx, cacheKey, authCacheTTL).Err(); err != nil {
				logger.Error("Failed to refresh auth cache TTL", zap.Error(err))
			}
			c.Set("providerID", providerID)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			logger.Error("Error checking auth cache", zap.Error(err))
		}

		// Cache miss: query the provider repository.
		proj := bson.M{"id": 1, "token_hash": 1}
		prov, err := providers.GetByIDWithProjection(providerID, proj)
		if err != nil || prov == nil {
			logger.Error("Provider not found when validating token", zap.String("providerID", providerID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Provider not found"})
			return
		}

		if computedHash != prov.TokenHash {
			logger.Error("Token hash mismatch", zap.String("providerID", providerID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		// Successful validation: cache the token hash.
		if err := authCache.Set(ctx, cacheKey, "1", authCacheTTL).Err(); err != nil {
			logger.Error("Failed to set auth cache", zap.Error(err))
		}

		c.Set("providerID", providerID)
		c.Next()
	}
}

// JWTAuthClientMiddleware validates the JWT token for client accounts.
func JWTAuthClientMiddleware(clients clientRepo.ClientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := context.Background()

		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		clientID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || clientID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := clientAuthCachePrefix + computedHash

		authCache := utils.GetAuthCacheClient()
		if cached, err := authCache.Get(ctx, cacheKey).Result(); err == nil && cached == "1" {
			if err := authCache.Expire(ctx, cacheKey, authCacheTTL).Err(); err != nil {
				logger.Error("Failed to refresh auth cache TTL", zap.Error(err))
			}
			c.Set("clientID", clientID)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			logger.Error("Error checking auth cache", zap.Error(err))
		}

		proj := bson.M{"id": 1, "token_hash": 1}
		acct, err := clients.GetByIDWithProjection(clientID, proj)
		if err != nil || acct == nil {
			logger.Error("Client not found when validating token", zap.String("clientID", clientID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Client not found"})
			return
		}

		if computedHash != acct.TokenHash {
			logger.Error("Token hash mismatch", zap.String("clientID", clientID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		if err := authCache.Set(ctx, cacheKey, "1", authCacheTTL).Err(); err != nil {
			logger.Error("Failed to set auth cache", zap.Error(err))
		}

		c.Set("clientID", clientID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}
