package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dauletq/activity-timeline-backend/internal/model/response/wrapper"
	service "github.com/dauletq/activity-timeline-backend/internal/service/agent"
	redisService "github.com/dauletq/activity-timeline-backend/internal/service/redis"
	"github.com/dauletq/activity-timeline-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

func AuthenticationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "Missing authentication token", Success: false})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			fmt.Println("Error validating token", err)
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "Invalid authentication token", Success: false})
			c.Abort()
			return
		}

		c.Set("user_id", claims["user_id"])
		c.Next()
	}
}

// APIKeyMiddleware authenticates collector agents by the X-API-Key header.
func APIKeyMiddleware(agentService service.AgentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")

		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
				Message: "X-API-Key header is required",
				Success: false,
			})
			c.Abort()
			return
		}

		agent, err := agentService.ValidateAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
				Message: "Invalid or inactive API key",
				Success: false,
			})
			c.Abort()
			return
		}

		c.Set("agent", agent)
		c.Set("agent_id", agent.ID.String())
		c.Set("agent_hostname", agent.Hostname)

		c.Next()
	}
}

// RateLimitMiddleware caps ingest requests per agent. Skipped entirely
// when redis is not configured.
func RateLimitMiddleware(cache redisService.ServiceInterface, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil {
			c.Next()
			return
		}

		agentID, exists := c.Get("agent_id")
		if !exists {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:ingest:%s", agentID)
		allowed, err := cache.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// Rate limiting is advisory; a cache failure must not block ingest.
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, wrapper.ErrorWrapper{
				Message: "Rate limit exceeded",
				Success: false,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
