package middleware

import (
	"net/http"

	"github.com/adiyatma/idp-dashboard/eventlog"
	"github.com/adiyatma/idp-dashboard/fusionauth"
	"github.com/gin-gonic/gin"
)

const (
	dispatcherContextKey = "eventlog_dispatcher"
	journalContextKey    = "eventlog_journal"
	fusionAuthContextKey = "fusionauth_client"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Content-Type", "application/json")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// EventLogMiddleware injects the ingestion dispatcher and its journal into
// the request context so webhook and query handlers can reach them.
func EventLogMiddleware(dispatcher *eventlog.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dispatcherContextKey, dispatcher)
		c.Set(journalContextKey, dispatcher.Journal())
		c.Next()
	}
}

// GetDispatcher returns the dispatcher injected by EventLogMiddleware, or nil.
func GetDispatcher(c *gin.Context) *eventlog.Dispatcher {
	if v, ok := c.Get(dispatcherContextKey); ok {
		if d, ok := v.(*eventlog.Dispatcher); ok {
			return d
		}
	}
	return nil
}

// GetJournal returns the journal injected by EventLogMiddleware, or nil.
func GetJournal(c *gin.Context) *eventlog.Journal {
	if v, ok := c.Get(journalContextKey); ok {
		if j, ok := v.(*eventlog.Journal); ok {
			return j
		}
	}
	return nil
}

// FusionAuthMiddleware injects the upstream IAM client into the request context.
func FusionAuthMiddleware(client *fusionauth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(fusionAuthContextKey, client)
		c.Next()
	}
}

// GetFusionAuth returns the client injected by FusionAuthMiddleware, or nil.
func GetFusionAuth(c *gin.Context) *fusionauth.Client {
	if v, ok := c.Get(fusionAuthContextKey); ok {
		if client, ok := v.(*fusionauth.Client); ok {
			return client
		}
	}
	return nil
}
