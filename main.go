// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/adiyatma/idp-dashboard/config"
	"github.com/adiyatma/idp-dashboard/endpoint"
	"github.com/adiyatma/idp-dashboard/eventlog"
	"github.com/adiyatma/idp-dashboard/fusionauth"
	"github.com/adiyatma/idp-dashboard/middleware"
	"github.com/adiyatma/idp-dashboard/model"
	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
)

func newEventStore(cfg *config.Config) (eventlog.Store, error) {
	if cfg.EventStore == "mysql" {
		db, err := config.ConnectMySQL()
		if err != nil {
			return nil, fmt.Errorf("connect MySQL event store: %w", err)
		}
		if err := db.AutoMigrate(&model.CategoryLog{}); err != nil {
			return nil, fmt.Errorf("migrate category logs: %w", err)
		}
		return eventlog.NewGormStore(db), nil
	}
	return eventlog.NewFileStore(cfg.EventDataDir), nil
}

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	// GeoIP enrichment for stored events is optional; without a database
	// events simply keep whatever location the payload carried.
	if err := util.EnsureGeoIP(context.Background()); err != nil {
		log.Printf("GeoIP unavailable: %v", err)
	}
	defer util.CloseGeoIP()

	store, err := newEventStore(cfg)
	if err != nil {
		log.Fatalf("Error creating event store: %v", err)
	}
	journal := eventlog.NewJournal(store, cfg.EventCap)
	dispatcher := eventlog.NewDispatcher(journal)

	faClient := fusionauth.NewClient(cfg.FusionAuthURL, cfg.FusionAuthAPIKey)
	if !faClient.Configured() {
		log.Printf("FusionAuth base URL or API key not set; proxy routes will report a configuration error")
	}

	// Redis backs the webhook rate limiter; the limiter fails open without it.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable: %v", err)
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.EndpointCallLogger())
	router.Use(middleware.EventLogMiddleware(dispatcher))
	router.Use(middleware.FusionAuthMiddleware(faClient))

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	api := router.Group("/api")
	api.POST("/webhooks/fusionauth", middleware.RateLimiter(middleware.RateLimitConfig{}), endpoint.ReceiveWebhook)
	api.GET("/webhooks/fusionauth", endpoint.ListEvents)

	api.GET("/me", endpoint.Me)
	api.GET("/tenants", endpoint.ListTenants)
	api.GET("/applications", endpoint.ListApplications)
	api.GET("/users/count", endpoint.CountUsers)
	api.GET("/mau", endpoint.MonthlyActiveUsers)
	api.GET("/system", endpoint.SystemOverview)
	api.GET("/login-records", endpoint.ListLoginRecords)
	api.GET("/logs/audit", endpoint.ListAuditLogs)
	api.GET("/logs/webhooks", endpoint.ListWebhookLogs)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
