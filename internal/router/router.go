package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jyasskin/920-checkin/internal/config"
	"github.com/jyasskin/920-checkin/internal/handler"
	"github.com/jyasskin/920-checkin/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Schedule   *handler.ScheduleHandler
	SampleData *handler.SampleDataHandler
	Roster     *handler.RosterHandler
	Signup     *handler.SignupHandler
}

// SetupRouter configures all Gin route groups.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Legacy client surface ─────────────────────────────────────────
	// Paths the check-in frontend has always used; responses here are raw
	// documents and HTML pages, not the API envelope.
	router.GET("/init_data", handlers.Schedule.GetInitData)
	router.GET("/install_sample_data", handlers.SampleData.ConfirmInstall)
	router.POST("/install_sample_data", handlers.SampleData.Install)

	// ─── Admin API ─────────────────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.POST("/students", handlers.Roster.CreateStudent)
		api.POST("/class_types", handlers.Roster.CreateClassType)
		api.POST("/months/:month/signups/month", handlers.Signup.CreateMonthSignup)
		api.POST("/months/:month/signups/day", handlers.Signup.CreateDaySignup)
	}

	return router
}
