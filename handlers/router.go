package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/milassets/backend/auth"
	"github.com/milassets/backend/middleware"
	"github.com/milassets/backend/models"
	"github.com/milassets/backend/natsserver"
	"github.com/milassets/backend/repository"
	"github.com/milassets/backend/services"
)

// RouterConfig carries the wiring for NewRouter. Hub and Bus are optional;
// without them asset mutations simply don't emit events.
type RouterConfig struct {
	DB     *gorm.DB
	Tokens *auth.TokenService
	Hub    *services.ActivityHub
	Bus    *natsserver.EmbeddedNATS
	Log    *zap.Logger
}

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(cfg RouterConfig) *gin.Engine {
	users := repository.NewUsers(cfg.DB)
	assets := repository.NewAssets(cfg.DB)

	authHandler := NewAuth(users, cfg.Tokens, cfg.Log)
	assetHandler := NewAssets(assets, cfg.Hub, cfg.Log)
	baseHandler := NewBases(users, cfg.Log)
	activityHandler := NewActivity(cfg.Hub, cfg.Bus, cfg.Tokens, users, cfg.Log)

	router := gin.New()
	router.Use(middleware.RequestLogger(cfg.Log), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "x-auth-token"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// WebSocket route for the live activity stream (outside /api group)
	router.GET("/ws/activity", activityHandler.HandleWebSocket)

	requireAuth := middleware.RequireAuth(cfg.Tokens, users)

	api := router.Group("/api")
	{
		api.GET("/activity/stats", activityHandler.Stats)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/user", requireAuth, authHandler.CurrentUser)
			authGroup.GET("/users", requireAuth, middleware.RequireRole(models.RoleAdmin), authHandler.ListUsers)
			authGroup.DELETE("/users/:id", requireAuth, middleware.RequireRole(models.RoleAdmin), authHandler.DeleteUser)
		}

		assetGroup := api.Group("/assets", requireAuth)
		{
			assetGroup.GET("", assetHandler.List)
			assetGroup.GET("/:id", assetHandler.Get)
			assetGroup.POST("", middleware.RequireRole(models.RoleAdmin, models.RoleCommander), assetHandler.Create)
			assetGroup.PUT("/:id", middleware.RequireRole(models.RoleAdmin, models.RoleCommander), assetHandler.Update)
			assetGroup.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), assetHandler.Delete)
		}

		api.GET("/bases", requireAuth, baseHandler.List)
	}

	return router
}
