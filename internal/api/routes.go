package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinyl-library/vinyl-library-api/internal/database"
	"github.com/vinyl-library/vinyl-library-api/internal/images"
	"github.com/vinyl-library/vinyl-library-api/internal/logger"
	"github.com/vinyl-library/vinyl-library-api/internal/services"
)

// Dependencies groups everything the handlers need.
type Dependencies struct {
	DB             *gorm.DB
	ArtistService  *services.ArtistService
	VinylService   *services.VinylService
	Images         *images.Store
	Log            *zap.Logger
	RequestTimeout time.Duration // bound applied to every storage and filesystem call
}

// NewRouter builds a gin engine with recovery, request logging and every route.
func NewRouter(deps Dependencies, basePath string) *gin.Engine {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	router := gin.New()
	router.Use(logger.GinMiddleware(deps.Log), gin.Recovery())
	SetupRoutes(router, deps, basePath)
	return router
}

// SetupRoutes configures all Gin API routes and injects necessary dependencies.
// Parameters:
//   - router: Gin engine instance to configure routes on
//   - deps: services, image store and logger used by the handlers
//   - basePath: prefix for the catalog routes, e.g. "/vinyl_library"
func SetupRoutes(router *gin.Engine, deps Dependencies, basePath string) {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 5 * time.Second
	}

	router.GET("/health", HealthCheckHandler(deps))

	api := router.Group(basePath)
	{
		api.GET("/artists", ListArtistsHandler(deps))
		api.POST("/artists", CreateArtistHandler(deps))
		api.GET("/artists/list_vinyls", ListVinylsForArtistHandler(deps))
		api.POST("/artists/delete", DeleteArtistHandler(deps))
		api.POST("/artists/update", UpdateArtistHandler(deps))

		api.GET("/vinyls", ListVinylsHandler(deps))
		api.POST("/vinyls", CreateVinylHandler(deps))
		api.POST("/vinyls/update", UpdateVinylHandler(deps))
		api.POST("/vinyls/delete", DeleteVinylHandler(deps))
		api.GET("/vinyls/shuffle", ShuffleVinylsHandler(deps))

		api.GET("/images", ListImagesHandler(deps))
		api.GET("/images/:name", GetImageHandler(deps))
		api.POST("/images/upload/:filename", UploadImageHandler(deps))

		api.GET("/stats", StatsHandler(deps))
	}
}

// requestContext bounds the request's context with the configured timeout.
func (d Dependencies) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d.RequestTimeout)
}

// HealthCheckHandler reports whether the database answers.
func HealthCheckHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.DB == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		ctx, cancel := deps.requestContext(c)
		defer cancel()

		if err := database.Ping(ctx, deps.DB); err != nil {
			deps.Log.Error("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// StatsHandler returns catalog counts and the number of stored images.
func StatsHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := deps.requestContext(c)
		defer cancel()

		stats, err := deps.VinylService.Stats(ctx)
		if err != nil {
			respondError(c, deps.Log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"artists": stats.Artists,
			"vinyls":  stats.Vinyls,
			"images":  len(deps.Images.List(ctx)),
		})
	}
}
