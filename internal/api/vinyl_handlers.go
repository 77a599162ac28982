package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinyl-library/vinyl-library-api/internal/models"
)

// ShuffleQuery binds the ?count= parameter of the shuffle route.
type ShuffleQuery struct {
	Count *int `form:"count" binding:"required,gte=0"`
}

// ListVinylsHandler returns every vinyl with its artist name.
func ListVinylsHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := deps.requestContext(c)
		defer cancel()

		vinyls, err := deps.VinylService.ListVinyls(ctx)
		if err != nil {
			respondError(c, deps.Log, err)
			return
		}
		c.JSON(http.StatusOK, vinyls)
	}
}

// CreateVinylHandler creates a vinyl from {name, artist_id, artist_name, cover_file_name}.
// A vinyl with the same name is returned unchanged with 200 instead of 201.
func CreateVinylHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.VinylInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body", err)
			return
		}

		ctx, cancel := deps.requestContext(c)
		defer cancel()

		vinyl, created, err := deps.VinylService.CreateVinyl(ctx, req)
		if err != nil {
			respondError(c, deps.Log, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, vinyl)
	}
}

// UpdateVinylHandler replaces name, artist and cover of the vinyl given by ?id=.
func UpdateVinylHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q IDQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			badRequest(c, "Invalid query", err)
			return
		}
		var req models.VinylInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body", err)
			return
		}

		ctx, cancel := deps.requestContext(c)
		defer cancel()

		vinyl, err := deps.VinylService.UpdateVinyl(ctx, q.ID, req)
		if err != nil {
			respondError(c, deps.Log, err)
			return
		}
		c.JSON(http.StatusOK, vinyl)
	}
}

// DeleteVinylHandler deletes the vinyl given by ?id=. Unknown ids succeed too.
func DeleteVinylHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q IDQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			badRequest(c, "Invalid query", err)
			return
		}

		ctx, cancel := deps.requestContext(c)
		defer cancel()

		if err := deps.VinylService.DeleteVinyl(ctx, q.ID); err != nil {
			respondError(c, deps.Log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ShuffleVinylsHandler returns up to ?count= distinct vinyls in random order.
func ShuffleVinylsHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q ShuffleQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			badRequest(c, "Invalid query", err)
			return
		}

		ctx, cancel := deps.requestContext(c)
		defer cancel()

		vinyls, err := deps.VinylService.ShuffleVinyls(ctx, *q.Count)
		if err != nil {
			respondError(c, deps.Log, err)
			return
		}
		c.JSON(http.StatusOK, vinyls)
	}
}
