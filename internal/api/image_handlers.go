package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	customerrors "github.com/vinyl-library/vinyl-library-api/internal/errors"
	"github.com/vinyl-library/vinyl-library-api/internal/images"
)

// ListImagesHandler returns the names of the stored images.
// An unreadable directory yields an empty list.
func ListImagesHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := deps.requestContext(c)
		defer cancel()

		c.JSON(http.StatusOK, deps.Images.List(ctx))
	}
}

// GetImageHandler serves an image's bytes with its detected content type.
func GetImageHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := deps.requestContext(c)
		defer cancel()

		img, err := deps.Images.Read(ctx, c.Param("name"))
		if err != nil {
			if errors.Is(err, customerrors.ErrImageNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
				return
			}
			respondError(c, deps.Log, err)
			return
		}
		c.Data(http.StatusOK, img.ContentType, img.Data)
	}
}

// UploadImageHandler stores the raw request body under the given filename,
// replacing any existing file. Invalid names get 400, bodies above the configured cap 413.
func UploadImageHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("filename")
		if err := images.ValidateName(name); err != nil {
			respondError(c, deps.Log, err)
			return
		}

		if c.Request.ContentLength > deps.Images.MaxSize() {
			respondError(c, deps.Log, customerrors.ErrImageTooLarge{Name: name, Limit: deps.Images.MaxSize()})
			return
		}

		ctx, cancel := deps.requestContext(c)
		defer cancel()

		size, err := deps.Images.Save(ctx, name, c.Request.Body)
		if err != nil {
			respondError(c, deps.Log, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"name": name, "size": size})
	}
}
