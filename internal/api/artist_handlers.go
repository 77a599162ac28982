package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxNameBytes caps the body of the artist create and rename requests.
const maxNameBytes = 4 << 10

// IDQuery binds the ?id= parameter shared by update, delete and list routes.
type IDQuery struct {
	ID uint `form:"id" binding:"required,min=1"`
}

// DeleteArtistQuery adds the explicit cascade flag to the artist delete route.
type DeleteArtistQuery struct {
	IDQuery
	Cascade bool `form:"cascade"`
}

// errNotAName is returned for JSON bodies that are neither a string nor a scalar.
var errNotAName = errors.New("body must be a JSON string or plain text")

// readName reads an artist name sent either as a JSON string ("Name") or as plain text.
// Bodies above maxNameBytes and JSON objects, arrays or null are rejected.
func readName(c *gin.Context) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxNameBytes+1))
	if err != nil {
		return "", err
	}
	if len(raw) > maxNameBytes {
		return "", fmt.Errorf("body exceeds %d bytes", maxNameBytes)
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return strings.TrimSpace(string(raw)), nil
	}
	switch v := value.(type) {
	case string:
		return v, nil
	case float64, bool:
		// "1999" or "true" sent as plain text
		return strings.TrimSpace(string(raw)), nil
	default:
		return "", errNotAName
	}
}

// ListArtistsHandler returns every artist.
func ListArtistsHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := deps.requestContext(c)
		defer cancel()

		artists, err := deps.ArtistService.ListArtists(ctx)
		if err != nil {
			respondError(c, deps.Log, err)
			return
		}
		c.JSON(http.StatusOK, artists)
	}
}

// CreateArtistHandler creates an artist, or returns the one that already has this name.
// It answers 201 for a new artist and 200 for an existing one.
func CreateArtistHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, err := readName(c)
		if err != nil {
			badRequest(c, "Invalid request body", err)
			return
		}

		ctx, cancel := deps.requestContext(c)
		defer cancel()

		artist, created, err := deps.ArtistService.CreateArtist(ctx, name)
		if err != nil {
			respondError(c, deps.Log, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, artist)
	}
}

// UpdateArtistHandler renames the artist given by ?id= with the request body.
func UpdateArtistHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q IDQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			badRequest(c, "Invalid query", err)
			return
		}
		name, err := readName(c)
		if err != nil {
			badRequest(c, "Invalid request body", err)
			return
		}

		ctx, cancel := deps.requestContext(c)
		defer cancel()

		artist, err := deps.ArtistService.UpdateArtist(ctx, q.ID, name)
		if err != nil {
			respondError(c, deps.Log, err)
			return
		}
		c.JSON(http.StatusOK, artist)
	}
}

// DeleteArtistHandler deletes the artist given by ?id=.
// It answers 409 while vinyls reference the artist, unless ?cascade=true.
func DeleteArtistHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q DeleteArtistQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			badRequest(c, "Invalid query", err)
			return
		}

		ctx, cancel := deps.requestContext(c)
		defer cancel()

		if err := deps.ArtistService.DeleteArtist(ctx, q.ID, q.Cascade); err != nil {
			respondError(c, deps.Log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ListVinylsForArtistHandler returns the vinyls of the artist given by ?id=.
func ListVinylsForArtistHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q IDQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			badRequest(c, "Invalid query", err)
			return
		}

		ctx, cancel := deps.requestContext(c)
		defer cancel()

		vinyls, err := deps.ArtistService.ListVinylsForArtist(ctx, q.ID)
		if err != nil {
			respondError(c, deps.Log, err)
			return
		}
		c.JSON(http.StatusOK, vinyls)
	}
}
