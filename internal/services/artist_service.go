// Package services contains the business logic layer for the vinyl library application
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	customerrors "github.com/vinyl-library/vinyl-library-api/internal/errors"
	"github.com/vinyl-library/vinyl-library-api/internal/models"
	"github.com/vinyl-library/vinyl-library-api/internal/repository"
)

// ArtistService provides business logic methods for managing artists.
// It acts as an intermediary between the HTTP handlers and the data repositories.
type ArtistService struct {
	artistRepo repository.ArtistRepository
	vinylRepo  repository.VinylRepository
}

// NewArtistService creates and returns a new instance of ArtistService.
func NewArtistService(artistRepo repository.ArtistRepository, vinylRepo repository.VinylRepository) *ArtistService {
	return &ArtistService{
		artistRepo: artistRepo,
		vinylRepo:  vinylRepo,
	}
}

// MaxNameLength matches the size of the name columns.
const MaxNameLength = 255

// checkName rejects blank names and names longer than MaxNameLength characters.
func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: must not be empty", customerrors.ErrInvalidName)
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return fmt.Errorf("%w: %d characters, at most %d allowed", customerrors.ErrInvalidName, n, MaxNameLength)
	}
	return nil
}

// SanitizeName strips double quotes and surrounding whitespace from an artist name.
func SanitizeName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, `"`, ""))
}

// ListArtists returns every artist ordered by id.
func (s *ArtistService) ListArtists(ctx context.Context) ([]models.Artist, error) {
	return s.artistRepo.ListArtists(ctx)
}

// CreateArtist creates an artist, or returns the existing one with the same name.
// Returns:
//   - *models.Artist: the created or existing artist
//   - bool: true when a new row was inserted
//   - error: ErrInvalidName for an empty or over-long name, or storage errors
func (s *ArtistService) CreateArtist(ctx context.Context, name string) (*models.Artist, bool, error) {
	name = SanitizeName(name)
	if err := checkName(name); err != nil {
		return nil, false, err
	}

	existing, err := s.artistRepo.FindArtistByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, customerrors.ErrArtistNotFound) {
		return nil, false, err
	}

	artist := &models.Artist{Name: name}
	if err := s.artistRepo.CreateArtist(ctx, artist); err != nil {
		return nil, false, err
	}
	return artist, true, nil
}

// UpdateArtist renames an artist. No uniqueness check is made against other names.
func (s *ArtistService) UpdateArtist(ctx context.Context, id uint, name string) (*models.Artist, error) {
	name = SanitizeName(name)
	if err := checkName(name); err != nil {
		return nil, err
	}

	if _, err := s.artistRepo.GetArtistByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.artistRepo.UpdateArtistName(ctx, id, name); err != nil {
		return nil, err
	}
	return &models.Artist{ID: id, Name: name}, nil
}

// DeleteArtist removes an artist. While vinyls still reference it the deletion
// is refused with ErrArtistHasVinyls unless cascade is set, in which case the
// vinyls are removed together with the artist.
func (s *ArtistService) DeleteArtist(ctx context.Context, id uint, cascade bool) error {
	if _, err := s.artistRepo.GetArtistByID(ctx, id); err != nil {
		return err
	}
	return s.artistRepo.DeleteArtist(ctx, id, cascade)
}

// ListVinylsForArtist returns the artist's vinyls. An unknown id yields an empty list.
func (s *ArtistService) ListVinylsForArtist(ctx context.Context, id uint) ([]models.Vinyl, error) {
	return s.vinylRepo.ListVinylsByArtistID(ctx, id)
}
