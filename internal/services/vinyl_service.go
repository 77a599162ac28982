package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	customerrors "github.com/vinyl-library/vinyl-library-api/internal/errors"
	"github.com/vinyl-library/vinyl-library-api/internal/models"
	"github.com/vinyl-library/vinyl-library-api/internal/repository"
)

// VinylService provides business logic methods for managing vinyls.
type VinylService struct {
	vinylRepo  repository.VinylRepository
	artistRepo repository.ArtistRepository
	now        func() time.Time
}

// CatalogStats holds the row counts of the catalog.
type CatalogStats struct {
	Artists int `json:"artists"`
	Vinyls  int `json:"vinyls"`
}

// NewVinylService creates and returns a new instance of VinylService.
func NewVinylService(vinylRepo repository.VinylRepository, artistRepo repository.ArtistRepository) *VinylService {
	return &VinylService{
		vinylRepo:  vinylRepo,
		artistRepo: artistRepo,
		now:        time.Now,
	}
}

// ListVinyls returns every vinyl with its artist name, ordered by id.
func (s *VinylService) ListVinyls(ctx context.Context) ([]models.Vinyl, error) {
	return s.vinylRepo.ListVinyls(ctx)
}

// CreateVinyl creates a vinyl, or returns the existing one with the same name.
// The name match takes precedence over every other field of the input.
// Returns:
//   - *models.Vinyl: the created or existing vinyl, artist name resolved from storage
//   - bool: true when a new row was inserted
//   - error: ErrInvalidArtist when artist_id is unknown, or storage errors
func (s *VinylService) CreateVinyl(ctx context.Context, input models.VinylInput) (*models.Vinyl, bool, error) {
	if err := checkName(input.Name); err != nil {
		return nil, false, err
	}

	existing, err := s.vinylRepo.FindVinylByName(ctx, input.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, customerrors.ErrVinylNotFound) {
		return nil, false, err
	}

	if err := s.checkArtist(ctx, input.ArtistID); err != nil {
		return nil, false, err
	}

	vinyl := &models.Vinyl{
		Name:          input.Name,
		ArtistID:      input.ArtistID,
		AddedDate:     s.now().Unix(),
		CoverFileName: input.CoverFileName,
	}
	if err := s.vinylRepo.CreateVinyl(ctx, vinyl); err != nil {
		return nil, false, err
	}

	created, err := s.vinylRepo.GetVinylByID(ctx, vinyl.ID)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// UpdateVinyl changes name, artist and cover of an existing vinyl.
// added_date is preserved and artist_name is re-read from the new artist.
func (s *VinylService) UpdateVinyl(ctx context.Context, id uint, input models.VinylInput) (*models.Vinyl, error) {
	if err := checkName(input.Name); err != nil {
		return nil, err
	}

	if _, err := s.vinylRepo.GetVinylByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkArtist(ctx, input.ArtistID); err != nil {
		return nil, err
	}

	if err := s.vinylRepo.UpdateVinyl(ctx, id, input); err != nil {
		return nil, err
	}
	return s.vinylRepo.GetVinylByID(ctx, id)
}

// DeleteVinyl removes a vinyl. Deleting an unknown id succeeds without effect.
func (s *VinylService) DeleteVinyl(ctx context.Context, id uint) error {
	return s.vinylRepo.DeleteVinyl(ctx, id)
}

// ShuffleVinyls returns up to count distinct vinyls in random order.
// A count larger than the library returns every vinyl once.
func (s *VinylService) ShuffleVinyls(ctx context.Context, count int) ([]models.Vinyl, error) {
	if count < 0 {
		return nil, customerrors.ErrInvalidCount
	}
	return s.vinylRepo.RandomVinyls(ctx, count)
}

// Stats counts the artists and vinyls in the catalog.
func (s *VinylService) Stats(ctx context.Context) (*CatalogStats, error) {
	artists, err := s.artistRepo.CountArtists(ctx)
	if err != nil {
		return nil, err
	}
	vinyls, err := s.vinylRepo.CountVinyls(ctx)
	if err != nil {
		return nil, err
	}
	return &CatalogStats{Artists: artists, Vinyls: vinyls}, nil
}

func (s *VinylService) checkArtist(ctx context.Context, artistID uint) error {
	if _, err := s.artistRepo.GetArtistByID(ctx, artistID); err != nil {
		if errors.Is(err, customerrors.ErrArtistNotFound) {
			return fmt.Errorf("%w: %d is not a valid artist id", customerrors.ErrInvalidArtist, artistID)
		}
		return err
	}
	return nil
}
