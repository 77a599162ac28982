package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	customerrors "github.com/vinyl-library/vinyl-library-api/internal/errors"
	"github.com/vinyl-library/vinyl-library-api/internal/models"
)

// ArtistRepository est une interface qui définit les méthodes d'accès aux données des artistes
type ArtistRepository interface {
	ListArtists(ctx context.Context) ([]models.Artist, error)
	GetArtistByID(ctx context.Context, id uint) (*models.Artist, error)
	FindArtistByName(ctx context.Context, name string) (*models.Artist, error)
	CreateArtist(ctx context.Context, artist *models.Artist) error
	UpdateArtistName(ctx context.Context, id uint, name string) error
	DeleteArtist(ctx context.Context, id uint, cascade bool) error
	CountArtists(ctx context.Context) (int, error)
}

// GormArtistRepository est l'implémentation de ArtistRepository utilisant GORM.
type GormArtistRepository struct {
	db *gorm.DB
}

// NewArtistRepository crée et retourne une nouvelle instance de GormArtistRepository.
func NewArtistRepository(db *gorm.DB) *GormArtistRepository {
	return &GormArtistRepository{db: db}
}

// ListArtists récupère tous les artistes, triés par id.
func (r *GormArtistRepository) ListArtists(ctx context.Context) ([]models.Artist, error) {
	artists := []models.Artist{}
	if err := r.db.WithContext(ctx).Order("id").Find(&artists).Error; err != nil {
		return nil, storageErr("failed to retrieve artists", err)
	}
	return artists, nil
}

// GetArtistByID returns ErrArtistNotFound when no row matches.
func (r *GormArtistRepository) GetArtistByID(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&artist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrArtistNotFound
		}
		return nil, storageErr("failed to get artist", err)
	}
	return &artist, nil
}

// FindArtistByName returns ErrArtistNotFound when no artist has exactly this name.
func (r *GormArtistRepository) FindArtistByName(ctx context.Context, name string) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&artist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrArtistNotFound
		}
		return nil, storageErr("failed to find artist by name", err)
	}
	return &artist, nil
}

// CreateArtist insère un nouvel artiste; l'id généré est renseigné dans artist.
func (r *GormArtistRepository) CreateArtist(ctx context.Context, artist *models.Artist) error {
	if err := r.db.WithContext(ctx).Create(artist).Error; err != nil {
		return storageErr("failed to create artist", err)
	}
	return nil
}

// UpdateArtistName renomme un artiste existant.
func (r *GormArtistRepository) UpdateArtistName(ctx context.Context, id uint, name string) error {
	res := r.db.WithContext(ctx).Model(&models.Artist{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return storageErr("failed to update artist", res.Error)
	}
	return nil
}

// DeleteArtist supprime un artiste. Without cascade the deletion is refused with
// ErrArtistHasVinyls while vinyls reference the artist; the check and the delete
// share one transaction. With cascade the artist's vinyls are removed too.
func (r *GormArtistRepository) DeleteArtist(ctx context.Context, id uint, cascade bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cascade {
			return deleteArtistRows(tx, id, true)
		}

		var count int64
		if err := tx.Model(&models.Vinyl{}).Where("artist_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %d vinyl(s) reference artist %d", customerrors.ErrArtistHasVinyls, count, id)
		}
		return deleteArtistRows(tx, id, false)
	})
	if errors.Is(err, customerrors.ErrArtistHasVinyls) {
		return err
	}
	if err != nil {
		return storageErr("failed to delete artist", err)
	}
	return nil
}

func deleteArtistRows(tx *gorm.DB, id uint, withVinyls bool) error {
	if withVinyls {
		if err := tx.Where("artist_id = ?", id).Delete(&models.Vinyl{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("id = ?", id).Delete(&models.Artist{}).Error
}

// CountArtists compte le nombre total d'artistes.
func (r *GormArtistRepository) CountArtists(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Artist{}).Count(&count).Error; err != nil {
		return 0, storageErr("failed to count artists", err)
	}
	return int(count), nil
}
