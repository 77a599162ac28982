package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vinyl-library/vinyl-library-api/internal/database"
	customerrors "github.com/vinyl-library/vinyl-library-api/internal/errors"
	"github.com/vinyl-library/vinyl-library-api/internal/models"
)

// vinylColumns selects a vinyl row with the artist name resolved through the join.
const vinylColumns = "vinyls.id, vinyls.name, vinyls.artist_id, COALESCE(artists.name, '') AS artist_name, vinyls.added_date, vinyls.cover_file_name"

// VinylRepository est une interface qui définit les méthodes d'accès aux données des vinyles.
// Every read returns ArtistName joined from the artists table.
type VinylRepository interface {
	ListVinyls(ctx context.Context) ([]models.Vinyl, error)
	ListVinylsByArtistID(ctx context.Context, artistID uint) ([]models.Vinyl, error)
	GetVinylByID(ctx context.Context, id uint) (*models.Vinyl, error)
	FindVinylByName(ctx context.Context, name string) (*models.Vinyl, error)
	CreateVinyl(ctx context.Context, vinyl *models.Vinyl) error
	UpdateVinyl(ctx context.Context, id uint, input models.VinylInput) error
	DeleteVinyl(ctx context.Context, id uint) error
	RandomVinyls(ctx context.Context, count int) ([]models.Vinyl, error)
	CountVinyls(ctx context.Context) (int, error)
}

// GormVinylRepository est l'implémentation de VinylRepository utilisant GORM.
type GormVinylRepository struct {
	db *gorm.DB
}

// NewVinylRepository crée et retourne une nouvelle instance de GormVinylRepository.
func NewVinylRepository(db *gorm.DB) *GormVinylRepository {
	return &GormVinylRepository{db: db}
}

func (r *GormVinylRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Vinyl{}).
		Select(vinylColumns).
		Joins("LEFT JOIN artists ON artists.id = vinyls.artist_id")
}

// ListVinyls récupère tous les vinyles, triés par id.
func (r *GormVinylRepository) ListVinyls(ctx context.Context) ([]models.Vinyl, error) {
	vinyls := []models.Vinyl{}
	if err := r.joined(ctx).Order("vinyls.id").Find(&vinyls).Error; err != nil {
		return nil, storageErr("failed to retrieve vinyls", err)
	}
	return vinyls, nil
}

// ListVinylsByArtistID récupère les vinyles d'un artiste. An unknown artist yields an empty list.
func (r *GormVinylRepository) ListVinylsByArtistID(ctx context.Context, artistID uint) ([]models.Vinyl, error) {
	vinyls := []models.Vinyl{}
	if err := r.joined(ctx).Where("vinyls.artist_id = ?", artistID).Order("vinyls.id").Find(&vinyls).Error; err != nil {
		return nil, storageErr("failed to retrieve vinyls for artist", err)
	}
	return vinyls, nil
}

// GetVinylByID returns ErrVinylNotFound when no row matches.
func (r *GormVinylRepository) GetVinylByID(ctx context.Context, id uint) (*models.Vinyl, error) {
	return r.first(ctx, "vinyls.id = ?", id)
}

// FindVinylByName returns ErrVinylNotFound when no vinyl has exactly this name.
func (r *GormVinylRepository) FindVinylByName(ctx context.Context, name string) (*models.Vinyl, error) {
	return r.first(ctx, "vinyls.name = ?", name)
}

func (r *GormVinylRepository) first(ctx context.Context, query string, arg any) (*models.Vinyl, error) {
	var vinyl models.Vinyl
	if err := r.joined(ctx).Where(query, arg).Order("vinyls.id").Take(&vinyl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrVinylNotFound
		}
		return nil, storageErr("failed to get vinyl", err)
	}
	return &vinyl, nil
}

// CreateVinyl insère un nouveau vinyle. ArtistName is read-only and never written.
func (r *GormVinylRepository) CreateVinyl(ctx context.Context, vinyl *models.Vinyl) error {
	if err := r.db.WithContext(ctx).Create(vinyl).Error; err != nil {
		return storageErr("failed to create vinyl", err)
	}
	return nil
}

// UpdateVinyl met à jour le nom, l'artiste et la pochette. added_date is never touched.
func (r *GormVinylRepository) UpdateVinyl(ctx context.Context, id uint, input models.VinylInput) error {
	err := r.db.WithContext(ctx).
		Model(&models.Vinyl{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":            input.Name,
			"artist_id":       input.ArtistID,
			"cover_file_name": input.CoverFileName,
		}).Error
	if err != nil {
		return storageErr("failed to update vinyl", err)
	}
	return nil
}

// DeleteVinyl supprime un vinyle. Deleting an unknown id is not an error.
func (r *GormVinylRepository) DeleteVinyl(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Vinyl{}).Error; err != nil {
		return storageErr("failed to delete vinyl", err)
	}
	return nil
}

// RandomVinyls returns at most count distinct vinyls in the dialect's random order.
func (r *GormVinylRepository) RandomVinyls(ctx context.Context, count int) ([]models.Vinyl, error) {
	vinyls := []models.Vinyl{}
	if count <= 0 {
		return vinyls, nil
	}
	if err := r.joined(ctx).Order(database.RandomFunc(r.db)).Limit(count).Find(&vinyls).Error; err != nil {
		return nil, storageErr("failed to retrieve random vinyls", err)
	}
	return vinyls, nil
}

// CountVinyls compte le nombre total de vinyles.
func (r *GormVinylRepository) CountVinyls(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Vinyl{}).Count(&count).Error; err != nil {
		return 0, storageErr("failed to count vinyls", err)
	}
	return int(count), nil
}
