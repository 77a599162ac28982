package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vinyl-library/vinyl-library-api/internal/models"
)

// MockArtistRepo is a mock implementation of repository.ArtistRepository
type MockArtistRepo struct {
	mock.Mock
}

func (m *MockArtistRepo) ListArtists(ctx context.Context) ([]models.Artist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Artist), args.Error(1)
}

func (m *MockArtistRepo) GetArtistByID(ctx context.Context, id uint) (*models.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockArtistRepo) FindArtistByName(ctx context.Context, name string) (*models.Artist, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockArtistRepo) CreateArtist(ctx context.Context, artist *models.Artist) error {
	args := m.Called(ctx, artist)
	return args.Error(0)
}

func (m *MockArtistRepo) UpdateArtistName(ctx context.Context, id uint, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockArtistRepo) DeleteArtist(ctx context.Context, id uint, cascade bool) error {
	args := m.Called(ctx, id, cascade)
	return args.Error(0)
}

func (m *MockArtistRepo) CountArtists(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockVinylRepo is a mock implementation of repository.VinylRepository
type MockVinylRepo struct {
	mock.Mock
}

func (m *MockVinylRepo) ListVinyls(ctx context.Context) ([]models.Vinyl, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vinyl), args.Error(1)
}

func (m *MockVinylRepo) ListVinylsByArtistID(ctx context.Context, artistID uint) ([]models.Vinyl, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vinyl), args.Error(1)
}

func (m *MockVinylRepo) GetVinylByID(ctx context.Context, id uint) (*models.Vinyl, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vinyl), args.Error(1)
}

func (m *MockVinylRepo) FindVinylByName(ctx context.Context, name string) (*models.Vinyl, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vinyl), args.Error(1)
}

func (m *MockVinylRepo) CreateVinyl(ctx context.Context, vinyl *models.Vinyl) error {
	args := m.Called(ctx, vinyl)
	return args.Error(0)
}

func (m *MockVinylRepo) UpdateVinyl(ctx context.Context, id uint, input models.VinylInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockVinylRepo) DeleteVinyl(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVinylRepo) RandomVinyls(ctx context.Context, count int) ([]models.Vinyl, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vinyl), args.Error(1)
}

func (m *MockVinylRepo) CountVinyls(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
