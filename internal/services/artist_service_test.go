package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customerrors "github.com/vinyl-library/vinyl-library-api/internal/errors"
	"github.com/vinyl-library/vinyl-library-api/internal/models"
	"github.com/vinyl-library/vinyl-library-api/internal/repository"
	"github.com/vinyl-library/vinyl-library-api/internal/testutil"
)

func newArtistServiceWithDB(t *testing.T) *ArtistService {
	t.Helper()
	db := testutil.NewDB(t)
	return NewArtistService(repository.NewArtistRepository(db), repository.NewVinylRepository(db))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "The Beatles", SanitizeName(`"The Beatles"`))
	assert.Equal(t, "Guns N Roses", SanitizeName(`  Guns "N" Roses `))
	assert.Equal(t, "", SanitizeName(`""`))
}

func TestArtistService_CreateArtist_IdempotentByName(t *testing.T) {
	ctx := context.Background()

	names := []string{"The Beatles", "Björk", "AC/DC", "Sigur Rós", "Robert'); DROP TABLE artists;--"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			svc := newArtistServiceWithDB(t)

			first, created, err := svc.CreateArtist(ctx, name)
			require.NoError(t, err)
			assert.True(t, created)
			assert.NotZero(t, first.ID)

			second, created, err := svc.CreateArtist(ctx, name)
			require.NoError(t, err)
			assert.False(t, created)
			assert.Equal(t, first.ID, second.ID)

			artists, err := svc.ListArtists(ctx)
			require.NoError(t, err)
			assert.Len(t, artists, 1)
		})
	}
}

func TestArtistService_CreateArtist_StripsQuotes(t *testing.T) {
	ctx := context.Background()
	svc := newArtistServiceWithDB(t)

	quoted, _, err := svc.CreateArtist(ctx, `"Radiohead"`)
	require.NoError(t, err)
	assert.Equal(t, "Radiohead", quoted.Name)

	plain, created, err := svc.CreateArtist(ctx, "Radiohead")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, quoted.ID, plain.ID)
}

func TestArtistService_CreateArtist_EmptyName(t *testing.T) {
	artistRepo := new(MockArtistRepo)
	svc := NewArtistService(artistRepo, new(MockVinylRepo))

	_, _, err := svc.CreateArtist(context.Background(), ` "" `)
	assert.ErrorIs(t, err, customerrors.ErrInvalidName)
	artistRepo.AssertNotCalled(t, "CreateArtist", mock.Anything, mock.Anything)
}

func TestArtistService_CreateArtist_LookupError(t *testing.T) {
	artistRepo := new(MockArtistRepo)
	svc := NewArtistService(artistRepo, new(MockVinylRepo))
	boom := errors.New("boom")
	artistRepo.On("FindArtistByName", mock.Anything, "Queen").Return(nil, boom)

	_, _, err := svc.CreateArtist(context.Background(), "Queen")
	assert.ErrorIs(t, err, boom)
	artistRepo.AssertNotCalled(t, "CreateArtist", mock.Anything, mock.Anything)
}

func TestArtistService_NameLength(t *testing.T) {
	ctx := context.Background()
	svc := newArtistServiceWithDB(t)

	longest := strings.Repeat("é", MaxNameLength)
	artist, created, err := svc.CreateArtist(ctx, longest)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, longest, artist.Name)

	_, _, err = svc.CreateArtist(ctx, longest+"e")
	assert.ErrorIs(t, err, customerrors.ErrInvalidName)

	_, err = svc.UpdateArtist(ctx, artist.ID, strings.Repeat("x", MaxNameLength+1))
	assert.ErrorIs(t, err, customerrors.ErrInvalidName)

	artists, err := svc.ListArtists(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Artist{*artist}, artists)
}

func TestArtistService_UpdateArtist(t *testing.T) {
	ctx := context.Background()
	svc := newArtistServiceWithDB(t)

	a, _, err := svc.CreateArtist(ctx, "Prince")
	require.NoError(t, err)
	b, _, err := svc.CreateArtist(ctx, "Madonna")
	require.NoError(t, err)

	updated, err := svc.UpdateArtist(ctx, a.ID, "The Artist")
	require.NoError(t, err)
	assert.Equal(t, models.Artist{ID: a.ID, Name: "The Artist"}, *updated)

	// renaming onto an existing name is allowed
	_, err = svc.UpdateArtist(ctx, b.ID, "The Artist")
	assert.NoError(t, err)

	_, err = svc.UpdateArtist(ctx, 9999, "Ghost")
	assert.ErrorIs(t, err, customerrors.ErrArtistNotFound)

	_, err = svc.UpdateArtist(ctx, a.ID, "   ")
	assert.ErrorIs(t, err, customerrors.ErrInvalidName)
}

func TestArtistService_DeleteArtist(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		svc := newArtistServiceWithDB(t)
		assert.ErrorIs(t, svc.DeleteArtist(ctx, 1, false), customerrors.ErrArtistNotFound)
	})

	t.Run("no vinyls", func(t *testing.T) {
		svc := newArtistServiceWithDB(t)
		a, _, err := svc.CreateArtist(ctx, "Solo")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteArtist(ctx, a.ID, false))
		artists, err := svc.ListArtists(ctx)
		require.NoError(t, err)
		assert.Empty(t, artists)
	})

	t.Run("blocked by vinyls", func(t *testing.T) {
		svc := newArtistServiceWithDB(t)
		a, _, err := svc.CreateArtist(ctx, "Busy")
		require.NoError(t, err)
		_, _, err = NewVinylService(svc.vinylRepo, svc.artistRepo).CreateVinyl(ctx, models.VinylInput{Name: "Record", ArtistID: a.ID})
		require.NoError(t, err)

		err = svc.DeleteArtist(ctx, a.ID, false)
		assert.ErrorIs(t, err, customerrors.ErrArtistHasVinyls)

		artists, err := svc.ListArtists(ctx)
		require.NoError(t, err)
		assert.Len(t, artists, 1)
		vinyls, err := svc.ListVinylsForArtist(ctx, a.ID)
		require.NoError(t, err)
		assert.Len(t, vinyls, 1)
	})

	t.Run("repository refusal is returned as is", func(t *testing.T) {
		artistRepo := new(MockArtistRepo)
		svc := NewArtistService(artistRepo, new(MockVinylRepo))
		artistRepo.On("GetArtistByID", mock.Anything, uint(3)).Return(&models.Artist{ID: 3, Name: "Busy"}, nil)
		artistRepo.On("DeleteArtist", mock.Anything, uint(3), false).Return(customerrors.ErrArtistHasVinyls)

		assert.ErrorIs(t, svc.DeleteArtist(ctx, 3, false), customerrors.ErrArtistHasVinyls)
		artistRepo.AssertExpectations(t)
	})

	t.Run("cascade", func(t *testing.T) {
		artistRepo := new(MockArtistRepo)
		svc := NewArtistService(artistRepo, new(MockVinylRepo))
		artistRepo.On("GetArtistByID", mock.Anything, uint(3)).Return(&models.Artist{ID: 3, Name: "Busy"}, nil)
		artistRepo.On("DeleteArtist", mock.Anything, uint(3), true).Return(nil)

		require.NoError(t, svc.DeleteArtist(ctx, 3, true))
		artistRepo.AssertExpectations(t)
	})
}

func TestArtistService_ListVinylsForArtist_UnknownArtist(t *testing.T) {
	svc := newArtistServiceWithDB(t)
	vinyls, err := svc.ListVinylsForArtist(context.Background(), 404)
	require.NoError(t, err)
	assert.Empty(t, vinyls)
}
