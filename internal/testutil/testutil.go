// Package testutil contains shared testing utilities
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/vinyl-library/vinyl-library-api/internal/config"
	"github.com/vinyl-library/vinyl-library-api/internal/database"
	"github.com/vinyl-library/vinyl-library-api/internal/models"
)

// Config returns a configuration pointing at a fresh sqlite file and image
// directory inside t.TempDir().
func Config(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Server.BasePath = "/vinyl_library"
	cfg.Server.RequestTimeout = 5 * time.Second
	cfg.Database.Driver = "sqlite"
	cfg.Database.Name = filepath.Join(dir, "library.db")
	cfg.Database.MaxOpenConns = 1
	cfg.Images.Dir = filepath.Join(dir, "images")
	cfg.Images.MaxUploadBytes = 128 * 1024
	cfg.Log.Level = "debug"
	return cfg
}

// NewDB opens a migrated sqlite database that is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	return NewDBFromConfig(t, Config(t))
}

// NewDBFromConfig is NewDB for a caller-provided configuration.
func NewDBFromConfig(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}

// SeedArtist inserts an artist directly, bypassing the services.
func SeedArtist(t *testing.T, db *gorm.DB, name string) models.Artist {
	t.Helper()
	artist := models.Artist{Name: name}
	if err := db.Create(&artist).Error; err != nil {
		t.Fatalf("failed to seed artist %q: %v", name, err)
	}
	return artist
}

// SeedVinyl inserts a vinyl directly, bypassing the services.
func SeedVinyl(t *testing.T, db *gorm.DB, name string, artistID uint, cover string) models.Vinyl {
	t.Helper()
	vinyl := models.Vinyl{Name: name, ArtistID: artistID, AddedDate: time.Now().Unix(), CoverFileName: cover}
	if err := db.Create(&vinyl).Error; err != nil {
		t.Fatalf("failed to seed vinyl %q: %v", name, err)
	}
	return vinyl
}
