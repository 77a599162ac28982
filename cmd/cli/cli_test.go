package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vinyl-library/vinyl-library-api/internal/testutil"
)

func TestAddArtist(t *testing.T) {
	cfg := testutil.Config(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, addArtist(ctx, cfg, "Daft Punk", &out))
	assert.Equal(t, "Artist created: Daft Punk (id 1)\n", out.String())

	out.Reset()
	require.NoError(t, addArtist(ctx, cfg, `"Daft Punk"`, &out))
	assert.Equal(t, "Artist already exists: Daft Punk (id 1)\n", out.String())

	assert.Error(t, addArtist(ctx, cfg, "   ", &out))
}

func TestPrintStats(t *testing.T) {
	cfg := testutil.Config(t)
	db := testutil.NewDBFromConfig(t, cfg)
	artist := testutil.SeedArtist(t, db, "Air")
	testutil.SeedVinyl(t, db, "Moon Safari", artist.ID, "moon.jpg")
	testutil.SeedVinyl(t, db, "Talkie Walkie", artist.ID, "talkie.jpg")
	testutil.SeedVinyl(t, db, "Premiers Symptômes", artist.ID, "")

	require.NoError(t, os.MkdirAll(cfg.Images.Dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Images.Dir, "moon.jpg"), []byte("x"), 0o644))

	var out bytes.Buffer
	require.NoError(t, printStats(context.Background(), cfg, zaptest.NewLogger(t), &out))

	assert.Equal(t, "Artists: 1\n"+
		"Vinyls: 3\n"+
		"Images: 1\n"+
		"Missing covers: 1\n"+
		"  - Talkie Walkie (id 2): talkie.jpg\n", out.String())
}

func TestInitDB(t *testing.T) {
	cfg := testutil.Config(t)

	var out bytes.Buffer
	require.NoError(t, initDB(cfg, &out))

	info, err := os.Stat(cfg.Images.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.FileExists(t, cfg.Database.Name)
	assert.Contains(t, out.String(), "Database ready (sqlite)")
}

func TestInitDB_BadDriver(t *testing.T) {
	cfg := testutil.Config(t)
	cfg.Database.Driver = "oracle"

	assert.Error(t, initDB(cfg, &bytes.Buffer{}))
	assert.NoDirExists(t, cfg.Images.Dir)
}
