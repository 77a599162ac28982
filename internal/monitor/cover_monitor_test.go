package monitor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vinyl-library/vinyl-library-api/internal/images"
	"github.com/vinyl-library/vinyl-library-api/internal/models"
)

type fakeLister struct {
	vinyls []models.Vinyl
	err    error
}

func (f *fakeLister) ListVinyls(ctx context.Context) ([]models.Vinyl, error) {
	return f.vinyls, f.err
}

func TestCoverMonitor_CheckCovers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := images.NewStore(dir, 0, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "present.jpg"), []byte("x"), 0o644))

	lister := &fakeLister{vinyls: []models.Vinyl{
		{ID: 1, Name: "Has cover", CoverFileName: "present.jpg"},
		{ID: 2, Name: "Lost cover", CoverFileName: "gone.jpg"},
		{ID: 3, Name: "No cover"},
		{ID: 4, Name: "Bad name", CoverFileName: "../escape.jpg"},
	}}

	core, logs := observer.New(zapcore.InfoLevel)
	m := NewCoverMonitor(lister, store, time.Minute, zap.New(core))

	missing := m.CheckCovers(ctx)
	require.Len(t, missing, 2)
	assert.Equal(t, uint(2), missing[0].ID)
	assert.Equal(t, uint(4), missing[1].ID)
	assert.Equal(t, 2, logs.FilterMessage("cover missing").Len())

	// the missing cover shows up: one transition is logged
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gone.jpg"), []byte("x"), 0o644))
	logs.TakeAll()
	missing = m.CheckCovers(ctx)
	require.Len(t, missing, 1)
	changes := logs.FilterMessage("cover state changed").All()
	require.Len(t, changes, 1)
	assert.Equal(t, "PRESENT", changes[0].ContextMap()["to"])

	// deleted vinyls are forgotten
	lister.vinyls = lister.vinyls[:1]
	m.CheckCovers(ctx)
	m.mu.Lock()
	assert.Len(t, m.knownStates, 1)
	m.mu.Unlock()
}

func TestCoverMonitor_ListError(t *testing.T) {
	m := NewCoverMonitor(&fakeLister{err: errors.New("db down")}, images.NewStore(t.TempDir(), 0, nil), time.Minute, nil)
	assert.Nil(t, m.CheckCovers(context.Background()))
}

func TestCoverMonitor_StartStopsOnCancel(t *testing.T) {
	m := NewCoverMonitor(&fakeLister{}, images.NewStore(t.TempDir(), 0, nil), time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}
