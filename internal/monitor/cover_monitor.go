package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vinyl-library/vinyl-library-api/internal/models"
)

// VinylLister is the slice of the vinyl repository the monitor needs.
type VinylLister interface {
	ListVinyls(ctx context.Context) ([]models.Vinyl, error)
}

// CoverChecker reports whether a cover file is present in the image store.
type CoverChecker interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// CoverMonitor periodically checks that every vinyl's cover file exists.
// It keeps the last known state per vinyl and logs transitions.
type CoverMonitor struct {
	vinyls      VinylLister
	covers      CoverChecker
	interval    time.Duration
	log         *zap.Logger
	knownStates map[uint]bool // vinyl ID -> cover present
	mu          sync.Mutex
}

// NewCoverMonitor creates and returns a new instance of CoverMonitor.
func NewCoverMonitor(vinyls VinylLister, covers CoverChecker, interval time.Duration, log *zap.Logger) *CoverMonitor {
	if log == nil {
		log = zap.NewNop()
	}
	return &CoverMonitor{
		vinyls:      vinyls,
		covers:      covers,
		interval:    interval,
		log:         log.Named("monitor"),
		knownStates: make(map[uint]bool),
	}
}

// Start runs a check immediately and then once per interval until ctx is cancelled.
func (m *CoverMonitor) Start(ctx context.Context) {
	m.log.Info("starting cover monitor", zap.Duration("interval", m.interval))
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.CheckCovers(ctx)

	for {
		select {
		case <-ctx.Done():
			m.log.Info("cover monitor stopped")
			return
		case <-ticker.C:
			m.CheckCovers(ctx)
		}
	}
}

// CheckCovers performs one pass and returns the vinyls whose cover is missing.
// A vinyl without a cover file name is not reported.
func (m *CoverMonitor) CheckCovers(ctx context.Context) []models.Vinyl {
	vinyls, err := m.vinyls.ListVinyls(ctx)
	if err != nil {
		m.log.Error("cannot list vinyls", zap.Error(err))
		return nil
	}

	missing := []models.Vinyl{}
	seen := make(map[uint]struct{}, len(vinyls))
	for _, vinyl := range vinyls {
		seen[vinyl.ID] = struct{}{}
		if vinyl.CoverFileName == "" {
			continue
		}

		present, err := m.covers.Exists(ctx, vinyl.CoverFileName)
		if err != nil {
			m.log.Warn("cannot check cover",
				zap.Uint("vinyl_id", vinyl.ID), zap.String("cover", vinyl.CoverFileName), zap.Error(err))
			present = false
		}
		if !present {
			missing = append(missing, vinyl)
		}

		m.mu.Lock()
		previous, known := m.knownStates[vinyl.ID]
		m.knownStates[vinyl.ID] = present
		m.mu.Unlock()

		switch {
		case !known && !present:
			m.log.Warn("cover missing", zap.Uint("vinyl_id", vinyl.ID), zap.String("vinyl", vinyl.Name), zap.String("cover", vinyl.CoverFileName))
		case known && previous != present:
			m.log.Info("cover state changed",
				zap.Uint("vinyl_id", vinyl.ID), zap.String("vinyl", vinyl.Name),
				zap.String("from", formatState(previous)), zap.String("to", formatState(present)))
		}
	}

	// forget deleted vinyls
	m.mu.Lock()
	for id := range m.knownStates {
		if _, ok := seen[id]; !ok {
			delete(m.knownStates, id)
		}
	}
	m.mu.Unlock()

	m.log.Debug("cover check completed", zap.Int("vinyls", len(vinyls)), zap.Int("missing", len(missing)))
	return missing
}

func formatState(present bool) string {
	if present {
		return "PRESENT"
	}
	return "MISSING"
}
