package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/stickmap/internal/domain"
	"github.com/bft-labs/stickmap/internal/ports"
)

// DefaultDebounce is how long the watcher waits after the last write before reloading.
const DefaultDebounce = 100 * time.Millisecond

// AirframeLoader reads and validates the current airframe profile.
type AirframeLoader func() (domain.Airframe, error)

// AirframeWatcher reloads the airframe profile when its config file changes
// and hands valid profiles to apply. Invalid profiles are logged and skipped,
// the previous gains stay in effect.
type AirframeWatcher struct {
	path     string
	debounce time.Duration
	load     AirframeLoader
	apply    func(domain.Airframe)
	logger   ports.Logger
}

// NewAirframeWatcher creates a watcher for the file at path.
func NewAirframeWatcher(path string, load AirframeLoader, apply func(domain.Airframe), logger ports.Logger) *AirframeWatcher {
	return &AirframeWatcher{
		path:     path,
		debounce: DefaultDebounce,
		load:     load,
		apply:    apply,
		logger:   logger,
	}
}

// SetDebounce overrides the reload delay.
func (w *AirframeWatcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Run watches until ctx is cancelled. The directory is watched rather than the
// file so editors that replace the file by rename are still seen.
func (w *AirframeWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("airframe watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("airframe watcher: watch %s: %w", dir, err)
	}
	w.logger.Info("watching airframe profile", ports.String("path", w.path))

	name := filepath.Base(w.path)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			w.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("airframe watcher error", ports.Err(err))
		}
	}
}

func (w *AirframeWatcher) reload() {
	af, err := w.load()
	if err != nil {
		w.logger.Warn("airframe reload rejected", ports.String("path", w.path), ports.Err(err))
		return
	}
	w.apply(af)
	w.logger.Info("airframe reloaded",
		ports.Float64("thrust_gain", af.ThrustGain),
		ports.Float64("pitch_gain", af.PitchGain),
		ports.Float64("roll_gain", af.RollGain),
		ports.Float64("yaw_rate_gain", af.YawRateGain),
		ports.Float64("deadzone", af.Deadzone),
		ports.Float64("enable_threshold", af.EnableThreshold),
	)
}
