// Package app wires configuration, storage, the dataset and the media
// warmer into a Service that CLIs and the terminal UI share.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/config"
	"tableflip.dev/comicview/pkg/logging"
	"tableflip.dev/comicview/pkg/precache"
	"tableflip.dev/comicview/pkg/store"
	"tableflip.dev/comicview/pkg/viewer"
)

// Service owns the resources behind a viewing session.
type Service struct {
	Config   *config.Config
	Dataset  *comic.Dataset
	KV       store.KV
	Location *store.FileLocation
	Warmer   *precache.Warmer

	log    logrus.FieldLogger
	cancel context.CancelFunc
}

// ErrNoConfig is returned by Open when no config is given.
var ErrNoConfig = errors.New("app: no config")

// Open loads the dataset and opens storage. A store that cannot be opened
// is replaced by store.Unavailable; the dataset is required.
func Open(ctx context.Context, cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, ErrNoConfig
	}
	ds, err := comic.Load(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("app: dataset %s: %w", cfg.Dataset, err)
	}
	return New(ctx, cfg, ds), nil
}

// New builds a Service around an already loaded dataset.
func New(ctx context.Context, cfg *config.Config, ds *comic.Dataset) *Service {
	log := logging.Log.WithField("name", cfg.Name)

	kv, err := store.Load(cfg)
	if err != nil {
		log.WithError(err).Warn("session storage unavailable, state will not be saved")
		kv = store.Unavailable{}
	}

	ctx, cancel := context.WithCancel(ctx)
	w := precache.New(precache.Config{
		Root:     cfg.MediaRoot,
		Workers:  cfg.PrecacheWorkers,
		MaxBytes: cfg.PrecacheBytes,
		Logger:   log,
	})
	w.Start(ctx)

	return &Service{
		Config:   cfg,
		Dataset:  ds,
		KV:       kv,
		Location: store.NewFileLocation(cfg.Location),
		Warmer:   w,
		log:      log,
		cancel:   cancel,
	}
}

// Viewer builds a viewer over the service's dataset and storage. Extra
// options are applied after the service's own.
func (s *Service) Viewer(r viewer.Renderer, opts ...viewer.Option) (*viewer.Viewer, error) {
	base := []viewer.Option{
		viewer.WithStore(s.KV),
		viewer.WithLocation(s.Location),
		viewer.WithPrecacher(s.Warmer),
		viewer.WithKeys(viewer.KeysFor(s.Config.Name)),
		viewer.WithLogger(s.log),
	}
	if r != nil {
		base = append(base, viewer.WithRenderer(r))
	}
	return viewer.New(s.Dataset, append(base, opts...)...)
}

// Watch reports external edits of the location file.
func (s *Service) Watch(ctx context.Context) (<-chan string, error) {
	return s.Location.Watch(ctx)
}

// Close stops the warmer and releases storage.
func (s *Service) Close() error {
	var err error
	if s.cancel != nil {
		s.cancel()
		s.Warmer.Wait()
	}
	if s.KV != nil {
		err = multierr.Append(err, s.KV.Close())
	}
	return err
}
