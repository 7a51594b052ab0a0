// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package phonebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/phonebook/config"
	"github.com/poiesic/phonebook/directory"
	"github.com/poiesic/phonebook/storage"
	"github.com/poiesic/phonebook/storage/badger"
	"github.com/poiesic/phonebook/storage/sqlite"
)

// ErrUnknownBackend is returned by Open for a backend name it cannot build.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Phonebook ties a storage backend to a contact directory.
type Phonebook struct {
	dir     *directory.Manager
	backend string
	logger  *slog.Logger
}

// Option configures a Phonebook.
type Option func(*options)

type options struct {
	backend    string
	categories []string
	inMemory   bool
	logger     *slog.Logger
}

// WithBackend selects "badger" (default) or "sqlite".
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithCategories sets the valid category names.
func WithCategories(names ...string) Option {
	return func(o *options) {
		o.categories = names
	}
}

// WithInMemory keeps the database in memory; the path is ignored.
func WithInMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Open opens the contact database at path and loads it into a directory.
//
// A backend that cannot be opened does not fail Open: the directory starts
// empty, every write reports a persistence failure and StoreErr returns the
// cause.
func Open(ctx context.Context, path string, opts ...Option) (*Phonebook, error) {
	options := &options{
		backend: config.BackendBadger,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	store, err := openStore(options.backend, path, options.inMemory)
	if errors.Is(err, ErrUnknownBackend) {
		return nil, err
	}
	if err != nil {
		options.logger.Warn("cannot open contact store, changes will not be saved",
			"backend", options.backend, "path", path, "err", err)
		store = storage.Unavailable(err)
	}

	dirOpts := []directory.Option{directory.WithLogger(options.logger)}
	if options.categories != nil {
		dirOpts = append(dirOpts, directory.WithCategories(options.categories...))
	}
	dir, err := directory.NewManager(ctx, store, dirOpts...)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Phonebook{
		dir:     dir,
		backend: options.backend,
		logger:  options.logger,
	}, nil
}

// OpenConfig opens the database described by cfg. Later options override cfg.
func OpenConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Phonebook, error) {
	base := []Option{
		WithBackend(cfg.Backend),
		WithCategories(cfg.Categories...),
	}
	return Open(ctx, cfg.DBPath, append(base, opts...)...)
}

func openStore(backend, path string, inMemory bool) (storage.ContactStore, error) {
	switch backend {
	case config.BackendBadger:
		if inMemory {
			return badger.NewMemoryContactStore()
		}
		return badger.OpenContactStore(path)
	case config.BackendSQLite:
		if inMemory {
			path = ":memory:"
		}
		return sqlite.OpenContactStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Directory returns the contact directory. It is not safe for concurrent
// use; wrap it with directory.NewLocked when sharing it.
func (p *Phonebook) Directory() *directory.Manager {
	return p.dir
}

// Backend returns the name of the storage backend in use.
func (p *Phonebook) Backend() string {
	return p.backend
}

// StoreErr returns why the stored contacts could not be loaded, or nil.
func (p *Phonebook) StoreErr() error {
	return p.dir.LoadErr()
}

func (p *Phonebook) Close() error {
	if err := p.dir.Close(); err != nil {
		p.logger.Error("error closing contact store", "err", err)
		return err
	}
	return nil
}
