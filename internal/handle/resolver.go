// Package handle converts stored asset payloads into transient file://
// display handles backed by scratch files. Every acquisition pairs with
// exactly one release. An unreleased lease is a resource leak, not a
// crash; the resolver counts live leases so tests can assert zero.
package handle

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

// Lease is one acquired display handle. The zero URL marks the neutral
// placeholder lease handed out when the asset cannot be resolved.
type Lease struct {
	url      string
	path     string
	resolver *Resolver
	once     sync.Once
}

// URL returns the file:// display handle, or the empty string for the
// placeholder lease. The handle is only valid until Release.
func (l *Lease) URL() string {
	return l.url
}

// Path returns the scratch file backing the handle, or the empty string
// for the placeholder lease.
func (l *Lease) Path() string {
	return l.path
}

// Placeholder reports whether the lease stands in for an unresolvable
// asset.
func (l *Lease) Placeholder() bool {
	return l.path == ""
}

// Release frees the lease and removes its scratch file. Releasing more
// than once is safe; only the first call counts.
func (l *Lease) Release() {
	l.once.Do(func() {
		if l.path != "" {
			if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
				l.resolver.logger.Warn("removing scratch file",
					slog.String("path", l.path), slog.Any("error", err))
			}
		}
		l.resolver.mu.Lock()
		l.resolver.active--
		l.resolver.mu.Unlock()
	})
}

// Resolver materializes asset payloads as scratch files under one
// directory and hands out leases on them.
type Resolver struct {
	logger *slog.Logger
	store  types.Store
	dir    string

	mu     sync.Mutex
	active int
}

// NewResolver creates a resolver writing scratch files under dir. An empty
// dir resolves to a fresh directory under the system temp root.
func NewResolver(logger *slog.Logger, store types.Store, dir string) (*Resolver, error) {
	if dir == "" {
		d, err := os.MkdirTemp("", "ddmaker-handles-")
		if err != nil {
			return nil, fmt.Errorf("creating scratch directory: %w", err)
		}
		dir = d
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating scratch directory: %w", err)
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving scratch directory: %w", err)
	}
	return &Resolver{logger: logger, store: store, dir: abs}, nil
}

// Acquire resolves an asset to a display handle. A missing, empty, or
// unreadable asset yields the placeholder lease instead of an error; the
// placeholder still must be released.
func (r *Resolver) Acquire(assetID string) *Lease {
	r.mu.Lock()
	r.active++
	r.mu.Unlock()

	asset, err := r.lookup(assetID)
	if err != nil {
		r.logger.Debug("resolving asset to placeholder",
			slog.String("asset_id", assetID), slog.Any("error", err))
		return &Lease{resolver: r}
	}

	path, err := r.materialize(asset)
	if err != nil {
		r.logger.Warn("writing scratch file",
			slog.String("asset_id", assetID), slog.Any("error", err))
		return &Lease{resolver: r}
	}

	u := url.URL{Scheme: "file", Path: path}
	return &Lease{url: u.String(), path: path, resolver: r}
}

// Active returns the number of unreleased leases.
func (r *Resolver) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Close removes the scratch directory. Leases still active at close time
// are a leak and are logged as such.
func (r *Resolver) Close() error {
	if n := r.Active(); n > 0 {
		r.logger.Warn("closing resolver with unreleased leases", slog.Int("active", n))
	}
	return os.RemoveAll(r.dir)
}

func (r *Resolver) lookup(assetID string) (*types.Asset, error) {
	if assetID == "" {
		return nil, types.ErrInvalidID
	}
	table, err := r.store.GetTable(types.AssetsTable)
	if err != nil {
		return nil, err
	}
	entity, err := table.Get(assetID)
	if err != nil {
		return nil, err
	}
	asset := entity.(*types.Asset)
	if len(asset.Data) == 0 {
		return nil, fmt.Errorf("asset %s has no payload", assetID)
	}
	return asset, nil
}

// materialize writes the payload to a scratch file, keeping the original
// file extension so consumers can sniff the media type from the handle.
func (r *Resolver) materialize(asset *types.Asset) (string, error) {
	f, err := os.CreateTemp(r.dir, "asset-*"+filepath.Ext(asset.Name))
	if err != nil {
		return "", err
	}
	if _, err := f.Write(asset.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
