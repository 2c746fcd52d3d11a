// Package vault is the asset browser: a type-filtered view over the stored
// assets with upload, deletion, drag-payload production, and change
// notification for views that need to refresh their listing.
package vault

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

// Vault browses the asset collection of a persistent store.
type Vault struct {
	logger *slog.Logger
	store  types.Store

	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

// New creates a vault over the given store.
func New(logger *slog.Logger, store types.Store) *Vault {
	return &Vault{
		logger: logger,
		store:  store,
		subs:   map[int]chan struct{}{},
	}
}

// List returns the stored assets of the given type, ordered by name. An
// empty type lists everything.
func (v *Vault) List(assetType string) ([]*types.Asset, error) {
	table, err := v.store.GetTable(types.AssetsTable)
	if err != nil {
		return nil, err
	}

	filter := types.Filter{}
	if assetType != "" {
		if !types.ValidAssetType(assetType) {
			return nil, types.ErrInvalidAssetType
		}
		filter["type"] = assetType
	}

	rows, err := table.Fetch(filter)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	assets := make([]*types.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, row.(*types.Asset))
	}
	return assets, nil
}

// Upload stores raw bytes as a new asset of the given type under a fresh
// identifier and returns the stored record.
func (v *Vault) Upload(name, assetType string, data []byte) (*types.Asset, error) {
	table, err := v.store.GetTable(types.AssetsTable)
	if err != nil {
		return nil, err
	}

	asset := &types.Asset{Name: name, Type: assetType, Data: data}
	id, err := table.Set("", asset)
	if err != nil {
		return nil, fmt.Errorf("uploading asset: %w", err)
	}

	v.logger.Info("asset uploaded",
		slog.String("asset_id", id),
		slog.String("type", assetType),
		slog.Int("bytes", len(data)))
	v.notify()
	return asset, nil
}

// Delete removes an asset by identifier. Tokens referencing the asset keep
// their dangling reference and render as a placeholder.
func (v *Vault) Delete(id string) error {
	table, err := v.store.GetTable(types.AssetsTable)
	if err != nil {
		return err
	}
	if err := table.Delete(id); err != nil {
		return err
	}
	v.logger.Info("asset deleted", slog.String("asset_id", id))
	v.notify()
	return nil
}

// DragPayload serializes an asset record for the drag channel. The handle,
// when given, rides along for drag preview rendering only.
func (v *Vault) DragPayload(asset *types.Asset, handle string) ([]byte, error) {
	return types.DragPayload{
		AssetID: asset.AssetID,
		Type:    asset.Type,
		Name:    asset.Name,
		Handle:  handle,
	}.Encode()
}

// Subscribe registers for change notifications and returns the notification
// channel plus a cancel function. The channel coalesces: a pending
// notification is not duplicated. Cancel is idempotent.
func (v *Vault) Subscribe() (<-chan struct{}, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.next
	v.next++
	ch := make(chan struct{}, 1)
	v.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
	return ch, cancel
}

// notify wakes every subscriber without blocking.
func (v *Vault) notify() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, ch := range v.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
