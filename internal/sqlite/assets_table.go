// This file implements the assets table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

// Compile-time interface check: assetsTable must implement Table.
var _ types.Table = (*assetsTable)(nil)

// assetsTable implements the Table interface for the asset entity type.
// The binary payload lives in a BLOB column; assets are immutable once
// stored except for deletion.
type assetsTable struct {
	backend *Backend
}

// Get retrieves an asset by ID, including its binary payload.
func (at *assetsTable) Get(id string) (any, error) {
	release, err := at.backend.guard()
	if err != nil {
		return nil, err
	}
	defer release()

	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := at.backend.db.QueryRow(
		"SELECT asset_id, name, asset_type, data FROM assets WHERE asset_id = ?",
		id,
	)
	asset, err := hydrateAsset(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting asset %s: %w", id, err)
	}
	return asset, nil
}

// Set persists an asset. If id is empty, generates a UUID v7 and creates
// the asset. Returns the actual ID used.
func (at *assetsTable) Set(id string, data any) (string, error) {
	release, err := at.backend.guard()
	if err != nil {
		return "", err
	}
	defer release()

	asset, ok := data.(*types.Asset)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := asset.Validate(); err != nil {
		return "", err
	}

	if id == "" {
		id = generateUUID()
	}
	asset.AssetID = id

	_, err = at.backend.db.Exec(
		`INSERT INTO assets (asset_id, name, asset_type, data) VALUES (?, ?, ?, ?)
		 ON CONFLICT(asset_id) DO UPDATE SET
		   name = excluded.name,
		   asset_type = excluded.asset_type,
		   data = excluded.data`,
		id, asset.Name, asset.Type, asset.Data,
	)
	if err != nil {
		return "", fmt.Errorf("persisting asset: %w", err)
	}

	return id, nil
}

// Delete removes an asset by ID. Deleting a missing asset is a no-op.
// Tokens referencing the asset are not touched; the dangling reference is
// tolerated and rendered as a placeholder.
func (at *assetsTable) Delete(id string) error {
	release, err := at.backend.guard()
	if err != nil {
		return err
	}
	defer release()

	if id == "" {
		return types.ErrInvalidID
	}
	if _, err := at.backend.db.Exec("DELETE FROM assets WHERE asset_id = ?", id); err != nil {
		return fmt.Errorf("deleting asset %s: %w", id, err)
	}
	return nil
}

// Fetch queries assets matching the filter, ordered by name. Supported
// filter keys: "type" (string).
func (at *assetsTable) Fetch(filter types.Filter) ([]any, error) {
	release, err := at.backend.guard()
	if err != nil {
		return nil, err
	}
	defer release()

	query := "SELECT asset_id, name, asset_type, data FROM assets"
	var conditions []string
	var args []any

	if filter != nil {
		if v, ok := filter["type"]; ok {
			assetType, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "asset_type = ?")
			args = append(args, assetType)
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := at.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching assets: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		asset, err := hydrateAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating asset: %w", err)
		}
		results = append(results, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assets: %w", err)
	}
	return results, nil
}

// hydrateAsset converts a SQLite row into a *types.Asset.
func hydrateAsset(row rowScanner) (*types.Asset, error) {
	var a types.Asset
	if err := row.Scan(&a.AssetID, &a.Name, &a.Type, &a.Data); err != nil {
		return nil, err
	}
	return &a, nil
}
