package types

// Asset types. The type decides both the vault tab an asset appears under
// and what dropping it onto the canvas means.
const (
	AssetMap   = "map"
	AssetToken = "token"
	AssetAudio = "audio"
)

// validAssetTypes is the set of recognized asset type values.
var validAssetTypes = map[string]bool{
	AssetMap:   true,
	AssetToken: true,
	AssetAudio: true,
}

// ValidAssetType reports whether t is a recognized asset type.
func ValidAssetType(t string) bool {
	return validAssetTypes[t]
}

// Asset is an uploaded binary. Assets are immutable once stored except for
// deletion. Display handles derived from Data are transient and never
// persisted or serialized, hence the "-" JSON tag.
type Asset struct {
	AssetID string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Data    []byte `json:"-"`
}

// Validate checks the fields an asset must carry before persistence.
func (a *Asset) Validate() error {
	if a.Name == "" {
		return ErrInvalidName
	}
	if !ValidAssetType(a.Type) {
		return ErrInvalidAssetType
	}
	return nil
}
