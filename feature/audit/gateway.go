package audit

import (
	"context"
	"errors"

	"asset-audit/feature/audit/models"
)

// ErrAssetNotFound is returned by Gateway.Asset when an identifier resolves
// to nothing in the system of record. It is distinct from transport or query
// errors, which mean "cannot classify now".
var ErrAssetNotFound = errors.New("asset not found")

// Gateway is the backend collaborator the audit engine talks to. The session
// core owns no persistence; everything durable goes through this contract.
type Gateway interface {
	// ExpectedAssets returns the roster for a room. An empty list is valid
	// ("no assets expected") and distinct from an error.
	ExpectedAssets(ctx context.Context, roomID string) ([]models.ExpectedAsset, error)
	// Asset resolves one identifier. Returns ErrAssetNotFound when the
	// identifier has no record.
	Asset(ctx context.Context, identifier string) (*models.AssetRecord, error)
	// UpdateAssetLocation records that an asset was seen in a room.
	UpdateAssetLocation(ctx context.Context, identifier, roomID string) error
	// MarkAssetsMissing marks all given assets missing in one batch.
	MarkAssetsMissing(ctx context.Context, identifiers []string) (models.BulkResult, error)

	// Discrepancy workflow, adjacent to (but outside) the session core.

	// MarkAssetLost writes an asset off.
	MarkAssetLost(ctx context.Context, identifier string) error
	// MarkAssetFound recovers a discrepant asset. returnToRoom selects
	// whether the asset returns to its assigned room or is reassigned to
	// where it was last located.
	MarkAssetFound(ctx context.Context, identifier string, returnToRoom bool, notes string) error
	// RelocateAsset assigns an asset to a new room.
	RelocateAsset(ctx context.Context, identifier, roomID, notes string) error
	// BulkMarkFound recovers several assets at once.
	BulkMarkFound(ctx context.Context, identifiers []string, notes string) (models.BulkResult, error)
	// BulkRelocate reassigns several assets at once.
	BulkRelocate(ctx context.Context, identifiers []string, roomID, notes string) (models.BulkResult, error)
}
