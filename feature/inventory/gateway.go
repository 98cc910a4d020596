package inventory

import (
	"context"
	"errors"
	"fmt"

	"asset-audit/feature/audit"
	auditmodels "asset-audit/feature/audit/models"
	"asset-audit/feature/inventory/models"
)

// Gateway adapts the inventory service to the audit engine's backend
// contract, translating between the database records and the session's view
// of them.
type Gateway struct {
	svc *Service
}

// NewGateway wraps the inventory service for the audit engine.
func NewGateway(svc *Service) *Gateway {
	return &Gateway{svc: svc}
}

func toExpected(a models.Asset) auditmodels.ExpectedAsset {
	return auditmodels.ExpectedAsset{
		ID:                a.ID,
		Description:       a.Description,
		Brand:             a.Brand,
		Model:             a.Model,
		SerialNumber:      a.SerialNumber,
		AssignedRoomID:    a.RoomID,
		LastLocatedRoomID: a.LastLocated,
		AssigneeID:        a.AssigneeID,
		LastUpdate:        a.LastUpdate,
		Notes:             a.Notes,
		Status:            auditmodels.Status(a.Status),
	}
}

func toRecord(a *models.Asset) *auditmodels.AssetRecord {
	return &auditmodels.AssetRecord{
		ID:                a.ID,
		Description:       a.Description,
		Brand:             a.Brand,
		Model:             a.Model,
		SerialNumber:      a.SerialNumber,
		AssignedRoomID:    a.RoomID,
		LastLocatedRoomID: a.LastLocated,
		AssigneeID:        a.AssigneeID,
		Status:            auditmodels.Status(a.Status),
		Notes:             a.Notes,
		LastUpdate:        a.LastUpdate,
	}
}

func toBulkResult(r models.BulkResult) auditmodels.BulkResult {
	return auditmodels.BulkResult{
		Processed: r.Processed,
		Failed:    r.Failed,
		Errors:    r.Errors,
	}
}

// ExpectedAssets returns the audit roster for a room.
func (g *Gateway) ExpectedAssets(ctx context.Context, roomID string) ([]auditmodels.ExpectedAsset, error) {
	assets, err := g.svc.RoomAssets(ctx, roomID)
	if err != nil {
		return nil, err
	}
	roster := make([]auditmodels.ExpectedAsset, 0, len(assets))
	for _, a := range assets {
		roster = append(roster, toExpected(a))
	}
	return roster, nil
}

// Asset resolves one tag, mapping a missing record to the audit engine's
// not-found sentinel.
func (g *Gateway) Asset(ctx context.Context, identifier string) (*auditmodels.AssetRecord, error) {
	asset, err := g.svc.Asset(ctx, identifier)
	if errors.Is(err, ErrAssetNotFound) {
		return nil, fmt.Errorf("%w: %s", audit.ErrAssetNotFound, identifier)
	}
	if err != nil {
		return nil, err
	}
	return toRecord(asset), nil
}

// UpdateAssetLocation records a sighting.
func (g *Gateway) UpdateAssetLocation(ctx context.Context, identifier, roomID string) error {
	_, err := g.svc.UpdateAssetLocation(ctx, identifier, roomID)
	return err
}

// MarkAssetsMissing marks the given assets missing in one batch.
func (g *Gateway) MarkAssetsMissing(ctx context.Context, identifiers []string) (auditmodels.BulkResult, error) {
	result, err := g.svc.MarkAssetsMissing(ctx, identifiers)
	if err != nil {
		return auditmodels.BulkResult{}, err
	}
	return toBulkResult(result), nil
}

// MarkAssetLost writes an asset off.
func (g *Gateway) MarkAssetLost(ctx context.Context, identifier string) error {
	return g.svc.MarkAssetLost(ctx, identifier, "")
}

// MarkAssetFound recovers a discrepant asset.
func (g *Gateway) MarkAssetFound(ctx context.Context, identifier string, returnToRoom bool, notes string) error {
	return g.svc.MarkAssetFound(ctx, identifier, returnToRoom, notes)
}

// RelocateAsset reassigns an asset to a new room.
func (g *Gateway) RelocateAsset(ctx context.Context, identifier, roomID, notes string) error {
	return g.svc.RelocateAsset(ctx, identifier, roomID, notes)
}

// BulkMarkFound recovers several assets at once.
func (g *Gateway) BulkMarkFound(ctx context.Context, identifiers []string, notes string) (auditmodels.BulkResult, error) {
	result, err := g.svc.BulkMarkFound(ctx, identifiers, notes)
	if err != nil {
		return auditmodels.BulkResult{}, err
	}
	return toBulkResult(result), nil
}

// BulkRelocate reassigns several assets at once.
func (g *Gateway) BulkRelocate(ctx context.Context, identifiers []string, roomID, notes string) (auditmodels.BulkResult, error) {
	result, err := g.svc.BulkRelocate(ctx, identifiers, roomID, notes)
	if err != nil {
		return auditmodels.BulkResult{}, err
	}
	return toBulkResult(result), nil
}
