package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"asset-audit/feature/inventory/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrAssetNotFound is returned when an asset tag has no record.
var ErrAssetNotFound = errors.New("asset not found")

// Service implements the inventory operations over the database. All status
// transitions happen here so the audit feature and the discrepancy endpoints
// share one set of rules.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	cfg    Config
}

// NewService creates a new inventory service.
func NewService(db *gorm.DB, logger *zap.Logger, cfg Config) *Service {
	return &Service{db: db, logger: logger, cfg: cfg}
}

// Migrate creates or updates the schema.
func (s *Service) Migrate() error {
	if err := s.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate inventory schema: %w", err)
	}
	return nil
}

// RoomAssets returns every asset assigned to a room.
func (s *Service) RoomAssets(ctx context.Context, roomID string) ([]models.Asset, error) {
	var assets []models.Asset
	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load assets for room %s: %w", roomID, err)
	}
	return assets, nil
}

// Asset returns one asset by tag.
func (s *Service) Asset(ctx context.Context, tag string) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.WithContext(ctx).First(&asset, "id = ?", tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load asset %s: %w", tag, err)
	}
	return &asset, nil
}

// Rooms returns all rooms, ordered by id.
func (s *Service) Rooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.WithContext(ctx).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	return rooms, nil
}

// UpdateAssetLocation records a sighting of an asset in a room. The asset
// turns Good when the room is its assigned one and Misplaced otherwise, and
// the sighting is appended to the scan history.
func (s *Service) UpdateAssetLocation(ctx context.Context, tag, roomID string) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&asset, "id = ?", tag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}

		status := models.StatusGood
		if asset.RoomID != roomID {
			status = models.StatusMisplaced
		}
		now := time.Now()

		if err := tx.Model(&asset).Updates(map[string]any{
			"last_located": roomID,
			"status":       status,
			"last_update":  now,
		}).Error; err != nil {
			return err
		}

		return tx.Create(&models.ScanEvent{
			ID:        uuid.NewString(),
			AssetID:   tag,
			RoomID:    roomID,
			Status:    status,
			ScannedAt: now,
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update location of asset %s: %w", tag, err)
	}

	s.logger.Info("Asset location updated",
		zap.String("asset", tag),
		zap.String("room", roomID),
		zap.String("status", asset.Status))
	return &asset, nil
}

// MarkAssetsMissing marks the given assets missing in one pass. Assets that
// are already written off (Lost) keep their status, as do Good assets and
// misplaced assets sighted within the configured threshold: a positive
// sighting on record is better information than "not in its room today".
func (s *Service) MarkAssetsMissing(ctx context.Context, tags []string) (models.BulkResult, error) {
	var result models.BulkResult
	if len(tags) == 0 {
		return result, nil
	}
	threshold := time.Now().AddDate(0, 0, -s.cfg.MisplacedThresholdDays)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assets []models.Asset
		if err := tx.Where("id IN ?", tags).Find(&assets).Error; err != nil {
			return err
		}

		byTag := make(map[string]*models.Asset, len(assets))
		for i := range assets {
			byTag[assets[i].ID] = &assets[i]
		}

		now := time.Now()
		for _, tag := range tags {
			asset, ok := byTag[tag]
			if !ok {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: not found", tag))
				continue
			}
			if asset.Status == models.StatusLost {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: already lost", tag))
				continue
			}
			if asset.Status == models.StatusMisplaced && asset.LastUpdate.After(threshold) {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: recently sighted in %s", tag, asset.LastLocated))
				continue
			}
			if asset.Status == models.StatusGood {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: already found", tag))
				continue
			}

			if err := tx.Model(asset).Updates(map[string]any{
				"status":      models.StatusMissing,
				"last_update": now,
			}).Error; err != nil {
				return err
			}
			result.Processed++
		}
		return nil
	})
	if err != nil {
		return models.BulkResult{}, fmt.Errorf("failed to mark assets missing: %w", err)
	}

	s.logger.Info("Assets marked missing",
		zap.Int("requested", len(tags)),
		zap.Int("processed", result.Processed),
		zap.Int("skipped", result.Failed))
	return result, nil
}

// MarkAssetLost writes an asset off.
func (s *Service) MarkAssetLost(ctx context.Context, tag, notes string) error {
	updates := map[string]any{
		"status":      models.StatusLost,
		"last_update": time.Now(),
	}
	if notes != "" {
		updates["notes"] = notes
	}

	res := s.db.WithContext(ctx).Model(&models.Asset{}).Where("id = ?", tag).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to mark asset %s lost: %w", tag, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAssetNotFound
	}

	s.logger.Info("Asset marked lost", zap.String("asset", tag))
	return nil
}

// MarkAssetFound recovers a discrepant asset. With returnToRoom the asset is
// recorded back in its assigned room; otherwise the assignment moves to
// wherever the asset was last located.
func (s *Service) MarkAssetFound(ctx context.Context, tag string, returnToRoom bool, notes string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.First(&asset, "id = ?", tag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}

		now := time.Now()
		updates := map[string]any{
			"status":      models.StatusGood,
			"last_update": now,
		}
		room := asset.RoomID
		if returnToRoom || asset.LastLocated == "" {
			updates["last_located"] = asset.RoomID
		} else {
			updates["room_id"] = asset.LastLocated
			room = asset.LastLocated
		}
		if notes != "" {
			updates["notes"] = notes
		}

		if err := tx.Model(&asset).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Create(&models.ScanEvent{
			ID:        uuid.NewString(),
			AssetID:   tag,
			RoomID:    room,
			Status:    models.StatusGood,
			ScannedAt: now,
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return err
		}
		return fmt.Errorf("failed to mark asset %s found: %w", tag, err)
	}

	s.logger.Info("Asset marked found",
		zap.String("asset", tag),
		zap.Bool("return_to_room", returnToRoom))
	return nil
}

// RelocateAsset reassigns an asset to a new room and records it as present
// there.
func (s *Service) RelocateAsset(ctx context.Context, tag, roomID, notes string) error {
	if strings.TrimSpace(roomID) == "" {
		return fmt.Errorf("no destination room given")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]any{
			"room_id":      roomID,
			"last_located": roomID,
			"status":       models.StatusGood,
			"last_update":  now,
		}
		if notes != "" {
			updates["notes"] = notes
		}

		res := tx.Model(&models.Asset{}).Where("id = ?", tag).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAssetNotFound
		}

		return tx.Create(&models.ScanEvent{
			ID:        uuid.NewString(),
			AssetID:   tag,
			RoomID:    roomID,
			Status:    models.StatusGood,
			ScannedAt: now,
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return err
		}
		return fmt.Errorf("failed to relocate asset %s: %w", tag, err)
	}

	s.logger.Info("Asset relocated", zap.String("asset", tag), zap.String("room", roomID))
	return nil
}

// BulkMarkFound recovers several assets, returning per-asset outcomes.
func (s *Service) BulkMarkFound(ctx context.Context, tags []string, notes string) (models.BulkResult, error) {
	var result models.BulkResult
	for _, tag := range tags {
		if err := s.MarkAssetFound(ctx, tag, true, notes); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", tag, err))
			continue
		}
		result.Processed++
	}
	return result, nil
}

// BulkRelocate reassigns several assets, returning per-asset outcomes.
func (s *Service) BulkRelocate(ctx context.Context, tags []string, roomID, notes string) (models.BulkResult, error) {
	var result models.BulkResult
	for _, tag := range tags {
		if err := s.RelocateAsset(ctx, tag, roomID, notes); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", tag, err))
			continue
		}
		result.Processed++
	}
	return result, nil
}

// Discrepancies returns every asset whose status needs attention.
func (s *Service) Discrepancies(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	err := s.db.WithContext(ctx).
		Where("status IN ?", []string{models.StatusMissing, models.StatusMisplaced, models.StatusLost}).
		Order("status, id").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load discrepancies: %w", err)
	}
	return assets, nil
}

// History returns the scan events for one asset, newest first.
func (s *Service) History(ctx context.Context, tag string, limit int) ([]models.ScanEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []models.ScanEvent
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", tag).
		Order("scanned_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history for asset %s: %w", tag, err)
	}
	return events, nil
}
