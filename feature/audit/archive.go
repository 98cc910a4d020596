package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"asset-audit/core/storage"
	"asset-audit/feature/audit/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver writes completed audit summaries to object storage so past room
// audits can be reviewed after the session state is gone. Cancelled sessions
// are never archived.
type Archiver struct {
	client storage.Client
	bucket string
	log    *zap.Logger
}

// NewArchiver creates an archiver writing into bucket.
func NewArchiver(client storage.Client, bucket string, log *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, log: log}
}

// objectName derives the storage key for a summary. Room ids become path
// segments, so slashes in them are flattened.
func (a *Archiver) objectName(summary *models.Summary) string {
	room := strings.ReplaceAll(summary.RoomID, "/", "_")
	return fmt.Sprintf("audits/%s/%s.json", room, summary.StoppedAt.UTC().Format("20060102T150405Z"))
}

// Archive stores one summary. The bucket is created on first use.
func (a *Archiver) Archive(ctx context.Context, summary *models.Summary) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}

	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	name := a.objectName(summary)
	_, err = a.client.PutObject(ctx, a.bucket, name,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}

	a.log.Info("Audit archived",
		zap.String("room", summary.RoomID),
		zap.String("object", name),
		zap.Int("scanned", len(summary.Scanned)))
	return nil
}

// List returns the archived object names for one room, newest first.
func (a *Archiver) List(ctx context.Context, roomID string) ([]string, error) {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		return nil, nil
	}

	prefix := fmt.Sprintf("audits/%s/", strings.ReplaceAll(roomID, "/", "_"))
	var names []string
	for info := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, info.Err)
		}
		names = append(names, info.Key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Fetch loads one archived summary by object name.
func (a *Archiver) Fetch(ctx context.Context, objectName string) (*models.Summary, error) {
	reader, err := a.client.GetObject(ctx, a.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", objectName, err)
	}
	defer reader.Close()

	var summary models.Summary
	if err := json.NewDecoder(reader).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", objectName, err)
	}
	return &summary, nil
}
