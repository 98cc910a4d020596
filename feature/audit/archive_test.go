package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"asset-audit/core/storage/mocks"
	"asset-audit/feature/audit/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSummary() *models.Summary {
	return &models.Summary{
		RoomID:     "R101",
		Method:     models.MethodManual,
		StartedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		StoppedAt:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Expected:   2,
		Found:      1,
		MissingIDs: []string{"A2"},
		Scanned: []models.ScannedRecord{
			{ID: "A1", Status: models.StatusGood, CurrentRoomID: "R101"},
		},
	}
}

func TestArchiverStoresSummary(t *testing.T) {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "audits").Return(true, nil)

	var stored []byte
	client.On("PutObject", mock.Anything, "audits",
		"audits/R101/20260301T093000Z.json",
		mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			stored = data
		}).
		Return(minio.UploadInfo{}, nil)

	a := NewArchiver(client, "audits", zap.NewNop())
	require.NoError(t, a.Archive(context.Background(), testSummary()))

	var round models.Summary
	require.NoError(t, json.Unmarshal(stored, &round))
	assert.Equal(t, "R101", round.RoomID)
	assert.Equal(t, []string{"A2"}, round.MissingIDs)
	client.AssertExpectations(t)
}

func TestArchiverCreatesBucketOnFirstUse(t *testing.T) {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "audits").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "audits", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "audits", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	a := NewArchiver(client, "audits", zap.NewNop())
	require.NoError(t, a.Archive(context.Background(), testSummary()))
	client.AssertExpectations(t)
}

func TestArchiverPropagatesStorageErrors(t *testing.T) {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "audits").Return(false, assert.AnError)

	a := NewArchiver(client, "audits", zap.NewNop())
	assert.Error(t, a.Archive(context.Background(), testSummary()))
}

func TestArchiverListNewestFirst(t *testing.T) {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "audits").Return(true, nil)

	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "audits/R101/20260101T090000Z.json"}
	ch <- minio.ObjectInfo{Key: "audits/R101/20260301T093000Z.json"}
	ch <- minio.ObjectInfo{Key: "audits/R101/20260201T100000Z.json"}
	close(ch)
	client.On("ListObjects", mock.Anything, "audits", mock.Anything).Return(ch)

	a := NewArchiver(client, "audits", zap.NewNop())
	names, err := a.List(context.Background(), "R101")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"audits/R101/20260301T093000Z.json",
		"audits/R101/20260201T100000Z.json",
		"audits/R101/20260101T090000Z.json",
	}, names)
}

func TestArchiverListMissingBucket(t *testing.T) {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "audits").Return(false, nil)

	a := NewArchiver(client, "audits", zap.NewNop())
	names, err := a.List(context.Background(), "R101")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestArchiverFetch(t *testing.T) {
	payload, err := json.Marshal(testSummary())
	require.NoError(t, err)

	client := &mocks.Client{}
	client.On("GetObject", mock.Anything, "audits",
		"audits/R101/20260301T093000Z.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(payload)), nil)

	a := NewArchiver(client, "audits", zap.NewNop())
	summary, err := a.Fetch(context.Background(), "audits/R101/20260301T093000Z.json")
	require.NoError(t, err)
	assert.Equal(t, "R101", summary.RoomID)
	assert.Equal(t, 1, summary.Found)
}

func TestArchiverFlattensRoomSlashes(t *testing.T) {
	a := NewArchiver(&mocks.Client{}, "audits", zap.NewNop())

	summary := testSummary()
	summary.RoomID = "B1/F2/R3"
	assert.Equal(t, "audits/B1_F2_R3/20260301T093000Z.json", a.objectName(summary))
}
