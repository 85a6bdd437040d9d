package pricing

import (
	"context"
	"testing"

	"price-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestArchiveSnapshot(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "feed-snapshots").Return(true, nil)
	client.On("PutObject",
		mock.Anything,
		"feed-snapshots",
		mock.MatchedBy(func(name string) bool { return len(name) > 0 }),
		mock.Anything,
		int64(10),
		mock.Anything,
	).Return(minio.UploadInfo{}, nil)

	archiver := NewSnapshotArchiver(client, "feed-snapshots")

	err := archiver.ArchiveSnapshot(context.Background(), []byte("<catalog/>"))
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestArchiveSnapshot_CreatesMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "feed-snapshots").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "feed-snapshots", mock.Anything).Return(nil)
	client.On("PutObject",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
	).Return(minio.UploadInfo{}, nil)

	archiver := NewSnapshotArchiver(client, "feed-snapshots")

	err := archiver.ArchiveSnapshot(context.Background(), []byte("<catalog/>"))
	assert.NoError(t, err)

	// The bucket check is cached after the first archive.
	err = archiver.ArchiveSnapshot(context.Background(), []byte("<catalog/>"))
	assert.NoError(t, err)
	client.AssertNumberOfCalls(t, "BucketExists", 1)
	client.AssertNumberOfCalls(t, "MakeBucket", 1)
}

func TestArchiveSnapshot_UploadError(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, mock.Anything).Return(true, nil)
	client.On("PutObject",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
	).Return(minio.UploadInfo{}, assert.AnError)

	archiver := NewSnapshotArchiver(client, "feed-snapshots")

	err := archiver.ArchiveSnapshot(context.Background(), []byte("<catalog/>"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to archive feed snapshot")
}
