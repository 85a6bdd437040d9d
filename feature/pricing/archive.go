package pricing

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"price-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// SnapshotArchiver stores the raw feed document of each run in object
// storage under a timestamped key, giving an audit trail of what was
// actually ingested.
type SnapshotArchiver struct {
	client storage.Client
	bucket string

	ensureOnce sync.Once
	ensureErr  error
}

// NewSnapshotArchiver creates an archiver writing to the given bucket.
func NewSnapshotArchiver(client storage.Client, bucket string) *SnapshotArchiver {
	return &SnapshotArchiver{client: client, bucket: bucket}
}

// ensureBucket creates the snapshot bucket on first use. The result is
// cached; a failed attempt fails every subsequent archive until restart.
func (a *SnapshotArchiver) ensureBucket(ctx context.Context) error {
	a.ensureOnce.Do(func() {
		exists, err := a.client.BucketExists(ctx, a.bucket)
		if err != nil {
			a.ensureErr = fmt.Errorf("failed to check snapshot bucket: %w", err)
			return
		}
		if exists {
			return
		}
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			a.ensureErr = fmt.Errorf("failed to create snapshot bucket: %w", err)
		}
	})
	return a.ensureErr
}

// ArchiveSnapshot uploads one raw feed document. Callers treat failures
// as non-fatal; the price update must not depend on the archive.
func (a *SnapshotArchiver) ArchiveSnapshot(ctx context.Context, raw []byte) error {
	if err := a.ensureBucket(ctx); err != nil {
		return err
	}

	objectName := fmt.Sprintf("feeds/%s.xml", time.Now().UTC().Format("20060102T150405Z"))

	_, err := a.client.PutObject(
		ctx,
		a.bucket,
		objectName,
		bytes.NewReader(raw),
		int64(len(raw)),
		minio.PutObjectOptions{ContentType: "application/xml"},
	)
	if err != nil {
		return fmt.Errorf("failed to archive feed snapshot: %w", err)
	}
	return nil
}
