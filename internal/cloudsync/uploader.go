// Package cloudsync pushes local copies of documents (typically edited
// PDFs) to a cloud-storage target configured by the user.
package cloudsync

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"docuquery/internal/common"
	"docuquery/internal/config"
)

// Uploader stores one object under a key.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader) error
}

// NewUploaderFromConfig creates an Uploader based on the sync config type.
// An empty type means sync is disabled and returns common.ErrSyncDisabled.
func NewUploaderFromConfig(ctx context.Context, cfg config.SyncConfig) (Uploader, error) {
	switch cfg.Type {
	case "":
		return nil, common.ErrSyncDisabled
	case "memory":
		return NewMemoryUploader(), nil
	case "s3":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("s3 sync requires a bucket")
		}
		return NewS3Uploader(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown sync type: %s", cfg.Type)
	}
}

// StorageKey builds a per-user, date-partitioned object key for filename.
func StorageKey(userID int64, filename string) string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%d/%v-%s", userID, d.Year(), d.Month(), d.Day(), uuid.New(), filename)
}
