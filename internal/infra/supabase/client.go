package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"alexandria-server/internal/domain"

	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

const scrollPrefix = "scrolls"

// uploader is the slice of the storage client the archive needs.
type uploader interface {
	UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
}

// Archive keeps uploaded scrolls in a Supabase Storage bucket.
type Archive struct {
	storage uploader
	bucket  string
	logger  domain.Logger
}

// NewArchive connects to Supabase with the service key.
func NewArchive(supabaseURL, supabaseKey, bucket string, logger domain.Logger) (*Archive, error) {
	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}

	logger.Info("Supabase archive initialized", "url", supabaseURL, "bucket", bucket)
	return &Archive{storage: client.Storage, bucket: bucket, logger: logger}, nil
}

// Put uploads data under scrolls/<key>. Keys are content hashes so an
// existing object is overwritten with identical bytes.
func (a *Archive) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	upsert := true
	objectPath := path.Join(scrollPrefix, key)
	_, err := a.storage.UploadFile(a.bucket, objectPath, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("supabase upload %s: %w", objectPath, err)
	}
	return nil
}
