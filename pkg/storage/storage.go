// Package storage provides blob storage operations with an Azure Blob Storage implementation.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/kitelabs/kite/pkg/lifecycle"
)

// MaxListCap bounds the page size for blob listing operations.
const MaxListCap int32 = 500

// Metadata describes a stored blob.
type Metadata struct {
	Key           string    `json:"key"`
	ContentType   string    `json:"content_type"`
	ContentLength int64     `json:"content_length"`
	LastModified  time.Time `json:"last_modified"`
}

// ListResult holds a page of blob metadata with an optional continuation marker.
type ListResult struct {
	Blobs      []Metadata `json:"blobs"`
	NextMarker string     `json:"next_marker,omitempty"`
}

// DownloadResult streams a blob's content with its metadata.
// The caller must close Body.
type DownloadResult struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// System manages blob storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the storage container.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to a blob at the given key with the specified content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the blob at the given key.
	// Returns ErrNotFound if the blob does not exist.
	Download(ctx context.Context, key string) (*DownloadResult, error)
	// Find returns metadata for the blob at the given key.
	// Returns ErrNotFound if the blob does not exist.
	Find(ctx context.Context, key string) (*Metadata, error)
	// List returns a page of blobs with the given prefix, starting after marker.
	List(ctx context.Context, prefix, marker string, maxResults int32) (*ListResult, error)
	// Delete removes the blob at the given key. Returns ErrNotFound if the blob does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a blob exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

type azure struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

// New creates a storage system from the given configuration.
// It validates the connection string and creates the Azure client
// but does not establish a connection until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &azure{
		client:    client,
		container: cfg.ContainerName,
		logger:    logger.With("system", "storage"),
	}, nil
}

// ParseMaxResults parses a max_results query value, clamping to the configured limit.
// An empty value returns the limit itself.
func ParseMaxResults(raw string, limit int32) (int32, error) {
	if raw == "" {
		return limit, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrInvalidMaxResults
	}

	return min(int32(n), limit), nil
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	a.logger.Info("starting storage system")

	lc.OnStartup(func() {
		_, err := a.client.CreateContainer(lc.Context(), a.container, nil)
		if err != nil {
			if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
				a.logger.Error("storage container initialization failed", "error", err)
				return
			}
		}

		a.logger.Info("storage container ready", "container", a.container)
	})

	return nil
}

func (a *azure) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	_, err := a.client.UploadStream(ctx, a.container, key, reader, opts)
	if err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}

	return nil
}

func (a *azure) Download(ctx context.Context, key string) (*DownloadResult, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := a.client.DownloadStream(ctx, a.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download blob %s: %w", key, err)
	}

	result := &DownloadResult{Body: resp.Body}
	if resp.ContentType != nil {
		result.ContentType = *resp.ContentType
	}
	if resp.ContentLength != nil {
		result.ContentLength = *resp.ContentLength
	}

	return result, nil
}

func (a *azure) Find(ctx context.Context, key string) (*Metadata, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	props, err := a.blobClient(key).GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blob properties %s: %w", key, err)
	}

	meta := &Metadata{Key: key}
	if props.ContentType != nil {
		meta.ContentType = *props.ContentType
	}
	if props.ContentLength != nil {
		meta.ContentLength = *props.ContentLength
	}
	if props.LastModified != nil {
		meta.LastModified = *props.LastModified
	}

	return meta, nil
}

func (a *azure) List(ctx context.Context, prefix, marker string, maxResults int32) (*ListResult, error) {
	opts := &container.ListBlobsFlatOptions{
		MaxResults: &maxResults,
	}
	if prefix != "" {
		opts.Prefix = &prefix
	}
	if marker != "" {
		opts.Marker = &marker
	}

	pager := a.client.NewListBlobsFlatPager(a.container, opts)

	result := &ListResult{Blobs: make([]Metadata, 0)}
	if !pager.More() {
		return result, nil
	}

	page, err := pager.NextPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}

	for _, item := range page.Segment.BlobItems {
		meta := Metadata{}
		if item.Name != nil {
			meta.Key = *item.Name
		}
		if item.Properties != nil {
			if item.Properties.ContentType != nil {
				meta.ContentType = *item.Properties.ContentType
			}
			if item.Properties.ContentLength != nil {
				meta.ContentLength = *item.Properties.ContentLength
			}
			if item.Properties.LastModified != nil {
				meta.LastModified = *item.Properties.LastModified
			}
		}
		result.Blobs = append(result.Blobs, meta)
	}

	if page.NextMarker != nil && *page.NextMarker != "" {
		result.NextMarker = *page.NextMarker
	}

	return result, nil
}

func (a *azure) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := a.client.DeleteBlob(ctx, a.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob %s: %w", key, err)
	}

	return nil
}

func (a *azure) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := a.blobClient(key).GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check blob existence %s: %w", key, err)
	}

	return true, nil
}

func (a *azure) blobClient(key string) *blob.Client {
	return a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key)
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
