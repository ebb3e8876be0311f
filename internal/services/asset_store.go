package services

import (
	"context"
	"fmt"
	"log"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go/logging"
	"github.com/google/uuid"

	"github.com/bookhaven/backend/internal/config"
)

// ResourceKind distinguishes how the remote store serves an asset
type ResourceKind string

const (
	ResourceImage ResourceKind = "image"
	ResourceRaw   ResourceKind = "raw"
)

// UploadResult is the durable URL plus the deletion handle of a stored asset
type UploadResult struct {
	URL     string
	AssetID string
}

// AssetStore uploads local files to the remote object store and deletes
// them by handle. Implementations must treat Delete as best-effort and
// idempotent: deleting an absent handle is not an error.
type AssetStore interface {
	Upload(ctx context.Context, localPath, folder string, kind ResourceKind) (UploadResult, error)
	Delete(ctx context.Context, assetID string, kind ResourceKind) error
}

// CleanupResult is the outcome of one best-effort handle deletion
type CleanupResult struct {
	AssetID string
	Err     error
}

// CleanupAssets deletes a list of handles best-effort. Failures are logged
// and returned per handle, never propagated: a failed remote deletion must
// not block record mutation or deletion from completing.
func CleanupAssets(ctx context.Context, store AssetStore, kind ResourceKind, assetIDs []string) []CleanupResult {
	results := make([]CleanupResult, 0, len(assetIDs))
	for _, id := range assetIDs {
		if id == "" {
			continue
		}
		err := store.Delete(ctx, id, kind)
		if err != nil {
			log.Printf("WARN: failed to delete remote asset %s: %v", id, err)
		}
		results = append(results, CleanupResult{AssetID: id, Err: err})
	}
	return results
}

// S3AssetStore stores assets in an S3-compatible bucket.
// The asset handle is the object key.
type S3AssetStore struct {
	client *s3.Client
	cfg    *config.Config
}

func NewS3AssetStore(cfg *config.Config) (*S3AssetStore, error) {
	client, err := buildClient(cfg.AssetS3Endpoint, cfg.AssetS3Region, cfg.AssetS3AccessKeyID, cfg.AssetS3SecretAccessKey, cfg.AssetS3UsePathStyle)
	if err != nil {
		return nil, err
	}
	return &S3AssetStore{client: client, cfg: cfg}, nil
}

func buildClient(endpoint, region, key, secret string, pathStyle bool) (*s3.Client, error) {
	resolver := awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
		func(service, rgn string, options ...interface{}) (aws.Endpoint, error) {
			if endpoint != "" {
				return aws.Endpoint{URL: endpoint, SigningRegion: region}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}))
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		resolver,
		awsconfig.WithLogger(logging.NewStandardLogger(nil)),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = pathStyle
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
		}
	})
	return client, nil
}

// Upload stores the file at localPath under the given folder namespace and
// returns its public URL and deletion handle
func (s *S3AssetStore) Upload(ctx context.Context, localPath, folder string, kind ResourceKind) (UploadResult, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(localPath))
	key := fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.New().String(), ext)
	ctype := contentTypeFor(ext, kind)

	uploader := manager.NewUploader(s.client)
	in := &s3.PutObjectInput{
		Bucket:      &s.cfg.AssetBucket,
		Key:         &key,
		Body:        f,
		ContentType: &ctype,
		ACL:         s3types.ObjectCannedACLPublicRead,
	}
	if _, err := uploader.Upload(ctx, in, func(u *manager.Uploader) { u.PartSize = 10 * 1024 * 1024 }); err != nil {
		return UploadResult{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return UploadResult{URL: s.assetURL(key), AssetID: key}, nil
}

// Delete removes an object by handle. Deleting an absent key succeeds.
func (s *S3AssetStore) Delete(ctx context.Context, assetID string, kind ResourceKind) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.cfg.AssetBucket,
		Key:    &assetID,
	})
	return err
}

func (s *S3AssetStore) assetURL(key string) string {
	base := s.cfg.AssetPublicBaseURL
	if base == "" {
		if e := s.client.Options().BaseEndpoint; e != nil {
			base = fmt.Sprintf("%s/%s", strings.TrimRight(*e, "/"), s.cfg.AssetBucket)
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.cfg.AssetBucket, s.cfg.AssetS3Region)
		}
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), url.PathEscape(key))
}

func contentTypeFor(ext string, kind ResourceKind) string {
	if kind == ResourceRaw {
		if ext == ".pdf" {
			return "application/pdf"
		}
		return "application/octet-stream"
	}
	if ctype := mime.TypeByExtension(ext); ctype != "" {
		return ctype
	}
	return "application/octet-stream"
}
