package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
	"github.com/oksasatya/gym-membership-directory/pkg/helpers"
)

// GCSPhotoStore writes member photos to members/<id>/<uuid><ext>.
type GCSPhotoStore struct {
	client *gcs.Client
	bucket string
	newID  func() string
}

func NewGCSPhotoStore(client *gcs.Client, bucket string) *GCSPhotoStore {
	return &GCSPhotoStore{client: client, bucket: bucket, newID: uuid.NewString}
}

func (s *GCSPhotoStore) Upload(ctx context.Context, memberID, filename, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath(memberID, s.newID(), filename), contentType, r)
}

func objectPath(memberID, objectID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	return "members/" + strings.ReplaceAll(memberID, "/", "_") + "/" + objectID + ext
}

var _ repo.PhotoStore = (*GCSPhotoStore)(nil)
