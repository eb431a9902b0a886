package service

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
	KeyFromURL(rawURL string) (string, bool)
}

// UploadFile is one file taken from a multipart form
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type ImageUploadService struct {
	store  ObjectStorage
	folder string
}

func NewImageUploadService(store ObjectStorage, folder string) *ImageUploadService {
	if folder == "" {
		folder = constants.DefaultUploadFolder
	}
	return &ImageUploadService{store: store, folder: strings.Trim(folder, "/")}
}

// UploadDressImage stores an image under <folder>/dresses/<uuid><ext> and returns its public URL
func (s *ImageUploadService) UploadDressImage(ctx context.Context, file UploadFile) (string, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UploadDressImage")

	if file.Size <= 0 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "File is empty")
	}
	if !strings.HasPrefix(strings.ToLower(file.ContentType), "image/") {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "File must be an image")
	}

	key := s.objectKey(constants.UploadCategoryDresses, file.Filename)
	url, err := s.store.Put(ctx, key, file.Content, file.Size, file.ContentType)
	if err != nil {
		logger.ErrorWithContext(ctx, "Image upload failed").
			String("key", key).
			Err(err).
			Log()
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Image uploaded").
		String("key", key).
		Int64("size", file.Size).
		Log()
	return url, nil
}

func (s *ImageUploadService) objectKey(category, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(s.folder, category, uuid.NewString()+ext)
}

// DeleteByURL removes the object behind url. Failures are logged only.
func (s *ImageUploadService) DeleteByURL(ctx context.Context, url string) {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteImageObject")

	key, ok := s.store.KeyFromURL(url)
	if !ok {
		logger.DebugWithContext(ctx, "Image URL is not served by the object store").
			String("url", url).
			Log()
		return
	}
	if err := s.store.Remove(ctx, key); err != nil {
		logger.WarnWithContext(ctx, "Failed to remove image object").
			String("key", key).
			Err(err).
			Log()
	}
}
