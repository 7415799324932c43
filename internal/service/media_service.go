package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/devjournal/internal/models"
	"github.com/maheshrc27/devjournal/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const MaxUploadSize = 10 << 20

var allowedImageTypes = map[string]struct{}{
	"jpg": {}, "png": {}, "gif": {}, "webp": {},
}

// MediaService stores images embedded in post content.
type MediaService interface {
	Upload(ctx context.Context, userID string, file io.Reader) (*models.MediaAsset, error)
	List(ctx context.Context, userID string) ([]*models.MediaAsset, error)
}

type mediaService struct {
	ma      repository.MediaAssetRepository
	storage ObjectStorage
}

func NewMediaService(ma repository.MediaAssetRepository, storage ObjectStorage) MediaService {
	return &mediaService{
		ma:      ma,
		storage: storage,
	}
}

func (s *mediaService) Upload(ctx context.Context, userID string, file io.Reader) (*models.MediaAsset, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	fileBytes, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading file content: %w", err)
	}
	if len(fileBytes) == 0 {
		return nil, newValidationError("file is empty")
	}
	if len(fileBytes) > MaxUploadSize {
		return nil, newValidationError("file must be at most 10 MB")
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return nil, newValidationError("unsupported file type")
	}
	if _, ok := allowedImageTypes[fileType.Extension]; !ok {
		return nil, newValidationError("file type %s is not allowed", fileType.Extension)
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	key := id + "." + fileType.Extension

	if err := s.storage.Upload(ctx, key, fileBytes, fileType.MIME.Value); err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}

	asset := &models.MediaAsset{
		UserID:   userID,
		FileName: key,
		FileType: fileType.MIME.Value,
		FileSize: int64(len(fileBytes)),
		FileURL:  s.storage.PublicURL(key),
	}

	assetID, err := s.ma.Create(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("error saving media asset: %w", err)
	}
	asset.ID = assetID

	return asset, nil
}

// List returns the user's uploads, newest first.
func (s *mediaService) List(ctx context.Context, userID string) ([]*models.MediaAsset, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	assets, err := s.ma.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing media assets: %w", err)
	}
	return assets, nil
}
