package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"hospital-management-backend/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sirupsen/logrus"
)

// UploadResult identifies a stored image on the external host.
type UploadResult struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// ImageStore abstracts the external image-hosting service.
type ImageStore interface {
	Upload(ctx context.Context, file io.Reader) (*UploadResult, error)
}

type cloudinaryStore struct {
	cld     *cloudinary.Cloudinary
	folder  string
	timeout time.Duration
}

func NewCloudinaryStore(cfg config.CloudinaryConfig) (ImageStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	logrus.Info("Cloudinary image store initialized")

	return &cloudinaryStore{
		cld:     cld,
		folder:  cfg.UploadFolder,
		timeout: cfg.UploadTimeout,
	}, nil
}

func (s *cloudinaryStore) Upload(ctx context.Context, file io.Reader) (*UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return nil, err
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}

	return &UploadResult{
		PublicID: resp.PublicID,
		URL:      resp.SecureURL,
	}, nil
}
